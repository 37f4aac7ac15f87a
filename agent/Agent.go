// Package agent defines an agent interface
package agent

import (
	"gonum.org/v1/gonum/mat"

	"github.com/m-barker/stochastic-minigrid/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns weights, and a Policy
// which chooses actions in each state. The Policy chooses which actions
// are taken, and the Learner uses these actions to update the Policy.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how weights are
// updated.
type Learner interface {
	// Step performs a single update to the learner
	Step()

	// Observe records that an action lead to some timestep
	Observe(action mat.Vector, nextStep timestep.TimeStep)

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep)
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. For a given agent, the
// Policy and Learner should have pointers to the same weights so that
// any changes the learner makes to the weights are reflected in the
// actions the Policy chooses.
type Policy interface {
	SelectAction(t timestep.TimeStep) *mat.VecDense
}
