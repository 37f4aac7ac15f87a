// Package environment outlines the interfaces and structs needed to implement
// concrete environments
package environment

import (
	"gonum.org/v1/gonum/mat"

	"github.com/m-barker/stochastic-minigrid/timestep"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines whether an episode has ended. Enders that detect an
// episode end modify the argument TimeStep so that its StepType field
// is timestep.Last and its EndType records the reason for the ending.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some environment.
// Tasks also determine the starting states of an environment and when an
// episode of that environment ends.
type Task interface {
	Starter
	Ender
	GetReward(state, action, nextState mat.Vector) float64
	AtGoal(state mat.Matrix) bool

	// Min and Max return the minimum and maximum attainable rewards
	// over all timesteps
	Min() float64
	Max() float64
	RewardSpec() Spec
}

// Environment implements a simulated environment, which includes a Task to
// complete
type Environment interface {
	Task
	Reset() (timestep.TimeStep, error)
	Step(action *mat.VecDense) (timestep.TimeStep, bool, error)
	CurrentTimeStep() timestep.TimeStep
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}
