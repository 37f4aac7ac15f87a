// Package qlearning implements the Q-Learning algorithm with linear
// function approximation. With one-hot state observations, such as
// those of gridworld environments, this is exactly tabular Q-Learning.
package qlearning

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/m-barker/stochastic-minigrid/agent"
	"github.com/m-barker/stochastic-minigrid/agent/linear/discrete/policy"
	env "github.com/m-barker/stochastic-minigrid/environment"
)

// Config represents a configuration for the QLearning agent
type Config struct {
	Epsilon      float64 // epsilon for behaviour policy
	LearningRate float64
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 {
		return fmt.Errorf("epsilon cannot be lower than 0")
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive")
	}
	return nil
}

// QLearning implements the Q-Learning algorithm
type QLearning struct {
	agent.Learner
	agent.Policy
	behaviour *policy.EGreedy
	seed      uint64
}

// Weights gets and returns the weights of the agent as a string
// description -> weights. The learner and behaviour policy share
// these weights.
func (q *QLearning) Weights() map[string]*mat.Dense {
	return q.behaviour.Weights()
}

// New creates a new QLearning agent acting in environment e. The
// behaviour policy is ε-greedy with the Config's epsilon; the learner
// and the policy share weights, initialized to zero.
func New(e env.Environment, c Config, seed uint64) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: invalid config: %v", err)
	}

	behaviour, err := policy.NewEGreedy(c.Epsilon, seed, e)
	if err != nil {
		return nil, fmt.Errorf("new: could not create behaviour policy: %v",
			err)
	}

	weights := behaviour.Weights()[policy.WeightsKey]
	learner := NewQLearner(weights, c.LearningRate)

	return &QLearning{learner, behaviour, behaviour, seed}, nil
}
