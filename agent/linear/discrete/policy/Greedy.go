package policy

import (
	env "github.com/m-barker/stochastic-minigrid/environment"
)

// NewGreedy constructs a new greedy policy, which is an EGreedy policy
// with ε = 0
func NewGreedy(seed uint64, environment env.Environment) (*EGreedy, error) {
	return NewEGreedy(0.0, seed, environment)
}
