// Package policy implements policies using linear function
// approximation
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	env "github.com/m-barker/stochastic-minigrid/environment"
	"github.com/m-barker/stochastic-minigrid/timestep"
	"github.com/m-barker/stochastic-minigrid/utils/matutils"
)

const (
	// Keys for weights map: map[string]*mat.Dense
	WeightsKey string = "weights"
)

// EGreedy implements an ε-greedy policy using linear function
// approximation
type EGreedy struct {
	weights *mat.Dense
	epsilon float64
	seed    rand.Source
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which a random action is selected. The environment
// e determines the weight dimensions: rows = actions, cols = features.
// Weights are initialized to zero.
func NewEGreedy(epsilon float64, seed uint64,
	environment env.Environment) (*EGreedy, error) {
	source := rand.NewSource(seed)

	// Ensure actions are 1-dimensional and discrete
	if environment.ActionSpec().Shape.Len() != 1 {
		return nil, fmt.Errorf("newEGreedy: actions must be 1-dimensional")
	}
	if environment.ActionSpec().Cardinality != env.Discrete {
		return nil, fmt.Errorf("newEGreedy: actions must be discrete")
	}

	// Calculate the number of actions and features
	actions := int(environment.ActionSpec().UpperBound.AtVec(0)) + 1
	features := environment.ObservationSpec().Shape.Len()

	weights := mat.NewDense(actions, features, nil)

	return &EGreedy{weights, epsilon, source}, nil
}

// Weights gets and returns the weights of the EGreedy policy as a
// string description -> weights
func (p *EGreedy) Weights() map[string]*mat.Dense {
	weights := make(map[string]*mat.Dense)
	weights[WeightsKey] = p.weights

	return weights
}

// SelectAction selects an action from an ε-greedy policy
func (p *EGreedy) SelectAction(t timestep.TimeStep) *mat.VecDense {
	obs := t.Observation

	// Calculate all action values
	numActions, _ := p.weights.Dims()
	actionValues := mat.NewVecDense(numActions, nil)
	actionValues.MulVec(p.weights, obs)

	// Find the greedy action
	greedyAction := matutils.MaxVec(actionValues)

	// Calculate the ε probability of choosing any action at random
	prob := p.epsilon / float64(numActions)
	actionProbabilities := make([]float64, numActions)
	for i := 0; i < numActions; i++ {
		actionProbabilities[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	actionProbabilities[greedyAction] += (1.0 - p.epsilon)

	// Construct a categorical distribution over actions using action
	// probabilities
	dist := distuv.NewCategorical(actionProbabilities, p.seed)

	return mat.NewVecDense(1, []float64{dist.Rand()})
}

// SetWeights sets the weight pointers to point to a new set of weights.
// The SetWeights function can take the output of a call to Weights()
// on another EGreedy Policy directly
func (p *EGreedy) SetWeights(weights map[string]*mat.Dense) error {
	newWeights, ok := weights[WeightsKey]
	if !ok {
		return fmt.Errorf("setWeights: no weights named %q", WeightsKey)
	}

	p.weights = newWeights
	return nil
}
