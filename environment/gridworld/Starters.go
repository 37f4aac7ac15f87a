package gridworld

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	env "github.com/m-barker/stochastic-minigrid/environment"
)

// SingleStart starts every episode at a single fixed position
type SingleStart struct {
	position   Position
	rows, cols int
}

// NewSingleStart returns a Starter placing the agent at position p in
// a gridworld with r rows and c columns
func NewSingleStart(p Position, r, c int) (env.Starter, error) {
	if p.X < 0 || p.X >= c || p.Y < 0 || p.Y >= r {
		return nil, fmt.Errorf("newSingleStart: position %v out of bounds "+
			"(%d, %d)", p, r, c)
	}

	return SingleStart{p, r, c}, nil
}

// Start returns a starting state vector
func (s SingleStart) Start() *mat.VecDense {
	return oneHot(s.position, s.rows, s.cols)
}

// RandomStart starts each episode at a position drawn uniformly from a
// fixed set of positions
type RandomStart struct {
	positions  []Position
	rows, cols int
	rand       distuv.Categorical
}

// NewRandomStart returns a Starter drawing the starting position
// uniformly from positions on each episode start
func NewRandomStart(positions []Position, r, c int,
	seed uint64) (env.Starter, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("newRandomStart: no positions")
	}

	for _, p := range positions {
		if p.X < 0 || p.X >= c || p.Y < 0 || p.Y >= r {
			return nil, fmt.Errorf("newRandomStart: position %v out of "+
				"bounds (%d, %d)", p, r, c)
		}
	}

	// Create the weights for the uniform categorical distribution
	weights := make([]float64, len(positions))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}

	starts := make([]Position, len(positions))
	copy(starts, positions)

	source := rand.NewSource(seed)
	return RandomStart{starts, r, c, distuv.NewCategorical(weights,
		source)}, nil
}

// Start returns a starting state vector
func (s RandomStart) Start() *mat.VecDense {
	position := s.positions[int(s.rand.Rand())]
	return oneHot(position, s.rows, s.cols)
}
