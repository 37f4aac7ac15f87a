// Package gridworld implements 2D gridworld environments with
// stochastic transition dynamics
package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	env "github.com/m-barker/stochastic-minigrid/environment"
	ts "github.com/m-barker/stochastic-minigrid/timestep"
)

// Actions available in a GridWorld
const (
	ActionLeft int = iota
	ActionRight
	ActionUp
	ActionDown

	// Actions is the total number of actions in a GridWorld
	Actions
)

// GridWorld represents a gridworld environment. The environment state
// is the agent's position on a static grid of cells, observed as a
// one-hot vector over all rows*cols grid positions.
//
// Actions are 1-dimensional and discrete in (0, 1, 2, 3):
//
//	Action	Meaning
//	  0		Move left
//	  1		Move right
//	  2		Move up
//	  3		Move down
//
// A movement off the grid or into a cell that cannot be occupied
// leaves the agent in place. Otherwise, the destination cell's Enter
// hook determines where the agent ends up: for most cells this is the
// cell itself, while an active Teleporter relocates the agent to a
// position sampled from its transition table. The Enter hook is
// applied once per step, so a teleporter destination is final even if
// it is itself a teleporter's cell.
type GridWorld struct {
	env.Task
	grid        *Grid
	position    Position
	discount    float64
	currentStep ts.TimeStep
}

// New creates a new GridWorld over the argument grid with task t and
// discount factor discount. The environment starts ready to use, with
// the returned TimeStep being the first timestep of the first episode.
func New(grid *Grid, t env.Task, discount float64) (*GridWorld, ts.TimeStep,
	error) {
	if err := validateGrid(grid); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	// Tasks that depend on the cell layout need access to the grid
	task, ok := t.(*Goal)
	if ok {
		task.Register(grid)
	}

	g := &GridWorld{
		Task:     t,
		grid:     grid,
		discount: discount,
	}

	firstStep, err := g.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	return g, firstStep, nil
}

// Reset resets the environment and returns a starting timestep drawn
// from the environment Starter
func (g *GridWorld) Reset() (ts.TimeStep, error) {
	start := g.Start()

	r, c := g.grid.Dims()
	position, err := positionOf(start, r, c)
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}
	if !g.grid.At(position).CanOccupy() {
		return ts.TimeStep{}, fmt.Errorf("reset: start position %v is a %v",
			position, g.grid.At(position).Type())
	}

	g.position = position
	step := ts.New(ts.First, 0, g.discount, start, 0)
	g.currentStep = step

	return step, nil
}

// Step takes one environmental step given action a and returns the
// next timestep, a bool indicating whether or not the episode has
// ended, and an error for malformed actions. Legal actions are
// 1-dimensional values in (0, 1, 2, 3).
func (g *GridWorld) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if a.Len() != 1 {
		return ts.TimeStep{}, false, fmt.Errorf("step: actions must be "+
			"1-dimensional, got %d-dimensional", a.Len())
	}

	action := int(a.AtVec(0))
	if action < ActionLeft || action >= Actions {
		return ts.TimeStep{}, false, fmt.Errorf("step: illegal action %d "+
			"∉ (0, 1, 2, 3)", action)
	}

	// Compute the position the movement would place the agent on
	intended := g.position
	switch action {
	case ActionLeft:
		intended.X--
	case ActionRight:
		intended.X++
	case ActionUp:
		intended.Y++
	case ActionDown:
		intended.Y--
	}

	// Movements off the grid or into blocking cells leave the agent in
	// place; otherwise the entered cell decides the resulting position
	if g.grid.InBounds(intended) {
		cell := g.grid.At(intended)
		if cell.CanOccupy() {
			g.position = cell.Enter(intended)
		}
	}

	// Get information to pass back
	nextState := g.observation()
	reward := g.GetReward(g.currentStep.Observation, a, nextState)
	nextStep := ts.New(ts.Mid, reward, g.discount, nextState,
		g.currentStep.Number+1)

	// Check if this transition ends the episode, adjusting the step
	// type if necessary
	last := g.End(&nextStep)

	g.currentStep = nextStep
	return nextStep, last, nil
}

// CurrentTimeStep returns the current timestep of the environment
func (g *GridWorld) CurrentTimeStep() ts.TimeStep {
	return g.currentStep
}

// Position returns the agent's current position
func (g *GridWorld) Position() Position {
	return g.position
}

// Grid returns the environment's cell layout
func (g *GridWorld) Grid() *Grid {
	return g.grid
}

// ObservationSpec returns the observation specification of the
// environment
func (g *GridWorld) ObservationSpec() env.Spec {
	r, c := g.grid.Dims()
	shape := mat.NewVecDense(r*c, nil)
	lowerBound := mat.NewVecDense(r*c, nil)
	upperBound := ones(r * c)

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Discrete)
}

// ActionSpec returns the action specification of the environment
func (g *GridWorld) ActionSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{float64(ActionLeft)})
	upperBound := mat.NewVecDense(1, []float64{float64(Actions - 1)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// DiscountSpec returns the discounting specification of the environment
func (g *GridWorld) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{g.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Discrete)
}

// String returns a string representation of the environment
func (g *GridWorld) String() string {
	r, c := g.grid.Dims()
	str := "GridWorld | At: %v  |  Bounds: (%d, %d)\n%v"
	return fmt.Sprintf(str, g.position, r, c, g.grid)
}

// observation returns the one-hot observation of the agent's current
// position
func (g *GridWorld) observation() *mat.VecDense {
	r, c := g.grid.Dims()
	return oneHot(g.position, r, c)
}

// validateGrid checks that every teleporter in the grid routes only to
// positions that exist and can be occupied
func validateGrid(grid *Grid) error {
	r, c := grid.Dims()
	for y := 0; y < r; y++ {
		for x := 0; x < c; x++ {
			teleporter, ok := grid.At(Position{x, y}).(*Teleporter)
			if !ok {
				continue
			}

			for _, destination := range teleporter.Destinations() {
				if !grid.InBounds(destination.Position) {
					return fmt.Errorf("teleporter at %v routes out of "+
						"bounds to %v", Position{x, y}, destination.Position)
				}
				if !grid.At(destination.Position).CanOccupy() {
					return fmt.Errorf("teleporter at %v routes to "+
						"blocking cell at %v", Position{x, y},
						destination.Position)
				}
			}
		}
	}
	return nil
}

// oneHot converts position p to a one-hot vector over all positions of
// a grid with r rows and c columns
func oneHot(p Position, r, c int) *mat.VecDense {
	vec := mat.NewVecDense(r*c, nil)
	vec.SetVec(p.Y*c+p.X, 1.0)
	return vec
}

// positionOf converts a one-hot vector over all positions of a grid
// with r rows and c columns into the Position of its single non-zero
// element
func positionOf(v mat.Vector, r, c int) (Position, error) {
	if v.Len() != r*c {
		return Position{}, fmt.Errorf("positionOf: vector length %d != "+
			"grid size %d", v.Len(), r*c)
	}

	for i := 0; i < v.Len(); i++ {
		if v.AtVec(i) != 0.0 {
			return Position{X: i % c, Y: i / c}, nil
		}
	}
	return Position{}, fmt.Errorf("positionOf: no non-zero element")
}

// ones returns a vector of 1.0's
func ones(length int) *mat.VecDense {
	vec := mat.NewVecDense(length, nil)
	for i := 0; i < length; i++ {
		vec.SetVec(i, 1.0)
	}
	return vec
}
