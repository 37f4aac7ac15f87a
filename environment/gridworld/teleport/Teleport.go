// Package teleport implements gridworld environments containing
// teleporter cells with stochastic destinations
package teleport

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/m-barker/stochastic-minigrid/environment/gridworld"
	ts "github.com/m-barker/stochastic-minigrid/timestep"
)

// Default rewards for teleport environment tasks
const (
	TimeStepReward float64 = -0.1
	GoalReward     float64 = 1.0
)

// NewTeleport5by5 creates a 5x5 gridworld split by a wall down its
// middle column. The only opening in the wall is a teleporter which
// routes the agent with equal probability either back to an open cell
// on the near side of the wall or directly to the goal in the far
// corner.
//
// The agent starts at (0, 0), the goal is at (4, 4), and the
// teleporter at (2, 2) routes to (1, 1) and (4, 4) with equal weight.
// All randomness in the environment is driven by a single source
// created from the argument seed, so episodes replay identically for
// equal seeds.
func NewTeleport5by5(discount float64, episodeSteps int,
	seed uint64) (*gridworld.GridWorld, ts.TimeStep, error) {
	const rows, cols = 5, 5

	grid, err := gridworld.NewGrid(rows, cols)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newTeleport5by5: %v", err)
	}

	// Wall off the middle column, leaving the teleporter as the only
	// opening
	for y := 0; y < rows; y++ {
		if y == 2 {
			continue
		}
		grid.Set(gridworld.Position{X: 2, Y: y}, gridworld.NewWall())
	}

	source := rand.NewSource(seed)
	teleporter, err := gridworld.NewTeleporter([]gridworld.Destination{
		{Position: gridworld.Position{X: 1, Y: 1}, Weight: 1},
		{Position: gridworld.Position{X: 4, Y: 4}, Weight: 1},
	}, true, source)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newTeleport5by5: %v", err)
	}
	grid.Set(gridworld.Position{X: 2, Y: 2}, teleporter)

	goal := gridworld.Position{X: 4, Y: 4}
	grid.Set(goal, gridworld.NewGoalCell())

	starter, err := gridworld.NewSingleStart(gridworld.Position{X: 0, Y: 0},
		rows, cols)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newTeleport5by5: %v", err)
	}

	task, err := gridworld.NewGoal(starter, []gridworld.Position{goal},
		rows, cols, TimeStepReward, GoalReward, episodeSteps)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newTeleport5by5: %v", err)
	}

	return gridworld.New(grid, task, discount)
}
