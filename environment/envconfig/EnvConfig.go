// Package envconfig provides configuration structs for configuring
// environments with default layouts and tasks. Environment
// configurations in this package are JSON serializable, so that
// gridworld layouts, including the plain (position, weight) data of
// teleporter transition tables, can be stored on disk and rebuilt.
package envconfig

import (
	"fmt"

	"golang.org/x/exp/rand"

	env "github.com/m-barker/stochastic-minigrid/environment"
	"github.com/m-barker/stochastic-minigrid/environment/gridworld"
	"github.com/m-barker/stochastic-minigrid/environment/gridworld/teleport"
	ts "github.com/m-barker/stochastic-minigrid/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Teleport5by5 EnvName = "Teleport5by5"

	// Custom environments build their grid from the Cells field of a
	// Config
	Custom EnvName = "Custom"
)

// TaskName stores the tasks that can be configured with this package
type TaskName string

// Tasks available for configuration
const (
	Goal TaskName = "Goal"
)

// CellConfig places a single non-floor cell at a grid position. The
// Type field holds a gridworld cell type code. The Active and
// Destinations fields are used only when Type is the teleporter code.
type CellConfig struct {
	X, Y         int
	Type         gridworld.CellType
	Active       bool
	Destinations []gridworld.Destination
}

// Config implements a specific configuration of a specific environment
// and specific task
type Config struct {
	Environment EnvName
	Task        TaskName

	// Custom environments only; ignored for named environments
	Rows, Cols     int
	StartX, StartY int
	Goals          []gridworld.Position
	Cells          []CellConfig

	Discount       float64
	EpisodeCutoff  int
	TimeStepReward float64
	GoalReward     float64
}

// NewConfig returns a Config for the named environment with the
// package's default task parameters
func NewConfig(name EnvName, task TaskName, cutoff int) Config {
	return Config{
		Environment:    name,
		Task:           task,
		Discount:       0.99,
		EpisodeCutoff:  cutoff,
		TimeStepReward: teleport.TimeStepReward,
		GoalReward:     teleport.GoalReward,
	}
}

// CreateEnv creates and returns the environment described by the
// Config, seeding all environmental randomness with seed
func (c Config) CreateEnv(seed uint64) (env.Environment, ts.TimeStep,
	error) {
	if c.Task != Goal {
		return nil, ts.TimeStep{}, fmt.Errorf("createEnv: no such task %v",
			c.Task)
	}

	switch c.Environment {
	case Teleport5by5:
		return teleport.NewTeleport5by5(c.Discount, c.EpisodeCutoff, seed)

	case Custom:
		return c.createCustom(seed)
	}

	return nil, ts.TimeStep{}, fmt.Errorf("createEnv: no such environment "+
		"%v", c.Environment)
}

// createCustom builds a gridworld from the Config's layout data. All
// teleporters in the layout share a single random source created from
// seed.
func (c Config) createCustom(seed uint64) (env.Environment, ts.TimeStep,
	error) {
	grid, err := gridworld.NewGrid(c.Rows, c.Cols)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createEnv: %v", err)
	}

	source := rand.NewSource(seed)
	for _, cellConf := range c.Cells {
		var cell gridworld.Cell

		if cellConf.Type == gridworld.TeleporterType {
			cell, err = gridworld.NewTeleporter(cellConf.Destinations,
				cellConf.Active, source)
		} else {
			cell, err = gridworld.Decode(cellConf.Type)
		}
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("createEnv: %v", err)
		}

		err = grid.Set(gridworld.Position{X: cellConf.X, Y: cellConf.Y},
			cell)
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("createEnv: %v", err)
		}
	}

	starter, err := gridworld.NewSingleStart(gridworld.Position{
		X: c.StartX,
		Y: c.StartY,
	}, c.Rows, c.Cols)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createEnv: %v", err)
	}

	task, err := gridworld.NewGoal(starter, c.Goals, c.Rows, c.Cols,
		c.TimeStepReward, c.GoalReward, c.EpisodeCutoff)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createEnv: %v", err)
	}

	return gridworld.New(grid, task, c.Discount)
}
