package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	env "github.com/m-barker/stochastic-minigrid/environment"
	ts "github.com/m-barker/stochastic-minigrid/timestep"
)

// Goal represents the task of reaching goal states in a GridWorld.
// Rewards are a constant per-timestep reward for all transitions
// except those leading to a goal position, which receive the goal
// reward. Episodes end when the agent reaches a goal position, when it
// enters a lava cell, or at a timestep limit.
type Goal struct {
	env.Starter
	goals          []Position
	rows, cols     int
	timeStepReward float64
	goalReward     float64
	stepLimit      env.Ender

	// Set on registration with an environment; used to detect
	// terminal lava cells
	grid *Grid
}

// NewGoal creates and returns a new Goal task with goal positions
// goals, given that the gridworld has r rows and c columns. The
// starter s determines starting states, tr and gr are the per-timestep
// and goal rewards, and episodeSteps is the episode step limit.
func NewGoal(s env.Starter, goals []Position, r, c int, tr, gr float64,
	episodeSteps int) (*Goal, error) {
	if len(goals) == 0 {
		return nil, fmt.Errorf("newGoal: no goal positions")
	}

	for _, goal := range goals {
		if goal.X < 0 || goal.X >= c || goal.Y < 0 || goal.Y >= r {
			return nil, fmt.Errorf("newGoal: goal %v out of bounds (%d, %d)",
				goal, r, c)
		}
	}

	positions := make([]Position, len(goals))
	copy(positions, goals)

	return &Goal{
		Starter:        s,
		goals:          positions,
		rows:           r,
		cols:           c,
		timeStepReward: tr,
		goalReward:     gr,
		stepLimit:      env.NewStepLimit(episodeSteps),
	}, nil
}

// Register gives the task access to the cell layout of the
// environment it runs in. GridWorld.New calls Register automatically.
func (g *Goal) Register(grid *Grid) {
	g.grid = grid
}

// GetReward returns the reward for a transition from state to
// nextState under action a
func (g *Goal) GetReward(state, a, nextState mat.Vector) float64 {
	position, err := positionOf(nextState, g.rows, g.cols)
	if err != nil {
		panic(fmt.Sprintf("getReward: %v", err))
	}

	if g.atGoalPosition(position) {
		return g.goalReward
	}
	return g.timeStepReward
}

// AtGoal returns whether the argument state is a goal state
func (g *Goal) AtGoal(state mat.Matrix) bool {
	obs, ok := state.(mat.Vector)
	if !ok {
		return false
	}

	position, err := positionOf(obs, g.rows, g.cols)
	if err != nil {
		return false
	}
	return g.atGoalPosition(position)
}

// End determines whether the argument timestep is the last in the
// episode, adjusting its StepType and EndType if so
func (g *Goal) End(t *ts.TimeStep) bool {
	// Check if the max steps was reached, modifying t if appropriate
	if end := g.stepLimit.End(t); end {
		return true
	}

	position, err := positionOf(t.Observation, g.rows, g.cols)
	if err != nil {
		return false
	}

	if g.atGoalPosition(position) || g.atLava(position) {
		t.StepType = ts.Last
		t.SetEnd(ts.TerminalStateReached)
		return true
	}
	return false
}

// Min returns the minimum attainable reward over all timesteps
func (g *Goal) Min() float64 {
	return floats.Min([]float64{g.timeStepReward, g.goalReward})
}

// Max returns the maximum attainable reward over all timesteps
func (g *Goal) Max() float64 {
	return floats.Max([]float64{g.timeStepReward, g.goalReward})
}

// RewardSpec returns the reward specification of the Task
func (g *Goal) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{g.Min()})
	upperBound := mat.NewVecDense(1, []float64{g.Max()})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Discrete)
}

// String returns the Goal task as a string
func (g *Goal) String() string {
	return fmt.Sprintf("Goal: %v", g.goals)
}

func (g *Goal) atGoalPosition(p Position) bool {
	for _, goal := range g.goals {
		if p == goal {
			return true
		}
	}
	return false
}

func (g *Goal) atLava(p Position) bool {
	return g.grid != nil && g.grid.At(p).Type() == LavaType
}
