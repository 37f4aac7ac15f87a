// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either the first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType records the reason an episode ended. Episodes may end because
// the agent transitioned to a terminal state or because of an episode
// step cutoff.
type EndType int

const (
	// Nil denotes a timestep that did not end its episode
	Nil EndType = iota

	// TerminalStateReached denotes an episode that ended by reaching a
	// terminal environment state
	TerminalStateReached

	// Timeout denotes an episode that ended by reaching a step limit
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Nil"
	}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType
	Reward      float64
	Discount    float64
	Observation mat.Vector
	Number      int
	endType     EndType
}

// New constructs a new TimeStep
func New(t StepType, r, d float64, o mat.Vector, n int) TimeStep {
	return TimeStep{t, r, d, o, n, Nil}
}

// SetEnd records why the episode containing the TimeStep ended
func (t *TimeStep) SetEnd(e EndType) {
	t.endType = e
}

// End returns the reason the episode containing the TimeStep ended, or
// Nil if the TimeStep did not end its episode
func (t TimeStep) End() EndType {
	return t.endType
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number)
}
