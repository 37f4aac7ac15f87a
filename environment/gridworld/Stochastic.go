package gridworld

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidDistribution is returned when a transition table is
// constructed from a destination list that does not describe a valid
// discrete probability distribution: an empty list, a negative weight,
// or weights with a non-positive sum.
var ErrInvalidDistribution = errors.New("invalid distribution")

// Destination is a candidate target position together with its
// relative likelihood. Weights are non-negative float64 values and
// need not be normalized.
type Destination struct {
	Position Position
	Weight   float64
}

func (d Destination) String() string {
	return fmt.Sprintf("%v: %v", d.Position, d.Weight)
}

// TransitionTable is an immutable ordered sequence of Destinations
// defining a stochastic cell's possible outcomes. The probability of
// sampling destination i is Weight_i / TotalWeight. Sampling is
// delegated to a categorical distribution over the destination
// weights; each call to Sample advances the injected random source by
// exactly one draw, and destinations with zero weight are never
// sampled.
type TransitionTable struct {
	destinations []Destination
	totalWeight  float64
	dist         distuv.Categorical
}

// NewTransitionTable creates a new TransitionTable over the argument
// destinations, drawing from the argument random source. The source is
// shared with, not owned by, the table, so that a single seeded source
// may drive every stochastic cell in a layout and the enclosing
// environment controls reproducibility.
//
// NewTransitionTable returns ErrInvalidDistribution if destinations is
// empty, if any weight is negative, or if the weights sum to zero.
func NewTransitionTable(destinations []Destination,
	source rand.Source) (TransitionTable, error) {
	if len(destinations) == 0 {
		return TransitionTable{}, fmt.Errorf("newTransitionTable: %w: no "+
			"destinations", ErrInvalidDistribution)
	}

	weights := make([]float64, len(destinations))
	totalWeight := 0.0
	for i, destination := range destinations {
		if destination.Weight < 0 {
			return TransitionTable{}, fmt.Errorf("newTransitionTable: %w: "+
				"destination %v has negative weight", ErrInvalidDistribution,
				destination.Position)
		}
		weights[i] = destination.Weight
		totalWeight += destination.Weight
	}

	if totalWeight <= 0 {
		return TransitionTable{}, fmt.Errorf("newTransitionTable: %w: "+
			"weights sum to %v", ErrInvalidDistribution, totalWeight)
	}

	table := make([]Destination, len(destinations))
	copy(table, destinations)

	return TransitionTable{
		destinations: table,
		totalWeight:  totalWeight,
		dist:         distuv.NewCategorical(weights, source),
	}, nil
}

// Sample draws one destination from the table, weighted by each
// destination's weight, and returns its position. Sample never fails
// on a table constructed by NewTransitionTable and advances the shared
// random source by a single draw.
func (t TransitionTable) Sample() Position {
	return t.destinations[int(t.dist.Rand())].Position
}

// Len returns the number of destinations in the table
func (t TransitionTable) Len() int {
	return len(t.destinations)
}

// TotalWeight returns the sum of all destination weights in the table
func (t TransitionTable) TotalWeight() float64 {
	return t.totalWeight
}

// Destinations returns a copy of the table's (position, weight) data.
// The copy is the plain serializable form of the table, e.g. for
// saving layouts.
func (t TransitionTable) Destinations() []Destination {
	destinations := make([]Destination, len(t.destinations))
	copy(destinations, t.destinations)
	return destinations
}

func (t TransitionTable) String() string {
	entries := make([]string, len(t.destinations))
	for i, destination := range t.destinations {
		entries[i] = destination.String()
	}
	return "[" + strings.Join(entries, ", ") + "]"
}

// Teleporter is a cell that relocates the agent to one of a fixed set
// of destination positions, sampled from a TransitionTable, whenever
// the agent enters it. An inactive Teleporter behaves as floor,
// leaving the agent on the teleporter's cell.
//
// A Teleporter holds no per-episode state of its own: sampling
// advances the shared random source, never the teleporter.
type Teleporter struct {
	table  TransitionTable
	active bool
}

// NewTeleporter creates a new Teleporter over the argument destination
// (position, weight) pairs, drawing from the argument random source.
// NewTeleporter returns ErrInvalidDistribution under the same
// conditions as NewTransitionTable.
func NewTeleporter(destinations []Destination, active bool,
	source rand.Source) (*Teleporter, error) {
	table, err := NewTransitionTable(destinations, source)
	if err != nil {
		return nil, fmt.Errorf("newTeleporter: %w", err)
	}

	return &Teleporter{table, active}, nil
}

func (t *Teleporter) Type() CellType {
	return TeleporterType
}

func (t *Teleporter) CanOccupy() bool {
	return true
}

// Enter computes the agent's resulting position when it enters the
// teleporter's cell at position p. An active teleporter overrides p
// with a sampled destination; an inactive teleporter leaves the agent
// at p.
func (t *Teleporter) Enter(p Position) Position {
	if !t.active {
		return p
	}
	return t.SampleDestination()
}

// SampleDestination draws one destination position from the
// teleporter's transition table
func (t *Teleporter) SampleDestination() Position {
	return t.table.Sample()
}

// Active returns whether the teleporter relocates entering agents
func (t *Teleporter) Active() bool {
	return t.active
}

// Destinations returns a copy of the teleporter's (position, weight)
// data
func (t *Teleporter) Destinations() []Destination {
	return t.table.Destinations()
}

func (t *Teleporter) String() string {
	status := "active"
	if !t.active {
		status = "inactive"
	}
	return fmt.Sprintf("Teleporter (%v) %v", status, t.table)
}
