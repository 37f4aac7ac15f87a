package gridworld_test

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/m-barker/stochastic-minigrid/environment/gridworld"
)

func TestNewTransitionTableEmpty(t *testing.T) {
	source := rand.NewSource(1)
	_, err := gridworld.NewTransitionTable([]gridworld.Destination{}, source)
	if !errors.Is(err, gridworld.ErrInvalidDistribution) {
		t.Errorf("want ErrInvalidDistribution for empty table, got %v", err)
	}
}

func TestNewTransitionTableZeroWeights(t *testing.T) {
	source := rand.NewSource(1)
	_, err := gridworld.NewTransitionTable([]gridworld.Destination{
		{Position: gridworld.Position{X: 0, Y: 0}, Weight: 0},
		{Position: gridworld.Position{X: 1, Y: 1}, Weight: 0},
	}, source)
	if !errors.Is(err, gridworld.ErrInvalidDistribution) {
		t.Errorf("want ErrInvalidDistribution for all-zero weights, got %v",
			err)
	}
}

func TestNewTransitionTableNegativeWeight(t *testing.T) {
	source := rand.NewSource(1)
	_, err := gridworld.NewTransitionTable([]gridworld.Destination{
		{Position: gridworld.Position{X: 0, Y: 0}, Weight: 2},
		{Position: gridworld.Position{X: 1, Y: 1}, Weight: -1},
	}, source)
	if !errors.Is(err, gridworld.ErrInvalidDistribution) {
		t.Errorf("want ErrInvalidDistribution for negative weight, got %v",
			err)
	}
}

func TestSampleReturnsTablePosition(t *testing.T) {
	destinations := []gridworld.Destination{
		{Position: gridworld.Position{X: 0, Y: 3}, Weight: 0.5},
		{Position: gridworld.Position{X: 2, Y: 2}, Weight: 1.5},
		{Position: gridworld.Position{X: 4, Y: 1}, Weight: 3},
	}

	table, err := gridworld.NewTransitionTable(destinations,
		rand.NewSource(42))
	if err != nil {
		t.Fatalf("could not create table: %v", err)
	}

	inTable := make(map[gridworld.Position]bool)
	for _, destination := range destinations {
		inTable[destination.Position] = true
	}

	for i := 0; i < 1_000; i++ {
		if position := table.Sample(); !inTable[position] {
			t.Fatalf("sampled position %v not in table", position)
		}
	}
}

func TestSampleFrequency(t *testing.T) {
	table, err := gridworld.NewTransitionTable([]gridworld.Destination{
		{Position: gridworld.Position{X: 1, Y: 1}, Weight: 1},
		{Position: gridworld.Position{X: 4, Y: 4}, Weight: 1},
	}, rand.NewSource(13))
	if err != nil {
		t.Fatalf("could not create table: %v", err)
	}

	const draws = 100_000
	first := 0
	for i := 0; i < draws; i++ {
		if (table.Sample() == gridworld.Position{X: 1, Y: 1}) {
			first++
		}
	}

	frequency := float64(first) / float64(draws)
	if tolerance := 0.01; math.Abs(frequency-0.5) > tolerance {
		t.Errorf("frequency of first destination = %v, want 0.5 ± %v",
			frequency, tolerance)
	}
}

func TestSampleNeverZeroWeight(t *testing.T) {
	zeroWeight := gridworld.Position{X: 1, Y: 0}
	table, err := gridworld.NewTransitionTable([]gridworld.Destination{
		{Position: gridworld.Position{X: 0, Y: 0}, Weight: 3},
		{Position: zeroWeight, Weight: 0},
		{Position: gridworld.Position{X: 2, Y: 0}, Weight: 1},
	}, rand.NewSource(7))
	if err != nil {
		t.Fatalf("table with a zero weight should be valid, got %v", err)
	}

	for i := 0; i < 10_000; i++ {
		if table.Sample() == zeroWeight {
			t.Fatal("sampled the zero-weight destination")
		}
	}
}

func TestSampleDeterminism(t *testing.T) {
	destinations := []gridworld.Destination{
		{Position: gridworld.Position{X: 1, Y: 1}, Weight: 1},
		{Position: gridworld.Position{X: 4, Y: 4}, Weight: 1},
		{Position: gridworld.Position{X: 0, Y: 2}, Weight: 2},
	}

	const seed uint64 = 1923
	first, err := gridworld.NewTransitionTable(destinations,
		rand.NewSource(seed))
	if err != nil {
		t.Fatalf("could not create table: %v", err)
	}
	second, err := gridworld.NewTransitionTable(destinations,
		rand.NewSource(seed))
	if err != nil {
		t.Fatalf("could not create table: %v", err)
	}

	for i := 0; i < 1_000; i++ {
		a, b := first.Sample(), second.Sample()
		if a != b {
			t.Fatalf("draw %d: tables with equal seeds diverged: %v != %v",
				i, a, b)
		}
	}
}

func TestTransitionTableDestinationsCopies(t *testing.T) {
	destinations := []gridworld.Destination{
		{Position: gridworld.Position{X: 1, Y: 1}, Weight: 1},
		{Position: gridworld.Position{X: 4, Y: 4}, Weight: 1},
	}

	table, err := gridworld.NewTransitionTable(destinations,
		rand.NewSource(3))
	if err != nil {
		t.Fatalf("could not create table: %v", err)
	}

	// Mutating the returned copy must not affect the table
	copied := table.Destinations()
	copied[0].Position = gridworld.Position{X: 9, Y: 9}

	if got := table.Destinations()[0].Position; got != destinations[0].Position {
		t.Errorf("table destination changed to %v after mutating a copy",
			got)
	}
}

func TestTeleporterEnterSamplesDestination(t *testing.T) {
	destinations := []gridworld.Destination{
		{Position: gridworld.Position{X: 0, Y: 0}, Weight: 1},
		{Position: gridworld.Position{X: 2, Y: 2}, Weight: 1},
	}

	teleporter, err := gridworld.NewTeleporter(destinations, true,
		rand.NewSource(11))
	if err != nil {
		t.Fatalf("could not create teleporter: %v", err)
	}

	inTable := make(map[gridworld.Position]bool)
	for _, destination := range destinations {
		inTable[destination.Position] = true
	}

	entry := gridworld.Position{X: 1, Y: 1}
	for i := 0; i < 1_000; i++ {
		if position := teleporter.Enter(entry); !inTable[position] {
			t.Fatalf("entered teleporter and ended at %v, not in table",
				position)
		}
	}
}

func TestTeleporterInactive(t *testing.T) {
	teleporter, err := gridworld.NewTeleporter([]gridworld.Destination{
		{Position: gridworld.Position{X: 0, Y: 0}, Weight: 1},
	}, false, rand.NewSource(11))
	if err != nil {
		t.Fatalf("could not create teleporter: %v", err)
	}

	entry := gridworld.Position{X: 1, Y: 1}
	for i := 0; i < 100; i++ {
		if position := teleporter.Enter(entry); position != entry {
			t.Fatalf("inactive teleporter moved the agent from %v to %v",
				entry, position)
		}
	}
}

func TestNewTeleporterInvalidTable(t *testing.T) {
	_, err := gridworld.NewTeleporter(nil, true, rand.NewSource(1))
	if !errors.Is(err, gridworld.ErrInvalidDistribution) {
		t.Errorf("want ErrInvalidDistribution for empty teleporter, got %v",
			err)
	}
}
