package trackers_test

import (
	"math"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/m-barker/stochastic-minigrid/experiment/trackers"
	ts "github.com/m-barker/stochastic-minigrid/timestep"
)

// episode returns the timesteps of a synthetic episode with the given
// per-step rewards. The first timestep carries no reward.
func episode(rewards []float64) []ts.TimeStep {
	obs := mat.NewVecDense(1, []float64{0.0})

	steps := []ts.TimeStep{ts.New(ts.First, 0.0, 1.0, obs, 0)}
	for i, reward := range rewards {
		stepType := ts.Mid
		if i == len(rewards)-1 {
			stepType = ts.Last
		}
		steps = append(steps, ts.New(stepType, reward, 1.0, obs, i+1))
	}
	return steps
}

func TestReturnTracksEpisodicReturn(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.bin")
	tracker := trackers.NewReturn(filename)

	episodes := [][]float64{
		{-0.1, -0.1, 1.0},
		{-0.1, 1.0},
	}
	for _, rewards := range episodes {
		for _, step := range episode(rewards) {
			tracker.Track(step)
		}
	}
	tracker.Save()

	returns := trackers.LoadData(filename)
	want := []float64{0.8, 0.9}
	if len(returns) != len(want) {
		t.Fatalf("got %d episodic returns, want %d", len(returns), len(want))
	}
	for i := range want {
		if math.Abs(returns[i]-want[i]) > 1e-9 {
			t.Errorf("episode %d: return = %v, want %v", i, returns[i],
				want[i])
		}
	}
}

func TestReturnPanicsOnNonSequentialTimesteps(t *testing.T) {
	tracker := trackers.NewReturn(filepath.Join(t.TempDir(), "returns.bin"))

	obs := mat.NewVecDense(1, []float64{0.0})
	tracker.Track(ts.New(ts.First, 0.0, 1.0, obs, 0))

	defer func() {
		if recover() == nil {
			t.Error("tracking a skipped timestep should panic")
		}
	}()
	tracker.Track(ts.New(ts.Mid, -0.1, 1.0, obs, 5))
}

func TestEpisodeLengthTracksLengths(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lengths.bin")
	tracker := trackers.NewEpisodeLength(filename)

	episodes := [][]float64{
		{-0.1, -0.1, 1.0},
		{-0.1, 1.0},
	}
	for _, rewards := range episodes {
		for _, step := range episode(rewards) {
			tracker.Track(step)
		}
	}
	tracker.Save()

	lengths := trackers.LoadLengths(filename)
	want := []int{3, 2}
	if len(lengths) != len(want) {
		t.Fatalf("got %d episode lengths, want %d", len(lengths), len(want))
	}
	for i := range want {
		if lengths[i] != want[i] {
			t.Errorf("episode %d: length = %d, want %d", i, lengths[i],
				want[i])
		}
	}
}
