// Package experiment implements functionality for running an experiment
package experiment

import (
	"fmt"

	"github.com/m-barker/stochastic-minigrid/agent/linear/discrete/qlearning"
	"github.com/m-barker/stochastic-minigrid/environment/envconfig"
	"github.com/m-barker/stochastic-minigrid/experiment/trackers"
	ts "github.com/m-barker/stochastic-minigrid/timestep"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments track environment TimeSteps, caching data from each
// TimeStep in RAM to be later saved to disk. The Save() function
// will then take all cached data and save it to disk. This is usually
// performed after an experiment has been run. The Run() method will
// run all episodes until the maximum timestep limit is reached.
// The RunEpisode() function will run a single episode.
//
// In order to save data, Experiments use Trackers. Trackers determine
// which data generated during the experiment is saved. Experiments will
// send each TimeStep to Trackers using the Tracker's Track() method.
// New Trackers can be registered with an Experiment through the
// constructor or through an Experiment's Register() function.
type Experiment interface {
	Run() error
	RunEpisode() (bool, error) // Returns whether the step limit was reached

	// Save all tracked data to disk
	Save()

	// Adds a new trackers.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t trackers.Tracker)

	// Tracks current timestep by sending it to Trackers
	track(ts.TimeStep)
}

type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment.
type Config struct {
	Type
	MaxSteps  uint
	EnvConf   envconfig.Config
	AgentConf qlearning.Config
}

// CreateExp creates the experiment described by the Config, seeding
// the environment and agent with seed
func (c Config) CreateExp(seed uint64, t []trackers.Tracker) (Experiment,
	error) {
	environment, _, err := c.EnvConf.CreateEnv(seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create environment: %v",
			err)
	}

	agent, err := qlearning.New(environment, c.AgentConf, seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create agent: %v", err)
	}

	switch c.Type {
	case OnlineExp:
		return NewOnline(environment, agent, c.MaxSteps, t), nil
	}

	return nil, fmt.Errorf("createExp: no such experiment type %v", c.Type)
}
