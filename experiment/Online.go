package experiment

import (
	"github.com/m-barker/stochastic-minigrid/agent"
	env "github.com/m-barker/stochastic-minigrid/environment"
	"github.com/m-barker/stochastic-minigrid/experiment/trackers"
	ts "github.com/m-barker/stochastic-minigrid/timestep"
)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	env.Environment
	agent.Agent
	maxSteps     uint
	currentSteps uint
	trackers     []trackers.Tracker
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for, and the t parameter
// is a slice of trackers.Tracker which determine what data is saved.
func NewOnline(e env.Environment, a agent.Agent, steps uint,
	t []trackers.Tracker) *Online {
	return &Online{e, a, steps, 0, t}
}

// Register registers a trackers.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment, returning
// whether or not the experiment's step limit has been reached
func (o *Online) RunEpisode() (bool, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return false, err
	}
	o.Agent.ObserveFirst(step)
	o.track(step)

	// Run the next timestep
	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++

		// Select action, step in environment
		action := o.Agent.SelectAction(step)
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return false, err
		}

		// Cache the environment step in each Tracker
		o.track(step)

		// Observe the timestep and step the agent
		o.Agent.Observe(action, step)
		o.Agent.Step()
	}

	// Return whether or not the max timestep limit has been reached
	return o.currentSteps >= o.maxSteps, nil
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run() error {
	ended := false

	var err error
	for !ended {
		ended, err = o.RunEpisode()
		if err != nil {
			return err
		}
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() {
	for _, tracker := range o.trackers {
		tracker.Save()
	}
}

// track tracks the current timestep by caching its data in each tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}
