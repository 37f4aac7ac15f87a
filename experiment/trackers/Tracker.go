// Package trackers implements Trackers, which track and save data in an
// experiment
package trackers

import (
	"encoding/gob"
	"log"
	"os"

	ts "github.com/m-barker/stochastic-minigrid/timestep"
)

// Interface Tracker keeps track of experiment data and saves the data
// after the experiment has finished
type Tracker interface {
	Track(t ts.TimeStep)
	Save()
}

// LoadData loads and returns the float64 data saved by a Tracker
func LoadData(filename string) []float64 {
	var data []float64
	load(filename, &data)
	return data
}

// LoadLengths loads and returns the episode lengths saved by an
// EpisodeLength Tracker
func LoadLengths(filename string) []int {
	var data []int
	load(filename, &data)
	return data
}

func load(filename string, data interface{}) {
	// Open file
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	// Decode the data
	dec := gob.NewDecoder(file)
	if err := dec.Decode(data); err != nil {
		log.Fatalf("could not decode data: %v", err)
	}
}

// save gob-encodes data to the file at filename
func save(filename string, data interface{}) {
	file, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err := en.Encode(data); err != nil {
		log.Fatalf("could not encode tracked data: %v", err)
	}
}
