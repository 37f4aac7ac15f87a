package main

import (
	"github.com/m-barker/stochastic-minigrid/examples"
)

func main() {
	examples.Teleport()
}
