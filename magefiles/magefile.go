//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

// Build compiles the flagrun binary into bin/.
func Build() error {
	fmt.Println("Building flagrun...")
	return sh.RunV("go", "build", "-o", "bin/flagrun", ".")
}

// Test runs every package test.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

type Run mg.Namespace

// Game builds and starts the game with debug logging.
func (Run) Game() error {
	mg.Deps(Build)
	return sh.RunV("bin/flagrun", "--debug")
}

// Watch starts the game with prefab hot reload.
func (Run) Watch() error {
	mg.Deps(Build)
	return sh.RunV("bin/flagrun", "--debug", "--watch")
}

// Scores prints the best runs.
func (Run) Scores() error {
	mg.Deps(Build)
	return sh.RunV("bin/flagrun", "scores")
}
