//go:build mage

package main

import (
	"github.com/magefile/mage/sh"
)

// Clean removes build output.
func Clean() error {
	return sh.Rm("bin")
}
