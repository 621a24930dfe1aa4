//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the binary
var Default = Build

// Build builds the covdiff binary into bin/.
func Build() error {
	return sh.RunV("go", "build", "-o", "bin/covdiff", "./cmd/covdiff")
}

// Test runs all unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// QA runs vet and tests.
func QA() error {
	mg.SerialDeps(Vet, Test)
	fmt.Println("QA passed")
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("bin")
}
