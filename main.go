// Package main is the entry point for the cargo-mutants CLI.
package main

import "github.com/sgodwincs/cargo-mutants/cmd"

func main() {
	cmd.Execute()
}
