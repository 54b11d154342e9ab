// Package main is the entry point for the pairstats CLI tool, which tracks
// pairwise win/loss statistics between players over an inhouse match history.
package main

import "github.com/pable/pairstats/cmd"

func main() {
	cmd.Execute()
}
