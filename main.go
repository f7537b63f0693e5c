// Package main is the entry point for the dugout CLI, which keeps a youth
// baseball team's roster, lineups, schedule and batting stats.
package main

import "github.com/pable/go-dugout/cmd"

func main() {
	cmd.Execute()
}
