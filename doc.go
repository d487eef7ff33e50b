/*
Package rivercross solves river-crossing puzzles: wolf, goat and cabbage, missionaries and cannibals, and any puzzle of the same shape.

A puzzle names its characters, a boat (capacity, who may row, which groups may not board together) and the groups that may never be left alone on a bank. The engine enumerates every legal configuration, derives the crossings between them and lists the simple paths from the initial configuration to the goal, with the boat alternating sides on every crossing.

# Concept

Solving is a three-stage pipeline: state enumeration, transition generation and path validation. Each stage reports through lifecycle hooks, so the engine can be embedded in a CLI, an HTTP server or an MCP agent without changing the core. Definitions come from a loader (a Loam directory by default) and results can be cached in a solution store keyed by the puzzle fingerprint.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/rivercross"
	)

	func main() {
		// Reads puzzle definitions from ./puzzles
		eng, err := rivercross.New("./puzzles")
		if err != nil {
			log.Fatal(err)
		}

		sol, err := eng.SolveByID(context.Background(), "wolf-goat-cabbage")
		if err != nil {
			log.Fatal(err)
		}

		for _, p := range sol.Paths {
			fmt.Println(p.Strings())
		}
	}

Large puzzles have a very large number of simple paths. Use domain.WithPathLimit to cap enumeration or domain.WithoutPaths to compute solvability only.
*/
package rivercross
