package rivercross_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aretw0/rivercross"
	"github.com/aretw0/rivercross/pkg/adapters/memory"
	"github.com/aretw0/rivercross/pkg/domain"
)

// ExampleNew_memory demonstrates how to use the Engine with an in-memory definition.
// This is useful for testing, embedded scenarios, or when you don't want to rely on the file system.
func ExampleNew_memory() {
	loader, err := memory.NewFromPuzzles(domain.Puzzle{
		Name:             "wolf-goat-cabbage",
		Characters:       []string{"F", "W", "G", "C"},
		Boat:             domain.Boat{Capacity: 2, Drivers: []string{"F"}},
		RestrictedStates: [][]string{{"W", "G"}, {"G", "C"}, {"W", "G", "C"}},
		InitialState:     []string{"F", "W", "G", "C"},
	})
	if err != nil {
		log.Fatal(err)
	}

	// No path needed ("") because we are providing a loader.
	eng, err := rivercross.New("", rivercross.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	sol, err := eng.SolveByID(context.Background(), "wolf-goat-cabbage")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("states:", len(sol.States))
	fmt.Println("transitions:", len(sol.Transitions))
	fmt.Println("paths:", len(sol.Paths))
	fmt.Println("shortest:", sol.Paths[0].Crossings(), "crossings")
	// Output:
	// states: 10
	// transitions: 20
	// paths: 2
	// shortest: 7 crossings
}

// ExampleEngine_Solve shows an inline definition with multi-letter tokens.
func ExampleEngine_Solve() {
	eng, err := rivercross.New("", rivercross.WithLoader(memory.NewLoader(nil)))
	if err != nil {
		log.Fatal(err)
	}

	sol, err := eng.Solve(context.Background(), domain.Puzzle{
		Name:         "ferry",
		Characters:   []string{"farmer", "goat"},
		Boat:         domain.Boat{Capacity: 2, Drivers: []string{"farmer"}},
		InitialState: []string{"farmer", "goat"},
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, p := range sol.Paths {
		fmt.Println(strings.Join(p.Strings(), " -> "))
	}
	// Output:
	// farmer,goat| -> |farmer,goat
}
