/*
Package domain contains the core domain models of the river-crossing solver.

It defines the fundamental entities of a crossing puzzle: the characters that
must be ferried, the bank configurations they can form, the boat rules, and the
transitions and paths produced by the solver. This package is kept pure and free
of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Puzzle: The plain-data definition supplied by a loader (characters, boat, restrictions).
  - Instance: A compiled Puzzle, with every token resolved to a bit position.
  - Config: One legal split of all characters between the left and right banks.
  - Transition: A single boat crossing between two Configs, tagged with the departure Side.
  - Path: An ordered sequence of Configs from the initial configuration to the goal.
  - Solution / Report: The pipeline output, in memory and in canonical string form.
*/
package domain
