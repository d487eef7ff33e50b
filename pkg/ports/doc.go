/*
Package ports defines the driven ports (interfaces) for the rivercross solver.

These interfaces decouple the solving pipeline from external implementations,
allowing the engine to read puzzle definitions from various sources and to cache
solutions in various backends.

# Key Interfaces

  - PuzzleLoader: Responsible for loading Puzzle definitions (e.g., from Loam or Memory).
  - SolutionStore: Responsible for caching solved reports by puzzle fingerprint.
  - DistributedLocker: Provides distributed locking so replicas do not solve the same puzzle twice.
  - Solver: The driving surface used by the HTTP and MCP adapters.
*/
package ports
