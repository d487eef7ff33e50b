package runtime

import (
	"context"

	"github.com/aretw0/rivercross/pkg/domain"
)

// PathOptions bounds path enumeration.
type PathOptions struct {
	// Limit stops enumeration after this many paths. Zero means unlimited.
	Limit int
}

type departure struct {
	from      domain.ConfigKey
	condition domain.Side
}

// crossingIndex maps (state, departure side) to the reachable destinations.
type crossingIndex map[departure][]domain.Config

func indexTransitions(transitions []domain.Transition) crossingIndex {
	idx := make(crossingIndex)
	for _, t := range transitions {
		k := departure{from: t.From.Key(), condition: t.Condition}
		idx[k] = append(idx[k], t.To)
	}
	return idx
}

// ValidPaths returns every simple path from initial to goal whose crossings
// alternate strictly: the first pair must match a "left" transition, the second
// a "right" one, and so on for every pair.
//
// The search walks the state graph depth-first and abandons a branch as soon as
// a pair has no transition with the expected condition, which yields exactly the
// simple paths that pass the alternation check. truncated is true only when a
// path beyond opts.Limit exists; a puzzle with exactly Limit paths is not
// truncated. An unsolvable puzzle yields no paths and no error.
func ValidPaths(ctx context.Context, transitions []domain.Transition, initial, goal domain.Config, opts PathOptions) (paths []domain.Path, truncated bool, err error) {
	if initial.Key() == goal.Key() {
		return []domain.Path{{initial}}, false, nil
	}
	return searchPaths(ctx, indexTransitions(transitions), initial, goal, opts.Limit, false)
}

// searchPaths runs the alternating DFS. With firstOnly the search stops at
// limit without looking for one more path, and truncated is never reported.
func searchPaths(ctx context.Context, idx crossingIndex, initial, goal domain.Config, limit int, firstOnly bool) ([]domain.Path, bool, error) {
	w := &pathWalker{
		ctx:       ctx,
		index:     idx,
		goal:      goal.Key(),
		limit:     limit,
		firstOnly: firstOnly,
		visited:   make(map[domain.ConfigKey]bool),
		paths:     make([]domain.Path, 0),
	}

	w.visited[initial.Key()] = true
	w.stack = append(w.stack, initial)
	if err := w.walk(initial, domain.SideLeft); err != nil {
		return nil, false, err
	}

	return w.paths, w.truncated, nil
}

// Reachable reports whether at least one valid path exists.
//
// A breadth-first pass over (state, boat side) pairs rejects unreachable goals
// without any path enumeration. When that pass succeeds, a single simple path is
// still searched for, since a walk in the product graph may revisit a state.
func Reachable(ctx context.Context, transitions []domain.Transition, initial, goal domain.Config) (bool, error) {
	if initial.Key() == goal.Key() {
		return true, nil
	}

	idx := indexTransitions(transitions)
	if !idx.reaches(initial.Key(), goal.Key()) {
		return false, nil
	}

	paths, _, err := searchPaths(ctx, idx, initial, goal, 1, true)
	if err != nil {
		return false, err
	}
	return len(paths) > 0, nil
}

// reaches runs a BFS over (state, expected side) pairs.
func (idx crossingIndex) reaches(from, goal domain.ConfigKey) bool {
	start := departure{from: from, condition: domain.SideLeft}
	seen := map[departure]bool{start: true}
	queue := []departure{start}
	for len(queue) > 0 {
		at := queue[0]
		queue = queue[1:]
		for _, next := range idx[at] {
			if next.Key() == goal {
				return true
			}
			d := departure{from: next.Key(), condition: at.condition.Opposite()}
			if !seen[d] {
				seen[d] = true
				queue = append(queue, d)
			}
		}
	}
	return false
}

type pathWalker struct {
	ctx       context.Context
	index     crossingIndex
	goal      domain.ConfigKey
	limit     int
	firstOnly bool
	visited   map[domain.ConfigKey]bool
	stack     []domain.Config
	paths     []domain.Path
	truncated bool
	done      bool
}

// walk extends the current stack from at, departing from the expected side.
// The only error it returns is the context's.
func (w *pathWalker) walk(at domain.Config, expected domain.Side) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	for _, next := range w.index[departure{from: at.Key(), condition: expected}] {
		if w.done {
			return nil
		}

		key := next.Key()
		if w.visited[key] {
			continue
		}

		if key == w.goal {
			if w.limit > 0 && len(w.paths) == w.limit {
				// One path past the limit exists.
				w.truncated = true
				w.done = true
				return nil
			}
			path := make(domain.Path, len(w.stack)+1)
			copy(path, w.stack)
			path[len(w.stack)] = next
			w.paths = append(w.paths, path)
			if w.firstOnly && len(w.paths) == w.limit {
				w.done = true
			}
			continue
		}

		w.visited[key] = true
		w.stack = append(w.stack, next)
		err := w.walk(next, expected.Opposite())
		w.stack = w.stack[:len(w.stack)-1]
		delete(w.visited, key)
		if err != nil {
			return err
		}
	}

	return nil
}
