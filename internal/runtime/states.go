package runtime

import "github.com/aretw0/rivercross/pkg/domain"

// EnumerateStates returns every legal configuration of the instance.
// Right banks are enumerated by size, then in lexicographic character order,
// so the result order is deterministic; membership does not depend on it.
func EnumerateStates(in *domain.Instance) []domain.Config {
	full := in.Alphabet.Full()
	states := make([]domain.Config, 0)

	for k := 0; k <= in.Alphabet.Len(); k++ {
		for right := range combinations(full, k) {
			c := domain.NewConfig(in.Alphabet, full&^right)
			if !in.Legal(c) {
				continue
			}
			states = append(states, c)
		}
	}

	return states
}
