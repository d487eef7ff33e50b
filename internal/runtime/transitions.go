package runtime

import (
	"math/bits"

	"github.com/aretw0/rivercross/pkg/domain"
)

var departures = [...]domain.Side{domain.SideLeft, domain.SideRight}

// GenerateTransitions returns the deduplicated crossings between legal states.
// For every load size from 1 to the boat capacity and every state, groups are
// drawn from the left bank (condition "left") and then from the right bank
// (condition "right"). The current boat position is never consulted.
//
// A crossing that does not conserve the character count panics with a
// *domain.DefectError: it means the bookkeeping here is wrong, not the input.
func GenerateTransitions(in *domain.Instance, states []domain.Config) []domain.Transition {
	seen := make(map[domain.TransitionKey]struct{})
	transitions := make([]domain.Transition, 0)

	maxLoad := min(in.Boat.Capacity, in.Alphabet.Len())
	for size := 1; size <= maxLoad; size++ {
		for _, from := range states {
			for _, side := range departures {
				for group := range combinations(from.Bank(side), size) {
					t, ok := cross(in, from, side, group)
					if !ok {
						continue
					}
					key := t.Key()
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
					transitions = append(transitions, t)
				}
			}
		}
	}

	return transitions
}

// cross ferries group from the side bank of from, reporting false when any rule forbids it.
func cross(in *domain.Instance, from domain.Config, side domain.Side, group uint64) (domain.Transition, bool) {
	if group&in.Boat.Drivers == 0 {
		return domain.Transition{}, false
	}
	if in.IsRestrictedBoat(group) {
		return domain.Transition{}, false
	}

	var left, right uint64
	if side == domain.SideLeft {
		left, right = from.Left&^group, from.Right|group
	} else {
		left, right = from.Left|group, from.Right&^group
	}

	if in.IsRestricted(left) || in.IsRestricted(right) {
		return domain.Transition{}, false
	}

	total := bits.OnesCount64(left) + bits.OnesCount64(right)
	if total != in.Alphabet.Len() || left&right != 0 {
		panic(&domain.DefectError{
			State: from.String(),
			Group: in.Alphabet.Format(group),
			Got:   total,
			Want:  in.Alphabet.Len(),
		})
	}

	return domain.Transition{
		From:      from,
		Condition: side,
		To:        domain.NewConfig(in.Alphabet, left),
		Group:     group,
	}, true
}
