package runtime

import (
	"iter"
	"math/bits"
)

// combinations yields every k-subset of pool as a mask, in lexicographic order of
// bit positions. k == 0 yields the empty set once; k > |pool| yields nothing.
func combinations(pool uint64, k int) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		positions := make([]uint, 0, bits.OnesCount64(pool))
		for p := pool; p != 0; p &= p - 1 {
			positions = append(positions, uint(bits.TrailingZeros64(p)))
		}

		n := len(positions)
		if k < 0 || k > n {
			return
		}

		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}

		for {
			var mask uint64
			for _, i := range idx {
				mask |= uint64(1) << positions[i]
			}
			if !yield(mask) {
				return
			}

			// Advance the rightmost index that still has room.
			i := k - 1
			for i >= 0 && idx[i] == i+n-k {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}
