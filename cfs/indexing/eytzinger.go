package indexing

import "math/bits"

// BuildEytzinger lays sorted keys and their parallel PathIDs out in
// breadth-first (Eytzinger) order, which keeps the hot upper levels of
// the implicit search tree in adjacent cache lines.
func BuildEytzinger(sorted []int64, ids []PathID) (layout []int64, idx []PathID) {
	n := len(sorted)
	layout = make([]int64, n)
	idx = make([]PathID, n)
	pos := 0
	var dfs func(i int)
	dfs = func(i int) {
		if i > n {
			return
		}
		dfs(i << 1)
		layout[i-1] = sorted[pos]
		idx[i-1] = ids[pos]
		pos++
		dfs((i << 1) | 1)
	}
	dfs(1)
	return
}

// EytzingerSearch returns the position in the Eytzinger array of the
// largest key <= x, or -1 when every key is greater. The descent is
// branch-predictable: the final right-turn ancestor is recovered from
// the trailing zeros of the overshoot index.
func EytzingerSearch(a []int64, x int64) int {
	n := len(a)
	k := 1
	for k <= n {
		if a[k-1] <= x {
			k = k<<1 | 1
		} else {
			k = k << 1
		}
	}
	k >>= uint(bits.TrailingZeros(uint(k)) + 1)
	if k == 0 {
		return -1
	}
	return k - 1
}
