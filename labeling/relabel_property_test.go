package labeling

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRelabelPreservesPartition is a property-style check (spec.md §8,
// "Label compaction"): over many random label assignments, Relabel must
// produce a contiguous [0, k) range whose induced partition (which
// indices share a label) equals the input's partition.
func TestRelabelPreservesPartition(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(40)
		raw := make([]int, n)
		for i := range raw {
			// sparse, arbitrary label values, not already contiguous.
			raw[i] = rng.Intn(n) * 1000
		}

		got := Relabel(raw)

		require.Len(t, got.Labels, n)

		seen := make(map[int]bool)
		for _, l := range got.Labels {
			require.GreaterOrEqual(t, l, 0)
			require.Less(t, l, got.NumLabels)
			seen[l] = true
		}
		require.Len(t, seen, got.NumLabels, "labels must use every id in [0, NumLabels) at least once")

		for i := range raw {
			for j := range raw {
				wantSame := raw[i] == raw[j]
				gotSame := got.Labels[i] == got.Labels[j]
				require.Equal(t, wantSame, gotSame, "partition mismatch at (%d,%d)", i, j)
			}
		}
	}
}
