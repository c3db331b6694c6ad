package seed

import (
	"math/rand"
	"sort"

	"github.com/dasp-vision/dasp/point"
)

// Shooting draws count seeds via CDF-inverse rejection sampling weighted
// by depth^2, as described in spec.md section 4.3's SHOULD-fallback for
// DepthDependentShooting. The original source left this mode unimplemented
// ("assert false"); this builds the documented prefix-sum-and-binary-search
// scheme instead of omitting the mode outright.
func Shooting(pf *point.PointField, count int, rng *rand.Rand) []Seed {
	n := pf.Size()
	prefix := make([]float64, n)
	var sum float64
	for i, p := range pf.Pixels {
		if p.Valid() {
			sum += p.Depth * p.Depth
		}
		prefix[i] = sum
	}
	if sum == 0 {
		return nil
	}

	seeds := make([]Seed, 0, count)
	// cap attempts so a pathological distribution (nearly all pixels
	// invalid) cannot spin forever; a shortfall simply yields fewer seeds.
	maxAttempts := count * 64
	for attempt := 0; attempt < maxAttempts && len(seeds) < count; attempt++ {
		target := rng.Float64() * sum
		idx := sort.Search(n, func(i int) bool { return prefix[i] > target })
		if idx >= n {
			idx = n - 1
		}
		p := pf.Pixels[idx]
		if !p.Valid() {
			continue
		}
		seeds = append(seeds, Seed{X: idx % pf.Width, Y: idx / pf.Width, Scala: p.Scala})
	}
	return seeds
}
