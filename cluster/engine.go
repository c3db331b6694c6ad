package cluster

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/dasp-vision/dasp/point"
	"github.com/dasp-vision/dasp/seed"
)

// Options bundles the knobs move_clusters and create_clusters need beyond
// the raw PointField (spec.md section 4.7).
type Options struct {
	Weights    Weights
	Coverage   float64
	Iterations int
}

// CreateClusters builds one cluster per seed: pixel_ids starts as the
// square window [x-R..x+R] x [y-R..y+R] clipped to the image, with R =
// scala/2, then the center is recomputed and invalid clusters are dropped
// (spec.md section 4.7).
func CreateClusters(seeds []seed.Seed, pf *point.PointField) []Cluster {
	clusters := make([]Cluster, 0, len(seeds))
	for _, s := range seeds {
		r := int(s.Scala / 2)
		if r < 0 {
			r = 0
		}
		x0, x1 := clampRange(s.X-r, s.X+r, pf.Width)
		y0, y1 := clampRange(s.Y-r, s.Y+r, pf.Height)

		var ids []int
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				ids = append(ids, pf.Index(x, y))
			}
		}

		c := Cluster{PixelIDs: ids}
		c.Center.Scala = s.Scala
		c.UpdateCenter(pf)
		if c.Valid() {
			clusters = append(clusters, c)
		}
	}
	return clusters
}

func clampRange(lo, hi, size int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > size-1 {
		hi = size - 1
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// MoveClusters runs one iteration of the assignment-and-update loop: for
// each cluster, search a window of radius scala*coverage around its
// center, claim every pixel in range whose distance improves on its
// current best, then recompute centers and drop clusters that became
// invalid (spec.md section 4.7). Ties on best_dist are broken by lower
// cluster index, matching spec.md section 9's fixed tie-breaking rule.
func MoveClusters(clusters []Cluster, pf *point.PointField, opt Options) []Cluster {
	n := pf.Size()
	bestDist := make([]float64, n)
	bestLabel := make([]int, n)
	for i := range bestDist {
		bestDist[i] = math.Inf(1)
		bestLabel[i] = -1
	}

	for j := range clusters {
		c := &clusters[j]
		cx, cy := int(c.Center.Pos.X), int(c.Center.Pos.Y)
		r := int(c.Center.Scala * opt.Coverage)
		if r < 0 {
			r = 0
		}
		x0, x1 := clampRange(cx-r, cx+r, pf.Width)
		y0, y1 := clampRange(cy-r, cy+r, pf.Height)

		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				p := pf.At(x, y)
				if !p.Valid() {
					continue
				}
				i := pf.Index(x, y)
				d := Distance(p, c.Center, opt.Weights)
				if d < bestDist[i] {
					bestDist[i] = d
					bestLabel[i] = j
				}
			}
		}
	}

	for j := range clusters {
		clusters[j].PixelIDs = clusters[j].PixelIDs[:0]
	}
	for i, j := range bestLabel {
		if j >= 0 {
			clusters[j].PixelIDs = append(clusters[j].PixelIDs, i)
		}
	}

	out := clusters[:0]
	for j := range clusters {
		clusters[j].UpdateCenter(pf)
		if clusters[j].Valid() {
			out = append(out, clusters[j])
		}
	}
	return out
}

// Run executes opt.Iterations of MoveClusters, checking ctx between
// iterations (spec.md section 5's single cancellation checkpoint).
func Run(ctx context.Context, clusters []Cluster, pf *point.PointField, opt Options) ([]Cluster, error) {
	for i := 0; i < opt.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "cancelled during move_clusters")
		}
		clusters = MoveClusters(clusters, pf, opt)
	}
	return clusters, nil
}

// PixelLabels returns, for every pixel, the index of the unique cluster
// that owns it, or -1 if none does (spec.md section 4.7).
func PixelLabels(clusters []Cluster, pf *point.PointField) []int {
	labels := make([]int, pf.Size())
	for i := range labels {
		labels[i] = -1
	}
	for j, c := range clusters {
		for _, i := range c.PixelIDs {
			labels[i] = j
		}
	}
	return labels
}
