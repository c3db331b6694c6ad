package cluster

import (
	"math"

	"github.com/dasp-vision/dasp/point"
	"github.com/dasp-vision/dasp/seed"
)

// EdgeField is a per-pixel discontinuity strength used to nudge seeds off
// boundaries before clustering (spec.md section 4.5). Border pixels carry
// +Inf so ImproveSeeds never walks a seed off the image.
type EdgeField struct {
	Width, Height int
	Values        []float64
}

// At returns the edge strength at pixel (x, y).
func (e *EdgeField) At(x, y int) float64 { return e.Values[y*e.Width+x] }

// ComputeEdgeField evaluates, for every interior pixel, the sum of the
// mixed-metric distance across the horizontal and vertical neighbor pairs
// (spec.md section 4.5). It runs pixel-parallel like PointField
// construction.
func ComputeEdgeField(pf *point.PointField, w Weights) *EdgeField {
	width, height := pf.Width, pf.Height
	field := &EdgeField{Width: width, Height: height, Values: make([]float64, width*height)}

	fill := func(i int) {
		x, y := i%width, i/width
		if x == 0 || x == width-1 || y == 0 || y == height-1 {
			field.Values[i] = math.Inf(1)
			return
		}
		left := pf.At(x-1, y)
		right := pf.At(x+1, y)
		up := pf.At(x, y-1)
		down := pf.At(x, y+1)

		field.Values[i] = Distance(left, right, w) + Distance(up, down, w)
	}

	parallelOverPixels(width*height, fill)
	return field
}

// ImproveSeeds moves each seed to the pixel of minimum edge strength within
// its 3x3 neighborhood (8-neighborhood plus center), a single pass over the
// seed list (spec.md section 4.5).
func ImproveSeeds(seeds []seed.Seed, field *EdgeField) []seed.Seed {
	out := make([]seed.Seed, len(seeds))
	for i, s := range seeds {
		bestX, bestY := s.X, s.Y
		bestV := field.At(s.X, s.Y)
		for dy := -1; dy <= 1; dy++ {
			ny := s.Y + dy
			if ny < 0 || ny >= field.Height {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				nx := s.X + dx
				if nx < 0 || nx >= field.Width {
					continue
				}
				v := field.At(nx, ny)
				if v < bestV {
					bestV = v
					bestX, bestY = nx, ny
				}
			}
		}
		out[i] = seed.Seed{X: bestX, Y: bestY, Scala: s.Scala}
	}
	return out
}
