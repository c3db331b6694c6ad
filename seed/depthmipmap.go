package seed

import (
	"math/rand"

	"github.com/dasp-vision/dasp/mipmap"
	"github.com/dasp-vision/dasp/point"
)

// estimatedCounts builds the density image used by DepthDependentMipmap:
// each pixel's value is its expected seed count, 1/scala^2, so that the
// mipmap at any level gives the expected seed count in that footprint.
func estimatedCounts(pf *point.PointField) []float64 {
	num := make([]float64, pf.Size())
	for i, p := range pf.Pixels {
		if p.Scala > 0 {
			num[i] = 1.0 / (p.Scala * p.Scala)
		}
	}
	return num
}

// DepthMipmap walks a density mipmap top-down: at a cell with expected
// count v, recurse into the four children while v > 1 and the cell's level
// is above 1 (level 1 cells never recurse into the base level); otherwise
// place a seed with probability v at the cell's center pixel (spec.md
// section 4.3).
func DepthMipmap(pf *point.PointField, rng *rand.Rand) []Seed {
	density := estimatedCounts(pf)
	pyr := mipmap.Build(density, pf.Width, pf.Height, 1)

	var seeds []Seed
	topLevel := len(pyr.Levels) - 1
	walk(pf, pyr, topLevel, 0, 0, rng, &seeds)
	return seeds
}

func walk(pf *point.PointField, pyr mipmap.Pyramid, level, x, y int, rng *rand.Rand, seeds *[]Seed) {
	lvl := pyr.Levels[level]
	if x >= lvl.Width || y >= lvl.Height {
		return
	}
	v := lvl.At(x, y)

	if v > 1.0 && level > 1 {
		walk(pf, pyr, level-1, 2*x, 2*y, rng, seeds)
		walk(pf, pyr, level-1, 2*x, 2*y+1, rng, seeds)
		walk(pf, pyr, level-1, 2*x+1, 2*y, rng, seeds)
		walk(pf, pyr, level-1, 2*x+1, 2*y+1, rng, seeds)
		return
	}

	if rng.Float64() >= v {
		return
	}
	half := 1 << uint(level-1)
	if level == 0 {
		half = 0
	}
	sx := (x << uint(level)) + half
	sy := (y << uint(level)) + half
	if sx < 0 || sx >= pf.Width || sy < 0 || sy >= pf.Height {
		return
	}
	scala := pf.At(sx, sy).Scala
	if scala <= 2.0 {
		return
	}
	*seeds = append(*seeds, Seed{X: sx, Y: sy, Scala: scala})
}
