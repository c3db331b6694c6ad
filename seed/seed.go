// Package seed implements the four seed-placement strategies dispatched by
// SeedPlacer (spec.md section 4.3): a plain grid, a depth-weighted mipmap
// walk, blue-noise relaxation, and depth-weighted rejection sampling.
// Grounded on Superpixels.cpp's FindSeeds* family and the BlueNoise
// namespace in chrome-code/dasp.
package seed

import "github.com/dasp-vision/dasp/point"

// Seed identifies a cluster's initial center (spec.md section 3).
type Seed struct {
	X, Y  int
	Scala float64
}

// Mode selects which placement strategy Find dispatches to. It is an alias
// of point.SeedMode, re-exported with its constants so callers can name
// seed modes from package seed.
type Mode = point.SeedMode

const (
	EquiDistant            = point.EquiDistant
	DepthDependentShooting = point.DepthDependentShooting
	DepthDependentMipmap   = point.DepthDependentMipmap
	BlueNoise              = point.BlueNoise
)
