package seed

import (
	"math"

	"github.com/dasp-vision/dasp/point"
)

// Grid places ClusterNX * ClusterNY seeds on a regular grid at cell
// centers (spec.md section 4.3, EquiDistant).
func Grid(ext point.ParametersExt) []Seed {
	dx, dy := ext.ClusterDX, ext.ClusterDY
	hx, hy := dx/2, dy/2
	s := math.Max(dx, dy)

	seeds := make([]Seed, 0, ext.ClusterNX*ext.ClusterNY)
	for iy := 0; iy < ext.ClusterNY; iy++ {
		y := int(hy + dy*float64(iy))
		for ix := 0; ix < ext.ClusterNX; ix++ {
			x := int(hx + dx*float64(ix))
			seeds = append(seeds, Seed{X: x, Y: y, Scala: s})
		}
	}
	return seeds
}
