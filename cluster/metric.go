package cluster

import (
	"math"

	"github.com/dasp-vision/dasp/point"
)

// Weights are the per-component coefficients of the mixed 6-D metric
// (spec.md section 4.6). Spatial is already the "final" spatial
// weight (base weight times the per-image spatial normalizer).
type Weights struct {
	Color   float64
	Spatial float64
	Normal  float64
	Depth   float64
}

// SquaredDistance evaluates the mixed 6-D metric between a pixel and a
// cluster center without the final square root, matching spec.md section
// 4.6's note that implementers may use the squared form internally.
func SquaredDistance(a point.Point, c point.Point, w Weights) float64 {
	dc := a.Color.Sub(c.Color)
	colorTerm := dc.Dot(dc)

	dp := a.Pos.Sub(c.Pos)
	spatialTerm := dp.Norm2()

	normalTerm := 1 - a.Normal.Dot(c.Normal)

	dd := a.Depth - c.Depth
	depthTerm := dd * dd

	return w.Color*w.Color*colorTerm +
		w.Spatial*w.Spatial*spatialTerm +
		w.Normal*w.Normal*normalTerm +
		w.Depth*w.Depth*depthTerm
}

// Distance is the full mixed 6-D metric, spec.md section 4.6.
func Distance(a point.Point, c point.Point, w Weights) float64 {
	return math.Sqrt(SquaredDistance(a, c, w))
}
