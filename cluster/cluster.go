// Package cluster implements the depth-adaptive k-means-like assignment
// loop (spec.md section 4.7): Cluster, the mixed 6-D Distance metric, the
// EdgeField discontinuity map, and the ClusterEngine create/move/pixel
// labeling operations. Grounded on Superpixels.cpp's Cluster::UpdateCenter,
// MoveClusters, ComputeEdges, and ImproveSeeds.
package cluster

import (
	"github.com/golang/geo/r3"

	"github.com/dasp-vision/dasp/point"
)

// vec3 builds an r3.Vector from three scalars, avoiding the field-by-field
// literal at each accumulator site.
func vec3(x, y, z float64) r3.Vector {
	return r3.Vector{X: x, Y: y, Z: z}
}

// Cluster is a center Point together with the set of owned pixel linear
// indices (spec.md section 3).
type Cluster struct {
	Center   point.Point
	PixelIDs []int
}

// Valid reports whether this cluster has members and a center with a
// non-degenerate normal, matching spec.md invariant (iii).
func (c Cluster) Valid() bool {
	return len(c.PixelIDs) > 0 && c.Center.Normal.Norm2() > 0
}

// UpdateCenter recomputes Center as unweighted means over owned pixels:
// Pos and Color average over all members, Depth and Normal average over
// valid members only, and Scala is preserved across the update (spec.md
// section 3, invariant (iv)).
func (c *Cluster) UpdateCenter(pf *point.PointField) {
	if len(c.PixelIDs) == 0 {
		c.Center.Normal = point.Point{}.Normal
		return
	}
	oldScala := c.Center.Scala

	var posSum point.Vec2
	var colX, colY, colZ float64
	var depthSum float64
	var normX, normY, normZ float64
	var worldX, worldY, worldZ float64
	nValid := 0

	for _, i := range c.PixelIDs {
		p := pf.Pixels[i]
		posSum = posSum.Add(p.Pos)
		colX += p.Color.X
		colY += p.Color.Y
		colZ += p.Color.Z
		if p.Valid() {
			depthSum += p.Depth
			normX += p.Normal.X
			normY += p.Normal.Y
			normZ += p.Normal.Z
			worldX += p.World.X
			worldY += p.World.Y
			worldZ += p.World.Z
			nValid++
		}
	}

	n := float64(len(c.PixelIDs))
	newCenter := point.Point{
		Pos:   posSum.Scale(1 / n),
		Color: vec3(colX/n, colY/n, colZ/n),
		Scala: oldScala,
	}
	if nValid > 0 {
		newCenter.Depth = depthSum / float64(nValid)
		newCenter.World = vec3(worldX/float64(nValid), worldY/float64(nValid), worldZ/float64(nValid))
		nrm := vec3(normX, normY, normZ)
		if l := nrm.Norm(); l > 0 {
			newCenter.Normal = nrm.Mul(1 / l)
		}
	}
	c.Center = newCenter
}
