// Package point implements the per-pixel 6-D feature grid (color, image
// position, depth/scale, normal) that every later stage of the dasp
// pipeline reads from. It is grounded on the teacher's rimage/depthadapter
// package (depth-to-geometry conversion) and pointcloud package (use of
// github.com/golang/geo/r3 for 3-vectors).
package point

import "github.com/golang/geo/r3"

// Vec2 is a 2-D image-plane position. Cluster centers drift to sub-pixel
// locations during k-means updates, so this is float64, not an int pair.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Norm2 returns the squared Euclidean length of v.
func (v Vec2) Norm2() float64 { return v.X*v.X + v.Y*v.Y }

// Point is one pixel's feature vector. Color uses r3.Vector purely for its
// arithmetic (Add/Sub/Mul over three floats); it is not a spatial quantity.
type Point struct {
	Color  r3.Vector
	Pos    Vec2
	Depth  float64  // meters; 0 means invalid
	World  r3.Vector // pinhole back-projected 3D position, meters; zero when invalid
	Normal r3.Vector
	Scala  float64 // expected superpixel radius in pixels at this pixel
}

// Valid reports whether this pixel carries usable depth.
func (p Point) Valid() bool { return p.Depth > 0 }

// cameraFacingNormal is the default normal when no normal image is supplied.
var cameraFacingNormal = r3.Vector{X: 0, Y: 0, Z: -1}
