// Package mipmap builds sum-reduction image pyramids, used both as the
// density-estimate pyramid walked by seed.DepthDependentMipmap and as the
// multi-scale scaffold for seed.BlueNoise. Grounded on the original
// source's Mipmaps::ComputeMipmaps (chrome-code/dasp), translated to an
// idiomatic slice-of-levels Go type rather than a template helper class.
package mipmap

// Level is one scalar image in the pyramid.
type Level struct {
	Width, Height int
	Data          []float64
}

// At returns the value at (x, y).
func (l Level) At(x, y int) float64 { return l.Data[y*l.Width+x] }

// Pyramid is D0 = D, D1, ..., Dk where each Di+1 is a 2x2 sum-reduction of
// Di. The invariant (spec.md section 4.2, "Mipmap sum") is that
// sum(Di) == sum(D0) for every level within float tolerance.
type Pyramid struct {
	Levels []Level
}

// Build constructs a pyramid from a W x H scalar image, halving resolution
// until both dimensions are at or below minSize (but never below 1x1).
func Build(data []float64, width, height, minSize int) Pyramid {
	if minSize < 1 {
		minSize = 1
	}
	base := Level{Width: width, Height: height, Data: append([]float64(nil), data...)}
	p := Pyramid{Levels: []Level{base}}

	cur := base
	for cur.Width > minSize || cur.Height > minSize {
		next := downsample(cur)
		p.Levels = append(p.Levels, next)
		if next.Width == cur.Width && next.Height == cur.Height {
			// a 1x1 level can't shrink further; stop to avoid looping.
			break
		}
		cur = next
	}
	return p
}

// downsample produces a 2x2 sum-reduced level; odd trailing rows/columns
// contribute to the last output row/column so no mass is lost.
func downsample(l Level) Level {
	nw := (l.Width + 1) / 2
	nh := (l.Height + 1) / 2
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	out := Level{Width: nw, Height: nh, Data: make([]float64, nw*nh)}
	for y := 0; y < l.Height; y++ {
		oy := y / 2
		for x := 0; x < l.Width; x++ {
			ox := x / 2
			out.Data[oy*nw+ox] += l.Data[y*l.Width+x]
		}
	}
	return out
}
