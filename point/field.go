package point

import (
	"runtime"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// PointField is a dense W x H grid of Points, immutable after construction
// (spec.md section 3).
type PointField struct {
	Width, Height int
	Pixels        []Point
}

// Index returns the linear index of pixel (x, y).
func (f *PointField) Index(x, y int) int { return y*f.Width + x }

// At returns the point at pixel (x, y).
func (f *PointField) At(x, y int) Point { return f.Pixels[f.Index(x, y)] }

// Size returns width * height.
func (f *PointField) Size() int { return f.Width * f.Height }

// NewPointField builds a PointField from raw image buffers: color is
// W*H*3 bytes row-major, depthMM is W*H row-major millimeters (0 =
// invalid), and normals, if non-nil, is W*H*3 row-major unit vectors. The
// construction is total: every pixel gets a Point, invalid ones simply
// have Scala == 0 and Depth == 0 (spec.md section 4.1).
func NewPointField(color []uint8, depthMM []uint16, normals []float32, width, height int, params Parameters) (*PointField, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("width and height must be positive")
	}
	n := width * height
	if len(color) != n*3 {
		return nil, errors.Errorf("color buffer has %d bytes, want %d", len(color), n*3)
	}
	if len(depthMM) != n {
		return nil, errors.Errorf("depth buffer has %d samples, want %d", len(depthMM), n)
	}
	if normals != nil && len(normals) != n*3 {
		return nil, errors.Errorf("normals buffer has %d floats, want %d", len(normals), n*3)
	}

	field := &PointField{Width: width, Height: height, Pixels: make([]Point, n)}
	pixelSizeFactor := params.PixelSizeFactor()
	cx, cy := float64(width-1)/2, float64(height-1)/2
	focal := params.Camera.Focal

	fill := func(i int) {
		p := Point{
			Color: r3.Vector{
				X: float64(color[3*i]) / 255.0,
				Y: float64(color[3*i+1]) / 255.0,
				Z: float64(color[3*i+2]) / 255.0,
			},
			Pos: Vec2{X: float64(i % width), Y: float64(i / width)},
		}
		d := depthMM[i]
		if d > 0 {
			p.Depth = float64(d) * 0.001
			p.Scala = pixelSizeFactor / p.Depth
			if focal > 0 {
				p.World = r3.Vector{
					X: (p.Pos.X - cx) * p.Depth / focal,
					Y: (p.Pos.Y - cy) * p.Depth / focal,
					Z: p.Depth,
				}
			}
		}
		if normals != nil {
			p.Normal = r3.Vector{
				X: float64(normals[3*i]),
				Y: float64(normals[3*i+1]),
				Z: float64(normals[3*i+2]),
			}
		} else {
			p.Normal = cameraFacingNormal
		}
		field.Pixels[i] = p
	}

	parallelOverPixels(n, fill)
	return field, nil
}

// parallelOverPixels partitions [0, n) into per-CPU tiles and runs fn over
// each index, matching the teacher's pixel-parallel pattern of private,
// per-goroutine work with no shared mutable state (spec.md section 5).
func parallelOverPixels(n int, fn func(i int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, (w+1)*chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		utils.PanicCapturingGo(func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		})
	}
	wg.Wait()
}
