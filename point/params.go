package point

import (
	"math"

	"github.com/pkg/errors"
)

// SeedMode selects the seed-placement strategy used by package seed.
type SeedMode int

const (
	// EquiDistant places seeds on a regular grid.
	EquiDistant SeedMode = iota
	// DepthDependentShooting draws seeds via CDF-inverse rejection sampling
	// weighted by depth^2. The original source left this unimplemented
	// (asserts false); this spec implements the documented fallback.
	DepthDependentShooting
	// DepthDependentMipmap walks a density mipmap top-down, placing seeds
	// stochastically once a cell's expected count drops to around one.
	DepthDependentMipmap
	// BlueNoise runs the multi-scale kernel-density point relaxation.
	BlueNoise
)

// Camera holds the pinhole parameters needed to turn depth into an
// expected on-screen superpixel radius (Point.Scala).
type Camera struct {
	Focal float64
}

// Parameters are the user-facing, resolution-independent knobs of the
// pipeline (spec.md section 3, "Parameters (base)").
type Parameters struct {
	ClusterCount        int
	WeightSpatial        float64
	WeightColor          float64
	WeightNormal         float64
	WeightDepth          float64
	Iterations           int
	Coverage             float64
	SeedMode             SeedMode
	Camera               Camera
	ClusterRadiusMeters  float64
	RNGSeed              uint64
}

// PixelSizeFactor is focal * cluster_radius_meters, the constant that turns
// 1/depth into a pixel radius.
func (p Parameters) PixelSizeFactor() float64 {
	return p.Camera.Focal * p.ClusterRadiusMeters
}

// Validate rejects parameters that would make the rest of the pipeline
// either ill-defined or silently wrong (spec.md section 7, InvalidInput).
func (p Parameters) Validate() error {
	if p.ClusterCount <= 0 {
		return errors.New("cluster_count must be positive")
	}
	if p.Iterations < 1 {
		return errors.New("iterations must be at least 1")
	}
	if p.Coverage <= 0 || math.IsNaN(p.Coverage) || math.IsInf(p.Coverage, 0) {
		return errors.New("coverage must be a finite positive number")
	}
	for name, w := range map[string]float64{
		"weight_spatial": p.WeightSpatial,
		"weight_color":   p.WeightColor,
		"weight_normal":  p.WeightNormal,
		"weight_depth":   p.WeightDepth,
	} {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return errors.Errorf("%s must be finite", name)
		}
	}
	if math.IsNaN(p.Camera.Focal) || math.IsInf(p.Camera.Focal, 0) || p.Camera.Focal <= 0 {
		return errors.New("camera.focal must be finite and positive")
	}
	if math.IsNaN(p.ClusterRadiusMeters) || math.IsInf(p.ClusterRadiusMeters, 0) || p.ClusterRadiusMeters <= 0 {
		return errors.New("cluster_radius_meters must be finite and positive")
	}
	return nil
}

// ParametersExt is the pure function of (Parameters, width, height) derived
// grid layout (spec.md section 3, "ParametersExt").
type ParametersExt struct {
	Parameters

	Width, Height int

	ClusterNX, ClusterNY int
	ClusterDX, ClusterDY float64

	Radius              float64
	SpatialNormalizer   float64
	WeightSpatialFinal  float64
}

// ComputeParametersExt derives the grid layout for an image of the given
// size, mirroring ComputeParameters in the original Superpixels.cpp.
func ComputeParametersExt(base Parameters, width, height int) ParametersExt {
	ext := ParametersExt{Parameters: base, Width: width, Height: height}

	d := math.Sqrt(float64(width*height) / float64(base.ClusterCount))
	ext.ClusterNX = int(math.Ceil(float64(width) / d))
	ext.ClusterNY = int(math.Ceil(float64(height) / d))
	if ext.ClusterNX < 1 {
		ext.ClusterNX = 1
	}
	if ext.ClusterNY < 1 {
		ext.ClusterNY = 1
	}
	ext.ClusterDX = math.Floor(float64(width) / float64(ext.ClusterNX))
	ext.ClusterDY = math.Floor(float64(height) / float64(ext.ClusterNY))
	ext.ClusterCount = ext.ClusterNX * ext.ClusterNY

	ext.Radius = math.Sqrt(ext.ClusterDX*ext.ClusterDX + ext.ClusterDY*ext.ClusterDY)
	if ext.Radius == 0 {
		ext.Radius = 1
	}
	ext.SpatialNormalizer = 1.0 / ext.Radius
	ext.WeightSpatialFinal = base.WeightSpatial * ext.SpatialNormalizer

	return ext
}
