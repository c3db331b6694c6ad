package seed

import (
	"context"
	"math/rand"

	"github.com/dasp-vision/dasp/dasplog"
	"github.com/dasp-vision/dasp/point"
	"github.com/pkg/errors"
)

// Find dispatches to the placement strategy named by ext.SeedMode, the
// single entry point spec.md section 9 calls for instead of dynamic
// inheritance over seed strategies. logger may be nil; only BlueNoise
// uses it, for per-level convergence diagnostics.
func Find(ctx context.Context, pf *point.PointField, ext point.ParametersExt, rng *rand.Rand, logger *dasplog.Logger) ([]Seed, error) {
	switch ext.SeedMode {
	case EquiDistant:
		return Grid(ext), nil
	case DepthDependentMipmap:
		return DepthMipmap(pf, rng), nil
	case BlueNoise:
		return PlaceBlueNoise(ctx, pf, rng, logger)
	case DepthDependentShooting:
		return Shooting(pf, ext.ClusterCount, rng), nil
	default:
		return nil, errors.Errorf("unknown seed mode %v", ext.SeedMode)
	}
}
