package seed

import (
	"context"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/dasp-vision/dasp/dasplog"
	"github.com/dasp-vision/dasp/mipmap"
	"github.com/dasp-vision/dasp/point"
)

// bluePoint is one kernel-density point carried through the blue-noise
// pipeline: position, weight, and scale (spec.md section 4.4).
type bluePoint struct {
	X, Y, Weight, Scale float64
}

const (
	kernelA       = 0.39894228 // 1/sqrt(2*pi)
	blueNoiseTemp = 0.5        // T in the Refine step
	extraLevels   = 4          // highest mipmap level (counted up from the base) used for initial placement
)

// kernelSquare evaluates K(d^2) = A * exp(-d^2/2) given the squared
// distance directly, avoiding a redundant sqrt+square round trip.
func kernelSquare(dSquared float64) float64 {
	return kernelA * math.Exp(-0.5*dSquared)
}

func scalePowerD(scale float64) float64 { return 1.0 / (scale * scale) }

func kernelScale(rho, weight float64) float64 { return math.Pow(rho/weight, -0.5) }

func zeroBorder(density mipmap.Level, x, y int) float64 {
	if x < 0 || x >= density.Width || y < 0 || y >= density.Height {
		return 0
	}
	return density.At(x, y)
}

// energyApprox is E(u) = sum_i sigma_i^-2 * K((u - p_i)^2 / sigma_i^2).
func energyApprox(pts []bluePoint, x, y float64) float64 {
	var sum float64
	for _, p := range pts {
		dx, dy := p.X-x, p.Y-y
		sum += scalePowerD(p.Scale) * kernelSquare((dx*dx+dy*dy)/(p.Scale*p.Scale))
	}
	return sum
}

// energy approximates the integral of |E(u) - rho(u)| du as a pixel sum.
func energy(pts []bluePoint, density mipmap.Level) float64 {
	var err float64
	for y := 0; y < density.Height; y++ {
		for x := 0; x < density.Width; x++ {
			a := energyApprox(pts, float64(x), float64(y))
			err += math.Abs(a - density.At(x, y))
		}
	}
	return err
}

// energyDerivative computes dE/d(px,py) for point i using the sign of
// (E_approx - rho) at each sample, per spec.md section 4.4.
func energyDerivative(pts []bluePoint, density mipmap.Level, i int) (dEx, dEy float64) {
	p := pts[i]
	psScl := 1.0 / (p.Scale * p.Scale)
	for y := 0; y < density.Height; y++ {
		uy := float64(y)
		for x := 0; x < density.Width; x++ {
			ux := float64(x)
			dx, dy := ux-p.X, uy-p.Y
			kVal := kernelSquare((dx*dx + dy*dy) * psScl)
			approx := energyApprox(pts, ux, uy)
			rho := density.At(x, y)
			if approx < rho {
				kVal = -kVal
			}
			dEx += kVal * dx
			dEy += kVal * dy
		}
	}
	a := 1.0 / math.Pow(p.Scale, 3) // D+1 = 3 for D=2
	return a * dEx, a * dEy
}

// placePoints implements BlueNoise::PlacePoints: visit pixels in a
// shuffled order, tentatively add a candidate point, and keep it only if
// doing so did not increase total energy.
func placePoints(density mipmap.Level, rng *rand.Rand) []bluePoint {
	n := density.Width * density.Height
	order := rng.Perm(n)

	var pts []bluePoint
	errCurrent := energy(pts, density)
	for _, i := range order {
		rho := density.Data[i]
		if rho == 0 {
			continue
		}
		q := 0.0
		if rho >= 1 {
			q = math.Ceil(math.Log2(rho) / 2)
		}
		weight := math.Pow(4, q) // 2^(D*q), D=2
		u := bluePoint{
			X:      float64(i % density.Width),
			Y:      float64(i / density.Width),
			Weight: weight,
			Scale:  kernelScale(rho, weight),
		}
		pts = append(pts, u)
		errNew := energy(pts, density)
		if errNew > errCurrent {
			pts = pts[:len(pts)-1]
		} else {
			errCurrent = errNew
		}
	}
	return pts
}

// splitDelta are the four +-sqrt(1/2) offsets used to fan a parent point
// out into up to four children.
var splitDelta = [4][2]float64{
	{-0.70710678, -0.70710678},
	{+0.70710678, -0.70710678},
	{-0.70710678, +0.70710678},
	{+0.70710678, +0.70710678},
}

// split implements BlueNoise::Split: descend one mipmap level, fanning out
// high-weight points into up to four children and keeping only those that
// land in positive-density regions.
func split(pts []bluePoint, density mipmap.Level) (out []bluePoint, added bool) {
	for _, u := range pts {
		if u.Weight > 1.0 {
			added = true
			u.X *= 2
			u.Y *= 2
			u.Weight /= 4
			for _, d := range splitDelta {
				ui := u
				ui.X += u.Scale * d[0]
				ui.Y += u.Scale * d[1]
				rho := zeroBorder(density, int(ui.X), int(ui.Y))
				if rho > 0 {
					ui.Scale = kernelScale(rho, ui.Weight)
					out = append(out, ui)
				}
			}
		} else {
			u.X *= 2
			u.Y *= 2
			u.Weight = 1.0
			rho := zeroBorder(density, int(u.X), int(u.Y))
			if rho > 0 {
				u.Scale = kernelScale(rho, u.Weight)
				out = append(out, u)
			}
		}
	}
	return out, added
}

// refine takes one stochastic gradient step per point: move by -c_A *
// gradient plus Gaussian noise of magnitude sqrt(T*sigma) (spec.md section
// 4.4).
func refine(pts []bluePoint, density mipmap.Level, rng *rand.Rand) {
	for i := range pts {
		p := &pts[i]
		cA := p.Scale / 2
		cB := math.Sqrt(blueNoiseTemp * p.Scale)
		dx, dy := energyDerivative(pts, density, i)
		p.X = p.X - cA*dx + cB*rng.NormFloat64()
		p.Y = p.Y - cA*dy + cB*rng.NormFloat64()
	}
}

// computeBlueNoise runs the full pipeline: build a mipmap of rho, use its
// finest extraLevels+1 levels (fewer if the pyramid is shorter), place
// initial points at the coarsest of those, then split-and-refine down to
// the base resolution. ctx is checked between levels, the single BlueNoise
// cancellation checkpoint spec.md section 5 calls for.
func computeBlueNoise(ctx context.Context, density []float64, width, height int, rng *rand.Rand, logger *dasplog.Logger) ([]bluePoint, error) {
	pyr := mipmap.Build(density, width, height, 1)
	levels := pyr.Levels
	// start at most extraLevels above the base (or at the pyramid's apex
	// if it has fewer levels), matching BlueNoise::Compute's explicit
	// level count p+1.
	startIdx := len(levels) - 1
	if startIdx > extraLevels {
		startIdx = extraLevels
	}

	var pts []bluePoint
	for i := startIdx; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var needRefine bool
		if i == startIdx {
			pts = placePoints(levels[i], rng)
			needRefine = true
		} else {
			pts, needRefine = split(pts, levels[i])
		}
		if needRefine {
			refine(pts, levels[i], rng)
		}
		logLevelConvergence(logger, i, pts)
	}
	return pts, nil
}

// logLevelConvergence reports the mean and unbiased sample standard deviation
// of the current points' kernel weights at DEBUG level: a weight
// distribution tightening around its mean as levels descend is the signal
// that Refine is converging rather than oscillating.
func logLevelConvergence(logger *dasplog.Logger, level int, pts []bluePoint) {
	if logger == nil || !logger.Enabled(dasplog.DEBUG) || len(pts) == 0 {
		return
	}
	weights := make([]float64, len(pts))
	for i, p := range pts {
		weights[i] = p.Weight
	}
	mean, std := stat.MeanStdDev(weights, nil)
	logger.Debugw("blue noise level converged", "level", level, "points", len(pts), "weight_mean", mean, "weight_stddev", std)
}

// PlaceBlueNoise runs the multi-scale kernel-density optimizer and converts
// the resulting points to Seeds, rounding and clipping to image bounds and
// copying Scala from the PointField (spec.md section 4.4).
func PlaceBlueNoise(ctx context.Context, pf *point.PointField, rng *rand.Rand, logger *dasplog.Logger) ([]Seed, error) {
	density := estimatedCounts(pf)
	pts, err := computeBlueNoise(ctx, density, pf.Width, pf.Height, rng, logger)
	if err != nil {
		return nil, err
	}

	seeds := make([]Seed, 0, len(pts))
	for _, p := range pts {
		x := int(math.Round(p.X))
		y := int(math.Round(p.Y))
		x = min(max(x, 0), pf.Width-1)
		y = min(max(y, 0), pf.Height-1)
		seeds = append(seeds, Seed{X: x, Y: y, Scala: pf.At(x, y).Scala})
	}
	return seeds, nil
}
