package dasp

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/dasp-vision/dasp/point"
)

func baseParams() Params {
	return Params{
		ClusterCount:        12,
		Iterations:          3,
		Coverage:            1.7,
		WeightColor:         1,
		WeightSpatial:       1,
		WeightNormal:        1,
		WeightDepth:         1,
		CameraFocal:         25,
		ClusterRadiusMeters: 0.05,
		SeedMode:            point.EquiDistant,
		RNGSeed:             42,
		Spectral:            SpectralParams{NumEigenvectors: 4, WSpatial: 1, WColor: 1, WNormal: 1, ConcaveOnly: true},
		LabelingMethod:      UCMLabeling,
		Tau:                 2.0,
	}
}

func uniformBuffers(w, h int, depthMM uint16) ([]uint8, []uint16) {
	color := make([]uint8, w*h*3)
	for i := range color {
		color[i] = 128
	}
	depth := make([]uint16, w*h)
	for i := range depth {
		depth[i] = depthMM
	}
	return color, depth
}

func TestProcessSolidDepthPlaneCoversAllPixels(t *testing.T) {
	w, h := 64, 48
	color, depth := uniformBuffers(w, h, 1000)
	params := baseParams()
	params.ClusterCount = 12

	res, err := Process(context.Background(), color, depth, nil, w, h, params, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(res.Clusters), test.ShouldBeGreaterThan, 0)

	for _, l := range res.PixelLabels {
		test.That(t, l, test.ShouldBeGreaterThanOrEqualTo, 0)
		test.That(t, l, test.ShouldBeLessThan, len(res.Clusters))
	}
}

func TestProcessDepthStepSeedsMoreOnNearSide(t *testing.T) {
	w, h := 64, 64
	color := make([]uint8, w*h*3)
	for i := range color {
		color[i] = 128
	}
	depth := make([]uint16, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := uint16(500)
			if x >= w/2 {
				d = 2000
			}
			depth[y*w+x] = d
		}
	}
	params := baseParams()
	params.SeedMode = point.DepthDependentMipmap
	params.ClusterCount = 64

	res, err := Process(context.Background(), color, depth, nil, w, h, params, nil)
	test.That(t, err, test.ShouldBeNil)

	var near, far int
	for _, c := range res.Clusters {
		if c.Center.Pos.X < float64(w)/2 {
			near++
		} else {
			far++
		}
	}
	test.That(t, near, test.ShouldBeGreaterThan, far)
}

func TestProcessColorEdgeClustersStayPure(t *testing.T) {
	w, h := 32, 32
	color := make([]uint8, w*h*3)
	depth := make([]uint16, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			depth[i] = 1000
			if x < w/2 {
				color[3*i] = 255 // red
			} else {
				color[3*i+2] = 255 // blue
			}
		}
	}
	params := baseParams()
	params.ClusterCount = 8
	params.Iterations = 5

	res, err := Process(context.Background(), color, depth, nil, w, h, params, nil)
	test.That(t, err, test.ShouldBeNil)

	for _, c := range res.Clusters {
		var sawRed, sawBlue bool
		for _, idx := range c.PixelIDs {
			x := idx % w
			if x < w/2-1 {
				sawRed = true
			} else if x > w/2 {
				sawBlue = true
			}
		}
		test.That(t, sawRed && sawBlue, test.ShouldBeFalse)
	}
}

func TestProcessDegenerateFrameReturnsEmptyNoError(t *testing.T) {
	w, h := 16, 16
	color, depth := uniformBuffers(w, h, 0)
	params := baseParams()

	res, err := Process(context.Background(), color, depth, nil, w, h, params, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(res.Clusters), test.ShouldEqual, 0)
	test.That(t, len(res.Graph.Edges), test.ShouldEqual, 0)
}

func TestProcessCancellationBeforeFirstIteration(t *testing.T) {
	w, h := 32, 32
	color, depth := uniformBuffers(w, h, 1000)
	params := baseParams()
	params.Iterations = 50

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Process(ctx, color, depth, nil, w, h, params, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrCancelled), test.ShouldBeTrue)
}

func TestProcessRejectsInvalidParameters(t *testing.T) {
	w, h := 8, 8
	color, depth := uniformBuffers(w, h, 1000)
	params := baseParams()
	params.ClusterCount = 0

	_, err := Process(context.Background(), color, depth, nil, w, h, params, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrInvalidInput), test.ShouldBeTrue)
}

func TestProcessDeterministicGivenSameSeed(t *testing.T) {
	w, h := 32, 32
	color, depth := uniformBuffers(w, h, 1000)
	params := baseParams()

	a, err := Process(context.Background(), color, depth, nil, w, h, params, nil)
	test.That(t, err, test.ShouldBeNil)
	b, err := Process(context.Background(), color, depth, nil, w, h, params, nil)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, a.PixelLabels, test.ShouldResemble, b.PixelLabels)
	test.That(t, len(a.Clusters), test.ShouldEqual, len(b.Clusters))
}
