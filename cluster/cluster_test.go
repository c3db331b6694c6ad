package cluster

import (
	"context"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/dasp-vision/dasp/point"
	"github.com/dasp-vision/dasp/seed"
)

func flatField(t *testing.T, w, h int, depthMM uint16) *point.PointField {
	t.Helper()
	color := make([]uint8, w*h*3)
	depth := make([]uint16, w*h)
	for i := range depth {
		depth[i] = depthMM
	}
	params := point.Parameters{
		ClusterCount:        4,
		WeightSpatial:       1,
		WeightColor:         1,
		WeightNormal:        1,
		WeightDepth:         1,
		Iterations:          3,
		Coverage:            1.7,
		Camera:              point.Camera{Focal: 25},
		ClusterRadiusMeters: 0.05,
	}
	f, err := point.NewPointField(color, depth, nil, w, h, params)
	test.That(t, err, test.ShouldBeNil)
	return f
}

func TestUpdateCenterAveragesValidMembersOnly(t *testing.T) {
	pf := &point.PointField{
		Width: 2, Height: 1,
		Pixels: []point.Point{
			{Pos: point.Vec2{X: 0, Y: 0}, Color: r3.Vector{X: 0, Y: 0, Z: 0}, Depth: 0, Normal: r3.Vector{}},
			{Pos: point.Vec2{X: 1, Y: 0}, Color: r3.Vector{X: 1, Y: 1, Z: 1}, Depth: 2, Normal: r3.Vector{X: 0, Y: 0, Z: -1}},
		},
	}
	c := Cluster{PixelIDs: []int{0, 1}}
	c.UpdateCenter(pf)

	test.That(t, c.Center.Pos.X, test.ShouldEqual, 0.5)
	test.That(t, c.Center.Depth, test.ShouldEqual, 2.0)
	test.That(t, c.Center.Normal.Z, test.ShouldEqual, -1.0)
	test.That(t, c.Valid(), test.ShouldBeTrue)
}

func TestUpdateCenterEmptyClusterInvalid(t *testing.T) {
	var c Cluster
	pf := flatField(t, 4, 4, 1000)
	c.UpdateCenter(pf)
	test.That(t, c.Valid(), test.ShouldBeFalse)
}

func TestDistanceZeroForIdenticalPoints(t *testing.T) {
	pf := flatField(t, 4, 4, 1000)
	p := pf.At(0, 0)
	w := Weights{Color: 1, Spatial: 1, Normal: 1, Depth: 1}
	test.That(t, Distance(p, p, w), test.ShouldEqual, 0.0)
}

func TestComputeEdgeFieldBorderIsInfinite(t *testing.T) {
	pf := flatField(t, 8, 8, 1000)
	w := Weights{Color: 1, Spatial: 1, Normal: 1, Depth: 1}
	field := ComputeEdgeField(pf, w)
	test.That(t, math.IsInf(field.At(0, 0), 1), test.ShouldBeTrue)
}

func TestImproveSeedsStaysWithinBounds(t *testing.T) {
	pf := flatField(t, 8, 8, 1000)
	w := Weights{Color: 1, Spatial: 1, Normal: 1, Depth: 1}
	field := ComputeEdgeField(pf, w)
	seeds := []seed.Seed{{X: 4, Y: 4, Scala: 2}}
	improved := ImproveSeeds(seeds, field)
	test.That(t, improved[0].X, test.ShouldBeBetweenOrEqual, 0, 7)
	test.That(t, improved[0].Y, test.ShouldBeBetweenOrEqual, 0, 7)
}

func TestCreateClustersDropsNothingOnUniformField(t *testing.T) {
	pf := flatField(t, 16, 16, 1000)
	ext := point.ComputeParametersExt(point.Parameters{ClusterCount: 4, Camera: point.Camera{Focal: 25}, ClusterRadiusMeters: 0.05}, pf.Width, pf.Height)
	seeds := seed.Seed{X: 8, Y: 8, Scala: ext.Radius}
	clusters := CreateClusters([]seed.Seed{seeds}, pf)
	test.That(t, len(clusters), test.ShouldEqual, 1)
	test.That(t, clusters[0].Valid(), test.ShouldBeTrue)
}

func TestRunRespectsCancellation(t *testing.T) {
	pf := flatField(t, 16, 16, 1000)
	clusters := CreateClusters([]seed.Seed{{X: 8, Y: 8, Scala: 4}}, pf)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, clusters, pf, Options{Weights: Weights{Color: 1, Spatial: 1, Normal: 1, Depth: 1}, Coverage: 1.7, Iterations: 5})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPixelLabelsCoversClusterMembers(t *testing.T) {
	pf := flatField(t, 8, 8, 1000)
	clusters := CreateClusters([]seed.Seed{{X: 4, Y: 4, Scala: 8}}, pf)
	clusters, err := Run(context.Background(), clusters, pf, Options{Weights: Weights{Color: 1, Spatial: 1, Normal: 1, Depth: 1}, Coverage: 1.7, Iterations: 2})
	test.That(t, err, test.ShouldBeNil)
	labels := PixelLabels(clusters, pf)
	test.That(t, len(labels), test.ShouldEqual, pf.Size())
	for _, id := range clusters[0].PixelIDs {
		test.That(t, labels[id], test.ShouldEqual, 0)
	}
}
