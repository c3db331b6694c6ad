package graph

import (
	"testing"

	"go.viam.com/test"

	"github.com/dasp-vision/dasp/cluster"
	"github.com/dasp-vision/dasp/point"
	"github.com/dasp-vision/dasp/seed"
)

func stepField(t *testing.T, w, h int) *point.PointField {
	t.Helper()
	color := make([]uint8, w*h*3)
	depth := make([]uint16, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := uint16(1000)
			if x >= w/2 {
				d = 2000
			}
			depth[y*w+x] = d
		}
	}
	params := point.Parameters{
		ClusterCount:        2,
		WeightSpatial:       1,
		WeightColor:         1,
		WeightNormal:        1,
		WeightDepth:         1,
		Iterations:          2,
		Coverage:            1.7,
		Camera:              point.Camera{Focal: 25},
		ClusterRadiusMeters: 0.05,
	}
	f, err := point.NewPointField(color, depth, nil, w, h, params)
	test.That(t, err, test.ShouldBeNil)
	return f
}

func twoClusters(t *testing.T, pf *point.PointField) []cluster.Cluster {
	t.Helper()
	seeds := []seed.Seed{
		{X: pf.Width/4, Y: pf.Height / 2, Scala: 4},
		{X: 3 * pf.Width / 4, Y: pf.Height / 2, Scala: 4},
	}
	clusters := cluster.CreateClusters(seeds, pf)
	opt := cluster.Options{Weights: cluster.Weights{Color: 1, Spatial: 1, Normal: 1, Depth: 1}, Coverage: 1.7, Iterations: 3}
	clusters = cluster.MoveClusters(clusters, pf, opt)
	return clusters
}

func TestBuildFindsAdjacentClusters(t *testing.T) {
	pf := stepField(t, 16, 8)
	clusters := twoClusters(t, pf)
	labels := cluster.PixelLabels(clusters, pf)

	g := Build(clusters, labels, pf, Settings{})
	test.That(t, len(g.Edges), test.ShouldBeGreaterThan, 0)
	e := g.Edges[0]
	test.That(t, e.CWorld, test.ShouldBeGreaterThan, 0.0)
	test.That(t, len(e.BorderPixels), test.ShouldBeGreaterThan, 0)
}

func TestBuildFiltersLowOverlapEdges(t *testing.T) {
	pf := stepField(t, 16, 8)
	clusters := twoClusters(t, pf)
	labels := cluster.PixelLabels(clusters, pf)

	g := Build(clusters, labels, pf, Settings{MinAbsBorderOverlap: 10_000})
	test.That(t, len(g.Edges), test.ShouldEqual, 0)
}

func TestBuildNoSelfEdges(t *testing.T) {
	pf := stepField(t, 16, 8)
	clusters := twoClusters(t, pf)
	labels := cluster.PixelLabels(clusters, pf)

	g := Build(clusters, labels, pf, Settings{})
	for _, e := range g.Edges {
		test.That(t, e.A, test.ShouldNotEqual, e.B)
	}
}
