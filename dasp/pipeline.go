// Package dasp orchestrates the full depth-adaptive superpixel pipeline:
// PointField construction, seed placement and improvement, the
// ClusterEngine, NeighborhoodGraph construction, spectral segmentation,
// and final labeling. Grounded on Superpixels.cpp's top-level Compute
// entry point, which runs the same stages in the same order.
package dasp

import (
	"context"
	"math/rand"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dasp-vision/dasp/cluster"
	"github.com/dasp-vision/dasp/dasplog"
	"github.com/dasp-vision/dasp/graph"
	"github.com/dasp-vision/dasp/labeling"
	"github.com/dasp-vision/dasp/point"
	"github.com/dasp-vision/dasp/seed"
	"github.com/dasp-vision/dasp/spectral"
)

// Result is the output of one Process call (spec.md section 6, Outputs).
type Result struct {
	RunID       uuid.UUID
	Clusters    []cluster.Cluster
	PixelLabels []int
	Graph       *graph.Graph
	Labeling    labeling.ClusterLabeling
	Segments    map[int][]int
}

// empty returns a zero-valued Result carrying only a run id, the
// DegenerateFrame response spec.md section 7 calls for: not an error.
func empty(runID uuid.UUID) *Result {
	return &Result{RunID: runID, Graph: &graph.Graph{}}
}

// Process runs the full pipeline once over a single RGB-D(+normals) frame.
// color is W*H*3 row-major 8-bit bytes, depthMM is W*H row-major 16-bit
// millimeters (0 = invalid), and normals, if non-nil, is W*H*3 row-major
// float32 unit vectors (spec.md section 6). logger may be nil.
func Process(ctx context.Context, color []uint8, depthMM []uint16, normals []float32, width, height int, params Params, logger *dasplog.Logger) (*Result, error) {
	runID := uuid.New()

	pointParams := params.toPointParameters()
	if err := pointParams.Validate(); err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "%s (run %s)", err, runID)
	}

	pf, err := point.NewPointField(color, depthMM, normals, width, height, pointParams)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "%s (run %s)", err, runID)
	}

	if !anyValid(pf) {
		logger.Infow("degenerate frame: no valid depth", "run_id", runID)
		return empty(runID), nil
	}

	ext := point.ComputeParametersExt(pointParams, width, height)
	rng := rand.New(rand.NewSource(int64(params.RNGSeed)))

	seeds, err := seed.Find(ctx, pf, ext, rng, logger)
	if err != nil {
		return nil, cancelOrWrap(err, runID)
	}
	if len(seeds) == 0 {
		logger.Infow("degenerate frame: no seeds placed", "run_id", runID)
		return empty(runID), nil
	}

	weights := cluster.Weights{
		Color:   ext.WeightColor,
		Spatial: ext.WeightSpatialFinal,
		Normal:  ext.WeightNormal,
		Depth:   ext.WeightDepth,
	}

	edgeField := cluster.ComputeEdgeField(pf, weights)
	seeds = cluster.ImproveSeeds(seeds, edgeField)

	clusters := cluster.CreateClusters(seeds, pf)
	if len(clusters) == 0 {
		logger.Infow("degenerate frame: no valid clusters", "run_id", runID)
		return empty(runID), nil
	}

	clusters, err = cluster.Run(ctx, clusters, pf, cluster.Options{
		Weights:    weights,
		Coverage:   ext.Coverage,
		Iterations: ext.Iterations,
	})
	if err != nil {
		return nil, cancelOrWrap(err, runID)
	}

	pixelLabels := cluster.PixelLabels(clusters, pf)

	g := graph.Build(clusters, pixelLabels, pf, graph.Settings{
		MinAbsBorderOverlap: params.Graph.MinAbsBorderOverlap,
		MinBorderOverlap:    params.Graph.MinBorderOverlap,
	})

	if len(g.Edges) > 0 {
		eigenvalues, err := spectral.Segment(g, spectral.Settings{
			NumEigenvectors: params.Spectral.NumEigenvectors,
			WSpatial:        params.Spectral.WSpatial,
			WColor:          params.Spectral.WColor,
			WNormal:         params.Spectral.WNormal,
			ConcaveOnly:     params.Spectral.ConcaveOnly,
			Mode:            params.Graph.AffinityMode,
		})
		if err != nil {
			return nil, errors.Wrapf(ErrNumericFailure, "%s (run %s)", err, runID)
		}
		logger.Debugw("spectral eigenvalues", "run_id", runID, "count", len(eigenvalues))
	}

	var lbl labeling.ClusterLabeling
	switch params.LabelingMethod {
	case ThresholdLabeling:
		lbl = labeling.CreateLabelsFromBoundaries(g, params.Tau)
	default:
		lbl = labeling.UCM(g, params.Tau)
	}

	return &Result{
		RunID:       runID,
		Clusters:    clusters,
		PixelLabels: pixelLabels,
		Graph:       g,
		Labeling:    lbl,
		Segments:    labeling.Segments(lbl),
	}, nil
}

func anyValid(pf *point.PointField) bool {
	for _, p := range pf.Pixels {
		if p.Valid() {
			return true
		}
	}
	return false
}

// cancelOrWrap tags a seed.Find or cluster.Run failure with the run id. A
// context cancellation or deadline becomes ErrCancelled; any other failure
// (seed.Find's unknown seed mode) becomes ErrInvalidInput.
func cancelOrWrap(err error, runID uuid.UUID) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrapf(ErrCancelled, "%s (run %s)", err, runID)
	}
	return errors.Wrapf(ErrInvalidInput, "%s (run %s)", err, runID)
}
