package dasp

import (
	"github.com/dasp-vision/dasp/graph"
	"github.com/dasp-vision/dasp/point"
)

// LabelingMethod selects which LabelingUtilities operation Process runs to
// turn the spectral-annotated graph into a final segment labeling (spec.md
// section 4.10 names both; the pipeline must pick one per run).
type LabelingMethod int

const (
	// UCMLabeling builds the ultrametric contour map and halts merging at
	// Tau, the default: it gives a hierarchy-consistent result across
	// thresholds (spec.md section 8's UCM monotonicity property).
	UCMLabeling LabelingMethod = iota
	// ThresholdLabeling keeps edges with weight <= Tau and takes connected
	// components directly, without UCM's progressive merge order.
	ThresholdLabeling
)

// SpectralParams configure the SpectralSegmenter step (spec.md section
// 4.9).
type SpectralParams struct {
	NumEigenvectors int
	WSpatial        float64
	WColor          float64
	WNormal         float64
	ConcaveOnly     bool
}

// GraphParams configure NeighborhoodGraph construction (spec.md section
// 4.8).
type GraphParams struct {
	MinAbsBorderOverlap int
	MinBorderOverlap    float64
	AffinityMode        graph.AffinityMode
}

// Params is the external, resolution-independent parameter record spec.md
// section 6 names, gathering point.Parameters plus the spectral, graph,
// and final-labeling knobs the rest of the pipeline needs.
type Params struct {
	ClusterCount        int
	Iterations          int
	Coverage            float64
	WeightColor         float64
	WeightSpatial       float64
	WeightNormal        float64
	WeightDepth         float64
	CameraFocal         float64
	ClusterRadiusMeters float64
	SeedMode            point.SeedMode
	RNGSeed             uint64

	Spectral SpectralParams
	Graph    GraphParams

	LabelingMethod LabelingMethod
	// Tau is the boundary-strength threshold consumed by LabelingMethod
	// (spec.md section 4.10); it is not named in spec.md section 6's
	// external interface list, so this pipeline adds it as the one knob
	// needed to drive LabelingUtilities from Process.
	Tau float64
}

func (p Params) toPointParameters() point.Parameters {
	return point.Parameters{
		ClusterCount:        p.ClusterCount,
		WeightSpatial:       p.WeightSpatial,
		WeightColor:         p.WeightColor,
		WeightNormal:        p.WeightNormal,
		WeightDepth:         p.WeightDepth,
		Iterations:          p.Iterations,
		Coverage:            p.Coverage,
		SeedMode:            p.SeedMode,
		Camera:              point.Camera{Focal: p.CameraFocal},
		ClusterRadiusMeters: p.ClusterRadiusMeters,
		RNGSeed:             p.RNGSeed,
	}
}
