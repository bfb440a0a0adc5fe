// Package analysis runs the full accessibility analysis: spatial join,
// per-district nearest distances, scoring, and summary statistics. Each
// run is a pure function of its inputs; the input slices are never
// mutated and every run produces a complete new district set.
package analysis

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cityscale/healthatlas/internal/distance"
	"github.com/cityscale/healthatlas/internal/geo"
	"github.com/cityscale/healthatlas/internal/model"
	"github.com/cityscale/healthatlas/internal/scorer"
	"github.com/cityscale/healthatlas/internal/spatial"
)

// Options configures one analysis run.
type Options struct {
	// ProjectedCRS is the metric system used for all distance math,
	// e.g. "EPSG:32635" (UTM 35N, Istanbul).
	ProjectedCRS string
	// Workers bounds the per-district distance fan-out. Zero means one
	// worker per CPU.
	Workers int
}

// Result is the complete output of one run.
type Result struct {
	Districts   []model.District
	Diagnostics spatial.Diagnostics
	Summary     model.Summary
}

// Run executes the analysis over the given facility and district sets.
// A failed run returns an error and no partial result.
func Run(ctx context.Context, facilities []model.Facility, districts []model.District, opts Options) (*Result, error) {
	projected, err := geo.ParseCRS(opts.ProjectedCRS)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: projected CRS")
	}
	if projected.Geographic {
		return nil, eris.Wrapf(geo.ErrInvalidCRS, "analysis: %s is not a projected system", opts.ProjectedCRS)
	}
	if len(districts) == 0 {
		return nil, eris.New("analysis: no districts to analyze")
	}

	out := make([]model.District, len(districts))
	copy(out, districts)

	join := spatial.Join(facilities, out)
	for i := range out {
		out[i].FacilityCount = join.Counts[out[i].ID]
	}

	nearest, err := distance.PerDistrict(ctx, out, facilities, projected, opts.Workers)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: nearest distances")
	}
	for i := range out {
		out[i].NearestKM = nearest[out[i].ID]
	}

	out = scorer.Score(out)
	summary := scorer.Summarize(out)
	summary.UnassignedCount = len(join.Diagnostics.Unassigned)
	summary.ProjectedCRS = projected.Code

	zap.L().Info("analysis: run complete",
		zap.Int("districts", len(out)),
		zap.Int("facilities", len(facilities)),
		zap.Int("unassigned", summary.UnassignedCount),
		zap.String("best", summary.BestDistrict),
		zap.String("worst", summary.WorstDistrict),
	)

	return &Result{
		Districts:   out,
		Diagnostics: join.Diagnostics,
		Summary:     summary,
	}, nil
}
