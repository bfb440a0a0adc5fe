package main

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cityscale/healthatlas/internal/analysis"
	"github.com/cityscale/healthatlas/internal/geodata"
	"github.com/cityscale/healthatlas/internal/model"
	"github.com/cityscale/healthatlas/internal/render"
	"github.com/cityscale/healthatlas/internal/store"
)

var (
	analyzeFacilitiesPath string
	analyzeDistrictsPath  string
	analyzeNoMap          bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the accessibility analysis",
	Long:  "Joins facilities to district polygons, computes nearest-facility distances from projected district centroids, scores each district 0-100, and writes the augmented districts, a summary, a CSV table, and an interactive map.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		facilities, err := loadFacilities(cmd)
		if err != nil {
			return err
		}
		districts, err := geodata.LoadDistricts(analyzeDistrictsPath, cfg.Classify.DistrictNameColumns)
		if err != nil {
			return err
		}

		result, err := analysis.Run(ctx, facilities, districts, analysis.Options{
			ProjectedCRS: cfg.Analysis.ProjectedCRS,
			Workers:      cfg.Analysis.Workers,
		})
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return eris.Wrap(err, "analyze: create output dir")
		}
		if err := geodata.SaveDistricts(filepath.Join(cfg.Output.Dir, "districts.geojson"), result.Districts); err != nil {
			return err
		}
		if err := geodata.SaveDistrictsCSV(filepath.Join(cfg.Output.Dir, "districts.csv"), result.Districts); err != nil {
			return err
		}
		if err := geodata.SaveSummary(filepath.Join(cfg.Output.Dir, "summary.json"), result.Summary); err != nil {
			return err
		}
		if !analyzeNoMap {
			mapPath := filepath.Join(cfg.Output.Dir, "map.html")
			err := render.WriteMap(mapPath, result.Districts, facilities, render.MapOptions{
				Title:     cfg.City.Name + " Healthcare Accessibility",
				CenterLat: cfg.City.CenterLat,
				CenterLon: cfg.City.CenterLon,
			})
			if err != nil {
				return err
			}
			zap.L().Info("analyze: map written", zap.String("path", mapPath))
		}

		zap.L().Info("analyze: done",
			zap.Int("districts", result.Summary.TotalDistricts),
			zap.Int("assigned_facilities", result.Summary.TotalFacilities),
			zap.Int("unassigned_facilities", result.Summary.UnassignedCount),
			zap.Float64("mean_score", result.Summary.MeanScore),
			zap.String("best", result.Summary.BestDistrict),
			zap.String("worst", result.Summary.WorstDistrict),
		)
		return nil
	},
}

// loadFacilities reads the facility set from the --facilities file when
// given, otherwise from the latest snapshot for the configured city.
func loadFacilities(cmd *cobra.Command) ([]model.Facility, error) {
	if analyzeFacilitiesPath != "" {
		return geodata.LoadFacilities(analyzeFacilitiesPath)
	}

	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = st.Close() }()
	if err := st.Migrate(cmd.Context()); err != nil {
		return nil, err
	}
	snap, facilities, err := st.LatestSnapshot(cmd.Context(), cfg.City.Name)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, eris.Errorf("analyze: no snapshot for %s; run collect first or pass --facilities", cfg.City.Name)
	}
	zap.L().Info("analyze: using snapshot",
		zap.String("snapshot_id", snap.ID),
		zap.Time("collected_at", snap.CollectedAt),
		zap.Int("facilities", snap.FacilityCount),
	)
	return facilities, nil
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFacilitiesPath, "facilities", "", "facility GeoJSON file (default: latest snapshot)")
	analyzeCmd.Flags().StringVar(&analyzeDistrictsPath, "districts", "", "district boundary file (GeoJSON or shapefile)")
	analyzeCmd.Flags().BoolVar(&analyzeNoMap, "no-map", false, "skip writing the HTML map")
	_ = analyzeCmd.MarkFlagRequired("districts")
	rootCmd.AddCommand(analyzeCmd)
}
