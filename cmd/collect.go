package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cityscale/healthatlas/internal/geodata"
	"github.com/cityscale/healthatlas/internal/osm"
	"github.com/cityscale/healthatlas/internal/store"
)

var collectSkipStore bool

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Fetch healthcare facilities from OpenStreetMap",
	Long:  "Queries the Overpass API for hospitals, clinics, doctors, and healthcare-tagged features in the configured city, classifies them, and writes GeoJSON, CSV, metadata, and a snapshot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		collector := osm.New(
			cfg.Overpass.Endpoint,
			time.Duration(cfg.Overpass.TimeoutSecs)*time.Second,
			cfg.Classify.SectorRuleTable(),
		)
		facilities, err := collector.Collect(ctx, cfg.City.Name, cfg.City.AdminLevel)
		if err != nil {
			return err
		}
		if len(facilities) == 0 {
			return eris.Errorf("collect: no facilities found for %s", cfg.City.Name)
		}

		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return eris.Wrap(err, "collect: create output dir")
		}

		geojsonPath := filepath.Join(cfg.Output.Dir, "facilities.geojson")
		if err := geodata.SaveFacilities(geojsonPath, facilities); err != nil {
			return err
		}
		csvPath := filepath.Join(cfg.Output.Dir, "facilities.csv")
		if err := geodata.SaveFacilitiesCSV(csvPath, facilities); err != nil {
			return err
		}
		md := geodata.BuildMetadata(cfg.City.Name, facilities, time.Now().UTC())
		if err := geodata.SaveMetadata(filepath.Join(cfg.Output.Dir, "metadata.json"), md); err != nil {
			return err
		}

		if !collectSkipStore {
			st, err := store.NewSQLite(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()
			if err := st.Migrate(ctx); err != nil {
				return err
			}
			snap, err := st.SaveSnapshot(ctx, cfg.City.Name, facilities)
			if err != nil {
				return err
			}
			zap.L().Info("collect: snapshot saved",
				zap.String("snapshot_id", snap.ID),
				zap.Int("facilities", snap.FacilityCount),
			)
		}

		zap.L().Info("collect: done",
			zap.Int("facilities", len(facilities)),
			zap.String("geojson", geojsonPath),
			zap.String("csv", csvPath),
		)
		return nil
	},
}

func init() {
	collectCmd.Flags().BoolVar(&collectSkipStore, "no-store", false, "skip writing the snapshot database")
	rootCmd.AddCommand(collectCmd)
}
