package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cityscale/healthatlas/internal/geo"
	"github.com/cityscale/healthatlas/internal/geodata"
	"github.com/cityscale/healthatlas/internal/model"
	"github.com/cityscale/healthatlas/internal/spatial"
)

var bufferFacilitiesPath string

var bufferCmd = &cobra.Command{
	Use:   "buffer",
	Short: "Compute facility coverage buffers",
	Long:  "Builds the union of fixed-radius disks around every facility for each configured radius and reports the covered area.",
	RunE: func(cmd *cobra.Command, args []string) error {
		facilities, err := geodata.LoadFacilities(bufferFacilitiesPath)
		if err != nil {
			return err
		}
		projected, err := geo.ParseCRS(cfg.Analysis.ProjectedCRS)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return eris.Wrap(err, "buffer: create output dir")
		}

		zones := make([]model.BufferZone, 0, len(cfg.Analysis.BufferRadiiKM))
		for _, radius := range cfg.Analysis.BufferRadiiKM {
			zone, err := spatial.Buffer(facilities, radius, projected, cfg.Analysis.BufferCellM)
			if err != nil {
				return err
			}
			zones = append(zones, zone)

			zonePath := filepath.Join(cfg.Output.Dir, fmt.Sprintf("buffer_%gkm.geojson", radius))
			if err := geodata.SaveBufferZoneGeoJSON(zonePath, zone); err != nil {
				return err
			}
			fmt.Printf("Buffer %gkm: covers %.1f km² (%s)\n", zone.RadiusKM, zone.AreaKM2, zonePath)
		}

		path := filepath.Join(cfg.Output.Dir, "buffers.json")
		if err := geodata.SaveBufferZones(path, zones); err != nil {
			return err
		}
		fmt.Printf("Saved buffer report: %s\n", path)
		return nil
	},
}

func init() {
	bufferCmd.Flags().StringVar(&bufferFacilitiesPath, "facilities", "", "facility GeoJSON file")
	_ = bufferCmd.MarkFlagRequired("facilities")
	rootCmd.AddCommand(bufferCmd)
}
