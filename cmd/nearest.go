package main

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"github.com/cityscale/healthatlas/internal/geo"
	"github.com/cityscale/healthatlas/internal/geodata"
)

var (
	nearestFacilitiesPath string
	nearestLat            float64
	nearestLon            float64
	nearestK              int
)

var nearestCmd = &cobra.Command{
	Use:   "nearest",
	Short: "Find the nearest facilities to a point",
	RunE: func(cmd *cobra.Command, args []string) error {
		facilities, err := geodata.LoadFacilities(nearestFacilitiesPath)
		if err != nil {
			return err
		}
		projected, err := geo.ParseCRS(cfg.Analysis.ProjectedCRS)
		if err != nil {
			return err
		}

		forward := projected.Forward()
		query := forward(orb.Point{nearestLon, nearestLat})

		type hit struct {
			idx    int
			meters float64
		}
		hits := make([]hit, len(facilities))
		for i := range facilities {
			hits[i] = hit{i, geo.Distance(query, forward(facilities[i].Location()))}
		}
		// Stable sort keeps input order for equidistant facilities.
		sort.SliceStable(hits, func(a, b int) bool { return hits[a].meters < hits[b].meters })

		k := nearestK
		if k > len(hits) {
			k = len(hits)
		}
		fmt.Printf("%d nearest facilities to (%.4f, %.4f):\n", k, nearestLat, nearestLon)
		for _, h := range hits[:k] {
			f := &facilities[h.idx]
			fmt.Printf("  %-40s %-12s %8.2f km\n", f.DisplayName(), f.Type, h.meters/1000)
		}
		return nil
	},
}

func init() {
	nearestCmd.Flags().StringVar(&nearestFacilitiesPath, "facilities", "", "facility GeoJSON file")
	nearestCmd.Flags().Float64Var(&nearestLat, "lat", 41.0369, "query latitude")
	nearestCmd.Flags().Float64Var(&nearestLon, "lon", 28.9850, "query longitude")
	nearestCmd.Flags().IntVar(&nearestK, "k", 3, "number of results")
	_ = nearestCmd.MarkFlagRequired("facilities")
	rootCmd.AddCommand(nearestCmd)
}
