package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cityscale/healthatlas/internal/store"
)

var snapshotsLimit int

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List stored collection snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}

		snaps, err := st.ListSnapshots(cmd.Context(), cfg.City.Name, snapshotsLimit)
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			fmt.Printf("No snapshots for %s\n", cfg.City.Name)
			return nil
		}
		for _, s := range snaps {
			fmt.Printf("%s  %s  %5d facilities  %s\n",
				s.ID, s.City, s.FacilityCount, s.CollectedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	snapshotsCmd.Flags().IntVar(&snapshotsLimit, "limit", 20, "maximum snapshots to list")
	rootCmd.AddCommand(snapshotsCmd)
}
