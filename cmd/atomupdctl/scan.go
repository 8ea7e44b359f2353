package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Build the catalog once and print ingestion diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, diagnostics, err := buildCatalog(context.Background())
			if err != nil {
				return err
			}

			printDiagnostics(diagnostics)

			tracks := cat.Tracks()
			total := 0
			for _, track := range tracks {
				total += len(track.Images)
			}
			ok("%d track(s), %d image(s), %d diagnostic(s)", len(tracks), total, diagnostics.Len())
			return nil
		},
	}
}
