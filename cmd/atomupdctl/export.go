package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/collabora/atomupd-core/internal/export"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Build the catalog and run the static exporter",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, diagnostics, err := buildCatalog(context.Background())
			if err != nil {
				return err
			}
			printDiagnostics(diagnostics)

			opts := export.Options{
				Dir:                cfg.ExportDir,
				EmitRemoteInfo:     cfg.RemoteInfo,
				RemoteInfoVariants: cfg.Variants,
				RemoteInfoBranches: cfg.Branches,
			}
			if err := export.Export(cat, opts, log); err != nil {
				return err
			}

			ok("exported to %s", cfg.ExportDir)
			return nil
		},
	}
}
