package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/collabora/atomupd-core/internal/catalog"
	"github.com/collabora/atomupd-core/internal/diag"
	"github.com/collabora/atomupd-core/internal/export"
	"github.com/collabora/atomupd-core/internal/watch"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Scan, export, then rebuild and re-export on every pool change",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := export.Options{
				Dir:                cfg.ExportDir,
				EmitRemoteInfo:     cfg.RemoteInfo,
				RemoteInfoVariants: cfg.Variants,
				RemoteInfoBranches: cfg.Branches,
			}

			rebuild := func() (*catalog.Catalog, diag.Log, error) {
				cat, diagnostics, err := buildCatalog(ctx)
				if err != nil {
					return nil, diag.Log{}, err
				}
				printDiagnostics(diagnostics)
				if err := export.Export(cat, opts, log); err != nil {
					warn("export failed: %v", err)
				}
				return cat, diagnostics, nil
			}

			w, err := watch.New(cfg.PoolDir, cfg.WatchDebounce, rebuild, log)
			if err != nil {
				return err
			}

			ok("watching %s", cfg.PoolDir)
			return w.Run(ctx)
		},
	}
}
