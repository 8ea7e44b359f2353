package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/collabora/atomupd-core/internal/model"
	"github.com/collabora/atomupd-core/internal/selector"
)

func newQueryCmd() *cobra.Command {
	var client model.ClientDescriptor

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run the selector against a client descriptor given on the command line",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, diagnostics, err := buildCatalog(context.Background())
			if err != nil {
				return err
			}
			printDiagnostics(diagnostics)

			update := selector.Select(cat, client)
			data, err := json.MarshalIndent(update, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal update: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&client.Product, "product", "", "client's product")
	cmd.Flags().StringVar(&client.Release, "release", "", "client's release")
	cmd.Flags().StringVar(&client.Arch, "arch", "", "client's architecture")
	cmd.Flags().StringVar(&client.Variant, "variant", "", "client's variant")
	cmd.Flags().StringVar(&client.Branch, "branch", "", "client's branch")
	cmd.Flags().StringVar(&client.Version, "version", "", "client's reported version")
	cmd.Flags().StringVar(&client.BuildID, "buildid", "", "client's reported buildid")
	cmd.Flags().IntVar(&client.CheckpointLevel, "checkpoint-level", 0, "client's self-reported checkpoint level, for unknown clients")

	return cmd
}
