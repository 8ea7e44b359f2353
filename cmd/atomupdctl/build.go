package main

import (
	"context"

	"github.com/collabora/atomupd-core/internal/catalog"
	"github.com/collabora/atomupd-core/internal/diag"
	"github.com/collabora/atomupd-core/internal/scanner"
)

// buildCatalog runs the Scanner then the Catalog Builder against the
// configured pool: the ingestion pipeline shared by every subcommand,
// including the ad-hoc query.
func buildCatalog(ctx context.Context) (*catalog.Catalog, diag.Log, error) {
	policy, err := catalog.NewPolicy(cfg.Products, cfg.Releases, cfg.Variants, cfg.Archs, cfg.Branches,
		cfg.EnableLegacyPaths, cfg.EnableMajorUpdates)
	if err != nil {
		return nil, diag.Log{}, err
	}

	scanResult, err := scanner.Scan(ctx, cfg.PoolDir, log)
	if err != nil {
		return nil, diag.Log{}, err
	}

	cat, buildDiagnostics := catalog.Build(scanResult.Manifests, policy, log)

	merged := scanResult.Diagnostics
	for _, record := range buildDiagnostics.Records() {
		merged.Add(record)
	}

	return cat, merged, nil
}

// printDiagnostics renders the ingestion diagnostics: discarded manifests
// in red, multiplicity violations in yellow.
func printDiagnostics(diagnostics diag.Log) {
	for _, record := range diagnostics.Records() {
		if record.Severity == diag.SeverityMultiplicity {
			warn("%s", record.String())
			continue
		}
		bad("%s", record.String())
	}
}
