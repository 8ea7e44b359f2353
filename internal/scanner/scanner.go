// Package scanner walks the image pool filesystem tree and emits raw
// manifests paired with their sibling artifacts, grounded on
// steamosatomupd/imagepool.py's os.walk-based pool construction.
package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/collabora/atomupd-core/internal/diag"
	"github.com/collabora/atomupd-core/internal/model"
)

// RemoteInfoConfName is the special, non-catalog file the Scanner surfaces
// to the Static Exporter.
const RemoteInfoConfName = "remote-info.conf"

// Result is everything a scan produced.
type Result struct {
	Manifests       []model.ScannedManifest
	RemoteInfoFiles []string // absolute paths to remote-info.conf files found
	Diagnostics     diag.Log
}

// Scan walks root looking for *.manifest.json files. It follows symlinked
// directories but guards against cycles by tracking visited real paths. A
// single manifest that fails to read or parse is reported in the returned
// diagnostics and skipped; it does not abort the walk. The walk aborts
// early if ctx is cancelled.
func Scan(ctx context.Context, root string, log *logrus.Logger) (Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Result{}, fmt.Errorf("resolve scan root: %w", err)
	}

	res := Result{}
	visited := map[string]bool{}

	var walk func(dir string) error
	walk = func(dir string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		real, err := filepath.EvalSymlinks(dir)
		if err != nil {
			real = dir
		}
		if visited[real] {
			return nil
		}
		visited[real] = true

		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("read dir %s: %w", dir, err)
		}

		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}

			full := filepath.Join(dir, entry.Name())

			info, statErr := entry.Info()
			isDir := entry.IsDir()
			if statErr == nil && info.Mode()&fs.ModeSymlink != 0 {
				target, err := os.Stat(full)
				if err == nil {
					isDir = target.IsDir()
				}
			}

			if isDir {
				if strings.HasSuffix(entry.Name(), model.ChunkStoreExt) {
					continue
				}
				if err := walk(full); err != nil {
					return err
				}
				continue
			}

			if entry.Name() == RemoteInfoConfName {
				res.RemoteInfoFiles = append(res.RemoteInfoFiles, full)
				continue
			}

			if !strings.HasSuffix(entry.Name(), model.ManifestExt) {
				continue
			}

			scanned, err := readManifest(absRoot, full)
			if err != nil {
				res.Diagnostics.Discarded(full, "io-or-parse", err.Error())
				if log != nil {
					log.WithField("manifest", full).WithError(err).Warn("discarding manifest")
				}
				continue
			}

			res.Manifests = append(res.Manifests, scanned)
		}

		return nil
	}

	if err := walk(absRoot); err != nil {
		return res, err
	}

	return res, nil
}

func readManifest(root, path string) (model.ScannedManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ScannedManifest{}, fmt.Errorf("read: %w", err)
	}

	var raw model.RawManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.ScannedManifest{}, fmt.Errorf("parse json: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), model.ManifestExt)
	dir := filepath.Dir(path)
	relDir, err := filepath.Rel(root, dir)
	if err != nil {
		relDir = dir
	}

	scanned := model.ScannedManifest{
		Raw:          raw,
		RawJSON:      data,
		ManifestPath: path,
		RelDir:       relDir,
		Stem:         stem,
	}

	bundle := filepath.Join(dir, stem+model.BundleExt)
	if st, err := os.Stat(bundle); err == nil && !st.IsDir() {
		scanned.BundlePath = bundle
	}

	castr := filepath.Join(dir, stem+model.ChunkStoreExt)
	if st, err := os.Stat(castr); err == nil && st.IsDir() {
		scanned.ChunkStorePath = castr
	}

	return scanned, nil
}
