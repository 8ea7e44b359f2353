// Package export implements the Static Exporter: for every
// track in a Catalog it writes one JSON file per Image plus branch and
// checkpoint fallback files, and optionally a remote-info.conf per
// (release, product, arch, variant).
package export

import (
	"os"
	"path/filepath"
)

// writeFileAtomic writes data to path by first writing to a sibling
// temporary file and renaming it into place, so a concurrent reader never
// observes a truncated file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
