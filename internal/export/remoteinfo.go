package export

import (
	"bytes"

	"gopkg.in/ini.v1"
)

// RemoteInfo holds the Variants and Branches lists the server is
// configured to serve, grounded on "[Server]" INI format.
type RemoteInfo struct {
	Variants []string
	Branches []string
}

// writeRemoteInfo renders RemoteInfo as remote-info.conf and atomically
// writes it to path.
func writeRemoteInfo(path string, info RemoteInfo) error {
	cfg := ini.Empty()
	section, err := cfg.NewSection("Server")
	if err != nil {
		return err
	}
	if _, err := section.NewKey("Variants", joinSemicolon(info.Variants)); err != nil {
		return err
	}
	if _, err := section.NewKey("Branches", joinSemicolon(info.Branches)); err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

func joinSemicolon(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ";"
		}
		out += v
	}
	return out
}
