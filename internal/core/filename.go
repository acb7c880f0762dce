package core

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// sanitizeFilename strips any path components from a client-supplied file
// name and replaces characters that are unsafe in file systems or URLs.
func sanitizeFilename(name string) string {
	// Handle both separators regardless of the client's platform.
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "upload"
	}
	return out
}

// outputName maps a source file name to its workbook name.
func outputName(source string) string {
	base := strings.TrimSuffix(source, filepath.Ext(source))
	if base == "" {
		base = source
	}
	return base + ".xlsx"
}

// stagedName prefixes a unique id so staged downloads never collide.
func stagedName(name string) string {
	return uuid.New().String() + "_" + name
}
