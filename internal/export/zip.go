package export

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// File is one named artifact destined for a zip bundle.
type File struct {
	Name string
	Data []byte
}

// Zip bundles the given files into a single archive. File names are taken
// as-is; callers are responsible for uniqueness.
func Zip(files []File) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, f := range files {
		entry, err := w.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("export: zip entry %s: %w", f.Name, err)
		}
		if _, err := entry.Write(f.Data); err != nil {
			return nil, fmt.Errorf("export: zip write %s: %w", f.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("export: close zip: %w", err)
	}
	return buf.Bytes(), nil
}
