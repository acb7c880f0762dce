// Package kfields maps Q-DAS K-field codes to human-readable labels.
//
// The table is a read-only dependency of the export layer; the parsing core
// never needs label text. Labels come from a simple `KEY = VALUE` text file
// so plants can extend them without a rebuild; a default table is embedded.
package kfields

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed k_fields.txt
var defaultTable []byte

// Table maps base K-field codes (no /index suffix) to label text.
type Table map[string]string

// Default returns the embedded label table.
func Default() Table {
	t, err := Parse(bytes.NewReader(defaultTable))
	if err != nil {
		// The embedded table is part of the build; a parse failure is
		// a programming error.
		panic(fmt.Sprintf("kfields: embedded table: %v", err))
	}
	return t
}

// Load reads a label table from path. An empty path returns the embedded
// default.
func Load(path string) (Table, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("kfields: open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("kfields: parse %s: %w", path, err)
	}
	return t, nil
}

// Parse reads `KEY = VALUE` lines. Blank lines and #-comments are ignored;
// lines without a separator are skipped.
func Parse(r io.Reader) (Table, error) {
	t := Table{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		t[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Label translates a K-field code, tolerating an /index suffix.
// Unknown codes fall back to the code itself.
func (t Table) Label(code string) string {
	base, _, _ := strings.Cut(code, "/")
	if v, ok := t[base]; ok {
		return v
	}
	return code
}
