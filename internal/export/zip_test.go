package export

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestZip(t *testing.T) {
	files := []File{
		{Name: "a.xlsx", Data: []byte("first")},
		{Name: "b.xlsx", Data: []byte("second")},
	}

	data, err := Zip(files)
	if err != nil {
		t.Fatalf("Zip: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reopen archive: %v", err)
	}
	if len(r.File) != 2 {
		t.Fatalf("got %d entries, want 2", len(r.File))
	}
	for i, want := range files {
		entry := r.File[i]
		if entry.Name != want.Name {
			t.Errorf("entry %d = %q, want %q", i, entry.Name, want.Name)
		}
		rc, err := entry.Open()
		if err != nil {
			t.Fatalf("open %s: %v", entry.Name, err)
		}
		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", entry.Name, err)
		}
		if !bytes.Equal(got, want.Data) {
			t.Errorf("%s content = %q, want %q", entry.Name, got, want.Data)
		}
	}
}

func TestZip_Empty(t *testing.T) {
	data, err := Zip(nil)
	if err != nil {
		t.Fatalf("Zip: %v", err)
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reopen archive: %v", err)
	}
	if len(r.File) != 0 {
		t.Errorf("got %d entries, want 0", len(r.File))
	}
}
