package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rolandschnurr/dfq-converter/internal/config"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := &config.Config{}
	cfg.Paths.DownloadDir = t.TempDir()
	cfg.Upload.Parallelism = 2
	cfg.Upload.MaxConcurrent = 2
	cfg.Upload.MaxWaitTime = time.Second
	cfg.Upload.Timeout = time.Minute

	s, err := NewService(cfg, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return s
}

func sampleFile(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n"))
}

func TestConvertFile(t *testing.T) {
	s := newTestService(t)

	up := Upload{
		Name: "messung.dfq",
		Data: sampleFile(
			"K1001/1 4711",
			"K2002/1 Durchmesser",
			"50.52",
			"50.53",
		),
	}

	res, err := s.ConvertFile(context.Background(), up)
	if err != nil {
		t.Fatalf("ConvertFile: %v", err)
	}

	if res.OutputName != "messung.xlsx" {
		t.Errorf("OutputName = %q", res.OutputName)
	}
	if res.RecordCount != 2 || res.CharacteristicCount != 1 {
		t.Errorf("counts = %d records / %d characteristics", res.RecordCount, res.CharacteristicCount)
	}
	if res.WideLayout {
		t.Error("single characteristic should project long")
	}
	if !strings.HasPrefix(res.DownloadURL, "/download/") {
		t.Errorf("DownloadURL = %q", res.DownloadURL)
	}

	staged := strings.TrimPrefix(res.DownloadURL, "/download/")
	info, err := os.Stat(filepath.Join(s.DownloadDir(), staged))
	if err != nil {
		t.Fatalf("staged workbook missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("staged workbook is empty")
	}
}

func TestConvertFile_BOMAndCRLF(t *testing.T) {
	s := newTestService(t)

	data := append([]byte{0xEF, 0xBB, 0xBF}, sampleFile("K2002/1 D", "1.5")...)
	res, err := s.ConvertFile(context.Background(), Upload{Name: "bom.dfq", Data: data})
	if err != nil {
		t.Fatalf("ConvertFile: %v", err)
	}
	if res.RecordCount != 1 {
		t.Errorf("RecordCount = %d, want 1", res.RecordCount)
	}
}

func TestConvertFile_NoMeasurements(t *testing.T) {
	s := newTestService(t)

	_, err := s.ConvertFile(context.Background(), Upload{
		Name: "header-only.dfq",
		Data: sampleFile("K1001/1 4711", "K2002/1 Durchmesser"),
	})
	if !errors.Is(err, ErrNoMeasurements) {
		t.Errorf("err = %v, want ErrNoMeasurements", err)
	}
}

func TestConvertFile_Empty(t *testing.T) {
	s := newTestService(t)

	_, err := s.ConvertFile(context.Background(), Upload{Name: "empty.dfq"})
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("err = %v, want ErrEmptyFile", err)
	}
}

func TestConvertBatch(t *testing.T) {
	s := newTestService(t)

	uploads := []Upload{
		{Name: "a.dfq", Data: sampleFile("K2002/1 D", "1.0")},
		{Name: "broken.dfq", Data: sampleFile("K1001/1 nur header")},
		{Name: "b.dfq", Data: sampleFile("K2002/1 D", "2.0")},
	}

	batch, err := s.ConvertBatch(context.Background(), uploads)
	if err != nil {
		t.Fatalf("ConvertBatch: %v", err)
	}

	if len(batch.Converted) != 2 {
		t.Fatalf("converted = %d, want 2", len(batch.Converted))
	}
	if len(batch.Failed) != 1 || batch.Failed[0].SourceName != "broken.dfq" {
		t.Errorf("failed = %+v", batch.Failed)
	}

	// Two successes: outputs must be bundled.
	if batch.ZipName == "" || !strings.HasSuffix(batch.ZipName, ".zip") {
		t.Errorf("ZipName = %q", batch.ZipName)
	}
	staged := strings.TrimPrefix(batch.DownloadURL, "/download/")
	if _, err := os.Stat(filepath.Join(s.DownloadDir(), staged)); err != nil {
		t.Errorf("staged archive missing: %v", err)
	}
	if batch.Duration == "" {
		t.Error("Duration not set")
	}
}

func TestConvertBatch_SingleFileNoZip(t *testing.T) {
	s := newTestService(t)

	batch, err := s.ConvertBatch(context.Background(), []Upload{
		{Name: "a.dfq", Data: sampleFile("K2002/1 D", "1.0")},
	})
	if err != nil {
		t.Fatalf("ConvertBatch: %v", err)
	}
	if batch.ZipName != "" {
		t.Errorf("single file should not be zipped, got %q", batch.ZipName)
	}
}

func TestConvertBatch_NoFiles(t *testing.T) {
	s := newTestService(t)

	if _, err := s.ConvertBatch(context.Background(), nil); !errors.Is(err, ErrNoFiles) {
		t.Errorf("err = %v, want ErrNoFiles", err)
	}
}

func TestConvertBatch_AllFailedIsNotAnError(t *testing.T) {
	s := newTestService(t)

	batch, err := s.ConvertBatch(context.Background(), []Upload{
		{Name: "x.dfq", Data: sampleFile("K1001/1 nichts")},
	})
	if err != nil {
		t.Fatalf("ConvertBatch: %v", err)
	}
	if len(batch.Converted) != 0 || len(batch.Failed) != 1 {
		t.Errorf("batch = %+v", batch)
	}
}
