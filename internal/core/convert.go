package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rolandschnurr/dfq-converter/internal/dfq"
	"github.com/rolandschnurr/dfq-converter/internal/export"
	"github.com/rolandschnurr/dfq-converter/internal/store"
)

// ConvertFile runs the full pipeline for a single upload: decode, parse,
// project, render and stage the workbook in the download directory.
func (s *Service) ConvertFile(ctx context.Context, up Upload) (*FileResult, error) {
	if len(up.Data) == 0 {
		return nil, fmt.Errorf("%s: %w", up.Name, ErrEmptyFile)
	}

	content := DecodeUpload(up.Data)

	log := &dfq.Logbook{}
	res := dfq.NewParser(log).ParseString(content)
	if len(res.Measurements) == 0 {
		return nil, fmt.Errorf("%s: %w", up.Name, ErrNoMeasurements)
	}

	table := dfq.ProjectTable(res, log)

	data, err := export.Excel(res, table, s.labels)
	if err != nil {
		return nil, fmt.Errorf("%s: render workbook: %w", up.Name, err)
	}

	out := outputName(sanitizeFilename(up.Name))
	staged := stagedName(out)
	if err := os.WriteFile(filepath.Join(s.downloadDir, staged), data, 0o644); err != nil {
		return nil, fmt.Errorf("%s: stage workbook: %w", up.Name, err)
	}

	result := &FileResult{
		SourceName:          up.Name,
		OutputName:          out,
		DownloadURL:         "/download/" + staged,
		RecordCount:         len(res.Measurements),
		CharacteristicCount: countCharacteristics(res),
		WideLayout:          table.Wide,
		Logbook:             log.Lines(),
		data:                data,
	}

	s.recordHistory(ctx, result)
	return result, nil
}

// recordHistory persists the conversion when a store is configured. A
// failed insert never fails the conversion.
func (s *Service) recordHistory(ctx context.Context, r *FileResult) {
	if !s.store.Enabled() {
		return
	}
	_, err := s.store.InsertConversion(ctx, store.Conversion{
		Username:            UsernameFromContext(ctx),
		SourceName:          r.SourceName,
		OutputName:          r.OutputName,
		RecordCount:         r.RecordCount,
		CharacteristicCount: r.CharacteristicCount,
		WideLayout:          r.WideLayout,
	})
	if err != nil {
		slog.Warn("conversion history insert failed", "file", r.SourceName, "error", err)
	}
}

// countCharacteristics counts the distinct characteristic indices that
// actually carry measurements.
func countCharacteristics(res *dfq.Result) int {
	seen := map[int]bool{}
	for _, m := range res.Measurements {
		seen[m.CharacteristicIndex] = true
	}
	return len(seen)
}
