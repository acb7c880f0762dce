package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rolandschnurr/dfq-converter/internal/export"
)

// ErrNoFiles is returned when a batch request carries no files.
var ErrNoFiles = errors.New("no files in batch")

// ConvertBatch converts the uploads in parallel. One failing file never
// aborts the batch; its error is reported in the result instead. When more
// than one file converts, the workbooks are additionally bundled into a
// zip archive.
func (s *Service) ConvertBatch(ctx context.Context, uploads []Upload) (*BatchResult, error) {
	if len(uploads) == 0 {
		return nil, ErrNoFiles
	}

	started := time.Now()
	ctx, cancel := context.WithTimeout(ctx, BatchTimeout)
	defer cancel()

	results := make([]*FileResult, len(uploads))
	failures := make([]error, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, up := range uploads {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				failures[i] = err
				return nil
			}
			results[i], failures[i] = s.ConvertFile(gctx, up)
			return nil
		})
	}
	// Workers never return errors; Wait only joins them.
	_ = g.Wait()

	batch := &BatchResult{StartedAt: started}
	for i, up := range uploads {
		if failures[i] != nil {
			batch.Failed = append(batch.Failed, FileError{
				SourceName: up.Name,
				Error:      failures[i].Error(),
			})
			continue
		}
		batch.Converted = append(batch.Converted, *results[i])
	}

	if len(batch.Converted) > 1 {
		if err := s.bundle(batch); err != nil {
			return nil, err
		}
	}

	batch.Duration = time.Since(started).Round(time.Millisecond).String()
	return batch, nil
}

// bundle zips all converted workbooks and stages the archive.
func (s *Service) bundle(batch *BatchResult) error {
	files := make([]export.File, 0, len(batch.Converted))
	seen := map[string]int{}
	for _, r := range batch.Converted {
		name := r.OutputName
		// Batches may carry files that map to the same workbook name.
		if n := seen[name]; n > 0 {
			ext := filepath.Ext(name)
			name = fmt.Sprintf("%s_%d%s", name[:len(name)-len(ext)], n+1, ext)
		}
		seen[r.OutputName]++
		files = append(files, export.File{Name: name, Data: r.data})
	}

	data, err := export.Zip(files)
	if err != nil {
		return err
	}

	zipName := fmt.Sprintf("dfq_excel_export_%s.zip", time.Now().Format("20060102_150405"))
	staged := stagedName(zipName)
	if err := os.WriteFile(filepath.Join(s.downloadDir, staged), data, 0o644); err != nil {
		return fmt.Errorf("stage archive: %w", err)
	}

	batch.ZipName = zipName
	batch.DownloadURL = "/download/" + staged
	return nil
}
