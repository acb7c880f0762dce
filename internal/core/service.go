// Package core provides the conversion pipeline: decode an uploaded
// Q-DAS transfer file, parse it, project the records into a table and
// stage the rendered workbook for download.
package core

import (
	"fmt"
	"os"
	"time"

	"github.com/rolandschnurr/dfq-converter/internal/config"
	"github.com/rolandschnurr/dfq-converter/internal/kfields"
	"github.com/rolandschnurr/dfq-converter/internal/store"
)

// BatchTimeout is the maximum duration for a batch conversion.
var BatchTimeout = 5 * time.Minute

// Service provides the core business logic for DFQ conversions.
type Service struct {
	labels      kfields.Table
	downloadDir string
	parallelism int
	store       *store.Store
	limiter     *ConvertLimiter
}

// NewService creates a new Service instance. The download directory is
// created if it does not exist. st may be nil when no database is
// configured.
func NewService(cfg *config.Config, st *store.Store) (*Service, error) {
	labels, err := kfields.Load(cfg.Paths.KFieldsFile)
	if err != nil {
		return nil, fmt.Errorf("load k-field labels: %w", err)
	}

	if err := os.MkdirAll(cfg.Paths.DownloadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}

	if cfg.Upload.Timeout > 0 {
		BatchTimeout = cfg.Upload.Timeout
	}

	return &Service{
		labels:      labels,
		downloadDir: cfg.Paths.DownloadDir,
		parallelism: cfg.Upload.Parallelism,
		store:       st,
		limiter:     NewConvertLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
	}, nil
}

// Limiter exposes the request-level concurrency gate for the HTTP layer.
func (s *Service) Limiter() *ConvertLimiter {
	return s.limiter
}

// Store returns the configured history store, nil when disabled.
func (s *Service) Store() *store.Store {
	return s.store
}

// DownloadDir returns the staging directory for converted files.
func (s *Service) DownloadDir() string {
	return s.downloadDir
}

// LabelCount reports how many K-field labels are loaded.
func (s *Service) LabelCount() int {
	return len(s.labels)
}
