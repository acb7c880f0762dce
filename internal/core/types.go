package core

import (
	"errors"
	"time"
)

// ErrNoMeasurements is returned when a file parses cleanly but yields no
// measurement records. The file is reported as failed, not as an empty
// workbook.
var ErrNoMeasurements = errors.New("no measurement values found")

// ErrEmptyFile is returned for zero-byte uploads.
var ErrEmptyFile = errors.New("empty file")

// Upload is one file handed to the converter.
type Upload struct {
	Name string
	Data []byte
}

// FileResult describes one converted file.
type FileResult struct {
	SourceName          string   `json:"sourceName"`
	OutputName          string   `json:"outputName"`
	DownloadURL         string   `json:"downloadUrl"`
	RecordCount         int      `json:"recordCount"`
	CharacteristicCount int      `json:"characteristicCount"`
	WideLayout          bool     `json:"wideLayout"`
	Logbook             []string `json:"logbook,omitempty"`

	data []byte
}

// FileError describes one failed file within a batch.
type FileError struct {
	SourceName string `json:"sourceName"`
	Error      string `json:"error"`
}

// BatchResult is the outcome of converting a batch of files. A batch
// succeeds as long as at least one file converts; per-file failures are
// collected in Failed.
type BatchResult struct {
	Converted []FileResult `json:"converted"`
	Failed    []FileError  `json:"failed,omitempty"`

	// ZipName is set when more than one file converted and the outputs
	// were bundled.
	ZipName     string `json:"zipName,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`

	StartedAt time.Time `json:"startedAt"`
	Duration  string    `json:"duration"`
}
