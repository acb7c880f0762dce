package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// DefaultHistoryLimit bounds history queries when the caller passes no limit.
const DefaultHistoryLimit = 50

// Conversion is one recorded source-file conversion.
type Conversion struct {
	ID                  string    `json:"id"`
	Username            string    `json:"username,omitempty"`
	SourceName          string    `json:"sourceName"`
	OutputName          string    `json:"outputName"`
	RecordCount         int       `json:"recordCount"`
	CharacteristicCount int       `json:"characteristicCount"`
	WideLayout          bool      `json:"wideLayout"`
	CreatedAt           time.Time `json:"createdAt"`
}

// InsertConversion records a finished conversion. Username may be empty when
// the converter runs without login.
func (s *Store) InsertConversion(ctx context.Context, c Conversion) (*Conversion, error) {
	c.ID = uuid.New().String()
	const q = `
		INSERT INTO conversions
			(id, username, source_name, output_name, record_count, characteristic_count, wide_layout)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	var createdAt pgtype.Timestamptz
	err := s.pool.QueryRow(ctx, q,
		toPgUUID(c.ID), toPgText(c.Username), c.SourceName, c.OutputName,
		int32(c.RecordCount), int32(c.CharacteristicCount), c.WideLayout,
	).Scan(&createdAt)
	if err != nil {
		return nil, fmt.Errorf("store: insert conversion %s: %w", c.SourceName, err)
	}
	c.CreatedAt = createdAt.Time
	return &c, nil
}

// RecentConversions lists the newest conversions first.
func (s *Store) RecentConversions(ctx context.Context, limit int) ([]Conversion, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	const q = `
		SELECT id, username, source_name, output_name, record_count, characteristic_count, wide_layout, created_at
		FROM conversions
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := s.pool.Query(ctx, q, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("store: list conversions: %w", err)
	}
	defer rows.Close()

	var out []Conversion
	for rows.Next() {
		var (
			c         Conversion
			id        pgtype.UUID
			username  pgtype.Text
			records   int32
			chars     int32
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &username, &c.SourceName, &c.OutputName, &records, &chars, &c.WideLayout, &createdAt); err != nil {
			return nil, fmt.Errorf("store: scan conversion: %w", err)
		}
		c.ID = uuidToString(id)
		if username.Valid {
			c.Username = username.String
		}
		c.RecordCount = int(records)
		c.CharacteristicCount = int(chars)
		c.CreatedAt = createdAt.Time
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list conversions: %w", err)
	}
	return out, nil
}
