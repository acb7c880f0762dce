package store

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestEnabled(t *testing.T) {
	var s *Store
	if s.Enabled() {
		t.Error("nil store must report disabled")
	}
	if (&Store{}).Enabled() {
		t.Error("store without pool must report disabled")
	}
}

func TestToPgUUID(t *testing.T) {
	id := uuid.New()
	pg := toPgUUID(id.String())
	if !pg.Valid {
		t.Fatal("valid uuid string should convert")
	}
	if got := uuidToString(pg); got != id.String() {
		t.Errorf("round trip = %q, want %q", got, id.String())
	}

	for _, bad := range []string{"", "not-a-uuid"} {
		if toPgUUID(bad).Valid {
			t.Errorf("toPgUUID(%q) should be invalid", bad)
		}
	}
	if uuidToString(toPgUUID("")) != "" {
		t.Error("invalid uuid should render empty")
	}
}

func TestToPgText(t *testing.T) {
	if toPgText("").Valid {
		t.Error("empty string maps to NULL")
	}
	pg := toPgText("anna")
	if !pg.Valid || pg.String != "anna" {
		t.Errorf("toPgText = %+v", pg)
	}
}

func TestSchemaIsIdempotent(t *testing.T) {
	// Bootstrap runs on every start; the schema must only contain
	// IF NOT EXISTS statements.
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if strings.HasPrefix(stmt, "CREATE") && !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Errorf("non-idempotent statement: %.60s", stmt)
		}
	}
}
