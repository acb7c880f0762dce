package dfq

import (
	"reflect"
	"testing"
)

func TestProjectTable_WideForm(t *testing.T) {
	res := parseLines(t,
		"K2002/1 Durchmesser",
		"K2002/2 Dicke",
		"57.962 0 05.07.2006/10:48:07 26.051 0 05.07.2006/10:48:07",
		"57.963 0 05.07.2006/10:49:07 26.052 0 05.07.2006/10:49:07",
	)

	table := ProjectTable(res, nil)
	if !table.Wide {
		t.Fatal("events span two characteristics, want wide projection")
	}
	wantColumns := []string{"Messung Nr.", "Zeitstempel", "Durchmesser", "Dicke"}
	if !reflect.DeepEqual(table.Columns, wantColumns) {
		t.Errorf("columns = %v, want %v", table.Columns, wantColumns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != 1 || table.Rows[1][0] != 2 {
		t.Errorf("row order = %v, %v, want ascending event ids", table.Rows[0][0], table.Rows[1][0])
	}
	if table.Rows[0][2] != 57.962 || table.Rows[0][3] != 26.051 {
		t.Errorf("row 1 values = %v, %v", table.Rows[0][2], table.Rows[0][3])
	}
	if table.Rows[1][2] != 57.963 || table.Rows[1][3] != 26.052 {
		t.Errorf("row 2 values = %v, %v", table.Rows[1][2], table.Rows[1][3])
	}
}

func TestProjectTable_LongForm(t *testing.T) {
	res := parseLines(t,
		"K2002/1 Durchmesser",
		"50.52",
		"50.53",
		"50.54",
	)

	table := ProjectTable(res, nil)
	if table.Wide {
		t.Fatal("single characteristic per event, want long form")
	}
	if len(table.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(table.Rows))
	}
	// Columns: Messung Nr., Merkmal, Wert, Attribut, Zeitstempel, GUID.
	if table.Rows[0][1] != "Durchmesser" {
		t.Errorf("characteristic name = %v", table.Rows[0][1])
	}
	if table.Rows[2][0] != 3 || table.Rows[2][2] != 50.54 {
		t.Errorf("row 3 = %v", table.Rows[2])
	}
}

func TestProjectTable_DuplicateCellKeepsFirst(t *testing.T) {
	log := &Logbook{}
	res := &Result{
		Metadata:        Metadata{},
		Characteristics: Characteristics{},
		Measurements: []MeasurementRecord{
			{EventID: 1, CharacteristicIndex: 1, Value: 1.0},
			{EventID: 1, CharacteristicIndex: 2, Value: 2.0},
			{EventID: 1, CharacteristicIndex: 2, Value: 9.9}, // defect
		},
	}

	table := ProjectTable(res, log)
	if !table.Wide {
		t.Fatal("want wide projection")
	}
	if got := table.Rows[0][3]; got != 2.0 {
		t.Errorf("duplicate cell = %v, want first value 2.0", got)
	}
	if len(log.Lines()) == 0 {
		t.Error("duplicate event/characteristic pair should be logged")
	}
}

func TestProjectTable_Empty(t *testing.T) {
	table := ProjectTable(&Result{}, nil)
	if table.Wide || len(table.Rows) != 0 {
		t.Errorf("empty result should project to an empty long table, got %+v", table)
	}
	if len(table.Columns) == 0 {
		t.Error("even an empty table carries its column headers")
	}
}

func TestProjectTable_SparseWide(t *testing.T) {
	// Event 2 misses characteristic 2: the cell stays empty, no error.
	res := &Result{
		Metadata:        Metadata{},
		Characteristics: Characteristics{},
		Measurements: []MeasurementRecord{
			{EventID: 1, CharacteristicIndex: 1, Value: 1.0},
			{EventID: 1, CharacteristicIndex: 2, Value: 2.0},
			{EventID: 2, CharacteristicIndex: 1, Value: 1.1},
		},
	}

	table := ProjectTable(res, nil)
	if !table.Wide {
		t.Fatal("want wide projection")
	}
	if got := table.Rows[1][3]; got != nil {
		t.Errorf("missing cell = %v, want nil", got)
	}
}
