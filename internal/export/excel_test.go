package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rolandschnurr/dfq-converter/internal/dfq"
	"github.com/rolandschnurr/dfq-converter/internal/kfields"
)

func buildResult(t *testing.T, lines ...string) (*dfq.Result, *dfq.Table) {
	t.Helper()
	res := dfq.NewParser(nil).Parse(lines)
	return res, dfq.ProjectTable(res, nil)
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestExcel_Sheets(t *testing.T) {
	res, table := buildResult(t,
		"K1001/1 4711",
		"K1002/1 Welle",
		"K2002/1 Durchmesser",
		"50.52",
		"50.54",
	)

	data, err := Excel(res, table, kfields.Default())
	if err != nil {
		t.Fatalf("Excel: %v", err)
	}

	f := openWorkbook(t, data)
	want := []string{sheetValues, sheetStats, sheetCharacteristics, sheetHeader}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for _, name := range want {
		if idx, _ := f.GetSheetIndex(name); idx < 0 {
			t.Errorf("missing sheet %s", name)
		}
	}
}

func TestExcel_ValuesSheet(t *testing.T) {
	res, table := buildResult(t,
		"K1001/1 4711",
		"K1002/1 Welle",
		"K2002/1 Durchmesser",
		"50.52",
	)

	data, err := Excel(res, table, kfields.Default())
	if err != nil {
		t.Fatalf("Excel: %v", err)
	}
	f := openWorkbook(t, data)

	rows, err := f.GetRows(sheetValues)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 value row", len(rows))
	}
	header := rows[0]
	if header[0] != "Messung Nr." || header[len(header)-2] != "Teil-Nr" || header[len(header)-1] != "Teil-Bez" {
		t.Errorf("header = %v", header)
	}
	row := rows[1]
	if row[len(row)-2] != "4711" || row[len(row)-1] != "Welle" {
		t.Errorf("part columns = %v", row)
	}

	value, err := f.GetCellValue(sheetValues, "C2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if value != "50.52" {
		t.Errorf("value cell = %q, want 50.52", value)
	}
}

func TestExcel_PartColumnsFallBack(t *testing.T) {
	// Without K1001/K1002 the part columns carry the placeholder.
	res, table := buildResult(t, "K2002/1 Durchmesser", "50.52")

	data, err := Excel(res, table, kfields.Default())
	if err != nil {
		t.Fatalf("Excel: %v", err)
	}
	f := openWorkbook(t, data)

	rows, err := f.GetRows(sheetValues)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	row := rows[1]
	if row[len(row)-2] != "N/A" || row[len(row)-1] != "N/A" {
		t.Errorf("missing part metadata should yield N/A, got %v", row)
	}
}

func TestExcel_StatsSheet(t *testing.T) {
	res, table := buildResult(t,
		"K2002/1 Durchmesser",
		"50.50",
		"50.60",
	)

	data, err := Excel(res, table, kfields.Default())
	if err != nil {
		t.Fatalf("Excel: %v", err)
	}
	f := openWorkbook(t, data)

	rows, err := f.GetRows(sheetStats)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if rows[0][0] != "Spalte" || rows[0][2] != "Mittelwert" {
		t.Errorf("stats header = %v", rows[0])
	}
	// Long form: the only numeric column is "Wert".
	if len(rows) != 2 || rows[1][0] != "Wert" {
		t.Fatalf("stats rows = %v", rows)
	}
	if rows[1][1] != "2" {
		t.Errorf("count = %q, want 2", rows[1][1])
	}
	if rows[1][2] != "50.55" {
		t.Errorf("mean = %q, want 50.55", rows[1][2])
	}
}

func TestExcel_CharacteristicsSheet(t *testing.T) {
	res, table := buildResult(t,
		"K2001/1 M1",
		"K2002/1 Durchmesser",
		"K2110/1 50.30",
		"K2111/1 50.60",
		"50.52",
	)

	data, err := Excel(res, table, kfields.Default())
	if err != nil {
		t.Fatalf("Excel: %v", err)
	}
	f := openWorkbook(t, data)

	rows, err := f.GetRows(sheetCharacteristics)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 characteristic", len(rows))
	}
	// Codes sort K2001 < K2002 < K2110 < K2111 and render as labels.
	wantHeader := []string{
		"Merkmal-Index",
		"Merkmal-Nummer",
		"Merkmal-Bezeichnung",
		"Untere Spezifikationsgrenze (USG)",
		"Obere Spezifikationsgrenze (OSG)",
	}
	for i, want := range wantHeader {
		if rows[0][i] != want {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], want)
		}
	}
	if rows[1][0] != "1" || rows[1][2] != "Durchmesser" {
		t.Errorf("characteristic row = %v", rows[1])
	}
}

func TestExcel_HeaderSheet(t *testing.T) {
	res, table := buildResult(t,
		"K1001/1 4711",
		"K2002/1 Durchmesser",
		"50.52",
	)

	data, err := Excel(res, table, kfields.Default())
	if err != nil {
		t.Fatalf("Excel: %v", err)
	}
	f := openWorkbook(t, data)

	rows, err := f.GetRows(sheetHeader)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if rows[0][0] != "K-Feld" || rows[0][1] != "Bezeichnung" || rows[0][2] != "Wert" {
		t.Errorf("header = %v", rows[0])
	}
	found := false
	for _, row := range rows[1:] {
		if row[0] == "K1001/1" {
			found = true
			if row[1] != "Teil-Nummer" || row[2] != "4711" {
				t.Errorf("K1001/1 row = %v", row)
			}
		}
	}
	if !found {
		t.Error("K1001/1 missing from header sheet")
	}
}

func TestExcel_EmptyResult(t *testing.T) {
	res, table := buildResult(t)

	data, err := Excel(res, table, kfields.Default())
	if err != nil {
		t.Fatalf("Excel: %v", err)
	}
	f := openWorkbook(t, data)

	// No characteristics, no metadata: only the value and stats sheets exist.
	if idx, _ := f.GetSheetIndex(sheetCharacteristics); idx >= 0 {
		t.Error("characteristics sheet should be absent for an empty result")
	}
	if idx, _ := f.GetSheetIndex(sheetValues); idx < 0 {
		t.Error("value sheet must always exist")
	}
}
