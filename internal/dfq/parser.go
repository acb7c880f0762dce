package dfq

import "strings"

// Parser turns DFQ transfer-format text into a Result. Parsing one input
// is strictly sequential: line order is semantically significant (event
// ids, most-recent-record correlation, per-line channel indices).
//
// The parser never fails on data-quality problems; malformed lines are
// logged to the Logbook and skipped. An input that yields zero
// measurements produces an empty (non-nil) Result — surfacing that as
// "no usable data" is the caller's concern.
type Parser struct {
	log *Logbook
}

// NewParser creates a Parser writing user-facing diagnostics to log.
// log may be nil.
func NewParser(log *Logbook) *Parser {
	return &Parser{log: log}
}

// ParseString splits content into lines and parses them. Line endings are
// normalized; a leading UTF-8 BOM must already be stripped by the caller.
func (p *Parser) ParseString(content string) *Result {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return p.Parse(strings.Split(content, "\n"))
}

// Parse consumes the line sequence of one file and assembles the Result.
func (p *Parser) Parse(lines []string) *Result {
	res := &Result{
		Metadata:        Metadata{},
		Characteristics: Characteristics{},
	}

	eventID := 1
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch classify(line) {
		case lineBlank:
			// Discarded with no side effect.

		case lineCorrelation:
			p.correlate(line, res)

		case lineField:
			parseFieldLine(line, res.Metadata, res.Characteristics, p.log)

		case lineMeasurement:
			records := resolveMeasurementLine(line, eventID, p.log)
			if len(records) == 0 {
				continue
			}
			res.Measurements = append(res.Measurements, records...)
			eventID++
		}
	}

	p.log.Printf("Parsing abgeschlossen: %d K-Felder, %d Merkmale, %d Messwerte.",
		len(res.Metadata), len(res.Characteristics), len(res.Measurements))
	return res
}

// correlate attaches the external identifier carried by a K0097 line to
// the most recently produced record. Correlation lines never start an
// event; one arriving before any record is dropped.
func (p *Parser) correlate(line string, res *Result) {
	_, value, ok := splitFieldLine(line)
	if !ok {
		p.log.Printf("Korrelationszeile ohne Wert verworfen: %q", line)
		return
	}
	if len(res.Measurements) == 0 {
		p.log.Printf("Korrelationszeile %q verworfen, noch kein Messwert vorhanden", value)
		return
	}
	last := &res.Measurements[len(res.Measurements)-1]
	if last.GUID != "" {
		p.log.Printf("Korrelationszeile %q verworfen, Datensatz trägt bereits %q", value, last.GUID)
		return
	}
	last.GUID = value
}
