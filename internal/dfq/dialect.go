package dfq

import (
	"regexp"
	"strconv"
	"strings"
)

// A dialect is one of the mutually exclusive physical encodings a
// measurement line may use. Dialects are tried strictly in chain order;
// the first one that recognizes the line owns it entirely, a nil return
// means "declined". A panicking dialect is recovered and treated as a
// decline so one bad line never aborts the file.
type dialect struct {
	name  string
	parse func(line string, eventID int, log *Logbook) []MeasurementRecord
}

var dialectChain = []dialect{
	{"bosch", parseScientific},
	{"messdate", parseMultiChannel},
	{"messdate-ctrl", parseMultiChannelControl},
	{"numeric", parseNumericOnly},
}

// resolveMeasurementLine runs the dialect chain over one candidate line.
// Lines no dialect recognizes yield nil and are dropped by the caller.
func resolveMeasurementLine(line string, eventID int, log *Logbook) []MeasurementRecord {
	for _, d := range dialectChain {
		if records := tryDialect(d, line, eventID, log); len(records) > 0 {
			return records
		}
	}
	return nil
}

func tryDialect(d dialect, line string, eventID int, log *Logbook) (records []MeasurementRecord) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Parser %q bei Zeile %q abgestürzt: %v", d.name, truncate(line, 50), r)
			records = nil
		}
	}()
	return d.parse(line, eventID, log)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Scientific-notation single-channel dialect (Bosch export). One
// measurement per line: mantissa+exponent literal, integer attribute,
// timestamp, reserved trailing marker. Only ever appears in
// single-characteristic files, so the index is always 1.
//
// Two historical layouts exist: whitespace-delimited triples and a compact
// concatenation where a fixed 4-digit exponent is directly followed by the
// attribute digit and the timestamp. Lines that fit neither exactly are
// declined rather than guessed at.
var (
	sciClaimRe = regexp.MustCompile(`^[-+]?\d+\.?\d*[Ee][+-]?\d+`)
	sciDelimRe = regexp.MustCompile(`^([-+]?\d+\.?\d*[Ee][+-]?\d+)\s+(\d+)\s+(\S+)`)
	sciPackRe  = regexp.MustCompile(`^([-+]?\d+\.\d+[Ee][+-]\d{4})(\d)` +
		`(\d{1,2}\.\d{1,2}\.(?:\d{2}|\d{4})/\d{1,2}:\d{1,2}:\d{1,2})(#\d+)?$`)
)

func parseScientific(line string, eventID int, log *Logbook) []MeasurementRecord {
	if !sciClaimRe.MatchString(line) {
		return nil
	}

	var valueText, attrText, tsText string
	if m := sciDelimRe.FindStringSubmatch(line); m != nil {
		valueText, attrText, tsText = m[1], m[2], m[3]
	} else if m := sciPackRe.FindStringSubmatch(line); m != nil {
		valueText, attrText, tsText = m[1], m[2], m[3]
	} else {
		return nil
	}

	value, err := strconv.ParseFloat(valueText, 64)
	if err != nil {
		return nil
	}
	attr, err := strconv.Atoi(attrText)
	if err != nil {
		return nil
	}
	ts := ParseTimestamp(tsText)
	if !ts.Valid {
		return nil
	}

	return []MeasurementRecord{{
		EventID:             eventID,
		CharacteristicIndex: 1,
		Value:               value,
		Attribute:           attr,
		Timestamp:           ts,
	}}
}

// Multi-channel whitespace dialect (MESSDATE export). Repeating
// (value, attribute, timestamp) groups, one per characteristic, assigned
// to indices 1..k left to right. The group count is unbounded.
var (
	sciMarkerRe = regexp.MustCompile(`\d[Ee][+-]?\d`)
	groupRe     = regexp.MustCompile(`([-+]?\d+\.?\d*)\s+(\d+)\s+` +
		`(\d{1,2}\.\d{1,2}\.(?:\d{2}|\d{4})/\d{1,2}:\d{1,2}:\d{1,2})`)
)

func parseMultiChannel(line string, eventID int, log *Logbook) []MeasurementRecord {
	// An exponent literal anywhere means the line belongs to the
	// scientific dialect even if that one declined it.
	if sciMarkerRe.MatchString(line) {
		return nil
	}

	matches := groupRe.FindAllStringSubmatch(line, -1)
	if matches == nil {
		return nil
	}

	records := make([]MeasurementRecord, 0, len(matches))
	for i, m := range matches {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			log.Printf("Kanal %d übersprungen, ungültiger Wert %q", i+1, m[1])
			continue
		}
		attr, err := strconv.Atoi(m[2])
		if err != nil {
			log.Printf("Kanal %d übersprungen, ungültiges Attribut %q", i+1, m[2])
			continue
		}
		ts := ParseTimestamp(m[3])
		if !ts.Valid {
			log.Printf("Kanal %d: Zeitstempel %q nicht lesbar", i+1, m[3])
		}
		records = append(records, MeasurementRecord{
			EventID:             eventID,
			CharacteristicIndex: i + 1,
			Value:               value,
			Attribute:           attr,
			Timestamp:           ts,
		})
	}
	if len(records) == 0 {
		return nil
	}
	return records
}

// Multi-channel control-character dialect: identical semantics, but some
// exporting systems separate the groups with a non-printable control byte
// instead of a space. The byte is normalized to whitespace and the line is
// re-run through the multi-channel recognizer.
func parseMultiChannelControl(line string, eventID int, log *Logbook) []MeasurementRecord {
	clean := normalizeControlBytes(line)
	if clean == line {
		return nil
	}
	return parseMultiChannel(clean, eventID, log)
}

// normalizeControlBytes maps inter-field delimiter bytes seen in the wild
// (DC4, SI, and the ¶/¤ markers) to plain spaces.
func normalizeControlBytes(line string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return r
		case r < 0x20, r == '¶', r == '¤':
			return ' '
		}
		return r
	}, line)
}

// Bare-numeric fallback dialect: the line consists solely of decimal
// tokens, with no attribute and no timestamp. Attributes default to 0
// (valid); timestamps stay explicitly unknown, never the wall clock.
var decimalTokenRe = regexp.MustCompile(`^[-+]?(\d+(\.\d*)?|\.\d+)$`)

func parseNumericOnly(line string, eventID int, log *Logbook) []MeasurementRecord {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	records := make([]MeasurementRecord, 0, len(fields))
	for i, f := range fields {
		if !decimalTokenRe.MatchString(f) {
			return nil
		}
		value, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		records = append(records, MeasurementRecord{
			EventID:             eventID,
			CharacteristicIndex: i + 1,
			Value:               value,
		})
	}
	return records
}
