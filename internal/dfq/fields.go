package dfq

import (
	"strconv"
	"strings"
)

// multiValueSeparator packs the values of all characteristics into a single
// K2xxx field ("all characteristics in one line" header variant). The values
// fan out across indices 1..n in order.
const multiValueSeparator = "¤"

// parseFieldLine folds one K-field line into the metadata map and, for
// indexed K2xxx codes, into the per-characteristic map. The metadata map
// always receives the full original code so it stays a complete superset
// for export purposes.
func parseFieldLine(line string, meta Metadata, chars Characteristics, log *Logbook) {
	code, value, ok := splitFieldLine(line)
	if !ok {
		log.Printf("K-Feld ohne Wert übersprungen: %q", line)
		return
	}

	meta[code] = value

	base, indexText, indexed := strings.Cut(code, "/")
	if !strings.HasPrefix(base, characteristicPrefix) {
		return
	}

	if strings.Contains(value, multiValueSeparator) {
		fanOut(base, value, chars)
		return
	}

	if !indexed {
		return
	}
	idx, err := strconv.Atoi(indexText)
	if err != nil || idx < 1 {
		// K2xxx/0 and non-numeric suffixes describe the whole part,
		// not a characteristic; they stay metadata-only.
		return
	}
	chars.ensure(idx)[base] = value
}

// fanOut splits a multi-value field and assigns the parts to sequentially
// increasing characteristic indices starting at 1. Empty parts keep their
// slot but store nothing.
func fanOut(base, value string, chars Characteristics) {
	for i, part := range strings.Split(value, multiValueSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		chars.ensure(i + 1)[base] = part
	}
}
