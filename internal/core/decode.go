package core

import "strings"

// utf8BOM is the byte-order mark some Windows exporters prepend.
const utf8BOM = "\ufeff"

// DecodeUpload turns raw upload bytes into text. A leading BOM is stripped
// and byte sequences that are not valid UTF-8 are dropped, so files saved
// in legacy single-byte encodings still parse; only the affected characters
// are lost.
func DecodeUpload(data []byte) string {
	s := strings.TrimPrefix(string(data), utf8BOM)
	return strings.ToValidUTF8(s, "")
}
