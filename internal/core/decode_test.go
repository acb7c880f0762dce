package core

import "testing"

func TestDecodeUpload(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"plain", []byte("K1001 test"), "K1001 test"},
		{"bom stripped", []byte{0xEF, 0xBB, 0xBF, 'K', '1'}, "K1"},
		{"invalid bytes dropped", []byte{'5', '0', 0xA4, '5', '2'}, "5052"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeUpload(tt.data); got != tt.want {
				t.Errorf("DecodeUpload = %q, want %q", got, tt.want)
			}
		})
	}
}
