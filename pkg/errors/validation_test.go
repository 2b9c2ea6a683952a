package errors

import (
	"strings"
	"testing"
)

func TestValidateFrameName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "MainMenuFrame", false},
		{"with spaces", "Close Button", false},
		{"unicode", "Fenêtre", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 300), true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"tilde", "a~b", true},
		{"comma", "a,b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFrameName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFrameName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateSnapshotID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"canonical", "7d444840-9dc0-11d1-b245-5ffdce74fad2", false},
		{"upper case", "7D444840-9DC0-11D1-B245-5FFDCE74FAD2", false},

		{"empty", "", true},
		{"traversal", "../etc/passwd", true},
		{"braced", "{7d444840-9dc0-11d1-b245-5ffdce74fad2}", true},
		{"urn", "urn:uuid:7d444840-9dc0-11d1-b245-5ffdce74fad2", true},
		{"garbage", "snapshot-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshotID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSnapshotID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
