package errors

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid simple", "node-1", false},
		{"valid uuid", uuid.NewString(), false},
		{"valid unicode", "ノード", false},
		{"empty", "", true},
		{"control character", "node\x01", true},
		{"null byte", "node\x00id", true},
		{"too long", strings.Repeat("a", 257), true},
		{"max length ok", strings.Repeat("a", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidNode) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidNode)
			}
		})
	}
}

func TestValidateDocumentID(t *testing.T) {
	if err := ValidateDocumentID(uuid.NewString()); err != nil {
		t.Errorf("ValidateDocumentID(uuid) error = %v", err)
	}
	if err := ValidateDocumentID("imported-doc-42"); err != nil {
		t.Errorf("ValidateDocumentID(foreign) error = %v", err)
	}
	if err := ValidateDocumentID(""); !Is(err, ErrCodeInvalidDocument) {
		t.Errorf("empty ID: error = %v, want %v", err, ErrCodeInvalidDocument)
	}
	if err := ValidateDocumentID("bad\x00id"); !Is(err, ErrCodeInvalidDocument) {
		t.Errorf("null byte: error = %v, want %v", err, ErrCodeInvalidDocument)
	}
}

func TestValidateTitle(t *testing.T) {
	if err := ValidateTitle(""); err != nil {
		t.Errorf("empty title should be allowed, got %v", err)
	}
	if err := ValidateTitle(strings.Repeat("x", 513)); err == nil {
		t.Error("overlong title accepted")
	}
	if err := ValidateTitle("plan\x00"); err == nil {
		t.Error("null byte in title accepted")
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid relative", "maps/plan.json", false},
		{"valid absolute", "/tmp/plan.json", false},
		{"empty", "", true},
		{"traversal", "../etc/passwd", true},
		{"embedded traversal", "maps/../../secret", true},
		{"null byte", "plan\x00.json", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
