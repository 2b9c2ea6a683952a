package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeDuplicateFrame, "duplicate frame: %s", "Panel")

	if err.Code != ErrCodeDuplicateFrame {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDuplicateFrame)
	}

	if err.Message != "duplicate frame: Panel" {
		t.Errorf("Message = %v, want %v", err.Message, "duplicate frame: Panel")
	}

	expected := "DUPLICATE_FRAME: duplicate frame: Panel"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidFormat, cause, "decode frames.json")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidInput, "test"), ErrCodeInvalidInput, true},
		{"different code", New(ErrCodeInvalidInput, "test"), ErrCodeNotFound, false},
		{"outer code wins", Wrap(ErrCodeInvalidFormat, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInvalidFormat, true},
		{"wrapped by fmt", fmt.Errorf("context: %w", New(ErrCodeSnapshotNotFound, "gone")), ErrCodeSnapshotNotFound, true},
		{"plain error", errors.New("plain"), ErrCodeInternal, false},
		{"nil error", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidPolicy, "x")); got != ErrCodeInvalidPolicy {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidPolicy)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidInput, "bad canvas"), "bad canvas"},
		{"coded with cause", Wrap(ErrCodeInvalidFormat, errors.New("line 3"), "decode frames.yaml"), "decode frames.yaml: line 3"},
		{"plain", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
