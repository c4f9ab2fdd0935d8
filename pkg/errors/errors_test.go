package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidColumns, "columns must be at least 1, got %d", 0)

	if err.Code != ErrCodeInvalidColumns {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidColumns)
	}

	if err.Message != "columns must be at least 1, got 0" {
		t.Errorf("Message = %v, want %v", err.Message, "columns must be at least 1, got 0")
	}

	expected := "INVALID_COLUMNS: columns must be at least 1, got 0"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("missing closing )")
	err := Wrap(ErrCodeInvalidPattern, cause, "compile %q", "TLR-(01")

	if err.Code != ErrCodeInvalidPattern {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidPattern)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	want := `INVALID_PATTERN: compile "TLR-(01": missing closing )`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeUnknownBuilding, "ZZZ"),
			code:     ErrCodeUnknownBuilding,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeUnknownBuilding, "ZZZ"),
			code:     ErrCodeFileExists,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
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
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidTopology, "test"), ErrCodeInvalidTopology},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeFileExists, "labels.html already exists"), "labels.html already exists"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidColumns,
		ErrCodeInvalidPattern,
		ErrCodeInvalidFormat,
		ErrCodeInvalidTopology,
		ErrCodeInvalidLabel,
		ErrCodeUnknownBuilding,
		ErrCodeNotFound,
		ErrCodeFileExists,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
