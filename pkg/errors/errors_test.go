package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFold, "fold %s moves no cells", "v:left:0")

	if err.Code != ErrCodeInvalidFold {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFold)
	}

	if err.Message != "fold v:left:0 moves no cells" {
		t.Errorf("Message = %v, want %v", err.Message, "fold v:left:0 moves no cells")
	}

	expected := "INVALID_FOLD: fold v:left:0 moves no cells"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := New(ErrCodeDomain, "intercept 4 outside paper")
	err := Wrap(ErrCodeInvalidFold, cause, "fold rejected")

	if err.Code != ErrCodeInvalidFold {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFold)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "INVALID_FOLD: fold rejected: DOMAIN_ERROR: intercept 4 outside paper"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
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
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeDomain,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeInvalidFold, New(ErrCodeDomain, "inner"), "outer"),
			code:     ErrCodeInvalidFold,
			expected: true,
		},
		{
			name:     "inner code hidden",
			err:      Wrap(ErrCodeInvalidFold, New(ErrCodeDomain, "inner"), "outer"),
			code:     ErrCodeDomain,
			expected: false,
		},
		{
			name:     "behind fmt wrapping",
			err:      fmt.Errorf("simulate: %w", New(ErrCodeIndexOutOfRange, "step 9")),
			code:     ErrCodeIndexOutOfRange,
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

func TestHas(t *testing.T) {
	err := fmt.Errorf("apply: %w", Wrap(ErrCodeInvalidFold, New(ErrCodeDomain, "inner"), "outer"))

	if !Has(err, ErrCodeInvalidFold) {
		t.Error("Has(INVALID_FOLD) = false, want true")
	}
	if !Has(err, ErrCodeDomain) {
		t.Error("Has(DOMAIN_ERROR) = false, want true")
	}
	if Has(err, ErrCodeNotFound) {
		t.Error("Has(NOT_FOUND) = true, want false")
	}
	if Has(nil, ErrCodeDomain) {
		t.Error("Has(nil) = true, want false")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidNotation, "test"),
			expected: ErrCodeInvalidNotation,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
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
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
