package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeAlreadyOwned, "child already has a parent")

	if err == nil {
		t.Fatal("New should return non-nil error")
	}
	if err.Code != ErrCodeAlreadyOwned {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeAlreadyOwned)
	}
	if err.Message != "child already has a parent" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Underlying != nil {
		t.Error("Underlying should be nil for New error")
	}
	if len(err.Stack) == 0 {
		t.Error("Stack should be captured")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrCodeInvalidEnum, "unknown region %d", 9)
	if err.Message != "unknown region 9" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	underlying := errors.New("read failed")
	err := Wrap(underlying, ErrCodeProducerIO, "input reader")

	if err.Underlying != underlying {
		t.Error("Underlying should be preserved")
	}
	if !strings.Contains(err.Error(), "read failed") {
		t.Error("Error string should include underlying error")
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should reach the underlying error")
	}
}

func TestWrap_Nil(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "test"); err != nil {
		t.Error("Wrap of nil should return nil")
	}
}

func TestWithContext_SortedInMessage(t *testing.T) {
	err := New(ErrCodePlaybackParse, "bad line").
		WithContext("line", 3).
		WithContext("input", "x KEY")

	got := err.Error()
	want := "[PLAYBACK_PARSE] bad line {input: x KEY, line: 3}"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsCode(t *testing.T) {
	base := New(ErrCodeNotChild, "not a child")
	wrapped := fmt.Errorf("remove: %w", base)

	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"direct", base, ErrCodeNotChild, true},
		{"wrapped", wrapped, ErrCodeNotChild, true},
		{"other code", base, ErrCodeCycle, false},
		{"plain error", errors.New("x"), ErrCodeNotChild, false},
		{"nil", nil, ErrCodeNotChild, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorsIsByCode(t *testing.T) {
	err := fmt.Errorf("add: %w", New(ErrCodeAlreadyOwned, "owned"))
	if !errors.Is(err, &Error{Code: ErrCodeAlreadyOwned}) {
		t.Error("errors.Is should match on code")
	}
	if errors.Is(err, &Error{Code: ErrCodeCycle}) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q", got)
	}
	if got := GetCode(errors.New("x")); got != ErrCodeInternal {
		t.Errorf("GetCode(plain) = %q, want INTERNAL", got)
	}
	if got := GetCode(New(ErrCodeCycle, "loop")); got != ErrCodeCycle {
		t.Errorf("GetCode = %q", got)
	}
}

func TestStackTrace(t *testing.T) {
	err := New(ErrCodeInternal, "boom")
	if !strings.HasPrefix(err.StackTrace(), "Stack trace:") {
		t.Error("StackTrace should start with header")
	}
}
