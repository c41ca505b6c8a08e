package testutil

import (
	"fmt"
	"testing"

	"github.com/eikopf/konig/internal/errors"
)

// Failures cannot be observed without a fake *testing.T, so these tests
// cover the passing paths and the message formatting.

func TestAssertEqual(t *testing.T) {
	AssertEqual(t, "e4", "e4")
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, nil, nil)
	AssertEqual(t, 42, 42, "value should be %d", 42)
}

func TestAssertErrors(t *testing.T) {
	AssertNoError(t, nil)
	AssertError(t, errors.ErrInvalidNAG, "expected error from %s", "tokenizer")

	wrapped := fmt.Errorf("field: %w", errors.ErrInvalidFENComponent)
	AssertErrorIs(t, wrapped, errors.ErrInvalidFENComponent)
}

func TestAssertContains(t *testing.T) {
	AssertContains(t, "1. e4 e5", "e5")
	AssertContains(t, "test", "")
}

func TestAssertTrueAndNil(t *testing.T) {
	AssertTrue(t, len("hello") == 5)

	var p *int
	AssertNil(t, p)
	AssertNil(t, nil)
	AssertTrue(t, !isNil([]int{}))
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"single int", []interface{}{42}, "42"},
		{"format string", []interface{}{"hello %s", "world"}, "hello world"},
		{"format multiple", []interface{}{"%s %d %s", "test", 42, "end"}, "test 42 end"},
		{"non-string first", []interface{}{7, "ignored"}, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
