package models

import (
	"errors"
	"testing"

	"quill/internal/domain"
)

func TestParseAccessLevel(t *testing.T) {
	for code, want := range map[string]AccessLevel{
		"n": LevelNone,
		"r": LevelRead,
		"w": LevelReadWrite,
	} {
		got, err := ParseAccessLevel(code)
		if err != nil {
			t.Fatalf("ParseAccessLevel(%q) failed: %v", code, err)
		}
		if got != want {
			t.Errorf("ParseAccessLevel(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestParseAccessLevel_RejectsUnknownCodes(t *testing.T) {
	for _, code := range []string{"", "x", "rw", "N", "read"} {
		_, err := ParseAccessLevel(code)
		if err == nil {
			t.Errorf("ParseAccessLevel(%q) succeeded, want validation error", code)
			continue
		}
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("ParseAccessLevel(%q) = %v, want ErrValidation", code, err)
		}
	}
}

func TestOperationAllowedFor(t *testing.T) {
	cases := []struct {
		op    Operation
		level AccessLevel
		want  bool
	}{
		{OpRead, LevelRead, true},
		{OpRead, LevelReadWrite, true},
		{OpRead, LevelNone, false},
		{OpEdit, LevelReadWrite, true},
		{OpEdit, LevelRead, false},
		{OpEdit, LevelNone, false},
		{OpDelete, LevelReadWrite, true},
		{OpDelete, LevelRead, false},
		{OpDelete, LevelNone, false},
	}

	for _, tc := range cases {
		if got := tc.op.AllowedFor(tc.level); got != tc.want {
			t.Errorf("%s.AllowedFor(%q) = %v, want %v", tc.op, tc.level, got, tc.want)
		}
	}
}
