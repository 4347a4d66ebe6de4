package ui

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"Ada Lovelace", 5, "Ada …"},
		{"abc", 1, "a"},
		{"abc", 0, ""},
		{"café au lait", 5, "café…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("/home/user/.local/state/tally/tally.log", 16)
	if len([]rune(got)) != 16 {
		t.Fatalf("len = %d, want 16 (%q)", len([]rune(got)), got)
	}
	if got[len(got)-9:] != "tally.log" {
		t.Fatalf("expected the file name to survive, got %q", got)
	}
	if got := truncateMiddle("tally.log", 20); got != "tally.log" {
		t.Fatalf("short value changed: %q", got)
	}
}

func TestFit(t *testing.T) {
	if got := fit("ab", 4); got != "ab  " {
		t.Fatalf("fit pad = %q", got)
	}
	if got := fit("abcdef", 4); got != "abc…" {
		t.Fatalf("fit cut = %q", got)
	}
	if got := fit("abc", 0); got != "" {
		t.Fatalf("fit zero = %q", got)
	}
}

func TestHumanizeDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "now"},
		{42 * time.Second, "42s"},
		{3 * time.Minute, "3m"},
		{5*time.Hour + 10*time.Minute, "5h"},
		{50 * time.Hour, "2d"},
	}
	for _, tt := range tests {
		if got := humanizeDuration(tt.d); got != tt.want {
			t.Errorf("humanizeDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
