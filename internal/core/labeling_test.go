package core

import "testing"

func TestTagLabelIdempotent(t *testing.T) {
	cases := []struct {
		label  string
		prefix string
		want   string
	}{
		{"edge-1", "[ok] ", "[ok] edge-1"},
		{"[ok] edge-1", "[ok] ", "[ok] edge-1"},
		{"edge-1", "", "edge-1"},
		{"", "[ok] ", "[ok] "},
	}

	for _, tc := range cases {
		if got := TagLabel(tc.label, tc.prefix); got != tc.want {
			t.Errorf("TagLabel(%q, %q) = %q, want %q", tc.label, tc.prefix, got, tc.want)
		}
	}

	// applying twice never stacks
	once := TagLabel("edge-1", "[ok] ")
	twice := TagLabel(once, "[ok] ")
	if once != twice {
		t.Errorf("tagging is not idempotent: %q vs %q", once, twice)
	}
}

func TestExcluded(t *testing.T) {
	markers := []string{"traffic left", "expires"}

	if !Excluded("2.5GB traffic left", markers) {
		t.Error("expected exclusion for traffic marker")
	}
	if !Excluded("plan expires 2026-09-01", markers) {
		t.Error("expected exclusion for expiry marker")
	}
	if Excluded("edge-1", markers) {
		t.Error("unexpected exclusion for plain label")
	}
	if Excluded("edge-1", nil) {
		t.Error("no markers must never exclude")
	}
	if Excluded("anything", []string{""}) {
		t.Error("empty marker must not match everything")
	}
}
