package model

import "testing"

func TestParseType(t *testing.T) {
	for _, valid := range []string{TypeLost, TypeFound} {
		got, err := ParseType(valid)
		if err != nil {
			t.Errorf("ParseType(%q): %v", valid, err)
		}
		if got != valid {
			t.Errorf("ParseType(%q) = %q", valid, got)
		}
	}

	for _, invalid := range []string{"", "Lost", "stolen", "lost "} {
		if _, err := ParseType(invalid); err == nil {
			t.Errorf("ParseType(%q): expected error", invalid)
		}
	}
}
