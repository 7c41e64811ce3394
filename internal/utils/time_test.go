package utils

import "testing"

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if FormatDate(d) != "2026-03-15" {
		t.Errorf("round trip gave %q", FormatDate(d))
	}

	if _, err := ParseDate("15/03/2026"); err == nil {
		t.Errorf("expected error for wrong layout")
	}
}

func TestValidClock(t *testing.T) {
	for _, ok := range []string{"08:00", "23:59", "00:00"} {
		if !ValidClock(ok) {
			t.Errorf("ValidClock(%q) = false", ok)
		}
	}
	for _, bad := range []string{"24:00", "8am", "", "12:60"} {
		if ValidClock(bad) {
			t.Errorf("ValidClock(%q) = true", bad)
		}
	}
}
