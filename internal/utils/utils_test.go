package utils

import (
	"testing"
	"time"
)

func TestFormatEuro(t *testing.T) {
	cases := map[int64]string{
		0:     "0.00 €",
		5:     "0.05 €",
		2900:  "29.00 €",
		10650: "106.50 €",
		-150:  "-1.50 €",
	}
	for cents, want := range cases {
		if got := FormatEuro(cents); got != want {
			t.Fatalf("FormatEuro(%d) = %q, want %q", cents, got, want)
		}
	}
}

func TestDayInterval(t *testing.T) {
	at := time.Date(2025, 7, 14, 15, 4, 5, 123, time.UTC)
	start, end := DayInterval(at)
	if !start.Equal(time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", start)
	}
	if !end.Equal(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end = %v", end)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("14-07-2025"); err == nil {
		t.Fatalf("expected error for reversed date")
	}
	if d, err := ParseDate(" 2025-07-14 "); err != nil || d.Day() != 14 {
		t.Fatalf("trimmed date parse failed: %v %v", d, err)
	}
}
