package dates

import (
	"testing"
	"time"

	"github.com/proposalarchitect/speakerscout/models"
)

func TestParse_SupportedFormats(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-03-14", "2025-03-14"},
		{"2025-03-14T09:30:00", "2025-03-14"},
		{"2025-03-14T09:30:00Z", "2025-03-14"},
		{"2025-03-14 09:30:00", "2025-03-14"},
		{"14/03/2025", "2025-03-14"},
		{"03/14/2025", "2025-03-14"},
		{"March 14, 2025", "2025-03-14"},
		{"Mar 14, 2025", "2025-03-14"},
	}
	for _, c := range cases {
		got, ok := Parse(c.in)
		if !ok {
			t.Errorf("Parse(%q) should succeed", c.in)
			continue
		}
		if got.Format("2006-01-02") != c.want {
			t.Errorf("Parse(%q) = %s, want %s", c.in, got.Format("2006-01-02"), c.want)
		}
	}
}

func TestParse_Unparseable(t *testing.T) {
	for _, in := range []string{"", "   ", "TBD", "next spring", "2025/03/14", "14th of March"} {
		if _, ok := Parse(in); ok {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestParse_SlashAmbiguity(t *testing.T) {
	// 25/12/2025 only fits day/month/year; 12/25/2025 only month/day/year.
	if got, ok := Parse("25/12/2025"); !ok || got.Month() != time.December {
		t.Errorf("25/12/2025 parsed as %v ok=%v", got, ok)
	}
	if got, ok := Parse("12/25/2025"); !ok || got.Month() != time.December {
		t.Errorf("12/25/2025 parsed as %v ok=%v", got, ok)
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		d    models.DateInfo
		want bool
	}{
		{"past deadline", models.DateInfo{ApplicationDeadline: "2020-01-01"}, true},
		{"future deadline", models.DateInfo{ApplicationDeadline: "2026-06-01"}, false},
		{"future deadline past start", models.DateInfo{ApplicationDeadline: "2026-06-01", StartDate: "2020-01-01"}, false},
		{"no deadline past start", models.DateInfo{StartDate: "2024-01-01"}, true},
		{"no deadline future start", models.DateInfo{StartDate: "2026-01-01"}, false},
		{"no dates at all", models.DateInfo{}, false},
		{"unparseable deadline", models.DateInfo{ApplicationDeadline: "sometime soon"}, false},
		{"unparseable start only", models.DateInfo{StartDate: "whenever"}, false},
	}
	for _, c := range cases {
		if got := IsExpired(c.d, now); got != c.want {
			t.Errorf("%s: IsExpired = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDaysUntilDeadline(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	d := DaysUntilDeadline(models.DateInfo{ApplicationDeadline: "2025-06-11"}, now)
	if d == nil || *d != 10 {
		t.Fatalf("expected 10 days, got %v", d)
	}

	d = DaysUntilDeadline(models.DateInfo{ApplicationDeadline: "2025-05-22"}, now)
	if d == nil || *d >= 0 {
		t.Fatalf("expected negative days for passed deadline, got %v", d)
	}

	if d := DaysUntilDeadline(models.DateInfo{}, now); d != nil {
		t.Fatalf("expected nil without deadline, got %v", d)
	}
	if d := DaysUntilDeadline(models.DateInfo{ApplicationDeadline: "not a date"}, now); d != nil {
		t.Fatalf("expected nil for unparseable deadline, got %v", d)
	}
}
