package window

import (
	"testing"
	"time"
)

func TestAdmitTodayOnly(t *testing.T) {
	runAt := func() time.Time {
		return time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	}
	f := NewAt(0, runAt)

	tests := []struct {
		name      string
		published time.Time
		want      bool
	}{
		{
			name:      "start of today is inclusive",
			published: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "just before midnight is out",
			published: time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC),
			want:      false,
		},
		{
			name:      "later today is in",
			published: time.Date(2024, 6, 10, 23, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "tomorrow is out",
			published: time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Admit(tt.published); got != tt.want {
				t.Errorf("Admit(%v) = %v, want %v", tt.published, got, tt.want)
			}
		})
	}
}

func TestAdmitLookbackDays(t *testing.T) {
	runAt := func() time.Time {
		return time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	}
	f := NewAt(3, runAt)

	in := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
	if !f.Admit(in) {
		t.Errorf("Admit(%v) = false, want true (window start)", in)
	}

	out := time.Date(2024, 6, 6, 23, 59, 59, 0, time.UTC)
	if f.Admit(out) {
		t.Errorf("Admit(%v) = true, want false (before window)", out)
	}
}

func TestAdmitNormalizesZones(t *testing.T) {
	runAt := func() time.Time {
		return time.Date(2024, 6, 10, 1, 0, 0, 0, time.UTC)
	}
	f := NewAt(0, runAt)

	// 2024-06-10T01:30+02:00 is 2024-06-09T23:30 UTC: previous day.
	offset := time.FixedZone("CEST", 2*60*60)
	published := time.Date(2024, 6, 10, 1, 30, 0, 0, offset)
	if f.Admit(published) {
		t.Errorf("Admit(%v) = true, want false after UTC conversion", published)
	}
}
