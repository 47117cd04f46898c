package news

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		in     string
		want   time.Time
		wantOK bool
	}{
		{"recent token", "Recent", now, true},
		{"full timestamp", "2025-06-14 09:30:00 UTC", time.Date(2025, 6, 14, 9, 30, 0, 0, time.UTC), true},
		{"date only", "2025-06-10", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "yesterday-ish", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseDate(tc.in, now)
			if ok != tc.wantOK {
				t.Fatalf("parseDate(%q) ok = %v, want %v", tc.in, ok, tc.wantOK)
			}
			if ok && !got.Equal(tc.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
