package finbook

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: NewDate(2025, time.July, 1)},
		{in: "2025-7-1", want: NewDate(2025, time.July, 1)},
		{in: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{in: "not-a-date", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNextMonthly(t *testing.T) {
	testCases := []struct {
		name   string
		from   Date
		anchor int
		want   Date
	}{
		{
			name:   "plain next month",
			from:   NewDate(2025, time.March, 15),
			anchor: 15,
			want:   NewDate(2025, time.April, 15),
		},
		{
			name:   "day 31 clamps in a 30-day month",
			from:   NewDate(2025, time.March, 31),
			anchor: 31,
			want:   NewDate(2025, time.April, 30),
		},
		{
			name:   "day 31 clamps to february 28",
			from:   NewDate(2025, time.January, 31),
			anchor: 31,
			want:   NewDate(2025, time.February, 28),
		},
		{
			name:   "day 31 clamps to february 29 on leap years",
			from:   NewDate(2024, time.January, 31),
			anchor: 31,
			want:   NewDate(2024, time.February, 29),
		},
		{
			name:   "anchor recovers after a short month",
			from:   NewDate(2025, time.February, 28),
			anchor: 31,
			want:   NewDate(2025, time.March, 31),
		},
		{
			name:   "year rollover",
			from:   NewDate(2025, time.December, 5),
			anchor: 5,
			want:   NewDate(2026, time.January, 5),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.NextMonthly(tc.anchor); got != tc.want {
				t.Errorf("NextMonthly(%d) from %s = %s, want %s", tc.anchor, tc.from, got, tc.want)
			}
		})
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.August, 23)
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(data) != `"2025-08-23"` {
		t.Errorf("MarshalJSON = %s, want %q", data, "2025-08-23")
	}
	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON failed: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
