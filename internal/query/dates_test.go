// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveDates(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "after month-year",
			text:     "combinatorics papers after December 2024",
			wantFrom: date(2024, time.December, 1),
		},
		{
			name:     "published after ISO date",
			text:     "papers published after 2024-03-15",
			wantFrom: date(2024, time.March, 15),
		},
		{
			name:     "since bare year",
			text:     "quantum papers since 2023",
			wantFrom: date(2023, time.January, 1),
		},
		{
			name:   "before bare year means period start",
			text:   "papers before 2024",
			wantTo: date(2024, time.January, 1),
		},
		{
			name:   "before january equals before bare year",
			text:   "papers before January 2024",
			wantTo: date(2024, time.January, 1),
		},
		{
			name:   "until ISO date",
			text:   "results until 2024-06-15",
			wantTo: date(2024, time.June, 15),
		},
		{
			name:     "in year is the whole year",
			text:     "ML papers in 2024",
			wantFrom: date(2024, time.January, 1),
			wantTo:   date(2025, time.January, 1),
		},
		{
			name:     "both bounds",
			text:     "papers after 2022 before 2024",
			wantFrom: date(2022, time.January, 1),
			wantTo:   date(2024, time.January, 1),
		},
		{
			name:     "explicit bound suppresses in-year",
			text:     "papers after 2023 in 2024",
			wantFrom: date(2023, time.January, 1),
		},
		{
			name: "crossed interval drops the filter",
			text: "papers after 2024 before 2023",
		},
		{
			name: "implausible year ignored",
			text: "papers in 1850",
		},
		{
			name: "unparseable fragment ignored",
			text: "papers after the conference",
		},
		{
			name: "no dates",
			text: "quantum entanglement review",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := ResolveDates(tt.text)
			if !from.Equal(tt.wantFrom) {
				t.Errorf("from = %v, want %v", from, tt.wantFrom)
			}
			if !to.Equal(tt.wantTo) {
				t.Errorf("to = %v, want %v", to, tt.wantTo)
			}
		})
	}
}

func TestResolveDatesCaseInsensitive(t *testing.T) {
	from, _ := ResolveDates("Papers AFTER December 2024")
	if !from.Equal(date(2024, time.December, 1)) {
		t.Errorf("from = %v, want 2024-12-01", from)
	}
}

func TestParseDatePhrase(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{"2024-12-01", date(2024, time.December, 1), true},
		{"december 2024", date(2024, time.December, 1), true},
		{"2024", date(2024, time.January, 1), true},
		{"1990", time.Time{}, false},
		{"soon", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := parseDatePhrase(tt.in)
		if ok != tt.wantOK || !got.Equal(tt.want) {
			t.Errorf("parseDatePhrase(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
