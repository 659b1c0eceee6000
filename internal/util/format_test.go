package util

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFormatWhen(t *testing.T) {
	now := time.Date(2026, 4, 6, 10, 0, 0, 0, time.UTC) // Monday

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "today", at: time.Date(2026, 4, 6, 18, 30, 0, 0, time.UTC), want: "Today 18:30"},
		{name: "tomorrow", at: time.Date(2026, 4, 7, 8, 0, 0, 0, time.UTC), want: "Tomorrow 08:00"},
		{name: "this week", at: time.Date(2026, 4, 9, 8, 0, 0, 0, time.UTC), want: "Thu 08:00"},
		{name: "this year", at: time.Date(2026, 5, 1, 7, 5, 0, 0, time.UTC), want: "May 01 07:05"},
		{name: "next year", at: time.Date(2027, 1, 2, 9, 0, 0, 0, time.UTC), want: "Jan 02 '27 09:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, FormatWhen(tt.at, now)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatNextWatering(t *testing.T) {
	now := time.Date(2026, 4, 6, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "upcoming", at: now.Add(3 * time.Hour), want: "Water your Babosa 3 hours from now."},
		{name: "days away", at: now.Add(50 * time.Hour), want: "Water your Babosa 2 days from now."},
		{name: "overdue", at: now.Add(-2 * time.Hour), want: "Your Babosa was due 2 hours ago."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, FormatNextWatering("Babosa", tt.at, now)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseClockInput(t *testing.T) {
	tests := []struct {
		input      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{input: "08:30", wantHour: 8, wantMinute: 30},
		{input: "8:05", wantHour: 8, wantMinute: 5},
		{input: " 20h15 ", wantHour: 20, wantMinute: 15},
		{input: "7:45 pm", wantHour: 19, wantMinute: 45},
		{input: "6pm", wantHour: 18},
		{input: "21", wantHour: 21},
		{input: "", wantErr: true},
		{input: "25:00", wantErr: true},
		{input: "noon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			h, m, err := ParseClockInput(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff([2]int{tt.wantHour, tt.wantMinute}, [2]int{h, m}); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{in: "Zamioculca", maxLen: 20, want: "Zamioculca"},
		{in: "Espada de São Jorge", maxLen: 10, want: "Espada ..."},
		{in: "Imbé", maxLen: 2, want: "Im"},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, TruncateString(tt.in, tt.maxLen)); diff != "" {
			t.Errorf("TruncateString(%q, %d) mismatch (-want +got):\n%s", tt.in, tt.maxLen, diff)
		}
	}
}
