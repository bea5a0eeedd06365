package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	// A Wednesday.
	now := time.Date(2026, time.January, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		day  string
		want string
	}{
		{"later this week", "Saturday", "January 17, 2026"},
		{"case insensitive", "saturday", "January 17, 2026"},
		{"earlier weekday rolls to next week", "Monday", "January 19, 2026"},
		{"same weekday means next week", "Wednesday", "January 21, 2026"},
		{"explicit date passes through", "February 1, 2026", "February 1, 2026"},
		{"unrecognized passes through", "whenever", "whenever"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.day, now))
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"12-hour passes through", "7:30 PM", "7:30 PM"},
		{"lowercase am passes through", "9:15 am", "9:15 am"},
		{"24-hour evening", "19:00", "7:00 PM"},
		{"24-hour noon", "12:30", "12:30 PM"},
		{"24-hour midnight", "0:30", "12:30 AM"},
		{"24-hour morning", "9:45", "9:45 AM"},
		{"garbage falls back", "sevenish", "7:00 PM"},
		{"empty falls back", "", "7:00 PM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTime(tt.value))
		})
	}
}
