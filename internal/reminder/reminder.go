// Package reminder computes when a saved plant should next be watered.
package reminder

import (
	"errors"
	"fmt"
	"time"

	"plantmanager/internal/model"
)

// ErrPastTime is returned when the chosen reminder time is not in the future.
var ErrPastTime = errors.New("choose a time in the future")

const (
	RepeatDay  = "day"
	RepeatWeek = "week"
)

// At returns today's date (relative to now) at the given clock time.
func At(now time.Time, hour, minute int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
}

// Next returns the notification time for a plant watered on f's schedule when
// the user picked chosen as the preferred moment.
//
// Weekly schedules land 7/times days (truncated) after now at the chosen clock
// time; anything else lands one day after chosen.
func Next(chosen, now time.Time, f model.Frequency) (time.Time, error) {
	if !chosen.After(now) {
		return time.Time{}, ErrPastTime
	}

	if f.RepeatEvery != RepeatWeek {
		return chosen.AddDate(0, 0, 1), nil
	}

	times := f.Times
	if times < 1 {
		times = 1
	}
	day := now.AddDate(0, 0, 7/times)
	return time.Date(day.Year(), day.Month(), day.Day(),
		chosen.Hour(), chosen.Minute(), chosen.Second(), 0, chosen.Location()), nil
}

// Describe renders f for humans, e.g. "Water 2 times a week".
func Describe(f model.Frequency) string {
	every := f.RepeatEvery
	if every == "" {
		every = RepeatDay
	}
	switch f.Times {
	case 0:
		return "Water every " + every
	case 1:
		return "Water once a " + every
	default:
		return fmt.Sprintf("Water %d times a %s", f.Times, every)
	}
}
