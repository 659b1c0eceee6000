package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatClock formats the time of day as "15:04".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatWhen formats a notification time relative to now.
// "Today 08:30", "Tomorrow 08:30", "Thu 08:30", "Apr 21 08:30"
func FormatWhen(t, now time.Time) string {
	t = t.In(now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
	days := int(day.Sub(today).Hours() / 24)

	switch {
	case days == 0:
		return "Today " + FormatClock(t)
	case days == 1:
		return "Tomorrow " + FormatClock(t)
	case days > 1 && days < 7:
		return t.Format("Mon 15:04")
	case t.Year() == now.Year():
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("Jan 02 '06 15:04")
	}
}

// FormatNextWatering renders the spotlight line for the plant due soonest.
func FormatNextWatering(name string, at, now time.Time) string {
	rel := humanize.RelTime(at, now, "ago", "from now")
	if at.After(now) {
		return fmt.Sprintf("Water your %s %s.", name, rel)
	}
	return fmt.Sprintf("Your %s was due %s.", name, rel)
}

// ParseClockInput parses flexible time-of-day input ("8:30", "08:30",
// "8:30pm", "20h30") into hour and minute.
func ParseClockInput(input string) (hour, minute int, err error) {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(input), " ", ""))
	if s == "" {
		return 0, 0, fmt.Errorf("empty time")
	}
	s = strings.Replace(s, "H", ":", 1)

	layouts := []string{
		"15:04",
		"3:04PM",
		"3PM",
		"15",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour(), t.Minute(), nil
		}
	}
	return 0, 0, fmt.Errorf("invalid time %q, use HH:MM", input)
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
