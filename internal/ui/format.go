package ui

import (
	"fmt"
	"time"

	"github.com/idilsaglam/smarttasks/internal/model"
)

// RelativeTime labels how long ago t was: "Just now", "5m ago", "3h ago",
// "2d ago", and a plain date from a week on.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
	return t.Local().Format("Jan 2, 2006")
}

func PriorityColor(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return current.High
	case model.PriorityMedium:
		return current.Medium
	default:
		return current.Low
	}
}

// PriorityBadge renders "[high]" in the priority's color.
func PriorityBadge(p model.Priority) string {
	return C(PriorityColor(p), "["+string(p)+"]")
}

// Truncate shortens s to max runes, ending in "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 4 {
		return s
	}
	return string(r[:max-3]) + "..."
}
