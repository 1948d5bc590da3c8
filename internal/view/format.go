package view

import (
	"fmt"
	"time"
)

// FormatRelative renders how long ago t was, falling back to an absolute date after a week.
func FormatRelative(t, now time.Time, loc *time.Location) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	}

	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("Jan 2, 2006")
}

// FormatClock renders hour and minute, ex: "09:05 AM".
func FormatClock(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("03:04 PM")
}

// CountLabel is "1 link" or "{n} links".
func CountLabel(n int) string {
	if n == 1 {
		return "1 link"
	}
	return fmt.Sprintf("%d links", n)
}

// WelcomeText is shown in place of an empty chat thread.
func WelcomeText(email string) string {
	return fmt.Sprintf("Welcome to the chat room! Only users with the same email (%s) can see these messages.", email)
}
