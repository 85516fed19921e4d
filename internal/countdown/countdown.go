// Package countdown derives day counts and display labels from the
// YYYY-MM-DD strings stored on items. Every function takes "now" explicitly
// and reads dates as local calendar days in now's location.
package countdown

import (
	"fmt"
	"itemtracker/internal/model"
	"strings"
	"time"
)

const (
	// ReviewWindowDays is how long after ordering the review portal stays open.
	ReviewWindowDays = 15

	Placeholder  = "-"
	PortalClosed = "Portal Closed"
	Over         = "Over"

	dateLayout = "2006-01-02"
)

// Display is the rendered state of one countdown cell.
type Display struct {
	Label  string `json:"label"`
	Date   string `json:"date,omitempty"`
	Days   *int   `json:"days,omitempty"`
	Urgent bool   `json:"urgent"`
}

// FormatDate turns YYYY-MM-DD into DD-MM-YYYY. Anything that is not exactly
// three non-empty numeric parts separated by dashes is returned unchanged.
func FormatDate(s string) string {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return s
	}
	for _, p := range parts {
		if !isDigits(p) {
			return s
		}
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseDate reads s as local midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == model.ReturnCloseNoReturn || s == model.ReturnCloseUndecided {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Today truncates now to local midnight.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// NextMidnight is the first local midnight strictly after now.
func NextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

// daysBetween counts calendar days from a to b. Counting on UTC dates keeps
// DST days (23h or 25h long) at exactly one day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// DaysSince returns the whole days elapsed from s to today.
func DaysSince(s string, now time.Time) (int, bool) {
	start, ok := ParseDate(s, now.Location())
	if !ok {
		return 0, false
	}
	return daysBetween(start, Today(now)), true
}

// DaysUntil returns the whole days from today to s. Sentinels, empty and
// unparsable values have no day count.
func DaysUntil(s string, now time.Time) (int, bool) {
	target, ok := ParseDate(s, now.Location())
	if !ok {
		return 0, false
	}
	return daysBetween(Today(now), target), true
}

func daysLeft(n int) string {
	if n == 1 {
		return "1 Day Left"
	}
	return fmt.Sprintf("%d Days Left", n)
}

// OrderAge renders the review window countdown for an order date.
func OrderAge(orderedOn string, now time.Time) Display {
	elapsed, ok := DaysSince(orderedOn, now)
	if !ok {
		return Display{Label: Placeholder}
	}
	remaining := ReviewWindowDays - elapsed
	switch {
	case remaining > 0:
		return Display{Label: daysLeft(remaining), Date: FormatDate(orderedOn), Days: &remaining}
	case remaining == 0:
		return Display{Label: "0 Day Left", Date: FormatDate(orderedOn), Days: &remaining, Urgent: true}
	default:
		return Display{Label: PortalClosed, Urgent: true}
	}
}

// ReturnClosing renders the countdown to the end of the return window.
func ReturnClosing(returnCloseOn string, now time.Time) Display {
	switch strings.TrimSpace(returnCloseOn) {
	case "", model.ReturnCloseUndecided:
		return Display{Label: Placeholder}
	case model.ReturnCloseNoReturn:
		return Display{Label: model.ReturnCloseNoReturn, Urgent: true}
	}
	left, ok := DaysUntil(returnCloseOn, now)
	if !ok {
		return Display{Label: returnCloseOn}
	}
	switch {
	case left > 0:
		return Display{Label: daysLeft(left), Date: FormatDate(returnCloseOn), Days: &left}
	case left == 0:
		return Display{Label: "0 Day Left", Date: FormatDate(returnCloseOn), Days: &left, Urgent: true}
	default:
		return Display{Label: Over, Date: FormatDate(returnCloseOn), Urgent: true}
	}
}
