// Package duedate classifies card due dates into urgency categories.
package duedate

import (
	"fmt"
	"strings"
	"time"
)

// Category is the urgency bucket for a due date.
type Category int

const (
	Unset Category = iota
	Completed
	Overdue
	DueSoon
	Future
)

// SoonWithinDays is the inclusive window, in days from today, that counts
// as due soon.
const SoonWithinDays = 2

var categoryNames = map[Category]string{
	Completed: "COMPLETED",
	Unset:     "UNSET",
	Overdue:   "OVERDUE",
	DueSoon:   "DUE_SOON",
	Future:    "FUTURE",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ParseCategory is the inverse of Category.String. Matching ignores case.
func ParseCategory(s string) (Category, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return Unset, fmt.Errorf("unknown due category %q", s)
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var layouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04",
}

// Parse reads a due date in any accepted layout.
func Parse(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, dateStr, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing due date %q", dateStr)
}

// DaysUntil returns the number of calendar days from now to the due date.
// Negative values are in the past. ok is false when the date is empty or
// cannot be parsed.
func DaysUntil(dateStr string, now time.Time) (days int, ok bool) {
	if strings.TrimSpace(dateStr) == "" {
		return 0, false
	}
	due, err := Parse(dateStr)
	if err != nil {
		return 0, false
	}
	return calendarDays(now, due), true
}

// Classify buckets a due date relative to now. Done cards are always
// Completed, whatever their date.
func Classify(dateStr string, isDone bool, now time.Time) Category {
	if isDone {
		return Completed
	}
	days, ok := DaysUntil(dateStr, now)
	if !ok {
		return Unset
	}
	switch {
	case days < 0:
		return Overdue
	case days <= SoonWithinDays:
		return DueSoon
	default:
		return Future
	}
}

// calendarDays counts midnights between the local dates of from and to.
// Both sides are rebuilt as UTC dates so DST transitions cannot skew the
// difference by an hour.
func calendarDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.In(from.Location()).Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
