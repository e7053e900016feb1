package domain

import "strings"

// Weekday is the closed vocabulary of day names accepted from the
// questionnaire layer. Indices are Monday-based (Monday = 0).
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// weekdayIndex is a constant lookup, not configuration.
var weekdayIndex = map[Weekday]int{
	Monday:    0,
	Tuesday:   1,
	Wednesday: 2,
	Thursday:  3,
	Friday:    4,
	Saturday:  5,
	Sunday:    6,
}

// Index returns the Monday-based index of the weekday, or -1 when the
// value is outside the vocabulary.
func (w Weekday) Index() int {
	if idx, ok := weekdayIndex[w]; ok {
		return idx
	}
	return -1
}

// IsValid reports whether the weekday is one of the seven known names.
func (w Weekday) IsValid() bool {
	return w.Index() >= 0
}

// ParseWeekday normalizes a raw day name into a Weekday. The second
// return value is false for anything outside the vocabulary.
func ParseWeekday(s string) (Weekday, bool) {
	w := Weekday(strings.ToLower(strings.TrimSpace(s)))
	return w, w.IsValid()
}
