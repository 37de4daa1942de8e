package planner

import (
	"strings"
	"time"

	"github.com/ukprmenbersaku-abc/help-study/internal/suggest"
)

const DateLayout = suggest.DateLayout

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalid("date", "%q is not YYYY-MM-DD", s)
	}
	return t, nil
}

// WeekRange returns the Monday and Sunday of the week containing day.
func WeekRange(day time.Time) (from, to string) {
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday.Format(DateLayout), monday.AddDate(0, 0, 6).Format(DateLayout)
}

func validStartTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}
