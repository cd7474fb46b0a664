package model

import (
	"fmt"
	"strings"
)

// Day selects which calendar day a query targets.
type Day int

const (
	Today Day = iota
	Tomorrow
)

func (d Day) String() string {
	if d == Tomorrow {
		return "tomorrow"
	}
	return "today"
}

// ParseDay maps a config value onto a Day tag.
func ParseDay(s string) (Day, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return Today, nil
	case "tomorrow":
		return Tomorrow, nil
	}
	return Today, fmt.Errorf("unknown day %q (want today or tomorrow)", s)
}

// DaySegment is the reservable time window a section offers on one calendar
// date. OpenTime and CloseTime are wall-clock strings in HH:MM form.
type DaySegment struct {
	ID        int
	Date      string // YYYY-MM-DD
	OpenTime  string
	CloseTime string
	Day       Day
}
