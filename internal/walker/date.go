package walker

import (
	"time"

	"seat-status-probe/internal/model"
)

// dateLayout is the calendar date format the seat API expects.
const dateLayout = "2006-01-02"

// ResolveDate renders the calendar date a query for day targets, anchored to
// now's location. Tomorrow is one calendar day later, not +24h, which stays
// correct across DST transitions where the local day is not 24 hours long.
func ResolveDate(day model.Day, now time.Time) string {
	if day == model.Tomorrow {
		now = now.AddDate(0, 0, 1)
	}
	return now.Format(dateLayout)
}
