package model

import "strconv"

// SeatStatus is the raw status code the seat API reports for a seat.
type SeatStatus int

// Status codes observed from the upstream API.
const (
	StatusFree        SeatStatus = 1
	StatusMaintenance SeatStatus = 4
	StatusOccupied    SeatStatus = 6
	StatusAway        SeatStatus = 7
)

var statusLabels = map[SeatStatus]string{
	StatusFree:        "free",
	StatusMaintenance: "under-maintenance",
	StatusOccupied:    "occupied",
	StatusAway:        "temporarily-vacated",
}

// Label returns the semantic name for the status code. Codes outside the
// known set are not an error: they come back as their decimal form so
// unexpected upstream data stays visible instead of being masked.
func (s SeatStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return strconv.Itoa(int(s))
}
