package model

// Seat is a single reservable seat inside a section.
type Seat struct {
	ID     int
	Name   string
	Type   int
	Status SeatStatus
	Parent int // owning Section ID
}
