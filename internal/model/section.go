package model

// Section is a reservable reading area on a floor. Available is derived at
// construction time as Total minus the upstream's unavailable count.
type Section struct {
	ID        int
	Name      string
	LocalName string
	Total     int
	Available int
	Parent    int // owning Floor ID
}
