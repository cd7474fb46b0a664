package model

// Floor is one level of a library building.
type Floor struct {
	ID        int
	Name      string
	LocalName string
	Parent    int // owning Library ID
}
