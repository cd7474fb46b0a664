package model

// Library is a top-level library building, the root of the area hierarchy.
type Library struct {
	ID              int
	Name            string
	NameMerged      string
	LocalName       string
	LocalNameMerged string
}
