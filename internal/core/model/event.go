package model

// FileEvent represents a change to a watched case file
type FileEvent struct {
	Path      string
	Operation string
}
