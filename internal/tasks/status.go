package tasks

// Status tracks a list's relation to its persisted copy.
// Only Modified lists are written.
type Status int

const (
	// NotLoaded means hydration has not run yet.
	NotLoaded Status = iota
	// Loaded means memory matches what was read or last written.
	Loaded
	// Modified means memory changed since the last successful write.
	Modified
)

func (s Status) String() string {
	switch s {
	case NotLoaded:
		return "not-loaded"
	case Loaded:
		return "loaded"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}
