// Package service defines the contract between view layers and the task store.
package service

// Task represents a single task item.
type Task struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
}

// Session is the inline edit in progress, if any.
type Session struct {
	Open  bool   `json:"open"`
	Index int    `json:"index"`
	Draft string `json:"draft"`
}

// State is a point-in-time copy of everything a view needs to redraw.
type State struct {
	Pending []Task  `json:"pending"`
	Done    []Task  `json:"done"`
	Session Session `json:"session"`
	Input   string  `json:"input"`
}

// Editing reports whether row index of the pending list is under edit.
func (s State) Editing(index int) bool {
	return s.Session.Open && s.Session.Index == index
}

// RemoteTask is an open task fetched from an external source for import.
type RemoteTask struct {
	ID    string
	Title string
}
