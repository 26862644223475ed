package tasks

import (
	"fmt"

	"taskpad/internal/service"
)

// BeginEdit opens the edit session on pending[index] seeded with currentText.
// An open session is retargeted.
func (s *Store) BeginEdit(index int, currentText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inRange(index) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	s.beginEdit(index, currentText)
	return nil
}

// BeginEditByID opens the edit session on the pending task with id.
// A nil text seeds the draft with the task's current text.
func (s *Store) BeginEditByID(id string, text *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	draft := s.pending.tasks[idx].Text
	if text != nil {
		draft = *text
	}
	s.beginEdit(idx, draft)
	return nil
}

func (s *Store) beginEdit(index int, draft string) {
	s.session.Open = true
	s.session.Index = index
	s.session.Draft = draft
	s.sessionID = s.pending.tasks[index].ID
}

// UpdateDraft replaces the draft text of the open session.
func (s *Store) UpdateDraft(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Open {
		return ErrNoSession
	}
	s.session.Draft = text
	return nil
}

// CommitEdit writes the draft into pending[index], keeping the task id, and
// closes the session. Empty and unchanged drafts are written as is.
func (s *Store) CommitEdit(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Open {
		return ErrNoSession
	}
	return s.commitEdit(index)
}

// CommitSession writes the draft into the task the session is bound to.
func (s *Store) CommitSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Open {
		return ErrNoSession
	}
	return s.commitEdit(s.session.Index)
}

func (s *Store) commitEdit(index int) error {
	if !s.inRange(index) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	s.pending.tasks[index].Text = s.session.Draft
	s.pending.status = Modified
	s.session = service.Session{}
	s.sessionID = ""
	s.sync()
	return nil
}
