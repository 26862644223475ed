// Package tasks implements the task store: a pending list, a done list and
// one inline edit session, mirrored to a key/value store.
package tasks

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"taskpad/internal/service"
	"taskpad/internal/storage"
)

// Storage keys for the two lists.
const (
	PendingKey = "todoTaskList"
	DoneKey    = "doneTaskList"
)

var (
	// ErrOutOfRange is returned when an index does not address a pending task.
	ErrOutOfRange = errors.New("task index out of range")

	// ErrEditing is returned when removing or completing the task under edit.
	ErrEditing = errors.New("task is being edited")

	// ErrNoSession is returned by UpdateDraft and CommitEdit when no edit is open.
	ErrNoSession = errors.New("no edit in progress")

	// ErrNotFound is returned by the id-addressed operations for unknown ids.
	ErrNotFound = errors.New("task not found")
)

var _ service.Service = (*Store)(nil)

type list struct {
	key    string
	tasks  []service.Task
	status Status
}

// Store holds the pending and done lists and keeps the key/value mirror in sync.
// All methods are safe for concurrent use; each runs to completion under one lock.
type Store struct {
	mu      sync.Mutex
	kv      storage.KV
	pending list
	done    list

	session   service.Session
	sessionID string // id of the task under edit
	input     string

	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUIDv7 generator used for new task ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New creates a store over kv and hydrates both lists from it.
// Missing or malformed snapshots leave the corresponding list empty.
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		pending: list{key: PendingKey},
		done:    list{key: DoneKey},
		newID:   func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hydrate(&s.pending)
	s.hydrate(&s.done)
	log.Printf("[DEBUG] store ready, %d pending, %d done", len(s.pending.tasks), len(s.done.tasks))
	return s
}

func (s *Store) hydrate(l *list) {
	defer func() { l.status = Loaded }()

	raw, ok, err := s.kv.Get(l.key)
	if err != nil {
		log.Printf("[WARN] can't read %s, starting empty: %v", l.key, err)
		return
	}
	if !ok {
		return
	}
	tasks, err := Decode(raw)
	if err != nil {
		log.Printf("[WARN] malformed %s, starting empty: %v", l.key, err)
		return
	}
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = s.newID()
		}
	}
	l.tasks = tasks
}

// sync writes every Modified list. A failed write is logged and the list
// stays Modified so the next change retries it.
func (s *Store) sync() {
	for _, l := range []*list{&s.pending, &s.done} {
		if l.status != Modified {
			continue
		}
		raw, err := Encode(l.tasks)
		if err != nil {
			log.Printf("[WARN] can't encode %s: %v", l.key, err)
			continue
		}
		if err := s.kv.Set(l.key, raw); err != nil {
			log.Printf("[WARN] can't persist %s: %v", l.key, err)
			continue
		}
		l.status = Loaded
	}
}

// Status reports the persistence status of the list stored under key.
func (s *Store) Status(key string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch key {
	case PendingKey:
		return s.pending.status
	case DoneKey:
		return s.done.status
	default:
		return NotLoaded
	}
}

// Add appends a task with text as given and clears the input draft.
// Blank text is ignored.
func (s *Store) Add(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(text)
}

func (s *Store) add(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	s.pending.tasks = append(s.pending.tasks, service.Task{ID: s.newID(), Text: text})
	s.pending.status = Modified
	s.input = ""
	log.Printf("[DEBUG] added task %q", text)
	s.sync()
	return nil
}

// SetInput replaces the add-form draft.
func (s *Store) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// Submit adds the current input draft.
func (s *Store) Submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(s.input)
}

// Remove deletes the pending task at index.
func (s *Store) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(index)
}

func (s *Store) remove(index int) error {
	if err := s.checkDestructive(index); err != nil {
		return err
	}
	log.Printf("[DEBUG] removed task %q", s.pending.tasks[index].Text)
	s.removeAt(index)
	s.sync()
	return nil
}

// Complete moves the pending task at index to the end of the done list.
func (s *Store) Complete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete(index)
}

func (s *Store) complete(index int) error {
	if err := s.checkDestructive(index); err != nil {
		return err
	}
	task := s.pending.tasks[index]
	s.done.tasks = append(s.done.tasks, task)
	s.done.status = Modified
	s.removeAt(index)
	log.Printf("[DEBUG] completed task %q", task.Text)
	s.sync()
	return nil
}

// RemoveByID deletes the pending task with the given id.
func (s *Store) RemoveByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.remove(idx)
}

// CompleteByID completes the pending task with the given id.
func (s *Store) CompleteByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.complete(idx)
}

// ClearDone empties the done list. The empty list is always persisted.
func (s *Store) ClearDone() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done.tasks = nil
	s.done.status = Modified
	log.Printf("[DEBUG] cleared done list")
	s.sync()
	return nil
}

// IndexOf returns the pending position of the task with id, or -1.
func (s *Store) IndexOf(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id)
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range s.pending.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// State returns a copy of the current state.
func (s *Store) State() service.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return service.State{
		Pending: append([]service.Task{}, s.pending.tasks...),
		Done:    append([]service.Task{}, s.done.tasks...),
		Session: s.session,
		Input:   s.input,
	}
}

// Close releases the underlying key/value store.
func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) inRange(index int) bool {
	return index >= 0 && index < len(s.pending.tasks)
}

func (s *Store) checkDestructive(index int) error {
	if !s.inRange(index) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	if s.session.Open && s.session.Index == index {
		return fmt.Errorf("%w: %d", ErrEditing, index)
	}
	return nil
}

// removeAt drops pending[index] and re-points an open session at its task.
func (s *Store) removeAt(index int) {
	s.pending.tasks = append(s.pending.tasks[:index:index], s.pending.tasks[index+1:]...)
	s.pending.status = Modified
	if s.session.Open {
		if idx := s.indexOf(s.sessionID); idx >= 0 {
			s.session.Index = idx
		}
	}
}
