// Package testutil provides testing utilities.
package testutil

import (
	"strconv"
	"sync"

	"taskpad/internal/storage"
)

// Write records one Set call observed by FakeKV.
type Write struct {
	Key   string
	Value string
}

// FakeKV is an in-memory storage.KV that records writes and injects errors.
type FakeKV struct {
	mu     sync.Mutex
	data   map[string]string
	writes []Write
	closed bool

	// Error injection for testing
	GetErr map[string]error // key -> error
	SetErr map[string]error // key -> error
}

var _ storage.KV = (*FakeKV)(nil)

// NewFakeKV creates an empty FakeKV.
func NewFakeKV() *FakeKV {
	return &FakeKV{
		data:   make(map[string]string),
		GetErr: make(map[string]error),
		SetErr: make(map[string]error),
	}
}

// Seed stores a value without recording a write.
func (f *FakeKV) Seed(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

// Value returns the stored value for key.
func (f *FakeKV) Value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

// Writes returns the recorded Set calls for key, in order.
// An empty key returns all writes.
func (f *FakeKV) Writes(key string) []Write {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []Write
	for _, w := range f.writes {
		if key == "" || w.Key == key {
			res = append(res, w)
		}
	}
	return res
}

// Closed reports whether Close was called.
func (f *FakeKV) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Get implements storage.KV.
func (f *FakeKV) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.GetErr[key]; err != nil {
		return "", false, err
	}
	v, ok := f.data[key]
	return v, ok, nil
}

// Set implements storage.KV.
func (f *FakeKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.SetErr[key]; err != nil {
		return err
	}
	f.data[key] = value
	f.writes = append(f.writes, Write{Key: key, Value: value})
	return nil
}

// Close implements storage.KV.
func (f *FakeKV) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// SeqIDs returns an id generator yielding "t1", "t2", ...
func SeqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return "t" + strconv.Itoa(n)
	}
}

