// Package file implements the event repository as a single human-inspectable
// JSON file.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dinnerplanner/internal/domain"
)

const schemaVersion = 1

// storeEnvelope is the on-disk layout. The schema_version field exists so a
// future layout change can be detected instead of misread.
type storeEnvelope struct {
	SchemaVersion int                            `json:"schema_version"`
	Events        map[string]*domain.DinnerEvent `json:"events"`
}

// EventStore is a file-persisted event repository. All events are held in
// memory; every mutation is written back via write-temp-then-rename so a
// reader never observes a partially written store. The store owns its
// events exclusively: Save stores a deep copy and reads return deep
// copies, so callers can never mutate store memory (or each other's view
// of it) behind the mutex. Safe for concurrent use.
type EventStore struct {
	mu      sync.Mutex
	path    string
	events  map[string]*domain.DinnerEvent
	counter int
}

// NewEventStore loads the store at path, creating an empty one if the file
// does not exist yet.
func NewEventStore(path string) (*EventStore, error) {
	s := &EventStore{
		path:   path,
		events: make(map[string]*domain.DinnerEvent),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	s.counter = len(s.events)
	return s, nil
}

func (s *EventStore) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read store file: %w", err)
	}
	var env storeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode store file: %w", err)
	}
	if env.SchemaVersion != schemaVersion {
		return fmt.Errorf("unsupported store schema version %d", env.SchemaVersion)
	}
	if env.Events != nil {
		s.events = env.Events
	}
	return nil
}

// Save upserts a copy of the event under id and persists the whole store.
// The in-memory mutation is applied even when the write fails; callers
// decide whether a persistence error is fatal.
func (s *EventStore) Save(ctx context.Context, id string, event *domain.DinnerEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[id] = event.Clone()
	return s.persistLocked()
}

// GetByID returns a private copy of the event.
func (s *EventStore) GetByID(ctx context.Context, id string) (*domain.DinnerEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return event.Clone(), nil
}

// List returns private copies of all events keyed by id.
func (s *EventStore) List(ctx context.Context) (map[string]*domain.DinnerEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]*domain.DinnerEvent, len(s.events))
	for id, event := range s.events {
		out[id] = event.Clone()
	}
	return out, nil
}

// NextEventID returns "dinner_<n>_<unix>" where n is a counter restored from
// the loaded store and incremented on every call, so ids never repeat within
// the store's lifetime.
func (s *EventStore) NextEventID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	return fmt.Sprintf("dinner_%d_%d", s.counter, time.Now().Unix())
}

// persistLocked writes the store to a temp file in the same directory and
// renames it over the target. Caller holds s.mu.
func (s *EventStore) persistLocked() error {
	data, err := json.MarshalIndent(storeEnvelope{
		SchemaVersion: schemaVersion,
		Events:        s.events,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
