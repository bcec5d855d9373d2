// Package favorites keeps the user's ordered set of favorite entries and
// persists it to a single durable slot after every mutation.
//
// Membership is keyed by display name. Two distinct catalog entries sharing a
// name collide; that behavior is kept on purpose so persisted sets written by
// earlier versions keep their meaning.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sksahoo1435/scintillate-project/internal/logging"
	"github.com/sksahoo1435/scintillate-project/internal/swapi"
)

// SlotKey names the persisted favorites slot.
const SlotKey = "favorites"

// Slot is a single named value in durable storage.
type Slot interface {
	Load(ctx context.Context) ([]byte, bool, error)
	Save(ctx context.Context, value []byte) error
}

type Store struct {
	slot Slot

	mu      sync.Mutex
	entries []swapi.Entry
}

// Load rehydrates the set from slot. A missing, unreadable or malformed slot
// yields an empty set; Load never fails.
func Load(ctx context.Context, slot Slot) *Store {
	s := &Store{slot: slot, entries: []swapi.Entry{}}
	logger := logging.FromContext(ctx)

	raw, ok, err := slot.Load(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("could not read favorites, starting empty")
		return s
	}
	if !ok || len(raw) == 0 {
		return s
	}

	var entries []swapi.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger.Warn().Err(err).Msg("persisted favorites are corrupt, starting empty")
		return s
	}
	if entries != nil {
		s.entries = entries
	}
	logger.Debug().Int("count", len(s.entries)).Msg("loaded favorites")
	return s
}

// IsFavorite reports membership by name.
func (s *Store) IsFavorite(entry swapi.Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexByName(s.entries, entry.Name) >= 0
}

// Toggle removes entry if present, otherwise appends it, then persists the
// full set. When the write fails the in-memory change is undone and the error
// is returned, so memory and storage never disagree.
func (s *Store) Toggle(ctx context.Context, entry swapi.Entry) (added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.entries
	next := make([]swapi.Entry, 0, len(previous)+1)
	if i := indexByName(previous, entry.Name); i >= 0 {
		next = append(next, previous[:i]...)
		next = append(next, previous[i+1:]...)
	} else {
		next = append(next, previous...)
		next = append(next, entry)
		added = true
	}

	raw, err := Encode(next)
	if err != nil {
		return false, err
	}
	if err := s.slot.Save(ctx, raw); err != nil {
		return false, fmt.Errorf("persist favorites: %w", err)
	}
	s.entries = next

	logging.FromContext(ctx).Debug().
		Str("name", entry.Name).
		Bool("added", added).
		Int("count", len(next)).
		Msg("toggled favorite")
	return added, nil
}

// List returns the favorites in toggle order.
func (s *Store) List() []swapi.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]swapi.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Encode is the persisted representation: a JSON array of entries. An empty
// set encodes as "[]".
func Encode(entries []swapi.Entry) ([]byte, error) {
	if entries == nil {
		entries = []swapi.Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode favorites: %w", err)
	}
	return raw, nil
}

func indexByName(entries []swapi.Entry, name string) int {
	for i, entry := range entries {
		if entry.Name == name {
			return i
		}
	}
	return -1
}
