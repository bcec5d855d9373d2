// Package selection carries the listing position an entry was opened from
// into the detail screen, where it picks a cosmetic presentation variant.
package selection

import "sync"

// Route is the navigation payload for opening a detail screen. Selection is
// the listing position the entry was activated from.
type Route struct {
	EntryID   string
	Selection int
}

// Bridge holds the last written selection for callers that navigate without
// a Route. The zero value reads 0.
type Bridge struct {
	mu    sync.Mutex
	index int
}

// Set overwrites the stored index.
func (b *Bridge) Set(index int) {
	b.mu.Lock()
	b.index = index
	b.mu.Unlock()
}

// Get returns the last written index, or 0 if none was written.
func (b *Bridge) Get() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.index
}

type Variant int

const (
	Initials Variant = iota
	Primary
	Secondary
	Tertiary
)

func (v Variant) String() string {
	switch v {
	case Initials:
		return "initials"
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return "tertiary"
	}
}

// VariantFor maps a listing position to its variant. Negative positions are
// treated by magnitude.
func VariantFor(index int) Variant {
	if index < 0 {
		index = -index
	}
	switch {
	case index%2 == 0 && index%3 == 0:
		return Initials
	case index%2 == 0:
		return Primary
	case index%3 == 0:
		return Secondary
	default:
		return Tertiary
	}
}
