package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/sksahoo1435/scintillate-project/internal/favorites"
	"github.com/sksahoo1435/scintillate-project/internal/pagination"
	"github.com/sksahoo1435/scintillate-project/internal/resolver"
	"github.com/sksahoo1435/scintillate-project/internal/selection"
	"github.com/sksahoo1435/scintillate-project/internal/swapi"
)

type Gateway interface {
	FetchPage(ctx context.Context, page int) (swapi.Page, error)
	FetchEntry(ctx context.Context, id string) (swapi.Entry, error)
	FetchDependent(ctx context.Context, url string) (swapi.Film, error)
}

// ErrNoEntryID is returned by Select when an entry's URL carries no id.
var ErrNoEntryID = errors.New("entry has no identifier")

type Service struct {
	gateway   Gateway
	pages     *pagination.Controller
	favorites *favorites.Store
	detail    *resolver.Resolver
	bridge    selection.Bridge
}

func NewService(gateway Gateway, store *favorites.Store, fanOutLimit int) *Service {
	return &Service{
		gateway:   gateway,
		pages:     pagination.NewController(gateway),
		favorites: store,
		detail:    resolver.New(gateway, resolver.WithFanOutLimit(fanOutLimit)),
	}
}

// LoadPage requests page n. Out-of-range pages return false with no error.
func (s *Service) LoadPage(ctx context.Context, n int) (bool, error) {
	accepted, err := s.pages.RequestPage(ctx, n)
	if err != nil {
		return accepted, fmt.Errorf("load page %d: %w", n, err)
	}
	return accepted, nil
}

func (s *Service) NextPage(ctx context.Context) (bool, error) {
	return s.LoadPage(ctx, s.pages.Window().Current+1)
}

func (s *Service) PrevPage(ctx context.Context) (bool, error) {
	return s.LoadPage(ctx, s.pages.Window().Current-1)
}

func (s *Service) Window() pagination.Window {
	return s.pages.Window()
}

func (s *Service) Entries() []swapi.Entry {
	return s.pages.Entries()
}

func (s *Service) Count() int {
	return s.pages.Count()
}

func (s *Service) ToggleFavorite(ctx context.Context, entry swapi.Entry) (bool, error) {
	added, err := s.favorites.Toggle(ctx, entry)
	if err != nil {
		return false, fmt.Errorf("toggle favorite %q: %w", entry.Name, err)
	}
	return added, nil
}

func (s *Service) IsFavorite(entry swapi.Entry) bool {
	return s.favorites.IsFavorite(entry)
}

func (s *Service) Favorites() []swapi.Entry {
	return s.favorites.List()
}

// Lookup fetches a single entry without touching the detail state.
func (s *Service) Lookup(ctx context.Context, id string) (swapi.Entry, error) {
	entry, err := s.gateway.FetchEntry(ctx, id)
	if err != nil {
		return swapi.Entry{}, fmt.Errorf("fetch entry %s: %w", id, err)
	}
	return entry, nil
}

// Select records the listing position an entry was activated from and
// returns the route for its detail screen.
func (s *Service) Select(index int, entry swapi.Entry) (selection.Route, error) {
	id := entry.ID()
	if id == "" {
		return selection.Route{}, fmt.Errorf("select %q: %w", entry.Name, ErrNoEntryID)
	}
	s.bridge.Set(index)
	return selection.Route{EntryID: id, Selection: index}, nil
}

// RouteTo builds a route for direct navigation to id, using the last recorded
// selection.
func (s *Service) RouteTo(id string) selection.Route {
	return selection.Route{EntryID: id, Selection: s.bridge.Get()}
}

func (s *Service) Selection() int {
	return s.bridge.Get()
}

// ResolveDetail runs the two-stage fetch for route. A failed fetch is reported
// in the snapshot, not as an error; the error is only resolver.ErrSuperseded.
func (s *Service) ResolveDetail(ctx context.Context, route selection.Route) (resolver.Snapshot, error) {
	return s.detail.Resolve(ctx, route.EntryID)
}

func (s *Service) Detail() resolver.Snapshot {
	return s.detail.Snapshot()
}

// CloseDetail abandons any in-flight resolution.
func (s *Service) CloseDetail() {
	s.detail.Reset()
}
