package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sksahoo1435/scintillate-project/internal/pagination"
	"github.com/sksahoo1435/scintillate-project/internal/resolver"
	"github.com/sksahoo1435/scintillate-project/internal/selection"
	"github.com/sksahoo1435/scintillate-project/internal/swapi"
	"github.com/sksahoo1435/scintillate-project/internal/timeouts"
)

type Service interface {
	LoadPage(ctx context.Context, n int) (bool, error)
	ToggleFavorite(ctx context.Context, entry swapi.Entry) (bool, error)
	ResolveDetail(ctx context.Context, route selection.Route) (resolver.Snapshot, error)
}

type PageLoadSuccessMsg struct {
	Page     int
	Accepted bool
	Duration time.Duration
}

type PageLoadErrorMsg struct {
	Page       int
	Err        error
	Superseded bool
}

type FavoriteToggleSuccessMsg struct {
	Entry  swapi.Entry
	Added  bool
	Status string
}

type FavoriteToggleErrorMsg struct {
	Err error
}

type DetailResolvedMsg struct {
	Route    selection.Route
	Snapshot resolver.Snapshot
}

// DetailSupersededMsg reports an attempt whose result was discarded.
type DetailSupersededMsg struct {
	Route selection.Route
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

// LoadPageCmd derives its context from parent so the logger travels with it.
func LoadPageCmd(parent context.Context, service Service, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeouts.PageLoad)
		defer cancel()
		start := time.Now()

		accepted, err := service.LoadPage(ctx, page)
		if err != nil {
			return PageLoadErrorMsg{Page: page, Err: err, Superseded: errors.Is(err, pagination.ErrSuperseded)}
		}
		return PageLoadSuccessMsg{Page: page, Accepted: accepted, Duration: time.Since(start)}
	}
}

func ToggleFavoriteCmd(parent context.Context, service Service, entry swapi.Entry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeouts.Storage)
		defer cancel()

		added, err := service.ToggleFavorite(ctx, entry)
		if err != nil {
			return FavoriteToggleErrorMsg{Err: err}
		}

		status := "Removed " + entry.Name + " from favorites"
		if added {
			status = "Added " + entry.Name + " to favorites"
		}
		return FavoriteToggleSuccessMsg{Entry: entry, Added: added, Status: status}
	}
}

func ResolveDetailCmd(parent context.Context, service Service, route selection.Route) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeouts.Resolve)
		defer cancel()

		snap, err := service.ResolveDetail(ctx, route)
		if errors.Is(err, resolver.ErrSuperseded) {
			return DetailSupersededMsg{Route: route}
		}
		return DetailResolvedMsg{Route: route, Snapshot: snap}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened URL in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}
