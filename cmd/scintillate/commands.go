package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sksahoo1435/scintillate-project/internal/pagination"
	"github.com/sksahoo1435/scintillate-project/internal/resolver"
	"github.com/sksahoo1435/scintillate-project/internal/swapi"
	"github.com/sksahoo1435/scintillate-project/internal/timeouts"
)

func newPageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "page [n]",
		Short: "Print one page of the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 1
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil || parsed < 1 {
					return fmt.Errorf("invalid page %q", args[0])
				}
				n = parsed
			}

			rt, err := setup(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, cancel := context.WithTimeout(rt.ctx, timeouts.PageLoad)
			defer cancel()

			// The window is unknown until the first page arrives.
			if _, err := rt.service.LoadPage(ctx, 1); err != nil {
				return err
			}
			if n != 1 {
				accepted, err := rt.service.LoadPage(ctx, n)
				if err != nil {
					return err
				}
				if !accepted {
					return fmt.Errorf("page %d is out of range (1-%d)", n, rt.service.Window().Total)
				}
			}

			writePage(cmd.OutOrStdout(), rt.service.Window(), rt.service.Count(), rt.service.Entries(), rt.service.IsFavorite)
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Resolve an entry and its films",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, cancel := context.WithTimeout(rt.ctx, timeouts.Resolve)
			defer cancel()

			snap, err := rt.service.ResolveDetail(ctx, rt.service.RouteTo(args[0]))
			if err != nil {
				return err
			}
			writeDetail(cmd.OutOrStdout(), snap)
			if snap.Status == resolver.Failed {
				return fmt.Errorf("resolve entry %s: %w", args[0], snap.Err)
			}
			return nil
		},
	}
}

func newFavoritesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List favorite entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer rt.Close()

			writeFavorites(cmd.OutOrStdout(), rt.service.Favorites())
			return nil
		},
	}
}

func newFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle an entry in the favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, cancel := context.WithTimeout(rt.ctx, timeouts.PageLoad)
			defer cancel()

			entry, err := rt.service.Lookup(ctx, args[0])
			if err != nil {
				return err
			}
			added, err := rt.service.ToggleFavorite(ctx, entry)
			if err != nil {
				return err
			}
			verb := "Removed"
			if added {
				verb = "Added"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (#%s). %d favorites.\n", verb, entry.Name, args[0], len(rt.service.Favorites()))
			return nil
		},
	}
}

func writePage(w io.Writer, window pagination.Window, count int, entries []swapi.Entry, isFavorite func(swapi.Entry) bool) {
	t := table.New().Headers("#", "ID", "Name", "Birth Year", "Fav")
	for i, e := range entries {
		fav := ""
		if isFavorite != nil && isFavorite(e) {
			fav = "★"
		}
		t.Row(strconv.Itoa((window.Current-1)*pagination.PageSize+i+1), e.ID(), e.Name, e.BirthYear, fav)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "page %d/%d, %d entries\n", window.Current, window.Total, count)
}

func writeDetail(w io.Writer, snap resolver.Snapshot) {
	if snap.Entry == nil {
		fmt.Fprintf(w, "%s: %s\n", snap.Status, snap.Message())
		return
	}
	e := snap.Entry
	fmt.Fprintln(w, e.Name)
	fmt.Fprintln(w, strings.Repeat("=", len([]rune(e.Name))))
	attrs := table.New().Headers("Attribute", "Value").
		Row("Height", e.Height).
		Row("Mass", e.Mass).
		Row("Gender", e.Gender).
		Row("Hair Color", e.HairColor).
		Row("Skin Color", e.SkinColor).
		Row("Eye Color", e.EyeColor).
		Row("Birth Year", e.BirthYear)
	fmt.Fprintln(w, attrs.Render())

	if snap.Status == resolver.Failed {
		fmt.Fprintf(w, "films unavailable: %s\n", snap.Message())
		return
	}
	films := table.New().Headers("#", "Title", "Director", "Released")
	for i, f := range snap.Films {
		films.Row(strconv.Itoa(i+1), f.Title, f.Director, f.ReleaseDate)
	}
	fmt.Fprintln(w, films.Render())
}

func writeFavorites(w io.Writer, entries []swapi.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No favorites yet.")
		return
	}
	t := table.New().Headers("#", "ID", "Name")
	for i, e := range entries {
		t.Row(strconv.Itoa(i+1), e.ID(), e.Name)
	}
	fmt.Fprintln(w, t.Render())
}
