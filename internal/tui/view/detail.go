package view

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sksahoo1435/scintillate-project/internal/resolver"
	"github.com/sksahoo1435/scintillate-project/internal/selection"
	"github.com/sksahoo1435/scintillate-project/internal/swapi"
	tuitheme "github.com/sksahoo1435/scintillate-project/internal/tui/theme"
)

var labelCaser = cases.Title(language.English)

type DetailParams struct {
	Snapshot resolver.Snapshot
	Variant  selection.Variant
	Favorite bool
	Width    int
	Spinner  string
}

// RenderDetail draws the detail card for the current resolver snapshot.
func RenderDetail(p DetailParams, th tuitheme.Theme) string {
	width := max(20, p.Width-4)
	lines := make([]string, 0, 24)
	snap := p.Snapshot

	switch snap.Status {
	case resolver.Idle:
		lines = append(lines, th.MetaLabel.Render("No entry selected"))
	case resolver.Failed:
		if snap.Entry != nil {
			lines = append(lines, headerLine(*snap.Entry, p, th), "")
		}
		lines = append(lines, th.StateWarn.Render("Error: ")+truncateRunes(snap.Message(), width-7))
	default:
		if snap.Entry == nil {
			lines = append(lines, p.Spinner+" Loading entry "+snap.ID+"...")
			break
		}
		lines = append(lines, headerLine(*snap.Entry, p, th), "")
		lines = append(lines, AttributeLines(*snap.Entry, th)...)
		lines = append(lines, "", th.Section.Render("Films"))
		if snap.Status == resolver.Loading {
			lines = append(lines, p.Spinner+" Loading films...")
			break
		}
		lines = append(lines, FilmLines(snap.Films, width)...)
	}

	return th.Card(p.Variant).Width(width).Render(strings.Join(lines, "\n"))
}

func headerLine(entry swapi.Entry, p DetailParams, th tuitheme.Theme) string {
	name := th.StyleEntryName(p.Favorite, entry.Name)
	if p.Favorite {
		name += " " + th.Favorite.Render("★")
	}
	if p.Variant == selection.Initials {
		return th.Initials.Render(Initials(entry.Name)) + " " + name
	}
	return name
}

// AttributeLines lists the entry's physical attributes with title-cased labels.
func AttributeLines(entry swapi.Entry, th tuitheme.Theme) []string {
	attrs := []struct {
		label string
		value string
	}{
		{"height", withUnit(entry.Height, "cm")},
		{"mass", withUnit(entry.Mass, "kg")},
		{"gender", entry.Gender},
		{"hair color", entry.HairColor},
		{"skin color", entry.SkinColor},
		{"eye color", entry.EyeColor},
		{"birth year", entry.BirthYear},
	}
	lines := make([]string, 0, len(attrs))
	for _, a := range attrs {
		value := strings.TrimSpace(a.value)
		if value == "" {
			value = "unknown"
		}
		lines = append(lines, th.MetaLabel.Render(labelCaser.String(a.label)+":")+" "+th.MetaValue.Render(value))
	}
	return lines
}

// FilmLines lists films in the order they were given.
func FilmLines(films []swapi.Film, width int) []string {
	if len(films) == 0 {
		return []string{"(none)"}
	}
	lines := make([]string, 0, len(films))
	for i, f := range films {
		line := fmt.Sprintf("%d. %s", i+1, f.Title)
		if f.ReleaseDate != "" {
			line += " (" + f.ReleaseDate + ")"
		}
		if f.Director != "" {
			line += " dir. " + f.Director
		}
		lines = append(lines, truncateRunes(line, width))
	}
	return lines
}

// Initials returns up to two upper-case initials from name.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if n++; n == 2 {
			break
		}
	}
	if n == 0 {
		return "?"
	}
	return b.String()
}

func withUnit(value, unit string) string {
	value = strings.TrimSpace(value)
	if value == "" || value == "unknown" || value == "n/a" {
		return value
	}
	return value + " " + unit
}
