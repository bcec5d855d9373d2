package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sksahoo1435/scintillate-project/internal/swapi"
	tuitheme "github.com/sksahoo1435/scintillate-project/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type EntryLineParams struct {
	Entry    swapi.Entry
	Position int
	Active   bool
	Favorite bool
	Width    int
}

// RenderEntryLine draws one listing row: cursor, favorite marker, position,
// name and the entry id right-aligned.
func RenderEntryLine(p EntryLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	favMarker := " "
	if p.Favorite {
		favMarker = th.Favorite.Render("★")
	}

	prefix := fmt.Sprintf("  %s%s %2d. ", cursorMarker, favMarker, p.Position+1)
	idLabel := ""
	if id := p.Entry.ID(); id != "" {
		idLabel = "#" + id
	}
	available := p.Width - visibleLen(prefix) - 1 - visibleLen(idLabel)
	if available < 1 {
		available = 1
	}

	label := strings.TrimSpace(p.Entry.Name)
	if label == "" {
		label = "(unnamed)"
	}
	label = truncateRunes(label, available)
	styled := th.StyleEntryName(p.Favorite, label)
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(idLabel)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, prefix+styled+strings.Repeat(" ", gap)+th.MetaLabel.Render(idLabel))
}

// PageButtonsLine renders numbered page buttons with the current page
// highlighted, plus prev/next hints when those pages exist.
func PageButtonsLine(buttons []int, current int, hasPrev, hasNext bool, th tuitheme.Theme) string {
	parts := make([]string, 0, len(buttons)+2)
	if hasPrev {
		parts = append(parts, th.MetaLabel.Render("‹ h"))
	}
	for _, n := range buttons {
		label := fmt.Sprintf("%d", n)
		if n == current {
			parts = append(parts, th.PageCurrent.Render(label))
			continue
		}
		parts = append(parts, th.PageOther.Render(label))
	}
	if hasNext {
		parts = append(parts, th.MetaLabel.Render("l ›"))
	}
	return strings.Join(parts, " ")
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
