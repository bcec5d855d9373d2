package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sksahoo1435/scintillate-project/internal/selection"
)

type Theme struct {
	Title       lipgloss.Style
	ModePill    lipgloss.Style
	Section     lipgloss.Style
	ActiveLine  lipgloss.Style
	MetaLabel   lipgloss.Style
	MetaValue   lipgloss.Style
	StateIdle   lipgloss.Style
	StateWarn   lipgloss.Style
	StateLoad   lipgloss.Style
	Favorite    lipgloss.Style
	EntryName   lipgloss.Style
	PageCurrent lipgloss.Style
	PageOther   lipgloss.Style
	Initials    lipgloss.Style

	variants map[selection.Variant]lipgloss.Style
}

func Default() Theme {
	cpRosewater := lipgloss.Color("#f5e0dc")
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpBlue := lipgloss.Color("#89b4fa")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	card := lipgloss.NewStyle().Padding(0, 1)

	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:    lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		ActiveLine:  lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:   lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:   lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:   lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:   lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:   lipgloss.NewStyle().Foreground(cpPeach),
		Favorite:    lipgloss.NewStyle().Foreground(cpPeach).Bold(true),
		EntryName:   lipgloss.NewStyle().Bold(true).Foreground(cpText),
		PageCurrent: lipgloss.NewStyle().Foreground(cpSurface0).Background(cpPeach).Bold(true).Padding(0, 1),
		PageOther:   lipgloss.NewStyle().Foreground(cpSubtext1).Padding(0, 1),
		Initials:    lipgloss.NewStyle().Bold(true).Foreground(cpSurface0).Background(cpYellow).Padding(0, 1),
		variants: map[selection.Variant]lipgloss.Style{
			selection.Initials:  card.Border(lipgloss.DoubleBorder()).BorderForeground(cpYellow),
			selection.Primary:   card.Border(lipgloss.RoundedBorder()).BorderForeground(cpBlue),
			selection.Secondary: card.Border(lipgloss.ThickBorder()).BorderForeground(cpRosewater),
			selection.Tertiary:  card.Border(lipgloss.NormalBorder()).BorderForeground(cpGreen),
		},
	}
}

// Card returns the detail frame for a presentation variant.
func (t Theme) Card(v selection.Variant) lipgloss.Style {
	if style, ok := t.variants[v]; ok {
		return style
	}
	return lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
}

func (t Theme) StyleEntryName(favorite bool, name string) string {
	if name == "" {
		return name
	}
	if favorite {
		return t.Favorite.Render(name)
	}
	return t.EntryName.Render(name)
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
