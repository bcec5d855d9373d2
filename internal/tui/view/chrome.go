package view

import (
	"fmt"
	"strings"

	"github.com/sksahoo1435/scintillate-project/internal/pagination"
	tuitheme "github.com/sksahoo1435/scintillate-project/internal/tui/theme"
)

func Toolbar(screen string) string {
	switch screen {
	case "detail":
		return "o open | y copy URL | f favorite | esc back | q quit"
	case "favorites":
		return "j/k move | enter open | f remove | esc back | q quit"
	default:
		return "j/k move | h/l prev/next | 1-9,0 page | enter open | f favorite | F favorites | y copy URL | r reload | q quit"
	}
}

func Header(screen string, th tuitheme.Theme) string {
	return th.Title.Render("Scintillate") + " " + th.ModePill.Render(screen)
}

func ListFooter(window pagination.Window, count, favorites int, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("page") + " " + th.MetaValue.Render(fmt.Sprintf("%d/%d", window.Current, window.Total)),
		th.MetaValue.Render(fmt.Sprintf("%d entries", count)),
		th.MetaLabel.Render("favorites") + " " + th.MetaValue.Render(fmt.Sprintf("%d", favorites)),
	}
	return strings.Join(parts, " • ")
}

func Message(loading bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	stateLabel := th.StateIdle.Render("state")
	switch {
	case warning != "":
		state = "warning"
		stateLabel = th.StateWarn.Render("state")
	case loading:
		state = "loading"
		stateLabel = th.StateLoad.Render("state")
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if warning != "" {
		main = warning
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
