package view

import (
	"regexp"
	"strings"
	"testing"

	"github.com/sksahoo1435/scintillate-project/internal/pagination"
	tuitheme "github.com/sksahoo1435/scintillate-project/internal/tui/theme"
)

var ansiStrip = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiStrip.ReplaceAllString(s, "")
}

func TestToolbar(t *testing.T) {
	if got := Toolbar("list"); !strings.Contains(got, "h/l prev/next") {
		t.Fatalf("unexpected list toolbar: %q", got)
	}
	if got := Toolbar("detail"); !strings.Contains(got, "esc back") {
		t.Fatalf("unexpected detail toolbar: %q", got)
	}
	if got := Toolbar("favorites"); !strings.Contains(got, "f remove") {
		t.Fatalf("unexpected favorites toolbar: %q", got)
	}
}

func TestListFooter(t *testing.T) {
	th := tuitheme.Default()
	got := stripANSI(ListFooter(pagination.Window{Current: 2, Total: 9}, 82, 3, th))
	for _, want := range []string{"page 2/9", "82 entries", "favorites 3"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in footer, got %q", want, got)
		}
	}
}

func TestMessage(t *testing.T) {
	th := tuitheme.Default()
	if got := stripANSI(Message(false, "", "", th)); !strings.Contains(got, "state: idle | Ready") {
		t.Fatalf("unexpected idle message: %q", got)
	}
	if got := stripANSI(Message(true, "", "", th)); !strings.Contains(got, "state: loading") {
		t.Fatalf("unexpected loading message: %q", got)
	}
	if got := stripANSI(Message(true, "", "boom", th)); !strings.Contains(got, "state: warning | boom") {
		t.Fatalf("unexpected warning message: %q", got)
	}
}

func TestHeader(t *testing.T) {
	got := stripANSI(Header("list", tuitheme.Default()))
	if !strings.Contains(got, "Scintillate") || !strings.Contains(got, "list") {
		t.Fatalf("unexpected header: %q", got)
	}
}
