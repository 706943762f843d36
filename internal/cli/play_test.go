package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/dockyard/pkg/config"
	"github.com/matzehuels/dockyard/pkg/dock"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func newTestPlay(t *testing.T) *playModel {
	t.Helper()
	m := newPlayModel(context.Background(), config.Default(), playOpts{gutter: playGutter, minSize: playMinSize})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 26})
	return m
}

func (m *playModel) send(msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func leafOf(t *testing.T, m *playModel, panel string) dock.Frame {
	t.Helper()
	n, ok := m.ws.Tree().FindContent(panel)
	if !ok {
		t.Fatalf("panel %s not docked", panel)
	}
	f, err := m.ws.Tree().Frame(n.Key, m.ws.Viewport())
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestPlayDockResizeMove(t *testing.T) {
	m := newTestPlay(t)
	if vp := m.ws.Viewport(); vp.Width() != 80 || vp.Height() != 24 {
		t.Fatalf("viewport = %+v", vp)
	}

	// Pick the first tray panel and drop it anywhere.
	m.send(key("1"), mouse(40, 12, tea.MouseActionPress, tea.MouseButtonLeft))
	if n := len(m.ws.Tree().Leaves()); n != 1 {
		t.Fatalf("leaves after first drop = %d (status %q)", n, m.status)
	}

	// The tray shifted: "1" is now Files. Drop it on the left edge.
	m.send(key("1"),
		mouse(1, 12, tea.MouseActionMotion, tea.MouseButtonNone),
		mouse(1, 12, tea.MouseActionPress, tea.MouseButtonLeft))
	files := leafOf(t, m, "files")
	if files.Outer.Right != 40 || files.Inner.Right != 39 {
		t.Fatalf("files frame = %+v (status %q)", files, m.status)
	}

	// Drag the gutter five cells right.
	m.send(mouse(39, 12, tea.MouseActionPress, tea.MouseButtonLeft))
	if _, ok := m.ws.Resizing(); !ok {
		t.Fatal("press on gutter did not start a resize")
	}
	m.send(mouse(44, 12, tea.MouseActionMotion, tea.MouseButtonLeft),
		mouse(44, 12, tea.MouseActionRelease, tea.MouseButtonLeft))
	if got := leafOf(t, m, "files").Outer.Right; got != 45 {
		t.Errorf("files right edge after resize = %v, want 45", got)
	}
	if _, ok := m.ws.Resizing(); ok {
		t.Error("release did not end the resize")
	}

	// Drag the editor by its title onto the bottom edge of files.
	m.send(mouse(60, 1, tea.MouseActionPress, tea.MouseButtonLeft))
	if m.moving == "" {
		t.Fatal("press on title did not start a move")
	}
	m.send(mouse(10, 24, tea.MouseActionMotion, tea.MouseButtonLeft),
		mouse(10, 24, tea.MouseActionRelease, tea.MouseButtonLeft))
	editor := leafOf(t, m, "editor")
	if editor.Outer.Top != 12 || editor.Outer.Right != 80 {
		t.Errorf("editor frame after move = %+v (status %q)", editor, m.status)
	}

	// Right-click closes.
	m.send(mouse(10, 3, tea.MouseActionPress, tea.MouseButtonRight))
	if _, ok := m.ws.Tree().FindContent("files"); ok {
		t.Error("right-click did not close files")
	}
}

func TestPlayLocked(t *testing.T) {
	m := newTestPlay(t)
	m.send(key("l"), key("1"), mouse(40, 12, tea.MouseActionPress, tea.MouseButtonLeft))
	if !m.ws.Tree().Empty() {
		t.Fatal("locked editor accepted a drop")
	}
	if !strings.Contains(m.status, "locked") {
		t.Errorf("status = %q", m.status)
	}
}

func TestPlayEscapeCancels(t *testing.T) {
	m := newTestPlay(t)
	m.send(key("2"), mouse(40, 12, tea.MouseActionMotion, tea.MouseButtonNone))
	if _, ok := m.ws.Pending(); !ok {
		t.Fatal("no pending placement while holding a panel")
	}
	m.send(tea.KeyMsg{Type: tea.KeyEsc})
	if m.holding != "" {
		t.Error("escape kept the held panel")
	}
	if _, ok := m.ws.Pending(); ok {
		t.Error("escape kept the pending placement")
	}
}

func TestPlayView(t *testing.T) {
	m := newTestPlay(t)
	m.send(key("1"), mouse(40, 12, tea.MouseActionPress, tea.MouseButtonLeft))

	view := m.View()
	if lines := strings.Count(view, "\n") + 1; lines != 26 {
		t.Errorf("view has %d lines, want 26", lines)
	}
	for _, want := range []string{"dockyard", "Editor", "[1] Files"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q did not quit")
	}
}
