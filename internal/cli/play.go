package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dockyard/pkg/config"
	"github.com/matzehuels/dockyard/pkg/dock"
	errs "github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
	"github.com/matzehuels/dockyard/pkg/render/canvas"
	"github.com/matzehuels/dockyard/pkg/workspace"
)

// The terminal editor measures in cells, so it ignores the pixel gutter
// and minimum from the config file.
const (
	playGutter  = 2
	playMinSize = 8

	// Rows taken by the tray above and the status line below the layout.
	chromeRows = 2
)

type playOpts struct {
	gutter  float64
	minSize float64
	script  string
}

// playCommand starts the interactive docking editor.
func (c *CLI) playCommand() *cobra.Command {
	opts := playOpts{gutter: playGutter, minSize: playMinSize}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Dock panels interactively in the terminal",
		Long: `Dock panels interactively in the terminal.

Press a number to pick up a panel from the tray, move the mouse over the
layout to see where it would land and click to drop it. Drag a panel by its
title bar to move it, drag a gutter to resize, right-click to close.

Keys: 1-9 pick panel, esc cancel, l lock, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd.Context(), opts)
		},
	}

	cmd.Flags().Float64Var(&opts.gutter, "gutter", opts.gutter, "gutter between panels in cells")
	cmd.Flags().Float64Var(&opts.minSize, "min-size", opts.minSize, "minimum panel size in cells")
	cmd.Flags().StringVar(&opts.script, "script", "", "start from the layout of a gesture script")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, opts playOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	m := newPlayModel(ctx, cfg, opts)
	if opts.script != "" {
		s, err := workspace.LoadScript(opts.script)
		if err != nil {
			return err
		}
		if _, err := s.Apply(ctx, m.ws); err != nil {
			return fmt.Errorf("replay %s: %w", opts.script, err)
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

// =============================================================================
// playModel - the docking editor
// =============================================================================

type playModel struct {
	ctx context.Context
	ws  *workspace.Workspace

	width, height int

	holding string   // tray panel being dragged in
	moving  dock.Key // docked leaf being dragged by its title
	last    geom.Point
	hover   dock.Key
	status  string
}

func newPlayModel(ctx context.Context, cfg *config.Config, opts playOpts) *playModel {
	d := cfg.DockOptions()
	d.Gutter, d.MinSize = opts.gutter, opts.minSize

	panels := make([]workspace.Panel, len(cfg.Panels))
	for i, p := range cfg.Panels {
		panels[i] = workspace.Panel{ID: p.ID, Name: p.Name}
	}
	ws := workspace.New(workspace.Options{
		Dock:   d,
		Panels: panels,
		Locked: cfg.Layout.Locked,
		Clamp:  true,
		Logger: loggerFromContext(ctx),
	})
	return &playModel{ctx: ctx, ws: ws}
}

func (m *playModel) Init() tea.Cmd {
	return nil
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if err := m.ws.SetViewport(float64(msg.Width), float64(max(msg.Height-chromeRows, 0))); err != nil {
			m.status = errs.UserMessage(err)
		}
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return tea.Quit
	case "esc":
		m.cancel()
		m.status = ""
	case "l":
		m.ws.SetLocked(!m.ws.Locked())
		m.cancel()
	default:
		i, err := strconv.Atoi(key)
		if err != nil || i < 1 {
			return nil
		}
		tray := m.tray()
		if i > len(tray) {
			return nil
		}
		m.cancel()
		m.holding = tray[i-1].ID
		m.status = fmt.Sprintf("Dropping %s: click a panel edge", tray[i-1].Name)
	}
	return nil
}

func (m *playModel) handleMouse(msg tea.MouseMsg) {
	p := m.point(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		m.motion(p)
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.press(p)
		case tea.MouseButtonRight:
			if k, ok := m.leafAt(p); ok {
				m.report(m.ws.Remove(m.ctx, k))
			}
		}
	case tea.MouseActionRelease:
		m.release()
	}
	m.last = p
}

func (m *playModel) motion(p geom.Point) {
	if split, ok := m.ws.Resizing(); ok {
		n, ok := m.ws.Tree().Node(split)
		if !ok {
			m.ws.EndResize()
			return
		}
		delta := p.X - m.last.X
		if n.Orientation() == dock.OrientationColumn {
			delta = p.Y - m.last.Y
		}
		if delta != 0 {
			_, err := m.ws.ResizeBy(m.ctx, delta)
			m.report(err)
		}
		return
	}
	if m.holding != "" || m.moving != "" {
		m.ws.DragOver(m.ctx, p)
		return
	}
	m.hover, _ = m.leafAt(p)
}

func (m *playModel) press(p geom.Point) {
	if m.holding != "" {
		m.ws.DragOver(m.ctx, p)
		_, err := m.ws.Drop(m.ctx, m.holding)
		m.holding = ""
		m.report(err)
		return
	}
	if m.ws.Locked() {
		return
	}
	if _, err := m.ws.BeginResizeAt(p); err == nil {
		m.status = ""
		return
	}
	if k, ok := m.titleAt(p); ok {
		m.moving = k
		m.status = "Moving panel: release over a panel edge"
	}
}

func (m *playModel) release() {
	if _, ok := m.ws.Resizing(); ok {
		m.ws.EndResize()
		return
	}
	if m.moving == "" {
		return
	}
	src := m.moving
	m.moving = ""
	if _, ok := m.ws.Pending(); !ok {
		m.status = ""
		return
	}
	_, err := m.ws.MoveTo(m.ctx, src)
	m.report(err)
}

func (m *playModel) cancel() {
	m.holding, m.moving = "", ""
	m.ws.DragLeave()
	m.ws.EndResize()
}

func (m *playModel) report(err error) {
	if err != nil {
		m.status = errs.UserMessage(err)
		m.ws.DragLeave()
		return
	}
	m.status = ""
}

// point maps a terminal cell to the center of that cell in layout space.
func (m *playModel) point(x, y int) geom.Point {
	return geom.Pt(float64(x)+0.5, float64(y-1)+0.5)
}

func (m *playModel) leafAt(p geom.Point) (dock.Key, bool) {
	for _, n := range m.ws.Tree().Leaves() {
		if f, err := m.ws.Tree().Frame(n.Key, m.ws.Viewport()); err == nil && f.Inner.Contains(p) {
			return n.Key, true
		}
	}
	return "", false
}

// titleAt returns the leaf whose top border row contains p.
func (m *playModel) titleAt(p geom.Point) (dock.Key, bool) {
	k, ok := m.leafAt(p)
	if !ok {
		return "", false
	}
	f, _ := m.ws.Tree().Frame(k, m.ws.Viewport())
	return k, p.Y < f.Inner.Top+1
}

// tray lists the panels not yet docked.
func (m *playModel) tray() []workspace.PanelState {
	var out []workspace.PanelState
	for _, p := range m.ws.Panels() {
		if !p.Docked {
			out = append(out, p)
		}
	}
	return out
}

func (m *playModel) View() string {
	if m.width == 0 {
		return ""
	}
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	for i, p := range m.tray() {
		item := fmt.Sprintf(" [%d] %s", i+1, p.Name)
		if p.ID == m.holding {
			b.WriteString(StyleTitle.Render(item))
		} else {
			b.WriteString(StyleDim.Render(item))
		}
	}
	if m.ws.Locked() {
		b.WriteString(StyleWarning.Render("  locked"))
	}
	b.WriteString("\n")

	opts := canvas.Options{
		Cols:     m.width,
		Rows:     max(m.height-chromeRows, 0),
		Active:   m.hover,
		Dividers: true,
	}
	if m.moving != "" {
		opts.Active = m.moving
	}
	if pl, ok := m.ws.Pending(); ok {
		opts.Preview = &pl.Preview
	}
	b.WriteString(canvas.Draw(m.ws.Tree(), m.ws.Viewport(), opts).Styled(canvas.DefaultTheme()))
	b.WriteString("\n")

	status := m.status
	if status == "" {
		status = "1-9 pick panel · drag title to move · drag gutter to resize · right-click close · l lock · q quit"
	}
	b.WriteString(StyleDim.Render(status))
	return b.String()
}
