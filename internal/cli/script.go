package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/geom"
	"github.com/matzehuels/dockyard/pkg/render/canvas"
	"github.com/matzehuels/dockyard/pkg/workspace"
)

const (
	defaultCols = 80
	// cellAspect is the height of a terminal cell relative to its width.
	cellAspect = 2.0
)

type scriptOpts struct {
	cols    int
	json    bool
	noColor bool
}

// scriptCommand replays a gesture script and prints the resulting layout.
func (c *CLI) scriptCommand() *cobra.Command {
	var opts scriptOpts

	cmd := &cobra.Command{
		Use:   "script [file.toml]",
		Short: "Replay a gesture script and print the layout",
		Long: `Replay a gesture script and print the layout.

A script is a TOML file with optional [viewport], [layout] and [[panels]]
sections followed by [[steps]]. Each step is one of drop, move, remove,
resize, viewport, lock or unlock. The resulting frames are printed as a
table followed by a box drawing of the layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScript(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.cols, "cols", 0, "drawing width in cells (default: terminal width)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the layout snapshot as JSON")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "draw without colors")

	return cmd
}

func (c *CLI) runScript(ctx context.Context, path string, opts scriptOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := workspace.LoadScript(path)
	if err != nil {
		return err
	}
	ws, res, err := s.Run(ctx, logger)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}
	prog.done(fmt.Sprintf("Replayed %d steps", len(s.Steps)))

	out := c.out()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ws.Snapshot())
	}

	printSuccess(out, "%d applied, %d rejected", res.Applied, res.Rejected)
	if ws.Tree().Empty() {
		printWarning(out, "layout is empty")
		return nil
	}
	fmt.Fprintln(out, framesTable(ws.Snapshot()))

	cols, rows := canvasSize(out, ws.Viewport(), opts.cols)
	cv := canvas.Draw(ws.Tree(), ws.Viewport(), canvas.Options{Cols: cols, Rows: rows, Dividers: true})
	if opts.noColor {
		fmt.Fprintln(out, cv.String())
	} else {
		fmt.Fprintln(out, cv.Styled(canvas.DefaultTheme()))
	}
	return nil
}

func (c *CLI) out() io.Writer {
	if c.stdout == nil {
		return os.Stdout
	}
	return c.stdout
}

// framesTable renders one row per leaf with its resolved inner frame.
func framesTable(s workspace.Snapshot) string {
	var rows [][]string
	for _, n := range s.Nodes {
		if n.Orientation != dock.OrientationLeaf {
			continue
		}
		rows = append(rows, []string{
			string(n.Key),
			n.Name,
			fmt.Sprintf("%.0f", n.Inner.Left),
			fmt.Sprintf("%.0f", n.Inner.Top),
			fmt.Sprintf("%.0f", n.Inner.Width()),
			fmt.Sprintf("%.0f", n.Inner.Height()),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Key", "Panel", "X", "Y", "Width", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col >= 2 {
				return StyleValue.Align(lipgloss.Right)
			}
			return StyleValue
		}).
		Render()
}

// canvasSize picks a drawing size that keeps the viewport's aspect ratio.
// Without an explicit width it uses the terminal width when out is one.
func canvasSize(out io.Writer, vp geom.Rect, cols int) (int, int) {
	if cols <= 0 {
		cols = defaultCols
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
				cols = w
			}
		}
	}
	if vp.Width() <= 0 {
		return cols, 0
	}
	rows := int(math.Round(float64(cols) * vp.Height() / vp.Width() / cellAspect))
	return cols, max(rows, 1)
}
