package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dockyard/pkg/cache"
	"github.com/matzehuels/dockyard/pkg/render/dot"
	"github.com/matzehuels/dockyard/pkg/workspace"
)

const svgCacheTTL = 30 * 24 * time.Hour

type dotOpts struct {
	output   string
	svg      bool
	detailed bool
	noCache  bool
}

// dotCommand exports the tree built by a script as Graphviz.
func (c *CLI) dotCommand() *cobra.Command {
	var opts dotOpts

	cmd := &cobra.Command{
		Use:   "dot [file.toml]",
		Short: "Export a scripted layout tree as DOT or SVG",
		Long: `Export a scripted layout tree as DOT or SVG.

The script is replayed exactly as with 'dockyard script'. Splits become
ellipses labeled with their orientation and leaves become boxes labeled
with their panel. With --svg the graph is laid out by the embedded
Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDOT(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.svg, "svg", false, "render SVG instead of DOT")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add bounds and pixel sizes to labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always re-render SVG")

	return cmd
}

func (c *CLI) runDOT(ctx context.Context, path string, opts dotOpts) error {
	logger := loggerFromContext(ctx)

	s, err := workspace.LoadScript(path)
	if err != nil {
		return err
	}
	ws, _, err := s.Run(ctx, logger)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}

	data := []byte(dot.ToDOT(ws.Tree(), ws.Viewport(), dot.Options{Detailed: opts.detailed}))
	if opts.svg {
		svg, err := renderSVG(ctx, newCache(opts.noCache), string(data))
		if err != nil {
			return err
		}
		data = svg
	}

	if opts.output == "" {
		_, err := c.out().Write(data)
		return err
	}
	if err := writeFile(opts.output, data); err != nil {
		return err
	}
	printFile(c.out(), opts.output)
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// renderSVG lays out src with Graphviz unless the cache already holds it.
func renderSVG(ctx context.Context, c cache.Cache, src string) ([]byte, error) {
	logger := loggerFromContext(ctx)
	defer c.Close()

	key := cache.SVGKey(src)
	if svg, hit, err := c.Get(ctx, key); err == nil && hit {
		logger.Debug("SVG cache hit", "key", key)
		return svg, nil
	}

	spinner := newSpinner(ctx, "Rendering SVG...")
	spinner.Start()
	svg, err := dot.RenderSVG(ctx, src)
	if err != nil {
		spinner.StopWithError("SVG rendering failed")
		return nil, err
	}
	spinner.Stop()

	if err := c.Set(ctx, key, svg, svgCacheTTL); err != nil {
		logger.Warn("Could not cache SVG", "err", err)
	}
	return svg, nil
}
