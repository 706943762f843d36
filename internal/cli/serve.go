package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dockyard/internal/server"
	"github.com/matzehuels/dockyard/pkg/observability"
	"github.com/matzehuels/dockyard/pkg/workspace"
)

type serveOpts struct {
	addr   string
	script string
}

// serveCommand exposes a workspace over HTTP until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a workspace over HTTP/JSON",
		Long: `Serve a workspace over HTTP/JSON.

The workspace starts empty, or with the layout produced by --script. Clients
drive it with the same gestures as the terminal editor: POST /api/dragover
while dragging, POST /api/drop to dock, POST /api/splits/{key}/resize to move
a divider. GET /api/layout returns every resolved frame.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&opts.script, "script", "", "preload the layout from a gesture script")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if opts.addr != "" {
		addr = opts.addr
	}

	ws, err := c.initialWorkspace(ctx, opts.script)
	if err != nil {
		return err
	}
	if ws == nil {
		ws = workspace.FromConfig(cfg, logger)
	}

	stats := &observability.Counters{}
	observability.SetLayoutHooks(stats)
	observability.SetServerHooks(stats)
	defer observability.Reset()

	printInfo(c.out(), "Listening on %s", addr)
	return server.New(ws, server.Options{Logger: logger, Stats: stats}).ListenAndServe(ctx, addr)
}

// initialWorkspace replays path, or returns nil when path is empty.
func (c *CLI) initialWorkspace(ctx context.Context, path string) (*workspace.Workspace, error) {
	if path == "" {
		return nil, nil
	}
	s, err := workspace.LoadScript(path)
	if err != nil {
		return nil, err
	}
	ws, res, err := s.Run(ctx, loggerFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", path, err)
	}
	loggerFromContext(ctx).Info("Preloaded layout", "script", path, "applied", res.Applied, "panels", len(ws.Tree().Leaves()))
	return ws, nil
}
