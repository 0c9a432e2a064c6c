package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindgrid/internal/api"
	"github.com/matzehuels/mindgrid/pkg/cache"
	"github.com/matzehuels/mindgrid/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		backend  string
		dir      string
		mongoURI string
		mongoDB  string
		redisURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mind map HTTP API server",
		Long: `Run the mind map HTTP API server.

Documents persist in the selected store backend:
  memory  in-process only, lost on exit (default)
  file    JSON files under --dir (default ~/.config/mindgrid/documents)
  mongo   MongoDB via --mongo-uri and --mongo-db

Layout results are cached in Redis when --redis-url is set; otherwise
each layout request recomputes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, backend, dir, mongoURI, mongoDB, redisURL)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&backend, "store", "memory", "store backend: memory, file, mongo")
	cmd.Flags().StringVar(&dir, "dir", "", "document directory for the file store")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", appName, "MongoDB database name")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for the layout cache (e.g. redis://localhost:6379/0)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, backend, dir, mongoURI, mongoDB, redisURL string) error {
	st, err := newStore(ctx, backend, dir, mongoURI, mongoDB)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())
	c.Logger.Info("store ready", "backend", backend)

	var cch cache.Cache
	if redisURL != "" {
		cch, err = cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("layout cache ready", "backend", "redis")
	}

	srv := api.NewServer(st, cch, c.Logger)
	return srv.Run(ctx, addr)
}

func newStore(ctx context.Context, backend, dir, mongoURI, mongoDB string) (store.Store, error) {
	switch backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(dir)
	case "mongo":
		return store.NewMongoStore(ctx, mongoURI, mongoDB)
	default:
		return nil, fmt.Errorf("unknown store backend: %s (must be 'memory', 'file', or 'mongo')", backend)
	}
}
