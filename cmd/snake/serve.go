package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/httpapi"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/presence"
	"github.com/vovakirdan/tui-snake/internal/spectator"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagSSHAddr  string
	flagHTTPAddr string
	flagHostKey  string
	flagPresence string
	flagRedisURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH and HTTP servers",
	Long: `Serve the game over SSH and the leaderboard API over HTTP.

Every SSH connection gets its own menu; scores are saved under the SSH
username. The autoplay games run in the background for spectators, and are
published to the presence backend (memory or redis) so other hosts and the
HTTP API can list them.

Examples:
  snake serve
  snake serve --ssh :2222 --http :8081
  snake serve --presence redis --redis-url redis://localhost:6379/0

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH listen address (overrides config)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address (overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to the SSH host key (generated if missing)")
	serveCmd.Flags().StringVar(&flagPresence, "presence", "", "Presence backend: memory or redis (overrides config)")
	serveCmd.Flags().StringVar(&flagRedisURL, "redis-url", "", "Redis URL for the redis presence backend")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	applyServeFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	pres, err := openPresence(ctx, cfg.Presence, logger)
	if err != nil {
		return err
	}
	defer pres.Close()

	hubCfg := spectator.FromConfig(cfg)
	if flagSeed != 0 {
		hubCfg.Seed = flagSeed
	}
	hub := spectator.New(hubCfg, pres, logger)
	if err := hub.Start(ctx); err != nil {
		return err
	}
	defer hub.Stop()

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Logger:      logger,
		Leaderboard: store,
		Spectators:  hub,
		Presence:    pres,
	})
	httpCfg := httpapi.DefaultServerConfig()
	httpCfg.Addr = cfg.Server.HTTPAddr
	httpSrv := httpapi.NewServer(router, httpCfg, logger.WithPrefix("http"))

	sshSrv, err := tui.NewSSHServer(tui.SSHServerOptions{
		Config:   cfg,
		Store:    store,
		Hub:      hub,
		Logger:   logger,
		Theme:    tui.ThemeByName(flagTheme),
		TickRate: flagFPS,
	})
	if err != nil {
		return err
	}

	logger.Info("serving",
		"ssh", cfg.Server.SSHAddr,
		"http", cfg.Server.HTTPAddr,
		"presence", cfg.Presence.Backend,
		"games", hubCfg.Games,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sshSrv.ListenAndServe(gctx)
	})
	g.Go(httpSrv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

func applyServeFlags(cfg *config.SnakeConfig) {
	if flagSSHAddr != "" {
		cfg.Server.SSHAddr = flagSSHAddr
	}
	if flagHTTPAddr != "" {
		cfg.Server.HTTPAddr = flagHTTPAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flagPresence != "" {
		cfg.Presence.Backend = flagPresence
	}
	if flagRedisURL != "" {
		cfg.Presence.RedisURL = flagRedisURL
	}
}

func openPresence(ctx context.Context, cfg config.PresenceConfig, logger *log.Logger) (presence.Store, error) {
	if cfg.Backend != config.PresenceRedis {
		return presence.NewMemoryStore(), nil
	}
	store, err := presence.NewRedisStore(ctx, cfg.RedisURL, cfg.TTL)
	if err != nil {
		return nil, err
	}
	logger.Debug("presence backend ready", "backend", "redis", "ttl", cfg.TTL)
	return store, nil
}
