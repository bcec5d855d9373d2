package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sksahoo1435/scintillate-project/internal/app"
	"github.com/sksahoo1435/scintillate-project/internal/config"
	"github.com/sksahoo1435/scintillate-project/internal/favorites"
	"github.com/sksahoo1435/scintillate-project/internal/logging"
	"github.com/sksahoo1435/scintillate-project/internal/storage"
	"github.com/sksahoo1435/scintillate-project/internal/swapi"
	"github.com/sksahoo1435/scintillate-project/internal/timeouts"
	"github.com/sksahoo1435/scintillate-project/internal/tui"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "scintillate",
		Short:         "Browse the Star Wars character catalog",
		Long:          "Browse the Star Wars character catalog page by page, keep favorites and open character details with their films.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer rt.Close()
			return runTUI(rt)
		},
	}

	cmd.AddCommand(
		newPageCmd(),
		newShowCmd(),
		newFavoritesCmd(),
		newFavoriteCmd(),
	)
	return cmd
}

// session is everything a command needs, built once from config.
type session struct {
	ctx     context.Context
	cfg     config.Config
	logger  zerolog.Logger
	repo    *storage.Repository
	service *app.Service
	closers []io.Closer
}

func (r *session) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i].Close()
	}
}

// setup loads config and wires storage, the catalog client and the service.
// Subcommands log to stderr; the TUI logs to SCINTILLATE_LOG_PATH or nowhere.
func setup(ctx context.Context, console bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	rt := &session{cfg: cfg}
	if console {
		rt.logger, err = logging.NewConsole(cfg.LogLevel)
	} else {
		var closer io.Closer
		rt.logger, closer, err = logging.OpenFile(cfg.LogLevel, cfg.LogPath)
		rt.closers = append(rt.closers, closer)
	}
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.ctx = logging.WithLogger(ctx, rt.logger)

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	rt.repo = repo
	rt.closers = append(rt.closers, repo)

	initCtx, cancel := context.WithTimeout(rt.ctx, timeouts.Storage)
	defer cancel()
	if err := repo.Init(initCtx); err != nil {
		rt.Close()
		return nil, fmt.Errorf("storage schema error: %w", err)
	}
	if err := repo.CheckWritable(initCtx); err != nil {
		rt.Close()
		return nil, fmt.Errorf("storage write check failed (%v), verify SCINTILLATE_DB_PATH is writable: %s", err, cfg.DBPath)
	}

	store := favorites.Load(initCtx, repo.Slot(favorites.SlotKey))
	client := swapi.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.RequestTimeout})
	rt.service = app.NewService(client, store, cfg.FanOutLimit)

	rt.logger.Debug().
		Str("api", cfg.APIBaseURL).
		Str("db", cfg.DBPath).
		Int("favorites", store.Len()).
		Msg("runtime ready")
	return rt, nil
}

func runTUI(rt *session) error {
	model := tui.NewModel(rt.ctx, rt.service)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(rt.ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
