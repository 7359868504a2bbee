package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/busybox/internal/config"
	"github.com/roach88/busybox/internal/counter"
	"github.com/roach88/busybox/internal/history"
	"github.com/roach88/busybox/internal/prefs"
)

// session is an open store plus the service running on it.
type session struct {
	cfg     config.Config
	store   *prefs.SQLiteStore
	service *counter.Service
	logger  *slog.Logger
}

// newLogger builds the text logger used by every command.
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// resolveConfig loads the config file and applies flag overrides.
func resolveConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if opts.Namespace != "" {
		cfg.Namespace = opts.Namespace
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "invalid settings", err)
	}
	return cfg, nil
}

// openSession resolves settings, opens the store and starts the service.
// A store that cannot be opened or read is a command error.
func openSession(ctx context.Context, opts *RootOptions, cmd *cobra.Command, extra ...counter.Option) (*session, error) {
	logger := newLogger(opts.Verbose, cmd.ErrOrStderr())

	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	labels, err := history.ParseLocale(cfg.Locale)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid locale", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid timezone", err)
	}

	logger.Debug("opening database", "path", cfg.Database, "namespace", cfg.Namespace)
	st, err := prefs.Open(cfg.Database, cfg.Namespace)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	svcOpts := append([]counter.Option{
		counter.WithLogger(logger),
		counter.WithDetector(cfg.Motion()),
		counter.WithHistoryOptions(history.Options{
			Labels: labels,
			Format: history.DateFormatter(loc),
		}),
	}, extra...)

	svc, err := counter.New(ctx, st, svcOpts...)
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to load counter", err)
	}

	return &session{cfg: cfg, store: st, service: svc, logger: logger}, nil
}

// Close releases the store.
func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing database", "error", err)
	}
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
