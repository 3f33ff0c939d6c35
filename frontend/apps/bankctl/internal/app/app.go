package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"bankportal/frontend/apps/bankctl/internal/clients"
	"bankportal/frontend/apps/bankctl/internal/config"
	"bankportal/frontend/apps/bankctl/internal/service"
	"bankportal/frontend/apps/bankctl/internal/session"
	"bankportal/frontend/apps/bankctl/internal/ui"
	"bankportal/frontend/libs/db"
	libredis "bankportal/frontend/libs/redis"
)

// Options carries the per-invocation settings that do not come from config.
type Options struct {
	Out    io.Writer
	ErrOut io.Writer
	// Commands maps page paths to the CLI invocation printed on redirect.
	Commands map[string]string
	Plain    bool
	// Ephemeral forces the in-memory token store.
	Ephemeral bool
	// HTTPClient replaces the default client.
	HTTPClient clients.HTTPDoer
}

// App wires bankctl dependencies.
type App struct {
	Session *session.Session
	Bank    *service.BankService
	Display *ui.TerminalDisplay
	Binder  *ui.Binder

	logger  *zap.Logger
	closers []func() error
}

// New constructs application graph.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}

	a := &App{logger: logger}

	backend := cfg.TokenBackend()
	if opts.Ephemeral {
		backend = config.BackendMemory
	}
	store, err := a.newTokenStore(ctx, cfg, backend)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Session = session.New(store)

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = clients.NewDefaultHTTPClient(cfg.HTTPTimeout())
	}
	base := clients.NewBaseClient(cfg.BaseURL(), httpClient, a.Session, logger)

	a.Bank = service.NewBankService(
		clients.NewAuthClient(base),
		clients.NewAccountClient(base),
		clients.NewTransactionsClient(base),
		a.Session,
		logger,
	)

	a.Display = ui.NewTerminalDisplay(opts.Out, opts.ErrOut, opts.Commands, opts.Plain, logger)
	a.Binder = ui.NewBinder(a.Bank, a.Session, a.Display, logger, ui.WithDelays(ui.Delays{
		Register: cfg.UI.RegisterRedirectDelay,
		Login:    cfg.UI.LoginRedirectDelay,
		Logout:   cfg.UI.LogoutRedirectDelay,
	}))

	logger.Debug("bankctl ready", zap.String("api", cfg.BaseURL()), zap.String("token_backend", backend))
	return a, nil
}

func (a *App) newTokenStore(ctx context.Context, cfg *config.Config, backend string) (session.Store, error) {
	switch backend {
	case config.BackendMemory:
		return session.NewMemoryStore(), nil
	case config.BackendFile:
		path := cfg.Token.File
		if path == "" {
			var err error
			if path, err = session.DefaultFilePath(); err != nil {
				return nil, err
			}
		}
		return session.NewFileStore(path), nil
	case config.BackendRedis:
		client, err := libredis.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("app: connect redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return session.NewRedisStore(client, cfg.Token.Key), nil
	case config.BackendPostgres:
		conn, err := db.NewPostgresDB(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("app: connect postgres: %w", err)
		}
		a.closers = append(a.closers, conn.Close)
		store := session.NewSQLStore(conn)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", session.ErrUnknownBackend, backend)
	}
}

// Close releases token store connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
