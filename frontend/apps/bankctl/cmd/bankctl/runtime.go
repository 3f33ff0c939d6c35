package main

import (
	"context"
	"errors"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"bankportal/frontend/apps/bankctl/internal/app"
	"bankportal/frontend/apps/bankctl/internal/config"
	"bankportal/frontend/apps/bankctl/internal/ui"
	"bankportal/frontend/libs/logging"
)

// errActionFailed means the failure was already shown to the user.
var errActionFailed = errors.New("action failed")

// pageCommands maps page paths to the command that opens them.
var pageCommands = map[string]string{
	ui.HomePage.Path:         "bankctl status",
	ui.LoginPage.Path:        "bankctl login",
	ui.RegisterPage.Path:     "bankctl register",
	ui.AccountPage.Path:      "bankctl account",
	ui.DepositPage.Path:      "bankctl deposit <amount>",
	ui.WithdrawPage.Path:     "bankctl withdraw <amount>",
	ui.TransferPage.Path:     "bankctl transfer <to_account_id> <amount>",
	ui.TransactionsPage.Path: "bankctl transactions",
	ui.AdminPage.Path:        "bankctl admin transactions",
}

type globalFlags struct {
	configPath string
	apiURL     string
	logLevel   string
	plain      bool
	ephemeral  bool
}

// open loads config and builds the application for one command.
func (g *globalFlags) open(cmd *cobra.Command) (*app.App, func(), error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	if g.apiURL != "" {
		cfg.API.BaseURL = g.apiURL
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, nil, err
	}

	a, err := app.New(cmd.Context(), cfg, logger, app.Options{
		Out:       cmd.OutOrStdout(),
		ErrOut:    cmd.ErrOrStderr(),
		Commands:  pageCommands,
		Plain:     g.plain || os.Getenv("NO_COLOR") != "",
		Ephemeral: g.ephemeral,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}

	return a, func() {
		a.Close()
		_ = logger.Sync()
	}, nil
}

// runPage readies page and runs action on it. Protected pages without a token
// stop after the redirect hint.
func (g *globalFlags) runPage(cmd *cobra.Command, page ui.Page, action func(ctx context.Context, a *app.App) error) error {
	a, done, err := g.open(cmd)
	if err != nil {
		return err
	}
	defer done()

	ctx := cmd.Context()
	if a.Binder.Ready(ctx, page) {
		_ = a.Display.Flush()
		return errActionFailed
	}

	var actionErr error
	if action != nil {
		actionErr = action(ctx, a)
	}
	if err := a.Display.Flush(); err != nil {
		return err
	}

	switch {
	case errors.Is(actionErr, ui.ErrNotBound), errors.Is(actionErr, ui.ErrUnknownControl):
		return actionErr
	case actionErr != nil, a.Display.Failed():
		return errActionFailed
	}
	return nil
}

func submit(page ui.Page, form ui.ElementID, values url.Values) func(context.Context, *app.App) error {
	return func(ctx context.Context, a *app.App) error {
		return a.Binder.Submit(ctx, page, form, values)
	}
}

func click(page ui.Page, button ui.ElementID) func(context.Context, *app.App) error {
	return func(ctx context.Context, a *app.App) error {
		return a.Binder.Click(ctx, page, button)
	}
}

func load(page ui.Page) func(context.Context, *app.App) error {
	return func(ctx context.Context, a *app.App) error {
		a.Binder.Load(ctx, page)
		return nil
	}
}

// passwordOr falls back to BANKCTL_PASSWORD so the secret can stay out of shell history.
func passwordOr(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv("BANKCTL_PASSWORD")
}
