package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errActionFailed) {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "bankctl",
		Short: "Terminal client for the banking API",
		Long: `bankctl talks to the banking REST API from the terminal.

Each command is one page of the web client:

  • register, login and logout manage the session token
  • account and transactions show your balance and history
  • deposit, withdraw and transfer move money
  • admin transactions lists every transaction (admins only)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "Config file (default $BANKCTL_CONFIG or <user config dir>/bankctl/config.yaml)")
	flags.StringVar(&g.apiURL, "api-url", "", "Override api.baseUrl")
	flags.StringVar(&g.logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")
	flags.BoolVar(&g.plain, "plain", false, "Disable colors and symbols")
	flags.BoolVar(&g.ephemeral, "ephemeral", false, "Keep the token in memory for this invocation only")

	rootCmd.AddCommand(
		registerCmd(g),
		loginCmd(g),
		logoutCmd(g),
		accountCmd(g),
		transactionsCmd(g),
		depositCmd(g),
		withdrawCmd(g),
		transferCmd(g),
		adminCmd(g),
		statusCmd(g),
		versionCmd(),
	)

	return rootCmd
}
