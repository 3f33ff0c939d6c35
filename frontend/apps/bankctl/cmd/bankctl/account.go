package main

import (
	"net/url"

	"github.com/spf13/cobra"

	"bankportal/frontend/apps/bankctl/internal/ui"
)

func accountCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show your account id and balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.runPage(cmd, ui.AccountPage, load(ui.AccountPage))
		},
	}
}

func transactionsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List your transactions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.runPage(cmd, ui.TransactionsPage, load(ui.TransactionsPage))
		},
	}
}

func depositCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <amount>",
		Short: "Deposit money into your account",
		Long: `Deposit money and show the updated balance.

Examples:
  bankctl deposit 50
  bankctl deposit 12.75`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := url.Values{"amount": {args[0]}}
			return g.runPage(cmd, ui.DepositPage, submit(ui.DepositPage, ui.FormDeposit, values))
		},
	}
}

func withdrawCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <amount>",
		Short: "Withdraw money from your account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := url.Values{"amount": {args[0]}}
			return g.runPage(cmd, ui.WithdrawPage, submit(ui.WithdrawPage, ui.FormWithdraw, values))
		},
	}
}

func transferCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <to_account_id> <amount>",
		Short: "Send money to another account",
		Long: `Transfer money to another account by its id.

Examples:
  bankctl transfer 2 25`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := url.Values{
				"to_account_id": {args[0]},
				"amount":        {args[1]},
			}
			return g.runPage(cmd, ui.TransferPage, submit(ui.TransferPage, ui.FormTransfer, values))
		},
	}
}

func adminCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator views",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "transactions",
		Short: "List every transaction (admin role required)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.runPage(cmd, ui.AdminPage, click(ui.AdminPage, ui.BtnLoadAdminTx))
		},
	})

	return cmd
}
