package main

import (
	"net/url"

	"github.com/spf13/cobra"

	"bankportal/frontend/apps/bankctl/internal/ui"
)

func registerCmd(g *globalFlags) *cobra.Command {
	var username, email, firstName, lastName, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user and its account",
		Long: `Register a new user. The backend opens an account for it.

Examples:
  bankctl register -u alice --email alice@example.com --first-name Alice --last-name Smith -p 'Pass123!'
  BANKCTL_PASSWORD='Pass123!' bankctl register -u alice --email alice@example.com --first-name Alice --last-name Smith`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := url.Values{
				"username":   {username},
				"email":      {email},
				"first_name": {firstName},
				"last_name":  {lastName},
				"password":   {passwordOr(password)},
			}
			return g.runPage(cmd, ui.RegisterPage, submit(ui.RegisterPage, ui.FormRegister, values))
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "User name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (default $BANKCTL_PASSWORD)")

	return cmd
}

func loginCmd(g *globalFlags) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		Long: `Exchange user name and password for an access token and store it
in the configured token backend.

Examples:
  bankctl login -u alice -p 'Pass123!'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := url.Values{
				"username": {username},
				"password": {passwordOr(password)},
			}
			return g.runPage(cmd, ui.LoginPage, submit(ui.LoginPage, ui.FormLogin, values))
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "User name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (default $BANKCTL_PASSWORD)")

	return cmd
}

func logoutCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.runPage(cmd, ui.HomePage, click(ui.HomePage, ui.BtnLogout))
		},
	}
}
