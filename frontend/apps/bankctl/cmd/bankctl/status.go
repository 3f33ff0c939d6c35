package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"bankportal/frontend/apps/bankctl/internal/app"
	"bankportal/frontend/apps/bankctl/internal/ui"
)

const (
	slotUser    ui.ElementID = "User"
	slotUserID  ui.ElementID = "User ID"
	slotRole    ui.ElementID = "Role"
	slotExpires ui.ElementID = "Expires"
	slotToken   ui.ElementID = "Token"
)

func statusCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether you are logged in and who as",
		Long: `Show the logged-in indicator and the claims carried by the stored token.

The token is decoded locally without checking its signature; only the
backend decides whether it is still valid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.runPage(cmd, ui.HomePage, showClaims)
		},
	}
}

func showClaims(ctx context.Context, a *app.App) error {
	claims, ok, err := a.Session.Claims(ctx)
	if !ok {
		return err
	}
	if err != nil {
		a.Display.SetText(slotToken, "stored, not a readable JWT")
		return nil
	}

	a.Display.SetText(slotUser, orDash(claims.Subject))
	a.Display.SetText(slotUserID, orDash(claims.UserID))
	a.Display.SetText(slotRole, orDash(claims.Role))

	expires := "-"
	if !claims.ExpiresAt.IsZero() {
		expires = claims.ExpiresAt.Local().Format(time.RFC3339)
		if claims.Expired(time.Now()) {
			expires += " (expired)"
		}
	}
	a.Display.SetText(slotExpires, expires)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
