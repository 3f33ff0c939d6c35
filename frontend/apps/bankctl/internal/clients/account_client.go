package clients

import (
	"context"
	"net/http"

	"bankportal/frontend/apps/bankctl/internal/models"
)

// AccountClient calls /api/account endpoints. All of them require a token.
type AccountClient struct {
	base *BaseClient
}

// NewAccountClient returns client.
func NewAccountClient(base *BaseClient) *AccountClient {
	return &AccountClient{base: base}
}

// Me fetches the caller's account.
func (c *AccountClient) Me(ctx context.Context) (*models.AccountView, error) {
	var out models.AccountView
	if err := c.base.DoJSON(ctx, Request{Path: "/api/account/me", Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Deposit credits amount to the caller's account.
func (c *AccountClient) Deposit(ctx context.Context, amount models.Money) (*models.BalanceChange, error) {
	return c.move(ctx, "/api/account/deposit", amount)
}

// Withdraw debits amount from the caller's account.
func (c *AccountClient) Withdraw(ctx context.Context, amount models.Money) (*models.BalanceChange, error) {
	return c.move(ctx, "/api/account/withdraw", amount)
}

func (c *AccountClient) move(ctx context.Context, path string, amount models.Money) (*models.BalanceChange, error) {
	var out models.BalanceChange
	if err := c.base.DoJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   path,
		JSON:   models.AmountRequest{Amount: amount},
		Auth:   true,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
