package clients

import (
	"context"
	"net/http"

	"bankportal/frontend/apps/bankctl/internal/models"
)

// TransactionsClient reads ledger history and sends transfers.
type TransactionsClient struct {
	base *BaseClient
}

// NewTransactionsClient returns client.
func NewTransactionsClient(base *BaseClient) *TransactionsClient {
	return &TransactionsClient{base: base}
}

// Mine lists the caller's transactions, newest first.
func (c *TransactionsClient) Mine(ctx context.Context) ([]models.Transaction, error) {
	return c.list(ctx, "/transactions/me")
}

// All lists every transaction; the backend rejects non-admin callers.
func (c *TransactionsClient) All(ctx context.Context) ([]models.Transaction, error) {
	return c.list(ctx, "/admin/see_All_transactions")
}

// Transfer moves amount from the caller's account to toAccountID.
func (c *TransactionsClient) Transfer(ctx context.Context, toAccountID int64, amount models.Money) (*models.TransferResult, error) {
	var out models.TransferResult
	if err := c.base.DoJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   "/transfer",
		JSON:   models.TransferRequest{ToAccountID: toAccountID, Amount: amount},
		Auth:   true,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *TransactionsClient) list(ctx context.Context, path string) ([]models.Transaction, error) {
	var out []models.Transaction
	if err := c.base.DoJSON(ctx, Request{Path: path, Auth: true}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Transaction{}
	}
	return out, nil
}
