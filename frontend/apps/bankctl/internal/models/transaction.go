package models

// Transaction mirrors a ledger row from /transactions/me and the admin listing.
// AccountID is only rendered in the admin view.
type Transaction struct {
	ID         int64  `json:"id"`
	AccountID  int64  `json:"account_id,omitempty"`
	TransferID *int64 `json:"transfer_id,omitempty"`
	Type       string `json:"type"`
	Amount     Money  `json:"amount"`
	CreatedAt  string `json:"created_at"`
}
