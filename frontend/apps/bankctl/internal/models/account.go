package models

// AccountView mirrors GET /api/account/me.
type AccountView struct {
	AccountID int64 `json:"account_id"`
	Balance   Money `json:"balance"`
}

// BalanceChange mirrors deposit/withdraw responses.
type BalanceChange struct {
	AccountID  int64 `json:"account_id"`
	NewBalance Money `json:"new_balance"`
}

// AmountRequest is the deposit/withdraw payload.
type AmountRequest struct {
	Amount Money `json:"amount"`
}

// TransferRequest is the POST /transfer payload.
type TransferRequest struct {
	ToAccountID int64 `json:"to_account_id"`
	Amount      Money `json:"amount"`
}

// TransferResult mirrors POST /transfer response.
type TransferResult struct {
	Message string `json:"message"`
}
