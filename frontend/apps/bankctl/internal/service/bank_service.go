package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bankportal/frontend/apps/bankctl/internal/models"
)

var (
	// ErrNoToken is returned when the login response lacks an access token.
	ErrNoToken = errors.New("Login failed: no token returned.")
	// ErrInvalidNumber is returned for non-numeric amount or account id input.
	ErrInvalidNumber = errors.New("must be a number")
)

// AuthAPI is the backend auth contract.
type AuthAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResult, error)
	Token(ctx context.Context, username, password string) (*models.LoginResult, error)
}

// AccountAPI is the backend account contract.
type AccountAPI interface {
	Me(ctx context.Context) (*models.AccountView, error)
	Deposit(ctx context.Context, amount models.Money) (*models.BalanceChange, error)
	Withdraw(ctx context.Context, amount models.Money) (*models.BalanceChange, error)
}

// TransactionsAPI is the backend ledger contract.
type TransactionsAPI interface {
	Mine(ctx context.Context) ([]models.Transaction, error)
	All(ctx context.Context) ([]models.Transaction, error)
	Transfer(ctx context.Context, toAccountID int64, amount models.Money) (*models.TransferResult, error)
}

// TokenWriter persists or forgets the session token.
type TokenWriter interface {
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// BankService exposes the named operations of the banking API.
type BankService struct {
	auth     AuthAPI
	accounts AccountAPI
	txs      TransactionsAPI
	tokens   TokenWriter
	logger   *zap.Logger
}

// NewBankService builds BankService.
func NewBankService(auth AuthAPI, accounts AccountAPI, txs TransactionsAPI, tokens TokenWriter, logger *zap.Logger) *BankService {
	return &BankService{
		auth:     auth,
		accounts: accounts,
		txs:      txs,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a user.
func (s *BankService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResult, error) {
	res, err := s.auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("username", res.Username), zap.Int64("account_id", res.AccountID))
	return res, nil
}

// Login exchanges credentials for a token and stores it.
func (s *BankService) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	res, err := s.auth.Token(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if res == nil || res.AccessToken == "" {
		return nil, ErrNoToken
	}
	if err := s.tokens.SetToken(ctx, res.AccessToken); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	s.logger.Info("logged in", zap.String("username", username))
	return res, nil
}

// Logout forgets the stored token. No request is sent.
func (s *BankService) Logout(ctx context.Context) error {
	return s.tokens.Clear(ctx)
}

// Account fetches the caller's account.
func (s *BankService) Account(ctx context.Context) (*models.AccountView, error) {
	return s.accounts.Me(ctx)
}

// Transactions lists the caller's transactions.
func (s *BankService) Transactions(ctx context.Context) ([]models.Transaction, error) {
	return s.txs.Mine(ctx)
}

// AdminTransactions lists every transaction.
func (s *BankService) AdminTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.txs.All(ctx)
}

// Deposit credits amount, given as the raw form value.
func (s *BankService) Deposit(ctx context.Context, amount string) (*models.BalanceChange, error) {
	value, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	return s.accounts.Deposit(ctx, value)
}

// Withdraw debits amount, given as the raw form value.
func (s *BankService) Withdraw(ctx context.Context, amount string) (*models.BalanceChange, error) {
	value, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	return s.accounts.Withdraw(ctx, value)
}

// Transfer sends amount to toAccountID, both given as raw form values.
func (s *BankService) Transfer(ctx context.Context, toAccountID, amount string) (*models.TransferResult, error) {
	to, err := ParseAccountID(toAccountID)
	if err != nil {
		return nil, err
	}
	value, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	return s.txs.Transfer(ctx, to, value)
}

// ParseAmount converts a form value to a number. Range checks are left to the backend.
func ParseAmount(raw string) (models.Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return models.Money{}, fmt.Errorf("amount %w", ErrInvalidNumber)
	}
	return models.NewMoney(d), nil
}

// ParseAccountID converts a form value to an account id.
func ParseAccountID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("to_account_id %w", ErrInvalidNumber)
	}
	return id, nil
}
