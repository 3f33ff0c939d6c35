package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"bankportal/frontend/apps/bankctl/internal/models"
)

var (
	// ErrNotBound is returned when a page does not declare the submitted control.
	ErrNotBound = errors.New("ui: control not bound on page")
	// ErrUnknownControl is returned for a control the binder has no handler for.
	ErrUnknownControl = errors.New("ui: unknown control")
)

// Bank is the set of named operations the binder drives.
type Bank interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResult, error)
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
	Logout(ctx context.Context) error
	Account(ctx context.Context) (*models.AccountView, error)
	Transactions(ctx context.Context) ([]models.Transaction, error)
	AdminTransactions(ctx context.Context) ([]models.Transaction, error)
	Deposit(ctx context.Context, amount string) (*models.BalanceChange, error)
	Withdraw(ctx context.Context, amount string) (*models.BalanceChange, error)
	Transfer(ctx context.Context, toAccountID, amount string) (*models.TransferResult, error)
}

// SessionState reports whether a token is stored.
type SessionState interface {
	LoggedIn(ctx context.Context) bool
}

// Delays are the pauses before post-action redirects.
type Delays struct {
	Register time.Duration
	Login    time.Duration
	Logout   time.Duration
}

// DefaultDelays match the web client.
var DefaultDelays = Delays{
	Register: 700 * time.Millisecond,
	Login:    500 * time.Millisecond,
	Logout:   400 * time.Millisecond,
}

// Option customizes a Binder.
type Option func(*Binder)

// WithDelays overrides redirect delays.
func WithDelays(d Delays) Option {
	return func(b *Binder) { b.delays = d }
}

// WithSleep replaces the delay function; it must return early with ctx.Err() on cancellation.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(b *Binder) { b.sleep = sleep }
}

// Binder wires page controls to bank operations and renders results.
type Binder struct {
	bank    Bank
	session SessionState
	display Display
	logger  *zap.Logger
	delays  Delays
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewBinder builds a Binder.
func NewBinder(bank Bank, session SessionState, display Display, logger *zap.Logger, opts ...Option) *Binder {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Binder{
		bank:    bank,
		session: session,
		display: display,
		logger:  logger,
		delays:  DefaultDelays,
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Ready runs the page-ready steps: hide the message, send logged-out visitors of
// protected pages to /login and refresh the logged-in indicator. It reports
// whether a redirect was issued.
func (b *Binder) Ready(ctx context.Context, page Page) bool {
	if page.Has(ElemMsg) {
		b.display.HideMsg()
	}

	redirected := false
	if page.RequiresAuth && !b.session.LoggedIn(ctx) {
		b.display.Redirect(LoginPage.Path)
		redirected = true
	}

	b.refreshIndicator(ctx, page)
	return redirected
}

// Load eagerly renders account and transaction slots when a token exists.
// Without a token nothing is requested and nothing is shown.
func (b *Binder) Load(ctx context.Context, page Page) {
	if !b.session.LoggedIn(ctx) {
		return
	}
	if page.Has(ElemAccountID) && page.Has(ElemBalance) {
		if _, err := b.LoadAccount(ctx, page); err != nil {
			b.showMsg(page, err.Error(), KindDanger)
		}
	}
	if page.Has(ElemTxBody) {
		if _, err := b.LoadTransactions(ctx, page); err != nil {
			b.showMsg(page, err.Error(), KindDanger)
		}
	}
}

// LoadAccount fetches the account and renders it when the page has the slots.
func (b *Binder) LoadAccount(ctx context.Context, page Page) (*models.AccountView, error) {
	view, err := b.bank.Account(ctx)
	if err != nil {
		return nil, err
	}
	b.setText(page, ElemAccountID, fmt.Sprintf("%d", view.AccountID))
	b.setText(page, ElemBalance, view.Balance.String())
	return view, nil
}

// LoadTransactions fetches the caller's transactions and renders tx_body.
func (b *Binder) LoadTransactions(ctx context.Context, page Page) ([]models.Transaction, error) {
	txs, err := b.bank.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	if page.Has(ElemTxBody) {
		b.display.SetRows(ElemTxBody, transactionRows(txs))
	}
	return txs, nil
}

// LoadAdminTransactions fetches every transaction and renders admin_tx_body.
func (b *Binder) LoadAdminTransactions(ctx context.Context, page Page) ([]models.Transaction, error) {
	txs, err := b.bank.AdminTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if page.Has(ElemAdminTxBody) {
		b.display.SetRows(ElemAdminTxBody, adminTransactionRows(txs))
	}
	return txs, nil
}

// Submit handles a form submission with the given field values. The returned error
// has already been shown to the user.
func (b *Binder) Submit(ctx context.Context, page Page, form ElementID, values url.Values) error {
	if !page.Has(form) {
		return fmt.Errorf("%w: %s on %s", ErrNotBound, form, page.Name)
	}

	var action func(context.Context) error
	switch form {
	case FormRegister:
		action = func(ctx context.Context) error { return b.register(ctx, page, values) }
	case FormLogin:
		action = func(ctx context.Context) error { return b.login(ctx, page, values) }
	case FormDeposit:
		action = func(ctx context.Context) error {
			return b.moveMoney(ctx, page, form, "Deposit successful.", func() error {
				_, err := b.bank.Deposit(ctx, values.Get("amount"))
				return err
			})
		}
	case FormWithdraw:
		action = func(ctx context.Context) error {
			return b.moveMoney(ctx, page, form, "Withdraw successful.", func() error {
				_, err := b.bank.Withdraw(ctx, values.Get("amount"))
				return err
			})
		}
	case FormTransfer:
		action = func(ctx context.Context) error {
			return b.moveMoney(ctx, page, form, "Transfer successful.", func() error {
				_, err := b.bank.Transfer(ctx, values.Get("to_account_id"), values.Get("amount"))
				return err
			})
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownControl, form)
	}

	return b.withDisabled(ctx, form, action)
}

// Click handles a button press.
func (b *Binder) Click(ctx context.Context, page Page, button ElementID) error {
	if !page.Has(button) {
		return fmt.Errorf("%w: %s on %s", ErrNotBound, button, page.Name)
	}

	switch button {
	case BtnLogout:
		return b.logout(ctx, page)
	case BtnLoadAdminTx:
		return b.withDisabled(ctx, button, func(ctx context.Context) error {
			if _, err := b.LoadAdminTransactions(ctx, page); err != nil {
				b.showMsg(page, err.Error(), KindDanger)
				return err
			}
			b.showMsg(page, "Admin transactions loaded.", KindSuccess)
			return nil
		})
	default:
		return fmt.Errorf("%w: %s", ErrUnknownControl, button)
	}
}

func (b *Binder) register(ctx context.Context, page Page, values url.Values) error {
	_, err := b.bank.Register(ctx, models.RegisterRequest{
		Username:  values.Get("username"),
		Email:     values.Get("email"),
		FirstName: values.Get("first_name"),
		LastName:  values.Get("last_name"),
		Password:  values.Get("password"),
	})
	if err != nil {
		b.showMsg(page, err.Error(), KindDanger)
		return err
	}

	b.showMsg(page, "Registered successfully! Redirecting to login...", KindSuccess)
	b.display.ResetForm(FormRegister)
	b.redirectAfter(ctx, b.delays.Register, LoginPage.Path)
	return nil
}

func (b *Binder) login(ctx context.Context, page Page, values url.Values) error {
	if _, err := b.bank.Login(ctx, values.Get("username"), values.Get("password")); err != nil {
		b.showMsg(page, err.Error(), KindDanger)
		return err
	}

	b.showMsg(page, "Login successful! Redirecting...", KindSuccess)
	b.redirectAfter(ctx, b.delays.Login, AccountPage.Path)
	return nil
}

func (b *Binder) logout(ctx context.Context, page Page) error {
	if err := b.bank.Logout(ctx); err != nil {
		b.showMsg(page, err.Error(), KindDanger)
		return err
	}
	b.refreshIndicator(ctx, page)
	b.showMsg(page, "Logged out.", KindInfo)
	b.redirectAfter(ctx, b.delays.Logout, LoginPage.Path)
	return nil
}

// moveMoney runs a balance-changing call and then refreshes the account and
// transaction views. A failed transaction refresh is ignored so it cannot hide
// the success message.
func (b *Binder) moveMoney(ctx context.Context, page Page, form ElementID, success string, call func() error) error {
	if err := call(); err != nil {
		b.showMsg(page, err.Error(), KindDanger)
		return err
	}
	b.showMsg(page, success, KindSuccess)

	if _, err := b.LoadAccount(ctx, page); err != nil {
		b.showMsg(page, err.Error(), KindDanger)
		return err
	}
	if _, err := b.LoadTransactions(ctx, page); err != nil {
		b.logger.Debug("transaction refresh failed", zap.Error(err))
	}

	b.display.ResetForm(form)
	return nil
}

func (b *Binder) withDisabled(ctx context.Context, control ElementID, fn func(context.Context) error) error {
	b.display.SetDisabled(control, true)
	defer b.display.SetDisabled(control, false)
	return fn(ctx)
}

func (b *Binder) redirectAfter(ctx context.Context, delay time.Duration, path string) {
	if err := b.sleep(ctx, delay); err != nil {
		b.logger.Debug("redirect cancelled", zap.String("path", path), zap.Error(err))
		return
	}
	b.display.Redirect(path)
}

func (b *Binder) refreshIndicator(ctx context.Context, page Page) {
	indicator := "No"
	if b.session.LoggedIn(ctx) {
		indicator = "Yes"
	}
	b.setText(page, ElemLoggedIn, indicator)
}

func (b *Binder) setText(page Page, id ElementID, text string) {
	if page.Has(id) {
		b.display.SetText(id, text)
	}
}

func (b *Binder) showMsg(page Page, text string, kind MsgKind) {
	if page.Has(ElemMsg) {
		b.display.ShowMsg(text, kind)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
