package ui

// ElementID names a display slot, form or button a page can declare.
type ElementID string

// Display slots.
const (
	ElemMsg         ElementID = "msg"
	ElemAccountID   ElementID = "account_id"
	ElemBalance     ElementID = "balance"
	ElemTxBody      ElementID = "tx_body"
	ElemAdminTxBody ElementID = "admin_tx_body"
	ElemLoggedIn    ElementID = "logged_in"
)

// Forms.
const (
	FormRegister ElementID = "registerForm"
	FormLogin    ElementID = "loginForm"
	FormDeposit  ElementID = "depositForm"
	FormWithdraw ElementID = "withdrawForm"
	FormTransfer ElementID = "transferForm"
)

// Buttons.
const (
	BtnLogout      ElementID = "logoutBtn"
	BtnLoadAdminTx ElementID = "loadAdminTxBtn"
)

// Page declares what a screen contains. Features whose elements are not
// declared stay switched off.
type Page struct {
	Name         string
	Path         string
	RequiresAuth bool
	Elements     []ElementID
}

// Has reports whether the page declares id.
func (p Page) Has(id ElementID) bool {
	for _, el := range p.Elements {
		if el == id {
			return true
		}
	}
	return false
}

// layout is shared by every page.
var layout = []ElementID{ElemMsg, ElemLoggedIn, BtnLogout}

func withLayout(ids ...ElementID) []ElementID {
	out := make([]ElementID, 0, len(layout)+len(ids))
	out = append(out, layout...)
	return append(out, ids...)
}

// Known pages.
var (
	HomePage = Page{Name: "home", Path: "/", Elements: withLayout()}

	LoginPage = Page{Name: "login", Path: "/login", Elements: withLayout(FormLogin)}

	RegisterPage = Page{Name: "register", Path: "/register", Elements: withLayout(FormRegister)}

	AccountPage = Page{
		Name:         "account",
		Path:         "/account",
		RequiresAuth: true,
		Elements:     withLayout(ElemAccountID, ElemBalance),
	}

	DepositPage = Page{
		Name:         "deposit",
		Path:         "/deposit",
		RequiresAuth: true,
		Elements:     withLayout(ElemAccountID, ElemBalance, FormDeposit),
	}

	WithdrawPage = Page{
		Name:         "withdraw",
		Path:         "/withdraw",
		RequiresAuth: true,
		Elements:     withLayout(ElemAccountID, ElemBalance, FormWithdraw),
	}

	TransferPage = Page{
		Name:         "transfer",
		Path:         "/transfer",
		RequiresAuth: true,
		Elements:     withLayout(ElemAccountID, ElemBalance, FormTransfer),
	}

	TransactionsPage = Page{
		Name:         "transactions",
		Path:         "/transactions",
		RequiresAuth: true,
		Elements:     withLayout(ElemTxBody),
	}

	AdminPage = Page{
		Name:         "admin",
		Path:         "/admin",
		RequiresAuth: true,
		Elements:     withLayout(ElemAdminTxBody, BtnLoadAdminTx),
	}
)

// Pages lists every known page.
var Pages = []Page{
	HomePage,
	LoginPage,
	RegisterPage,
	AccountPage,
	DepositPage,
	WithdrawPage,
	TransferPage,
	TransactionsPage,
	AdminPage,
}

// PageByPath finds a known page.
func PageByPath(path string) (Page, bool) {
	for _, p := range Pages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}
