package ui

import (
	"strconv"

	"bankportal/frontend/apps/bankctl/internal/models"
)

// MsgKind styles the status message.
type MsgKind string

const (
	KindInfo    MsgKind = "info"
	KindSuccess MsgKind = "success"
	KindDanger  MsgKind = "danger"
)

// Display is where the binder writes. Implementations only receive ids the
// page declared.
type Display interface {
	HideMsg()
	ShowMsg(text string, kind MsgKind)
	SetText(id ElementID, text string)
	SetRows(id ElementID, rows [][]string)
	SetDisabled(control ElementID, disabled bool)
	ResetForm(form ElementID)
	Redirect(path string)
}

// TableHeaders holds the column titles of the transaction tables.
var TableHeaders = map[ElementID][]string{
	ElemTxBody:      {"ID", "TYPE", "AMOUNT", "CREATED AT"},
	ElemAdminTxBody: {"ID", "ACCOUNT", "TYPE", "AMOUNT", "CREATED AT"},
}

func transactionRows(txs []models.Transaction) [][]string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			strconv.FormatInt(tx.ID, 10),
			tx.Type,
			tx.Amount.String(),
			tx.CreatedAt,
		})
	}
	return rows
}

func adminTransactionRows(txs []models.Transaction) [][]string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			strconv.FormatInt(tx.ID, 10),
			strconv.FormatInt(tx.AccountID, 10),
			tx.Type,
			tx.Amount.String(),
			tx.CreatedAt,
		})
	}
	return rows
}
