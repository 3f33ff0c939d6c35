package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"go.uber.org/zap"
)

var textLabels = map[ElementID]string{
	ElemLoggedIn:  "Logged in",
	ElemAccountID: "Account",
	ElemBalance:   "Balance",
}

var msgMarks = map[MsgKind]string{
	KindInfo:    "\033[36m•\033[0m",
	KindSuccess: "\033[32m✓\033[0m",
	KindDanger:  "\033[31m✗\033[0m",
}

// TerminalDisplay renders a page to a terminal. Messages and redirects are printed
// as they happen; text slots and tables are buffered until Flush.
type TerminalDisplay struct {
	mu       sync.Mutex
	out      io.Writer
	errOut   io.Writer
	plain    bool
	commands map[string]string
	logger   *zap.Logger

	texts     map[ElementID]string
	rows      map[ElementID][][]string
	order     []ElementID
	lastKind  MsgKind
	redirects []string
}

// NewTerminalDisplay writes the view to out and danger messages to errOut. commands
// maps page paths to the CLI invocation shown on redirect.
func NewTerminalDisplay(out, errOut io.Writer, commands map[string]string, plain bool, logger *zap.Logger) *TerminalDisplay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TerminalDisplay{
		out:      out,
		errOut:   errOut,
		plain:    plain,
		commands: commands,
		logger:   logger,
		texts:    make(map[ElementID]string),
		rows:     make(map[ElementID][][]string),
	}
}

// HideMsg resets the message state.
func (d *TerminalDisplay) HideMsg() {
	d.mu.Lock()
	d.lastKind = ""
	d.mu.Unlock()
}

// ShowMsg prints text with a kind marker.
func (d *TerminalDisplay) ShowMsg(text string, kind MsgKind) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lastKind = kind
	w := d.out
	if kind == KindDanger {
		w = d.errOut
	}
	fmt.Fprintf(w, "%s %s\n", d.mark(kind), text)
}

// SetText buffers a text slot.
func (d *TerminalDisplay) SetText(id ElementID, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.texts[id]; !ok {
		d.order = append(d.order, id)
	}
	d.texts[id] = text
}

// SetRows buffers a table body, replacing previous rows.
func (d *TerminalDisplay) SetRows(id ElementID, rows [][]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.rows[id]; !ok {
		d.order = append(d.order, id)
	}
	d.rows[id] = rows
}

// SetDisabled has no visible effect in a terminal.
func (d *TerminalDisplay) SetDisabled(control ElementID, disabled bool) {
	d.logger.Debug("control state", zap.String("control", string(control)), zap.Bool("disabled", disabled))
}

// ResetForm has no visible effect in a terminal.
func (d *TerminalDisplay) ResetForm(form ElementID) {
	d.logger.Debug("form reset", zap.String("form", string(form)))
}

// Redirect prints the command that opens the target page.
func (d *TerminalDisplay) Redirect(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.redirects = append(d.redirects, path)
	next := path
	if cmd, ok := d.commands[path]; ok {
		next = cmd
	}
	fmt.Fprintf(d.out, "%s next: %s\n", d.arrow(), next)
}

// Redirects returns the paths redirected to so far.
func (d *TerminalDisplay) Redirects() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.redirects...)
}

// Failed reports whether the last message shown was a danger message.
func (d *TerminalDisplay) Failed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastKind == KindDanger
}

// Flush writes buffered slots in the order they were first set, then clears them.
func (d *TerminalDisplay) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	tw := tabwriter.NewWriter(d.out, 0, 4, 2, ' ', 0)
	for _, id := range d.order {
		if text, ok := d.texts[id]; ok {
			label, ok := textLabels[id]
			if !ok {
				label = string(id)
			}
			fmt.Fprintf(tw, "%s:\t%s\n", label, text)
			continue
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if err := d.writeTable(id, d.rows[id]); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	d.order = nil
	d.texts = make(map[ElementID]string)
	d.rows = make(map[ElementID][][]string)
	return nil
}

func (d *TerminalDisplay) writeTable(id ElementID, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(d.out, "(no transactions)")
		return err
	}

	tw := tabwriter.NewWriter(d.out, 0, 4, 2, ' ', 0)
	if headers, ok := TableHeaders[id]; ok {
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func (d *TerminalDisplay) mark(kind MsgKind) string {
	if d.plain {
		return "[" + string(kind) + "]"
	}
	if m, ok := msgMarks[kind]; ok {
		return m
	}
	return "-"
}

func (d *TerminalDisplay) arrow() string {
	if d.plain {
		return "->"
	}
	return "→"
}
