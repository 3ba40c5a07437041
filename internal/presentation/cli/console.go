// Package cli is the counter terminal: a line-oriented front end over a
// form session.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sangkips/salay-pos/internal/application/session"
	"github.com/sangkips/salay-pos/internal/domain/draft"
	"github.com/sangkips/salay-pos/internal/domain/entity"
	"github.com/sangkips/salay-pos/internal/receipt"
	"github.com/sangkips/salay-pos/pkg/money"
)

// ErrQuit is returned by Execute for the quit command.
var ErrQuit = errors.New("quit")

const prompt = "pos> "

const helpText = `Commands:
  customer <name>                 set the customer name
  contact <phone or e-mail>       set the contact
  job <description>               set the overall job description
  add [desc | qty | price]        add a line item
  set <n> desc|qty|price <value>  change a field of line n
  rm <n>                          remove line n
  paid <amount>                   set the amount paid
  show                            show the draft and its totals
  save                            save the transaction
  clear                           start over
  history [YYYY-MM-DD]            list a day's transactions
  receipt [id]                    show a receipt (the last saved one by default)
  help                            show this help
  quit                            leave
`

// Console executes commands against a session.
type Console struct {
	session *session.Session
	out     io.Writer
	header  entity.ReceiptHeader
	loc     *time.Location
	width   int
	timeout time.Duration
}

// NewConsole creates a console writing to out. Receipts are laid out width
// characters wide; store calls are bounded by timeout when it is positive.
func NewConsole(s *session.Session, out io.Writer, header entity.ReceiptHeader, loc *time.Location, width int, timeout time.Duration) *Console {
	if width <= 0 {
		width = 40
	}
	if loc == nil {
		loc = time.Local
	}
	return &Console{session: s, out: out, header: header, loc: loc, width: width, timeout: timeout}
}

// Run reads commands from in until quit or end of input.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(c.out, prompt)
	for scanner.Scan() {
		err := c.Execute(ctx, scanner.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprint(c.out, prompt)
	}
	return scanner.Err()
}

// Execute runs one command line. Unknown commands and bad arguments are
// reported as errors; the session keeps its state.
func (c *Console) Execute(ctx context.Context, line string) error {
	cmd, rest := splitCommand(line)
	switch cmd {
	case "":
		return nil
	case "customer":
		c.session.SetCustomerName(rest)
		return nil
	case "contact":
		c.session.SetContact(rest)
		return nil
	case "job":
		c.session.SetDescription(rest)
		return nil
	case "add":
		return c.add(rest)
	case "set":
		return c.set(rest)
	case "rm", "remove":
		return c.remove(rest)
	case "paid":
		c.session.SetAmountPaid(rest)
		c.printTotals()
		return nil
	case "show":
		c.show()
		return nil
	case "save":
		return c.save(ctx)
	case "clear":
		c.session.Clear()
		fmt.Fprintln(c.out, "Form cleared.")
		return nil
	case "history":
		return c.history(ctx, rest)
	case "receipt":
		return c.receipt(ctx, rest)
	case "help", "?":
		fmt.Fprint(c.out, helpText)
		return nil
	case "quit", "exit":
		return ErrQuit
	}
	return fmt.Errorf("unknown command %q (try help)", cmd)
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(rest)
}

func (c *Console) add(args string) error {
	var item draft.LineItem
	if args != "" {
		parts := strings.Split(args, "|")
		if len(parts) > 3 {
			return errors.New("usage: add [desc | qty | price]")
		}
		fields := []*string{&item.Description, &item.Quantity, &item.UnitPrice}
		for i, p := range parts {
			*fields[i] = strings.TrimSpace(p)
		}
	}
	c.session.AddLineItem(item)
	c.show()
	return nil
}

// row resolves a 1-based line number.
func (c *Console) row(arg string) (draft.Handle, error) {
	n, err := strconv.Atoi(arg)
	handles := c.session.Handles()
	if err != nil || n < 1 || n > len(handles) {
		return 0, fmt.Errorf("no line %q", arg)
	}
	return handles[n-1], nil
}

func (c *Console) set(args string) error {
	parts := strings.SplitN(args, " ", 3)
	if len(parts) < 2 {
		return errors.New("usage: set <n> desc|qty|price <value>")
	}
	h, err := c.row(parts[0])
	if err != nil {
		return err
	}
	field, ok := draft.ParseField(parts[1])
	if !ok {
		return fmt.Errorf("unknown field %q", parts[1])
	}
	value := ""
	if len(parts) == 3 {
		value = strings.TrimSpace(parts[2])
	}
	if err := c.session.UpdateLineItem(h, field, value); err != nil {
		return err
	}
	c.show()
	return nil
}

func (c *Console) remove(arg string) error {
	h, err := c.row(arg)
	if err != nil {
		return err
	}
	if err := c.session.RemoveLineItem(h); err != nil {
		return err
	}
	c.show()
	return nil
}

func (c *Console) show() {
	v := c.session.Snapshot()
	d := v.Draft

	fmt.Fprintf(c.out, "Customer: %s\n", d.CustomerName)
	if d.Contact != "" {
		fmt.Fprintf(c.out, "Contact:  %s\n", d.Contact)
	}
	fmt.Fprintf(c.out, "Job:      %s\n", d.Description)

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tDescription\tQty\tPrice\tTotal\t")
	for i, it := range d.Items() {
		line := it.Parse()
		mark := ""
		if !line.Included() {
			mark = " (skipped)"
		}
		fmt.Fprintf(tw, "%d\t%s%s\t%s\t%s\t%s\t\n", i+1, it.Description, mark, it.Quantity, it.UnitPrice,
			money.Grouped(draft.ComputeLineTotal(line)))
	}
	_ = tw.Flush()

	c.printTotals()
	if v.FormError != "" {
		fmt.Fprintf(c.out, "! %s\n", v.FormError)
	}
	if v.Status.Text != "" {
		fmt.Fprintln(c.out, v.Status.Text)
	}
}

func (c *Console) printTotals() {
	t := c.session.Totals()
	balance := money.Peso(t.Balance)
	if t.Accent() {
		balance += " (paid)"
	}
	fmt.Fprintf(c.out, "Total %s  Paid %s  Balance %s\n",
		money.Peso(t.TotalAmount), money.Peso(t.AmountPaid), balance)
}

func (c *Console) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func (c *Console) save(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	txn, err := c.session.Submit(ctx)
	if err != nil {
		v := c.session.Snapshot()
		if v.Status.Text != "" {
			fmt.Fprintln(c.out, v.Status.Text)
		}
		if v.FormError != "" {
			fmt.Fprintf(c.out, "! %s\n", v.FormError)
			return nil
		}
		return err
	}

	fmt.Fprintln(c.out, session.StatusSaved)
	c.printReceipt(txn)
	return nil
}

func (c *Console) history(ctx context.Context, date string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	view, _ := c.session.LoadHistory(ctx, date)
	if view.Date != "" {
		fmt.Fprintf(c.out, "%s  total %s  paid %s\n", view.Date, view.DailyTotal, view.DailyPaid)
	}
	if view.Message != "" {
		fmt.Fprintln(c.out, view.Message)
		return nil
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, r := range view.Rows {
		fmt.Fprintf(tw, "#%s\t%s\t%s\t%s\t%s\t[%s]\n", r.ReceiptNo, r.Time, r.Customer, r.Total, r.Balance, r.Chip)
	}
	return tw.Flush()
}

func (c *Console) receipt(ctx context.Context, arg string) error {
	if arg == "" {
		txn := c.session.LastReceipt()
		if txn == nil {
			return errors.New("no transaction saved yet; use receipt <id>")
		}
		c.printReceipt(txn)
		return nil
	}

	id, err := strconv.ParseUint(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id == 0 {
		return fmt.Errorf("bad receipt number %q", arg)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	txn, err := c.session.Fetch(ctx, uint(id))
	if err != nil {
		return err
	}
	c.printReceipt(txn)
	return nil
}

func (c *Console) printReceipt(txn *entity.Transaction) {
	r := receipt.FromRecord(txn, c.header, c.loc)
	fmt.Fprint(c.out, receipt.RenderText(r, c.width))
}
