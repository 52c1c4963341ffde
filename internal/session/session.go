// Package session runs an interactive invoice draft. A session opens a
// fresh draft, applies one command per input line and drops the draft when
// the input ends.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/pkg/services"
)

var (
	// ErrUnknownCommand is returned for an unrecognized command word.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnknownField is returned when set-item or set-payment names a
	// field that does not exist.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownEntry is returned when a reference matches no line item or
	// payment.
	ErrUnknownEntry = errors.New("no such entry")

	// ErrUnknownClient is returned when the directory has no such client.
	ErrUnknownClient = errors.New("unknown client")

	// ErrUsage is returned when a command has the wrong arguments.
	ErrUsage = errors.New("usage")
)

const helpText = `Commands:
  add-item                                append a line item
  remove-item <ref>                       remove a line item (the last one is kept)
  set-item <ref> <field> <value...>       fields: name price quantity discount tax unit time description
  add-payment                             append a payment
  remove-payment <ref>                    remove a payment
  set-payment <ref> <field> <value...>    fields: type amount reference
  client <id>                             select the billed client
  paid on|off                             mark the invoice as paid
  show                                    list items and payments
  totals                                  print the invoice summary
  validate                                check field ranges
  help                                    print this help
  quit                                    discard the draft and leave
A <ref> is an entry ID or #n for the n-th entry.`

// Session owns one invoice draft.
type Session struct {
	draft     *invoice.Draft
	directory services.ClientDirectory
	formatter *invoice.Formatter
	validator *invoice.Validator
	prompt    string
	log       zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithDirectory checks client selections against dir.
func WithDirectory(dir services.ClientDirectory) Option {
	return func(s *Session) { s.directory = dir }
}

// WithFormatter sets the currency formatter used for output.
func WithFormatter(f *invoice.Formatter) Option {
	return func(s *Session) {
		if f != nil {
			s.formatter = f
		}
	}
}

// WithDraft replaces the initial draft.
func WithDraft(d *invoice.Draft) Option {
	return func(s *Session) {
		if d != nil {
			s.draft = d
		}
	}
}

// WithPrompt prints prompt before reading each line.
func WithPrompt(prompt string) Option {
	return func(s *Session) { s.prompt = prompt }
}

// New opens a session on a fresh draft.
func New(opts ...Option) *Session {
	s := &Session{
		formatter: invoice.DefaultFormatter(),
		validator: invoice.NewValidator(),
		log:       logger.WithComponent("session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.draft == nil {
		s.draft = invoice.NewDraft()
	}
	return s
}

// Draft returns the draft being edited.
func (s *Session) Draft() *invoice.Draft {
	return s.draft
}

// Run reads commands from in until quit, end of input or cancellation.
// Command errors are reported on out and do not end the session.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s.log.Info().Msg("Draft session opened")
	defer s.log.Info().Msg("Draft session closed, draft discarded")

	done := make(chan struct{})
	defer close(done)
	lines := make(chan string)
	var readErr error

	// The reader may stay blocked on in after Run returns; it exits on its
	// next line.
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr = scanner.Err()
	}()

	commands := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt != "" {
			fmt.Fprint(out, s.prompt)
		}

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			if readErr != nil {
				return fmt.Errorf("read commands: %w", readErr)
			}
			break
		}

		quit, err := s.Exec(line, out)
		if err != nil {
			s.log.Debug().Err(err).Str("line", line).Msg("Command rejected")
			fmt.Fprintf(out, "error: %v\n", err)
		} else {
			commands++
		}
		if quit {
			break
		}
	}

	s.log.Debug().Int("commands", commands).Msg("Session input finished")
	return nil
}

// Exec applies a single command line. It reports whether the line asked
// to end the session.
func (s *Session) Exec(line string, out io.Writer) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help", "?":
		fmt.Fprintln(out, helpText)
		return false, nil
	case "add-item":
		id := s.draft.AddLineItem()
		fmt.Fprintf(out, "added item %s\n", id)
		return false, nil
	case "remove-item":
		return false, s.removeItem(args, out)
	case "set-item":
		return false, s.setItem(args, out)
	case "add-payment":
		id := s.draft.AddPayment()
		fmt.Fprintf(out, "added payment %s\n", id)
		return false, nil
	case "remove-payment":
		return false, s.removePayment(args, out)
	case "set-payment":
		return false, s.setPayment(args, out)
	case "client":
		return false, s.selectClient(args, out)
	case "paid":
		return false, s.markPaid(args, out)
	case "show":
		s.show(out)
		return false, nil
	case "totals":
		s.printTotals(out)
		return false, nil
	case "validate":
		s.validate(out)
		return false, nil
	}
	return false, fmt.Errorf("%w %q (try help)", ErrUnknownCommand, fields[0])
}

func (s *Session) removeItem(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: remove-item <ref>", ErrUsage)
	}
	id, err := s.itemRef(args[0])
	if err != nil {
		return err
	}
	if s.draft.RemoveLineItem(id) {
		fmt.Fprintf(out, "removed item %s\n", id)
	} else {
		fmt.Fprintf(out, "kept item %s: a draft needs at least one line item\n", id)
	}
	return nil
}

func (s *Session) setItem(args []string, out io.Writer) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: set-item <ref> <field> <value...>", ErrUsage)
	}
	id, err := s.itemRef(args[0])
	if err != nil {
		return err
	}
	update, err := itemUpdate(strings.ToLower(args[1]), strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	s.draft.UpdateLineItem(id, update)

	item, _ := s.draft.Item(id)
	fmt.Fprintf(out, "item %s %s = %s\n", id, update.Field(), itemFieldValue(item, update.Field()))
	return nil
}

func (s *Session) removePayment(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: remove-payment <ref>", ErrUsage)
	}
	id, err := s.paymentRef(args[0])
	if err != nil {
		return err
	}
	s.draft.RemovePayment(id)
	fmt.Fprintf(out, "removed payment %s\n", id)
	return nil
}

func (s *Session) setPayment(args []string, out io.Writer) error {
	if len(args) < 3 {
		if len(args) == 2 && strings.EqualFold(args[1], "reference") {
			// Clearing the reference.
			args = append(args, "")
		} else {
			return fmt.Errorf("%w: set-payment <ref> <field> <value...>", ErrUsage)
		}
	}
	id, err := s.paymentRef(args[0])
	if err != nil {
		return err
	}
	update, err := paymentUpdate(strings.ToLower(args[1]), strings.TrimSpace(strings.Join(args[2:], " ")))
	if err != nil {
		return err
	}
	s.draft.UpdatePayment(id, update)

	p, _ := s.draft.Payment(id)
	fmt.Fprintf(out, "payment %s %s = %s\n", id, update.Field(), s.paymentFieldValue(p, update.Field()))
	return nil
}

func (s *Session) selectClient(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: client <id>", ErrUsage)
	}
	if s.directory == nil {
		s.draft.SelectClient(args[0])
		fmt.Fprintf(out, "client %s selected\n", args[0])
		return nil
	}

	client, ok := s.directory.Client(args[0])
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownClient, args[0])
	}
	s.draft.SelectClient(client.ID)
	fmt.Fprintf(out, "client %s selected: %s - %s\n", client.ID, client.Name, client.Email)
	return nil
}

func (s *Session) markPaid(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: paid on|off", ErrUsage)
	}
	switch strings.ToLower(args[0]) {
	case "on", "yes", "true", "1":
		s.draft.MarkPaid(true)
	case "off", "no", "false", "0":
		s.draft.MarkPaid(false)
	default:
		return fmt.Errorf("%w: paid on|off", ErrUsage)
	}
	if s.draft.Paid() {
		fmt.Fprintln(out, "invoice marked as paid")
	} else {
		fmt.Fprintln(out, "invoice marked as unpaid")
	}
	return nil
}

func (s *Session) show(out io.Writer) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "#\tID\tNAME\tPRICE\tQTY\tDISC %\tTAX %\tTIME\tTOTAL")
	for i, item := range s.draft.Items() {
		b := invoice.ItemBreakdown(item)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\t%d %s\t%s\n",
			i+1, item.ID, item.Name,
			s.formatter.Format(item.Price), item.Quantity,
			item.Discount.String(), item.Tax.String(),
			item.Time.Value, item.Time.Unit,
			s.formatter.Format(b.Total))
	}

	payments := s.draft.Payments()
	if len(payments) == 0 {
		return
	}
	fmt.Fprintln(tw, "")
	fmt.Fprintln(tw, "#\tID\tTYPE\tAMOUNT\tREFERENCE")
	for i, p := range payments {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, p.ID, p.Type, s.formatter.Format(p.Amount), p.Reference)
	}
}

func (s *Session) printTotals(out io.Writer) {
	t := s.draft.Totals()

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	defer tw.Flush()

	fmt.Fprintf(tw, "Subtotal\t%s\t\n", s.formatter.Format(t.Subtotal))
	fmt.Fprintf(tw, "Total Discount\t%s\t\n", s.formatter.Format(t.TotalDiscount.Neg()))
	fmt.Fprintf(tw, "Total Tax\t%s\t\n", s.formatter.Format(t.TotalTax))
	fmt.Fprintf(tw, "Total Amount\t%s\t\n", s.formatter.Format(t.TotalAmount))
	if len(s.draft.Payments()) > 0 {
		fmt.Fprintf(tw, "Total Paid\t%s\t\n", s.formatter.Format(t.TotalPayments))
		fmt.Fprintf(tw, "Balance\t%s\t\n", s.formatter.Format(t.Balance))
	}
}

func (s *Session) validate(out io.Writer) {
	err := s.validator.ValidateDraft(s.draft)
	if err == nil {
		fmt.Fprintln(out, "draft is valid")
		return
	}

	var errs invoice.ValidationErrors
	if errors.As(err, &errs) {
		for _, ve := range errs {
			fmt.Fprintf(out, "invalid: %s\n", ve.Error())
		}
		return
	}
	fmt.Fprintf(out, "invalid: %v\n", err)
}

// itemRef resolves an ID or a 1-based "#n" position to a line item ID.
func (s *Session) itemRef(ref string) (string, error) {
	items := s.draft.Items()
	if n, ok := position(ref); ok {
		if n > len(items) {
			return "", fmt.Errorf("%w: item %s (draft has %d)", ErrUnknownEntry, ref, len(items))
		}
		return items[n-1].ID, nil
	}
	if _, ok := s.draft.Item(ref); !ok {
		return "", fmt.Errorf("%w: item %s", ErrUnknownEntry, ref)
	}
	return ref, nil
}

func (s *Session) paymentRef(ref string) (string, error) {
	payments := s.draft.Payments()
	if n, ok := position(ref); ok {
		if n > len(payments) {
			return "", fmt.Errorf("%w: payment %s (draft has %d)", ErrUnknownEntry, ref, len(payments))
		}
		return payments[n-1].ID, nil
	}
	if _, ok := s.draft.Payment(ref); !ok {
		return "", fmt.Errorf("%w: payment %s", ErrUnknownEntry, ref)
	}
	return ref, nil
}

func position(ref string) (int, bool) {
	if !strings.HasPrefix(ref, "#") {
		return 0, false
	}
	n, err := strconv.Atoi(ref[1:])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
