package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"invoicer/internal/catalog"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/internal/session"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Compose an invoice draft interactively",
	Long: `Open an invoice draft and edit it one command per line. The draft
starts with a single empty line item; totals are recomputed after every
change. The draft is discarded when the session ends.

Type help inside the session for the list of commands.`,
	Example: `  # Start a draft for client 3
  invoicer draft --client 3

  # Bill in euros with German number formatting
  invoicer draft --currency EUR --locale de-DE

  # Run a scripted session
  printf 'set-item #1 price 100\ntotals\n' | invoicer draft`,
	Args: cobra.NoArgs,
	RunE: runDraft,
}

func init() {
	rootCmd.AddCommand(draftCmd)

	draftCmd.Flags().String("client", "", "Client to bill (e.g. 3 or CLI-003)")
	draftCmd.Flags().String("currency", "", "ISO 4217 currency code (default: INVOICER_CURRENCY)")
	draftCmd.Flags().String("locale", "", "BCP 47 locale for amounts (default: INVOICER_LOCALE)")
}

func runDraft(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("draft")

	clientID, _ := cmd.Flags().GetString("client")
	currencyCode, _ := cmd.Flags().GetString("currency")
	locale, _ := cmd.Flags().GetString("locale")

	formatter, err := newFormatter(currencyCode, locale)
	if err != nil {
		return err
	}

	directory := catalog.New()
	var opts []invoice.DraftOption
	if clientID != "" {
		client, ok := directory.Client(clientID)
		if !ok {
			return fmt.Errorf("unknown client %q, run 'invoicer clients' to list them", clientID)
		}
		opts = append(opts, invoice.WithClient(client.ID))
	}

	sessionOpts := []session.Option{
		session.WithDirectory(directory),
		session.WithFormatter(formatter),
		session.WithDraft(invoice.NewDraft(opts...)),
	}
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if interactive {
		sessionOpts = append(sessionOpts, session.WithPrompt("invoicer> "))
		fmt.Fprintln(cmd.OutOrStdout(), "Invoice draft opened. Type help for commands, quit to leave.")
	}

	log.Info().
		Str("client", clientID).
		Str("currency", formatter.Currency()).
		Bool("interactive", interactive).
		Msg("Starting draft session")

	ctx, cancel := createCommandContext(log)
	defer cancel()

	s := session.New(sessionOpts...)
	if err := s.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("draft session was canceled, draft discarded")
		}
		return fmt.Errorf("draft session failed: %w", err)
	}
	return nil
}
