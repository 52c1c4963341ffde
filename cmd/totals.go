package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"invoicer/internal/catalog"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/internal/render"
	"invoicer/pkg/models"
)

var totalsCmd = &cobra.Command{
	Use:   "totals [draft-file]",
	Short: "Compute the totals of a JSON or YAML invoice draft",
	Long: `Load an invoice draft document and print its line item breakdown and
totals as JSON.

The format follows the file extension (.json, .yaml or .yml). Numbers may
be written as numbers or strings; values that do not parse take the form
defaults (0 for amounts and percentages, 1 for quantities and time).
Unknown time units and payment types are rejected.`,
	Example: `  # Print the totals of a draft
  invoicer totals draft.yaml

  # Save the summary to a file
  invoicer totals draft.json -o summary.json

  # Fail when a field is out of range
  invoicer totals draft.yaml --validate

  # Also print the invoice as a PDF
  invoicer totals draft.yaml --pdf invoice.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runTotals,
}

// TotalsOutput is the JSON document printed by the totals command.
type TotalsOutput struct {
	Summary   invoice.Summary `json:"summary"`
	Formatted FormattedTotals `json:"formatted"`
	Problems  []string        `json:"validation_errors,omitempty"`
	Metadata  TotalsMetadata  `json:"metadata"`
}

// FormattedTotals holds the totals as display strings.
type FormattedTotals struct {
	Subtotal      string `json:"subtotal"`
	TotalDiscount string `json:"total_discount"`
	TotalTax      string `json:"total_tax"`
	TotalAmount   string `json:"total_amount"`
	TotalPayments string `json:"total_payments"`
	Balance       string `json:"balance"`
}

// TotalsMetadata describes the processed document.
type TotalsMetadata struct {
	FileName    string    `json:"file_name"`
	Currency    string    `json:"currency"`
	ProcessedAt time.Time `json:"processed_at"`
}

func init() {
	rootCmd.AddCommand(totalsCmd)

	totalsCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	totalsCmd.Flags().Bool("validate", false, "Fail when a field is out of range")
	totalsCmd.Flags().String("pdf", "", "Also render the invoice to this PDF file")
	totalsCmd.Flags().String("currency", "", "ISO 4217 currency code (default: INVOICER_CURRENCY)")
	totalsCmd.Flags().String("locale", "", "BCP 47 locale for amounts (default: INVOICER_LOCALE)")
}

func runTotals(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("totals")

	outputPath, _ := cmd.Flags().GetString("output")
	strict, _ := cmd.Flags().GetBool("validate")
	pdfPath, _ := cmd.Flags().GetString("pdf")
	currencyCode, _ := cmd.Flags().GetString("currency")
	locale, _ := cmd.Flags().GetString("locale")

	path := args[0]

	log.Info().
		Str("file", path).
		Str("output", outputPath).
		Bool("validate", strict).
		Msg("Computing draft totals")

	formatter, err := newFormatter(currencyCode, locale)
	if err != nil {
		return err
	}

	doc, err := invoice.LoadDocument(path)
	if err != nil {
		return handleDocumentError(err, path, log)
	}
	draft, err := doc.Draft()
	if err != nil {
		return handleDocumentError(err, path, log)
	}

	var problems []string
	if verr := invoice.NewValidator().ValidateDraft(draft); verr != nil {
		var errs invoice.ValidationErrors
		if errors.As(verr, &errs) {
			for _, e := range errs {
				problems = append(problems, e.Error())
			}
		}
		if strict {
			log.Error().
				Int("violations", len(problems)).
				Msg("Draft failed validation")
			return fmt.Errorf("draft %s is invalid: %w", path, verr)
		}
		log.Warn().
			Int("violations", len(problems)).
			Msg("Draft has out of range fields, totals computed anyway")
	}

	summary := invoice.Summarize(draft)
	t := summary.Totals

	log.Info().
		Int("items", len(summary.Items)).
		Int("payments", len(summary.Payments)).
		Str("total", t.TotalAmount.StringFixed(2)).
		Str("balance", t.Balance.StringFixed(2)).
		Msg("Draft totals computed")

	output := TotalsOutput{
		Summary: summary,
		Formatted: FormattedTotals{
			Subtotal:      formatter.Format(t.Subtotal),
			TotalDiscount: formatter.Format(t.TotalDiscount),
			TotalTax:      formatter.Format(t.TotalTax),
			TotalAmount:   formatter.Format(t.TotalAmount),
			TotalPayments: formatter.Format(t.TotalPayments),
			Balance:       formatter.Format(t.Balance),
		},
		Problems: problems,
		Metadata: TotalsMetadata{
			FileName:    path,
			Currency:    formatter.Currency(),
			ProcessedAt: time.Now(),
		},
	}

	if pdfPath != "" {
		if err := writePDF(pdfPath, summary, formatter, log); err != nil {
			return err
		}
	}

	return outputJSON(output, outputPath, log)
}

func writePDF(path string, summary invoice.Summary, formatter *invoice.Formatter, log zerolog.Logger) error {
	var client *models.Client
	if summary.ClientID != "" {
		if c, ok := catalog.New().Client(summary.ClientID); ok {
			client = c
		} else {
			log.Warn().Str("client", summary.ClientID).Msg("Client not in directory, printing the ID only")
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PDF file: %w", err)
	}
	if err := render.NewPDFRenderer(formatter).Render(f, summary, client); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write PDF file: %w", err)
	}

	log.Info().Str("pdf_file", path).Msg("Invoice PDF written")
	return nil
}

// handleDocumentError provides user-friendly messages for draft documents
// that cannot be loaded.
func handleDocumentError(err error, path string, log zerolog.Logger) error {
	log.Error().Err(err).Str("file", path).Msg("Failed to load draft document")

	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("draft document not found: %s", path)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("permission denied reading draft document: %s", path)
	case errors.Is(err, invoice.ErrUnsupportedFormat):
		return fmt.Errorf("unsupported draft document %s, use a .json, .yaml or .yml file", path)
	case errors.Is(err, invoice.ErrUnknownTimeUnit):
		return fmt.Errorf("draft document %s has an unknown time unit (use days or hours): %w", path, err)
	case errors.Is(err, invoice.ErrUnknownPaymentType):
		return fmt.Errorf("draft document %s has an unknown payment type: %w", path, err)
	default:
		return fmt.Errorf("failed to load draft document: %w", err)
	}
}
