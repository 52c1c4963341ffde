package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"invoicer/internal/catalog"
	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "List the invoice history",
	Long: `List issued invoices with their client, amount and status, followed
by the revenue summary. Revenue counts paid invoices only; pending includes
overdue invoices.`,
	Example: `  # Every invoice
  invoicer invoices

  # Only overdue invoices
  invoicer invoices --status overdue`,
	Args: cobra.NoArgs,
	RunE: runInvoices,
}

func init() {
	rootCmd.AddCommand(invoicesCmd)

	invoicesCmd.Flags().String("status", "", "Filter by status (paid, pending, overdue)")
	invoicesCmd.Flags().Bool("json", false, "Print JSON instead of a table")
}

func runInvoices(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices")

	statusFlag, _ := cmd.Flags().GetString("status")
	asJSON, _ := cmd.Flags().GetBool("json")

	var status models.InvoiceStatus
	if statusFlag != "" {
		s, err := catalog.ParseStatus(statusFlag)
		if err != nil {
			return err
		}
		status = s
	}

	formatter, err := newFormatter("", "")
	if err != nil {
		return err
	}

	c := catalog.New()
	invoices := c.InvoicesByStatus(status)
	summary := c.InvoiceSummary()

	log.Debug().
		Str("status", string(status)).
		Int("invoices", len(invoices)).
		Msg("Listing invoices")

	if asJSON {
		return outputJSON(struct {
			Invoices []models.Invoice       `json:"invoices"`
			Summary  catalog.InvoiceSummary `json:"summary"`
		}{invoices, summary}, "", log)
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INVOICE\tCLIENT\tAMOUNT\tSTATUS\tDATE\tDUE")
	for _, inv := range invoices {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			inv.ID, inv.Client, formatter.Format(inv.Amount), inv.Status.Title(),
			inv.IssueDate.Format("2006-01-02"), inv.DueDate.Format("2006-01-02"))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write invoice list: %w", err)
	}

	fmt.Fprintf(out, "\n%d invoices, %d paid, %d pending, %s revenue\n",
		summary.TotalInvoices, summary.PaidInvoices, summary.PendingInvoices,
		formatter.Format(summary.TotalRevenue))
	return nil
}
