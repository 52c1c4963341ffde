package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"invoicer/internal/catalog"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/internal/reports"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Summarize revenue and invoice activity for a period",
	Long: `Report on the invoices issued within a period ending at --as-of:
revenue from paid invoices, invoice counts by status, monthly revenue, the
top clients by revenue and the most recent activity.

Periods: 7d, 30d, 90d and 1y.`,
	Example: `  # Last 30 days up to today
  invoicer reports

  # January 2024 as JSON
  invoicer reports --period 30d --as-of 2024-01-31 -o report.json`,
	Args: cobra.NoArgs,
	RunE: runReports,
}

func init() {
	rootCmd.AddCommand(reportsCmd)

	reportsCmd.Flags().String("period", "", "Report period: 7d, 30d, 90d or 1y (default: INVOICER_REPORT_PERIOD)")
	reportsCmd.Flags().String("as-of", "", "Last day of the report (format: YYYY-MM-DD, default: today)")
	reportsCmd.Flags().StringP("output", "o", "", "Write the report as JSON to this file")
	reportsCmd.Flags().Bool("json", false, "Print JSON instead of text")
	reportsCmd.Flags().Int("top", 5, "Number of top clients to list")
}

func runReports(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("reports")

	periodFlag, _ := cmd.Flags().GetString("period")
	asOfFlag, _ := cmd.Flags().GetString("as-of")
	outputPath, _ := cmd.Flags().GetString("output")
	asJSON, _ := cmd.Flags().GetBool("json")
	top, _ := cmd.Flags().GetInt("top")

	if periodFlag == "" {
		periodFlag = appConfig.ReportPeriod
	}
	period, err := reports.ParsePeriod(periodFlag)
	if err != nil {
		return err
	}

	if asOfFlag == "" {
		asOfFlag = appConfig.ReportAsOf
	}
	asOf := time.Now()
	if asOfFlag != "" {
		asOf, err = time.Parse("2006-01-02", asOfFlag)
		if err != nil {
			return fmt.Errorf("invalid --as-of date format. Use YYYY-MM-DD: %w", err)
		}
	}

	formatter, err := newFormatter("", "")
	if err != nil {
		return err
	}

	builder := reports.NewBuilder()
	builder.TopClients = top
	overview := builder.Build(catalog.New().Invoices(), period, asOf)

	log.Info().
		Str("period", string(period)).
		Str("as_of", asOf.Format("2006-01-02")).
		Int("invoices", overview.TotalInvoices).
		Msg("Report generated")

	if asJSON || outputPath != "" {
		return outputJSON(overview, outputPath, log)
	}
	return printOverview(cmd.OutOrStdout(), overview, formatter)
}

func printOverview(out io.Writer, o reports.Overview, f *invoice.Formatter) error {
	fmt.Fprintf(out, "Report %s to %s (%s)\n\n", o.From.Format("2006-01-02"), o.To.Format("2006-01-02"), o.Period)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total revenue\t%s\n", f.Format(o.TotalRevenue))
	fmt.Fprintf(tw, "Invoices\t%d (%d paid, %d pending, %d overdue)\n",
		o.TotalInvoices, o.PaidInvoices, o.PendingInvoices, o.OverdueInvoices)
	fmt.Fprintf(tw, "Average invoice\t%s\n", f.Format(o.AverageInvoiceValue))

	fmt.Fprintln(tw, "\nSTATUS\tCOUNT\tSHARE")
	for _, share := range o.StatusBreakdown {
		fmt.Fprintf(tw, "%s\t%d\t%s%%\n", share.Status.Title(), share.Count, share.Percentage.StringFixed(1))
	}

	if len(o.MonthlyRevenue) > 0 {
		fmt.Fprintln(tw, "\nMONTH\tINVOICES\tREVENUE")
		for _, m := range o.MonthlyRevenue {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", m.Month, m.Invoices, f.Format(m.Revenue))
		}
	}

	if len(o.TopClients) > 0 {
		fmt.Fprintln(tw, "\nCLIENT\tINVOICES\tREVENUE")
		for _, c := range o.TopClients {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", c.Name, c.Invoices, f.Format(c.Revenue))
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if len(o.RecentActivity) > 0 {
		fmt.Fprintln(out, "\nRecent activity:")
		for _, a := range o.RecentActivity {
			fmt.Fprintf(out, "  %s  %s (%s)\n", a.At.Format("2006-01-02"), a.Description, f.Format(a.Amount))
		}
	}
	return nil
}
