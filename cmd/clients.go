package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"invoicer/internal/catalog"
	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List the client directory",
	Long: `List the built-in client directory with invoice counts and revenue,
followed by a directory summary. Use --search to filter by name, email or
location.`,
	Example: `  # List every client
  invoicer clients

  # Clients located in California
  invoicer clients --search ", CA"

  # Machine readable output
  invoicer clients --json`,
	Args: cobra.NoArgs,
	RunE: runClients,
}

func init() {
	rootCmd.AddCommand(clientsCmd)

	clientsCmd.Flags().StringP("search", "s", "", "Filter by name, email or location")
	clientsCmd.Flags().Bool("json", false, "Print JSON instead of a table")
}

func runClients(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("clients")

	query, _ := cmd.Flags().GetString("search")
	asJSON, _ := cmd.Flags().GetBool("json")

	formatter, err := newFormatter("", "")
	if err != nil {
		return err
	}

	c := catalog.New()
	clients := c.FindClients(query)
	summary := c.ClientSummary()

	log.Debug().
		Str("search", query).
		Int("clients", len(clients)).
		Msg("Listing clients")

	if asJSON {
		return outputJSON(struct {
			Clients []models.Client       `json:"clients"`
			Summary catalog.ClientSummary `json:"summary"`
		}{clients, summary}, "", log)
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tLOCATION\tSTATUS\tINVOICES\tTOTAL SPENT\tLAST INVOICE")
	for _, client := range clients {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			client.ID, client.Name, client.Email, client.Location, client.Status,
			client.TotalInvoices, formatter.Format(client.TotalSpent),
			client.LastInvoice.Format("2006-01-02"))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write client list: %w", err)
	}

	if len(clients) == 0 {
		fmt.Fprintf(out, "No clients match %q\n", query)
	}
	fmt.Fprintf(out, "\n%d clients, %d active, %s revenue, %s average order value\n",
		summary.TotalClients, summary.ActiveClients,
		formatter.Format(summary.TotalRevenue), formatter.Format(summary.AverageOrderValue))
	return nil
}
