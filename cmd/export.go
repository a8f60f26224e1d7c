package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivakharbanda/cm-front/internal/api"
)

var (
	flagExportOut   string
	flagExportStart string
	flagExportEnd   string
)

var exportCmd = &cobra.Command{
	Use:       "export {analytics|leads}",
	Short:     "Download bio page analytics or collected leads as CSV",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"analytics", "leads"},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		pages, err := client.BioPages(ctx)
		if err != nil {
			return fmt.Errorf("fetching bio page: %w", err)
		}
		if len(pages) == 0 {
			return fmt.Errorf("no bio page to export from")
		}
		page := pages[0]

		var blob []byte
		switch args[0] {
		case "analytics":
			blob, err = client.ExportAnalytics(ctx, page.ID, api.AnalyticsParams{
				StartDate: flagExportStart,
				EndDate:   flagExportEnd,
			})
		case "leads":
			blob, err = client.ExportLeads(ctx, page.ID)
		default:
			return fmt.Errorf("unknown export kind %q", args[0])
		}
		if err != nil {
			return fmt.Errorf("exporting %s: %w", args[0], err)
		}

		out := flagExportOut
		if out == "" {
			out = fmt.Sprintf("%s-%s.csv", args[0], time.Now().Format("2006-01-02"))
		}
		if err := os.WriteFile(out, blob, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Printf("Wrote %d bytes to %s.\n", len(blob), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagExportOut, "out", "", "output file (default: <kind>-<date>.csv)")
	exportCmd.Flags().StringVar(&flagExportStart, "start", "", "start date for analytics export (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&flagExportEnd, "end", "", "end date for analytics export (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
}
