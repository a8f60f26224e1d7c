package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivakharbanda/cm-front/internal/api"
)

var (
	flagLeadsPage    int
	flagLeadsPerPage int
	flagLeadsDelete  string
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List email leads collected by bio cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		pages, err := client.BioPages(ctx)
		if err != nil {
			return fmt.Errorf("fetching bio page: %w", err)
		}
		if len(pages) == 0 {
			return fmt.Errorf("no bio page")
		}
		page := pages[0]

		if flagLeadsDelete != "" {
			if err := client.DeleteLead(ctx, page.ID, flagLeadsDelete); err != nil {
				return fmt.Errorf("deleting lead: %w", err)
			}
			fmt.Println("Lead deleted.")
			return nil
		}

		resp, err := client.Leads(ctx, page.ID, api.LeadParams{Page: flagLeadsPage, PerPage: flagLeadsPerPage})
		if err != nil {
			return fmt.Errorf("fetching leads: %w", err)
		}
		if len(resp.Leads) == 0 {
			fmt.Println("No leads yet.")
			return nil
		}

		for _, l := range resp.Leads {
			fmt.Printf("%s  %-30s  %s\n", l.CreatedAt, l.Email, l.ID)
		}
		fmt.Printf("\n%d of %d lead(s). Export all with: cm export leads\n", len(resp.Leads), resp.Total)
		return nil
	},
}

func init() {
	leadsCmd.Flags().IntVar(&flagLeadsPage, "page", 1, "page number")
	leadsCmd.Flags().IntVar(&flagLeadsPerPage, "per-page", 50, "leads per page")
	leadsCmd.Flags().StringVar(&flagLeadsDelete, "delete", "", "delete the lead with this ID instead of listing")

	rootCmd.AddCommand(leadsCmd)
}
