package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	statusadapter "github.com/bnema/techrelay/internal/adapters/render/status"
	"github.com/bnema/techrelay/internal/domain"
	"github.com/spf13/cobra"
)

func newRecordsCmd(state *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Inspect tracked requests",
	}

	cmd.AddCommand(
		newRecordsListCmd(state),
		newRecordsStatusCmd(state),
	)

	return cmd
}

func newRecordsListCmd(state *appState) *cobra.Command {
	var (
		unresolvedOnly bool
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := loadRecords(cmd, state.app, unresolvedOnly)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			return writeRecordsTable(cmd, state.app, records)
		},
	}

	cmd.Flags().BoolVar(&unresolvedOnly, "unresolved", false, "Only list unresolved requests")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newRecordsStatusCmd(state *appState) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show reminder progress of tracked requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := loadRecords(cmd, state.app, !all)
			if err != nil {
				return err
			}

			rendered, err := state.app.recordRenderer(records, statusadapter.RenderOptions{
				Now:    state.app.now(),
				Policy: state.app.policy,
			})
			if err != nil {
				return fmt.Errorf("render records: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include resolved requests")

	return cmd
}

// loadRecords reads the document directly; a running relay only ever
// replaces it whole, so a read never sees a partial write.
func loadRecords(cmd *cobra.Command, app *app, unresolvedOnly bool) ([]domain.TrackingRecord, error) {
	snapshot, err := app.repo.Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load tracking document: %w", err)
	}

	records := make([]domain.TrackingRecord, 0, len(snapshot.ByMessage))
	for _, record := range snapshot.ByMessage {
		if unresolvedOnly && record.Resolved {
			continue
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	return records, nil
}

func writeRecordsTable(cmd *cobra.Command, app *app, records []domain.TrackingRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No tracked requests.")
		return err
	}

	now := app.now()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATE\tACCOUNT\tREMINDERS\tCREATED\tDESTINATION")
	for _, record := range records {
		account := string(record.AccountRef)
		if account == "" {
			account = "-"
		}
		created := "-"
		if !record.CreatedAt.IsZero() {
			created = record.CreatedAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s\t%s\n",
			record.ID,
			app.policy.State(record, now),
			account,
			record.ReminderCount, app.policy.MaxReminders,
			created,
			record.DestinationConversation,
		)
	}
	return w.Flush()
}
