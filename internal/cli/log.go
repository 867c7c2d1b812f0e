package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
	"github.com/wimarka-uic/lakra-sub002/internal/wire"
)

// LogCmd returns the log command.
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "View the activity log",
		Long:  "View the audit trail: who created, changed or deleted what, and when.",
	}

	cmd.AddCommand(logTailCmd())

	return cmd
}

func logTailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Show recent activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			actorID, _ := cmd.Flags().GetString("actor")
			entityType, _ := cmd.Flags().GetString("type")

			if limit <= 0 {
				limit = 50
			}

			entries, err := wire.LogService().ListLogs(cmd.Context(), primary.LogFilters{
				ActorID:    actorID,
				EntityType: entityType,
				Limit:      limit,
			})
			if err != nil {
				return fmt.Errorf("failed to fetch logs: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("No activity recorded")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tACTOR\tACTION\tENTITY\tDETAIL")
			for _, e := range entries {
				detail := ""
				if e.FieldName != "" {
					detail = e.FieldName
					if e.NewValue != "" {
						detail += " -> " + e.NewValue
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
					e.Timestamp, e.ActorID, e.Action, e.EntityType, e.EntityID, detail)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int("limit", 50, "maximum entries to show")
	cmd.Flags().String("actor", "", "filter by acting user ID")
	cmd.Flags().String("type", "", "filter by entity type (annotation, revision, evaluation)")
	return cmd
}
