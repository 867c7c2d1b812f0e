package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wimarka-uic/lakra-sub002/internal/db"
)

// DoctorCmd returns the doctor command.
func DoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check workspace health",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := db.GetDBPath()
			if err != nil {
				return err
			}
			fmt.Printf("Database: %s\n", path)

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("✗ database unreachable: %w", err)
			}

			var version int
			if err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
				return fmt.Errorf("✗ schema version unreadable: %w", err)
			}
			fmt.Printf("Schema version: %d\n", version)

			for _, table := range []string{"users", "sentences", "annotations", "annotation_revisions", "evaluations", "activity_log"} {
				var count int
				if err := database.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
					return fmt.Errorf("✗ table %s unreadable: %w", table, err)
				}
				fmt.Printf("  %-20s %d\n", table, count)
			}

			fmt.Println("✓ Workspace healthy")
			return nil
		},
	}
}
