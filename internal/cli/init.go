package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wimarka-uic/lakra-sub002/internal/config"
	"github.com/wimarka-uic/lakra-sub002/internal/db"
)

// InitCmd returns the init command.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the annotation workspace",
		Long: `Initialize the database and bind this directory to an acting user.

Creates the schema under ~/.lakra, runs pending migrations, and writes
.lakra/config.json so later commands know who is annotating.

Examples:
  lakra init --actor USER-001 --role annotator
  lakra init --actor USER-003 --role evaluator --seed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			actorID, _ := cmd.Flags().GetString("actor")
			role, _ := cmd.Flags().GetString("role")
			seed, _ := cmd.Flags().GetBool("seed")

			if role != "" && !config.ValidRole(role) {
				return fmt.Errorf("unknown role %q (annotator, evaluator or admin)", role)
			}

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			if err := db.RunMigrations(); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			if seed {
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed fixtures: %w", err)
				}
				fmt.Println("✓ Seeded demo users and sentences")
			}

			if actorID != "" {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				cfg := &config.Config{Version: "1", ActorID: actorID, Role: role}
				if err := config.SaveConfig(cwd, cfg); err != nil {
					return err
				}
				fmt.Printf("✓ Bound workspace to %s (%s)\n", actorID, role)
			}

			path, err := db.GetDBPath()
			if err != nil {
				return err
			}
			fmt.Printf("✓ Database ready at %s\n", path)
			return nil
		},
	}

	addActorFlags(cmd)
	cmd.Flags().Bool("seed", false, "seed demo users and sentences")

	return cmd
}
