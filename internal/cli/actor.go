// Package cli wires the cobra command tree. Commands parse arguments
// and flags, resolve the acting user, and delegate to the services via
// wire; output formatting lives in the CLI adapters.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wimarka-uic/lakra-sub002/internal/config"
	"github.com/wimarka-uic/lakra-sub002/internal/ctxutil"
)

// addActorFlags registers the identity flags shared by commands that
// act on behalf of a user.
func addActorFlags(cmd *cobra.Command) {
	cmd.Flags().String("actor", "", "acting user ID (defaults to the workspace config)")
	cmd.Flags().String("role", "", "acting user role (defaults to the workspace config)")
}

// resolveActor determines who is running the command: the --actor and
// --role flags win, then the workspace config. The returned context
// carries the identity for downstream logging.
func resolveActor(cmd *cobra.Command) (context.Context, string, string, error) {
	actorID, _ := cmd.Flags().GetString("actor")
	role, _ := cmd.Flags().GetString("role")

	if actorID == "" || role == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		cfg, err := config.LoadConfig(cwd)
		if err == nil {
			if actorID == "" {
				actorID = cfg.ActorID
			}
			if role == "" {
				role = cfg.Role
			}
		}
	}

	if actorID == "" {
		return nil, "", "", fmt.Errorf("no acting user: pass --actor or run 'lakra init' in this directory")
	}

	ctx := ctxutil.WithActorID(context.Background(), actorID)
	if role != "" {
		ctx = ctxutil.WithRole(ctx, role)
	}
	return ctx, actorID, role, nil
}
