package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
	"github.com/wimarka-uic/lakra-sub002/internal/wire"
)

// UserCmd returns the user command.
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
		Long:  "Register and manage the annotators, evaluators and admins that own records.",
	}

	cmd.AddCommand(userRegisterCmd())
	cmd.AddCommand(userListCmd())
	cmd.AddCommand(userShowCmd())
	cmd.AddCommand(userDeactivateCmd())

	return cmd
}

func userRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Long: `Register a user record. Authentication lives outside this tool;
the record exists so annotations and revisions have an owner.

Example:
  lakra user register --email maria@example.com --name "Maria Santos" --role annotator --languages fil,en`,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			name, _ := cmd.Flags().GetString("name")
			role, _ := cmd.Flags().GetString("role")
			languages, _ := cmd.Flags().GetString("languages")

			var langs []string
			if languages != "" {
				langs = strings.Split(languages, ",")
			}

			user, err := wire.UserService().RegisterUser(cmd.Context(), primary.RegisterUserRequest{
				Email:     email,
				FullName:  name,
				Role:      role,
				Languages: langs,
			})
			if err != nil {
				return err
			}
			fmt.Printf("✓ Registered %s: %s (%s)\n", user.ID, user.FullName, user.Role)
			return nil
		},
	}
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("role", "annotator", "role (annotator, evaluator, admin)")
	cmd.Flags().String("languages", "", "comma-separated language codes")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")
	return cmd
}

func userListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			role, _ := cmd.Flags().GetString("role")

			users, err := wire.UserService().ListUsers(cmd.Context(), role)
			if err != nil {
				return err
			}

			if len(users) == 0 {
				fmt.Println("No users found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tROLE\tACTIVE\tEMAIL")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", u.ID, u.FullName, u.Role, u.IsActive, u.Email)
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("role", "", "filter by role")
	return cmd
}

func userShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [user-id]",
		Short: "Show user details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := wire.UserService().GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nUser:      %s\n", user.ID)
			fmt.Printf("Name:      %s\n", user.FullName)
			fmt.Printf("Email:     %s\n", user.Email)
			fmt.Printf("Role:      %s\n", user.Role)
			if len(user.Languages) > 0 {
				fmt.Printf("Languages: %s\n", strings.Join(user.Languages, ", "))
			}
			fmt.Printf("Active:    %t\n\n", user.IsActive)
			return nil
		},
	}
}

func userDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate [user-id]",
		Short: "Deactivate a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.UserService().DeactivateUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Deactivated %s\n", args[0])
			return nil
		},
	}
}
