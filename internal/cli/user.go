package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mind-engage/campusmate/internal/auth"
)

func newUserCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage service accounts",
	}

	var name, password, role string
	add := &cobra.Command{
		Use:   "add <email>",
		Short: "Register an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbh, err := o.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer dbh.Close()
			users := auth.NewUserStore(dbh)
			u, err := users.Create(cmd.Context(), name, args[0], password)
			if err != nil {
				return err
			}
			if role != "" && role != u.Role {
				if err := users.SetRole(cmd.Context(), u.Email, role); err != nil {
					return err
				}
				u.Role = role
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) id=%s\n", u.Email, u.Role, u.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "display name")
	add.Flags().StringVar(&password, "password", "", "password")
	add.Flags().StringVar(&role, "role", "", "student, counselor or admin")
	_ = add.MarkFlagRequired("password")

	setRole := &cobra.Command{
		Use:   "role <email> <role>",
		Short: "Change an account's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbh, err := o.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer dbh.Close()
			if err := auth.NewUserStore(dbh).SetRole(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.AddCommand(add, setRole)
	return cmd
}
