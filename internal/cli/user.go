package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/madar/internal/ports/primary"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts and role profiles",
}

var userCreateCmd = &cobra.Command{
	Use:   "create [email]",
	Short: "Create a user with its role profile",
	Long: `Create a login account and its role profile. Management only.

Roles: Management, Auditor, AreaOwner, ResponsiblePerson.
Responsible persons report to an area owner (--area-owner AO-001).

Examples:
  madar user create sara@plant.example --role Auditor --first-name Sara --last-name Nasser --password 'pw-123456'`,
	Args: cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		req := primary.CreateUserRequest{Email: args[0]}
		req.Password, _ = cmd.Flags().GetString("password")
		req.FirstName, _ = cmd.Flags().GetString("first-name")
		req.LastName, _ = cmd.Flags().GetString("last-name")
		req.Role, _ = cmd.Flags().GetString("role")
		req.Extension, _ = cmd.Flags().GetString("extension")
		req.JobTitle, _ = cmd.Flags().GetString("job-title")
		req.AreaOwnerID, _ = cmd.Flags().GetString("area-owner")
		return svc.PeopleAdapter(nil).CreateUser(NewContext(), req)
	}),
}

var userListCmd = &cobra.Command{
	Use:   "list [role]",
	Short: "List the profiles of a role",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		areaOwner, _ := cmd.Flags().GetString("area-owner")
		return svc.PeopleAdapter(nil).List(NewContext(), args[0], primary.PersonFilters{AreaOwnerID: areaOwner})
	}),
}

var userShowCmd = &cobra.Command{
	Use:   "show [role] [profile-id]",
	Short: "Show a role profile",
	Args:  cobra.ExactArgs(2),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.PeopleAdapter(nil).Show(NewContext(), args[0], args[1])
	}),
}

func init() {
	userCreateCmd.Flags().String("password", "", "Initial password (min 8 characters)")
	userCreateCmd.Flags().String("first-name", "", "First name")
	userCreateCmd.Flags().String("last-name", "", "Last name")
	userCreateCmd.Flags().String("role", "", "Role: Management, Auditor, AreaOwner, ResponsiblePerson")
	userCreateCmd.Flags().String("extension", "", "Phone extension")
	userCreateCmd.Flags().String("job-title", "", "Job title")
	userCreateCmd.Flags().String("area-owner", "", "Area owner of a responsible person")
	_ = userCreateCmd.MarkFlagRequired("role")
	_ = userCreateCmd.MarkFlagRequired("password")

	userListCmd.Flags().String("area-owner", "", "Only responsible persons of this area owner")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userShowCmd)
}

// UserCmd returns the user command
func UserCmd() *cobra.Command {
	return userCmd
}
