package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/madar/internal/ports/primary"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your own profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.PeopleAdapter(nil).MyProfile(NewContext())
	}),
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your name, email or extension",
	Long: `Update your profile. Unset flags keep their stored value.
The email must not belong to another account. The session keeps the old
name and email until the next login.`,
	Args: cobra.NoArgs,
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		var req primary.UpdateProfileRequest
		req.FirstName, _ = cmd.Flags().GetString("first-name")
		req.LastName, _ = cmd.Flags().GetString("last-name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Extension, _ = cmd.Flags().GetString("extension")
		return svc.PeopleAdapter(nil).UpdateProfile(NewContext(), req)
	}),
}

var profilePasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change your password",
	Args:  cobra.NoArgs,
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		current, _ := cmd.Flags().GetString("current")
		next, _ := cmd.Flags().GetString("new")
		return svc.PeopleAdapter(nil).ChangePassword(NewContext(), current, next)
	}),
}

func init() {
	profileUpdateCmd.Flags().String("first-name", "", "First name")
	profileUpdateCmd.Flags().String("last-name", "", "Last name")
	profileUpdateCmd.Flags().String("email", "", "Email address")
	profileUpdateCmd.Flags().String("extension", "", "Phone extension")

	profilePasswordCmd.Flags().String("current", "", "Current password")
	profilePasswordCmd.Flags().String("new", "", "New password (min 8 characters)")
	_ = profilePasswordCmd.MarkFlagRequired("current")
	_ = profilePasswordCmd.MarkFlagRequired("new")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profilePasswordCmd)
}

// ProfileCmd returns the profile command
func ProfileCmd() *cobra.Command {
	return profileCmd
}
