package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/config"
	"github.com/example/madar/internal/ctxutil"
	"github.com/example/madar/internal/ports/primary"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration, database and the first management account",
		Long: `Write the default configuration (unless one exists), create the database
schema, and create the first management account.

Examples:
  madar init --email head@plant.example --password 's3cret-pass' --first-name Lina --last-name Haddad`,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				dir, err := config.HomeDir()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, "config.yaml")
			}

			switch err := config.WriteDefault(path); {
			case err == nil:
				fmt.Printf("✓ Wrote configuration to %s\n", path)
			case apperr.Is(err, apperr.KindConflict):
				fmt.Printf("Using existing configuration %s\n", path)
			default:
				return err
			}

			svc, err := services()
			if err != nil {
				return err
			}
			fmt.Println("✓ Database ready")

			ctx := ctxutil.WithActor(NewContext(), bootstrapActor)
			existing, err := svc.People.ListPeople(ctx, "Management", primary.PersonFilters{})
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				fmt.Printf("Management account %s already exists\n", existing[0].ID)
				return nil
			}

			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			firstName, _ := cmd.Flags().GetString("first-name")
			lastName, _ := cmd.Flags().GetString("last-name")
			if email == "" || password == "" {
				return usagef("--email and --password are required to create the first management account")
			}

			if err := svc.PeopleAdapter(nil).CreateUser(ctx, primary.CreateUserRequest{
				Email:     email,
				Password:  password,
				FirstName: firstName,
				LastName:  lastName,
				Role:      "Management",
				JobTitle:  "Head of Safety",
			}); err != nil {
				return err
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Printf("  madar login %s\n", email)
			fmt.Println("  madar plant create \"North Refinery\" --location \"Zone A\"")
			return nil
		}),
	}
	cmd.Flags().String("email", "", "Email of the first management account")
	cmd.Flags().String("password", "", "Password of the first management account")
	cmd.Flags().String("first-name", "Admin", "First name")
	cmd.Flags().String("last-name", "User", "Last name")
	return withoutSession(cmd)
}
