package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/madar/internal/apperr"
)

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [email]",
		Short: "Log in and start a session",
		Long: `Verify credentials and start a session. Sessions expire after the
configured idle timeout (session.timeout_minutes, default 120).

The password is read from --password or, when omitted, from the first line of stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				fmt.Fprint(os.Stderr, "Password: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil && line == "" {
					return usagef("no password given")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			svc, err := services()
			if err != nil {
				return err
			}
			err = svc.PeopleAdapter(nil).Login(context.Background(), args[0], password)
			if apperr.Is(err, apperr.KindDenied) {
				return usagef(apperr.Message(err))
			}
			return err
		}),
	}
	cmd.Flags().String("password", "", "Password (read from stdin when omitted)")
	return withoutSession(cmd)
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	return withoutSession(&cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: run(func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			return svc.PeopleAdapter(nil).Logout(context.Background())
		}),
	})
}

// WhoAmICmd returns the whoami command
func WhoAmICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: run(func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			return svc.PeopleAdapter(nil).WhoAmI(NewContext())
		}),
	}
}
