// Package cli provides the cobra commands of the madar application.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/madar/internal/version"
	"github.com/example/madar/internal/wire"
)

// noSession marks commands that run without a logged-in user.
const noSession = "no-session"

// RootCmd builds the madar command tree.
func RootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:     "madar",
		Short:   "Madar - industrial safety and compliance audit tracker",
		Version: version.String(),
		Long: `Madar tracks plants, equipment, audit schedules, audits, evidence and
corrective actions, and reports on compliance across them.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			wire.SetConfigFile(configFile)
			if cmd.Annotations[noSession] != "" {
				return nil
			}
			return resumeSession()
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.madar/config.yaml)")

	root.AddCommand(InitCmd())
	root.AddCommand(LoginCmd())
	root.AddCommand(LogoutCmd())
	root.AddCommand(WhoAmICmd())
	root.AddCommand(UserCmd())
	root.AddCommand(ProfileCmd())
	root.AddCommand(PlantCmd())
	root.AddCommand(EquipmentCmd())
	root.AddCommand(ScheduleCmd())
	root.AddCommand(AuditCmd())
	root.AddCommand(ActionCmd())
	root.AddCommand(HistoryCmd())
	root.AddCommand(ReportCmd())
	root.AddCommand(DashboardCmd())
	root.AddCommand(LogCmd())
	root.AddCommand(SeedCmd())
	return root
}

// withoutSession annotates cmd to skip session resumption.
func withoutSession(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[noSession] = "true"
	return cmd
}
