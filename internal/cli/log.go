package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/madar/internal/ports/primary"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [entity-id]",
		Short: "Show recent activity",
		Long:  "Show recent activity log entries (default 50), optionally for one entity (e.g., PLANT-001, ACT-004)",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			var filters primary.ActivityLogFilters
			if len(args) == 1 {
				filters.EntityID = args[0]
			}
			filters.EntityType, _ = cmd.Flags().GetString("type")
			filters.ActorID, _ = cmd.Flags().GetString("actor")
			filters.Limit, _ = cmd.Flags().GetInt("limit")
			if filters.Limit <= 0 {
				filters.Limit = 50
			}
			return svc.LogAdapter(nil).List(NewContext(), filters)
		}),
	}
	cmd.Flags().String("type", "", "Filter by entity type (plant, audit, corrective_action, ...)")
	cmd.Flags().String("actor", "", "Filter by actor")
	cmd.Flags().Int("limit", 50, "Maximum number of entries")
	return cmd
}
