package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/madar/internal/ports/primary"
)

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the performance report",
		Long: `Show compliance, completion and score figures with plant and auditor
rollups and a score timeline.

Periods: monthly (6 months), quarterly (4 quarters), yearly (3 years).`,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			var req primary.PerformanceReportRequest
			req.Period, _ = cmd.Flags().GetString("period")
			req.PlantID, _ = cmd.Flags().GetString("plant")
			req.AuditorID, _ = cmd.Flags().GetString("auditor")
			return svc.ReportAdapter(nil).Performance(NewContext(), req)
		}),
	}
	cmd.Flags().String("period", "", "monthly, quarterly or yearly (default from config)")
	cmd.Flags().String("plant", "", "Only this plant")
	cmd.Flags().String("auditor", "", "Only this auditor")
	return cmd
}

// DashboardCmd returns the dashboard command
func DashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard for your role",
		RunE: run(func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			return svc.ReportAdapter(nil).Dashboard(NewContext(), globalActor.Role)
		}),
	}
}
