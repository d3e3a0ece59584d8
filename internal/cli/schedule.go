package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/madar/internal/ports/primary"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage audit schedules",
}

var scheduleCreateCmd = &cobra.Command{
	Use:   "create [plant-id] [date]",
	Short: "Schedule an audit and allocate auditors",
	Long: `Schedule an audit of a plant on a date (YYYY-MM-DD) and allocate one or
more auditors to it in one step.

Examples:
  madar schedule create PLANT-001 2026-11-02 --auditor AUDR-001 --auditor AUDR-002
  madar schedule create PLANT-001 2026-11-02 --auditor AUDR-003 --role Lead_Auditor --hours 16`,
	Args: cobra.ExactArgs(2),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		req := primary.CreateScheduleRequest{PlantID: args[0], ScheduleDate: args[1]}
		req.AuditorIDs, _ = cmd.Flags().GetStringSlice("auditor")
		req.DurationHours, _ = cmd.Flags().GetInt("hours")
		req.AllocationRole, _ = cmd.Flags().GetString("role")
		return svc.ScheduleAdapter(nil).Create(NewContext(), req)
	}),
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schedules",
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		if mine, _ := cmd.Flags().GetBool("mine"); mine {
			return svc.ScheduleAdapter(nil).Assigned(NewContext())
		}
		var filters primary.ScheduleFilters
		filters.PlantID, _ = cmd.Flags().GetString("plant")
		filters.Status, _ = cmd.Flags().GetString("status")
		filters.FromDate, _ = cmd.Flags().GetString("from")
		filters.ToDate, _ = cmd.Flags().GetString("to")
		return svc.ScheduleAdapter(nil).List(NewContext(), filters)
	}),
}

var scheduleShowCmd = &cobra.Command{
	Use:   "show [schedule-id]",
	Short: "Show a schedule with its auditors and audits",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.ScheduleAdapter(nil).Show(NewContext(), args[0])
	}),
}

var scheduleStatusCmd = &cobra.Command{
	Use:   "status [schedule-id] [status]",
	Short: "Set a schedule status (Scheduled, Postponed, Completed, Cancelled)",
	Args:  cobra.ExactArgs(2),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.ScheduleAdapter(nil).SetStatus(NewContext(), args[0], args[1])
	}),
}

var scheduleDeleteCmd = &cobra.Command{
	Use:   "delete [schedule-id]",
	Short: "Delete a schedule without audits",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.ScheduleAdapter(nil).Delete(NewContext(), args[0])
	}),
}

func init() {
	scheduleCreateCmd.Flags().StringSlice("auditor", nil, "Auditor profile to allocate (repeatable)")
	scheduleCreateCmd.Flags().Int("hours", 0, "Duration in hours (default 8)")
	scheduleCreateCmd.Flags().String("role", "", "Allocation role: Lead_Auditor, Auditor, Observer")
	_ = scheduleCreateCmd.MarkFlagRequired("auditor")

	scheduleListCmd.Flags().String("plant", "", "Filter by plant")
	scheduleListCmd.Flags().String("status", "", "Filter by status")
	scheduleListCmd.Flags().String("from", "", "From date (YYYY-MM-DD)")
	scheduleListCmd.Flags().String("to", "", "To date (YYYY-MM-DD)")
	scheduleListCmd.Flags().Bool("mine", false, "Only schedules allocated to you")

	scheduleCmd.AddCommand(scheduleCreateCmd)
	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleCmd.AddCommand(scheduleShowCmd)
	scheduleCmd.AddCommand(scheduleStatusCmd)
	scheduleCmd.AddCommand(scheduleDeleteCmd)
}

// ScheduleCmd returns the schedule command
func ScheduleCmd() *cobra.Command {
	return scheduleCmd
}
