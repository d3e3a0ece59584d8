package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/madar/internal/ports/primary"
)

var actionCmd = &cobra.Command{
	Use:   "action",
	Short: "Manage corrective actions",
}

var actionRaiseCmd = &cobra.Command{
	Use:   "raise [audit-id] [description]",
	Short: "Raise a corrective action against an audit",
	Args:  cobra.ExactArgs(2),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		req := primary.RaiseActionRequest{AuditID: args[0], Description: args[1]}
		req.ResponsiblePersonID, _ = cmd.Flags().GetString("responsible")
		req.Deadline, _ = cmd.Flags().GetString("deadline")
		return svc.ActionAdapter(nil).Raise(NewContext(), req)
	}),
}

var actionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List corrective actions",
	Long: `List corrective actions with overdue and critical markers.

Priority filters:
  overdue   deadline passed and not Completed
  critical  deadline within 3 days and not Completed or Rejected`,
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		var filters primary.ActionFilters
		filters.AuditID, _ = cmd.Flags().GetString("audit")
		filters.PlantID, _ = cmd.Flags().GetString("plant")
		filters.Status, _ = cmd.Flags().GetString("status")
		filters.Priority, _ = cmd.Flags().GetString("priority")
		filters.Mine, _ = cmd.Flags().GetBool("mine")
		return svc.ActionAdapter(nil).List(NewContext(), filters)
	}),
}

var actionShowCmd = &cobra.Command{
	Use:   "show [action-id]",
	Short: "Show a corrective action",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.ActionAdapter(nil).Show(NewContext(), args[0])
	}),
}

var actionUpdateCmd = &cobra.Command{
	Use:   "update [action-id]",
	Short: "Edit description, deadline or responsible person",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		var req primary.UpdateActionRequest
		req.Description, _ = cmd.Flags().GetString("description")
		req.Deadline, _ = cmd.Flags().GetString("deadline")
		req.ResponsiblePersonID, _ = cmd.Flags().GetString("responsible")
		return svc.ActionAdapter(nil).Update(NewContext(), args[0], req)
	}),
}

var actionStatusCmd = &cobra.Command{
	Use:   "status [action-id] [status]",
	Short: "Set an action status",
	Long: `Set a corrective action status. Any status of the vocabulary may follow any other:
Pending, InProgress, Completed, Overdue, Extended, Rejected, Escalated, Cancelled.`,
	Args: cobra.ExactArgs(2),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.ActionAdapter(nil).SetStatus(NewContext(), args[0], args[1])
	}),
}

var actionExtensionCmd = &cobra.Command{
	Use:   "extension [action-id]",
	Short: "Approve or reject a deadline extension",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		approve, _ := cmd.Flags().GetBool("approve")
		reject, _ := cmd.Flags().GetBool("reject")
		switch {
		case approve == reject:
			return usagef("specify exactly one of --approve or --reject")
		case approve:
			return svc.ActionAdapter(nil).ApproveExtension(NewContext(), args[0])
		default:
			return svc.ActionAdapter(nil).RejectExtension(NewContext(), args[0])
		}
	}),
}

var actionEscalateCmd = &cobra.Command{
	Use:   "escalate [action-id]",
	Short: "Escalate a corrective action",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.ActionAdapter(nil).Escalate(NewContext(), args[0])
	}),
}

var actionDeleteCmd = &cobra.Command{
	Use:   "delete [action-id]",
	Short: "Delete a corrective action",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.ActionAdapter(nil).Delete(NewContext(), args[0])
	}),
}

func init() {
	actionRaiseCmd.Flags().String("responsible", "", "Responsible person (RESP-xxx)")
	actionRaiseCmd.Flags().String("deadline", "", "Deadline (YYYY-MM-DD)")
	_ = actionRaiseCmd.MarkFlagRequired("responsible")
	_ = actionRaiseCmd.MarkFlagRequired("deadline")

	actionListCmd.Flags().String("audit", "", "Filter by audit")
	actionListCmd.Flags().String("plant", "", "Filter by plant")
	actionListCmd.Flags().String("status", "", "Filter by status")
	actionListCmd.Flags().String("priority", "", "overdue or critical")
	actionListCmd.Flags().Bool("mine", false, "Only actions assigned to you")

	actionUpdateCmd.Flags().String("description", "", "New description")
	actionUpdateCmd.Flags().String("deadline", "", "New deadline (YYYY-MM-DD)")
	actionUpdateCmd.Flags().String("responsible", "", "New responsible person")

	actionExtensionCmd.Flags().Bool("approve", false, "Approve the extension")
	actionExtensionCmd.Flags().Bool("reject", false, "Reject the extension")

	actionCmd.AddCommand(actionRaiseCmd)
	actionCmd.AddCommand(actionListCmd)
	actionCmd.AddCommand(actionShowCmd)
	actionCmd.AddCommand(actionUpdateCmd)
	actionCmd.AddCommand(actionStatusCmd)
	actionCmd.AddCommand(actionExtensionCmd)
	actionCmd.AddCommand(actionEscalateCmd)
	actionCmd.AddCommand(actionDeleteCmd)
}

// ActionCmd returns the action command
func ActionCmd() *cobra.Command {
	return actionCmd
}
