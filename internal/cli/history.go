package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/madar/internal/ports/primary"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Review audit completion records",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List completion records, newest first",
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		var filters primary.HistoryFilters
		filters.Status, _ = cmd.Flags().GetString("status")
		filters.EscalationLevel, _ = cmd.Flags().GetString("escalation")
		filters.Mine, _ = cmd.Flags().GetBool("mine")
		filters.Limit, _ = cmd.Flags().GetInt("limit")
		return svc.HistoryAdapter(nil).List(NewContext(), filters)
	}),
}

var historyShowCmd = &cobra.Command{
	Use:   "show [history-id]",
	Short: "Show a completion record",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.HistoryAdapter(nil).Show(NewContext(), args[0])
	}),
}

var historyReviewCmd = &cobra.Command{
	Use:   "review [history-id] [decision]",
	Short: "Record a review decision (Approved, Rejected, Under_Review)",
	Long: `Record a management review of a completed audit. Approving closes the audit.

Examples:
  madar history review HIST-004 Approved --comments "Findings accepted"`,
	Args: cobra.ExactArgs(2),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		comments, _ := cmd.Flags().GetString("comments")
		return svc.HistoryAdapter(nil).Review(NewContext(), primary.ReviewHistoryRequest{
			HistoryID: args[0],
			Status:    args[1],
			Comments:  comments,
		})
	}),
}

func init() {
	historyListCmd.Flags().String("status", "", "Filter by review status")
	historyListCmd.Flags().String("escalation", "", "Filter by escalation level")
	historyListCmd.Flags().Bool("mine", false, "Only records of your plants")
	historyListCmd.Flags().Int("limit", 0, "Maximum number of records")

	historyReviewCmd.Flags().String("comments", "", "Review comments")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyReviewCmd)
}

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	return historyCmd
}
