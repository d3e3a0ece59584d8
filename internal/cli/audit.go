package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/madar/internal/ports/primary"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Conduct audits",
	Long:  "Start audits, record attendance and evidence, and submit audits for review",
}

var auditStartCmd = &cobra.Command{
	Use:   "start [schedule-id]",
	Short: "Start an audit on a scheduled audit",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.AuditAdapter(nil).Start(NewContext(), args[0])
	}),
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audits",
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		var filters primary.AuditFilters
		filters.ScheduleID, _ = cmd.Flags().GetString("schedule")
		filters.PlantID, _ = cmd.Flags().GetString("plant")
		filters.Status, _ = cmd.Flags().GetString("status")
		filters.Mine, _ = cmd.Flags().GetBool("mine")
		filters.Limit, _ = cmd.Flags().GetInt("limit")
		return svc.AuditAdapter(nil).List(NewContext(), filters)
	}),
}

var auditShowCmd = &cobra.Command{
	Use:   "show [audit-id]",
	Short: "Show an audit with attendance, evidence and actions",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.AuditAdapter(nil).Show(NewContext(), args[0])
	}),
}

var auditAttendCmd = &cobra.Command{
	Use:   "attend [audit-id]",
	Short: "Record attendance",
	Long: `Record or correct an auditor's attendance for a day. One entry exists per
auditor and day; recording again updates it.

Examples:
  madar audit attend AUDIT-001 --status Present --arrival 08:00 --departure 16:30
  madar audit attend AUDIT-001 --auditor AUDR-002 --status Late --arrival 09:15`,
	Args: cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		req := primary.RecordAttendanceRequest{AuditID: args[0]}
		req.AuditorID, _ = cmd.Flags().GetString("auditor")
		req.ResponsiblePersonID, _ = cmd.Flags().GetString("responsible")
		req.AttendDate, _ = cmd.Flags().GetString("date")
		req.Status, _ = cmd.Flags().GetString("status")
		req.ArrivalTime, _ = cmd.Flags().GetString("arrival")
		req.DepartureTime, _ = cmd.Flags().GetString("departure")
		return svc.AuditAdapter(nil).Attend(NewContext(), req)
	}),
}

var auditEvidenceCmd = &cobra.Command{
	Use:   "evidence",
	Short: "Manage audit evidence files",
}

var auditEvidenceAddCmd = &cobra.Command{
	Use:   "add [audit-id] [file]",
	Short: "Attach a file as evidence",
	Long: `Store a file (jpg, jpeg, png, gif, bmp, pdf, doc, docx, xls, xlsx; max 10 MB)
and attach it to an audit, optionally linked to a corrective action.`,
	Args: cobra.ExactArgs(2),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}

		f, err := os.Open(args[1])
		if err != nil {
			return usagef(fmt.Sprintf("cannot open %s: %v", args[1], err))
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", args[1], err)
		}

		req := primary.AddEvidenceRequest{
			AuditID:  args[0],
			FileName: filepath.Base(args[1]),
			Size:     info.Size(),
			Content:  f,
		}
		req.ActionID, _ = cmd.Flags().GetString("action")
		req.Title, _ = cmd.Flags().GetString("title")
		if req.Title == "" {
			req.Title = strings.TrimSuffix(req.FileName, filepath.Ext(req.FileName))
		}
		return svc.AuditAdapter(nil).AddEvidence(NewContext(), req)
	}),
}

var auditEvidenceDeleteCmd = &cobra.Command{
	Use:   "delete [evidence-id]",
	Short: "Delete evidence and its stored file",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.AuditAdapter(nil).DeleteEvidence(NewContext(), args[0])
	}),
}

var auditCompleteCmd = &cobra.Command{
	Use:   "complete [audit-id]",
	Short: "Submit an audit for review with its score",
	Long: `Submit an In_Progress audit for management review. Completes its schedule
and records the score, from which the escalation level follows:

  score >= 90 Low, >= 60 Medium, >= 40 High, otherwise Critical`,
	Args: cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		req := primary.CompleteAuditRequest{AuditID: args[0]}
		if cmd.Flags().Changed("score") {
			score, _ := cmd.Flags().GetFloat64("score")
			req.Score = &score
		}
		req.Comments, _ = cmd.Flags().GetString("comments")
		return svc.AuditAdapter(nil).Complete(NewContext(), req)
	}),
}

var auditCancelCmd = &cobra.Command{
	Use:   "cancel [audit-id]",
	Short: "Cancel an audit",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.AuditAdapter(nil).Cancel(NewContext(), args[0])
	}),
}

func init() {
	auditListCmd.Flags().String("schedule", "", "Filter by schedule")
	auditListCmd.Flags().String("plant", "", "Filter by plant")
	auditListCmd.Flags().String("status", "", "Filter by status")
	auditListCmd.Flags().Bool("mine", false, "Only audits allocated to you")
	auditListCmd.Flags().Int("limit", 0, "Maximum number of audits")

	auditAttendCmd.Flags().String("auditor", "", "Auditor profile (defaults to you)")
	auditAttendCmd.Flags().String("responsible", "", "Responsible person present")
	auditAttendCmd.Flags().String("date", "", "Attendance date (defaults to today)")
	auditAttendCmd.Flags().String("status", "Present", "Present, Absent, Late, Excused")
	auditAttendCmd.Flags().String("arrival", "", "Arrival time (HH:MM)")
	auditAttendCmd.Flags().String("departure", "", "Departure time (HH:MM)")

	auditEvidenceAddCmd.Flags().String("title", "", "Evidence title (defaults to the file name)")
	auditEvidenceAddCmd.Flags().String("action", "", "Link to a corrective action")
	auditEvidenceCmd.AddCommand(auditEvidenceAddCmd)
	auditEvidenceCmd.AddCommand(auditEvidenceDeleteCmd)

	auditCompleteCmd.Flags().Float64("score", 0, "Audit score (0-100)")
	auditCompleteCmd.Flags().String("comments", "", "Auditor comments")

	auditCmd.AddCommand(auditStartCmd)
	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditShowCmd)
	auditCmd.AddCommand(auditAttendCmd)
	auditCmd.AddCommand(auditEvidenceCmd)
	auditCmd.AddCommand(auditCompleteCmd)
	auditCmd.AddCommand(auditCancelCmd)
}

// AuditCmd returns the audit command
func AuditCmd() *cobra.Command {
	return auditCmd
}
