// Package status holds the closed status vocabularies of every entity and the
// pure classification rules derived from them: display colour tags and the
// escalation level of a scored audit.
package status

// ColorTag is a display-level classification of a status or priority.
type ColorTag string

const (
	ColorSuccess   ColorTag = "success"
	ColorPrimary   ColorTag = "primary"
	ColorSecondary ColorTag = "secondary"
	ColorInfo      ColorTag = "info"
	ColorDanger    ColorTag = "danger"
	ColorWarning   ColorTag = "warning"
)

// Plant statuses.
const (
	PlantActive           = "Active"
	PlantInactive         = "Inactive"
	PlantUnderMaintenance = "Under_Maintenance"
	PlantDecommissioned   = "Decommissioned"
)

// Equipment statuses.
const (
	EquipmentOperational      = "Operational"
	EquipmentUnderMaintenance = "Under_Maintenance"
	EquipmentOutOfService     = "Out_Of_Service"
	EquipmentDecommissioned   = "Decommissioned"
)

// Audit schedule statuses.
const (
	ScheduleScheduled = "Scheduled"
	SchedulePostponed = "Postponed"
	ScheduleCompleted = "Completed"
	ScheduleCancelled = "Cancelled"
)

// Audit statuses.
const (
	AuditDraft       = "Draft"
	AuditInProgress  = "In_Progress"
	AuditUnderReview = "Under_Review"
	AuditClosed      = "Closed"
	AuditCancelled   = "Cancelled"
)

// Corrective action statuses.
const (
	ActionPending    = "Pending"
	ActionInProgress = "InProgress"
	ActionCompleted  = "Completed"
	ActionOverdue    = "Overdue"
	ActionExtended   = "Extended"
	ActionRejected   = "Rejected"
	ActionEscalated  = "Escalated"
	ActionCancelled  = "Cancelled"
)

// Attendance statuses.
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceLate    = "Late"
	AttendanceExcused = "Excused"
)

// Audit history review statuses.
const (
	ReviewPending     = "Pending"
	ReviewApproved    = "Approved"
	ReviewRejected    = "Rejected"
	ReviewUnderReview = "Under_Review"
)

// Auditor allocation roles.
const (
	RoleLeadAuditor = "Lead_Auditor"
	RoleAuditor     = "Auditor"
	RoleObserver    = "Observer"
)

var (
	plantStatuses      = []string{PlantActive, PlantInactive, PlantUnderMaintenance, PlantDecommissioned}
	equipmentStatuses  = []string{EquipmentOperational, EquipmentUnderMaintenance, EquipmentOutOfService, EquipmentDecommissioned}
	scheduleStatuses   = []string{ScheduleScheduled, SchedulePostponed, ScheduleCompleted, ScheduleCancelled}
	auditStatuses      = []string{AuditDraft, AuditInProgress, AuditUnderReview, AuditClosed, AuditCancelled}
	actionStatuses     = []string{ActionPending, ActionInProgress, ActionCompleted, ActionOverdue, ActionExtended, ActionRejected, ActionEscalated, ActionCancelled}
	attendanceStatuses = []string{AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused}
	reviewStatuses     = []string{ReviewPending, ReviewApproved, ReviewRejected, ReviewUnderReview}
	allocationRoles    = []string{RoleLeadAuditor, RoleAuditor, RoleObserver}
)

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidPlantStatus(s string) bool      { return contains(plantStatuses, s) }
func IsValidEquipmentStatus(s string) bool  { return contains(equipmentStatuses, s) }
func IsValidScheduleStatus(s string) bool   { return contains(scheduleStatuses, s) }
func IsValidAuditStatus(s string) bool      { return contains(auditStatuses, s) }
func IsValidActionStatus(s string) bool     { return contains(actionStatuses, s) }
func IsValidAttendanceStatus(s string) bool { return contains(attendanceStatuses, s) }
func IsValidReviewStatus(s string) bool     { return contains(reviewStatuses, s) }
func IsValidAllocationRole(s string) bool   { return contains(allocationRoles, s) }

// ActionStatuses returns the corrective action vocabulary in display order.
func ActionStatuses() []string {
	return append([]string(nil), actionStatuses...)
}

// StatusColor maps any status string to a colour tag. Unknown statuses map
// to secondary; the function never fails.
func StatusColor(s string) ColorTag {
	switch s {
	case AuditClosed, ActionCompleted:
		return ColorSuccess
	case AuditInProgress, ActionInProgress:
		return ColorPrimary
	case AuditDraft, ActionPending:
		return ColorSecondary
	case AuditUnderReview:
		return ColorInfo
	case ActionOverdue, ActionCancelled:
		return ColorDanger
	case ActionExtended:
		return ColorWarning
	default:
		return ColorSecondary
	}
}

// Priorities share their names with escalation levels.
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// PriorityColor maps a priority to a colour tag, defaulting to secondary.
func PriorityColor(priority string) ColorTag {
	switch priority {
	case PriorityCritical:
		return ColorDanger
	case PriorityHigh:
		return ColorWarning
	case PriorityMedium:
		return ColorInfo
	case PriorityLow:
		return ColorSecondary
	default:
		return ColorSecondary
	}
}
