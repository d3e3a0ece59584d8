package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/access"
	coreattendance "github.com/example/madar/internal/core/attendance"
	coreaudit "github.com/example/madar/internal/core/audit"
	"github.com/example/madar/internal/core/calendar"
	coreevidence "github.com/example/madar/internal/core/evidence"
	coreschedule "github.com/example/madar/internal/core/schedule"
	"github.com/example/madar/internal/core/status"
	"github.com/example/madar/internal/ports/primary"
	"github.com/example/madar/internal/ports/secondary"
)

// AuditRepos groups the repositories the audit service reads and writes.
type AuditRepos struct {
	Audits      secondary.AuditRepository
	Schedules   secondary.ScheduleRepository
	Allocations secondary.AllocationRepository
	Plants      secondary.PlantRepository
	People      secondary.PersonRepository
	Attendance  secondary.AttendanceRepository
	Evidence    secondary.EvidenceRepository
	Actions     secondary.ActionRepository
	Histories   secondary.HistoryRepository
}

// AuditServiceImpl implements the AuditService interface.
type AuditServiceImpl struct {
	repos      AuditRepos
	fileStore  secondary.FileStore
	transactor secondary.Transactor
	clock      Clock
	logger     *zap.Logger
	activity   activity
}

// NewAuditService creates a new AuditService with injected dependencies.
func NewAuditService(
	repos AuditRepos,
	fileStore secondary.FileStore,
	transactor secondary.Transactor,
	logWriter secondary.LogWriter,
	clock Clock,
	logger *zap.Logger,
) *AuditServiceImpl {
	logger = loggerOrNop(logger)
	return &AuditServiceImpl{
		repos:      repos,
		fileStore:  fileStore,
		transactor: transactor,
		clock:      clockOrNow(clock),
		logger:     logger,
		activity:   activity{writer: logWriter, logger: logger},
	}
}

// isAllocated reports whether the acting auditor is allocated to the schedule.
func (s *AuditServiceImpl) isAllocated(ctx context.Context, scheduleID string) (bool, error) {
	actor := actorOf(ctx)
	if actor.Role != access.Auditor || actor.ProfileID == "" {
		return false, nil
	}
	ok, err := s.repos.Allocations.Exists(ctx, actor.ProfileID, scheduleID)
	if err != nil {
		return false, fmt.Errorf("failed to check allocation: %w", err)
	}
	return ok, nil
}

// StartAudit creates an In_Progress audit for a Scheduled schedule.
// The schedule keeps its Scheduled status until the audit completes.
func (s *AuditServiceImpl) StartAudit(ctx context.Context, scheduleID string) (*primary.Audit, error) {
	schedule, err := s.repos.Schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	allocated, err := s.isAllocated(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	open, err := s.repos.Audits.CountOpenForSchedule(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to count audits: %w", err)
	}

	guardCtx := coreaudit.StartAuditContext{
		ScheduleID:       scheduleID,
		ScheduleStatus:   schedule.Status,
		ActorRole:        actorOf(ctx).Role,
		ActorIsAllocated: allocated,
		HasOpenAudit:     open > 0,
	}
	if result := coreaudit.CanStartAudit(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	date, err := calendar.ParseDate(schedule.ScheduleDate)
	if err != nil {
		return nil, apperr.Internal(err, "schedule %s has a malformed date", scheduleID)
	}

	nextID, err := s.repos.Audits.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate audit ID: %w", err)
	}
	record := &secondary.AuditRecord{
		ID:          nextID,
		ScheduleID:  scheduleID,
		Title:       coreaudit.Title(schedule.PlantName, date),
		Description: coreaudit.DefaultDescription,
		Status:      status.AuditInProgress,
	}
	if err := s.repos.Audits.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create audit: %w", err)
	}
	s.activity.created(ctx, "audit", nextID)
	s.logger.Info("audit started", zap.String("audit", nextID), zap.String("schedule", scheduleID))

	created, err := s.repos.Audits.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created audit: %w", err)
	}
	return recordToAudit(created), nil
}

// GetAudit retrieves an audit with its attendance, evidence, actions and completion record.
func (s *AuditServiceImpl) GetAudit(ctx context.Context, auditID string) (*primary.AuditDetail, error) {
	record, err := s.repos.Audits.GetByID(ctx, auditID)
	if err != nil {
		return nil, err
	}
	allocated, err := s.isAllocated(ctx, record.ScheduleID)
	if err != nil {
		return nil, err
	}
	viewCtx := coreschedule.ViewScheduleContext{ActorRole: actorOf(ctx).Role, ActorIsAllocated: allocated}
	if result := coreschedule.CanViewSchedule(viewCtx); !result.Allowed {
		return nil, result.Error()
	}

	detail := &primary.AuditDetail{Audit: recordToAudit(record)}

	attendance, err := s.repos.Attendance.ListByAudit(ctx, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	for _, a := range attendance {
		detail.Attendance = append(detail.Attendance, recordToAttendance(a))
	}

	evidence, err := s.repos.Evidence.ListByAudit(ctx, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}
	for _, e := range evidence {
		detail.Evidence = append(detail.Evidence, recordToEvidence(e))
	}

	actions, err := s.repos.Actions.List(ctx, secondary.ActionFilters{AuditID: auditID})
	if err != nil {
		return nil, fmt.Errorf("failed to list corrective actions: %w", err)
	}
	today := s.clock.today()
	for _, a := range actions {
		detail.Actions = append(detail.Actions, recordToAction(a, today))
	}

	history, err := s.repos.Histories.GetByAuditID(ctx, auditID)
	switch {
	case err == nil:
		detail.History = recordToHistory(history)
	case !isNotFound(err):
		return nil, err
	}
	return detail, nil
}

// ListAudits lists audits. Auditors only see audits of their own schedules.
func (s *AuditServiceImpl) ListAudits(ctx context.Context, filters primary.AuditFilters) ([]*primary.Audit, error) {
	repoFilters := secondary.AuditFilters{
		ScheduleID: filters.ScheduleID,
		PlantID:    filters.PlantID,
		Status:     filters.Status,
		Limit:      filters.Limit,
	}
	if actor := actorOf(ctx); actor.Role == access.Auditor || filters.Mine {
		repoFilters.AuditorID = actor.ProfileID
	}

	records, err := s.repos.Audits.List(ctx, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}
	audits := make([]*primary.Audit, len(records))
	for i, r := range records {
		audits[i] = recordToAudit(r)
	}
	return audits, nil
}

// RecordAttendance creates or updates an auditor's attendance entry.
func (s *AuditServiceImpl) RecordAttendance(ctx context.Context, req primary.RecordAttendanceRequest) (*primary.Attendance, error) {
	audit, err := s.repos.Audits.GetByID(ctx, req.AuditID)
	if err != nil {
		return nil, err
	}
	allocated, err := s.isAllocated(ctx, audit.ScheduleID)
	if err != nil {
		return nil, err
	}
	if req.AuditorID == "" {
		req.AuditorID = actorOf(ctx).ProfileID
	}
	auditorAllocated, err := s.repos.Allocations.Exists(ctx, req.AuditorID, audit.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check allocation: %w", err)
	}

	guardCtx := coreattendance.EntryContext{
		ActorIsAllocated: allocated,
		AuditorID:        req.AuditorID,
		AuditorAllocated: auditorAllocated,
		Status:           req.Status,
		ArrivalTime:      req.ArrivalTime,
		DepartureTime:    req.DepartureTime,
	}
	if result := coreattendance.CanRecord(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	if req.ResponsiblePersonID != "" {
		exists, err := s.repos.People.Exists(ctx, access.ResponsiblePerson, req.ResponsiblePersonID)
		if err != nil {
			return nil, fmt.Errorf("failed to check responsible person: %w", err)
		}
		if !exists {
			return nil, apperr.NotFound("responsible person %s not found", req.ResponsiblePersonID)
		}
	}
	if req.AttendDate == "" {
		req.AttendDate = calendar.FormatDate(s.clock.today())
	} else if _, err := calendar.ParseDate(req.AttendDate); err != nil {
		return nil, apperr.Invalid("%v", err)
	}

	record := &secondary.AttendanceRecord{
		AuditID:             req.AuditID,
		AuditorID:           req.AuditorID,
		ResponsiblePersonID: req.ResponsiblePersonID,
		AttendDate:          req.AttendDate,
		Status:              req.Status,
		ArrivalTime:         req.ArrivalTime,
		DepartureTime:       req.DepartureTime,
	}

	existing, err := s.repos.Attendance.GetByAuditAndAuditor(ctx, req.AuditID, req.AuditorID)
	switch {
	case err == nil:
		record.ID = existing.ID
		if err := s.repos.Attendance.Update(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to update attendance: %w", err)
		}
		if existing.Status != record.Status {
			s.activity.updated(ctx, "attendance", record.ID, "status", existing.Status, record.Status)
		}
	case isNotFound(err):
		nextID, err := s.repos.Attendance.GetNextID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate attendance ID: %w", err)
		}
		record.ID = nextID
		if err := s.repos.Attendance.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to record attendance: %w", err)
		}
		s.activity.created(ctx, "attendance", nextID)
	default:
		return nil, err
	}

	return recordToAttendance(record), nil
}

// AddEvidence stores a file and attaches it to an audit.
func (s *AuditServiceImpl) AddEvidence(ctx context.Context, req primary.AddEvidenceRequest) (*primary.Evidence, error) {
	audit, err := s.repos.Audits.GetByID(ctx, req.AuditID)
	if err != nil {
		return nil, err
	}
	allocated, err := s.isAllocated(ctx, audit.ScheduleID)
	if err != nil {
		return nil, err
	}

	actionOnAudit := false
	if req.ActionID != "" {
		action, err := s.repos.Actions.GetByID(ctx, req.ActionID)
		switch {
		case err == nil:
			actionOnAudit = action.AuditID == audit.ID
		case !isNotFound(err):
			return nil, err
		}
	}

	guardCtx := coreevidence.UploadContext{
		ActorIsAllocated: allocated,
		AuditStatus:      audit.Status,
		Title:            req.Title,
		FileName:         req.FileName,
		Size:             req.Size,
		ActionID:         req.ActionID,
		ActionOnAudit:    actionOnAudit,
	}
	if result := coreevidence.CanUpload(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	path, err := s.fileStore.Store(ctx, req.Content, req.FileName, coreevidence.Folder, req.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to store evidence file: %w", err)
	}

	nextID, err := s.repos.Evidence.GetNextID(ctx)
	if err == nil {
		err = s.repos.Evidence.Create(ctx, &secondary.EvidenceRecord{
			ID:       nextID,
			AuditID:  req.AuditID,
			ActionID: req.ActionID,
			Title:    req.Title,
			URL:      path,
		})
	}
	if err != nil {
		// The row never made it, so the stored file would be orphaned.
		if _, cleanupErr := s.fileStore.Delete(ctx, path); cleanupErr != nil {
			s.logger.Warn("failed to remove orphaned evidence file", zap.String("path", path), zap.Error(cleanupErr))
		}
		return nil, fmt.Errorf("failed to create evidence: %w", err)
	}
	s.activity.created(ctx, "evidence", nextID)

	created, err := s.repos.Evidence.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created evidence: %w", err)
	}
	return recordToEvidence(created), nil
}

// DeleteEvidence removes the stored file and the evidence row.
func (s *AuditServiceImpl) DeleteEvidence(ctx context.Context, evidenceID string) error {
	evidence, err := s.repos.Evidence.GetByID(ctx, evidenceID)
	if err != nil {
		return err
	}
	audit, err := s.repos.Audits.GetByID(ctx, evidence.AuditID)
	if err != nil {
		return err
	}
	allocated, err := s.isAllocated(ctx, audit.ScheduleID)
	if err != nil {
		return err
	}
	if !allocated && !access.HasRole(actorOf(ctx).Role, access.Management) {
		return apperr.Denied("access denied")
	}

	removed, err := s.fileStore.Delete(ctx, evidence.URL)
	if err != nil {
		return fmt.Errorf("failed to delete evidence file: %w", err)
	}
	if !removed {
		s.logger.Warn("evidence file already missing", zap.String("evidence", evidenceID), zap.String("path", evidence.URL))
	}

	if err := s.repos.Evidence.Delete(ctx, evidenceID); err != nil {
		return fmt.Errorf("failed to delete evidence: %w", err)
	}
	s.activity.deleted(ctx, "evidence", evidenceID)
	return nil
}

// CompleteAudit moves the audit to Under_Review, completes its schedule and
// records the completion in one transaction.
func (s *AuditServiceImpl) CompleteAudit(ctx context.Context, req primary.CompleteAuditRequest) (*primary.CompleteAuditResponse, error) {
	audit, err := s.repos.Audits.GetByID(ctx, req.AuditID)
	if err != nil {
		return nil, err
	}
	allocated, err := s.isAllocated(ctx, audit.ScheduleID)
	if err != nil {
		return nil, err
	}
	historyExists, err := s.repos.Histories.ExistsForAudit(ctx, req.AuditID)
	if err != nil {
		return nil, fmt.Errorf("failed to check completion record: %w", err)
	}

	guardCtx := coreaudit.CompleteAuditContext{
		AuditID:          req.AuditID,
		AuditStatus:      audit.Status,
		ActorIsAllocated: allocated,
		Score:            req.Score,
		HistoryExists:    historyExists,
	}
	if result := coreaudit.CanCompleteAudit(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	schedule, err := s.repos.Schedules.GetByID(ctx, audit.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule of audit %s: %w", req.AuditID, err)
	}
	plant, err := s.repos.Plants.GetByID(ctx, schedule.PlantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load plant of audit %s: %w", req.AuditID, err)
	}
	level := status.EscalationLevelFromScore(req.Score)

	var historyID string
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repos.Audits.UpdateStatus(ctx, req.AuditID, status.AuditUnderReview); err != nil {
			return fmt.Errorf("failed to update audit status: %w", err)
		}
		if err := s.repos.Schedules.UpdateStatus(ctx, audit.ScheduleID, status.ScheduleCompleted); err != nil {
			return fmt.Errorf("failed to complete schedule: %w", err)
		}

		nextID, err := s.repos.Histories.GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate history ID: %w", err)
		}
		historyID = nextID
		return s.repos.Histories.Create(ctx, &secondary.HistoryRecord{
			ID:              nextID,
			AuditID:         req.AuditID,
			AreaOwnerID:     plant.AreaOwnerID,
			ManagementID:    plant.ManagementID,
			Title:           coreaudit.HistoryTitle(audit.Title),
			Status:          status.ReviewPending,
			Score:           req.Score,
			Comments:        req.Comments,
			EscalationLevel: string(level),
		})
	})
	if err != nil {
		return nil, err
	}

	s.activity.updated(ctx, "audit", req.AuditID, "status", audit.Status, status.AuditUnderReview)
	s.activity.updated(ctx, "schedule", audit.ScheduleID, "status", schedule.Status, status.ScheduleCompleted)
	s.activity.created(ctx, "audit_history", historyID)
	s.logger.Info("audit completed",
		zap.String("audit", req.AuditID),
		zap.String("history", historyID),
		zap.String("escalation", string(level)))

	return &primary.CompleteAuditResponse{
		AuditID:         req.AuditID,
		HistoryID:       historyID,
		EscalationLevel: string(level),
	}, nil
}

// CancelAudit cancels a non-terminal audit.
func (s *AuditServiceImpl) CancelAudit(ctx context.Context, auditID string) error {
	audit, err := s.repos.Audits.GetByID(ctx, auditID)
	if err != nil {
		return err
	}
	allocated, err := s.isAllocated(ctx, audit.ScheduleID)
	if err != nil {
		return err
	}

	guardCtx := coreaudit.CancelAuditContext{
		AuditID:          auditID,
		AuditStatus:      audit.Status,
		ActorRole:        actorOf(ctx).Role,
		ActorIsAllocated: allocated,
	}
	if result := coreaudit.CanCancelAudit(guardCtx); !result.Allowed {
		return result.Error()
	}

	if err := s.repos.Audits.UpdateStatus(ctx, auditID, status.AuditCancelled); err != nil {
		return fmt.Errorf("failed to cancel audit: %w", err)
	}
	s.activity.updated(ctx, "audit", auditID, "status", audit.Status, status.AuditCancelled)
	s.logger.Info("audit cancelled", zap.String("audit", auditID))
	return nil
}

func recordToAudit(r *secondary.AuditRecord) *primary.Audit {
	return &primary.Audit{
		ID:             r.ID,
		ScheduleID:     r.ScheduleID,
		PlantID:        r.PlantID,
		Title:          r.Title,
		Description:    r.Description,
		ChecklistSteps: r.ChecklistSteps,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func recordToAttendance(r *secondary.AttendanceRecord) *primary.Attendance {
	return &primary.Attendance{
		ID:                  r.ID,
		AuditID:             r.AuditID,
		AuditorID:           r.AuditorID,
		ResponsiblePersonID: r.ResponsiblePersonID,
		AttendDate:          r.AttendDate,
		Status:              r.Status,
		ArrivalTime:         r.ArrivalTime,
		DepartureTime:       r.DepartureTime,
	}
}

func recordToEvidence(r *secondary.EvidenceRecord) *primary.Evidence {
	return &primary.Evidence{
		ID:        r.ID,
		AuditID:   r.AuditID,
		ActionID:  r.ActionID,
		Title:     r.Title,
		URL:       r.URL,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure AuditServiceImpl implements the interface
var _ primary.AuditService = (*AuditServiceImpl)(nil)
