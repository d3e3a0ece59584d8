package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/access"
	"github.com/example/madar/internal/core/calendar"
	"github.com/example/madar/internal/core/report"
	coreschedule "github.com/example/madar/internal/core/schedule"
	"github.com/example/madar/internal/core/status"
	"github.com/example/madar/internal/ports/primary"
	"github.com/example/madar/internal/ports/secondary"
)

// assignedLookbackDays is how far back an auditor's assigned list reaches.
const assignedLookbackDays = 7

// ScheduleServiceImpl implements the ScheduleService interface.
type ScheduleServiceImpl struct {
	scheduleRepo   secondary.ScheduleRepository
	allocationRepo secondary.AllocationRepository
	auditRepo      secondary.AuditRepository
	plantRepo      secondary.PlantRepository
	personRepo     secondary.PersonRepository
	transactor     secondary.Transactor
	clock          Clock
	logger         *zap.Logger
	activity       activity
}

// NewScheduleService creates a new ScheduleService with injected dependencies.
func NewScheduleService(
	scheduleRepo secondary.ScheduleRepository,
	allocationRepo secondary.AllocationRepository,
	auditRepo secondary.AuditRepository,
	plantRepo secondary.PlantRepository,
	personRepo secondary.PersonRepository,
	transactor secondary.Transactor,
	logWriter secondary.LogWriter,
	clock Clock,
	logger *zap.Logger,
) *ScheduleServiceImpl {
	logger = loggerOrNop(logger)
	return &ScheduleServiceImpl{
		scheduleRepo:   scheduleRepo,
		allocationRepo: allocationRepo,
		auditRepo:      auditRepo,
		plantRepo:      plantRepo,
		personRepo:     personRepo,
		transactor:     transactor,
		clock:          clockOrNow(clock),
		logger:         logger,
		activity:       activity{writer: logWriter, logger: logger},
	}
}

// CreateSchedule creates a schedule and its allocations in one transaction.
func (s *ScheduleServiceImpl) CreateSchedule(ctx context.Context, req primary.CreateScheduleRequest) (*primary.Schedule, error) {
	date, err := calendar.ParseDate(req.ScheduleDate)
	if err != nil {
		return nil, apperr.Invalid("%v", err)
	}
	if req.DurationHours == 0 {
		req.DurationHours = coreschedule.DefaultDurationHours
	}
	if req.AllocationRole == "" {
		req.AllocationRole = status.RoleAuditor
	}
	auditorIDs := dedupe(req.AuditorIDs)

	guardCtx := coreschedule.CreateScheduleContext{
		ActorRole:      actorOf(ctx).Role,
		PlantID:        req.PlantID,
		DurationHours:  req.DurationHours,
		AuditorIDs:     auditorIDs,
		AllocationRole: req.AllocationRole,
	}
	plant, err := s.plantRepo.GetByID(ctx, req.PlantID)
	switch {
	case err == nil:
		guardCtx.PlantExists = true
		guardCtx.PlantStatus = plant.Status
	case !isNotFound(err):
		return nil, err
	}
	for _, id := range auditorIDs {
		exists, err := s.personRepo.Exists(ctx, access.Auditor, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check auditor: %w", err)
		}
		if !exists {
			guardCtx.MissingAuditors = append(guardCtx.MissingAuditors, id)
		}
	}

	if result := coreschedule.CanCreateSchedule(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	assigned := calendar.FormatDate(s.clock.today())
	var scheduleID string
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		nextID, err := s.scheduleRepo.GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate schedule ID: %w", err)
		}
		scheduleID = nextID

		record := &secondary.ScheduleRecord{
			ID:            nextID,
			PlantID:       req.PlantID,
			ScheduleDate:  calendar.FormatDate(date),
			Status:        status.ScheduleScheduled,
			DurationHours: req.DurationHours,
		}
		if err := s.scheduleRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create schedule: %w", err)
		}

		for _, auditorID := range auditorIDs {
			allocation := &secondary.AllocationRecord{
				AuditorID:    auditorID,
				ScheduleID:   nextID,
				AssignedDate: assigned,
				RoleType:     req.AllocationRole,
			}
			if err := s.allocationRepo.Create(ctx, allocation); err != nil {
				return fmt.Errorf("failed to allocate auditor %s: %w", auditorID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.created(ctx, "schedule", scheduleID)
	s.logger.Info("schedule created",
		zap.String("schedule", scheduleID),
		zap.String("plant", req.PlantID),
		zap.Strings("auditors", auditorIDs))

	record, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created schedule: %w", err)
	}
	return recordToSchedule(record), nil
}

// GetSchedule retrieves a schedule with its allocations and audits.
func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context, scheduleID string) (*primary.ScheduleDetail, error) {
	record, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	actor := actorOf(ctx)
	allocated := false
	if actor.Role == access.Auditor {
		allocated, err = s.allocationRepo.Exists(ctx, actor.ProfileID, scheduleID)
		if err != nil {
			return nil, fmt.Errorf("failed to check allocation: %w", err)
		}
	}
	guardCtx := coreschedule.ViewScheduleContext{ActorRole: actor.Role, ActorIsAllocated: allocated}
	if result := coreschedule.CanViewSchedule(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	allocations, err := s.allocationRepo.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	audits, err := s.auditRepo.List(ctx, secondary.AuditFilters{ScheduleID: scheduleID})
	if err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}

	detail := &primary.ScheduleDetail{Schedule: recordToSchedule(record)}
	for _, a := range allocations {
		detail.Allocations = append(detail.Allocations, &primary.Allocation{
			AuditorID:    a.AuditorID,
			AuditorName:  a.AuditorName,
			AssignedDate: a.AssignedDate,
			RoleType:     a.RoleType,
		})
	}
	for _, a := range audits {
		detail.Audits = append(detail.Audits, recordToAudit(a))
	}
	return detail, nil
}

// ListSchedules lists schedules with the share of them that are Completed.
func (s *ScheduleServiceImpl) ListSchedules(ctx context.Context, filters primary.ScheduleFilters) (*primary.ScheduleList, error) {
	repoFilters := secondary.ScheduleFilters{
		PlantID:  filters.PlantID,
		Status:   filters.Status,
		FromDate: filters.FromDate,
		ToDate:   filters.ToDate,
	}
	if actor := actorOf(ctx); actor.Role == access.Auditor {
		repoFilters.AuditorID = actor.ProfileID
	}

	records, err := s.scheduleRepo.List(ctx, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	list := &primary.ScheduleList{Schedules: make([]*primary.Schedule, len(records))}
	for i, r := range records {
		list.Schedules[i] = recordToSchedule(r)
		if r.Status == status.ScheduleCompleted {
			list.Completed++
		}
	}
	list.CompletionRate = report.CompletionRate(len(records), list.Completed)
	return list, nil
}

// AssignedSchedules lists the acting auditor's schedules dated a week ago or later.
func (s *ScheduleServiceImpl) AssignedSchedules(ctx context.Context) ([]*primary.Schedule, error) {
	actor := actorOf(ctx)
	if actor.Role != access.Auditor {
		return nil, apperr.Denied("access denied")
	}

	from := calendar.AddDays(s.clock.today(), -assignedLookbackDays)
	records, err := s.scheduleRepo.List(ctx, secondary.ScheduleFilters{
		AuditorID: actor.ProfileID,
		FromDate:  calendar.FormatDate(from),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned schedules: %w", err)
	}

	schedules := make([]*primary.Schedule, len(records))
	for i, r := range records {
		schedules[i] = recordToSchedule(r)
	}
	return schedules, nil
}

// SetScheduleStatus writes a schedule status directly.
func (s *ScheduleServiceImpl) SetScheduleStatus(ctx context.Context, scheduleID, newStatus string) error {
	guardCtx := coreschedule.SetStatusContext{ActorRole: actorOf(ctx).Role, NewStatus: newStatus}
	if result := coreschedule.CanSetStatus(guardCtx); !result.Allowed {
		return result.Error()
	}

	record, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if err := s.scheduleRepo.UpdateStatus(ctx, scheduleID, newStatus); err != nil {
		return fmt.Errorf("failed to update schedule status: %w", err)
	}
	s.activity.updated(ctx, "schedule", scheduleID, "status", record.Status, newStatus)
	return nil
}

// DeleteSchedule deletes a schedule without audits. Allocations cascade.
func (s *ScheduleServiceImpl) DeleteSchedule(ctx context.Context, scheduleID string) error {
	if _, err := s.scheduleRepo.GetByID(ctx, scheduleID); err != nil {
		return err
	}
	auditCount, err := s.scheduleRepo.CountAudits(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("failed to count audits: %w", err)
	}

	guardCtx := coreschedule.DeleteScheduleContext{
		ActorRole:  actorOf(ctx).Role,
		ScheduleID: scheduleID,
		AuditCount: auditCount,
	}
	if result := coreschedule.CanDeleteSchedule(guardCtx); !result.Allowed {
		return result.Error()
	}

	if err := s.scheduleRepo.Delete(ctx, scheduleID); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	s.activity.deleted(ctx, "schedule", scheduleID)
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func recordToSchedule(r *secondary.ScheduleRecord) *primary.Schedule {
	return &primary.Schedule{
		ID:            r.ID,
		PlantID:       r.PlantID,
		PlantName:     r.PlantName,
		ScheduleDate:  r.ScheduleDate,
		Status:        r.Status,
		DurationHours: r.DurationHours,
		CreatedAt:     r.CreatedAt,
	}
}

// Ensure ScheduleServiceImpl implements the interface
var _ primary.ScheduleService = (*ScheduleServiceImpl)(nil)
