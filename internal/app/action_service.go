package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/access"
	coreaction "github.com/example/madar/internal/core/action"
	"github.com/example/madar/internal/core/calendar"
	"github.com/example/madar/internal/core/report"
	"github.com/example/madar/internal/core/status"
	"github.com/example/madar/internal/ports/primary"
	"github.com/example/madar/internal/ports/secondary"
)

// ActionServiceImpl implements the ActionService interface.
type ActionServiceImpl struct {
	actionRepo     secondary.ActionRepository
	auditRepo      secondary.AuditRepository
	allocationRepo secondary.AllocationRepository
	personRepo     secondary.PersonRepository
	clock          Clock
	logger         *zap.Logger
	activity       activity
}

// NewActionService creates a new ActionService with injected dependencies.
func NewActionService(
	actionRepo secondary.ActionRepository,
	auditRepo secondary.AuditRepository,
	allocationRepo secondary.AllocationRepository,
	personRepo secondary.PersonRepository,
	logWriter secondary.LogWriter,
	clock Clock,
	logger *zap.Logger,
) *ActionServiceImpl {
	logger = loggerOrNop(logger)
	return &ActionServiceImpl{
		actionRepo:     actionRepo,
		auditRepo:      auditRepo,
		allocationRepo: allocationRepo,
		personRepo:     personRepo,
		clock:          clockOrNow(clock),
		logger:         logger,
		activity:       activity{writer: logWriter, logger: logger},
	}
}

// RaiseAction records a Pending corrective action against an audit.
func (s *ActionServiceImpl) RaiseAction(ctx context.Context, req primary.RaiseActionRequest) (*primary.Action, error) {
	audit, err := s.auditRepo.GetByID(ctx, req.AuditID)
	if err != nil {
		return nil, err
	}
	deadline, err := calendar.ParseDate(req.Deadline)
	if err != nil {
		return nil, apperr.Invalid("%v", err)
	}

	actor := actorOf(ctx)
	allocated := false
	if actor.Role == access.Auditor {
		allocated, err = s.allocationRepo.Exists(ctx, actor.ProfileID, audit.ScheduleID)
		if err != nil {
			return nil, fmt.Errorf("failed to check allocation: %w", err)
		}
	}
	respExists, err := s.personRepo.Exists(ctx, access.ResponsiblePerson, req.ResponsiblePersonID)
	if err != nil {
		return nil, fmt.Errorf("failed to check responsible person: %w", err)
	}

	today := s.clock.today()
	guardCtx := coreaction.CreateActionContext{
		AuditID:                 req.AuditID,
		AuditStatus:             audit.Status,
		ActorIsAllocated:        allocated,
		ResponsiblePersonID:     req.ResponsiblePersonID,
		ResponsiblePersonExists: respExists,
		Description:             req.Description,
		Deadline:                deadline,
		Today:                   today,
	}
	if result := coreaction.CanCreateAction(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	nextID, err := s.actionRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate corrective action ID: %w", err)
	}
	record := &secondary.ActionRecord{
		ID:                  nextID,
		AuditID:             req.AuditID,
		ResponsiblePersonID: req.ResponsiblePersonID,
		Description:         req.Description,
		Deadline:            calendar.FormatDate(deadline),
		Status:              status.ActionPending,
	}
	if err := s.actionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create corrective action: %w", err)
	}
	s.activity.created(ctx, "corrective_action", nextID)
	s.logger.Info("corrective action raised", zap.String("action", nextID), zap.String("audit", req.AuditID))

	return s.GetAction(ctx, nextID)
}

// GetAction retrieves a corrective action with its deadline flags.
func (s *ActionServiceImpl) GetAction(ctx context.Context, actionID string) (*primary.Action, error) {
	record, err := s.actionRepo.GetByID(ctx, actionID)
	if err != nil {
		return nil, err
	}
	return recordToAction(record, s.clock.today()), nil
}

// ListActions lists actions, nearest deadline first, narrowed by priority.
// Responsible persons only see their own actions.
func (s *ActionServiceImpl) ListActions(ctx context.Context, filters primary.ActionFilters) (*primary.ActionList, error) {
	if !coreaction.IsValidPriorityFilter(filters.Priority) {
		return nil, apperr.Invalid("invalid priority filter %q (want overdue or critical)", filters.Priority)
	}
	if filters.Status != "" && !status.IsValidActionStatus(filters.Status) {
		return nil, apperr.Invalid("invalid corrective action status %q", filters.Status)
	}

	repoFilters := secondary.ActionFilters{
		AuditID: filters.AuditID,
		PlantID: filters.PlantID,
		Status:  filters.Status,
	}
	if actor := actorOf(ctx); actor.Role == access.ResponsiblePerson || filters.Mine {
		repoFilters.ResponsiblePersonID = actor.ProfileID
	}

	records, err := s.actionRepo.List(ctx, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrective actions: %w", err)
	}

	today := s.clock.today()
	list := &primary.ActionList{}
	completed := 0
	for _, r := range records {
		deadline, err := calendar.ParseDate(r.Deadline)
		if err != nil {
			s.logger.Warn("skipping corrective action with malformed deadline", zap.String("action", r.ID), zap.Error(err))
			continue
		}
		if !coreaction.MatchesPriority(filters.Priority, deadline, r.Status, today) {
			continue
		}
		a := recordToAction(r, today)
		list.Actions = append(list.Actions, a)
		if a.IsOverdue {
			list.Overdue++
		}
		if a.IsCritical {
			list.Critical++
		}
		if r.Status == status.ActionCompleted {
			completed++
		}
	}
	list.CompletionRate = report.CompletionRate(len(list.Actions), completed)
	return list, nil
}

// UpdateAction edits description, deadline and responsible person.
func (s *ActionServiceImpl) UpdateAction(ctx context.Context, actionID string, req primary.UpdateActionRequest) (*primary.Action, error) {
	existing, err := s.actionRepo.GetByID(ctx, actionID)
	if err != nil {
		return nil, err
	}
	if req.Description == "" {
		req.Description = existing.Description
	}
	if req.ResponsiblePersonID == "" {
		req.ResponsiblePersonID = existing.ResponsiblePersonID
	}
	if req.Deadline == "" {
		req.Deadline = existing.Deadline
	} else if _, err := calendar.ParseDate(req.Deadline); err != nil {
		return nil, apperr.Invalid("%v", err)
	}

	respExists, err := s.personRepo.Exists(ctx, access.ResponsiblePerson, req.ResponsiblePersonID)
	if err != nil {
		return nil, fmt.Errorf("failed to check responsible person: %w", err)
	}
	guardCtx := coreaction.UpdateActionContext{
		ActorRole:               actorOf(ctx).Role,
		Description:             req.Description,
		ResponsiblePersonID:     req.ResponsiblePersonID,
		ResponsiblePersonExists: respExists,
	}
	if result := coreaction.CanUpdateAction(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	record := &secondary.ActionRecord{
		ID:                  actionID,
		ResponsiblePersonID: req.ResponsiblePersonID,
		Description:         req.Description,
		Deadline:            req.Deadline,
	}
	if err := s.actionRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update corrective action: %w", err)
	}
	if existing.Deadline != req.Deadline {
		s.activity.updated(ctx, "corrective_action", actionID, "deadline", existing.Deadline, req.Deadline)
	}
	return s.GetAction(ctx, actionID)
}

// SetActionStatus writes any vocabulary status. Completing stamps the acting manager.
func (s *ActionServiceImpl) SetActionStatus(ctx context.Context, actionID, newStatus string) error {
	actor := actorOf(ctx)
	guardCtx := coreaction.SetStatusContext{
		ActionID:  actionID,
		ActorRole: actor.Role,
		NewStatus: newStatus,
	}
	if result := coreaction.CanSetStatus(guardCtx); !result.Allowed {
		return result.Error()
	}

	existing, err := s.actionRepo.GetByID(ctx, actionID)
	if err != nil {
		return err
	}

	managementID := ""
	if newStatus == status.ActionCompleted {
		managementID = actor.ProfileID
	}
	if err := s.actionRepo.UpdateStatus(ctx, actionID, newStatus, managementID); err != nil {
		return fmt.Errorf("failed to update corrective action status: %w", err)
	}
	s.activity.updated(ctx, "corrective_action", actionID, "status", existing.Status, newStatus)
	s.logger.Info("corrective action status changed",
		zap.String("action", actionID),
		zap.String("from", existing.Status),
		zap.String("to", newStatus))
	return nil
}

// ApproveExtension sets the action to Extended.
func (s *ActionServiceImpl) ApproveExtension(ctx context.Context, actionID string) error {
	return s.SetActionStatus(ctx, actionID, status.ActionExtended)
}

// RejectExtension sets the action to Overdue.
func (s *ActionServiceImpl) RejectExtension(ctx context.Context, actionID string) error {
	return s.SetActionStatus(ctx, actionID, status.ActionOverdue)
}

// Escalate sets the action to Escalated.
func (s *ActionServiceImpl) Escalate(ctx context.Context, actionID string) error {
	return s.SetActionStatus(ctx, actionID, status.ActionEscalated)
}

// DeleteAction deletes an action. Linked evidence is kept.
func (s *ActionServiceImpl) DeleteAction(ctx context.Context, actionID string) error {
	if !access.HasRole(actorOf(ctx).Role, access.Management) {
		return apperr.Denied("access denied")
	}
	if _, err := s.actionRepo.GetByID(ctx, actionID); err != nil {
		return err
	}
	if err := s.actionRepo.Delete(ctx, actionID); err != nil {
		return fmt.Errorf("failed to delete corrective action: %w", err)
	}
	s.activity.deleted(ctx, "corrective_action", actionID)
	return nil
}

// recordToAction converts a record and derives its deadline flags for today.
// A malformed deadline leaves the flags unset.
func recordToAction(r *secondary.ActionRecord, today time.Time) *primary.Action {
	a := &primary.Action{
		ID:                  r.ID,
		AuditID:             r.AuditID,
		ResponsiblePersonID: r.ResponsiblePersonID,
		ManagementID:        r.ManagementID,
		Description:         r.Description,
		Deadline:            r.Deadline,
		Status:              r.Status,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
	if deadline, err := calendar.ParseDate(r.Deadline); err == nil {
		a.IsOverdue = coreaction.IsOverdue(deadline, r.Status, today)
		a.IsCritical = coreaction.IsCritical(deadline, r.Status, today)
		a.DaysRemaining = coreaction.DaysRemaining(deadline, today)
	}
	return a
}

// Ensure ActionServiceImpl implements the interface
var _ primary.ActionService = (*ActionServiceImpl)(nil)
