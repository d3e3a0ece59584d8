package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/access"
	coreaudit "github.com/example/madar/internal/core/audit"
	corehistory "github.com/example/madar/internal/core/history"
	"github.com/example/madar/internal/core/status"
	"github.com/example/madar/internal/ports/primary"
	"github.com/example/madar/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	historyRepo secondary.HistoryRepository
	auditRepo   secondary.AuditRepository
	transactor  secondary.Transactor
	logger      *zap.Logger
	activity    activity
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(
	historyRepo secondary.HistoryRepository,
	auditRepo secondary.AuditRepository,
	transactor secondary.Transactor,
	logWriter secondary.LogWriter,
	logger *zap.Logger,
) *HistoryServiceImpl {
	logger = loggerOrNop(logger)
	return &HistoryServiceImpl{
		historyRepo: historyRepo,
		auditRepo:   auditRepo,
		transactor:  transactor,
		logger:      logger,
		activity:    activity{writer: logWriter, logger: logger},
	}
}

// GetHistory retrieves a completion record.
func (s *HistoryServiceImpl) GetHistory(ctx context.Context, historyID string) (*primary.History, error) {
	record, err := s.historyRepo.GetByID(ctx, historyID)
	if err != nil {
		return nil, err
	}
	return recordToHistory(record), nil
}

// ListHistories lists completion records. Area owners only see their own plants' records.
func (s *HistoryServiceImpl) ListHistories(ctx context.Context, filters primary.HistoryFilters) ([]*primary.History, error) {
	if filters.EscalationLevel != "" && !status.IsValidEscalationLevel(filters.EscalationLevel) {
		return nil, apperr.Invalid("invalid escalation level %q", filters.EscalationLevel)
	}
	if filters.Status != "" && !status.IsValidReviewStatus(filters.Status) {
		return nil, apperr.Invalid("invalid review status %q", filters.Status)
	}

	repoFilters := secondary.HistoryFilters{
		Status:          filters.Status,
		EscalationLevel: filters.EscalationLevel,
		Limit:           filters.Limit,
	}
	if actor := actorOf(ctx); actor.Role == access.AreaOwner || filters.Mine {
		repoFilters.AreaOwnerID = actor.ProfileID
	}

	records, err := s.historyRepo.List(ctx, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list histories: %w", err)
	}
	out := make([]*primary.History, len(records))
	for i, r := range records {
		out[i] = recordToHistory(r)
	}
	return out, nil
}

// ReviewHistory records a management review. Approval also closes the audit.
func (s *HistoryServiceImpl) ReviewHistory(ctx context.Context, req primary.ReviewHistoryRequest) error {
	history, err := s.historyRepo.GetByID(ctx, req.HistoryID)
	if err != nil {
		return err
	}
	audit, err := s.auditRepo.GetByID(ctx, history.AuditID)
	if err != nil {
		return err
	}

	guardCtx := corehistory.ReviewContext{
		HistoryID:     req.HistoryID,
		ActorRole:     actorOf(ctx).Role,
		CurrentStatus: history.Status,
		NewStatus:     req.Status,
		AuditStatus:   audit.Status,
	}
	if result := corehistory.CanReview(guardCtx); !result.Allowed {
		return result.Error()
	}

	closing := req.Status == status.ReviewApproved
	if closing {
		if result := coreaudit.CanTransition(audit.ID, audit.Status, status.AuditClosed); !result.Allowed {
			return result.Error()
		}
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.historyRepo.UpdateReview(ctx, req.HistoryID, req.Status, req.Comments); err != nil {
			return fmt.Errorf("failed to record review: %w", err)
		}
		if closing {
			if err := s.auditRepo.UpdateStatus(ctx, audit.ID, status.AuditClosed); err != nil {
				return fmt.Errorf("failed to close audit: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.activity.updated(ctx, "audit_history", req.HistoryID, "status", history.Status, req.Status)
	if closing {
		s.activity.updated(ctx, "audit", audit.ID, "status", audit.Status, status.AuditClosed)
	}
	s.logger.Info("audit history reviewed",
		zap.String("history", req.HistoryID),
		zap.String("status", req.Status))
	return nil
}

func recordToHistory(r *secondary.HistoryRecord) *primary.History {
	return &primary.History{
		ID:              r.ID,
		AuditID:         r.AuditID,
		AreaOwnerID:     r.AreaOwnerID,
		ManagementID:    r.ManagementID,
		Title:           r.Title,
		Status:          r.Status,
		Score:           r.Score,
		Comments:        r.Comments,
		EscalationLevel: r.EscalationLevel,
		Priority:        status.EscalationLevel(r.EscalationLevel).Priority(),
		ReviewComments:  r.ReviewComments,
		CreatedAt:       r.CreatedAt,
	}
}

// Ensure HistoryServiceImpl implements the interface
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
