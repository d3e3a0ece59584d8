package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/access"
	coreaction "github.com/example/madar/internal/core/action"
	"github.com/example/madar/internal/core/calendar"
	"github.com/example/madar/internal/core/report"
	"github.com/example/madar/internal/core/status"
	"github.com/example/madar/internal/ports/primary"
	"github.com/example/madar/internal/ports/secondary"
)

// Notification kinds.
const (
	NotifyOverdueAction = "overdue_action"
	NotifyAuditToday    = "audit_today"
	NotifyActionDueSoon = "action_due_soon"
)

const (
	upcomingWindowDays = 7
	recentUsersDays    = 7
	recentUsersLimit   = 5
	recentClosedLimit  = 5
)

// ReportRepos groups the repositories the report service reads.
type ReportRepos struct {
	Reports   secondary.ReportRepository
	Plants    secondary.PlantRepository
	Equipment secondary.EquipmentRepository
	Schedules secondary.ScheduleRepository
	Audits    secondary.AuditRepository
	Actions   secondary.ActionRepository
	People    secondary.PersonRepository
}

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	repos         ReportRepos
	defaultPeriod string
	clock         Clock
	logger        *zap.Logger
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(repos ReportRepos, defaultPeriod string, clock Clock, logger *zap.Logger) *ReportServiceImpl {
	if defaultPeriod == "" {
		defaultPeriod = string(report.Monthly)
	}
	return &ReportServiceImpl{
		repos:         repos,
		defaultPeriod: defaultPeriod,
		clock:         clockOrNow(clock),
		logger:        loggerOrNop(logger),
	}
}

// PerformanceReport computes rates, rollups and the score timeline.
// Compliance and average score cover completed (scored) audits; completion
// covers every audit in scope.
func (s *ReportServiceImpl) PerformanceReport(ctx context.Context, req primary.PerformanceReportRequest) (*primary.PerformanceReport, error) {
	if !access.HasRole(actorOf(ctx).Role, access.Management) {
		return nil, apperr.Denied("access denied")
	}
	if req.Period == "" {
		req.Period = s.defaultPeriod
	}
	period, err := report.ParsePeriod(req.Period)
	if err != nil {
		return nil, err
	}

	filters := secondary.ReportFilters{PlantID: req.PlantID, AuditorID: req.AuditorID}
	var (
		audits      []secondary.AuditFact
		allocations []secondary.AllocationFact
		actions     []secondary.ActionFact
		plants      []secondary.PlantFact
		auditors    []secondary.AuditorFact
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { audits, err = s.repos.Reports.AuditFacts(gctx, filters); return })
	g.Go(func() (err error) { allocations, err = s.repos.Reports.AllocationFacts(gctx, filters); return })
	g.Go(func() (err error) { actions, err = s.repos.Reports.ActionFacts(gctx, filters); return })
	g.Go(func() (err error) { plants, err = s.repos.Reports.PlantFacts(gctx, filters); return })
	g.Go(func() (err error) { auditors, err = s.repos.Reports.AuditorFacts(gctx, filters); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load report facts: %w", err)
	}

	now := s.clock()
	today := calendar.Day(now)

	auditorsBySchedule := make(map[string][]string)
	for _, a := range allocations {
		auditorsBySchedule[a.ScheduleID] = append(auditorsBySchedule[a.ScheduleID], a.AuditorID)
	}

	var (
		scores   []*float64
		all      []report.ScoredAudit
		timeline []report.TimelinePoint
		closed   int
	)
	for _, a := range audits {
		sa := report.ScoredAudit{
			AuditID:     a.AuditID,
			PlantID:     a.PlantID,
			AuditStatus: a.Status,
			Scored:      a.HasHistory,
			Score:       a.Score,
			AuditorIDs:  auditorsBySchedule[a.ScheduleID],
		}
		all = append(all, sa)
		if a.Status == status.AuditClosed {
			closed++
		}
		if !a.HasHistory {
			continue
		}
		scores = append(scores, a.Score)
		if a.HistoryCreatedAt != nil {
			timeline = append(timeline, report.TimelinePoint{CreatedAt: *a.HistoryCreatedAt, Score: a.Score})
		}
	}

	result := &primary.PerformanceReport{
		Period:         string(period),
		GeneratedAt:    now,
		TotalAudits:    len(audits),
		ComplianceRate: report.ComplianceRate(scores),
		AverageScore:   report.AverageScore(scores),
		CompletionRate: report.CompletionRate(len(audits), closed),
	}

	for _, a := range actions {
		if a.Status != status.ActionCompleted {
			result.OpenActions++
		}
		if deadline, err := calendar.ParseDate(a.Deadline); err == nil && coreaction.IsOverdue(deadline, a.Status, today) {
			result.OverdueActions++
		}
	}

	plantFacts := make([]report.PlantFacts, len(plants))
	for i, p := range plants {
		plantFacts[i] = report.PlantFacts{PlantID: p.PlantID, Name: p.Name, EquipmentCount: p.EquipmentCount}
	}
	for _, row := range report.BuildPlantPerformance(plantFacts, all) {
		result.PlantPerformance = append(result.PlantPerformance, primary.PlantPerformanceRow(row))
	}

	auditorFacts := make([]report.AuditorFacts, len(auditors))
	for i, a := range auditors {
		auditorFacts[i] = report.AuditorFacts{AuditorID: a.AuditorID, Name: a.Name}
	}
	for _, row := range report.BuildAuditorPerformance(auditorFacts, all, status.AuditClosed) {
		result.AuditorPerformance = append(result.AuditorPerformance, primary.AuditorPerformanceRow(row))
	}

	for _, b := range report.BuildTimeline(timeline, period, now) {
		result.Timeline = append(result.Timeline, primary.TimelinePoint{Label: b.Label, AverageScore: b.AverageScore, Count: b.Count})
	}

	s.logger.Debug("performance report built",
		zap.String("period", result.Period),
		zap.Int("audits", result.TotalAudits))
	return result, nil
}

// ManagementDashboard summarises the whole system.
func (s *ReportServiceImpl) ManagementDashboard(ctx context.Context) (*primary.ManagementDashboard, error) {
	if !access.HasRole(actorOf(ctx).Role, access.Management) {
		return nil, apperr.Denied("access denied")
	}

	now := s.clock()
	today := calendar.Day(now)
	d := &primary.ManagementDashboard{}

	var (
		actionsByStatus map[string]int
		actions         []*secondary.ActionRecord
		upcoming        []*secondary.ScheduleRecord
		recent          []secondary.UserFact
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { d.TotalPlants, err = s.repos.Reports.CountRows(gctx, secondary.TablePlants); return })
	g.Go(func() (err error) { d.TotalEquipment, err = s.repos.Reports.CountRows(gctx, secondary.TableEquipment); return })
	g.Go(func() (err error) { d.TotalAudits, err = s.repos.Reports.CountRows(gctx, secondary.TableAudits); return })
	g.Go(func() (err error) { d.TotalUsers, err = s.repos.Reports.CountRows(gctx, secondary.TableUsers); return })
	g.Go(func() (err error) { d.AuditsByStatus, err = s.repos.Reports.CountByStatus(gctx, secondary.TableAudits); return })
	g.Go(func() (err error) { actionsByStatus, err = s.repos.Reports.CountByStatus(gctx, secondary.TableActions); return })
	g.Go(func() (err error) { actions, err = s.repos.Actions.List(gctx, secondary.ActionFilters{}); return })
	g.Go(func() (err error) {
		upcoming, err = s.repos.Schedules.List(gctx, secondary.ScheduleFilters{
			Status:   status.ScheduleScheduled,
			FromDate: calendar.FormatDate(today),
			ToDate:   calendar.FormatDate(calendar.AddDays(today, upcomingWindowDays)),
		})
		return
	})
	g.Go(func() (err error) {
		recent, err = s.repos.Reports.RecentUsers(gctx, now.AddDate(0, 0, -recentUsersDays), recentUsersLimit)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	d.PendingAudits = d.AuditsByStatus[status.AuditDraft]
	d.AuditCompletionRate = report.CompletionRate(d.TotalAudits, d.AuditsByStatus[status.AuditClosed])
	totalActions := 0
	for _, n := range actionsByStatus {
		totalActions += n
	}
	d.ActionCompletionRate = report.CompletionRate(totalActions, actionsByStatus[status.ActionCompleted])

	weekStart := calendar.StartOfWeek(today)
	weekEnd := calendar.AddDays(weekStart, 6)
	for _, r := range actions {
		a := recordToAction(r, today)
		if a.IsOverdue {
			d.OverdueActions++
		}
		if a.IsCritical {
			d.CriticalActions++
		}
		if deadline, err := calendar.ParseDate(r.Deadline); err == nil &&
			r.Status != status.ActionCompleted &&
			!deadline.Before(weekStart) && !deadline.After(weekEnd) {
			d.ActionsDueThisWeek = append(d.ActionsDueThisWeek, a)
		}
	}

	for _, r := range upcoming {
		d.UpcomingSchedules = append(d.UpcomingSchedules, recordToSchedule(r))
	}
	for _, u := range recent {
		d.RecentUsers = append(d.RecentUsers, primary.RecentUser{
			UserID:    u.UserID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.UserType,
			CreatedAt: u.CreatedAt,
		})
	}

	d.Notifications = buildNotifications(actions, upcoming, today)
	return d, nil
}

// AuditorDashboard summarises the acting auditor's work.
func (s *ReportServiceImpl) AuditorDashboard(ctx context.Context) (*primary.AuditorDashboard, error) {
	actor := actorOf(ctx)
	if actor.Role != access.Auditor {
		return nil, apperr.Denied("access denied")
	}

	today := s.clock.today()
	todayStr := calendar.FormatDate(today)
	d := &primary.AuditorDashboard{}

	var (
		upcoming []*secondary.ScheduleRecord
		closed   []*secondary.AuditRecord
		mine     []*secondary.AuditRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		upcoming, err = s.repos.Schedules.List(gctx, secondary.ScheduleFilters{
			AuditorID: actor.ProfileID,
			Status:    status.ScheduleScheduled,
			FromDate:  todayStr,
		})
		return
	})
	g.Go(func() (err error) {
		closed, err = s.repos.Audits.List(gctx, secondary.AuditFilters{
			AuditorID: actor.ProfileID,
			Status:    status.AuditClosed,
			Limit:     recentClosedLimit,
		})
		return
	})
	g.Go(func() (err error) {
		mine, err = s.repos.Audits.List(gctx, secondary.AuditFilters{AuditorID: actor.ProfileID})
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	for _, r := range upcoming {
		sched := recordToSchedule(r)
		d.UpcomingSchedules = append(d.UpcomingSchedules, sched)
		if r.ScheduleDate == todayStr {
			d.TodaySchedules = append(d.TodaySchedules, sched)
		}
	}
	for _, r := range closed {
		d.RecentClosed = append(d.RecentClosed, recordToAudit(r))
	}
	for _, r := range mine {
		if r.Status == status.AuditDraft || r.Status == status.AuditInProgress {
			d.PendingAudits++
		}
	}
	return d, nil
}

// AreaOwnerDashboard summarises the plants owned by the acting area owner.
func (s *ReportServiceImpl) AreaOwnerDashboard(ctx context.Context) (*primary.AreaOwnerDashboard, error) {
	actor := actorOf(ctx)
	if actor.Role != access.AreaOwner {
		return nil, apperr.Denied("access denied")
	}

	plants, err := s.repos.Plants.List(ctx, secondary.PlantFilters{AreaOwnerID: actor.ProfileID})
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	team, err := s.repos.People.List(ctx, access.ResponsiblePerson, secondary.PersonFilters{AreaOwnerID: actor.ProfileID})
	if err != nil {
		return nil, fmt.Errorf("failed to list team: %w", err)
	}

	today := s.clock.today()
	d := &primary.AreaOwnerDashboard{TeamSize: len(team)}

	type plantView struct {
		maintenance int
		schedules   []*secondary.ScheduleRecord
		actions     []*secondary.ActionRecord
	}
	views := make([]plantView, len(plants))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range plants {
		d.Plants = append(d.Plants, recordToPlant(p))
		d.EquipmentCount += p.EquipmentCount
		g.Go(func() error {
			n, err := s.repos.Equipment.Count(gctx, secondary.EquipmentFilters{PlantID: p.ID, Status: status.EquipmentUnderMaintenance})
			if err != nil {
				return err
			}
			schedules, err := s.repos.Schedules.List(gctx, secondary.ScheduleFilters{
				PlantID:  p.ID,
				Status:   status.ScheduleScheduled,
				FromDate: calendar.FormatDate(today),
			})
			if err != nil {
				return err
			}
			actions, err := s.repos.Actions.List(gctx, secondary.ActionFilters{PlantID: p.ID})
			if err != nil {
				return err
			}
			views[i] = plantView{maintenance: n, schedules: schedules, actions: actions}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	var allActions []*secondary.ActionRecord
	var allSchedules []*secondary.ScheduleRecord
	for _, v := range views {
		d.EquipmentInMaintenance += v.maintenance
		for _, r := range v.schedules {
			d.UpcomingSchedules = append(d.UpcomingSchedules, recordToSchedule(r))
		}
		for _, r := range v.actions {
			a := recordToAction(r, today)
			if r.Status != status.ActionCompleted {
				d.OpenActions++
			}
			if a.IsOverdue {
				d.OverdueActions++
			}
		}
		allActions = append(allActions, v.actions...)
		allSchedules = append(allSchedules, v.schedules...)
	}
	d.Notifications = buildNotifications(allActions, allSchedules, today)
	return d, nil
}

// buildNotifications lists overdue actions, audits scheduled today and
// actions due within the critical window, in that order.
func buildNotifications(actions []*secondary.ActionRecord, schedules []*secondary.ScheduleRecord, today time.Time) []primary.Notification {
	var overdue, dueSoon, auditsToday []primary.Notification
	for _, r := range actions {
		deadline, err := calendar.ParseDate(r.Deadline)
		if err != nil {
			continue
		}
		switch {
		case coreaction.IsOverdue(deadline, r.Status, today):
			overdue = append(overdue, primary.Notification{
				Kind:     NotifyOverdueAction,
				EntityID: r.ID,
				Message:  fmt.Sprintf("corrective action %s is overdue (deadline %s)", r.ID, r.Deadline),
				Severity: string(status.ColorDanger),
			})
		case coreaction.IsCritical(deadline, r.Status, today):
			dueSoon = append(dueSoon, primary.Notification{
				Kind:     NotifyActionDueSoon,
				EntityID: r.ID,
				Message:  fmt.Sprintf("corrective action %s is due in %d day(s)", r.ID, coreaction.DaysRemaining(deadline, today)),
				Severity: string(status.ColorWarning),
			})
		}
	}

	todayStr := calendar.FormatDate(today)
	for _, r := range schedules {
		if r.ScheduleDate != todayStr || r.Status != status.ScheduleScheduled {
			continue
		}
		auditsToday = append(auditsToday, primary.Notification{
			Kind:     NotifyAuditToday,
			EntityID: r.ID,
			Message:  fmt.Sprintf("audit at %s scheduled today", r.PlantName),
			Severity: string(status.ColorInfo),
		})
	}

	out := append(overdue, auditsToday...)
	return append(out, dueSoon...)
}

// Ensure ReportServiceImpl implements the interface
var _ primary.ReportService = (*ReportServiceImpl)(nil)
