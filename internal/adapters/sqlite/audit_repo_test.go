package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/madar/internal/adapters/sqlite"
	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ports/secondary"
)

func TestAuditRepository_CreateJoinsPlant(t *testing.T) {
	database := setupTestDB(t)
	f := seedFixture(t, database)
	repo := sqlite.NewAuditRepository(database)
	ctx := context.Background()

	id, _ := repo.GetNextID(ctx)
	err := repo.Create(ctx, &secondary.AuditRecord{
		ID:         id,
		ScheduleID: f.schedule,
		Title:      "Safety Audit - North Refinery - Mar 10, 2026",
		Status:     "In_Progress",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.PlantID != f.plant {
		t.Errorf("expected plant %s, got %s", f.plant, got.PlantID)
	}
	if got.Description != "" {
		t.Errorf("expected empty description, got %q", got.Description)
	}
}

func TestAuditRepository_StatusCheck(t *testing.T) {
	database := setupTestDB(t)
	f := seedFixture(t, database)
	seedAudit(t, database, "AUDIT-001", f.schedule, "Draft")
	repo := sqlite.NewAuditRepository(database)
	ctx := context.Background()

	if err := repo.UpdateStatus(ctx, "AUDIT-001", "Finished"); err == nil {
		t.Error("expected check constraint to reject unknown status")
	}
	if err := repo.UpdateStatus(ctx, "AUDIT-404", "Closed"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestAuditRepository_ListAndCountOpen(t *testing.T) {
	database := setupTestDB(t)
	f := seedFixture(t, database)
	seedAudit(t, database, "AUDIT-001", f.schedule, "Cancelled")
	seedAudit(t, database, "AUDIT-002", f.schedule, "In_Progress")
	seedSchedule(t, database, "SCHED-002", f.plant, "2026-06-01", "Scheduled")
	seedAudit(t, database, "AUDIT-003", "SCHED-002", "Draft")
	repo := sqlite.NewAuditRepository(database)
	ctx := context.Background()

	open, err := repo.CountOpenForSchedule(ctx, f.schedule)
	if err != nil {
		t.Fatalf("CountOpenForSchedule failed: %v", err)
	}
	if open != 1 {
		t.Errorf("expected 1 open audit, got %d", open)
	}

	byAuditor, err := repo.List(ctx, secondary.AuditFilters{AuditorID: f.auditor})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byAuditor) != 2 {
		t.Errorf("expected 2 audits on the allocated schedule, got %d", len(byAuditor))
	}

	drafts, _ := repo.List(ctx, secondary.AuditFilters{Status: "Draft", PlantID: f.plant})
	if len(drafts) != 1 || drafts[0].ID != "AUDIT-003" {
		t.Errorf("unexpected drafts: %+v", drafts)
	}
}

func TestAttendanceRepository_Entries(t *testing.T) {
	database := setupTestDB(t)
	f := seedFixture(t, database)
	seedAudit(t, database, "AUDIT-001", f.schedule, "In_Progress")
	repo := sqlite.NewAttendanceRepository(database)
	ctx := context.Background()

	id, _ := repo.GetNextID(ctx)
	entry := &secondary.AttendanceRecord{
		ID:          id,
		AuditID:     "AUDIT-001",
		AuditorID:   f.auditor,
		AttendDate:  "2026-03-10",
		Status:      "Present",
		ArrivalTime: "08:00",
	}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	entry.DepartureTime = "07:30"
	if err := repo.Update(ctx, entry); err == nil {
		t.Error("expected check constraint to reject departure before arrival")
	}

	entry.DepartureTime = "16:30"
	if err := repo.Update(ctx, entry); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.GetByAuditAndAuditor(ctx, "AUDIT-001", f.auditor)
	if err != nil {
		t.Fatalf("GetByAuditAndAuditor failed: %v", err)
	}
	if got.DepartureTime != "16:30" || got.ResponsiblePersonID != "" {
		t.Errorf("unexpected entry: %+v", got)
	}

	dup := *entry
	dup.ID = "ATT-999"
	if err := repo.Create(ctx, &dup); err == nil {
		t.Error("expected one entry per auditor per audit")
	}

	list, _ := repo.ListByAudit(ctx, "AUDIT-001")
	if len(list) != 1 {
		t.Errorf("expected 1 entry, got %d", len(list))
	}

	_, err = repo.GetByAuditAndAuditor(ctx, "AUDIT-001", "AUDR-999")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
