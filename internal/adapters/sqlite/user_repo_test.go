package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/madar/internal/adapters/sqlite"
	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/access"
	"github.com/example/madar/internal/ports/secondary"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewUserRepository(database)
	ctx := context.Background()

	id, _ := repo.GetNextID(ctx)
	err := repo.Create(ctx, &secondary.UserRecord{
		ID:           id,
		Email:        "Layla@Example.com",
		Name:         "Layla",
		PasswordHash: "hash",
		UserType:     access.Auditor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "layla@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != id || got.Status != "active" {
		t.Errorf("unexpected user: %+v", got)
	}

	exists, _ := repo.EmailExists(ctx, "LAYLA@example.com")
	if !exists {
		t.Error("expected email lookup to ignore case")
	}

	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUserRepository_ListByType(t *testing.T) {
	database := setupTestDB(t)
	seedUser(t, database, "USER-001", "a@example.com", access.Auditor)
	seedUser(t, database, "USER-002", "b@example.com", access.Management)
	seedUser(t, database, "USER-003", "c@example.com", access.Auditor)
	repo := sqlite.NewUserRepository(database)

	auditors, err := repo.List(context.Background(), secondary.UserFilters{UserType: access.Auditor})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(auditors) != 2 {
		t.Errorf("expected 2 auditors, got %d", len(auditors))
	}
}

func TestPersonRepository_Roles(t *testing.T) {
	database := setupTestDB(t)
	ao := seedAreaOwner(t, database, "AO-001")
	seedUser(t, database, "USER-100", "resp@example.com", access.ResponsiblePerson)
	seedUser(t, database, "USER-101", "aud@example.com", access.Auditor)
	repo := sqlite.NewPersonRepository(database)
	ctx := context.Background()

	respID, err := repo.GetNextID(ctx, access.ResponsiblePerson)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if respID != "RESP-001" {
		t.Errorf("expected RESP-001, got %q", respID)
	}

	err = repo.Create(ctx, access.ResponsiblePerson, &secondary.PersonRecord{
		ID: respID, UserID: "USER-100", AreaOwnerID: ao,
		FirstName: "Rana", LastName: "R", Email: "resp@example.com",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	err = repo.Create(ctx, access.Auditor, &secondary.PersonRecord{
		ID: "AUDR-001", UserID: "USER-101", FirstName: "Adel", LastName: "A", Email: "aud@example.com",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	resp, err := repo.GetByUserID(ctx, access.ResponsiblePerson, "USER-100")
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if resp.AreaOwnerID != ao {
		t.Errorf("expected area owner %s, got %q", ao, resp.AreaOwnerID)
	}

	team, _ := repo.List(ctx, access.ResponsiblePerson, secondary.PersonFilters{AreaOwnerID: ao})
	if len(team) != 1 {
		t.Errorf("expected team of 1, got %d", len(team))
	}

	ok, _ := repo.Exists(ctx, access.Auditor, "AUDR-001")
	if !ok {
		t.Error("expected auditor to exist")
	}
	ok, _ = repo.Exists(ctx, access.Management, "AUDR-001")
	if ok {
		t.Error("profile ids are per role")
	}

	if _, err := repo.GetByID(ctx, "Janitor", "X-1"); !apperr.Is(err, apperr.KindInvalid) {
		t.Errorf("expected invalid role, got %v", err)
	}
}

func TestUserRepository_UpdateAccountAndPassword(t *testing.T) {
	database := setupTestDB(t)
	seedUser(t, database, "USER-001", "a@example.com", access.Auditor)
	repo := sqlite.NewUserRepository(database)
	ctx := context.Background()

	if err := repo.UpdateAccount(ctx, "USER-001", "Amal Nasser", "amal@example.com"); err != nil {
		t.Fatalf("UpdateAccount failed: %v", err)
	}
	if err := repo.UpdatePassword(ctx, "USER-001", "new-hash"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "amal@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != "USER-001" || got.Name != "Amal Nasser" || got.PasswordHash != "new-hash" {
		t.Errorf("unexpected user: %+v", got)
	}

	if err := repo.UpdatePassword(ctx, "USER-404", "x"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestPersonRepository_Update(t *testing.T) {
	database := setupTestDB(t)
	seedAreaOwner(t, database, "AO-001")
	repo := sqlite.NewPersonRepository(database)
	ctx := context.Background()

	err := repo.Update(ctx, access.AreaOwner, &secondary.PersonRecord{
		ID: "AO-001", FirstName: "Omar", LastName: "Saleh", Email: "omar@example.com", Extension: "410",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.GetByID(ctx, access.AreaOwner, "AO-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.LastName != "Saleh" || got.Email != "omar@example.com" || got.Extension != "410" || got.UserID != "USER-AO-001" {
		t.Errorf("unexpected profile: %+v", got)
	}

	if err := repo.Update(ctx, access.Auditor, &secondary.PersonRecord{ID: "AUDR-404"}); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
