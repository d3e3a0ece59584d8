package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ports/primary"
	"github.com/example/madar/internal/ports/secondary"
)

func newTestPeopleService() (*PeopleServiceImpl, *mockUserRepository, *mockPersonRepository, *mockTransactor) {
	users := newMockUserRepository()
	people := newMockPersonRepository()
	tx := &mockTransactor{}
	people.add("AreaOwner", &secondary.PersonRecord{ID: "AOWN-001"})

	service := NewPeopleService(users, people, plainHasher{}, tx, &mockLogWriter{}, nil)
	return service, users, people, tx
}

func validUserRequest() primary.CreateUserRequest {
	return primary.CreateUserRequest{
		Email:     "Omar.Saleh@Plant.test",
		Password:  "long-enough",
		FirstName: "Omar",
		LastName:  "Saleh",
		Role:      "ResponsiblePerson",
		JobTitle:  "Shift Supervisor",
	}
}

func TestCreateUser_Success(t *testing.T) {
	service, users, people, tx := newTestPeopleService()
	req := validUserRequest()
	req.AreaOwnerID = "AOWN-001"

	resp, err := service.CreateUser(managementCtx(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	user := users.users[resp.UserID]
	if user == nil {
		t.Fatal("expected user created")
	}
	if user.Email != "omar.saleh@plant.test" || user.PasswordHash != "hashed:long-enough" || user.Name != "Omar Saleh" {
		t.Errorf("unexpected user %+v", user)
	}
	profile := people.people["ResponsiblePerson"][resp.ProfileID]
	if profile == nil || profile.UserID != resp.UserID || profile.AreaOwnerID != "AOWN-001" || profile.Role != "Shift Supervisor" {
		t.Errorf("unexpected profile %+v", profile)
	}
	if tx.calls != 1 {
		t.Errorf("expected 1 transaction, got %d", tx.calls)
	}
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *primary.CreateUserRequest)
		wantKind apperr.Kind
	}{
		{"bad role", func(r *primary.CreateUserRequest) { r.Role = "Intern" }, apperr.KindInvalid},
		{"missing last name", func(r *primary.CreateUserRequest) { r.LastName = " " }, apperr.KindInvalid},
		{"bad email", func(r *primary.CreateUserRequest) { r.Email = "not-an-email" }, apperr.KindInvalid},
		{"short password", func(r *primary.CreateUserRequest) { r.Password = "short" }, apperr.KindInvalid},
		{"area owner on auditor", func(r *primary.CreateUserRequest) {
			r.Role = "Auditor"
			r.AreaOwnerID = "AOWN-001"
		}, apperr.KindInvalid},
		{"unknown area owner", func(r *primary.CreateUserRequest) { r.AreaOwnerID = "AOWN-404" }, apperr.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, users, _, _ := newTestPeopleService()
			req := validUserRequest()
			tt.mutate(&req)

			_, err := service.CreateUser(managementCtx(), req)
			if apperr.KindOf(err) != tt.wantKind {
				t.Errorf("expected kind %v, got %v", tt.wantKind, err)
			}
			if len(users.users) != 0 {
				t.Error("expected no user created")
			}
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	service, users, _, _ := newTestPeopleService()
	users.users["USER-001"] = &secondary.UserRecord{ID: "USER-001", Email: "omar.saleh@plant.test"}

	_, err := service.CreateUser(managementCtx(), validUserRequest())
	if !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestCreateUser_NonManagementDenied(t *testing.T) {
	service, _, _, _ := newTestPeopleService()

	_, err := service.CreateUser(auditorCtx("AUDR-001"), validUserRequest())
	if !apperr.Is(err, apperr.KindDenied) {
		t.Errorf("expected denied, got %v", err)
	}
}

func TestCreateUser_ProfileFailureSurfaces(t *testing.T) {
	service, _, people, _ := newTestPeopleService()
	people.createErr = errors.New("constraint failed")

	if _, err := service.CreateUser(managementCtx(), validUserRequest()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestListPeople(t *testing.T) {
	service, _, people, _ := newTestPeopleService()
	people.add("ResponsiblePerson", &secondary.PersonRecord{ID: "RESP-001", FirstName: "Lina", LastName: "Aziz", AreaOwnerID: "AOWN-001"})
	people.add("ResponsiblePerson", &secondary.PersonRecord{ID: "RESP-002", FirstName: "Karim", LastName: "Nasser", AreaOwnerID: "AOWN-002"})

	team, err := service.ListPeople(managementCtx(), "ResponsiblePerson", primary.PersonFilters{AreaOwnerID: "AOWN-001"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(team) != 1 || team[0].Name != "Lina Aziz" || team[0].Role != "ResponsiblePerson" {
		t.Errorf("unexpected team %+v", team)
	}

	if _, err := service.ListPeople(managementCtx(), "Janitor", primary.PersonFilters{}); !apperr.Is(err, apperr.KindInvalid) {
		t.Errorf("expected invalid role, got %v", err)
	}
}

func seedProfileOwner(users *mockUserRepository, people *mockPersonRepository) {
	users.users["USER-AUDR-001"] = &secondary.UserRecord{
		ID: "USER-AUDR-001", Email: "sara@plant.test", Name: "Sara Nasser", UserType: "Auditor", Status: "active",
	}
	users.users["USER-002"] = &secondary.UserRecord{ID: "USER-002", Email: "omar@plant.test", UserType: "Management"}
	people.add("Auditor", &secondary.PersonRecord{
		ID: "AUDR-001", UserID: "USER-AUDR-001", FirstName: "Sara", LastName: "Nasser",
		Email: "sara@plant.test", Extension: "201", Role: "Lead Auditor",
	})
}

func TestMyProfile(t *testing.T) {
	service, users, people, _ := newTestPeopleService()
	seedProfileOwner(users, people)

	p, err := service.MyProfile(auditorCtx("AUDR-001"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.ID != "AUDR-001" || p.Name != "Sara Nasser" || p.JobTitle != "Lead Auditor" {
		t.Errorf("unexpected profile %+v", p)
	}

	if _, err := service.MyProfile(context.Background()); !apperr.Is(err, apperr.KindDenied) {
		t.Errorf("expected access denied without an actor, got %v", err)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	service, users, people, tx := newTestPeopleService()
	seedProfileOwner(users, people)

	p, err := service.UpdateProfile(auditorCtx("AUDR-001"), primary.UpdateProfileRequest{
		LastName: "Haddad", Email: "Sara.Haddad@Plant.test",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Name != "Sara Haddad" || p.Email != "sara.haddad@plant.test" || p.Extension != "201" {
		t.Errorf("unexpected profile %+v", p)
	}
	if u := users.users["USER-AUDR-001"]; u.Name != "Sara Haddad" || u.Email != "sara.haddad@plant.test" {
		t.Errorf("expected account updated, got %+v", u)
	}
	if stored := people.people["Auditor"]["AUDR-001"]; stored.LastName != "Haddad" || stored.Role != "Lead Auditor" {
		t.Errorf("expected profile updated with job title kept, got %+v", stored)
	}
	if tx.calls != 1 {
		t.Errorf("expected 1 transaction, got %d", tx.calls)
	}
}

func TestUpdateProfile_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		req      primary.UpdateProfileRequest
		wantKind apperr.Kind
		wantMsg  string
	}{
		{"email taken", primary.UpdateProfileRequest{Email: "OMAR@plant.test"}, apperr.KindConflict, "email omar@plant.test is already taken"},
		{"bad email", primary.UpdateProfileRequest{Email: "sara-at-plant"}, apperr.KindInvalid, `invalid email "sara-at-plant"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, users, people, _ := newTestPeopleService()
			seedProfileOwner(users, people)

			_, err := service.UpdateProfile(auditorCtx("AUDR-001"), tt.req)
			if !apperr.Is(err, tt.wantKind) || apperr.Message(err) != tt.wantMsg {
				t.Errorf("expected %v %q, got %v", tt.wantKind, tt.wantMsg, err)
			}
			if users.users["USER-AUDR-001"].Email != "sara@plant.test" {
				t.Error("expected account unchanged")
			}
		})
	}
}

func TestUpdateProfile_KeepsOwnEmail(t *testing.T) {
	service, users, people, _ := newTestPeopleService()
	seedProfileOwner(users, people)

	if _, err := service.UpdateProfile(auditorCtx("AUDR-001"), primary.UpdateProfileRequest{Email: "sara@plant.test", Extension: "305"}); err != nil {
		t.Fatalf("expected own email accepted, got %v", err)
	}
	if people.people["Auditor"]["AUDR-001"].Extension != "305" {
		t.Error("expected extension updated")
	}
}
