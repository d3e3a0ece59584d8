package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ports/primary"
)

// PeopleAdapter translates account and session commands to PeopleService and
// AuthService calls.
type PeopleAdapter struct {
	people primary.PeopleService
	auth   primary.AuthService
	out    io.Writer
}

// NewPeopleAdapter creates a new PeopleAdapter with the given services.
func NewPeopleAdapter(people primary.PeopleService, auth primary.AuthService, out io.Writer) *PeopleAdapter {
	return &PeopleAdapter{people: people, auth: auth, out: out}
}

// CreateUser creates an account and its role profile.
func (a *PeopleAdapter) CreateUser(ctx context.Context, req primary.CreateUserRequest) error {
	resp, err := a.people.CreateUser(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Created %s %s (user %s)", req.Role, resp.ProfileID, resp.UserID))
	return nil
}

// List prints the profiles of a role.
func (a *PeopleAdapter) List(ctx context.Context, role string, filters primary.PersonFilters) error {
	people, err := a.people.ListPeople(ctx, role, filters)
	if err != nil {
		return err
	}
	if len(people) == 0 {
		fmt.Fprintf(a.out, "No %s profiles found\n", role)
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-24s %-28s %s\n", "ID", "NAME", "EMAIL", "JOB TITLE")
	fmt.Fprintln(a.out, rule)
	for _, p := range people {
		fmt.Fprintf(a.out, "%s %-24s %-28s %s\n", idCell(p.ID, 10), p.Name, p.Email, orDash(p.JobTitle))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show prints one profile.
func (a *PeopleAdapter) Show(ctx context.Context, role, id string) error {
	p, err := a.people.GetPerson(ctx, role, id)
	if err != nil {
		return err
	}
	a.printPerson(p)
	return nil
}

func (a *PeopleAdapter) printPerson(p *primary.Person) {
	fmt.Fprintf(a.out, "\n%s: %s\n", p.Role, p.ID)
	fmt.Fprintf(a.out, "Name:      %s\n", p.Name)
	fmt.Fprintf(a.out, "Email:     %s\n", p.Email)
	fmt.Fprintf(a.out, "User:      %s\n", p.UserID)
	fmt.Fprintf(a.out, "Job title: %s\n", orDash(p.JobTitle))
	fmt.Fprintf(a.out, "Extension: %s\n", orDash(p.Extension))
	if p.AreaOwnerID != "" {
		fmt.Fprintf(a.out, "Reports to: %s\n", p.AreaOwnerID)
	}
	fmt.Fprintln(a.out)
}

// MyProfile prints the logged-in user's profile.
func (a *PeopleAdapter) MyProfile(ctx context.Context) error {
	p, err := a.people.MyProfile(ctx)
	if err != nil {
		return err
	}
	a.printPerson(p)
	return nil
}

// UpdateProfile changes the logged-in user's profile.
func (a *PeopleAdapter) UpdateProfile(ctx context.Context, req primary.UpdateProfileRequest) error {
	if req == (primary.UpdateProfileRequest{}) {
		return apperr.Invalid("nothing to update: pass --first-name, --last-name, --email or --extension")
	}
	p, err := a.people.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Profile updated: %s <%s>", p.Name, p.Email))
	return nil
}

// ChangePassword replaces the logged-in user's password.
func (a *PeopleAdapter) ChangePassword(ctx context.Context, current, next string) error {
	if err := a.auth.ChangePassword(ctx, current, next); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Password updated"))
	return nil
}

// Login starts a session.
func (a *PeopleAdapter) Login(ctx context.Context, email, password string) error {
	session, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Logged in as %s (%s %s)", session.Name, session.Role, session.ProfileID))
	return nil
}

// Logout ends the session.
func (a *PeopleAdapter) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Logged out"))
	return nil
}

// WhoAmI prints the active session.
func (a *PeopleAdapter) WhoAmI(ctx context.Context) error {
	session, err := a.auth.Resume(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\n", session.Name, session.Email)
	fmt.Fprintf(a.out, "Role:    %s %s\n", session.Role, session.ProfileID)
	fmt.Fprintf(a.out, "Since:   %s\n", session.LoginAt.Format("2006-01-02 15:04"))
	return nil
}
