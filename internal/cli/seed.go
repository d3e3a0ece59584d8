package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/madar/internal/core/calendar"
	"github.com/example/madar/internal/ctxutil"
	"github.com/example/madar/internal/ports/primary"
	"github.com/example/madar/internal/wire"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "demo-pass-123"

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty database with demo data",
		Long: `Create demo accounts, plants, equipment, schedules, audits and corrective
actions, run as the logged-in management user. Every demo account uses the
password ` + DemoPassword + `.`,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			return SeedDemo(NewContext(), svc, time.Now(), os.Stdout)
		}),
	}
}

// SeedDemo creates a small, consistent data set through the services, so every
// guard applies. ctx must carry a management actor.
func SeedDemo(ctx context.Context, svc *wire.Services, today time.Time, out io.Writer) error {
	auditors, err := svc.People.ListPeople(ctx, "Auditor", primary.PersonFilters{})
	if err != nil {
		return err
	}
	if len(auditors) > 0 {
		return usagef("database already has auditors; seed expects an empty database")
	}

	user := func(email, first, last, role, areaOwnerID string) (context.Context, string, error) {
		resp, err := svc.People.CreateUser(ctx, primary.CreateUserRequest{
			Email: email, Password: DemoPassword, FirstName: first, LastName: last,
			Role: role, AreaOwnerID: areaOwnerID,
		})
		if err != nil {
			return nil, "", fmt.Errorf("seed %s: %w", email, err)
		}
		actor := ctxutil.Actor{UserID: resp.UserID, Role: role, ProfileID: resp.ProfileID}
		return ctxutil.WithActor(context.Background(), actor), resp.ProfileID, nil
	}

	_, ownerID, err := user("owner@madar.demo", "Karim", "Aziz", "AreaOwner", "")
	if err != nil {
		return err
	}
	leadCtx, leadID, err := user("lead.auditor@madar.demo", "Sara", "Nasser", "Auditor", "")
	if err != nil {
		return err
	}
	fieldCtx, fieldID, err := user("field.auditor@madar.demo", "Omar", "Saleh", "Auditor", "")
	if err != nil {
		return err
	}
	_, fixerID, err := user("maintenance@madar.demo", "Huda", "Fares", "ResponsiblePerson", ownerID)
	if err != nil {
		return err
	}
	if _, _, err := user("electrical@madar.demo", "Yusuf", "Kamal", "ResponsiblePerson", ownerID); err != nil {
		return err
	}

	plants := make([]string, 0, 2)
	for _, p := range []primary.SavePlantRequest{
		{Name: "North Refinery", Location: "Zone A", Type: "Refinery", Capacity: 1200, AreaOwnerID: ownerID},
		{Name: "South Works", Location: "Zone C", Type: "Processing", Capacity: 400, AreaOwnerID: ownerID},
	} {
		plant, err := svc.Plants.CreatePlant(ctx, p)
		if err != nil {
			return fmt.Errorf("seed plant %s: %w", p.Name, err)
		}
		plants = append(plants, plant.ID)
	}

	for _, e := range []primary.SaveEquipmentRequest{
		{PlantID: plants[0], Name: "Boiler 1", Type: "Boiler", Model: "BX-200", Capacity: 50, MaintenanceCycle: 90},
		{PlantID: plants[0], Name: "Cooling Tower", Type: "Cooling", Model: "CT-9", Capacity: 80, MaintenanceCycle: 180},
		{PlantID: plants[1], Name: "Conveyor 3", Type: "Conveyor", Status: "Under_Maintenance", Capacity: 20, MaintenanceCycle: 30},
	} {
		if _, err := svc.Plants.AddEquipment(ctx, e); err != nil {
			return fmt.Errorf("seed equipment %s: %w", e.Name, err)
		}
	}

	schedule := func(plantID string, day time.Time, auditorIDs ...string) (string, error) {
		s, err := svc.Schedules.CreateSchedule(ctx, primary.CreateScheduleRequest{
			PlantID: plantID, ScheduleDate: calendar.FormatDate(day), AuditorIDs: auditorIDs,
		})
		if err != nil {
			return "", fmt.Errorf("seed schedule: %w", err)
		}
		return s.ID, nil
	}

	// Last week's audit: done, scored, with an open action.
	pastID, err := schedule(plants[0], calendar.AddDays(today, -7), leadID, fieldID)
	if err != nil {
		return err
	}
	past, err := svc.Audits.StartAudit(leadCtx, pastID)
	if err != nil {
		return fmt.Errorf("seed audit: %w", err)
	}
	if _, err := svc.Audits.RecordAttendance(leadCtx, primary.RecordAttendanceRequest{
		AuditID: past.ID, Status: "Present", ArrivalTime: "08:00", DepartureTime: "16:00",
	}); err != nil {
		return fmt.Errorf("seed attendance: %w", err)
	}
	if _, err := svc.Actions.RaiseAction(leadCtx, primary.RaiseActionRequest{
		AuditID: past.ID, ResponsiblePersonID: fixerID,
		Description: "Replace corroded relief valve on Boiler 1",
		Deadline:    calendar.FormatDate(calendar.AddDays(today, 2)),
	}); err != nil {
		return fmt.Errorf("seed action: %w", err)
	}
	score := 72.0
	if _, err := svc.Audits.CompleteAudit(leadCtx, primary.CompleteAuditRequest{
		AuditID: past.ID, Score: &score, Comments: "Minor findings on pressure equipment",
	}); err != nil {
		return fmt.Errorf("seed completion: %w", err)
	}

	// Today's audit, in progress.
	todayID, err := schedule(plants[1], today, fieldID)
	if err != nil {
		return err
	}
	if _, err := svc.Audits.StartAudit(fieldCtx, todayID); err != nil {
		return fmt.Errorf("seed audit: %w", err)
	}

	// Next week's audit, not started.
	if _, err := schedule(plants[0], calendar.AddDays(today, 5), leadID); err != nil {
		return err
	}

	fmt.Fprintln(out, "✓ Seeded demo data")
	fmt.Fprintf(out, "  Accounts: owner@, lead.auditor@, field.auditor@, maintenance@, electrical@madar.demo (password %s)\n", DemoPassword)
	fmt.Fprintf(out, "  Plants: %s, %s\n", plants[0], plants[1])
	return nil
}
