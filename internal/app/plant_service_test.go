package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ports/primary"
	"github.com/example/madar/internal/ports/secondary"
)

type plantTestDeps struct {
	plants    *mockPlantRepository
	equipment *mockEquipmentRepository
	people    *mockPersonRepository
	log       *mockLogWriter
}

func newTestPlantService() (*PlantServiceImpl, plantTestDeps) {
	deps := plantTestDeps{
		plants:    newMockPlantRepository(),
		equipment: newMockEquipmentRepository(),
		people:    newMockPersonRepository(),
		log:       &mockLogWriter{},
	}
	deps.people.add("Management", &secondary.PersonRecord{ID: "MGMT-001", FirstName: "Mona"})
	deps.people.add("AreaOwner", &secondary.PersonRecord{ID: "AO-001", FirstName: "Omar"})
	deps.people.add("AreaOwner", &secondary.PersonRecord{ID: "AO-002", FirstName: "Huda"})

	service := NewPlantService(deps.plants, deps.equipment, deps.people, &mockTransactor{}, deps.log, Paging{PlantPageSize: 2, EquipmentPageSize: 2}, nil)
	return service, deps
}

func seedMockPlant(deps plantTestDeps, id, aoID string) {
	deps.plants.plants[id] = &secondary.PlantRecord{ID: id, Name: "Plant " + id, Status: "Active", AreaOwnerID: aoID, ManagementID: "MGMT-001"}
}

func TestCreatePlant_Success(t *testing.T) {
	service, deps := newTestPlantService()

	plant, err := service.CreatePlant(managementCtx(), primary.SavePlantRequest{
		Name:        "North Refinery",
		AreaOwnerID: "AO-001",
		Capacity:    500,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if plant.ID != "PLANT-001" {
		t.Errorf("expected PLANT-001, got %q", plant.ID)
	}
	if plant.Status != "Active" {
		t.Errorf("expected default status Active, got %q", plant.Status)
	}
	if plant.ManagementID != "MGMT-001" {
		t.Errorf("expected acting manager to own the plant, got %q", plant.ManagementID)
	}
	if len(deps.log.entries) != 1 || deps.log.entries[0].action != "create" {
		t.Errorf("expected one create log entry, got %+v", deps.log.entries)
	}
}

func TestCreatePlant_Guards(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		req      primary.SavePlantRequest
		wantKind apperr.Kind
		wantMsg  string
	}{
		{
			name:     "auditor denied",
			ctx:      auditorCtx("AUDR-001"),
			req:      primary.SavePlantRequest{Name: "X", AreaOwnerID: "AO-001", ManagementID: "MGMT-001"},
			wantKind: apperr.KindDenied,
			wantMsg:  "access denied",
		},
		{
			name:     "missing name",
			ctx:      managementCtx(),
			req:      primary.SavePlantRequest{AreaOwnerID: "AO-001"},
			wantKind: apperr.KindInvalid,
			wantMsg:  "name is required",
		},
		{
			name:     "unknown area owner",
			ctx:      managementCtx(),
			req:      primary.SavePlantRequest{Name: "X", AreaOwnerID: "AO-999"},
			wantKind: apperr.KindNotFound,
			wantMsg:  "AO-999",
		},
		{
			name:     "bad status",
			ctx:      managementCtx(),
			req:      primary.SavePlantRequest{Name: "X", AreaOwnerID: "AO-001", Status: "Open"},
			wantKind: apperr.KindInvalid,
			wantMsg:  "invalid plant status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, deps := newTestPlantService()
			_, err := service.CreatePlant(tt.ctx, tt.req)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if apperr.KindOf(err) != tt.wantKind {
				t.Errorf("expected kind %v, got %v (%v)", tt.wantKind, apperr.KindOf(err), err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected error containing %q, got %q", tt.wantMsg, err.Error())
			}
			if len(deps.plants.plants) != 0 {
				t.Errorf("expected no plant created")
			}
		})
	}
}

func TestListPlants_Paging(t *testing.T) {
	service, deps := newTestPlantService()
	for _, id := range []string{"PLANT-001", "PLANT-002", "PLANT-003"} {
		seedMockPlant(deps, id, "AO-001")
	}

	page, err := service.ListPlants(managementCtx(), primary.PlantFilters{Page: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if page.Total != 3 || page.TotalPages != 2 || page.Page != 2 {
		t.Errorf("unexpected paging: %+v", page)
	}
	if len(page.Plants) != 1 || page.Plants[0].ID != "PLANT-003" {
		t.Errorf("expected PLANT-003 on page 2, got %+v", page.Plants)
	}

	// Out-of-range pages clamp to the last page.
	page, err = service.ListPlants(managementCtx(), primary.PlantFilters{Page: 9})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if page.Page != 2 {
		t.Errorf("expected clamped page 2, got %d", page.Page)
	}
}

func TestListPlants_AreaOwnerSeesOwnPlants(t *testing.T) {
	service, deps := newTestPlantService()
	seedMockPlant(deps, "PLANT-001", "AO-001")
	seedMockPlant(deps, "PLANT-002", "AO-002")

	page, err := service.ListPlants(areaOwnerCtx("AO-002"), primary.PlantFilters{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if page.Total != 1 || page.Plants[0].ID != "PLANT-002" {
		t.Errorf("expected only PLANT-002, got %+v", page.Plants)
	}
}

func TestUpdatePlant_KeepsUnsetFields(t *testing.T) {
	service, deps := newTestPlantService()
	seedMockPlant(deps, "PLANT-001", "AO-001")

	plant, err := service.UpdatePlant(managementCtx(), "PLANT-001", primary.SavePlantRequest{Status: "Under_Maintenance"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if plant.Name != "Plant PLANT-001" || plant.AreaOwnerID != "AO-001" {
		t.Errorf("expected unset fields kept, got %+v", plant)
	}
	if plant.Status != "Under_Maintenance" {
		t.Errorf("expected status Under_Maintenance, got %q", plant.Status)
	}
	last := deps.log.entries[len(deps.log.entries)-1]
	if last.field != "status" || last.oldValue != "Active" || last.newValue != "Under_Maintenance" {
		t.Errorf("unexpected log entry %+v", last)
	}
}

func TestUpdatePlant_AreaOwner(t *testing.T) {
	service, deps := newTestPlantService()
	seedMockPlant(deps, "PLANT-001", "AO-001")

	plant, err := service.UpdatePlant(areaOwnerCtx("AO-001"), "PLANT-001", primary.SavePlantRequest{
		Location: "Zone B", Capacity: 750,
	})
	if err != nil {
		t.Fatalf("expected owner to update own plant, got %v", err)
	}
	if plant.Location != "Zone B" || plant.Capacity != 750 || plant.AreaOwnerID != "AO-001" {
		t.Errorf("unexpected plant %+v", plant)
	}

	tests := []struct {
		name  string
		actor string
		req   primary.SavePlantRequest
	}{
		{"other area owner", "AO-002", primary.SavePlantRequest{Location: "Zone C"}},
		{"reassigns owner", "AO-001", primary.SavePlantRequest{AreaOwnerID: "AO-002"}},
		{"reassigns management", "AO-001", primary.SavePlantRequest{ManagementID: "MGMT-002"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.UpdatePlant(areaOwnerCtx(tt.actor), "PLANT-001", tt.req)
			if !apperr.Is(err, apperr.KindDenied) {
				t.Errorf("expected access denied, got %v", err)
			}
		})
	}
	if deps.plants.plants["PLANT-001"].Location != "Zone B" {
		t.Error("expected refused updates to leave the plant unchanged")
	}
}

func TestDeletePlant_Restrictions(t *testing.T) {
	tests := []struct {
		name      string
		equipment int
		schedules int
		wantMsg   string
	}{
		{"has equipment", 2, 0, "has equipment (2). Remove equipment first"},
		{"has schedules", 0, 1, "has audit schedules (1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, deps := newTestPlantService()
			seedMockPlant(deps, "PLANT-001", "AO-001")
			deps.plants.equipment["PLANT-001"] = tt.equipment
			deps.plants.schedules["PLANT-001"] = tt.schedules

			err := service.DeletePlant(managementCtx(), "PLANT-001")
			if !apperr.Is(err, apperr.KindConflict) {
				t.Fatalf("expected conflict, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected %q in %q", tt.wantMsg, err.Error())
			}
			if _, ok := deps.plants.plants["PLANT-001"]; !ok {
				t.Error("plant should not be deleted")
			}
		})
	}
}

func TestDeletePlant_Success(t *testing.T) {
	service, deps := newTestPlantService()
	seedMockPlant(deps, "PLANT-001", "AO-001")

	if err := service.DeletePlant(managementCtx(), "PLANT-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := deps.plants.plants["PLANT-001"]; ok {
		t.Error("expected plant deleted")
	}
}

func TestDeletePlant_NotFound(t *testing.T) {
	service, _ := newTestPlantService()

	err := service.DeletePlant(managementCtx(), "PLANT-404")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestAddEquipment_AreaOwnerOfPlant(t *testing.T) {
	service, deps := newTestPlantService()
	seedMockPlant(deps, "PLANT-001", "AO-001")

	eq, err := service.AddEquipment(areaOwnerCtx("AO-001"), primary.SaveEquipmentRequest{PlantID: "PLANT-001", Name: "Boiler"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if eq.Status != "Operational" {
		t.Errorf("expected default status Operational, got %q", eq.Status)
	}
	if len(deps.plants.refreshed) != 1 || deps.plants.refreshed[0] != "PLANT-001" {
		t.Errorf("expected equipment count refresh for PLANT-001, got %v", deps.plants.refreshed)
	}
}

func TestAddEquipment_OtherAreaOwnerDenied(t *testing.T) {
	service, deps := newTestPlantService()
	seedMockPlant(deps, "PLANT-001", "AO-001")

	_, err := service.AddEquipment(areaOwnerCtx("AO-002"), primary.SaveEquipmentRequest{PlantID: "PLANT-001", Name: "Boiler"})
	if !apperr.Is(err, apperr.KindDenied) {
		t.Fatalf("expected denied, got %v", err)
	}
	if len(deps.equipment.equipment) != 0 {
		t.Error("expected no equipment created")
	}
}

func TestAddEquipment_UnknownPlant(t *testing.T) {
	service, _ := newTestPlantService()

	_, err := service.AddEquipment(managementCtx(), primary.SaveEquipmentRequest{PlantID: "PLANT-404", Name: "Boiler"})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestAddEquipment_CreateFailureSkipsRefresh(t *testing.T) {
	service, deps := newTestPlantService()
	seedMockPlant(deps, "PLANT-001", "AO-001")
	deps.equipment.createErr = errors.New("disk full")

	_, err := service.AddEquipment(managementCtx(), primary.SaveEquipmentRequest{PlantID: "PLANT-001", Name: "Boiler"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(deps.plants.refreshed) != 0 {
		t.Errorf("expected no refresh after failed create, got %v", deps.plants.refreshed)
	}
}

func TestDeleteEquipment_RefreshesCount(t *testing.T) {
	service, deps := newTestPlantService()
	seedMockPlant(deps, "PLANT-001", "AO-001")
	deps.equipment.equipment["EQP-001"] = &secondary.EquipmentRecord{ID: "EQP-001", PlantID: "PLANT-001", Name: "Boiler", Status: "Operational"}

	if err := service.DeleteEquipment(managementCtx(), "EQP-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := deps.equipment.equipment["EQP-001"]; ok {
		t.Error("expected equipment deleted")
	}
	if len(deps.plants.refreshed) != 1 {
		t.Errorf("expected one refresh, got %v", deps.plants.refreshed)
	}
}

func TestUpdateEquipment_KeepsUnsetFields(t *testing.T) {
	service, deps := newTestPlantService()
	seedMockPlant(deps, "PLANT-001", "AO-001")
	deps.equipment.equipment["EQP-001"] = &secondary.EquipmentRecord{
		ID: "EQP-001", PlantID: "PLANT-001", Name: "Boiler", Type: "Boiler", Model: "BX-200",
		Status: "Operational", Capacity: 50, MaintenanceCycle: 90,
	}

	eq, err := service.UpdateEquipment(areaOwnerCtx("AO-001"), "EQP-001", primary.SaveEquipmentRequest{
		PlantID: "PLANT-002", Status: "Under_Maintenance",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if eq.PlantID != "PLANT-001" {
		t.Errorf("expected plant unchanged, got %q", eq.PlantID)
	}
	if eq.Model != "BX-200" || eq.Capacity != 50 || eq.MaintenanceCycle != 90 {
		t.Errorf("expected unset fields kept, got %+v", eq)
	}
	if eq.Status != "Under_Maintenance" {
		t.Errorf("expected status Under_Maintenance, got %q", eq.Status)
	}
}

func TestListEquipment_Paging(t *testing.T) {
	service, deps := newTestPlantService()
	seedMockPlant(deps, "PLANT-001", "AO-001")
	for _, id := range []string{"EQP-001", "EQP-002", "EQP-003"} {
		deps.equipment.equipment[id] = &secondary.EquipmentRecord{ID: id, PlantID: "PLANT-001", Name: id, Status: "Operational"}
	}

	page, err := service.ListEquipment(managementCtx(), "PLANT-001", 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(page.Equipment) != 2 || page.TotalPages != 2 {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestActivityLogFailureDoesNotFailOperation(t *testing.T) {
	service, deps := newTestPlantService()
	deps.log.err = errors.New("log table locked")

	if _, err := service.CreatePlant(managementCtx(), primary.SavePlantRequest{Name: "X", AreaOwnerID: "AO-001"}); err != nil {
		t.Fatalf("expected log failure to be swallowed, got %v", err)
	}
}
