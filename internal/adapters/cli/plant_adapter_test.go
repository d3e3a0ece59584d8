package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ports/primary"
)

func TestPlantAdapter_Create_Success(t *testing.T) {
	mock := &mockPlantService{}
	var buf bytes.Buffer
	adapter := NewPlantAdapter(mock, &buf)

	err := adapter.Create(context.Background(), primary.SavePlantRequest{Name: "North Refinery", Location: "Zone A"})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastCreateReq.Location != "Zone A" {
		t.Errorf("expected location 'Zone A', got '%s'", mock.lastCreateReq.Location)
	}
	if !strings.Contains(buf.String(), "✓ Created plant PLANT-001: North Refinery") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestPlantAdapter_Create_ServiceError(t *testing.T) {
	mock := &mockPlantService{
		createPlantFn: func(ctx context.Context, req primary.SavePlantRequest) (*primary.Plant, error) {
			return nil, apperr.Denied("only management can create plants")
		},
	}
	var buf bytes.Buffer
	adapter := NewPlantAdapter(mock, &buf)

	err := adapter.Create(context.Background(), primary.SavePlantRequest{Name: "X"})

	if !apperr.Is(err, apperr.KindDenied) {
		t.Fatalf("expected denied error to pass through, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on error, got %q", buf.String())
	}
}

func TestPlantAdapter_List(t *testing.T) {
	tests := []struct {
		name  string
		page  *primary.PlantPage
		wants []string
	}{
		{
			name:  "empty",
			page:  &primary.PlantPage{Page: 1, TotalPages: 1},
			wants: []string{"No plants found"},
		},
		{
			name: "one page",
			page: &primary.PlantPage{
				Plants: []*primary.Plant{
					{ID: "PLANT-001", Name: "North Refinery", Status: "Active", EquipmentCount: 3},
					{ID: "PLANT-002", Name: "South Works", Status: "Under_Maintenance"},
				},
				Page: 2, TotalPages: 3, Total: 12,
			},
			wants: []string{"PLANT-001", "North Refinery", "Under_Maintenance", "Page 2 of 3 (12 plants)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockPlantService{
				listPlantsFn: func(ctx context.Context, filters primary.PlantFilters) (*primary.PlantPage, error) {
					return tt.page, nil
				},
			}
			var buf bytes.Buffer
			if err := NewPlantAdapter(mock, &buf).List(context.Background(), primary.PlantFilters{}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			for _, want := range tt.wants {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("expected output to contain %q, got %q", want, buf.String())
				}
			}
		})
	}
}

func TestPlantAdapter_Show_ListsFirstEquipmentPage(t *testing.T) {
	mock := &mockPlantService{
		getPlantFn: func(ctx context.Context, plantID string) (*primary.Plant, error) {
			return &primary.Plant{ID: plantID, Name: "North Refinery", Status: "Active", EquipmentCount: 1}, nil
		},
		listEquipmentFn: func(ctx context.Context, plantID string, page int) (*primary.EquipmentPage, error) {
			return &primary.EquipmentPage{
				PlantID:    plantID,
				Equipment:  []*primary.Equipment{{ID: "EQUIP-001", Name: "Boiler 1", Status: "Operational", MaintenanceCycle: 90}},
				Page:       1,
				TotalPages: 1,
				Total:      1,
			}, nil
		},
	}
	var buf bytes.Buffer

	if err := NewPlantAdapter(mock, &buf).Show(context.Background(), "PLANT-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastPage != 1 {
		t.Errorf("expected equipment page 1, got %d", mock.lastPage)
	}
	out := buf.String()
	for _, want := range []string{"Plant:      PLANT-001", "Boiler 1", "Area owner: -"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestPlantAdapter_Show_NoEquipment(t *testing.T) {
	mock := &mockPlantService{}
	var buf bytes.Buffer

	if err := NewPlantAdapter(mock, &buf).Show(context.Background(), "PLANT-009"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No equipment") {
		t.Errorf("expected 'No equipment', got %q", buf.String())
	}
	if mock.lastPage != 0 {
		t.Error("expected equipment not to be listed")
	}
}

func TestPlantAdapter_Delete_Conflict(t *testing.T) {
	mock := &mockPlantService{
		deletePlantFn: func(ctx context.Context, plantID string) error {
			return apperr.Conflict("plant %s has equipment (2). Remove equipment first", plantID)
		},
	}
	var buf bytes.Buffer

	err := NewPlantAdapter(mock, &buf).Delete(context.Background(), "PLANT-001")

	if err == nil || !strings.Contains(err.Error(), "Remove equipment first") {
		t.Fatalf("expected conflict error, got %v", err)
	}
}
