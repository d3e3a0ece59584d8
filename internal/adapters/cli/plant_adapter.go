package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/madar/internal/ports/primary"
)

// PlantAdapter translates plant and equipment commands to PlantService calls.
type PlantAdapter struct {
	service primary.PlantService
	out     io.Writer
}

// NewPlantAdapter creates a new PlantAdapter with the given service.
func NewPlantAdapter(service primary.PlantService, out io.Writer) *PlantAdapter {
	return &PlantAdapter{service: service, out: out}
}

// Create registers a plant.
func (a *PlantAdapter) Create(ctx context.Context, req primary.SavePlantRequest) error {
	plant, err := a.service.CreatePlant(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Created plant %s: %s", plant.ID, plant.Name))
	return nil
}

// List prints one page of plants.
func (a *PlantAdapter) List(ctx context.Context, filters primary.PlantFilters) error {
	page, err := a.service.ListPlants(ctx, filters)
	if err != nil {
		return err
	}
	if len(page.Plants) == 0 {
		fmt.Fprintln(a.out, "No plants found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-12s %-18s %-24s %-16s %9s %s\n", "ID", "STATUS", "NAME", "LOCATION", "EQUIPMENT", "AREA OWNER")
	fmt.Fprintln(a.out, rule)
	for _, p := range page.Plants {
		fmt.Fprintf(a.out, "%s %s %-24s %-16s %9d %s\n",
			idCell(p.ID, 12), statusCell(p.Status, 18), p.Name, p.Location, p.EquipmentCount, orDash(p.AreaOwnerID))
	}
	fmt.Fprintf(a.out, "\nPage %d of %d (%d plants)\n\n", page.Page, page.TotalPages, page.Total)
	return nil
}

// Show prints a plant and the first page of its equipment.
func (a *PlantAdapter) Show(ctx context.Context, plantID string) error {
	plant, err := a.service.GetPlant(ctx, plantID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nPlant:      %s\n", plant.ID)
	fmt.Fprintf(a.out, "Name:       %s\n", plant.Name)
	fmt.Fprintf(a.out, "Status:     %s\n", statusCell(plant.Status, 0))
	fmt.Fprintf(a.out, "Location:   %s\n", plant.Location)
	fmt.Fprintf(a.out, "Type:       %s\n", plant.Type)
	fmt.Fprintf(a.out, "Capacity:   %d\n", plant.Capacity)
	fmt.Fprintf(a.out, "Area owner: %s\n", orDash(plant.AreaOwnerID))
	fmt.Fprintf(a.out, "Management: %s\n", orDash(plant.ManagementID))
	fmt.Fprintf(a.out, "Created:    %s\n", plant.CreatedAt)

	if plant.EquipmentCount == 0 {
		fmt.Fprintln(a.out, "\nNo equipment")
		fmt.Fprintln(a.out)
		return nil
	}
	fmt.Fprintln(a.out)
	return a.ListEquipment(ctx, plant.ID, 1)
}

// Update edits a plant.
func (a *PlantAdapter) Update(ctx context.Context, plantID string, req primary.SavePlantRequest) error {
	plant, err := a.service.UpdatePlant(ctx, plantID, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Plant %s updated", plant.ID))
	return nil
}

// Delete deletes a plant.
func (a *PlantAdapter) Delete(ctx context.Context, plantID string) error {
	if err := a.service.DeletePlant(ctx, plantID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Deleted plant %s", plantID))
	return nil
}

// AddEquipment adds equipment to a plant.
func (a *PlantAdapter) AddEquipment(ctx context.Context, req primary.SaveEquipmentRequest) error {
	equipment, err := a.service.AddEquipment(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Added equipment %s to %s: %s", equipment.ID, equipment.PlantID, equipment.Name))
	return nil
}

// UpdateEquipment edits equipment.
func (a *PlantAdapter) UpdateEquipment(ctx context.Context, equipmentID string, req primary.SaveEquipmentRequest) error {
	equipment, err := a.service.UpdateEquipment(ctx, equipmentID, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Equipment %s updated", equipment.ID))
	return nil
}

// DeleteEquipment removes equipment.
func (a *PlantAdapter) DeleteEquipment(ctx context.Context, equipmentID string) error {
	if err := a.service.DeleteEquipment(ctx, equipmentID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Deleted equipment %s", equipmentID))
	return nil
}

// ListEquipment prints one page of a plant's equipment.
func (a *PlantAdapter) ListEquipment(ctx context.Context, plantID string, page int) error {
	result, err := a.service.ListEquipment(ctx, plantID, page)
	if err != nil {
		return err
	}
	if len(result.Equipment) == 0 {
		fmt.Fprintf(a.out, "No equipment found for %s\n", plantID)
		return nil
	}

	fmt.Fprintf(a.out, "%-12s %-18s %-22s %-14s %s\n", "ID", "STATUS", "NAME", "TYPE", "CYCLE (DAYS)")
	fmt.Fprintln(a.out, rule)
	for _, e := range result.Equipment {
		fmt.Fprintf(a.out, "%s %s %-22s %-14s %d\n",
			idCell(e.ID, 12), statusCell(e.Status, 18), e.Name, e.Type, e.MaintenanceCycle)
	}
	fmt.Fprintf(a.out, "\nPage %d of %d (%d items)\n\n", result.Page, result.TotalPages, result.Total)
	return nil
}
