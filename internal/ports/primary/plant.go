// Package primary defines the primary ports (driving adapters) for the application.
package primary

import "context"

// PlantService defines the primary port for plants and their equipment.
type PlantService interface {
	// CreatePlant registers a new plant.
	CreatePlant(ctx context.Context, req SavePlantRequest) (*Plant, error)

	// GetPlant retrieves a plant by ID.
	GetPlant(ctx context.Context, plantID string) (*Plant, error)

	// ListPlants returns one page of plants. Pages are 1-based.
	ListPlants(ctx context.Context, filters PlantFilters) (*PlantPage, error)

	// UpdatePlant updates a plant's editable fields.
	UpdatePlant(ctx context.Context, plantID string, req SavePlantRequest) (*Plant, error)

	// DeletePlant deletes a plant with no equipment and no schedules.
	DeletePlant(ctx context.Context, plantID string) error

	// AddEquipment adds equipment to a plant.
	AddEquipment(ctx context.Context, req SaveEquipmentRequest) (*Equipment, error)

	// UpdateEquipment updates equipment.
	UpdateEquipment(ctx context.Context, equipmentID string, req SaveEquipmentRequest) (*Equipment, error)

	// DeleteEquipment removes equipment from its plant.
	DeleteEquipment(ctx context.Context, equipmentID string) error

	// ListEquipment returns one page of a plant's equipment.
	ListEquipment(ctx context.Context, plantID string, page int) (*EquipmentPage, error)
}

// SavePlantRequest contains the editable plant fields.
type SavePlantRequest struct {
	Name         string
	Location     string
	Type         string
	Status       string
	Capacity     int
	AreaOwnerID  string
	ManagementID string // defaults to the acting management profile
}

// Plant is a plant at the port boundary.
type Plant struct {
	ID             string
	Name           string
	Location       string
	Type           string
	Status         string
	Capacity       int
	EquipmentCount int
	AreaOwnerID    string
	ManagementID   string
	CreatedAt      string
	UpdatedAt      string
}

// PlantFilters contains filter options for listing plants.
type PlantFilters struct {
	Status string
	Page   int
}

// PlantPage is one page of plants.
type PlantPage struct {
	Plants     []*Plant
	Page       int
	TotalPages int
	Total      int
}

// SaveEquipmentRequest contains the editable equipment fields.
type SaveEquipmentRequest struct {
	PlantID          string
	Name             string
	Type             string
	Model            string
	Status           string
	Location         string
	Capacity         int
	MaintenanceCycle int
}

// Equipment is equipment at the port boundary.
type Equipment struct {
	ID               string
	PlantID          string
	Name             string
	Type             string
	Model            string
	Status           string
	Location         string
	Capacity         int
	MaintenanceCycle int
	CreatedAt        string
}

// EquipmentPage is one page of a plant's equipment.
type EquipmentPage struct {
	PlantID    string
	Equipment  []*Equipment
	Page       int
	TotalPages int
	Total      int
}
