package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/madar/internal/core/access"
	coreequipment "github.com/example/madar/internal/core/equipment"
	coreplant "github.com/example/madar/internal/core/plant"
	"github.com/example/madar/internal/core/status"
	"github.com/example/madar/internal/ports/primary"
	"github.com/example/madar/internal/ports/secondary"
)

// Paging holds the list page sizes.
type Paging struct {
	PlantPageSize     int
	EquipmentPageSize int
}

// PlantServiceImpl implements the PlantService interface.
type PlantServiceImpl struct {
	plantRepo     secondary.PlantRepository
	equipmentRepo secondary.EquipmentRepository
	personRepo    secondary.PersonRepository
	transactor    secondary.Transactor
	paging        Paging
	logger        *zap.Logger
	activity      activity
}

// NewPlantService creates a new PlantService with injected dependencies.
func NewPlantService(
	plantRepo secondary.PlantRepository,
	equipmentRepo secondary.EquipmentRepository,
	personRepo secondary.PersonRepository,
	transactor secondary.Transactor,
	logWriter secondary.LogWriter,
	paging Paging,
	logger *zap.Logger,
) *PlantServiceImpl {
	logger = loggerOrNop(logger)
	if paging.PlantPageSize <= 0 {
		paging.PlantPageSize = 9
	}
	if paging.EquipmentPageSize <= 0 {
		paging.EquipmentPageSize = 8
	}
	return &PlantServiceImpl{
		plantRepo:     plantRepo,
		equipmentRepo: equipmentRepo,
		personRepo:    personRepo,
		transactor:    transactor,
		paging:        paging,
		logger:        logger,
		activity:      activity{writer: logWriter, logger: logger},
	}
}

func (s *PlantServiceImpl) savePlantContext(ctx context.Context, req primary.SavePlantRequest) (coreplant.SavePlantContext, error) {
	guardCtx := coreplant.SavePlantContext{
		ActorRole:      actorOf(ctx).Role,
		ActorProfileID: actorOf(ctx).ProfileID,
		Name:           req.Name,
		Status:         req.Status,
		Capacity:       req.Capacity,
		AreaOwnerID:    req.AreaOwnerID,
		ManagementID:   req.ManagementID,
	}
	if req.AreaOwnerID != "" {
		exists, err := s.personRepo.Exists(ctx, access.AreaOwner, req.AreaOwnerID)
		if err != nil {
			return guardCtx, fmt.Errorf("failed to check area owner: %w", err)
		}
		guardCtx.AreaOwnerExists = exists
	}
	if req.ManagementID != "" {
		exists, err := s.personRepo.Exists(ctx, access.Management, req.ManagementID)
		if err != nil {
			return guardCtx, fmt.Errorf("failed to check management: %w", err)
		}
		guardCtx.ManagementExists = exists
	}
	return guardCtx, nil
}

// CreatePlant registers a new plant.
func (s *PlantServiceImpl) CreatePlant(ctx context.Context, req primary.SavePlantRequest) (*primary.Plant, error) {
	if req.Status == "" {
		req.Status = status.PlantActive
	}
	if req.ManagementID == "" {
		req.ManagementID = actorOf(ctx).ProfileID
	}

	guardCtx, err := s.savePlantContext(ctx, req)
	if err != nil {
		return nil, err
	}
	if result := coreplant.CanSavePlant(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	nextID, err := s.plantRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plant ID: %w", err)
	}

	record := &secondary.PlantRecord{
		ID:           nextID,
		ManagementID: req.ManagementID,
		AreaOwnerID:  req.AreaOwnerID,
		Name:         req.Name,
		Location:     req.Location,
		Status:       req.Status,
		Type:         req.Type,
		Capacity:     req.Capacity,
	}
	if err := s.plantRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create plant: %w", err)
	}
	s.activity.created(ctx, "plant", nextID)
	s.logger.Info("plant created", zap.String("plant", nextID))

	return s.GetPlant(ctx, nextID)
}

// GetPlant retrieves a plant by ID.
func (s *PlantServiceImpl) GetPlant(ctx context.Context, plantID string) (*primary.Plant, error) {
	record, err := s.plantRepo.GetByID(ctx, plantID)
	if err != nil {
		return nil, err
	}
	return recordToPlant(record), nil
}

// ListPlants returns one page of plants.
func (s *PlantServiceImpl) ListPlants(ctx context.Context, filters primary.PlantFilters) (*primary.PlantPage, error) {
	repoFilters := secondary.PlantFilters{Status: filters.Status}
	actor := actorOf(ctx)
	if actor.Role == access.AreaOwner {
		repoFilters.AreaOwnerID = actor.ProfileID
	}

	total, err := s.plantRepo.Count(ctx, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to count plants: %w", err)
	}
	page, pages, offset := pageBounds(filters.Page, s.paging.PlantPageSize, total)
	repoFilters.Limit = s.paging.PlantPageSize
	repoFilters.Offset = offset

	records, err := s.plantRepo.List(ctx, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}

	plants := make([]*primary.Plant, len(records))
	for i, r := range records {
		plants[i] = recordToPlant(r)
	}
	return &primary.PlantPage{Plants: plants, Page: page, TotalPages: pages, Total: total}, nil
}

// UpdatePlant updates a plant's editable fields.
func (s *PlantServiceImpl) UpdatePlant(ctx context.Context, plantID string, req primary.SavePlantRequest) (*primary.Plant, error) {
	existing, err := s.plantRepo.GetByID(ctx, plantID)
	if err != nil {
		return nil, err
	}

	reassigns := (req.AreaOwnerID != "" && req.AreaOwnerID != existing.AreaOwnerID) ||
		(req.ManagementID != "" && req.ManagementID != existing.ManagementID)

	// Unset fields keep their stored value.
	if req.Name == "" {
		req.Name = existing.Name
	}
	if req.Status == "" {
		req.Status = existing.Status
	}
	if req.AreaOwnerID == "" {
		req.AreaOwnerID = existing.AreaOwnerID
	}
	if req.ManagementID == "" {
		req.ManagementID = existing.ManagementID
	}
	if req.Location == "" {
		req.Location = existing.Location
	}
	if req.Type == "" {
		req.Type = existing.Type
	}
	if req.Capacity == 0 {
		req.Capacity = existing.Capacity
	}

	guardCtx, err := s.savePlantContext(ctx, req)
	if err != nil {
		return nil, err
	}
	guardCtx.OwnerID = existing.AreaOwnerID
	guardCtx.ReassignsOwnership = reassigns
	if result := coreplant.CanSavePlant(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	record := &secondary.PlantRecord{
		ID:           plantID,
		ManagementID: req.ManagementID,
		AreaOwnerID:  req.AreaOwnerID,
		Name:         req.Name,
		Location:     req.Location,
		Status:       req.Status,
		Type:         req.Type,
		Capacity:     req.Capacity,
	}
	if err := s.plantRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update plant: %w", err)
	}
	if existing.Status != req.Status {
		s.activity.updated(ctx, "plant", plantID, "status", existing.Status, req.Status)
	}

	return s.GetPlant(ctx, plantID)
}

// DeletePlant deletes a plant with no equipment and no schedules.
func (s *PlantServiceImpl) DeletePlant(ctx context.Context, plantID string) error {
	if _, err := s.plantRepo.GetByID(ctx, plantID); err != nil {
		return err
	}

	equipmentCount, err := s.plantRepo.CountEquipment(ctx, plantID)
	if err != nil {
		return fmt.Errorf("failed to count equipment: %w", err)
	}
	scheduleCount, err := s.plantRepo.CountSchedules(ctx, plantID)
	if err != nil {
		return fmt.Errorf("failed to count schedules: %w", err)
	}

	guardCtx := coreplant.DeletePlantContext{
		ActorRole:      actorOf(ctx).Role,
		PlantID:        plantID,
		EquipmentCount: equipmentCount,
		ScheduleCount:  scheduleCount,
	}
	if result := coreplant.CanDeletePlant(guardCtx); !result.Allowed {
		return result.Error()
	}

	if err := s.plantRepo.Delete(ctx, plantID); err != nil {
		return fmt.Errorf("failed to delete plant: %w", err)
	}
	s.activity.deleted(ctx, "plant", plantID)
	s.logger.Info("plant deleted", zap.String("plant", plantID))
	return nil
}

func (s *PlantServiceImpl) canManageEquipment(ctx context.Context, plantID string) error {
	actor := actorOf(ctx)
	guardCtx := coreequipment.ManageContext{
		ActorRole:      actor.Role,
		ActorProfileID: actor.ProfileID,
		PlantID:        plantID,
	}
	plant, err := s.plantRepo.GetByID(ctx, plantID)
	switch {
	case err == nil:
		guardCtx.PlantExists = true
		guardCtx.PlantAreaOwnerID = plant.AreaOwnerID
	case !isNotFound(err):
		return err
	}
	if result := coreequipment.CanManage(guardCtx); !result.Allowed {
		return result.Error()
	}
	return nil
}

// AddEquipment adds equipment to a plant and refreshes the plant's count.
func (s *PlantServiceImpl) AddEquipment(ctx context.Context, req primary.SaveEquipmentRequest) (*primary.Equipment, error) {
	if req.Status == "" {
		req.Status = status.EquipmentOperational
	}
	if err := s.canManageEquipment(ctx, req.PlantID); err != nil {
		return nil, err
	}
	if result := coreequipment.Validate(equipmentValidation(req)); !result.Allowed {
		return nil, result.Error()
	}

	var equipmentID string
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		nextID, err := s.equipmentRepo.GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate equipment ID: %w", err)
		}
		equipmentID = nextID

		if err := s.equipmentRepo.Create(ctx, equipmentRecord(nextID, req)); err != nil {
			return fmt.Errorf("failed to create equipment: %w", err)
		}
		return s.plantRepo.RefreshEquipmentCount(ctx, req.PlantID)
	})
	if err != nil {
		return nil, err
	}
	s.activity.created(ctx, "equipment", equipmentID)

	record, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created equipment: %w", err)
	}
	return recordToEquipment(record), nil
}

// UpdateEquipment updates equipment. The owning plant cannot change.
func (s *PlantServiceImpl) UpdateEquipment(ctx context.Context, equipmentID string, req primary.SaveEquipmentRequest) (*primary.Equipment, error) {
	existing, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	req.PlantID = existing.PlantID
	if req.Name == "" {
		req.Name = existing.Name
	}
	if req.Status == "" {
		req.Status = existing.Status
	}
	if req.Type == "" {
		req.Type = existing.Type
	}
	if req.Model == "" {
		req.Model = existing.Model
	}
	if req.Location == "" {
		req.Location = existing.Location
	}
	if req.Capacity == 0 {
		req.Capacity = existing.Capacity
	}
	if req.MaintenanceCycle == 0 {
		req.MaintenanceCycle = existing.MaintenanceCycle
	}

	if err := s.canManageEquipment(ctx, existing.PlantID); err != nil {
		return nil, err
	}
	if result := coreequipment.Validate(equipmentValidation(req)); !result.Allowed {
		return nil, result.Error()
	}

	if err := s.equipmentRepo.Update(ctx, equipmentRecord(equipmentID, req)); err != nil {
		return nil, fmt.Errorf("failed to update equipment: %w", err)
	}
	if existing.Status != req.Status {
		s.activity.updated(ctx, "equipment", equipmentID, "status", existing.Status, req.Status)
	}

	record, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	return recordToEquipment(record), nil
}

// DeleteEquipment removes equipment and refreshes the plant's count.
func (s *PlantServiceImpl) DeleteEquipment(ctx context.Context, equipmentID string) error {
	existing, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return err
	}
	if err := s.canManageEquipment(ctx, existing.PlantID); err != nil {
		return err
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.equipmentRepo.Delete(ctx, equipmentID); err != nil {
			return fmt.Errorf("failed to delete equipment: %w", err)
		}
		return s.plantRepo.RefreshEquipmentCount(ctx, existing.PlantID)
	})
	if err != nil {
		return err
	}
	s.activity.deleted(ctx, "equipment", equipmentID)
	return nil
}

// ListEquipment returns one page of a plant's equipment.
func (s *PlantServiceImpl) ListEquipment(ctx context.Context, plantID string, page int) (*primary.EquipmentPage, error) {
	if _, err := s.plantRepo.GetByID(ctx, plantID); err != nil {
		return nil, err
	}

	filters := secondary.EquipmentFilters{PlantID: plantID}
	total, err := s.equipmentRepo.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to count equipment: %w", err)
	}
	page, pages, offset := pageBounds(page, s.paging.EquipmentPageSize, total)
	filters.Limit = s.paging.EquipmentPageSize
	filters.Offset = offset

	records, err := s.equipmentRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	items := make([]*primary.Equipment, len(records))
	for i, r := range records {
		items[i] = recordToEquipment(r)
	}
	return &primary.EquipmentPage{PlantID: plantID, Equipment: items, Page: page, TotalPages: pages, Total: total}, nil
}

func equipmentValidation(req primary.SaveEquipmentRequest) coreequipment.ValidateContext {
	return coreequipment.ValidateContext{
		Name:             req.Name,
		Status:           req.Status,
		Capacity:         req.Capacity,
		MaintenanceCycle: req.MaintenanceCycle,
	}
}

func equipmentRecord(id string, req primary.SaveEquipmentRequest) *secondary.EquipmentRecord {
	return &secondary.EquipmentRecord{
		ID:               id,
		PlantID:          req.PlantID,
		Name:             req.Name,
		Type:             req.Type,
		Model:            req.Model,
		Status:           req.Status,
		Location:         req.Location,
		Capacity:         req.Capacity,
		MaintenanceCycle: req.MaintenanceCycle,
	}
}

func recordToPlant(r *secondary.PlantRecord) *primary.Plant {
	return &primary.Plant{
		ID:             r.ID,
		Name:           r.Name,
		Location:       r.Location,
		Type:           r.Type,
		Status:         r.Status,
		Capacity:       r.Capacity,
		EquipmentCount: r.EquipmentCount,
		AreaOwnerID:    r.AreaOwnerID,
		ManagementID:   r.ManagementID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func recordToEquipment(r *secondary.EquipmentRecord) *primary.Equipment {
	return &primary.Equipment{
		ID:               r.ID,
		PlantID:          r.PlantID,
		Name:             r.Name,
		Type:             r.Type,
		Model:            r.Model,
		Status:           r.Status,
		Location:         r.Location,
		Capacity:         r.Capacity,
		MaintenanceCycle: r.MaintenanceCycle,
		CreatedAt:        r.CreatedAt,
	}
}

// Ensure PlantServiceImpl implements the interface
var _ primary.PlantService = (*PlantServiceImpl)(nil)
