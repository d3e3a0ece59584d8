package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ctxutil"
	"github.com/example/madar/internal/ports/secondary"
)

// fixedNow is the pinned clock used by service tests: Saturday 2026-10-17.
var fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func managementCtx() context.Context {
	return ctxutil.WithActor(context.Background(), ctxutil.Actor{UserID: "USER-001", Role: "Management", ProfileID: "MGMT-001"})
}

func auditorCtx(profileID string) context.Context {
	return ctxutil.WithActor(context.Background(), ctxutil.Actor{UserID: "USER-" + profileID, Role: "Auditor", ProfileID: profileID})
}

func areaOwnerCtx(profileID string) context.Context {
	return ctxutil.WithActor(context.Background(), ctxutil.Actor{UserID: "USER-" + profileID, Role: "AreaOwner", ProfileID: profileID})
}

func responsibleCtx(profileID string) context.Context {
	return ctxutil.WithActor(context.Background(), ctxutil.Actor{UserID: "USER-" + profileID, Role: "ResponsiblePerson", ProfileID: profileID})
}

// ============================================================================
// Mock Transactor
// ============================================================================

type mockTransactor struct {
	calls int
}

func (m *mockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// ============================================================================
// Mock LogWriter
// ============================================================================

type logEntry struct {
	action, entityType, entityID, field, oldValue, newValue string
}

type mockLogWriter struct {
	entries []logEntry
	err     error
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, logEntry{action: "create", entityType: entityType, entityID: entityID})
	return m.err
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	m.entries = append(m.entries, logEntry{"update", entityType, entityID, fieldName, oldValue, newValue})
	return m.err
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, logEntry{action: "delete", entityType: entityType, entityID: entityID})
	return m.err
}

// ============================================================================
// Mock PersonRepository
// ============================================================================

type mockPersonRepository struct {
	people    map[string]map[string]*secondary.PersonRecord // role -> id -> record
	createErr error
}

func newMockPersonRepository() *mockPersonRepository {
	return &mockPersonRepository{people: make(map[string]map[string]*secondary.PersonRecord)}
}

func (m *mockPersonRepository) add(role string, p *secondary.PersonRecord) {
	if m.people[role] == nil {
		m.people[role] = make(map[string]*secondary.PersonRecord)
	}
	m.people[role][p.ID] = p
}

func (m *mockPersonRepository) Create(ctx context.Context, role string, person *secondary.PersonRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.add(role, person)
	return nil
}

func (m *mockPersonRepository) GetByID(ctx context.Context, role, id string) (*secondary.PersonRecord, error) {
	if p, ok := m.people[role][id]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("%s %s not found", role, id)
}

func (m *mockPersonRepository) GetByUserID(ctx context.Context, role, userID string) (*secondary.PersonRecord, error) {
	for _, p := range m.people[role] {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, apperr.NotFound("%s profile of %s not found", role, userID)
}

func (m *mockPersonRepository) List(ctx context.Context, role string, filters secondary.PersonFilters) ([]*secondary.PersonRecord, error) {
	var out []*secondary.PersonRecord
	for _, p := range m.people[role] {
		if filters.AreaOwnerID != "" && p.AreaOwnerID != filters.AreaOwnerID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockPersonRepository) Exists(ctx context.Context, role, id string) (bool, error) {
	_, ok := m.people[role][id]
	return ok, nil
}

func (m *mockPersonRepository) Update(ctx context.Context, role string, person *secondary.PersonRecord) error {
	if _, ok := m.people[role][person.ID]; !ok {
		return apperr.NotFound("%s %s not found", role, person.ID)
	}
	c := *person
	m.people[role][person.ID] = &c
	return nil
}

func (m *mockPersonRepository) GetNextID(ctx context.Context, role string) (string, error) {
	return fmt.Sprintf("%s-%03d", role, len(m.people[role])+1), nil
}

// ============================================================================
// Mock UserRepository
// ============================================================================

type mockUserRepository struct {
	users map[string]*secondary.UserRecord
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*secondary.UserRecord)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("user %s not found", id)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*secondary.UserRecord, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user %s not found", email)
}

func (m *mockUserRepository) List(ctx context.Context, filters secondary.UserFilters) ([]*secondary.UserRecord, error) {
	var out []*secondary.UserRecord
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *mockUserRepository) UpdateAccount(ctx context.Context, id, name, email string) error {
	u, ok := m.users[id]
	if !ok {
		return apperr.NotFound("user %s not found", id)
	}
	u.Name, u.Email = name, email
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return apperr.NotFound("user %s not found", id)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *mockUserRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("USER-%03d", len(m.users)+1), nil
}

// ============================================================================
// Mock PlantRepository
// ============================================================================

type mockPlantRepository struct {
	plants    map[string]*secondary.PlantRecord
	equipment map[string]int // plant -> equipment rows, for CountEquipment
	schedules map[string]int // plant -> schedule rows, for CountSchedules
	createErr error
	deleteErr error
	refreshed []string
}

func newMockPlantRepository() *mockPlantRepository {
	return &mockPlantRepository{
		plants:    make(map[string]*secondary.PlantRecord),
		equipment: make(map[string]int),
		schedules: make(map[string]int),
	}
}

func (m *mockPlantRepository) Create(ctx context.Context, plant *secondary.PlantRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.plants[plant.ID] = plant
	return nil
}

func (m *mockPlantRepository) GetByID(ctx context.Context, id string) (*secondary.PlantRecord, error) {
	if p, ok := m.plants[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("plant %s not found", id)
}

func (m *mockPlantRepository) filter(filters secondary.PlantFilters) []*secondary.PlantRecord {
	var out []*secondary.PlantRecord
	for _, p := range m.plants {
		if filters.Status != "" && p.Status != filters.Status {
			continue
		}
		if filters.AreaOwnerID != "" && p.AreaOwnerID != filters.AreaOwnerID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *mockPlantRepository) List(ctx context.Context, filters secondary.PlantFilters) ([]*secondary.PlantRecord, error) {
	out := m.filter(filters)
	if filters.Offset > len(out) {
		return nil, nil
	}
	out = out[filters.Offset:]
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func (m *mockPlantRepository) Count(ctx context.Context, filters secondary.PlantFilters) (int, error) {
	return len(m.filter(filters)), nil
}

func (m *mockPlantRepository) Update(ctx context.Context, plant *secondary.PlantRecord) error {
	existing, ok := m.plants[plant.ID]
	if !ok {
		return apperr.NotFound("plant %s not found", plant.ID)
	}
	plant.EquipmentCount = existing.EquipmentCount
	m.plants[plant.ID] = plant
	return nil
}

func (m *mockPlantRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.plants, id)
	return nil
}

func (m *mockPlantRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("PLANT-%03d", len(m.plants)+1), nil
}

func (m *mockPlantRepository) RefreshEquipmentCount(ctx context.Context, plantID string) error {
	m.refreshed = append(m.refreshed, plantID)
	return nil
}

func (m *mockPlantRepository) CountEquipment(ctx context.Context, plantID string) (int, error) {
	return m.equipment[plantID], nil
}

func (m *mockPlantRepository) CountSchedules(ctx context.Context, plantID string) (int, error) {
	return m.schedules[plantID], nil
}

// ============================================================================
// Mock EquipmentRepository
// ============================================================================

type mockEquipmentRepository struct {
	equipment map[string]*secondary.EquipmentRecord
	createErr error
}

func newMockEquipmentRepository() *mockEquipmentRepository {
	return &mockEquipmentRepository{equipment: make(map[string]*secondary.EquipmentRecord)}
}

func (m *mockEquipmentRepository) Create(ctx context.Context, e *secondary.EquipmentRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.equipment[e.ID] = e
	return nil
}

func (m *mockEquipmentRepository) GetByID(ctx context.Context, id string) (*secondary.EquipmentRecord, error) {
	if e, ok := m.equipment[id]; ok {
		return e, nil
	}
	return nil, apperr.NotFound("equipment %s not found", id)
}

func (m *mockEquipmentRepository) filter(filters secondary.EquipmentFilters) []*secondary.EquipmentRecord {
	var out []*secondary.EquipmentRecord
	for _, e := range m.equipment {
		if filters.PlantID != "" && e.PlantID != filters.PlantID {
			continue
		}
		if filters.Status != "" && e.Status != filters.Status {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *mockEquipmentRepository) List(ctx context.Context, filters secondary.EquipmentFilters) ([]*secondary.EquipmentRecord, error) {
	out := m.filter(filters)
	if filters.Offset > len(out) {
		return nil, nil
	}
	out = out[filters.Offset:]
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func (m *mockEquipmentRepository) Count(ctx context.Context, filters secondary.EquipmentFilters) (int, error) {
	return len(m.filter(filters)), nil
}

func (m *mockEquipmentRepository) Update(ctx context.Context, e *secondary.EquipmentRecord) error {
	m.equipment[e.ID] = e
	return nil
}

func (m *mockEquipmentRepository) Delete(ctx context.Context, id string) error {
	delete(m.equipment, id)
	return nil
}

func (m *mockEquipmentRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("EQP-%03d", len(m.equipment)+1), nil
}

// ============================================================================
// Mock ScheduleRepository
// ============================================================================

type mockScheduleRepository struct {
	schedules   map[string]*secondary.ScheduleRecord
	auditCounts map[string]int
	allocations *mockAllocationRepository // consulted for AuditorID filters
	createErr   error
	lastFilters secondary.ScheduleFilters
}

func newMockScheduleRepository(allocations *mockAllocationRepository) *mockScheduleRepository {
	return &mockScheduleRepository{
		schedules:   make(map[string]*secondary.ScheduleRecord),
		auditCounts: make(map[string]int),
		allocations: allocations,
	}
}

func (m *mockScheduleRepository) Create(ctx context.Context, s *secondary.ScheduleRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.schedules[s.ID] = s
	return nil
}

func (m *mockScheduleRepository) GetByID(ctx context.Context, id string) (*secondary.ScheduleRecord, error) {
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, apperr.NotFound("schedule %s not found", id)
}

func (m *mockScheduleRepository) List(ctx context.Context, filters secondary.ScheduleFilters) ([]*secondary.ScheduleRecord, error) {
	m.lastFilters = filters
	var out []*secondary.ScheduleRecord
	for _, s := range m.schedules {
		if filters.PlantID != "" && s.PlantID != filters.PlantID {
			continue
		}
		if filters.Status != "" && s.Status != filters.Status {
			continue
		}
		if filters.FromDate != "" && s.ScheduleDate < filters.FromDate {
			continue
		}
		if filters.ToDate != "" && s.ScheduleDate > filters.ToDate {
			continue
		}
		if filters.AuditorID != "" && m.allocations != nil {
			if ok, _ := m.allocations.Exists(ctx, filters.AuditorID, s.ID); !ok {
				continue
			}
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduleDate < out[j].ScheduleDate })
	return out, nil
}

func (m *mockScheduleRepository) UpdateStatus(ctx context.Context, id, status string) error {
	s, ok := m.schedules[id]
	if !ok {
		return apperr.NotFound("schedule %s not found", id)
	}
	s.Status = status
	return nil
}

func (m *mockScheduleRepository) Delete(ctx context.Context, id string) error {
	delete(m.schedules, id)
	return nil
}

func (m *mockScheduleRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("SCHED-%03d", len(m.schedules)+1), nil
}

func (m *mockScheduleRepository) CountAudits(ctx context.Context, scheduleID string) (int, error) {
	return m.auditCounts[scheduleID], nil
}

// ============================================================================
// Mock AllocationRepository
// ============================================================================

type mockAllocationRepository struct {
	allocations []*secondary.AllocationRecord
	createErr   error
}

func newMockAllocationRepository() *mockAllocationRepository {
	return &mockAllocationRepository{}
}

func (m *mockAllocationRepository) Create(ctx context.Context, a *secondary.AllocationRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.allocations = append(m.allocations, a)
	return nil
}

func (m *mockAllocationRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]*secondary.AllocationRecord, error) {
	var out []*secondary.AllocationRecord
	for _, a := range m.allocations {
		if a.ScheduleID == scheduleID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAllocationRepository) Exists(ctx context.Context, auditorID, scheduleID string) (bool, error) {
	for _, a := range m.allocations {
		if a.AuditorID == auditorID && a.ScheduleID == scheduleID {
			return true, nil
		}
	}
	return false, nil
}

// ============================================================================
// Mock AuditRepository
// ============================================================================

type mockAuditRepository struct {
	audits    map[string]*secondary.AuditRecord
	updateErr error
}

func newMockAuditRepository() *mockAuditRepository {
	return &mockAuditRepository{audits: make(map[string]*secondary.AuditRecord)}
}

func (m *mockAuditRepository) Create(ctx context.Context, a *secondary.AuditRecord) error {
	m.audits[a.ID] = a
	return nil
}

func (m *mockAuditRepository) GetByID(ctx context.Context, id string) (*secondary.AuditRecord, error) {
	if a, ok := m.audits[id]; ok {
		return a, nil
	}
	return nil, apperr.NotFound("audit %s not found", id)
}

func (m *mockAuditRepository) List(ctx context.Context, filters secondary.AuditFilters) ([]*secondary.AuditRecord, error) {
	var out []*secondary.AuditRecord
	for _, a := range m.audits {
		if filters.ScheduleID != "" && a.ScheduleID != filters.ScheduleID {
			continue
		}
		if filters.Status != "" && a.Status != filters.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockAuditRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	a, ok := m.audits[id]
	if !ok {
		return apperr.NotFound("audit %s not found", id)
	}
	a.Status = status
	return nil
}

func (m *mockAuditRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("AUDIT-%03d", len(m.audits)+1), nil
}

func (m *mockAuditRepository) CountOpenForSchedule(ctx context.Context, scheduleID string) (int, error) {
	n := 0
	for _, a := range m.audits {
		if a.ScheduleID == scheduleID && a.Status != "Cancelled" {
			n++
		}
	}
	return n, nil
}

// ============================================================================
// Mock AttendanceRepository
// ============================================================================

type mockAttendanceRepository struct {
	entries map[string]*secondary.AttendanceRecord
}

func newMockAttendanceRepository() *mockAttendanceRepository {
	return &mockAttendanceRepository{entries: make(map[string]*secondary.AttendanceRecord)}
}

func (m *mockAttendanceRepository) Create(ctx context.Context, a *secondary.AttendanceRecord) error {
	m.entries[a.ID] = a
	return nil
}

func (m *mockAttendanceRepository) Update(ctx context.Context, a *secondary.AttendanceRecord) error {
	m.entries[a.ID] = a
	return nil
}

func (m *mockAttendanceRepository) GetByAuditAndAuditor(ctx context.Context, auditID, auditorID string) (*secondary.AttendanceRecord, error) {
	for _, a := range m.entries {
		if a.AuditID == auditID && a.AuditorID == auditorID {
			return a, nil
		}
	}
	return nil, apperr.NotFound("attendance not found")
}

func (m *mockAttendanceRepository) ListByAudit(ctx context.Context, auditID string) ([]*secondary.AttendanceRecord, error) {
	var out []*secondary.AttendanceRecord
	for _, a := range m.entries {
		if a.AuditID == auditID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("ATT-%03d", len(m.entries)+1), nil
}

// ============================================================================
// Mock EvidenceRepository
// ============================================================================

type mockEvidenceRepository struct {
	evidence  map[string]*secondary.EvidenceRecord
	createErr error
}

func newMockEvidenceRepository() *mockEvidenceRepository {
	return &mockEvidenceRepository{evidence: make(map[string]*secondary.EvidenceRecord)}
}

func (m *mockEvidenceRepository) Create(ctx context.Context, e *secondary.EvidenceRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.evidence[e.ID] = e
	return nil
}

func (m *mockEvidenceRepository) GetByID(ctx context.Context, id string) (*secondary.EvidenceRecord, error) {
	if e, ok := m.evidence[id]; ok {
		return e, nil
	}
	return nil, apperr.NotFound("evidence %s not found", id)
}

func (m *mockEvidenceRepository) ListByAudit(ctx context.Context, auditID string) ([]*secondary.EvidenceRecord, error) {
	var out []*secondary.EvidenceRecord
	for _, e := range m.evidence {
		if e.AuditID == auditID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEvidenceRepository) Delete(ctx context.Context, id string) error {
	delete(m.evidence, id)
	return nil
}

func (m *mockEvidenceRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("EVID-%03d", len(m.evidence)+1), nil
}

// ============================================================================
// Mock ActionRepository
// ============================================================================

type mockActionRepository struct {
	actions       map[string]*secondary.ActionRecord
	stampedMgmtID map[string]string
	lastFilters   secondary.ActionFilters
}

func newMockActionRepository() *mockActionRepository {
	return &mockActionRepository{
		actions:       make(map[string]*secondary.ActionRecord),
		stampedMgmtID: make(map[string]string),
	}
}

func (m *mockActionRepository) Create(ctx context.Context, a *secondary.ActionRecord) error {
	m.actions[a.ID] = a
	return nil
}

func (m *mockActionRepository) GetByID(ctx context.Context, id string) (*secondary.ActionRecord, error) {
	if a, ok := m.actions[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, apperr.NotFound("corrective action %s not found", id)
}

func (m *mockActionRepository) List(ctx context.Context, filters secondary.ActionFilters) ([]*secondary.ActionRecord, error) {
	m.lastFilters = filters
	var out []*secondary.ActionRecord
	for _, a := range m.actions {
		if filters.AuditID != "" && a.AuditID != filters.AuditID {
			continue
		}
		if filters.Status != "" && a.Status != filters.Status {
			continue
		}
		if filters.ResponsiblePersonID != "" && a.ResponsiblePersonID != filters.ResponsiblePersonID {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Deadline != out[j].Deadline {
			return out[i].Deadline < out[j].Deadline
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *mockActionRepository) Update(ctx context.Context, a *secondary.ActionRecord) error {
	existing, ok := m.actions[a.ID]
	if !ok {
		return apperr.NotFound("corrective action %s not found", a.ID)
	}
	existing.Description = a.Description
	existing.Deadline = a.Deadline
	existing.ResponsiblePersonID = a.ResponsiblePersonID
	return nil
}

func (m *mockActionRepository) UpdateStatus(ctx context.Context, id, status, managementID string) error {
	a, ok := m.actions[id]
	if !ok {
		return apperr.NotFound("corrective action %s not found", id)
	}
	a.Status = status
	if managementID != "" {
		a.ManagementID = managementID
		m.stampedMgmtID[id] = managementID
	}
	return nil
}

func (m *mockActionRepository) Delete(ctx context.Context, id string) error {
	delete(m.actions, id)
	return nil
}

func (m *mockActionRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("ACT-%03d", len(m.actions)+1), nil
}

// ============================================================================
// Mock HistoryRepository
// ============================================================================

type mockHistoryRepository struct {
	histories map[string]*secondary.HistoryRecord
	createErr error
}

func newMockHistoryRepository() *mockHistoryRepository {
	return &mockHistoryRepository{histories: make(map[string]*secondary.HistoryRecord)}
}

func (m *mockHistoryRepository) Create(ctx context.Context, h *secondary.HistoryRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.histories[h.ID] = h
	return nil
}

func (m *mockHistoryRepository) GetByID(ctx context.Context, id string) (*secondary.HistoryRecord, error) {
	if h, ok := m.histories[id]; ok {
		return h, nil
	}
	return nil, apperr.NotFound("history %s not found", id)
}

func (m *mockHistoryRepository) GetByAuditID(ctx context.Context, auditID string) (*secondary.HistoryRecord, error) {
	for _, h := range m.histories {
		if h.AuditID == auditID {
			return h, nil
		}
	}
	return nil, apperr.NotFound("history for audit %s not found", auditID)
}

func (m *mockHistoryRepository) ExistsForAudit(ctx context.Context, auditID string) (bool, error) {
	_, err := m.GetByAuditID(ctx, auditID)
	return err == nil, nil
}

func (m *mockHistoryRepository) List(ctx context.Context, filters secondary.HistoryFilters) ([]*secondary.HistoryRecord, error) {
	var out []*secondary.HistoryRecord
	for _, h := range m.histories {
		if filters.AreaOwnerID != "" && h.AreaOwnerID != filters.AreaOwnerID {
			continue
		}
		if filters.Status != "" && h.Status != filters.Status {
			continue
		}
		if filters.EscalationLevel != "" && h.EscalationLevel != filters.EscalationLevel {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockHistoryRepository) UpdateReview(ctx context.Context, id, status, reviewComments string) error {
	h, ok := m.histories[id]
	if !ok {
		return apperr.NotFound("history %s not found", id)
	}
	h.Status = status
	h.ReviewComments = reviewComments
	return nil
}

func (m *mockHistoryRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("HIST-%03d", len(m.histories)+1), nil
}

// ============================================================================
// Mock FileStore, SessionStore, PasswordHasher
// ============================================================================

type mockFileStore struct {
	files     map[string][]byte
	storeErr  error
	deleteErr error
}

func newMockFileStore() *mockFileStore {
	return &mockFileStore{files: make(map[string][]byte)}
}

func (m *mockFileStore) Store(ctx context.Context, r io.Reader, originalName, folder, slugHint string) (string, error) {
	if m.storeErr != nil {
		return "", m.storeErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("/%s/%s-%d", folder, originalName, len(m.files)+1)
	m.files[path] = data
	return path, nil
}

func (m *mockFileStore) Delete(ctx context.Context, relativePath string) (bool, error) {
	if m.deleteErr != nil {
		return false, m.deleteErr
	}
	_, ok := m.files[relativePath]
	delete(m.files, relativePath)
	return ok, nil
}

type mockSessionStore struct {
	session *secondary.SessionRecord
	cleared int
}

func (m *mockSessionStore) Load() (*secondary.SessionRecord, error) {
	if m.session == nil {
		return nil, nil
	}
	copied := *m.session
	return &copied, nil
}

func (m *mockSessionStore) Save(session *secondary.SessionRecord) error {
	copied := *session
	m.session = &copied
	return nil
}

func (m *mockSessionStore) Clear() error {
	m.session = nil
	m.cleared++
	return nil
}

// plainHasher "hashes" by prefixing, which keeps tests fast and deterministic.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) bool { return hash == "hashed:"+password }

var (
	_ secondary.Transactor           = (*mockTransactor)(nil)
	_ secondary.LogWriter            = (*mockLogWriter)(nil)
	_ secondary.PersonRepository     = (*mockPersonRepository)(nil)
	_ secondary.UserRepository       = (*mockUserRepository)(nil)
	_ secondary.PlantRepository      = (*mockPlantRepository)(nil)
	_ secondary.EquipmentRepository  = (*mockEquipmentRepository)(nil)
	_ secondary.ScheduleRepository   = (*mockScheduleRepository)(nil)
	_ secondary.AllocationRepository = (*mockAllocationRepository)(nil)
	_ secondary.AuditRepository      = (*mockAuditRepository)(nil)
	_ secondary.AttendanceRepository = (*mockAttendanceRepository)(nil)
	_ secondary.EvidenceRepository   = (*mockEvidenceRepository)(nil)
	_ secondary.ActionRepository     = (*mockActionRepository)(nil)
	_ secondary.HistoryRepository    = (*mockHistoryRepository)(nil)
	_ secondary.FileStore            = (*mockFileStore)(nil)
	_ secondary.SessionStore         = (*mockSessionStore)(nil)
	_ secondary.PasswordHasher       = plainHasher{}
)
