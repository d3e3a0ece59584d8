// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// Transactor runs a unit of work atomically. Repositories called with the
// context passed to fn participate in the same transaction.
type Transactor interface {
	// WithinTx runs fn in a transaction, committing if fn returns nil and
	// rolling back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the secondary port for login accounts.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *UserRecord) error

	// GetByID retrieves a user by its ID.
	GetByID(ctx context.Context, id string) (*UserRecord, error)

	// GetByEmail retrieves a user by email address.
	GetByEmail(ctx context.Context, email string) (*UserRecord, error)

	// List retrieves users matching the given filters.
	List(ctx context.Context, filters UserFilters) ([]*UserRecord, error)

	// EmailExists checks whether an email address is already registered.
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateAccount changes a user's display name and email.
	UpdateAccount(ctx context.Context, id, name, email string) error

	// UpdatePassword replaces a user's password hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// GetNextID returns the next available user ID.
	GetNextID(ctx context.Context) (string, error)
}

// UserRecord represents a user as stored in persistence.
type UserRecord struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	UserType     string
	Status       string
	CreatedAt    string
}

// UserFilters contains filter options for querying users.
type UserFilters struct {
	UserType string
	Limit    int
}

// PersonRepository defines the secondary port for role profiles
// (management, area owners, auditors, responsible persons).
// The role selects the profile table.
type PersonRepository interface {
	// Create persists a new profile for the role.
	Create(ctx context.Context, role string, person *PersonRecord) error

	// GetByID retrieves a profile by its ID.
	GetByID(ctx context.Context, role, id string) (*PersonRecord, error)

	// GetByUserID retrieves the profile linked to a user.
	GetByUserID(ctx context.Context, role, userID string) (*PersonRecord, error)

	// List retrieves profiles of a role.
	List(ctx context.Context, role string, filters PersonFilters) ([]*PersonRecord, error)

	// Exists checks whether a profile exists.
	Exists(ctx context.Context, role, id string) (bool, error)

	// Update changes a profile's name, email and extension.
	Update(ctx context.Context, role string, person *PersonRecord) error

	// GetNextID returns the next available profile ID for the role.
	GetNextID(ctx context.Context, role string) (string, error)
}

// PersonRecord represents a role profile as stored in persistence.
type PersonRecord struct {
	ID          string
	UserID      string
	AreaOwnerID string // Only for responsible persons. Empty string means null.
	FirstName   string
	LastName    string
	Email       string
	Extension   string
	Role        string
	CreatedAt   string
}

// PersonFilters contains filter options for querying profiles.
type PersonFilters struct {
	AreaOwnerID string
}

// PlantRepository defines the secondary port for plant persistence.
type PlantRepository interface {
	// Create persists a new plant.
	Create(ctx context.Context, plant *PlantRecord) error

	// GetByID retrieves a plant by its ID.
	GetByID(ctx context.Context, id string) (*PlantRecord, error)

	// List retrieves plants matching the given filters.
	List(ctx context.Context, filters PlantFilters) ([]*PlantRecord, error)

	// Count returns the number of plants matching the filters, ignoring paging.
	Count(ctx context.Context, filters PlantFilters) (int, error)

	// Update updates an existing plant's editable fields.
	Update(ctx context.Context, plant *PlantRecord) error

	// Delete removes a plant from persistence.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available plant ID.
	GetNextID(ctx context.Context) (string, error)

	// RefreshEquipmentCount recomputes the cached equipment count from the equipment table.
	RefreshEquipmentCount(ctx context.Context, plantID string) error

	// CountEquipment returns the number of equipment rows referencing the plant.
	CountEquipment(ctx context.Context, plantID string) (int, error)

	// CountSchedules returns the number of audit schedules referencing the plant.
	CountSchedules(ctx context.Context, plantID string) (int, error)
}

// PlantRecord represents a plant as stored in persistence.
type PlantRecord struct {
	ID             string
	ManagementID   string
	AreaOwnerID    string
	Name           string
	Location       string
	Status         string
	Type           string
	Capacity       int
	EquipmentCount int
	CreatedAt      string
	UpdatedAt      string
}

// PlantFilters contains filter options for querying plants.
type PlantFilters struct {
	Status      string
	AreaOwnerID string
	Limit       int
	Offset      int
}

// EquipmentRepository defines the secondary port for equipment persistence.
type EquipmentRepository interface {
	// Create persists new equipment.
	Create(ctx context.Context, equipment *EquipmentRecord) error

	// GetByID retrieves equipment by its ID.
	GetByID(ctx context.Context, id string) (*EquipmentRecord, error)

	// List retrieves equipment matching the given filters.
	List(ctx context.Context, filters EquipmentFilters) ([]*EquipmentRecord, error)

	// Count returns the number of equipment rows matching the filters, ignoring paging.
	Count(ctx context.Context, filters EquipmentFilters) (int, error)

	// Update updates existing equipment.
	Update(ctx context.Context, equipment *EquipmentRecord) error

	// Delete removes equipment from persistence.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available equipment ID.
	GetNextID(ctx context.Context) (string, error)
}

// EquipmentRecord represents equipment as stored in persistence.
type EquipmentRecord struct {
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
	UpdatedAt        string
}

// EquipmentFilters contains filter options for querying equipment.
type EquipmentFilters struct {
	PlantID string
	Status  string
	Limit   int
	Offset  int
}

// ScheduleRepository defines the secondary port for audit schedule persistence.
type ScheduleRepository interface {
	// Create persists a new schedule.
	Create(ctx context.Context, schedule *ScheduleRecord) error

	// GetByID retrieves a schedule by its ID.
	GetByID(ctx context.Context, id string) (*ScheduleRecord, error)

	// List retrieves schedules matching the given filters, earliest date first.
	List(ctx context.Context, filters ScheduleFilters) ([]*ScheduleRecord, error)

	// UpdateStatus sets a schedule's status.
	UpdateStatus(ctx context.Context, id, status string) error

	// Delete removes a schedule. Its allocations cascade.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available schedule ID.
	GetNextID(ctx context.Context) (string, error)

	// CountAudits returns the number of audits referencing the schedule.
	CountAudits(ctx context.Context, scheduleID string) (int, error)
}

// ScheduleRecord represents an audit schedule as stored in persistence.
type ScheduleRecord struct {
	ID            string
	PlantID       string
	PlantName     string // joined for display
	ScheduleDate  string // YYYY-MM-DD
	Status        string
	DurationHours int
	CreatedAt     string
	UpdatedAt     string
}

// ScheduleFilters contains filter options for querying schedules.
type ScheduleFilters struct {
	PlantID   string
	Status    string
	AuditorID string // only schedules the auditor is allocated to
	FromDate  string // inclusive, YYYY-MM-DD
	ToDate    string // inclusive, YYYY-MM-DD
	Limit     int
}

// AllocationRepository defines the secondary port for auditor allocations.
type AllocationRepository interface {
	// Create persists a new allocation.
	Create(ctx context.Context, allocation *AllocationRecord) error

	// ListBySchedule retrieves the allocations of a schedule.
	ListBySchedule(ctx context.Context, scheduleID string) ([]*AllocationRecord, error)

	// Exists checks whether an auditor is allocated to a schedule.
	Exists(ctx context.Context, auditorID, scheduleID string) (bool, error)
}

// AllocationRecord represents an auditor allocation as stored in persistence.
type AllocationRecord struct {
	AuditorID    string
	ScheduleID   string
	AuditorName  string // joined for display
	AssignedDate string
	RoleType     string
}

// AuditRepository defines the secondary port for audit persistence.
type AuditRepository interface {
	// Create persists a new audit.
	Create(ctx context.Context, audit *AuditRecord) error

	// GetByID retrieves an audit by its ID.
	GetByID(ctx context.Context, id string) (*AuditRecord, error)

	// List retrieves audits matching the given filters.
	List(ctx context.Context, filters AuditFilters) ([]*AuditRecord, error)

	// UpdateStatus sets an audit's status.
	UpdateStatus(ctx context.Context, id, status string) error

	// GetNextID returns the next available audit ID.
	GetNextID(ctx context.Context) (string, error)

	// CountOpenForSchedule returns the number of audits of a schedule that are not Cancelled.
	CountOpenForSchedule(ctx context.Context, scheduleID string) (int, error)
}

// AuditRecord represents an audit as stored in persistence.
type AuditRecord struct {
	ID             string
	ScheduleID     string
	PlantID        string // joined through the schedule
	Title          string
	Description    string
	ChecklistSteps string
	Status         string
	CreatedAt      string
	UpdatedAt      string
}

// AuditFilters contains filter options for querying audits.
type AuditFilters struct {
	ScheduleID string
	PlantID    string
	Status     string
	AuditorID  string
	Limit      int
}

// AttendanceRepository defines the secondary port for audit attendance.
type AttendanceRepository interface {
	// Create persists a new attendance entry.
	Create(ctx context.Context, attendance *AttendanceRecord) error

	// Update updates an existing attendance entry.
	Update(ctx context.Context, attendance *AttendanceRecord) error

	// GetByAuditAndAuditor retrieves an auditor's entry for an audit.
	GetByAuditAndAuditor(ctx context.Context, auditID, auditorID string) (*AttendanceRecord, error)

	// ListByAudit retrieves the entries of an audit.
	ListByAudit(ctx context.Context, auditID string) ([]*AttendanceRecord, error)

	// GetNextID returns the next available attendance ID.
	GetNextID(ctx context.Context) (string, error)
}

// AttendanceRecord represents an attendance entry as stored in persistence.
type AttendanceRecord struct {
	ID                  string
	AuditID             string
	AuditorID           string
	ResponsiblePersonID string // Empty string means null
	AttendDate          string
	Status              string
	ArrivalTime         string // HH:MM, empty string means null
	DepartureTime       string // HH:MM, empty string means null
}

// EvidenceRepository defines the secondary port for evidence persistence.
type EvidenceRepository interface {
	// Create persists new evidence.
	Create(ctx context.Context, evidence *EvidenceRecord) error

	// GetByID retrieves evidence by its ID.
	GetByID(ctx context.Context, id string) (*EvidenceRecord, error)

	// ListByAudit retrieves the evidence of an audit.
	ListByAudit(ctx context.Context, auditID string) ([]*EvidenceRecord, error)

	// Delete removes evidence from persistence.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available evidence ID.
	GetNextID(ctx context.Context) (string, error)
}

// EvidenceRecord represents evidence as stored in persistence.
type EvidenceRecord struct {
	ID        string
	AuditID   string
	ActionID  string // Empty string means null
	Title     string
	URL       string
	CreatedAt string
}

// ActionRepository defines the secondary port for corrective action persistence.
type ActionRepository interface {
	// Create persists a new corrective action.
	Create(ctx context.Context, action *ActionRecord) error

	// GetByID retrieves a corrective action by its ID.
	GetByID(ctx context.Context, id string) (*ActionRecord, error)

	// List retrieves corrective actions matching the given filters, nearest deadline first.
	List(ctx context.Context, filters ActionFilters) ([]*ActionRecord, error)

	// Update updates description, deadline and responsible person.
	Update(ctx context.Context, action *ActionRecord) error

	// UpdateStatus sets the status. A non-empty managementID is stamped on the row.
	UpdateStatus(ctx context.Context, id, status, managementID string) error

	// Delete removes a corrective action. Linked evidence keeps its row with a null action.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available corrective action ID.
	GetNextID(ctx context.Context) (string, error)
}

// ActionRecord represents a corrective action as stored in persistence.
type ActionRecord struct {
	ID                  string
	AuditID             string
	ResponsiblePersonID string
	ManagementID        string // Empty string means null
	Description         string
	Deadline            string // YYYY-MM-DD
	Status              string
	CreatedAt           string
	UpdatedAt           string
}

// ActionFilters contains filter options for querying corrective actions.
type ActionFilters struct {
	AuditID             string
	Status              string
	ResponsiblePersonID string
	PlantID             string
}

// HistoryRepository defines the secondary port for audit completion records.
type HistoryRepository interface {
	// Create persists a new completion record.
	Create(ctx context.Context, history *HistoryRecord) error

	// GetByID retrieves a record by its ID.
	GetByID(ctx context.Context, id string) (*HistoryRecord, error)

	// GetByAuditID retrieves the record of an audit.
	GetByAuditID(ctx context.Context, auditID string) (*HistoryRecord, error)

	// ExistsForAudit checks whether an audit already has a record.
	ExistsForAudit(ctx context.Context, auditID string) (bool, error)

	// List retrieves records matching the given filters, newest first.
	List(ctx context.Context, filters HistoryFilters) ([]*HistoryRecord, error)

	// UpdateReview sets the review status and reviewer comments.
	UpdateReview(ctx context.Context, id, status, reviewComments string) error

	// GetNextID returns the next available record ID.
	GetNextID(ctx context.Context) (string, error)
}

// HistoryRecord represents an audit completion record as stored in persistence.
type HistoryRecord struct {
	ID              string
	AuditID         string
	AreaOwnerID     string
	ManagementID    string
	Title           string
	Status          string
	Score           *float64
	Comments        string
	EscalationLevel string
	ReviewComments  string
	CreatedAt       string // settable on create; empty means now
	UpdatedAt       string
}

// HistoryFilters contains filter options for querying completion records.
type HistoryFilters struct {
	Status          string
	EscalationLevel string
	AreaOwnerID     string
	Limit           int
}

// ActivityLogRepository defines the secondary port for the activity log.
type ActivityLogRepository interface {
	// Create persists a new log entry.
	Create(ctx context.Context, entry *ActivityLogRecord) error

	// List retrieves entries matching the given filters, newest first.
	List(ctx context.Context, filters ActivityLogFilters) ([]*ActivityLogRecord, error)

	// GetNextID returns the next available log ID.
	GetNextID(ctx context.Context) (string, error)
}

// ActivityLogRecord represents one change to an entity.
type ActivityLogRecord struct {
	ID         string
	Timestamp  string
	ActorID    string
	EntityType string
	EntityID   string
	Action     string // create, update, delete
	FieldName  string
	OldValue   string
	NewValue   string
}

// ActivityLogFilters contains filter options for querying the activity log.
type ActivityLogFilters struct {
	EntityType string
	EntityID   string
	ActorID    string
	Limit      int
}
