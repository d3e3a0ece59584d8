// Package wire provides dependency injection for the madar application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/example/madar/internal/adapters/auth"
	cliadapter "github.com/example/madar/internal/adapters/cli"
	"github.com/example/madar/internal/adapters/filesystem"
	"github.com/example/madar/internal/adapters/sqlite"
	"github.com/example/madar/internal/app"
	"github.com/example/madar/internal/config"
	"github.com/example/madar/internal/db"
	"github.com/example/madar/internal/logging"
	"github.com/example/madar/internal/ports/primary"
)

// Services holds every primary port the CLI drives.
type Services struct {
	People      primary.PeopleService
	Auth        primary.AuthService
	Plants      primary.PlantService
	Schedules   primary.ScheduleService
	Audits      primary.AuditService
	Actions     primary.ActionService
	Histories   primary.HistoryService
	Reports     primary.ReportService
	ActivityLog primary.ActivityLogService
}

// Options carries the settings Build needs beyond the database.
type Options struct {
	StorageRoot           string
	SessionFile           string
	SessionTimeoutMinutes int
	DefaultPeriod         string
	Paging                app.Paging
	BcryptCost            int // 0 means the hasher default
	Clock                 app.Clock
	Logger                *zap.Logger
}

// Build wires repositories and services over an open database.
func Build(database *sql.DB, opts Options) (*Services, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	// Secondary adapters
	userRepo := sqlite.NewUserRepository(database)
	personRepo := sqlite.NewPersonRepository(database)
	plantRepo := sqlite.NewPlantRepository(database)
	equipmentRepo := sqlite.NewEquipmentRepository(database)
	scheduleRepo := sqlite.NewScheduleRepository(database)
	allocationRepo := sqlite.NewAllocationRepository(database)
	auditRepo := sqlite.NewAuditRepository(database)
	attendanceRepo := sqlite.NewAttendanceRepository(database)
	evidenceRepo := sqlite.NewEvidenceRepository(database)
	actionRepo := sqlite.NewActionRepository(database)
	historyRepo := sqlite.NewHistoryRepository(database)
	reportRepo := sqlite.NewReportRepository(database)
	activityRepo := sqlite.NewActivityLogRepository(database)
	logWriter := sqlite.NewActivityLogWriter(activityRepo)
	transactor := sqlite.NewTransactor(database)

	store, err := filesystem.NewEvidenceStore(opts.StorageRoot)
	if err != nil {
		return nil, err
	}
	if opts.Clock != nil {
		store.WithClock(opts.Clock)
	}
	hasher := auth.NewBcryptHasher(opts.BcryptCost)
	sessions := filesystem.NewSessionStore(opts.SessionFile)

	// Primary services
	return &Services{
		People: app.NewPeopleService(userRepo, personRepo, hasher, transactor, logWriter, logger),
		Auth:   app.NewAuthService(userRepo, personRepo, hasher, sessions, opts.SessionTimeoutMinutes, opts.Clock, logger),
		Plants: app.NewPlantService(plantRepo, equipmentRepo, personRepo, transactor, logWriter, opts.Paging, logger),
		Schedules: app.NewScheduleService(scheduleRepo, allocationRepo, auditRepo, plantRepo, personRepo,
			transactor, logWriter, opts.Clock, logger),
		Audits: app.NewAuditService(app.AuditRepos{
			Audits:      auditRepo,
			Schedules:   scheduleRepo,
			Allocations: allocationRepo,
			Plants:      plantRepo,
			People:      personRepo,
			Attendance:  attendanceRepo,
			Evidence:    evidenceRepo,
			Actions:     actionRepo,
			Histories:   historyRepo,
		}, store, transactor, logWriter, opts.Clock, logger),
		Actions:   app.NewActionService(actionRepo, auditRepo, allocationRepo, personRepo, logWriter, opts.Clock, logger),
		Histories: app.NewHistoryService(historyRepo, auditRepo, transactor, logWriter, logger),
		Reports: app.NewReportService(app.ReportRepos{
			Reports:   reportRepo,
			Plants:    plantRepo,
			Equipment: equipmentRepo,
			Schedules: scheduleRepo,
			Audits:    auditRepo,
			Actions:   actionRepo,
			People:    personRepo,
		}, opts.DefaultPeriod, opts.Clock, logger),
		ActivityLog: app.NewActivityLogService(activityRepo),
	}, nil
}

var (
	configFile string

	cfg      *config.Config
	logger   *zap.Logger
	database *sql.DB
	services *Services
	initErr  error
	once     sync.Once
)

// SetConfigFile selects an explicit config file. It must be called before
// the first accessor.
func SetConfigFile(path string) {
	configFile = path
}

// App returns the singleton services, initializing them on first use.
func App() (*Services, error) {
	once.Do(initServices)
	return services, initErr
}

// Config returns the resolved configuration.
func Config() (*config.Config, error) {
	once.Do(initServices)
	return cfg, initErr
}

// Logger returns the application logger, or a no-op logger if
// initialization failed before it was built.
func Logger() *zap.Logger {
	once.Do(initServices)
	if logger == nil {
		return logging.Nop()
	}
	return logger
}

// DB returns the open database handle.
func DB() (*sql.DB, error) {
	once.Do(initServices)
	return database, initErr
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cfg, initErr = config.Load(configFile)
	if initErr != nil {
		return
	}

	logger, initErr = logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if initErr != nil {
		return
	}

	database, initErr = db.Open(cfg.Database.Path)
	if initErr != nil {
		initErr = fmt.Errorf("failed to initialize database: %w", initErr)
		return
	}

	services, initErr = Build(database, Options{
		StorageRoot:           cfg.Storage.Root,
		SessionFile:           cfg.Session.File,
		SessionTimeoutMinutes: cfg.Session.TimeoutMinutes,
		DefaultPeriod:         cfg.Report.DefaultPeriod,
		Paging: app.Paging{
			PlantPageSize:     cfg.Pagination.PlantPageSize,
			EquipmentPageSize: cfg.Pagination.EquipmentPageSize,
		},
		Logger: logger,
	})
	if initErr == nil {
		logger.Debug("services initialized",
			zap.String("config", cfg.File),
			zap.String("database", cfg.Database.Path))
	}
}

// PlantAdapter returns a PlantAdapter writing to out, or stdout when out is nil.
func (s *Services) PlantAdapter(out io.Writer) *cliadapter.PlantAdapter {
	return cliadapter.NewPlantAdapter(s.Plants, stdout(out))
}

// ScheduleAdapter returns a ScheduleAdapter writing to out.
func (s *Services) ScheduleAdapter(out io.Writer) *cliadapter.ScheduleAdapter {
	return cliadapter.NewScheduleAdapter(s.Schedules, stdout(out))
}

// AuditAdapter returns an AuditAdapter writing to out.
func (s *Services) AuditAdapter(out io.Writer) *cliadapter.AuditAdapter {
	return cliadapter.NewAuditAdapter(s.Audits, stdout(out))
}

// ActionAdapter returns an ActionAdapter writing to out.
func (s *Services) ActionAdapter(out io.Writer) *cliadapter.ActionAdapter {
	return cliadapter.NewActionAdapter(s.Actions, stdout(out))
}

// HistoryAdapter returns a HistoryAdapter writing to out.
func (s *Services) HistoryAdapter(out io.Writer) *cliadapter.HistoryAdapter {
	return cliadapter.NewHistoryAdapter(s.Histories, stdout(out))
}

// ReportAdapter returns a ReportAdapter writing to out.
func (s *Services) ReportAdapter(out io.Writer) *cliadapter.ReportAdapter {
	return cliadapter.NewReportAdapter(s.Reports, stdout(out))
}

// PeopleAdapter returns a PeopleAdapter writing to out.
func (s *Services) PeopleAdapter(out io.Writer) *cliadapter.PeopleAdapter {
	return cliadapter.NewPeopleAdapter(s.People, s.Auth, stdout(out))
}

// LogAdapter returns a LogAdapter writing to out.
func (s *Services) LogAdapter(out io.Writer) *cliadapter.LogAdapter {
	return cliadapter.NewLogAdapter(s.ActivityLog, stdout(out))
}

func stdout(out io.Writer) io.Writer {
	if out == nil {
		return os.Stdout
	}
	return out
}

// Close releases the database and flushes the logger.
func Close() {
	if database != nil {
		database.Close()
	}
	if logger != nil {
		_ = logger.Sync()
	}
}
