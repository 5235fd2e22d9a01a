package cmd

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/leave-management/internal"
	leaveDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/leave"
	userDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/user"
	"github.com/frahmantamala/leave-management/internal/leave"
	leaveMemory "github.com/frahmantamala/leave-management/internal/leave/memory"
	leavePostgres "github.com/frahmantamala/leave-management/internal/leave/postgres"
	"github.com/frahmantamala/leave-management/internal/user"
	userMemory "github.com/frahmantamala/leave-management/internal/user/memory"
	userPostgres "github.com/frahmantamala/leave-management/internal/user/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Storage is the repository set for the configured driver. SQL is nil for the
// in-memory driver.
type Storage struct {
	Driver string
	SQL    *sqlx.DB
	Gorm   *gorm.DB
	Users  user.RepositoryAPI
	Leaves leave.RepositoryAPI
}

func openStorage(cfg internal.DatabaseConfig, logger *slog.Logger) (*Storage, error) {
	switch cfg.Driver {
	case internal.DriverMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
		return &Storage{
			Driver: cfg.Driver,
			Users:  userMemory.NewUserRepository(),
			Leaves: leaveMemory.NewLeaveRepository(),
		}, nil

	case internal.DriverPostgres:
		db, err := initDB(cfg)
		if err != nil {
			return nil, err
		}
		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), gormConfig())
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to open gorm on postgres: %w", err)
		}
		return newSQLStorage(cfg.Driver, db, gdb), nil

	case internal.DriverSQLite:
		gdb, err := gorm.Open(sqlite.Open(cfg.GetDSN()), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
		if err := autoMigrate(gdb); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		return newSQLStorage(cfg.Driver, sqlx.NewDb(sqlDB, "sqlite3"), gdb), nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func newSQLStorage(driver string, db *sqlx.DB, gdb *gorm.DB) *Storage {
	return &Storage{
		Driver: driver,
		SQL:    db,
		Gorm:   gdb,
		Users:  userPostgres.NewUserRepository(gdb),
		Leaves: leavePostgres.NewLeaveRepository(gdb),
	}
}

func (s *Storage) Close() error {
	if s.SQL == nil {
		return nil
	}
	return s.SQL.Close()
}

// initDB opens the pgx connection pool
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	db, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
		TranslateError: true,
	}
}

func autoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&userDatamodel.User{}, &leaveDatamodel.LeaveRequest{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
