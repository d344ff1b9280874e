package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/pathforge/roadmap-backend/internal/config"
	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/types"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(cfg config.PostgresConfig, logg *logger.Logger) (*PostgresService, error) {
	serviceLog := logg.With("service", "PostgresService")

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB { return s.db }

func (s *PostgresService) AutoMigrateAll() error {
	return AutoMigrate(s.db)
}

// AutoMigrate creates or updates the full relational tree. Shared with the
// test harness so tests migrate exactly what production migrates.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&types.User{},
		&types.Category{},
		&types.Goal{},
		&types.Roadmap{},
		&types.Milestone{},
		&types.Resource{},
		&types.ProgressEntry{},
	)
}

// SeedCategories inserts one default category per supported type when the
// table is empty. The original deployment relies on admin-seeded rows; this
// keeps a fresh database usable without an admin console.
func (s *PostgresService) SeedCategories(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&types.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []*types.Category{
		{Name: "Coding", CategoryType: types.CategoryTypeCoding, Description: "Programming languages, frameworks and tools"},
		{Name: "Language Learning", CategoryType: types.CategoryTypeLanguage, Description: "Natural language study"},
		{Name: "Fitness", CategoryType: types.CategoryTypeFitness, Description: "Training and physical skills"},
		{Name: "Other", CategoryType: types.CategoryTypeOther, Description: "Everything else"},
	}
	if err := s.db.WithContext(ctx).Create(&defaults).Error; err != nil {
		return err
	}
	s.log.Info("seeded default categories", "count", len(defaults))
	return nil
}
