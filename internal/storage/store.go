package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"city-explorer/internal/config"
	"city-explorer/internal/observability"
	"city-explorer/internal/types"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store persists resolved locations in the locations table
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open connects to the configured database and registers the metrics plugin
func Open(cfg config.DatabaseConfig, level slog.Level, metrics *observability.Metrics, log *slog.Logger) (*Store, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Driver) {
	case "postgres":
		dialector = postgres.Open(cfg.URL)
	case "sqlite":
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	logLevel := logger.Silent
	if level <= slog.LevelDebug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if dialector.Name() == "sqlite" {
		// in-memory databases exist per connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	return New(db, metrics, log)
}

// New wraps an existing gorm connection
func New(db *gorm.DB, metrics *observability.Metrics, log *slog.Logger) (*Store, error) {
	if metrics != nil {
		if err := db.Use(&MetricsPlugin{metrics: metrics}); err != nil {
			return nil, fmt.Errorf("failed to register metrics plugin: %w", err)
		}
	}
	return &Store{
		db:     db,
		logger: log.With("component", "location-store"),
	}, nil
}

// Migrate creates the locations table and its unique search_query index
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&types.LocationRecord{}); err != nil {
		return fmt.Errorf("failed to migrate locations table: %w", err)
	}
	return nil
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// FindByQuery returns every row whose search_query equals query exactly
func (s *Store) FindByQuery(ctx context.Context, query string) ([]types.LocationRecord, error) {
	var rows []types.LocationRecord
	err := s.db.WithContext(ctx).
		Where("search_query = ?", query).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up location %q: %w", query, err)
	}
	return rows, nil
}

// Insert stores rec and fills in its ID. If another writer already stored
// the same search_query, rec is replaced with that row.
func (s *Store) Insert(ctx context.Context, rec *types.LocationRecord) error {
	if rec == nil {
		return errors.New("location record is nil")
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "search_query"}},
			DoNothing: true,
		}).
		Create(rec)
	if result.Error != nil {
		return fmt.Errorf("failed to insert location %q: %w", rec.SearchQuery, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var existing types.LocationRecord
	err := s.db.WithContext(ctx).
		Where("search_query = ?", rec.SearchQuery).
		Order("id").
		First(&existing).Error
	if err != nil {
		return fmt.Errorf("failed to load existing location %q: %w", rec.SearchQuery, err)
	}

	s.logger.Debug("location already stored by a concurrent request",
		"search_query", rec.SearchQuery,
		"id", existing.ID,
	)
	*rec = existing
	return nil
}
