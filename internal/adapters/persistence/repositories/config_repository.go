package repositories

import (
	"context"
	"errors"

	"election-checkin/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// configRepository implements ConfigRepository interface
type configRepository struct {
	db *gorm.DB
}

// NewConfigRepository creates a new election config repository
func NewConfigRepository(db *gorm.DB) ConfigRepository {
	return &configRepository{db: db}
}

// Get returns the stored value for a config key, empty if unset
func (r *configRepository) Get(ctx context.Context, key string) (string, error) {
	var cfg models.ElectionConfig
	err := r.db.WithContext(ctx).Where("config_key = ?", key).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return cfg.ConfigValue, nil
}

// Set upserts a config key
func (r *configRepository) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"config_value"}),
	}).Create(&models.ElectionConfig{ConfigKey: key, ConfigValue: value}).Error
}
