package repositories

import (
	"context"
	"errors"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/core/domain"

	"gorm.io/gorm"
)

// areaRepository implements AreaRepository interface
type areaRepository struct {
	db *gorm.DB
}

// NewAreaRepository creates a new voting area repository
func NewAreaRepository(db *gorm.DB) AreaRepository {
	return &areaRepository{db: db}
}

// Create creates a new voting area
func (r *areaRepository) Create(ctx context.Context, area *models.VotingArea) error {
	err := r.db.WithContext(ctx).Create(area).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAreaAlreadyExists
	}
	return err
}

// GetByID gets a voting area by ID
func (r *areaRepository) GetByID(ctx context.Context, id uint) (*models.VotingArea, error) {
	var area models.VotingArea
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

// GetByName gets a voting area by name
func (r *areaRepository) GetByName(ctx context.Context, name string) (*models.VotingArea, error) {
	var area models.VotingArea
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

// List lists all voting areas
func (r *areaRepository) List(ctx context.Context) ([]*models.VotingArea, error) {
	var areas []*models.VotingArea
	err := r.db.WithContext(ctx).Order("name ASC").Find(&areas).Error
	if err != nil {
		return nil, err
	}
	return areas, nil
}

// Delete removes a voting area from the catalog
func (r *areaRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.VotingArea{}, id).Error
}

// Count counts voting areas
func (r *areaRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.VotingArea{}).Count(&count).Error
	return count, err
}
