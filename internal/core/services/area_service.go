package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/adapters/persistence/repositories"
	"election-checkin/internal/core/domain"

	"gorm.io/gorm"
)

// AreaService manages the voting area catalog. Voters and users reference
// areas by name; removing an area never cascades into the roster.
type AreaService struct {
	areaRepo repositories.AreaRepository
}

// NewAreaService creates a new area service
func NewAreaService(areaRepo repositories.AreaRepository) *AreaService {
	return &AreaService{areaRepo: areaRepo}
}

// List lists all voting areas
func (s *AreaService) List(ctx context.Context) ([]*models.VotingArea, error) {
	return s.areaRepo.List(ctx)
}

// Create adds a voting area to the catalog
func (s *AreaService) Create(ctx context.Context, name string) (*models.VotingArea, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	area := &models.VotingArea{Name: name}
	if err := s.areaRepo.Create(ctx, area); err != nil {
		return nil, err
	}

	log.Printf("✅ Voting area created: %s", area.Name)
	return area, nil
}

// Delete removes a voting area from the catalog
func (s *AreaService) Delete(ctx context.Context, id uint) error {
	area, err := s.areaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAreaNotFound
		}
		return err
	}

	if err := s.areaRepo.Delete(ctx, area.ID); err != nil {
		return err
	}

	log.Printf("✅ Voting area deleted: %s", area.Name)
	return nil
}
