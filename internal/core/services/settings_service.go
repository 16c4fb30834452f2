package services

import (
	"context"
	"log"
	"time"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/adapters/persistence/repositories"
	"election-checkin/internal/core/domain"
)

// SettingsService manages election-wide settings
type SettingsService struct {
	configRepo repositories.ConfigRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(configRepo repositories.ConfigRepository) *SettingsService {
	return &SettingsService{configRepo: configRepo}
}

// ElectionSettings is the admin-editable election configuration
type ElectionSettings struct {
	ProjectName string `json:"project_name"`
	EndTime     string `json:"end_time"` // RFC3339, empty when unset
}

// Get returns the current election settings
func (s *SettingsService) Get(ctx context.Context) (*ElectionSettings, error) {
	projectName, err := s.configRepo.Get(ctx, models.ConfigKeyProjectName)
	if err != nil {
		return nil, err
	}
	endTime, err := s.configRepo.Get(ctx, models.ConfigKeyEndTime)
	if err != nil {
		return nil, err
	}

	return &ElectionSettings{
		ProjectName: projectName,
		EndTime:     endTime,
	}, nil
}

// Update stores election settings. An empty end time clears the countdown;
// a non-empty one must be RFC3339.
func (s *SettingsService) Update(ctx context.Context, input *ElectionSettings) (*ElectionSettings, error) {
	if input.EndTime != "" {
		if _, err := time.Parse(time.RFC3339, input.EndTime); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	if err := s.configRepo.Set(ctx, models.ConfigKeyProjectName, input.ProjectName); err != nil {
		return nil, err
	}
	if err := s.configRepo.Set(ctx, models.ConfigKeyEndTime, input.EndTime); err != nil {
		return nil, err
	}

	log.Printf("✅ Election settings updated [end: %s]", input.EndTime)
	return s.Get(ctx)
}
