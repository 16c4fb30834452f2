package services

import (
	"context"
	"time"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/adapters/persistence/repositories"
	"election-checkin/internal/core/domain"
)

// Election countdown states
const (
	ElectionNotConfigured = "not_configured"
	ElectionRunning       = "running"
	ElectionFinished      = "finished"
)

// StatsService handles turnout statistics
type StatsService struct {
	voterRepo  repositories.VoterRepository
	configRepo repositories.ConfigRepository
}

// NewStatsService creates a new stats service
func NewStatsService(voterRepo repositories.VoterRepository, configRepo repositories.ConfigRepository) *StatsService {
	return &StatsService{voterRepo: voterRepo, configRepo: configRepo}
}

// OverviewStats is the dashboard headline block
type OverviewStats struct {
	TotalVoters int64 `json:"total_voters"`
	Voted       int64 `json:"voted"`
	NotVoted    int64 `json:"not_voted"`
	Percentage  int   `json:"percentage"`

	ElectionState    string `json:"election_state"`
	ElectionEndTime  string `json:"election_end_time,omitempty"`
	RemainingSeconds int64  `json:"remaining_seconds,omitempty"`
}

// groupByColumns maps the public groupBy names onto roster columns
var groupByColumns = map[string]string{
	"neighborhood": "neighborhood",
	"voting_group": "voting_group",
	"voting_area":  "voting_area",
}

// GetOverview returns headline turnout numbers within the caller's scope
// plus the election countdown state.
func (s *StatsService) GetOverview(ctx context.Context, scope domain.Scope) (*OverviewStats, error) {
	total, voted, err := s.voterRepo.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}

	stats := &OverviewStats{
		TotalVoters: total,
		Voted:       voted,
		NotVoted:    total - voted,
		Percentage:  domain.TurnoutPercentage(voted, total),
	}

	endTimeRaw, err := s.configRepo.Get(ctx, models.ConfigKeyEndTime)
	if err != nil {
		return nil, err
	}
	stats.ElectionState, stats.ElectionEndTime, stats.RemainingSeconds = countdown(endTimeRaw, time.Now())

	return stats, nil
}

// Aggregate returns turnout buckets grouped by one roster dimension
func (s *StatsService) Aggregate(ctx context.Context, scope domain.Scope, groupBy string) ([]domain.TurnoutBucket, error) {
	column, ok := groupByColumns[groupBy]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	return s.voterRepo.AggregateTurnout(ctx, scope, column)
}

// countdown derives the election state from the stored end time. A value
// that does not parse counts as not configured.
func countdown(endTimeRaw string, now time.Time) (state, endTime string, remaining int64) {
	if endTimeRaw == "" {
		return ElectionNotConfigured, "", 0
	}

	end, err := time.Parse(time.RFC3339, endTimeRaw)
	if err != nil {
		return ElectionNotConfigured, "", 0
	}

	if !now.Before(end) {
		return ElectionFinished, endTimeRaw, 0
	}
	return ElectionRunning, endTimeRaw, int64(end.Sub(now).Seconds())
}
