package services

import (
	"context"
	"testing"
	"time"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTurnout(repo *fakeVoterRepo) {
	now := time.Now()
	voters := []*models.Voter{
		{ID: "v1", FullName: "A", IDCard: "1", Neighborhood: "Khu phố 1", VotingArea: "Khu vực 1", HasVoted: true, VotedAt: &now},
		{ID: "v2", FullName: "B", IDCard: "2", Neighborhood: "Khu phố 1", VotingArea: "Khu vực 1", HasVoted: true, VotedAt: &now},
		{ID: "v3", FullName: "C", IDCard: "3", Neighborhood: "Khu phố 1", VotingArea: "Khu vực 1", HasVoted: true, VotedAt: &now},
		{ID: "v4", FullName: "D", IDCard: "4", Neighborhood: "Khu phố 1", VotingArea: "Khu vực 1"},
		{ID: "v5", FullName: "E", IDCard: "5", Neighborhood: "Khu phố 2", VotingArea: "Khu vực 2"},
	}
	for _, v := range voters {
		repo.add(v)
	}
}

func TestStatsOverview(t *testing.T) {
	repo := newFakeVoterRepo()
	seedTurnout(repo)
	svc := NewStatsService(repo, newFakeConfigRepo())
	ctx := context.Background()

	t.Run("admin overview", func(t *testing.T) {
		stats, err := svc.GetOverview(ctx, domain.AdminScope())
		require.NoError(t, err)
		assert.EqualValues(t, 5, stats.TotalVoters)
		assert.EqualValues(t, 3, stats.Voted)
		assert.EqualValues(t, 2, stats.NotVoted)
		assert.Equal(t, 60, stats.Percentage)
		assert.Equal(t, ElectionNotConfigured, stats.ElectionState)
	})

	t.Run("staff overview is scoped", func(t *testing.T) {
		stats, err := svc.GetOverview(ctx, domain.StaffScope("Khu vực 1"))
		require.NoError(t, err)
		assert.EqualValues(t, 4, stats.TotalVoters)
		assert.EqualValues(t, 3, stats.Voted)
		assert.Equal(t, 75, stats.Percentage)
	})

	t.Run("empty roster", func(t *testing.T) {
		stats, err := NewStatsService(newFakeVoterRepo(), newFakeConfigRepo()).GetOverview(ctx, domain.AdminScope())
		require.NoError(t, err)
		assert.EqualValues(t, 0, stats.TotalVoters)
		assert.Equal(t, 0, stats.Percentage)
	})
}

func TestStatsCountdown(t *testing.T) {
	repo := newFakeVoterRepo()
	configRepo := newFakeConfigRepo()
	svc := NewStatsService(repo, configRepo)
	ctx := context.Background()

	t.Run("running", func(t *testing.T) {
		end := time.Now().Add(2 * time.Hour).Format(time.RFC3339)
		require.NoError(t, configRepo.Set(ctx, models.ConfigKeyEndTime, end))

		stats, err := svc.GetOverview(ctx, domain.AdminScope())
		require.NoError(t, err)
		assert.Equal(t, ElectionRunning, stats.ElectionState)
		assert.Equal(t, end, stats.ElectionEndTime)
		assert.Greater(t, stats.RemainingSeconds, int64(0))
	})

	t.Run("finished", func(t *testing.T) {
		end := time.Now().Add(-time.Hour).Format(time.RFC3339)
		require.NoError(t, configRepo.Set(ctx, models.ConfigKeyEndTime, end))

		stats, err := svc.GetOverview(ctx, domain.AdminScope())
		require.NoError(t, err)
		assert.Equal(t, ElectionFinished, stats.ElectionState)
		assert.EqualValues(t, 0, stats.RemainingSeconds)
	})

	t.Run("garbage value counts as not configured", func(t *testing.T) {
		require.NoError(t, configRepo.Set(ctx, models.ConfigKeyEndTime, "tomorrow-ish"))

		stats, err := svc.GetOverview(ctx, domain.AdminScope())
		require.NoError(t, err)
		assert.Equal(t, ElectionNotConfigured, stats.ElectionState)
	})
}

func TestStatsAggregate(t *testing.T) {
	repo := newFakeVoterRepo()
	seedTurnout(repo)
	svc := NewStatsService(repo, newFakeConfigRepo())
	ctx := context.Background()

	t.Run("by neighborhood", func(t *testing.T) {
		buckets, err := svc.Aggregate(ctx, domain.AdminScope(), "neighborhood")
		require.NoError(t, err)
		require.Len(t, buckets, 2)

		assert.Equal(t, "Khu phố 1", buckets[0].Key)
		assert.EqualValues(t, 4, buckets[0].Total)
		assert.EqualValues(t, 3, buckets[0].Voted)
		assert.EqualValues(t, 1, buckets[0].NotVoted)
		assert.Equal(t, 75, buckets[0].Percentage)

		assert.Equal(t, "Khu phố 2", buckets[1].Key)
		assert.Equal(t, 0, buckets[1].Percentage)
	})

	t.Run("scoped aggregation", func(t *testing.T) {
		buckets, err := svc.Aggregate(ctx, domain.StaffScope("Khu vực 2"), "neighborhood")
		require.NoError(t, err)
		require.Len(t, buckets, 1)
		assert.Equal(t, "Khu phố 2", buckets[0].Key)
	})

	t.Run("unknown dimension", func(t *testing.T) {
		_, err := svc.Aggregate(ctx, domain.AdminScope(), "full_name")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
