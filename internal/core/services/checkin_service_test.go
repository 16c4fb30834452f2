package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedVoter(repo *fakeVoterRepo, id, idCard, area string) *models.Voter {
	v := &models.Voter{
		ID:         id,
		FullName:   "Nguyễn Văn A",
		IDCard:     idCard,
		VotingArea: area,
	}
	repo.add(v)
	return v
}

func TestCheckinLookup(t *testing.T) {
	repo := newFakeVoterRepo()
	seedVoter(repo, "v1", "012345678901", "Khu vực 1")
	svc := NewCheckinService(repo)
	ctx := context.Background()

	t.Run("found within scope", func(t *testing.T) {
		voter, err := svc.Lookup(ctx, domain.StaffScope("Khu vực 1"), "012345678901")
		require.NoError(t, err)
		assert.Equal(t, "v1", voter.ID)
	})

	t.Run("unknown id card", func(t *testing.T) {
		_, err := svc.Lookup(ctx, domain.AdminScope(), "999999999999")
		assert.ErrorIs(t, err, domain.ErrVoterNotFound)
	})

	t.Run("outside scope is a distinct error", func(t *testing.T) {
		_, err := svc.Lookup(ctx, domain.StaffScope("Khu vực 2"), "012345678901")
		assert.ErrorIs(t, err, domain.ErrOutOfScope)
	})

	t.Run("staff without assignment sees nothing", func(t *testing.T) {
		_, err := svc.Lookup(ctx, domain.StaffScope(""), "012345678901")
		assert.ErrorIs(t, err, domain.ErrOutOfScope)
	})
}

func TestCheckinTransition(t *testing.T) {
	repo := newFakeVoterRepo()
	seedVoter(repo, "v1", "012345678901", "Khu vực 1")
	svc := NewCheckinService(repo)
	ctx := context.Background()

	result, err := svc.CheckIn(ctx, domain.AdminScope(), "012345678901")
	require.NoError(t, err)
	assert.False(t, result.AlreadyVoted)
	assert.True(t, result.Voter.HasVoted)
	require.NotNil(t, result.Voter.VotedAt)

	firstVotedAt := *result.Voter.VotedAt

	// Repeating the call is an idempotent success with the original timestamp
	repeat, err := svc.CheckIn(ctx, domain.AdminScope(), "012345678901")
	require.NoError(t, err)
	assert.True(t, repeat.AlreadyVoted)
	require.NotNil(t, repeat.Voter.VotedAt)
	assert.Equal(t, firstVotedAt, *repeat.Voter.VotedAt)
}

func TestCheckinScopeEnforced(t *testing.T) {
	repo := newFakeVoterRepo()
	seedVoter(repo, "v1", "012345678901", "Khu vực 1")
	svc := NewCheckinService(repo)

	_, err := svc.CheckIn(context.Background(), domain.StaffScope("Khu vực 2"), "012345678901")
	assert.ErrorIs(t, err, domain.ErrOutOfScope)

	voter, _ := repo.GetByID(context.Background(), "v1")
	assert.False(t, voter.HasVoted, "rejected check-in must not mutate the voter")
}

func TestCheckinConcurrent(t *testing.T) {
	repo := newFakeVoterRepo()
	seedVoter(repo, "v1", "012345678901", "Khu vực 1")
	svc := NewCheckinService(repo)
	ctx := context.Background()

	const callers = 16
	results := make([]*CheckinResult, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.CheckIn(ctx, domain.AdminScope(), "012345678901")
		}(i)
	}
	wg.Wait()

	// Exactly one caller performed the transition
	winners := 0
	var timestamps []time.Time
	for i, r := range results {
		require.NoError(t, errs[i])
		if !r.AlreadyVoted {
			winners++
		}
		require.NotNil(t, r.Voter.VotedAt)
		timestamps = append(timestamps, *r.Voter.VotedAt)
	}
	assert.Equal(t, 1, winners)

	// Every caller observed the same recorded timestamp
	for _, ts := range timestamps {
		assert.Equal(t, timestamps[0], ts)
	}
}
