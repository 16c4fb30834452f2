package services

import (
	"context"
	"testing"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoterCreateValidation(t *testing.T) {
	repo := newFakeVoterRepo()
	svc := NewVoterService(repo)
	ctx := context.Background()

	t.Run("missing id card", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateVoterInput{FullName: "Nguyễn Văn A", IDCard: "  "})
		assert.ErrorIs(t, err, domain.ErrMissingIdentity)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateVoterInput{FullName: " ", IDCard: "079000000001"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("duplicate id card", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateVoterInput{FullName: "Nguyễn Văn A", IDCard: "079000000001"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, &CreateVoterInput{FullName: "Nguyễn Văn B", IDCard: "079000000001"})
		assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)
	})

	t.Run("assigns uuid", func(t *testing.T) {
		voter, err := svc.Create(ctx, &CreateVoterInput{FullName: "Nguyễn Văn C", IDCard: "079000000002"})
		require.NoError(t, err)
		assert.Len(t, voter.ID, 36)
	})
}

func TestVoterListScope(t *testing.T) {
	repo := newFakeVoterRepo()
	repo.add(&models.Voter{ID: "v1", FullName: "An", IDCard: "1", VotingArea: "Khu vực 1"})
	repo.add(&models.Voter{ID: "v2", FullName: "Bình", IDCard: "2", VotingArea: "Khu vực 2"})
	svc := NewVoterService(repo)
	ctx := context.Background()

	t.Run("admin sees all", func(t *testing.T) {
		_, total, err := svc.List(ctx, ListVotersInput{Scope: domain.AdminScope()})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("staff sees own area only", func(t *testing.T) {
		voters, total, err := svc.List(ctx, ListVotersInput{Scope: domain.StaffScope("Khu vực 1")})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, voters, 1)
		assert.Equal(t, "v1", voters[0].ID)
	})

	t.Run("unassigned staff sees nothing", func(t *testing.T) {
		voters, total, err := svc.List(ctx, ListVotersInput{Scope: domain.StaffScope("")})
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
		assert.Empty(t, voters)
	})
}

func TestVoterSearchAutoResolve(t *testing.T) {
	repo := newFakeVoterRepo()
	repo.add(&models.Voter{ID: "v1", FullName: "Nguyễn Văn An", IDCard: "079123456789", VotingArea: "Khu vực 1"})
	repo.add(&models.Voter{ID: "v2", FullName: "Nguyễn Văn Bình", IDCard: "079987654321", VotingArea: "Khu vực 1"})
	svc := NewVoterService(repo)
	ctx := context.Background()
	scope := domain.AdminScope()

	t.Run("blank term returns nothing", func(t *testing.T) {
		result, err := svc.Search(ctx, scope, "   ")
		require.NoError(t, err)
		assert.Empty(t, result.Voters)
		assert.Nil(t, result.Resolved)
	})

	t.Run("single long-term hit auto-resolves", func(t *testing.T) {
		result, err := svc.Search(ctx, scope, "123456")
		require.NoError(t, err)
		require.Len(t, result.Voters, 1)
		require.NotNil(t, result.Resolved)
		assert.Equal(t, "v1", result.Resolved.ID)
	})

	t.Run("short term does not auto-resolve", func(t *testing.T) {
		result, err := svc.Search(ctx, scope, "An")
		require.NoError(t, err)
		require.NotEmpty(t, result.Voters)
		assert.Nil(t, result.Resolved)
	})

	t.Run("exact id card auto-resolves regardless of length", func(t *testing.T) {
		// legacy card short enough to miss the length threshold, and not a
		// substring of any other seeded field
		repo.add(&models.Voter{ID: "v3", FullName: "Cụ Tư", IDCard: "40", VotingArea: "Khu vực 1"})
		result, err := svc.Search(ctx, scope, "40")
		require.NoError(t, err)
		require.Len(t, result.Voters, 1)
		require.NotNil(t, result.Resolved)
		assert.Equal(t, "v3", result.Resolved.ID)
	})

	t.Run("term length is counted in runes", func(t *testing.T) {
		// "Cụ Tư" is 8 bytes but only 5 visible characters, so a single hit
		// must still not auto-resolve
		result, err := svc.Search(ctx, scope, "Cụ Tư")
		require.NoError(t, err)
		require.Len(t, result.Voters, 1)
		assert.Nil(t, result.Resolved)

		result, err = svc.Search(ctx, scope, "Văn Bình")
		require.NoError(t, err)
		require.Len(t, result.Voters, 1)
		require.NotNil(t, result.Resolved)
		assert.Equal(t, "v2", result.Resolved.ID)
	})

	t.Run("ties never auto-resolve", func(t *testing.T) {
		result, err := svc.Search(ctx, scope, "Nguyễn Văn")
		require.NoError(t, err)
		assert.Len(t, result.Voters, 2)
		assert.Nil(t, result.Resolved)
	})

	t.Run("staff search never leaks other areas", func(t *testing.T) {
		repo.add(&models.Voter{ID: "v4", FullName: "Người Khu 2", IDCard: "079555555555", VotingArea: "Khu vực 2"})
		result, err := svc.Search(ctx, domain.StaffScope("Khu vực 1"), "079555555555")
		require.NoError(t, err)
		assert.Empty(t, result.Voters, "out-of-area voters must be absent, not flagged")
		assert.Nil(t, result.Resolved)
	})
}

func TestVoterUpdateAndDelete(t *testing.T) {
	repo := newFakeVoterRepo()
	repo.add(&models.Voter{ID: "v1", FullName: "An", IDCard: "1", VotingArea: "Khu vực 1"})
	svc := NewVoterService(repo)
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		name := "An Mới"
		voter, err := svc.Update(ctx, "v1", &UpdateVoterInput{FullName: &name})
		require.NoError(t, err)
		assert.Equal(t, "An Mới", voter.FullName)
		assert.Equal(t, "1", voter.IDCard, "untouched fields keep their values")
	})

	t.Run("blank id card rejected", func(t *testing.T) {
		blank := "  "
		_, err := svc.Update(ctx, "v1", &UpdateVoterInput{IDCard: &blank})
		assert.ErrorIs(t, err, domain.ErrMissingIdentity)
	})

	t.Run("unknown voter", func(t *testing.T) {
		_, err := svc.Update(ctx, "missing", &UpdateVoterInput{})
		assert.ErrorIs(t, err, domain.ErrVoterNotFound)

		err = svc.Delete(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrVoterNotFound)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "v1"))
		_, _, err := svc.List(ctx, ListVotersInput{Scope: domain.AdminScope()})
		require.NoError(t, err)
		_, err = svc.GetByID(ctx, domain.AdminScope(), "v1")
		assert.ErrorIs(t, err, domain.ErrVoterNotFound)
	})
}
