package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeAllows(t *testing.T) {
	voter := &Voter{ID: "v1", VotingArea: "Khu vực 1"}

	t.Run("admin sees everything", func(t *testing.T) {
		assert.True(t, AdminScope().Allows(voter))
	})

	t.Run("staff sees own area", func(t *testing.T) {
		assert.True(t, StaffScope("Khu vực 1").Allows(voter))
		assert.False(t, StaffScope("Khu vực 2").Allows(voter))
	})

	t.Run("area match is case sensitive", func(t *testing.T) {
		assert.False(t, StaffScope("khu vực 1").Allows(voter))
	})

	t.Run("unassigned staff sees nothing", func(t *testing.T) {
		scope := StaffScope("")
		assert.True(t, scope.Empty())
		assert.False(t, scope.Allows(voter))
		assert.False(t, scope.Allows(&Voter{VotingArea: ""}), "even a blank-area voter stays hidden")
	})
}

func TestScopeFilter(t *testing.T) {
	voters := []*Voter{
		{ID: "v1", VotingArea: "Khu vực 1"},
		{ID: "v2", VotingArea: "Khu vực 2"},
		{ID: "v3", VotingArea: "Khu vực 1"},
	}

	t.Run("admin keeps all", func(t *testing.T) {
		assert.Len(t, AdminScope().Filter(voters), 3)
	})

	t.Run("staff keeps own area in order", func(t *testing.T) {
		visible := StaffScope("Khu vực 1").Filter(voters)
		assert.Len(t, visible, 2)
		assert.Equal(t, "v1", visible[0].ID)
		assert.Equal(t, "v3", visible[1].ID)
	})

	t.Run("unassigned staff keeps none", func(t *testing.T) {
		assert.Empty(t, StaffScope("").Filter(voters))
	})
}

func TestTurnoutPercentage(t *testing.T) {
	assert.Equal(t, 0, TurnoutPercentage(0, 0), "empty bucket is 0, not a division error")
	assert.Equal(t, 0, TurnoutPercentage(0, 10))
	assert.Equal(t, 75, TurnoutPercentage(3, 4))
	assert.Equal(t, 100, TurnoutPercentage(10, 10))
	assert.Equal(t, 33, TurnoutPercentage(1, 3))
	assert.Equal(t, 67, TurnoutPercentage(2, 3), "rounds to nearest, not truncates")
	assert.Equal(t, 50, TurnoutPercentage(1, 2))
}
