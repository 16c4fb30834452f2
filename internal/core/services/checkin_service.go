package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/adapters/persistence/repositories"
	"election-checkin/internal/core/domain"

	"gorm.io/gorm"
)

// CheckinService handles the voting check-in flow
type CheckinService struct {
	voterRepo repositories.VoterRepository
}

// NewCheckinService creates a new check-in service
func NewCheckinService(voterRepo repositories.VoterRepository) *CheckinService {
	return &CheckinService{voterRepo: voterRepo}
}

// CheckinResult is the outcome of a check-in. AlreadyVoted distinguishes a
// fresh transition from an idempotent repeat; both are successes.
type CheckinResult struct {
	Voter        *models.Voter `json:"voter"`
	AlreadyVoted bool          `json:"already_voted"`
}

// Lookup finds a voter by ID card number for the check-in screen. The two
// failure modes stay distinct: an unknown number is not the same as a voter
// who belongs to another area's station.
func (s *CheckinService) Lookup(ctx context.Context, scope domain.Scope, idCard string) (*models.Voter, error) {
	idCard = strings.TrimSpace(idCard)
	if idCard == "" {
		return nil, domain.ErrVoterNotFound
	}

	voter, err := s.voterRepo.GetByIDCard(ctx, idCard)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVoterNotFound
		}
		return nil, err
	}

	if !scope.Allows(voterToDomain(voter)) {
		return nil, domain.ErrOutOfScope
	}

	return voter, nil
}

// CheckIn marks a voter as having voted. The operation is idempotent:
// checking in an already-voted voter succeeds and reports the recorded
// timestamp. Under concurrent calls exactly one caller performs the
// transition; the rest observe the winner's result.
func (s *CheckinService) CheckIn(ctx context.Context, scope domain.Scope, idCard string) (*CheckinResult, error) {
	voter, err := s.Lookup(ctx, scope, idCard)
	if err != nil {
		return nil, err
	}

	if voter.HasVoted {
		return &CheckinResult{Voter: voter, AlreadyVoted: true}, nil
	}

	won, err := s.voterRepo.MarkVoted(ctx, voter.ID, time.Now())
	if err != nil {
		return nil, err
	}

	// Re-read either way: the winner picks up its own stored timestamp, a
	// loser picks up the concurrent winner's.
	voter, err = s.voterRepo.GetByID(ctx, voter.ID)
	if err != nil {
		return nil, err
	}

	if won {
		log.Printf("✅ Voter checked in: %s", voter.IDCard)
	}
	return &CheckinResult{Voter: voter, AlreadyVoted: !won}, nil
}
