package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/adapters/persistence/repositories"
	"election-checkin/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// autoResolveMinTermLen is the shortest search term, counted in runes, that
// may auto-resolve a single hit. Shorter terms only auto-resolve on an exact
// ID card match, so a staffer typing the first digits of a number never locks
// onto a stranger.
const autoResolveMinTermLen = 6

// VoterService handles roster management and search
type VoterService struct {
	voterRepo repositories.VoterRepository
}

// NewVoterService creates a new voter service
func NewVoterService(voterRepo repositories.VoterRepository) *VoterService {
	return &VoterService{voterRepo: voterRepo}
}

// CreateVoterInput for registering a voter
type CreateVoterInput struct {
	FullName     string `json:"full_name" validate:"required"`
	IDCard       string `json:"id_card" validate:"required"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	Constituency string `json:"constituency"`
	VotingGroup  string `json:"voting_group"`
	VotingArea   string `json:"voting_area"`
}

// UpdateVoterInput for editing a voter. Nil fields are left unchanged.
type UpdateVoterInput struct {
	FullName     *string `json:"full_name"`
	IDCard       *string `json:"id_card"`
	Address      *string `json:"address"`
	Neighborhood *string `json:"neighborhood"`
	Constituency *string `json:"constituency"`
	VotingGroup  *string `json:"voting_group"`
	VotingArea   *string `json:"voting_area"`
}

// ListVotersInput carries roster listing filters
type ListVotersInput struct {
	Scope  domain.Scope
	Area   string
	Group  string
	Status string
	Term   string
	Offset int
	Limit  int
}

// SearchResult is the outcome of a roster search. Resolved is non-nil when
// the term identified exactly one voter unambiguously.
type SearchResult struct {
	Voters   []*models.Voter `json:"voters"`
	Resolved *models.Voter   `json:"resolved,omitempty"`
}

// List lists voters within the caller's scope
func (s *VoterService) List(ctx context.Context, input ListVotersInput) ([]*models.Voter, int64, error) {
	return s.voterRepo.List(ctx, repositories.VoterQuery{
		Scope:  input.Scope,
		Area:   input.Area,
		Group:  input.Group,
		Status: input.Status,
		Term:   strings.TrimSpace(input.Term),
		Offset: input.Offset,
		Limit:  input.Limit,
	})
}

// GetByID gets a voter visible within the caller's scope
func (s *VoterService) GetByID(ctx context.Context, scope domain.Scope, id string) (*models.Voter, error) {
	voter, err := s.voterRepo.GetByID(ctx, id)
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

// Create registers a single voter
func (s *VoterService) Create(ctx context.Context, input *CreateVoterInput) (*models.Voter, error) {
	idCard := strings.TrimSpace(input.IDCard)
	if idCard == "" {
		return nil, domain.ErrMissingIdentity
	}

	voter := &models.Voter{
		ID:           uuid.New().String(),
		FullName:     strings.TrimSpace(input.FullName),
		IDCard:       idCard,
		Address:      input.Address,
		Neighborhood: input.Neighborhood,
		Constituency: input.Constituency,
		VotingGroup:  input.VotingGroup,
		VotingArea:   input.VotingArea,
	}
	if voter.FullName == "" {
		return nil, domain.ErrInvalidInput
	}

	if err := s.voterRepo.Create(ctx, voter); err != nil {
		return nil, err
	}

	log.Printf("✅ Voter registered: %s", voter.IDCard)
	return voter, nil
}

// Update edits a voter's roster fields. Check-in state is not editable
// here; it only moves through the check-in flow.
func (s *VoterService) Update(ctx context.Context, id string, input *UpdateVoterInput) (*models.Voter, error) {
	if _, err := s.voterRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVoterNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*input.FullName)
	}
	if input.IDCard != nil {
		idCard := strings.TrimSpace(*input.IDCard)
		if idCard == "" {
			return nil, domain.ErrMissingIdentity
		}
		updates["id_card"] = idCard
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Neighborhood != nil {
		updates["neighborhood"] = *input.Neighborhood
	}
	if input.Constituency != nil {
		updates["constituency"] = *input.Constituency
	}
	if input.VotingGroup != nil {
		updates["voting_group"] = *input.VotingGroup
	}
	if input.VotingArea != nil {
		updates["voting_area"] = *input.VotingArea
	}

	if len(updates) > 0 {
		if err := s.voterRepo.UpdateFields(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.voterRepo.GetByID(ctx, id)
}

// Delete removes a voter from the roster
func (s *VoterService) Delete(ctx context.Context, id string) error {
	if _, err := s.voterRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrVoterNotFound
		}
		return err
	}
	if err := s.voterRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Voter deleted: %s", id)
	return nil
}

// DeleteAll clears the whole roster
func (s *VoterService) DeleteAll(ctx context.Context) error {
	if err := s.voterRepo.DeleteAll(ctx); err != nil {
		return err
	}

	log.Println("✅ Roster cleared")
	return nil
}

// Search finds voters matching a term within the caller's scope and
// auto-resolves when the match is unambiguous: exactly one hit, and the
// term is either specific enough or the hit's exact ID card number.
func (s *VoterService) Search(ctx context.Context, scope domain.Scope, term string) (*SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return &SearchResult{Voters: []*models.Voter{}}, nil
	}

	voters, _, err := s.voterRepo.List(ctx, repositories.VoterQuery{
		Scope: scope,
		Term:  term,
	})
	if err != nil {
		return nil, err
	}

	result := &SearchResult{Voters: voters}
	if len(voters) == 1 && (utf8.RuneCountInString(term) >= autoResolveMinTermLen || term == voters[0].IDCard) {
		result.Resolved = voters[0]
	}
	return result, nil
}

// voterToDomain maps a persistence voter onto the domain type used by
// scope checks.
func voterToDomain(v *models.Voter) *domain.Voter {
	return &domain.Voter{
		ID:           v.ID,
		FullName:     v.FullName,
		IDCard:       v.IDCard,
		Address:      v.Address,
		Neighborhood: v.Neighborhood,
		Constituency: v.Constituency,
		VotingGroup:  v.VotingGroup,
		VotingArea:   v.VotingArea,
		HasVoted:     v.HasVoted,
		VotedAt:      v.VotedAt,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
