package repositories

import (
	"context"
	"time"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/core/domain"
)

// VoterQuery carries listing filters. Scope is mandatory: every read of the
// roster goes through the caller's scope, resolved per request.
type VoterQuery struct {
	Scope  domain.Scope
	Area   string // extra filter on top of scope (admin reports)
	Group  string
	Status string // "voted", "not_voted" or empty for all
	Term   string // substring search across identity fields
	Offset int
	Limit  int // 0 means no limit
}

// VoterRepository defines roster store interface
type VoterRepository interface {
	Create(ctx context.Context, voter *models.Voter) error
	GetByID(ctx context.Context, id string) (*models.Voter, error)
	GetByIDCard(ctx context.Context, idCard string) (*models.Voter, error)
	ExistsByIDCard(ctx context.Context, idCard string) (bool, error)
	List(ctx context.Context, q VoterQuery) ([]*models.Voter, int64, error)
	UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error

	// MarkVoted is the check-in compare-and-set: it transitions the voter to
	// voted only if it has not voted yet, and reports whether this call won
	// the transition. Losers must re-read to observe the winner's timestamp.
	MarkVoted(ctx context.Context, id string, at time.Time) (bool, error)

	CountByStatus(ctx context.Context, scope domain.Scope) (total int64, voted int64, err error)
	AggregateTurnout(ctx context.Context, scope domain.Scope, groupColumn string) ([]domain.TurnoutBucket, error)
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, term string, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// AreaRepository defines voting area catalog interface
type AreaRepository interface {
	Create(ctx context.Context, area *models.VotingArea) error
	GetByID(ctx context.Context, id uint) (*models.VotingArea, error)
	GetByName(ctx context.Context, name string) (*models.VotingArea, error)
	List(ctx context.Context) ([]*models.VotingArea, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// ConfigRepository defines election settings interface
type ConfigRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
