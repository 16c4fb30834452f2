package repositories

import (
	"context"
	"errors"
	"time"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/core/domain"

	"gorm.io/gorm"
)

// voterRepository implements VoterRepository interface
type voterRepository struct {
	db *gorm.DB
}

// NewVoterRepository creates a new voter repository
func NewVoterRepository(db *gorm.DB) VoterRepository {
	return &voterRepository{db: db}
}

// scoped applies the caller's access scope to a roster query. Admins see the
// whole roster, staff see only their assigned area, staff without an
// assignment see nothing.
func scoped(tx *gorm.DB, scope domain.Scope) *gorm.DB {
	if scope.Unrestricted() {
		return tx
	}
	if scope.Empty() {
		return tx.Where("1 = 0")
	}
	return tx.Where("voting_area = ?", scope.AssignedArea)
}

// Create creates a new voter
func (r *voterRepository) Create(ctx context.Context, voter *models.Voter) error {
	err := r.db.WithContext(ctx).Create(voter).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateIdentity
	}
	return err
}

// GetByID gets a voter by ID
func (r *voterRepository) GetByID(ctx context.Context, id string) (*models.Voter, error) {
	var voter models.Voter
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&voter).Error
	if err != nil {
		return nil, err
	}
	return &voter, nil
}

// GetByIDCard gets a voter by ID card number
func (r *voterRepository) GetByIDCard(ctx context.Context, idCard string) (*models.Voter, error) {
	var voter models.Voter
	err := r.db.WithContext(ctx).Where("id_card = ?", idCard).First(&voter).Error
	if err != nil {
		return nil, err
	}
	return &voter, nil
}

// ExistsByIDCard checks if an ID card number is already on the roster
func (r *voterRepository) ExistsByIDCard(ctx context.Context, idCard string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Voter{}).Where("id_card = ?", idCard).Count(&count).Error
	return count > 0, err
}

// List lists voters matching the query with pagination
func (r *voterRepository) List(ctx context.Context, q VoterQuery) ([]*models.Voter, int64, error) {
	var voters []*models.Voter
	var total int64

	tx := scoped(r.db.WithContext(ctx).Model(&models.Voter{}), q.Scope)
	if q.Area != "" {
		tx = tx.Where("voting_area = ?", q.Area)
	}
	if q.Group != "" {
		tx = tx.Where("voting_group = ?", q.Group)
	}
	switch q.Status {
	case "voted":
		tx = tx.Where("has_voted = ?", true)
	case "not_voted":
		tx = tx.Where("has_voted = ?", false)
	}
	if q.Term != "" {
		like := "%" + q.Term + "%"
		tx = tx.Where(
			"full_name LIKE ? OR id_card LIKE ? OR address LIKE ? OR neighborhood LIKE ? OR voting_area LIKE ? OR voting_group LIKE ?",
			like, like, like, like, like, like,
		)
	}

	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx = tx.Order("full_name ASC")
	if q.Limit > 0 {
		tx = tx.Offset(q.Offset).Limit(q.Limit)
	}
	if err := tx.Find(&voters).Error; err != nil {
		return nil, 0, err
	}

	return voters, total, nil
}

// UpdateFields updates selected voter fields
func (r *voterRepository) UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error {
	err := r.db.WithContext(ctx).Model(&models.Voter{}).Where("id = ?", id).Updates(updates).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateIdentity
	}
	return err
}

// Delete removes a voter from the roster
func (r *voterRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Voter{}).Error
}

// DeleteAll clears the whole roster
func (r *voterRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Voter{}).Error
}

// MarkVoted performs the check-in transition as a single guarded UPDATE.
// The has_voted = false guard makes concurrent check-ins race on the row
// lock: exactly one call matches the row and wins, every other call sees
// zero affected rows.
func (r *voterRepository) MarkVoted(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Voter{}).
		Where("id = ? AND has_voted = ?", id, false).
		Updates(map[string]interface{}{"has_voted": true, "voted_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountByStatus counts total and voted voters within scope
func (r *voterRepository) CountByStatus(ctx context.Context, scope domain.Scope) (int64, int64, error) {
	var total, voted int64

	if err := scoped(r.db.WithContext(ctx).Model(&models.Voter{}), scope).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := scoped(r.db.WithContext(ctx).Model(&models.Voter{}), scope).
		Where("has_voted = ?", true).Count(&voted).Error; err != nil {
		return 0, 0, err
	}

	return total, voted, nil
}

// turnout group columns allowed in AggregateTurnout. The column name ends up
// in the SQL text, so it must come from this fixed set.
var turnoutColumns = map[string]bool{
	"neighborhood": true,
	"voting_group": true,
	"voting_area":  true,
}

// AggregateTurnout counts total and voted voters per value of groupColumn
func (r *voterRepository) AggregateTurnout(ctx context.Context, scope domain.Scope, groupColumn string) ([]domain.TurnoutBucket, error) {
	if !turnoutColumns[groupColumn] {
		return nil, domain.ErrInvalidInput
	}

	type row struct {
		BucketKey string
		Total     int64
		Voted     int64
	}
	var rows []row

	err := scoped(r.db.WithContext(ctx).Model(&models.Voter{}), scope).
		Select(groupColumn + " AS bucket_key, COUNT(*) AS total, SUM(CASE WHEN has_voted THEN 1 ELSE 0 END) AS voted").
		Group(groupColumn).
		Order("bucket_key ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	buckets := make([]domain.TurnoutBucket, 0, len(rows))
	for _, row := range rows {
		buckets = append(buckets, domain.TurnoutBucket{
			Key:        row.BucketKey,
			Total:      row.Total,
			Voted:      row.Voted,
			NotVoted:   row.Total - row.Voted,
			Percentage: domain.TurnoutPercentage(row.Voted, row.Total),
		})
	}
	return buckets, nil
}
