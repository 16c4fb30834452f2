package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/adapters/persistence/repositories"
	"election-checkin/internal/core/domain"

	"gorm.io/gorm"
)

// fakeVoterRepo is an in-memory VoterRepository for service tests
type fakeVoterRepo struct {
	mu     sync.Mutex
	voters map[string]*models.Voter
}

func newFakeVoterRepo() *fakeVoterRepo {
	return &fakeVoterRepo{voters: make(map[string]*models.Voter)}
}

func (f *fakeVoterRepo) add(v *models.Voter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *v
	f.voters[v.ID] = &cp
}

func (f *fakeVoterRepo) Create(ctx context.Context, voter *models.Voter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.voters {
		if v.IDCard == voter.IDCard {
			return domain.ErrDuplicateIdentity
		}
	}
	cp := *voter
	f.voters[voter.ID] = &cp
	return nil
}

func (f *fakeVoterRepo) GetByID(ctx context.Context, id string) (*models.Voter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.voters[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVoterRepo) GetByIDCard(ctx context.Context, idCard string) (*models.Voter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.voters {
		if v.IDCard == idCard {
			cp := *v
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVoterRepo) ExistsByIDCard(ctx context.Context, idCard string) (bool, error) {
	_, err := f.GetByIDCard(ctx, idCard)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

func matches(v *models.Voter, q repositories.VoterQuery) bool {
	if !q.Scope.Unrestricted() {
		if q.Scope.Empty() || v.VotingArea != q.Scope.AssignedArea {
			return false
		}
	}
	if q.Area != "" && v.VotingArea != q.Area {
		return false
	}
	if q.Group != "" && v.VotingGroup != q.Group {
		return false
	}
	if q.Status == "voted" && !v.HasVoted {
		return false
	}
	if q.Status == "not_voted" && v.HasVoted {
		return false
	}
	if q.Term != "" {
		term := strings.ToLower(q.Term)
		hit := false
		for _, field := range []string{v.FullName, v.IDCard, v.Address, v.Neighborhood, v.VotingArea, v.VotingGroup} {
			if strings.Contains(strings.ToLower(field), term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func (f *fakeVoterRepo) List(ctx context.Context, q repositories.VoterQuery) ([]*models.Voter, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.Voter
	for _, v := range f.voters {
		if matches(v, q) {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })

	total := int64(len(out))
	if q.Limit > 0 {
		if q.Offset >= len(out) {
			out = nil
		} else {
			end := q.Offset + q.Limit
			if end > len(out) {
				end = len(out)
			}
			out = out[q.Offset:end]
		}
	}
	return out, total, nil
}

func (f *fakeVoterRepo) UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.voters[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, val := range updates {
		s, _ := val.(string)
		switch key {
		case "full_name":
			v.FullName = s
		case "id_card":
			for _, other := range f.voters {
				if other.ID != id && other.IDCard == s {
					return domain.ErrDuplicateIdentity
				}
			}
			v.IDCard = s
		case "address":
			v.Address = s
		case "neighborhood":
			v.Neighborhood = s
		case "constituency":
			v.Constituency = s
		case "voting_group":
			v.VotingGroup = s
		case "voting_area":
			v.VotingArea = s
		}
	}
	return nil
}

func (f *fakeVoterRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.voters, id)
	return nil
}

func (f *fakeVoterRepo) DeleteAll(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voters = make(map[string]*models.Voter)
	return nil
}

func (f *fakeVoterRepo) MarkVoted(ctx context.Context, id string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.voters[id]
	if !ok || v.HasVoted {
		return false, nil
	}
	v.HasVoted = true
	t := at
	v.VotedAt = &t
	return true, nil
}

func (f *fakeVoterRepo) CountByStatus(ctx context.Context, scope domain.Scope) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total, voted int64
	for _, v := range f.voters {
		if !matches(v, repositories.VoterQuery{Scope: scope}) {
			continue
		}
		total++
		if v.HasVoted {
			voted++
		}
	}
	return total, voted, nil
}

func (f *fakeVoterRepo) AggregateTurnout(ctx context.Context, scope domain.Scope, groupColumn string) ([]domain.TurnoutBucket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	totals := map[string]*domain.TurnoutBucket{}
	for _, v := range f.voters {
		if !matches(v, repositories.VoterQuery{Scope: scope}) {
			continue
		}
		var key string
		switch groupColumn {
		case "neighborhood":
			key = v.Neighborhood
		case "voting_group":
			key = v.VotingGroup
		case "voting_area":
			key = v.VotingArea
		default:
			return nil, domain.ErrInvalidInput
		}
		b, ok := totals[key]
		if !ok {
			b = &domain.TurnoutBucket{Key: key}
			totals[key] = b
		}
		b.Total++
		if v.HasVoted {
			b.Voted++
		}
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make([]domain.TurnoutBucket, 0, len(keys))
	for _, k := range keys {
		b := totals[k]
		b.NotVoted = b.Total - b.Voted
		b.Percentage = domain.TurnoutPercentage(b.Voted, b.Total)
		buckets = append(buckets, *b)
	}
	return buckets, nil
}

// fakeUserRepo is an in-memory UserRepository for service tests
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, term string, offset, limit int) ([]*models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.User
	for _, u := range f.users {
		if term != "" {
			t := strings.ToLower(term)
			if !strings.Contains(strings.ToLower(u.FullName), t) &&
				!strings.Contains(strings.ToLower(u.Username), t) &&
				!strings.Contains(strings.ToLower(u.Position), t) {
				continue
			}
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

// fakeRefreshTokenRepo records revocations for session tests
type fakeRefreshTokenRepo struct {
	mu         sync.Mutex
	revokedAll map[uint]int
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{revokedAll: make(map[uint]int)}
}

func (f *fakeRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	return nil
}

func (f *fakeRefreshTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRefreshTokenRepo) Revoke(ctx context.Context, id uint) error { return nil }

func (f *fakeRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllByUserID(ctx context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revokedAll[userID]++
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpired(ctx context.Context) error { return nil }

// fakeAreaRepo is an in-memory AreaRepository for service tests
type fakeAreaRepo struct {
	mu     sync.Mutex
	areas  map[uint]*models.VotingArea
	nextID uint
}

func newFakeAreaRepo(names ...string) *fakeAreaRepo {
	f := &fakeAreaRepo{areas: make(map[uint]*models.VotingArea)}
	for _, name := range names {
		f.Create(context.Background(), &models.VotingArea{Name: name})
	}
	return f
}

func (f *fakeAreaRepo) Create(ctx context.Context, area *models.VotingArea) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.areas {
		if a.Name == area.Name {
			return domain.ErrAreaAlreadyExists
		}
	}
	f.nextID++
	area.ID = f.nextID
	cp := *area
	f.areas[area.ID] = &cp
	return nil
}

func (f *fakeAreaRepo) GetByID(ctx context.Context, id uint) (*models.VotingArea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.areas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAreaRepo) GetByName(ctx context.Context, name string) (*models.VotingArea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.areas {
		if a.Name == name {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAreaRepo) List(ctx context.Context) ([]*models.VotingArea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.VotingArea
	for _, a := range f.areas {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAreaRepo) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.areas, id)
	return nil
}

func (f *fakeAreaRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.areas)), nil
}

// fakeConfigRepo is an in-memory ConfigRepository for service tests
type fakeConfigRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{values: make(map[string]string)}
}

func (f *fakeConfigRepo) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

func (f *fakeConfigRepo) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}
