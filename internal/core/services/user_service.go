package services

import (
	"context"
	"errors"
	"log"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/adapters/persistence/repositories"
	"election-checkin/internal/core/domain"
	"election-checkin/internal/pkg/password"

	"gorm.io/gorm"
)

// User errors
var (
	ErrWeakPassword = errors.New("password does not meet requirements")
	ErrInvalidRole  = errors.New("invalid role")
)

// UserService handles operator account management. All operations are
// admin-only; the handlers enforce that before calling in.
type UserService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	areaRepo         repositories.AreaRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	areaRepo repositories.AreaRepository,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		areaRepo:         areaRepo,
	}
}

// CreateUserInput for creating an operator account
type CreateUserInput struct {
	FullName     string `json:"full_name" validate:"required"`
	Position     string `json:"position"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role" validate:"required"`
	AssignedArea string `json:"assigned_area"`
}

// UpdateUserInput for updating an operator account. Nil fields are left
// unchanged.
type UpdateUserInput struct {
	FullName     *string `json:"full_name"`
	Position     *string `json:"position"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Password     *string `json:"password"`
	Role         *string `json:"role"`
	AssignedArea *string `json:"assigned_area"`
}

// List lists users with pagination
func (s *UserService) List(ctx context.Context, term string, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, term, offset, limit)
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create creates a new operator account
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	// 1. Validate role
	role := domain.Role(input.Role)
	if role != domain.RoleAdmin && role != domain.RoleStaff {
		return nil, ErrInvalidRole
	}

	// 2. Validate password
	if !password.Validate(input.Password) {
		return nil, ErrWeakPassword
	}

	// 3. Check if username already exists
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	// 4. Flag assignments outside the catalog
	if input.AssignedArea != "" {
		s.warnUnknownArea(ctx, input.AssignedArea)
	}

	// 5. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 6. Create user
	user := &models.User{
		FullName:     input.FullName,
		Position:     input.Position,
		Email:        input.Email,
		Phone:        input.Phone,
		Username:     input.Username,
		Password:     hashedPassword,
		Role:         string(role),
		AssignedArea: input.AssignedArea,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User created: %s [%s]", user.Username, user.Role)
	return user, nil
}

// Update updates an operator account
func (s *UserService) Update(ctx context.Context, id uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The built-in admin keeps its role
	if input.Role != nil {
		role := domain.Role(*input.Role)
		if role != domain.RoleAdmin && role != domain.RoleStaff {
			return nil, ErrInvalidRole
		}
		if user.Username == domain.AdminUsername && role != domain.RoleAdmin {
			return nil, domain.ErrProtectedUser
		}
		user.Role = string(role)
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Position != nil {
		user.Position = *input.Position
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.AssignedArea != nil {
		if *input.AssignedArea != "" {
			s.warnUnknownArea(ctx, *input.AssignedArea)
		}
		user.AssignedArea = *input.AssignedArea
	}
	if input.Password != nil {
		if !password.Validate(*input.Password) {
			return nil, ErrWeakPassword
		}
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed

		// A password change invalidates every open session
		if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User updated: %s", user.Username)
	return user, nil
}

// Delete removes an operator account. The built-in admin and the caller's
// own account cannot be deleted.
func (s *UserService) Delete(ctx context.Context, id uint, callerID uint) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Username == domain.AdminUsername || user.ID == callerID {
		return domain.ErrProtectedUser
	}

	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, user.ID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return err
	}

	log.Printf("✅ User deleted: %s", user.Username)
	return nil
}

// warnUnknownArea logs assignments that do not match the catalog. A name
// outside the catalog is legal: the account simply matches no voters until
// the roster or the assignment catches up.
func (s *UserService) warnUnknownArea(ctx context.Context, name string) {
	_, err := s.areaRepo.GetByName(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("⚠️ Assigned area not in catalog: %s", name)
	}
}
