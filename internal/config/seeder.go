package config

import (
	"log"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/core/domain"
	"election-checkin/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		return err
	}
	if err := s.seedVotingAreas(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the built-in admin account. The account is protected:
// it cannot be deleted or demoted through the API.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("username = ?", domain.AdminUsername).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash(s.cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		FullName: "Quản trị viên",
		Position: "Quản trị hệ thống",
		Username: domain.AdminUsername,
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}

// seedVotingAreas seeds the default area catalog when it is empty. Admins
// can rename, add or remove areas later.
func (s *Seeder) seedVotingAreas() error {
	var count int64
	s.db.Model(&models.VotingArea{}).Count(&count)
	if count > 0 {
		return nil // Catalog already populated
	}

	areas := []models.VotingArea{
		{Name: "Khu vực 1"},
		{Name: "Khu vực 2"},
		{Name: "Khu vực 3"},
		{Name: "Khu vực 4"},
	}

	if err := s.db.Create(&areas).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d voting areas", len(areas))
	return nil
}
