package services

import (
	"context"
	"log"

	"election-checkin/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// MaintenanceService runs scheduled background housekeeping jobs
type MaintenanceService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(refreshTokenRepo repositories.RefreshTokenRepository) *MaintenanceService {
	return &MaintenanceService{
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start registers and launches the scheduled jobs
func (s *MaintenanceService) Start() {
	s.cron.AddFunc("@hourly", s.purgeExpiredTokens)
	s.cron.Start()
	log.Println("🚀 MaintenanceService started")
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *MaintenanceService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 MaintenanceService stopped")
}

// purgeExpiredTokens removes refresh tokens past their expiry. Expired
// tokens are already rejected at validation time, this just keeps the
// table from growing without bound.
func (s *MaintenanceService) purgeExpiredTokens() {
	if err := s.refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
		log.Printf("❌ Expired token cleanup error: %v", err)
	}
}
