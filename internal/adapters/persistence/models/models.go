package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FullName     string         `gorm:"size:100;not null" json:"full_name"`
	Position     string         `gorm:"size:100" json:"position"`
	Email        string         `gorm:"size:100" json:"email"`
	Phone        string         `gorm:"size:20" json:"phone"`
	Username     string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password     string         `gorm:"size:255;not null" json:"-"`
	Role         string         `gorm:"size:20;default:'STAFF'" json:"role"`
	AssignedArea string         `gorm:"size:100" json:"assigned_area"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID           uint      `json:"id"`
	FullName     string    `json:"full_name"`
	Position     string    `json:"position"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	AssignedArea string    `json:"assigned_area"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		FullName:     u.FullName,
		Position:     u.Position,
		Email:        u.Email,
		Phone:        u.Phone,
		Username:     u.Username,
		Role:         u.Role,
		AssignedArea: u.AssignedArea,
		CreatedAt:    u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Roster Tables
// ============================================================

// Voter represents voters table.
// Deletion is a hard delete: removing a voter from the roster is an
// explicit, irreversible administrative action.
type Voter struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	FullName     string     `gorm:"size:100;not null" json:"full_name"`
	IDCard       string     `gorm:"column:id_card;uniqueIndex;size:20;not null" json:"id_card"`
	Address      string     `gorm:"size:255" json:"address"`
	Neighborhood string     `gorm:"size:100;index" json:"neighborhood"`
	Constituency string     `gorm:"size:100" json:"constituency"`
	VotingGroup  string     `gorm:"size:100;index" json:"voting_group"`
	VotingArea   string     `gorm:"size:100;index" json:"voting_area"`
	HasVoted     bool       `gorm:"default:false;index" json:"has_voted"`
	VotedAt      *time.Time `json:"voted_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Voter) TableName() string {
	return "voters"
}

// ============================================================
// Catalog Tables
// ============================================================

// VotingArea represents voting_areas table (flat catalog).
// Voters and users reference areas by name, not by id.
type VotingArea struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (VotingArea) TableName() string {
	return "voting_areas"
}

// ElectionConfig represents election_configs table (key/value settings)
type ElectionConfig struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ConfigKey   string    `gorm:"uniqueIndex;size:50;not null" json:"config_key"`
	ConfigValue string    `gorm:"size:255" json:"config_value"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ElectionConfig) TableName() string {
	return "election_configs"
}

// Config keys
const (
	ConfigKeyEndTime     = "election_end_time"
	ConfigKeyProjectName = "project_name"
)

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Voter{},
		&VotingArea{},
		&ElectionConfig{},
	)
}
