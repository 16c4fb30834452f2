package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleStaff Role = "STAFF"
	RoleAdmin Role = "ADMIN"
)

// AdminUsername is the built-in administrator account.
// It cannot be deleted or demoted.
const AdminUsername = "admin"

// User represents a system operator in the domain layer
type User struct {
	ID           uint
	FullName     string
	Position     string
	Email        string
	Phone        string
	Username     string
	Password     string // Hashed
	Role         Role
	AssignedArea string // Voting area name for STAFF; empty means no scope
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Voter represents a registered voter in the domain layer
type Voter struct {
	ID           string
	FullName     string
	IDCard       string // National identity number, the natural dedup key
	Address      string
	Neighborhood string
	Constituency string
	VotingGroup  string
	VotingArea   string
	HasVoted     bool
	VotedAt      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VotingArea represents a polling location in the flat area catalog.
// Voters and users reference areas by name, not by id.
type VotingArea struct {
	ID   uint
	Name string
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TurnoutBucket is one row of a turnout aggregation.
type TurnoutBucket struct {
	Key        string `json:"key"`
	Total      int64  `json:"total"`
	Voted      int64  `json:"voted"`
	NotVoted   int64  `json:"not_voted"`
	Percentage int    `json:"percentage"`
}

// TurnoutPercentage computes round(100*voted/total), 0 when total is 0.
func TurnoutPercentage(voted, total int64) int {
	if total == 0 {
		return 0
	}
	return int((voted*100 + total/2) / total)
}
