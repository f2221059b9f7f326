package player

import (
	"database/sql"
	"sync"
)

// store handles all database operations for players.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Player is an account holder. PasswordHash never leaves the store layer
// in API responses.
type Player struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	PasswordHash        string `json:"-"`
	Name                string `json:"name"`
	Position            string `json:"position"`
	ClubID              string `json:"clubId,omitempty"`
	OnboardingCompleted bool   `json:"onboardingCompleted"`
	CreatedAt           int64  `json:"createdAt"`
}

// OnboardingProfile carries the fields a player fills in after registering.
type OnboardingProfile struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}
