package club

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for clubs and invitations.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// InvitationTTL is how long an invitation token remains usable.
const InvitationTTL = 7 * 24 * time.Hour

// Club groups players under a shared roster.
type Club struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	CreatedAt int64  `json:"createdAt"`
}

// InvitationStatus tracks an invitation's lifecycle.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationRevoked  InvitationStatus = "REVOKED"
)

// Invitation is a single-use, expiring token inviting an email address to
// join a club.
type Invitation struct {
	ID        string           `json:"id"`
	ClubID    string           `json:"clubId"`
	Email     string           `json:"email"`
	Token     string           `json:"token"`
	Status    InvitationStatus `json:"status"`
	CreatedAt int64            `json:"createdAt"`
	ExpiresAt int64            `json:"expiresAt"`
}
