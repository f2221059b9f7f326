package club

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	// ErrInvitationExpired is returned when an otherwise valid token has
	// passed its expiry.
	ErrInvitationExpired = errors.New("invitation has expired")
	// ErrInvitationConsumed is returned when a token was already accepted
	// or revoked.
	ErrInvitationConsumed = errors.New("invitation is no longer valid")
)

// New creates a new club Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) Create(c *Club) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO clubs (id, name, owner_id, created_at) VALUES (?, ?, ?, ?)
	`, c.ID, c.Name, c.OwnerID, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create club: %w", err)
	}
	log.Info("Created club", "clubID", c.ID, "name", c.Name)
	return nil
}

func (s *store) Get(clubID string) (*Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Club
	err := s.db.QueryRow(`SELECT id, name, owner_id, created_at FROM clubs WHERE id = ?`, clubID).
		Scan(&c.ID, &c.Name, &c.OwnerID, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("club '%s' not found", clubID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &c, nil
}

func (s *store) CreateInvitation(inv *Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO club_invitations (id, club_id, email, token, status, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, inv.ID, inv.ClubID, strings.ToLower(inv.Email), inv.Token, InvitationPending, inv.CreatedAt, inv.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	log.Info("Created club invitation", "invitationID", inv.ID, "clubID", inv.ClubID)
	return nil
}

func (s *store) GetInvitationByToken(token string) (*Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getInvitationByTokenLocked(token)
}

func (s *store) getInvitationByTokenLocked(token string) (*Invitation, error) {
	var inv Invitation
	err := s.db.QueryRow(`
		SELECT id, club_id, email, token, status, created_at, expires_at
		FROM club_invitations WHERE token = ?
	`, token).Scan(&inv.ID, &inv.ClubID, &inv.Email, &inv.Token, &inv.Status, &inv.CreatedAt, &inv.ExpiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("invitation not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &inv, nil
}

// AcceptInvitation consumes a pending token. Expired or already consumed
// tokens return an error and leave the row untouched.
func (s *store) AcceptInvitation(token string, now int64) (*Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.getInvitationByTokenLocked(token)
	if err != nil {
		return nil, err
	}
	if inv.Status != InvitationPending {
		return nil, ErrInvitationConsumed
	}
	if now > inv.ExpiresAt {
		return nil, ErrInvitationExpired
	}

	_, err = s.db.Exec("UPDATE club_invitations SET status = ? WHERE id = ?", InvitationAccepted, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to accept invitation: %w", err)
	}
	inv.Status = InvitationAccepted
	log.Info("Accepted club invitation", "invitationID", inv.ID, "clubID", inv.ClubID)
	return inv, nil
}

func (s *store) RevokeInvitation(invitationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE club_invitations SET status = ? WHERE id = ? AND status = ?", InvitationRevoked, invitationID, InvitationPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("pending invitation '%s' not found", invitationID)
	}
	return nil
}

func (s *store) ListInvitations(clubID string) ([]Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, club_id, email, token, status, created_at, expires_at
		FROM club_invitations WHERE club_id = ? ORDER BY created_at DESC
	`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []Invitation
	for rows.Next() {
		var inv Invitation
		if err := rows.Scan(&inv.ID, &inv.ClubID, &inv.Email, &inv.Token, &inv.Status, &inv.CreatedAt, &inv.ExpiresAt); err != nil {
			log.Error("Failed to scan invitation row", "error", err)
			continue
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing clubs", "error", err)
		return
	}
	if _, err := tx.Exec("DELETE FROM club_invitations"); err != nil {
		log.Error("Failed to clear club invitations", "error", err)
		tx.Rollback()
		return
	}
	if _, err := tx.Exec("DELETE FROM clubs"); err != nil {
		log.Error("Failed to clear clubs", "error", err)
		tx.Rollback()
		return
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit clearing clubs", "error", err)
	}
}
