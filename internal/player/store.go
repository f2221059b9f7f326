package player

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

const playerColumns = `id, email, password_hash, name, position, club_id, onboarding_completed, created_at`

// New creates a new player Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// Create inserts a new player. Emails are unique; a duplicate returns an
// error instead of overwriting the existing account.
func (s *store) Create(p *Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO players (id, email, password_hash, name, position, club_id, onboarding_completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, strings.ToLower(p.Email), p.PasswordHash, p.Name, p.Position, nullable(p.ClubID), p.OnboardingCompleted, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	log.Info("Created player", "playerID", p.ID)
	return nil
}

func (s *store) Get(playerID string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+playerColumns+` FROM players WHERE id = ?`, playerID)
	return s.scanPlayer(row, playerID)
}

func (s *store) GetByEmail(email string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+playerColumns+` FROM players WHERE email = ?`, strings.ToLower(email))
	return s.scanPlayer(row, email)
}

// CompleteOnboarding fills in the profile fields and marks onboarding done.
func (s *store) CompleteOnboarding(playerID string, profile OnboardingProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE players SET name = ?, position = ?, onboarding_completed = 1 WHERE id = ?
	`, profile.Name, profile.Position, playerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("player '%s' not found", playerID)
	}
	return nil
}

// SetClub attaches a player to a club (used by invitation accept).
func (s *store) SetClub(playerID, clubID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE players SET club_id = ? WHERE id = ?", clubID, playerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("player '%s' not found", playerID)
	}
	return nil
}

// ByClub lists a club's members ordered by name.
func (s *store) ByClub(clubID string) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT `+playerColumns+` FROM players WHERE club_id = ? ORDER BY name`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		var clubID sql.NullString
		if err := rows.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Name, &p.Position, &clubID, &p.OnboardingCompleted, &p.CreatedAt); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		p.ClubID = clubID.String
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM players")
	if err != nil {
		log.Error("Failed to clear players", "error", err)
	}
}

func (s *store) scanPlayer(row *sql.Row, key string) (*Player, error) {
	var p Player
	var clubID sql.NullString
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Name, &p.Position, &clubID, &p.OnboardingCompleted, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player '%s' not found", key)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	p.ClubID = clubID.String
	return &p, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
