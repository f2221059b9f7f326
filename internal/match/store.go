package match

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

const recordColumns = `id, player_id, club_id, player_name, opponent, position, play_time, performance_rating, actions_json, attributes_json, video_key, video_url, processing_status, created_at`

// New creates a new match record Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// Upsert inserts a new record or updates an existing one. It is "dumb" and
// does not change the processing status of an existing record.
func (s *store) Upsert(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	actionsJSON, err := json.Marshal(rec.Actions)
	if err != nil {
		return fmt.Errorf("failed to marshal actions: %w", err)
	}
	attributesJSON, err := json.Marshal(rec.Attributes)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}

	// ON CONFLICT, every field is updated EXCEPT processing_status and the
	// video columns, which are owned by the pipeline.
	_, err = s.db.Exec(`
		INSERT INTO match_records (id, player_id, club_id, player_name, opponent, position, play_time, performance_rating, actions_json, attributes_json, processing_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			player_id = excluded.player_id,
			club_id = excluded.club_id,
			player_name = excluded.player_name,
			opponent = excluded.opponent,
			position = excluded.position,
			play_time = excluded.play_time,
			performance_rating = excluded.performance_rating,
			actions_json = excluded.actions_json,
			attributes_json = excluded.attributes_json,
			created_at = excluded.created_at;
	`, rec.ID, rec.PlayerID, nullable(rec.ClubID), rec.PlayerName, rec.Opponent, rec.Position, rec.PlayTime, rec.PerformanceRating, string(actionsJSON), string(attributesJSON), StatusNew, rec.CreatedAt)
	return err
}

// Get retrieves a single record by id.
func (s *store) Get(recordID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+recordColumns+` FROM match_records WHERE id = ?`, recordID)
	rec, err := s.scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("match record '%s' not found", recordID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return rec, nil
}

// ByPlayer retrieves all of a player's records ordered by created_at.
// A limit of 0 means no cap.
func (s *store) ByPlayer(playerID string, order Order, limit int) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := "ASC"
	if order == OrderDesc {
		dir = "DESC"
	}
	query := `SELECT ` + recordColumns + ` FROM match_records WHERE player_id = ? ORDER BY created_at ` + dir
	args := []any{playerID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.collectRecords(rows)
}

// ByClub retrieves all records attached to a club, ordered by created_at
// ascending.
func (s *store) ByClub(clubID string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT `+recordColumns+` FROM match_records WHERE club_id = ? ORDER BY created_at ASC`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.collectRecords(rows)
}

// AttachVideo stores the uploaded video's object key and URL on a record.
func (s *store) AttachVideo(recordID, key, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE match_records SET video_key = ?, video_url = ? WHERE id = ?", key, url, recordID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("match record '%s' not found", recordID)
	}
	return nil
}

// ForProcessing retrieves all records that are not yet in a completed state.
func (s *store) ForProcessing() ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT `+recordColumns+` FROM match_records WHERE processing_status != ? ORDER BY created_at ASC`, StatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.collectRecords(rows)
}

// UpdateProcessingStatus transitions a record to a new state.
func (s *store) UpdateProcessingStatus(recordID string, status ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE match_records SET processing_status = ? WHERE id = ?", status, recordID)
	return err
}

func (s *store) Delete(recordID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM match_records WHERE id = ?", recordID)
	if err != nil {
		log.Error("Failed to delete match record", "error", err, "recordID", recordID)
	}
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM match_records")
	if err != nil {
		log.Error("Failed to clear match records", "error", err)
	}
}

func (s *store) collectRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			log.Error("Failed to scan match record row", "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// scanRecord is a helper to scan a single record row.
func (s *store) scanRecord(scanner interface{ Scan(...any) error }) (*Record, error) {
	var rec Record
	var clubID, actionsJSON, attributesJSON, videoKey, videoURL sql.NullString

	err := scanner.Scan(
		&rec.ID, &rec.PlayerID, &clubID, &rec.PlayerName, &rec.Opponent, &rec.Position,
		&rec.PlayTime, &rec.PerformanceRating, &actionsJSON, &attributesJSON,
		&videoKey, &videoURL, &rec.ProcessingStatus, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.ClubID = clubID.String
	rec.VideoKey = videoKey.String
	rec.VideoURL = videoURL.String

	if actionsJSON.Valid && actionsJSON.String != "" {
		if err := json.Unmarshal([]byte(actionsJSON.String), &rec.Actions); err != nil {
			log.Error("Failed to unmarshal actions_json", "error", err, "recordID", rec.ID)
			rec.Actions = []Action{}
		}
	} else {
		rec.Actions = []Action{}
	}

	if attributesJSON.Valid && attributesJSON.String != "" && attributesJSON.String != "null" {
		if err := json.Unmarshal([]byte(attributesJSON.String), &rec.Attributes); err != nil {
			log.Error("Failed to unmarshal attributes_json", "error", err, "recordID", rec.ID)
		}
	}

	return &rec, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
