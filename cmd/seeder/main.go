package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/anthlasserre/perf-tracker-api/internal/match"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

var actionKinds = []match.ActionKind{
	match.ActionTry,
	match.ActionConversion,
	match.ActionPenalty,
	match.ActionPassPositive,
	match.ActionPassNegative,
	match.ActionDuelWon,
	match.ActionDuelNeutral,
	match.ActionDuelLost,
	match.ActionTackleOffensive,
	match.ActionTackleMissed,
	match.ActionTackleSuffered,
	match.ActionFault,
}

// randomActions builds a plausible action log for one match.
func randomActions() []match.Action {
	actions := make([]match.Action, 0, 24)
	for i := 0; i < 4+rand.Intn(20); i++ {
		actions = append(actions, match.Action{Kind: actionKinds[rand.Intn(len(actionKinds))]})
	}
	return actions
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	clubID := "seed-club"
	_, err = db.Exec("INSERT OR IGNORE INTO clubs (id, name, owner_id, created_at) VALUES (?, ?, ?, ?)",
		clubID, "Seeder RFC", "seed-player-1", time.Now().Unix())
	if err != nil {
		log.Fatalf("Failed to insert dummy club: %s", err)
	}

	// Create dummy players to hang match records off.
	dummyPlayers := []struct {
		ID   string
		Name string
	}{
		{"seed-player-1", "Seeder Player A"},
		{"seed-player-2", "Seeder Player B"},
		{"seed-player-3", "Seeder Player C"},
		{"seed-player-4", "Seeder Player D"},
	}

	for i, p := range dummyPlayers {
		_, err := db.Exec(`INSERT OR IGNORE INTO players
			(id, email, password_hash, name, position, club_id, onboarding_completed, created_at)
			VALUES (?, ?, ?, ?, ?, ?, 1, ?)`,
			p.ID, fmt.Sprintf("seed%d@example.com", i+1), "not-a-real-hash", p.Name, "flanker", clubID, time.Now().Unix())
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.Name, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	const batchSize = 100 // Insert 100 records at a time
	const numRecords = 10000

	log.Info("Preparing to insert dummy match records...", "total", numRecords, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*12) // 12 columns per record

	for i := 0; i < numRecords; i++ {
		p := dummyPlayers[rand.Intn(len(dummyPlayers))]
		matchTime := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		actionsBlob, _ := json.Marshal(randomActions())
		attributesBlob, _ := json.Marshal(map[string]any{
			"physicalForm": 1 + rand.Intn(10),
			"mentalForm":   1 + rand.Intn(10),
		})

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			uuid.NewString(),
			p.ID,
			clubID,
			p.Name,
			"Seeded Opponent RFC",
			"flanker",
			40+rand.Intn(41),
			1+rand.Intn(10),
			actionsBlob,
			attributesBlob,
			string(match.StatusCompleted),
			matchTime.Unix(),
		)

		if (i+1)%batchSize == 0 || (i+1) == numRecords {
			stmt := fmt.Sprintf(`
				INSERT INTO match_records (id, player_id, club_id, player_name, opponent, position,
					play_time, performance_rating, actions_json, attributes_json, processing_status, created_at)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*12)
			log.Info("Inserted batch", "completed", i+1, "total", numRecords)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy match records.", "duration", duration)
}
