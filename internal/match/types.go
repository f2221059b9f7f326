package match

import (
	"database/sql"
	"sync"
)

// store handles all database operations for match records.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ActionKind identifies a discrete in-game event.
type ActionKind string

const (
	ActionTry             ActionKind = "try"
	ActionConversion      ActionKind = "conversion"
	ActionPenalty         ActionKind = "penalty"
	ActionPassPositive    ActionKind = "pass_positive"
	ActionPassNegative    ActionKind = "pass_negative"
	ActionDuelWon         ActionKind = "duel_won"
	ActionDuelNeutral     ActionKind = "duel_neutral"
	ActionDuelLost        ActionKind = "duel_lost"
	ActionTackleOffensive ActionKind = "tackle_offensive"
	ActionTackleMissed    ActionKind = "tackle_missed"
	ActionTackleSuffered  ActionKind = "tackle_suffered"
	ActionFault           ActionKind = "fault"
)

// Action is a single tagged event in a match's action log. Only the type
// tag is consumed by aggregation; unknown kinds are carried as-is.
type Action struct {
	Kind ActionKind `json:"type" msgpack:"type"`
}

// ProcessingStatus tracks a record through the notification pipeline.
type ProcessingStatus string

const (
	StatusNew       ProcessingStatus = "NEW"
	StatusNotified  ProcessingStatus = "NOTIFIED"
	StatusCompleted ProcessingStatus = "COMPLETED"
)

// Order selects the created_at sort direction for record queries.
type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

// Record is one player-match row. Actions are in insertion order, which is
// chronological within the match. CreatedAt is the only ordering key across
// matches. Attributes (physical form, mental form, notes) are opaque payload
// passed through unmodified.
type Record struct {
	ID                string           `json:"id" msgpack:"id"`
	PlayerID          string           `json:"playerId" msgpack:"playerId"`
	ClubID            string           `json:"clubId,omitempty" msgpack:"clubId"`
	PlayerName        string           `json:"playerName" msgpack:"playerName"`
	Opponent          string           `json:"opponent" msgpack:"opponent"`
	Position          string           `json:"position" msgpack:"position"`
	PlayTime          int              `json:"playTime" msgpack:"playTime"`
	PerformanceRating int              `json:"performanceRating" msgpack:"performanceRating"`
	Actions           []Action         `json:"actions" msgpack:"actions"`
	Attributes        map[string]any   `json:"attributes,omitempty" msgpack:"attributes"`
	VideoKey          string           `json:"videoKey,omitempty" msgpack:"videoKey"`
	VideoURL          string           `json:"videoUrl,omitempty" msgpack:"videoUrl"`
	ProcessingStatus  ProcessingStatus `json:"processingStatus" msgpack:"processingStatus"`
	CreatedAt         int64            `json:"createdAt" msgpack:"createdAt"`
}
