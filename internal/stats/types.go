package stats

// Aggregated holds a player's lifetime counters derived from their match
// action logs. It is recomputed on every query and never persisted.
// Invariant: Points == 5*Tries + 2*Conversions + 3*Penalties.
type Aggregated struct {
	MatchesPlayed   int `json:"matchesPlayed"`
	MinutesPlayed   int `json:"minutesPlayed"`
	Tries           int `json:"tries"`
	Conversions     int `json:"conversions"`
	Penalties       int `json:"penalties"`
	Points          int `json:"points"`
	PassPositive    int `json:"passPositive"`
	PassNegative    int `json:"passNegative"`
	DuelWon         int `json:"duelWon"`
	DuelNeutral     int `json:"duelNeutral"`
	DuelLost        int `json:"duelLost"`
	TackleOffensive int `json:"tackleOffensive"`
	TackleMissed    int `json:"tackleMissed"`
	TackleSuffered  int `json:"tackleSuffered"`
	Faults          int `json:"faults"`
}

// ProgressPoint is one cumulative snapshot aligned to a single match's
// timestamp. Accuracy fields are percentages in [0,100] rounded to two
// decimals, nil when their denominator is zero. PerformanceRating is the
// running mean to one decimal.
type ProgressPoint struct {
	Date              int64    `json:"date"`
	PassesAccuracy    *float64 `json:"passesAccuracy"`
	TackleAccuracy    *float64 `json:"tackleAccuracy"`
	DuelAccuracy      *float64 `json:"duelAccuracy"`
	Faults            int      `json:"faults"`
	MinutesPlayed     int      `json:"minutesPlayed"`
	PerformanceRating float64  `json:"performanceRating"`
}

// PlayerTotals is one roster entry: a club member's lifetime counters plus
// their display name split at the first whitespace boundary.
type PlayerTotals struct {
	PlayerID   string     `json:"playerId"`
	PlayerName string     `json:"playerName"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Stats      Aggregated `json:"stats"`
}
