package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/anthlasserre/perf-tracker-api/internal/match"
)

// Aggregate folds a set of match records into lifetime counters. Input
// order does not matter. Unknown action kinds and malformed action lists
// are ignored; missing play time counts as zero. Empty input yields
// all-zero counters.
func Aggregate(records []*match.Record) Aggregated {
	var agg Aggregated
	for _, rec := range records {
		if rec == nil {
			continue
		}
		agg.MatchesPlayed++
		if rec.PlayTime > 0 {
			agg.MinutesPlayed += rec.PlayTime
		}
		for _, action := range rec.Actions {
			agg.apply(action.Kind)
		}
	}
	return agg
}

// apply dispatches a single action into the counters.
func (a *Aggregated) apply(kind match.ActionKind) {
	switch kind {
	case match.ActionTry:
		a.Tries++
		a.Points += 5
	case match.ActionConversion:
		a.Conversions++
		a.Points += 2
	case match.ActionPenalty:
		a.Penalties++
		a.Points += 3
	case match.ActionPassPositive:
		a.PassPositive++
	case match.ActionPassNegative:
		a.PassNegative++
	case match.ActionDuelWon:
		a.DuelWon++
	case match.ActionDuelNeutral:
		a.DuelNeutral++
	case match.ActionDuelLost:
		a.DuelLost++
	case match.ActionTackleOffensive:
		a.TackleOffensive++
	case match.ActionTackleMissed:
		a.TackleMissed++
	case match.ActionTackleSuffered:
		a.TackleSuffered++
	case match.ActionFault:
		a.Faults++
	}
	// Unrecognized kinds are ignored silently.
}

// Progress computes the cumulative time series used for trend charts: one
// point per record, in the same order. The caller must pass records sorted
// ascending by CreatedAt; this function does not sort.
func Progress(records []*match.Record) []ProgressPoint {
	points := make([]ProgressPoint, 0, len(records))

	var cum Aggregated
	var ratingSum float64

	for _, rec := range records {
		if rec == nil {
			continue
		}
		cum.MatchesPlayed++
		if rec.PlayTime > 0 {
			cum.MinutesPlayed += rec.PlayTime
		}
		ratingSum += float64(rec.PerformanceRating)
		for _, action := range rec.Actions {
			cum.apply(action.Kind)
		}

		points = append(points, ProgressPoint{
			Date:              rec.CreatedAt,
			PassesAccuracy:    accuracy(cum.PassPositive, cum.PassPositive+cum.PassNegative),
			TackleAccuracy:    tackleAccuracy(&cum),
			DuelAccuracy:      accuracy(cum.DuelWon+cum.DuelNeutral, cum.DuelWon+cum.DuelNeutral+cum.DuelLost),
			Faults:            cum.Faults,
			MinutesPlayed:     cum.MinutesPlayed,
			PerformanceRating: round1(ratingSum / float64(cum.MatchesPlayed)),
		})
	}
	return points
}

// ClubTotals aggregates a club's record set per distinct player, producing
// one roster entry per player sorted by points descending then name. The
// display name splits at the first whitespace boundary; the remainder is
// re-joined as the last name.
func ClubTotals(records []*match.Record) []PlayerTotals {
	grouped := make(map[string][]*match.Record)
	names := make(map[string]string)
	var order []string

	for _, rec := range records {
		if rec == nil {
			continue
		}
		if _, seen := grouped[rec.PlayerID]; !seen {
			order = append(order, rec.PlayerID)
			names[rec.PlayerID] = rec.PlayerName
		}
		grouped[rec.PlayerID] = append(grouped[rec.PlayerID], rec)
	}

	totals := make([]PlayerTotals, 0, len(order))
	for _, playerID := range order {
		first, last := SplitName(names[playerID])
		totals = append(totals, PlayerTotals{
			PlayerID:   playerID,
			PlayerName: names[playerID],
			FirstName:  first,
			LastName:   last,
			Stats:      Aggregate(grouped[playerID]),
		})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Stats.Points != totals[j].Stats.Points {
			return totals[i].Stats.Points > totals[j].Stats.Points
		}
		return totals[i].PlayerName < totals[j].PlayerName
	})
	return totals
}

// SplitName splits a display name into first and last name at the first
// whitespace boundary. An empty name yields two empty strings.
func SplitName(name string) (string, string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// accuracy returns num/denom as a percentage rounded to two decimals, or
// nil when the denominator is zero.
func accuracy(num, denom int) *float64 {
	if denom == 0 {
		return nil
	}
	pct := round2(float64(num) / float64(denom) * 100)
	return &pct
}

// tackleAccuracy counts suffered tackles in both numerator and denominator.
// That is the product's scoring convention, not a bug.
func tackleAccuracy(cum *Aggregated) *float64 {
	return accuracy(cum.TackleOffensive+cum.TackleSuffered, cum.TackleOffensive+cum.TackleMissed+cum.TackleSuffered)
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds half away from zero to one decimal.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
