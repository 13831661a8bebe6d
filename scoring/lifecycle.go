package scoring

import (
	"errors"
	"time"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

// Result payload validation errors, surfaced before any state mutation.
var (
	ErrGoalsRequired           = errors.New("home and away goals are required to finalize a match")
	ErrGoalsNegative           = errors.New("goals must be non-negative")
	ErrPenaltyWinnerRequired   = errors.New("a tied mata-mata match requires a penalty-shootout winner")
	ErrPenaltyWinnerNotAllowed = errors.New("penalty-shootout winner is only valid for a tied mata-mata")
	ErrPenaltyWinnerInvalid    = errors.New("penalty-shootout winner must be CASA or VISITANTE")
)

var allowedTransitions = map[models.MatchStatus][]models.MatchStatus{
	models.MatchStatusOpen:   {models.MatchStatusLocked, models.MatchStatusFinal},
	models.MatchStatusLocked: {models.MatchStatusFinal},
	models.MatchStatusFinal:  {models.MatchStatusOpen, models.MatchStatusLocked},
}

// CanTransition reports whether the status change is in the allowed set.
// A self-transition is always an allowed no-op.
func CanTransition(from, to models.MatchStatus) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ResultPayload carries the actual result supplied when finalizing a match.
type ResultPayload struct {
	HomeGoals     *int         `json:"home_goals"`
	AwayGoals     *int         `json:"away_goals"`
	PenaltyWinner *models.Side `json:"penalty_winner,omitempty"`
}

// ValidateResult checks a finalize payload against the match shape. A tied
// mata-mata needs a shootout winner; a non-mata-mata or a mata-mata decided
// on goals must not carry one.
func ValidateResult(knockout bool, payload ResultPayload) error {
	if payload.HomeGoals == nil || payload.AwayGoals == nil {
		return ErrGoalsRequired
	}
	if *payload.HomeGoals < 0 || *payload.AwayGoals < 0 {
		return ErrGoalsNegative
	}
	if !knockout {
		if payload.PenaltyWinner != nil {
			return ErrPenaltyWinnerNotAllowed
		}
		return nil
	}
	if *payload.HomeGoals == *payload.AwayGoals {
		if payload.PenaltyWinner == nil {
			return ErrPenaltyWinnerRequired
		}
		if *payload.PenaltyWinner != models.SideHome && *payload.PenaltyWinner != models.SideAway {
			return ErrPenaltyWinnerInvalid
		}
	} else if payload.PenaltyWinner != nil {
		return ErrPenaltyWinnerNotAllowed
	}
	return nil
}

const (
	virtualLockBefore = 15 * time.Minute
	virtualLockAfter  = 240 * time.Minute
)

// IsVirtuallyLocked reports whether now falls inside the write-freeze window
// around kickoff. This is layered on top of the stored status and only gates
// non-admin palpite writes; it is recomputed on every call, never stored.
func IsVirtuallyLocked(kickoff, now time.Time) bool {
	start := kickoff.Add(-virtualLockBefore)
	end := kickoff.Add(virtualLockAfter)
	return !now.Before(start) && !now.After(end)
}
