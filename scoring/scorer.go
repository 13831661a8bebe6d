package scoring

import (
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

// MatchResult is the actual outcome of a finished match.
type MatchResult struct {
	HomeGoals     int
	AwayGoals     int
	Knockout      bool
	PenaltyWinner *models.Side
}

// PredictionInput is one user's palpite for that match.
type PredictionInput struct {
	HomeGoals     int
	AwayGoals     int
	PenaltyWinner *models.Side
}

// ScoreResult is what the scorer awards. Points is always ScorePoints +
// PenaltyPoints; with the current tier order only one of the two is ever
// non-zero for a single palpite.
type ScoreResult struct {
	Points            int
	ScorePoints       int
	PenaltyPoints     int
	Classification    models.Classification
	CorrectWinner     bool
	CorrectExactScore bool
	CorrectPenalty    bool
}

// ScorePrediction applies the bolão's point configuration to one palpite.
//
// The tiers are evaluated strictly in order and the first hit wins; there is
// no stacking. The penalty tier is exclusive on purpose: a correctly picked
// shootout winner on a tied mata-mata pays only the penalty points, even when
// the predicted scoreline is also exact. Do not reorder the guards and do not
// turn this into a compute-all-pick-max table; the order is the business rule.
func ScorePrediction(cfg models.PointConfig, result MatchResult, pred PredictionInput) ScoreResult {
	actual := ResolveOutcome(result.HomeGoals, result.AwayGoals, result.Knockout, result.PenaltyWinner)
	predicted := ResolveOutcome(pred.HomeGoals, pred.AwayGoals, result.Knockout, pred.PenaltyWinner)

	tiedOnGoals := result.HomeGoals == result.AwayGoals
	penaltyDecided := result.Knockout && tiedOnGoals && result.PenaltyWinner != nil

	// 1. Penalty override. Returns immediately; no other tier applies.
	if penaltyDecided && pred.PenaltyWinner != nil && *pred.PenaltyWinner == *result.PenaltyWinner {
		return ScoreResult{
			Points:         cfg.Penaltis,
			PenaltyPoints:  cfg.Penaltis,
			Classification: models.ClassPenaltisApenas,
			CorrectWinner:  true,
			CorrectPenalty: true,
		}
	}

	exactScore := pred.HomeGoals == result.HomeGoals && pred.AwayGoals == result.AwayGoals

	// 2. Exact score. On a penalty-decided mata-mata the exact regulation
	// scoreline alone is not enough: the shootout pick decided the match and
	// it was wrong (or absent) if we got here.
	if exactScore && (!result.Knockout || !tiedOnGoals) {
		return scoreTier(cfg.PlacarExato, models.ClassPlacarExato, true, true)
	}

	winnerMatch := actual != models.SideDraw && predicted == actual

	// 3. Correct winner with the winning side's exact goal count.
	if winnerMatch && goalsFor(pred.HomeGoals, pred.AwayGoals, actual) == goalsFor(result.HomeGoals, result.AwayGoals, actual) {
		return scoreTier(cfg.PlacarVencedor, models.ClassPlacarVencedor, true, false)
	}

	// 4. Correct winner and identical goal difference (sign and magnitude).
	if winnerMatch && pred.HomeGoals-pred.AwayGoals == result.HomeGoals-result.AwayGoals {
		return scoreTier(goalDifferencePoints(cfg), models.ClassDiferencaGols, true, false)
	}

	// 5. Correct winner with the losing side's exact goal count.
	if winnerMatch && goalsAgainst(pred.HomeGoals, pred.AwayGoals, actual) == goalsAgainst(result.HomeGoals, result.AwayGoals, actual) {
		return scoreTier(cfg.PlacarPerdedor, models.ClassPlacarPerdedor, true, false)
	}

	// 6. Draw predicted against an actual draw; exact goal values irrelevant.
	if actual == models.SideDraw && predicted == models.SideDraw {
		return scoreTier(cfg.Empate, models.ClassEmpate, false, false)
	}

	// 7. Plain correct winner.
	if winnerMatch {
		return scoreTier(cfg.Vencedor, models.ClassVencedorSimples, true, false)
	}

	// 8. Nothing matched.
	return ScoreResult{Classification: models.ClassErrou}
}

func scoreTier(points int, class models.Classification, correctWinner, exact bool) ScoreResult {
	return ScoreResult{
		Points:            points,
		ScorePoints:       points,
		Classification:    class,
		CorrectWinner:     correctWinner,
		CorrectExactScore: exact,
	}
}

// goalDifferencePoints honours the legacy alias: an unset (zero) goal
// difference value falls back to the plain winner value.
func goalDifferencePoints(cfg models.PointConfig) int {
	if cfg.DiferencaGols > 0 {
		return cfg.DiferencaGols
	}
	return cfg.Vencedor
}

func goalsFor(home, away int, winner models.Side) int {
	if winner == models.SideHome {
		return home
	}
	return away
}

func goalsAgainst(home, away int, winner models.Side) int {
	if winner == models.SideHome {
		return away
	}
	return home
}
