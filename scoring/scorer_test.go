package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

var testPoints = models.PointConfig{
	PlacarExato:    25,
	PlacarVencedor: 18,
	DiferencaGols:  15,
	PlacarPerdedor: 12,
	Vencedor:       10,
	Empate:         15,
	Penaltis:       20,
	Campeao:        50,
}

func TestScorePrediction_Tiers(t *testing.T) {
	tests := []struct {
		name       string
		result     MatchResult
		pred       PredictionInput
		wantPoints int
		wantClass  models.Classification
		wantWinner bool
	}{
		{
			name:       "exact score home win",
			result:     MatchResult{HomeGoals: 2, AwayGoals: 1},
			pred:       PredictionInput{HomeGoals: 2, AwayGoals: 1},
			wantPoints: 25, wantClass: models.ClassPlacarExato, wantWinner: true,
		},
		{
			name:       "exact draw score",
			result:     MatchResult{HomeGoals: 1, AwayGoals: 1},
			pred:       PredictionInput{HomeGoals: 1, AwayGoals: 1},
			wantPoints: 25, wantClass: models.ClassPlacarExato, wantWinner: true,
		},
		{
			name:       "winner with winning side score",
			result:     MatchResult{HomeGoals: 3, AwayGoals: 1},
			pred:       PredictionInput{HomeGoals: 3, AwayGoals: 0},
			wantPoints: 18, wantClass: models.ClassPlacarVencedor, wantWinner: true,
		},
		{
			name:       "goal difference",
			result:     MatchResult{HomeGoals: 3, AwayGoals: 1},
			pred:       PredictionInput{HomeGoals: 4, AwayGoals: 2},
			wantPoints: 15, wantClass: models.ClassDiferencaGols, wantWinner: true,
		},
		{
			name:       "losing side score",
			result:     MatchResult{HomeGoals: 3, AwayGoals: 1},
			pred:       PredictionInput{HomeGoals: 2, AwayGoals: 1},
			wantPoints: 12, wantClass: models.ClassPlacarPerdedor, wantWinner: true,
		},
		{
			name:       "draw against draw with different goals",
			result:     MatchResult{HomeGoals: 0, AwayGoals: 0},
			pred:       PredictionInput{HomeGoals: 2, AwayGoals: 2},
			wantPoints: 15, wantClass: models.ClassEmpate, wantWinner: false,
		},
		{
			name:       "plain winner",
			result:     MatchResult{HomeGoals: 4, AwayGoals: 0},
			pred:       PredictionInput{HomeGoals: 1, AwayGoals: 0},
			wantPoints: 10, wantClass: models.ClassVencedorSimples, wantWinner: true,
		},
		{
			name:       "drawn guess against decisive result",
			result:     MatchResult{HomeGoals: 2, AwayGoals: 1},
			pred:       PredictionInput{HomeGoals: 1, AwayGoals: 1},
			wantPoints: 0, wantClass: models.ClassErrou, wantWinner: false,
		},
		{
			name:       "wrong winner",
			result:     MatchResult{HomeGoals: 0, AwayGoals: 2},
			pred:       PredictionInput{HomeGoals: 1, AwayGoals: 0},
			wantPoints: 0, wantClass: models.ClassErrou, wantWinner: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScorePrediction(testPoints, tt.result, tt.pred)
			assert.Equal(t, tt.wantPoints, got.Points)
			assert.Equal(t, tt.wantClass, got.Classification)
			assert.Equal(t, tt.wantWinner, got.CorrectWinner)
			assert.Equal(t, got.Points, got.ScorePoints+got.PenaltyPoints, "points must be the sum of both buckets")
		})
	}
}

// A correct shootout pick on a tied mata-mata pays only the penalty points,
// even though the predicted scoreline is also exact and would pay more.
func TestScorePrediction_PenaltyOverrideIsExclusive(t *testing.T) {
	result := MatchResult{HomeGoals: 1, AwayGoals: 1, Knockout: true, PenaltyWinner: side(models.SideAway)}
	pred := PredictionInput{HomeGoals: 1, AwayGoals: 1, PenaltyWinner: side(models.SideAway)}

	got := ScorePrediction(testPoints, result, pred)

	assert.Equal(t, testPoints.Penaltis, got.Points)
	assert.Equal(t, 0, got.ScorePoints)
	assert.Equal(t, testPoints.Penaltis, got.PenaltyPoints)
	assert.Equal(t, models.ClassPenaltisApenas, got.Classification)
	assert.True(t, got.CorrectWinner)
	assert.True(t, got.CorrectPenalty)
	assert.False(t, got.CorrectExactScore)
}

func TestScorePrediction_WrongPenaltyPickOnTiedKnockout(t *testing.T) {
	result := MatchResult{HomeGoals: 1, AwayGoals: 1, Knockout: true, PenaltyWinner: side(models.SideAway)}
	pred := PredictionInput{HomeGoals: 1, AwayGoals: 1, PenaltyWinner: side(models.SideHome)}

	got := ScorePrediction(testPoints, result, pred)

	// The exact regulation scoreline does not rescue a wrong shootout pick.
	assert.Equal(t, 0, got.Points)
	assert.Equal(t, models.ClassErrou, got.Classification)
	assert.False(t, got.CorrectWinner)
}

func TestScorePrediction_KnockoutDecidedOnGoals(t *testing.T) {
	result := MatchResult{HomeGoals: 2, AwayGoals: 0, Knockout: true}
	pred := PredictionInput{HomeGoals: 2, AwayGoals: 0}

	got := ScorePrediction(testPoints, result, pred)

	assert.Equal(t, testPoints.PlacarExato, got.Points)
	assert.Equal(t, models.ClassPlacarExato, got.Classification)
}

// Winner picked through the shootout side counts as a plain winner hit for
// palpites whose scoreline was not tied.
func TestScorePrediction_WinnerViaShootoutSide(t *testing.T) {
	result := MatchResult{HomeGoals: 1, AwayGoals: 1, Knockout: true, PenaltyWinner: side(models.SideHome)}
	pred := PredictionInput{HomeGoals: 2, AwayGoals: 0}

	got := ScorePrediction(testPoints, result, pred)

	assert.Equal(t, models.ClassVencedorSimples, got.Classification)
	assert.True(t, got.CorrectWinner)
}

// Documented quirk, preserved on purpose: a finalized tied mata-mata always
// carries a shootout winner, so the empate tier can never fire for it: the
// palpite either nailed the shootout (tier 1) or missed the winner entirely.
func TestScorePrediction_EmpateUnreachableOnDecidedKnockout(t *testing.T) {
	result := MatchResult{HomeGoals: 0, AwayGoals: 0, Knockout: true, PenaltyWinner: side(models.SideAway)}
	pred := PredictionInput{HomeGoals: 0, AwayGoals: 0, PenaltyWinner: side(models.SideHome)}

	got := ScorePrediction(testPoints, result, pred)

	assert.NotEqual(t, models.ClassEmpate, got.Classification)
	assert.Equal(t, models.ClassErrou, got.Classification)
}

func TestScorePrediction_GoalDifferenceFallsBackToWinnerValue(t *testing.T) {
	cfg := testPoints
	cfg.DiferencaGols = 0

	result := MatchResult{HomeGoals: 3, AwayGoals: 1}
	pred := PredictionInput{HomeGoals: 2, AwayGoals: 0}

	got := ScorePrediction(cfg, result, pred)

	assert.Equal(t, cfg.Vencedor, got.Points)
	assert.Equal(t, models.ClassDiferencaGols, got.Classification)
}

// Rescoring with the same config must reproduce the same result.
func TestScorePrediction_Deterministic(t *testing.T) {
	result := MatchResult{HomeGoals: 2, AwayGoals: 2, Knockout: true, PenaltyWinner: side(models.SideHome)}
	pred := PredictionInput{HomeGoals: 2, AwayGoals: 2, PenaltyWinner: side(models.SideHome)}

	first := ScorePrediction(testPoints, result, pred)
	second := ScorePrediction(testPoints, result, pred)

	assert.Equal(t, first, second)
}
