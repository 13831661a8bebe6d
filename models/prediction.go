package models

import "time"

// Classification tags a scored palpite with the tier that awarded its points.
type Classification string

const (
	ClassPenaltisApenas  Classification = "penaltis_apenas"
	ClassPlacarExato     Classification = "placar_exato"
	ClassPlacarVencedor  Classification = "placar_vencedor"
	ClassDiferencaGols   Classification = "diferenca_gols"
	ClassPlacarPerdedor  Classification = "placar_perdedor"
	ClassEmpate          Classification = "empate"
	ClassVencedorSimples Classification = "vencedor_simples"
	ClassErrou           Classification = "errou"
)

// Prediction (palpite). One per (user, match), enforced by a unique
// constraint. Points, ScorePoints, PenaltyPoints, Classification and
// ComputedAt are written by the scorer when the match is finalized and
// zeroed/nulled again when it leaves ENCERRADO.
type Prediction struct {
	ID            int             `json:"id" db:"id"`
	UserID        int             `json:"user_id" db:"user_id"`
	MatchID       int             `json:"match_id" db:"match_id"`
	HomeGoals     int             `json:"home_goals" db:"home_goals"`
	AwayGoals     int             `json:"away_goals" db:"away_goals"`
	PenaltyWinner *Side           `json:"penalty_winner,omitempty" db:"penalty_winner"`
	Points        int             `json:"points" db:"points"`
	ScorePoints   int             `json:"score_points" db:"score_points"`
	PenaltyPoints int             `json:"penalty_points" db:"penalty_points"`
	Classification *Classification `json:"classification,omitempty" db:"classification"`
	ComputedAt    *time.Time      `json:"computed_at,omitempty" db:"computed_at"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`

	User *User `json:"user,omitempty" db:"-"`
}
