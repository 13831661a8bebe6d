package models

import "time"

// Side identifies the winner of a match outcome.
type Side string

const (
	SideHome Side = "CASA"
	SideAway Side = "VISITANTE"
	SideDraw Side = "EMPATE"
)

// MatchStatus values match the ENUM in the database.
type MatchStatus string

const (
	MatchStatusOpen   MatchStatus = "PALPITES"
	MatchStatusLocked MatchStatus = "TRANCADO"
	MatchStatusFinal  MatchStatus = "ENCERRADO"
)

// Match (jogo). HomeGoals, AwayGoals and PenaltyWinner are only populated
// while Status is ENCERRADO; leaving that status clears them.
type Match struct {
	ID            int         `json:"id" db:"id"`
	BolaoID       int         `json:"bolao_id" db:"bolao_id"`
	RoundID       int         `json:"round_id" db:"round_id"`
	HomeTeamID    int         `json:"home_team_id" db:"home_team_id"`
	AwayTeamID    int         `json:"away_team_id" db:"away_team_id"`
	Kickoff       time.Time   `json:"kickoff" db:"kickoff"`
	Knockout      bool        `json:"knockout" db:"knockout"`
	Status        MatchStatus `json:"status" db:"status"`
	HomeGoals     *int        `json:"home_goals,omitempty" db:"home_goals"`
	AwayGoals     *int        `json:"away_goals,omitempty" db:"away_goals"`
	PenaltyWinner *Side       `json:"penalty_winner,omitempty" db:"penalty_winner"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`

	HomeTeam *Team  `json:"home_team,omitempty" db:"-"`
	AwayTeam *Team  `json:"away_team,omitempty" db:"-"`
	Round    *Round `json:"round,omitempty" db:"-"`
}
