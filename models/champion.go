package models

import "time"

// ChampionStatus is derived from (ResultTeamID, Deadline, now) at read time
// and never persisted.
type ChampionStatus string

const (
	ChampionStatusOpen           ChampionStatus = "ABERTO"
	ChampionStatusDeadlinePassed ChampionStatus = "PRAZO_ENCERRADO"
	ChampionStatusResultSet      ChampionStatus = "RESULTADO_DEFINIDO"
)

// Champion (campeão) is a bolão-scoped "who wins category X" contest.
// Points == 0 means "use the bolão's pts_campeao default".
type Champion struct {
	ID           int        `json:"id" db:"id"`
	BolaoID      int        `json:"bolao_id" db:"bolao_id"`
	Name         string     `json:"name" db:"name"`
	Description  *string    `json:"description,omitempty" db:"description"`
	Deadline     time.Time  `json:"deadline" db:"deadline"`
	Points       int        `json:"points" db:"points"`
	ResultTeamID *int       `json:"result_team_id,omitempty" db:"result_team_id"`
	DecidedAt    *time.Time `json:"decided_at,omitempty" db:"decided_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`

	Status ChampionStatus `json:"status,omitempty" db:"-"`
}

// ChampionPick. One per (user, champion), enforced by a unique constraint.
type ChampionPick struct {
	ID         int        `json:"id" db:"id"`
	UserID     int        `json:"user_id" db:"user_id"`
	ChampionID int        `json:"champion_id" db:"champion_id"`
	TeamID     int        `json:"team_id" db:"team_id"`
	Points     int        `json:"points" db:"points"`
	ComputedAt *time.Time `json:"computed_at,omitempty" db:"computed_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`

	User *User `json:"user,omitempty" db:"-"`
}
