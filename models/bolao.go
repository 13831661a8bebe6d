package models

import "time"

// PointConfig carries the per-bolão point values for each scoring tier.
// DiferencaGols is a legacy column: when left at zero the plain Vencedor
// value is used in its place.
type PointConfig struct {
	PlacarExato    int `json:"placar_exato" db:"pts_placar_exato"`
	PlacarVencedor int `json:"placar_vencedor" db:"pts_placar_vencedor"`
	DiferencaGols  int `json:"diferenca_gols" db:"pts_diferenca_gols"`
	PlacarPerdedor int `json:"placar_perdedor" db:"pts_placar_perdedor"`
	Vencedor       int `json:"vencedor" db:"pts_vencedor"`
	Empate         int `json:"empate" db:"pts_empate"`
	Penaltis       int `json:"penaltis" db:"pts_penaltis"`
	Campeao        int `json:"campeao" db:"pts_campeao"`
}

type Bolao struct {
	ID          int         `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description *string     `json:"description,omitempty" db:"description"`
	OwnerID     int         `json:"owner_id" db:"owner_id"`
	Points      PointConfig `json:"points"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`

	Participants []User `json:"participants,omitempty" db:"-"`
}
