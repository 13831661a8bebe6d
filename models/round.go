package models

import "time"

// Round (rodada) groups matches and is reusable across bolões.
type Round struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
