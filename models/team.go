package models

import "time"

type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	BadgeKey  *string   `json:"-" db:"badge_key"`
	BadgeURL  *string   `json:"badge_url,omitempty" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
