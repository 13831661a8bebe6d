package models

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleJogador UserRole = "jogador"
)

func (r UserRole) IsAdmin() bool { return r == RoleAdmin }

type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
