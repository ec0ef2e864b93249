package domain

import "time"

// Matchmaker is a staff account. Every prospect and member is assigned to
// exactly one matchmaker, who owns all workflow actions for that person.
type Matchmaker struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
