package domain

import "time"

// User represents a registered account that owns repositories.
type User struct {
	ID             string    `json:"id"         db:"id"`
	Email          string    `json:"email"      db:"email"`
	HashedPassword string    `json:"-"          db:"hashed_password"` // never serialized to JSON
	FullName       string    `json:"full_name"  db:"full_name"`
	IsActive       bool      `json:"is_active"  db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
