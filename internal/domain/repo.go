package domain

import "time"

// Repository represents a registered code repository owned by a user.
// Deleting the owning user cascades to its repositories, and deleting a
// repository cascades to its analysis reports.
type Repository struct {
	ID          string    `json:"id"          db:"id"`
	Name        string    `json:"name"        db:"name"`
	URL         string    `json:"url"         db:"url"`
	Description string    `json:"description" db:"description"`
	OwnerID     string    `json:"owner_id"    db:"owner_id"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
}
