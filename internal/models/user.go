package models

import "time"

// User represents a registered account. Users are created through
// registration only; there is no update or delete path.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose this to the client
	CreatedAt      time.Time `json:"createdAt"`
}
