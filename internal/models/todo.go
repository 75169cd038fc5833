package models

import "time"

// Todo is a single task item. Every todo belongs to exactly one user,
// fixed at creation; the owner id is never serialized to clients.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      int64     `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}
