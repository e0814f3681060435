package model

import "time"

// User represents a registered account. Items stay anonymous once created,
// so accounts exist only to gate item submission.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
