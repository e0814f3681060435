package model

import (
	"fmt"
	"time"
)

// Item represents a single lost-or-found report. Items are append-only:
// once reported they are never edited or deleted.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Location    string    `json:"location,omitempty"`
	Date        string    `json:"date,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Item types. The schema enforces the same two values.
const (
	TypeLost  = "lost"
	TypeFound = "found"
)

// ParseType validates a user-supplied item type.
func ParseType(s string) (string, error) {
	switch s {
	case TypeLost, TypeFound:
		return s, nil
	default:
		return "", fmt.Errorf("invalid item type %q (must be %q or %q)", s, TypeLost, TypeFound)
	}
}
