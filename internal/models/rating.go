package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a guest feedback entry. Ratings live in a flat collection with
// no relationship to categories or items.
type Rating struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Rating    int       `json:"rating" db:"rating"`
	Feedback  string    `json:"feedback" db:"feedback"`
	UserAgent *string   `json:"userAgent,omitempty" db:"user_agent"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// RatingInput is a rating submission before it is stored.
type RatingInput struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

// RatingStats aggregates all stored ratings.
type RatingStats struct {
	Total     int         `json:"total"`
	Average   float64     `json:"average"`
	Breakdown map[int]int `json:"breakdown"`
}
