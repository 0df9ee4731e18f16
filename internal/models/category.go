package models

import (
	"time"

	"github.com/google/uuid"
)

// LocalizedText holds an English/Arabic string pair.
type LocalizedText struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

// Category represents a top-level menu grouping. Items is nil until the
// category's items have been explicitly loaded; a loaded category with no
// items carries an empty non-nil slice.
type Category struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Order       int            `json:"order" db:"order"`
	MainImage   string         `json:"mainImage" db:"main_image"`
	Title       LocalizedText  `json:"title"`
	Description LocalizedText  `json:"description"`
	Tagline     *LocalizedText `json:"tagline,omitempty"`
	Extras      *LocalizedText `json:"extras,omitempty"`
	Items       []*MenuItem    `json:"items,omitempty" db:"-"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// CategoryData carries the writable fields for creating a category.
type CategoryData struct {
	Order       int            `json:"order"`
	MainImage   string         `json:"mainImage"`
	Title       LocalizedText  `json:"title"`
	Description LocalizedText  `json:"description"`
	Tagline     *LocalizedText `json:"tagline,omitempty"`
	Extras      *LocalizedText `json:"extras,omitempty"`
}

// CategoryUpdate is a partial update; nil fields are left unchanged.
type CategoryUpdate struct {
	Order       *int           `json:"order,omitempty"`
	MainImage   *string        `json:"mainImage,omitempty"`
	Title       *LocalizedText `json:"title,omitempty"`
	Description *LocalizedText `json:"description,omitempty"`
	Tagline     *LocalizedText `json:"tagline,omitempty"`
	Extras      *LocalizedText `json:"extras,omitempty"`
}
