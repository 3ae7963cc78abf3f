package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client represents an artist or agency that buys packages and posts
type Client struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	AgencyName *string   `json:"agency_name,omitempty" db:"agency_name"`
	IsFrequent bool      `json:"is_frequent" db:"is_frequent"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

type CreateClientRequest struct {
	Name       string  `json:"name" validate:"required,max=200"`
	AgencyName *string `json:"agency_name" validate:"omitempty,max=200"`
	IsFrequent bool    `json:"is_frequent"`
}

// UpdateClientRequest only carries the mutable fields. Nil pointers leave the
// stored value untouched.
type UpdateClientRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	AgencyName *string `json:"agency_name" validate:"omitempty,max=200"`
	IsFrequent *bool   `json:"is_frequent"`
}
