package inventory

import (
	"errors"
	"time"
)

var ErrItemNotFound = errors.New("inventory item not found")

// Item is a stocked consumable. An item is low on stock when its quantity
// is at or below its threshold.
type Item struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit,omitempty"`
	Quantity     int       `json:"quantity"`
	LowThreshold int       `json:"low_threshold"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateInput applies only the fields that are set.
type UpdateInput struct {
	Name         *string `json:"name,omitempty"`
	Unit         *string `json:"unit,omitempty"`
	Quantity     *int    `json:"quantity,omitempty"`
	LowThreshold *int    `json:"low_threshold,omitempty"`
}
