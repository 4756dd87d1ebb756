package treatments

import "time"

// Treatment is reference data: a named procedure with a base cost.
type Treatment struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	BaseCost  float64   `json:"base_cost"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
