package domain

import "time"

type Equipment struct {
	ID      uint    `json:"id"`
	EventID uint    `json:"event_id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"` // "furniture", "electronics", "display", ...
	Price   float64 `json:"price"`
	Unit    string  `json:"unit"` // "piece", "day", "set"
	Stock   int     `json:"stock"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
