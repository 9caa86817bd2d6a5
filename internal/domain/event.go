package domain

import "time"

type Event struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`

	OrganizerID uint       `json:"organizer_id"`
	FloorPlan   *FloorPlan `json:"floor_plan,omitempty"`

	Stands    []Stand     `json:"stands,omitempty"`
	Equipment []Equipment `json:"equipment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FloorPlan is the layout document stands are placed on. An event without a
// floor plan cannot open stand selection.
type FloorPlan struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}
