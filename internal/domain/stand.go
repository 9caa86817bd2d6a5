package domain

import "time"

const (
	StandStatusAvailable = "available"
	StandStatusReserved  = "reserved"
)

type Stand struct {
	ID        uint     `json:"id"`
	EventID   uint     `json:"event_id"`
	Number    string   `json:"number"`
	Type      string   `json:"type"` // "standard", "corner", or "island"
	Area      float64  `json:"area"`
	BasePrice float64  `json:"base_price"`
	Status    string   `json:"status"`
	Features  []string `json:"features,omitempty"`

	// RegistrationID is set while the stand is held by a registration.
	RegistrationID *uint `json:"registration_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReservedByOther reports whether the stand is held by a registration other
// than the given one. Such a stand is not selectable.
func (s Stand) ReservedByOther(registrationID uint) bool {
	return s.Status == StandStatusReserved &&
		(s.RegistrationID == nil || *s.RegistrationID != registrationID)
}
