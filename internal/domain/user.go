package domain

import "time"

const (
	RoleExhibitor = "exhibitor"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

type User struct {
	ID uint `json:"id"`

	Email    string `json:"email"`
	Password string `json:"-"`

	Role    string `json:"role"` // "exhibitor", "organizer", or "admin"
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
