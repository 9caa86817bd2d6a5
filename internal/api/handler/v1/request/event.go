package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" binding:"required" format:"DD/MM/YYYY"`
	EndDate     string `json:"end_date" binding:"required" format:"DD/MM/YYYY"`

	FloorPlanName     string `json:"floor_plan_name"`
	FloorPlanImageURL string `json:"floor_plan_image_url"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Location, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.FloorPlanName, validation.Length(0, 100)),
	)
}

type CreateStandRequest struct {
	Number    string   `json:"number" binding:"required"`
	Type      string   `json:"type" binding:"required"`
	Area      float64  `json:"area" binding:"required"`
	BasePrice float64  `json:"base_price" binding:"required"`
	Features  []string `json:"features"`
}

func (req *CreateStandRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Number, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.Type, validation.Required, validation.In("standard", "corner", "island")),
		validation.Field(&req.Area, validation.Required, validation.Min(1.0)),
		validation.Field(&req.BasePrice, validation.Required, validation.Min(0.01)),
	)
}

type CreateEquipmentRequest struct {
	Name  string  `json:"name" binding:"required"`
	Type  string  `json:"type" binding:"required"`
	Price float64 `json:"price" binding:"required"`
	Unit  string  `json:"unit" binding:"required"`
	Stock int     `json:"stock"`
}

func (req *CreateEquipmentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Type, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Price, validation.Required, validation.Min(0.01)),
		validation.Field(&req.Unit, validation.Required, validation.In("piece", "day", "set")),
		validation.Field(&req.Stock, validation.Min(0)),
	)
}
