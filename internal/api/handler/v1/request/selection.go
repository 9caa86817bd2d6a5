package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (req *SetQuantityRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}

type RetreatRequest struct {
	ToStep *int `json:"to_step"`
}
