package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type ReviewRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

func (req *ReviewRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("approved", "rejected")),
		validation.Field(&req.Reason, validation.Length(0, 500)),
	)
}

type EquipmentQuantityItem struct {
	EquipmentID uint `json:"equipment_id" binding:"required"`
	Quantity    int  `json:"quantity" binding:"required,min=1"`
}

type SelectStandsRequest struct {
	StandIDs           []uint `json:"standIds"`
	SelectionCompleted bool   `json:"selectionCompleted"`
}

type SelectEquipmentRequest struct {
	EquipmentIDs        []uint                  `json:"equipmentIds"`
	SelectionCompleted  bool                    `json:"selectionCompleted"`
	EquipmentQuantities []EquipmentQuantityItem `json:"equipmentQuantities"`
}

func (req *SelectEquipmentRequest) Validate() error {
	for _, item := range req.EquipmentQuantities {
		if err := validation.ValidateStruct(
			&item,
			validation.Field(&item.EquipmentID, validation.Required, validation.Min(uint(1))),
			validation.Field(&item.Quantity, validation.Required, validation.Min(1)),
		); err != nil {
			return err
		}
	}

	return nil
}
