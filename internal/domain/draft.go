package domain

// Wizard steps of the selection flow.
const (
	StepStands    = 0
	StepEquipment = 1
	StepReview    = 2
)

// Draft is the not-yet-submitted selection state of one registration. It is
// session-scoped and owned by the draft store, never by the database.
type Draft struct {
	RegistrationID uint         `json:"registration_id"`
	Step           int          `json:"step"`
	StandIDs       []uint       `json:"stand_ids"`
	EquipmentIDs   []uint       `json:"equipment_ids"`
	Quantities     map[uint]int `json:"quantities"`
}

func NewDraft(registrationID uint) Draft {
	return Draft{
		RegistrationID: registrationID,
		Step:           StepStands,
		StandIDs:       []uint{},
		EquipmentIDs:   []uint{},
		Quantities:     map[uint]int{},
	}
}

func (d Draft) HasStand(id uint) bool {
	for _, standID := range d.StandIDs {
		if standID == id {
			return true
		}
	}

	return false
}

func (d Draft) HasEquipment(id uint) bool {
	for _, equipmentID := range d.EquipmentIDs {
		if equipmentID == id {
			return true
		}
	}

	return false
}
