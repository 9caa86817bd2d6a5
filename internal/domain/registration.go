package domain

import "time"

const (
	RegistrationStatusPending   = "pending"
	RegistrationStatusApproved  = "approved"
	RegistrationStatusRejected  = "rejected"
	RegistrationStatusCancelled = "cancelled"
	RegistrationStatusCompleted = "completed"
)

// legalTransitions enumerates every status change a registration may make.
// Rejected, cancelled and completed are terminal.
var legalTransitions = map[string][]string{
	RegistrationStatusPending:  {RegistrationStatusApproved, RegistrationStatusRejected},
	RegistrationStatusApproved: {RegistrationStatusCompleted, RegistrationStatusCancelled},
}

// CanTransition reports whether a registration in status from may move to status to.
func CanTransition(from, to string) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

type EquipmentQuantity struct {
	EquipmentID uint `json:"equipment_id"`
	Quantity    int  `json:"quantity"`
}

type Registration struct {
	ID          uint   `json:"id"`
	EventID     uint   `json:"event_id"`
	ExhibitorID uint   `json:"exhibitor_id"`
	Status      string `json:"status"`

	Stands                  []Stand `json:"stands,omitempty"`
	StandSelectionCompleted bool    `json:"stand_selection_completed"`

	Equipment                   []Equipment         `json:"equipment,omitempty"`
	EquipmentQuantities         []EquipmentQuantity `json:"equipment_quantities,omitempty"`
	EquipmentSelectionCompleted bool                `json:"equipment_selection_completed"`

	ApprovalDate     *time.Time `json:"approval_date,omitempty"`
	RejectionDate    *time.Time `json:"rejection_date,omitempty"`
	RejectionReason  string     `json:"rejection_reason,omitempty"`
	CancellationDate *time.Time `json:"cancellation_date,omitempty"`
	CompletionDate   *time.Time `json:"completion_date,omitempty"`

	InvoiceID *uint `json:"invoice_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SelectionOpen reports whether stand/equipment selection may still be
// mutated. Only an approved, not yet completed registration is mutable.
func (r Registration) SelectionOpen() bool {
	return r.Status == RegistrationStatusApproved
}

// ReadyToComplete reports whether both selection categories are finalized.
func (r Registration) ReadyToComplete() bool {
	return r.StandSelectionCompleted && r.EquipmentSelectionCompleted
}
