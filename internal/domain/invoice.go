package domain

import "time"

const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

const (
	InvoiceItemTypeStand     = "stand"
	InvoiceItemTypeEquipment = "equipment"
)

type InvoiceItem struct {
	ID        uint    `json:"id"`
	Type      string  `json:"type"` // "stand" or "equipment"
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Amount    float64 `json:"amount"`
}

type Invoice struct {
	ID             uint          `json:"id"`
	Number         string        `json:"number"`
	RegistrationID uint          `json:"registration_id"`
	Items          []InvoiceItem `json:"items"`
	Subtotal       float64       `json:"subtotal"`
	TaxRate        float64       `json:"tax_rate"`
	TaxAmount      float64       `json:"tax_amount"`
	Total          float64       `json:"total"`
	Status         string        `json:"status"`

	IssuedAt time.Time  `json:"issued_at"`
	PaidAt   *time.Time `json:"paid_at,omitempty"`
}
