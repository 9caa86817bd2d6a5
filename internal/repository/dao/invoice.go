package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrInvoiceExists   = errors.New("invoice already exists for this registration")
)

type Invoice struct {
	ID             uint          `gorm:"primaryKey"`
	Number         string        `gorm:"unique;not null"`
	RegistrationID uint          `gorm:"not null;uniqueIndex:uni_invoices_registration"`
	Items          []InvoiceItem `gorm:"foreignKey:InvoiceID"`
	Subtotal       float64       `gorm:"not null"`
	TaxRate        float64       `gorm:"not null"`
	TaxAmount      float64       `gorm:"not null"`
	Total          float64       `gorm:"not null"`
	Status         string        `gorm:"not null;default:pending"`

	IssuedAt time.Time `gorm:"not null"`
	PaidAt   *time.Time
}

type InvoiceItem struct {
	ID        uint    `gorm:"primaryKey"`
	InvoiceID uint    `gorm:"not null;index"`
	Type      string  `gorm:"not null"` // "stand" or "equipment"
	Name      string  `gorm:"not null"`
	Quantity  int     `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"`
	Amount    float64 `gorm:"not null"`
}

type InvoiceDAO struct {
	db *gorm.DB
}

func NewInvoiceDAO(db *gorm.DB) *InvoiceDAO {
	return &InvoiceDAO{
		db: db,
	}
}

func (d *InvoiceDAO) Insert(ctx context.Context, invoice Invoice) (Invoice, error) {
	result := d.db.WithContext(ctx).Create(&invoice)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_invoices_registration"`) {
			return Invoice{}, ErrInvoiceExists
		}

		return Invoice{}, result.Error
	}

	return invoice, nil
}

func (d *InvoiceDAO) FindByID(ctx context.Context, id uint) (Invoice, error) {
	var invoice Invoice

	result := d.db.WithContext(ctx).Preload("Items").First(&invoice, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Invoice{}, ErrInvoiceNotFound
		}

		return Invoice{}, result.Error
	}

	return invoice, nil
}

func (d *InvoiceDAO) FindByRegistrationID(ctx context.Context, registrationID uint) (Invoice, error) {
	var invoice Invoice

	result := d.db.WithContext(ctx).
		Preload("Items").
		Where("registration_id = ?", registrationID).
		First(&invoice)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Invoice{}, ErrInvoiceNotFound
		}

		return Invoice{}, result.Error
	}

	return invoice, nil
}

func (d *InvoiceDAO) MarkPaid(ctx context.Context, id uint, paidAt time.Time) error {
	result := d.db.WithContext(ctx).
		Model(&Invoice{}).
		Where("id = ? AND status = ?", id, "pending").
		Updates(map[string]interface{}{
			"status":  "paid",
			"paid_at": paidAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}

	return nil
}
