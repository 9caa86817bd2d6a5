package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&FloorPlan{},
		&Event{},
		&Stand{},
		&Equipment{},
		&Registration{},
		&RegistrationEquipment{},
		&Invoice{},
		&InvoiceItem{},
	)
}
