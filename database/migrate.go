package database

import (
	"tolvuleiga/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.PC{},
		&models.Console{},
		&models.Accessory{},
		&models.ProductAccessory{},
		&models.Order{},
		&models.ContactMessage{},
		&models.ExtensionRequest{},
	); err != nil {
		return err
	}

	// Rate-limit lookups read the newest row per IP.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_contact_ip_created ON contact_messages(ip, created_at DESC)`).Error; err != nil {
		return err
	}
	// Digest query: active orders ending soon.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_orders_status_rental_end ON orders(status, rental_end)`).Error; err != nil {
		return err
	}

	return nil
}
