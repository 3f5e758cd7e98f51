package models

import "time"

// Accessory types form a closed set. The old storefront kept one link table
// per category; here a single typed relation replaces that fan-out.
const (
	AccessoryTypeScreen   = "screen"
	AccessoryTypeKeyboard = "keyboard"
	AccessoryTypeMouse    = "mouse"
)

func ValidAccessoryType(t string) bool {
	switch t {
	case AccessoryTypeScreen, AccessoryTypeKeyboard, AccessoryTypeMouse:
		return true
	}
	return false
}

type Accessory struct {
	ID          string `json:"id" gorm:"primaryKey;type:uuid"`
	Type        string `json:"type" gorm:"type:varchar(16);not null;index"`
	Name        string `json:"name" gorm:"not null"`
	PriceISK    int64  `json:"price_isk" gorm:"not null;check:price_isk >= 0"`
	LegacyPrice string `json:"legacy_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductAccessory links a product to the accessory offered with it.
// (productID, accessoryType) resolves which accessory a checkout toggle adds.
type ProductAccessory struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	ProductID     string `json:"product_id" gorm:"type:uuid;not null;index:idx_product_accessory"`
	ProductKind   string `json:"product_kind" gorm:"type:varchar(16);not null;index:idx_product_accessory"`
	AccessoryType string `json:"accessory_type" gorm:"type:varchar(16);not null"`
	AccessoryID   string `json:"accessory_id" gorm:"type:uuid;not null"`

	Accessory Accessory `json:"accessory,omitempty" gorm:"foreignKey:AccessoryID;references:ID"`
}
