package models

import "time"

// Product kinds. An order references exactly one PC or one console.
const (
	ProductKindPC      = "pc"
	ProductKindConsole = "console"
)

// PC is a rentable computer. PriceISK is the typed monthly base price;
// LegacyPrice keeps the original free-text field ("19.990 kr") the catalogue
// was imported from.
type PC struct {
	ID          string `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string `json:"name" gorm:"not null"`
	CPU         string `json:"cpu"`
	GPU         string `json:"gpu"`
	RAM         string `json:"ram"`
	Storage     string `json:"storage"`
	PriceISK    int64  `json:"price_isk" gorm:"not null;check:price_isk >= 0"`
	LegacyPrice string `json:"legacy_price"`
	ImageFolder string `json:"image_folder"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Console is a rentable games console. MaxExtraControllers caps the
// extra-controller line item at quote time.
type Console struct {
	ID                  string `json:"id" gorm:"primaryKey;type:uuid"`
	Name                string `json:"name" gorm:"not null"`
	Capacity            string `json:"capacity"`
	PriceISK            int64  `json:"price_isk" gorm:"not null;check:price_isk >= 0"`
	LegacyPrice         string `json:"legacy_price"`
	ControllerPriceISK  int64  `json:"controller_price_isk"`
	MaxExtraControllers int    `json:"max_extra_controllers" gorm:"default:0"`
	ImageFolder         string `json:"image_folder"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
