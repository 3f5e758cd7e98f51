package models

import (
	"time"
)

// User is a storefront customer. Profile fields mirror what the checkout
// collects; NationalID is the Icelandic kennitala.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid"`
	Email      string `json:"email" gorm:"uniqueIndex;not null"`
	Name       string `json:"name"`
	NationalID string `json:"national_id" gorm:"index"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Role       string `json:"role" gorm:"default:user"`

	// Set once the welcome email has gone out. Check-then-set; a duplicate
	// welcome under concurrent first requests is accepted.
	WelcomeSent bool `json:"welcome_sent" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
