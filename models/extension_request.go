package models

import "time"

// ExtensionRequest records a customer's ask to extend a rental. It never
// changes the order itself; an operator applies or rejects it.
type ExtensionRequest struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID      string    `json:"order_id" gorm:"type:uuid;not null;index"`
	CustomerID   string    `json:"customer_id" gorm:"type:uuid;not null;index"`
	Months       int       `json:"months" gorm:"not null"`
	CurrentEnd   time.Time `json:"current_end" gorm:"not null"`
	RequestedEnd time.Time `json:"requested_end" gorm:"not null"`
	Status       string    `json:"status" gorm:"default:'pending';index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Order Order `json:"-" gorm:"foreignKey:OrderID;references:ID"`
}

// ExtensionRequestInput is the customer-facing payload.
type ExtensionRequestInput struct {
	Months int `json:"months" binding:"required"`
}
