package models

import "time"

// ContactMessage is a persisted contact-form submission. The per-IP rate
// limit is checked against the newest row for that IP.
type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	IP        string    `json:"ip" gorm:"type:varchar(64);not null;index:idx_contact_ip"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// ContactRequest is the contact-form payload.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}
