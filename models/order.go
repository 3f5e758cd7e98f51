package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Order statuses. The admin UI historically used Icelandic labels, including
// two spellings of "in progress"; NormalizeStatus folds all of them onto
// these canonical values.
const (
	StatusPreparing  = "preparing"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var legacyStatusLabels = map[string]string{
	"undirbúningur": StatusPreparing,
	"undirbuningur": StatusPreparing,
	"í vinnslu":     StatusInProgress,
	"i vinnslu":     StatusInProgress,
	"í gangi":       StatusInProgress,
	"i gangi":       StatusInProgress,
	"lokið":         StatusCompleted,
	"lokid":         StatusCompleted,
	"hætt við":      StatusCancelled,
	"haett vid":     StatusCancelled,
}

// NormalizeStatus maps a status value, canonical or legacy Icelandic label,
// onto the canonical enum. The second result is false for unknown values.
func NormalizeStatus(s string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case StatusPreparing, StatusInProgress, StatusCompleted, StatusCancelled:
		return v, true
	}
	if canonical, ok := legacyStatusLabels[v]; ok {
		return canonical, true
	}
	return "", false
}

// StatusLabelIS returns the Icelandic label shown to customers and admins.
func StatusLabelIS(status string) string {
	switch status {
	case StatusPreparing:
		return "Undirbúningur"
	case StatusInProgress:
		return "Í vinnslu"
	case StatusCompleted:
		return "Lokið"
	case StatusCancelled:
		return "Hætt við"
	}
	return status
}

// Order is a rental order. Exactly one of PCID/ConsoleID is set. MonthlyPrice
// is the final rounded ISK amount copied from the quote at creation time;
// QuoteSnapshot keeps the full pricing breakdown for auditing.
type Order struct {
	ID          string `json:"id" gorm:"primaryKey;type:uuid"`
	OrderNumber string `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerID  string `json:"customer_id" gorm:"type:uuid;not null;index:idx_customer_orders"`

	PCID      *string `json:"pc_id,omitempty" gorm:"type:uuid;index"`
	ConsoleID *string `json:"console_id,omitempty" gorm:"type:uuid;index"`

	Status      string    `json:"status" gorm:"default:'preparing';index:idx_status"`
	RentalStart time.Time `json:"rental_start" gorm:"not null"`
	RentalEnd   time.Time `json:"rental_end" gorm:"not null"`

	DurationMonths   int   `json:"duration_months" gorm:"not null"`
	MonthlyPrice     int64 `json:"monthly_price" gorm:"not null;check:monthly_price >= 0"`
	WithScreen       bool  `json:"with_screen"`
	WithKeyboard     bool  `json:"with_keyboard"`
	WithMouse        bool  `json:"with_mouse"`
	ExtraControllers int   `json:"extra_controllers" gorm:"default:0"`
	Insured          bool  `json:"insured"`

	QuoteSnapshot datatypes.JSON `json:"quote_snapshot,omitempty"`

	// Set by the document cache after the first successful render+upload.
	DocumentPath        *string    `json:"document_path,omitempty"`
	DocumentGeneratedAt *time.Time `json:"document_generated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer User `json:"-" gorm:"foreignKey:CustomerID;references:ID"`
}

// ProductKind reports which product reference is set.
func (o *Order) ProductKind() string {
	if o.PCID != nil {
		return ProductKindPC
	}
	return ProductKindConsole
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	ProductKind      string    `json:"product_kind" binding:"required"`
	ProductID        string    `json:"product_id" binding:"required"`
	DurationMonths   int       `json:"duration_months" binding:"required"`
	RentalStart      time.Time `json:"rental_start"`
	WithScreen       bool      `json:"with_screen"`
	WithKeyboard     bool      `json:"with_keyboard"`
	WithMouse        bool      `json:"with_mouse"`
	ExtraControllers int       `json:"extra_controllers"`
	Insured          bool      `json:"insured"`
}

// OrderResponse is the order shape returned to clients.
type OrderResponse struct {
	ID             string     `json:"id"`
	OrderNumber    string     `json:"order_number"`
	CustomerID     string     `json:"customer_id"`
	ProductKind    string     `json:"product_kind"`
	ProductID      string     `json:"product_id"`
	Status         string     `json:"status"`
	StatusLabel    string     `json:"status_label"`
	RentalStart    time.Time  `json:"rental_start"`
	RentalEnd      time.Time  `json:"rental_end"`
	DurationMonths int        `json:"duration_months"`
	MonthlyPrice   int64      `json:"monthly_price"`
	Insured        bool       `json:"insured"`
	DocumentAt     *time.Time `json:"document_generated_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func NewOrderResponse(o *Order) OrderResponse {
	productID := ""
	if o.PCID != nil {
		productID = *o.PCID
	} else if o.ConsoleID != nil {
		productID = *o.ConsoleID
	}
	return OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerID:     o.CustomerID,
		ProductKind:    o.ProductKind(),
		ProductID:      productID,
		Status:         o.Status,
		StatusLabel:    StatusLabelIS(o.Status),
		RentalStart:    o.RentalStart,
		RentalEnd:      o.RentalEnd,
		DurationMonths: o.DurationMonths,
		MonthlyPrice:   o.MonthlyPrice,
		Insured:        o.Insured,
		DocumentAt:     o.DocumentGeneratedAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// OrderListResponse is a paginated order list.
type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
