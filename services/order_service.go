package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tolvuleiga/models"
	"tolvuleiga/utils"
)

// orderNumberAttempts bounds the collision retry loop at creation time. The
// code space is 32^8 so a second attempt is already rare.
const orderNumberAttempts = 5

// OrderService owns the order record lifecycle.
type OrderService struct {
	db             *gorm.DB
	storage        ObjectStorage
	receiptsBucket string
}

func NewOrderService(db *gorm.DB, storage ObjectStorage, receiptsBucket string) *OrderService {
	return &OrderService{db: db, storage: storage, receiptsBucket: receiptsBucket}
}

// Create prices and persists a new order in the preparing state. The order
// row write is the commit point; nothing else is persisted before it
// succeeds. Returns the created order together with its quote.
func (s *OrderService) Create(ctx context.Context, customerID string, req models.CreateOrderRequest) (*models.Order, *Quote, error) {
	if !ValidDuration(req.DurationMonths) {
		return nil, nil, validation("duration must be 1, 3, 6 or 12 months, got %d", req.DurationMonths)
	}
	if req.RentalStart.IsZero() {
		return nil, nil, validation("rental start is required")
	}

	in, err := s.buildQuoteInput(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	quote, err := ComputeQuote(*in)
	if err != nil {
		return nil, nil, err
	}

	rentalEnd := utils.AddMonthsClamped(req.RentalStart, req.DurationMonths)
	if !rentalEnd.After(req.RentalStart) {
		return nil, nil, validation("rental end must be after rental start")
	}

	snapshot, err := json.Marshal(quote)
	if err != nil {
		return nil, nil, dependency("marshal quote", err)
	}

	order := models.Order{
		ID:               uuid.NewString(),
		CustomerID:       customerID,
		Status:           models.StatusPreparing,
		RentalStart:      req.RentalStart,
		RentalEnd:        rentalEnd,
		DurationMonths:   req.DurationMonths,
		MonthlyPrice:     quote.MonthlyPrice,
		WithScreen:       req.WithScreen,
		WithKeyboard:     req.WithKeyboard,
		WithMouse:        req.WithMouse,
		ExtraControllers: clampControllers(req.ExtraControllers, in.MaxControllers),
		Insured:          req.Insured,
		QuoteSnapshot:    snapshot,
	}
	if req.ProductKind == models.ProductKindPC {
		order.PCID = &req.ProductID
	} else {
		order.ConsoleID = &req.ProductID
	}

	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = utils.GenerateOrderNumber()
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Order{}).
			Where("order_number = ?", order.OrderNumber).Count(&count).Error; err != nil {
			return nil, nil, dependency("check order number", err)
		}
		if count == 0 {
			break
		}
	}

	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, nil, dependency("create order", err)
	}
	return &order, &quote, nil
}

// Quote prices a selection without creating anything. Backs the quote
// endpoint so every page shows the same numbers the checkout will commit.
func (s *OrderService) Quote(ctx context.Context, req models.CreateOrderRequest) (*Quote, error) {
	if !ValidDuration(req.DurationMonths) {
		return nil, validation("duration must be 1, 3, 6 or 12 months, got %d", req.DurationMonths)
	}
	in, err := s.buildQuoteInput(ctx, req)
	if err != nil {
		return nil, err
	}
	quote, err := ComputeQuote(*in)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// buildQuoteInput loads the product and resolves selected accessory prices
// through the product/accessory relation.
func (s *OrderService) buildQuoteInput(ctx context.Context, req models.CreateOrderRequest) (*QuoteInput, error) {
	in := QuoteInput{
		DurationMonths:  req.DurationMonths,
		ControllerCount: req.ExtraControllers,
		Insured:         req.Insured,
	}

	switch req.ProductKind {
	case models.ProductKindPC:
		var pc models.PC
		if err := s.db.WithContext(ctx).First(&pc, "id = ?", req.ProductID).Error; err != nil {
			return nil, asLookupError("load pc", err)
		}
		in.BasePrice = pc.PriceISK
	case models.ProductKindConsole:
		var console models.Console
		if err := s.db.WithContext(ctx).First(&console, "id = ?", req.ProductID).Error; err != nil {
			return nil, asLookupError("load console", err)
		}
		in.BasePrice = console.PriceISK
		in.ControllerUnitPrice = console.ControllerPriceISK
		in.MaxControllers = console.MaxExtraControllers
	default:
		return nil, validation("product kind must be %q or %q", models.ProductKindPC, models.ProductKindConsole)
	}

	selected := map[string]bool{
		models.AccessoryTypeScreen:   req.WithScreen,
		models.AccessoryTypeKeyboard: req.WithKeyboard,
		models.AccessoryTypeMouse:    req.WithMouse,
	}
	for accType, on := range selected {
		if !on {
			continue
		}
		price, err := s.accessoryPrice(ctx, req.ProductID, req.ProductKind, accType)
		if err != nil {
			return nil, err
		}
		in.AddOnPrices = append(in.AddOnPrices, price)
	}
	return &in, nil
}

// accessoryPrice resolves the price of the accessory offered with a product.
// A product without a link row for that type contributes nothing; the toggle
// simply has no effect (matches the storefront, which never shows toggles
// for missing accessories).
func (s *OrderService) accessoryPrice(ctx context.Context, productID, productKind, accessoryType string) (int64, error) {
	var link models.ProductAccessory
	err := s.db.WithContext(ctx).
		Preload("Accessory").
		Where("product_id = ? AND product_kind = ? AND accessory_type = ?", productID, productKind, accessoryType).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, dependency("load accessory", err)
	}
	return link.Accessory.PriceISK, nil
}

func clampControllers(count, max int) int {
	if count < 0 {
		return 0
	}
	if count > max {
		return max
	}
	return count
}

// Get returns one order by id.
func (s *OrderService) Get(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		return nil, asLookupError("load order", err)
	}
	return &order, nil
}

// ListByCustomer returns a customer's orders, newest first.
func (s *OrderService) ListByCustomer(ctx context.Context, customerID string, page, limit int) ([]models.Order, int64, error) {
	return s.list(ctx, s.db.WithContext(ctx).Model(&models.Order{}).Where("customer_id = ?", customerID), page, limit)
}

// ListAll returns all orders for the admin console, optionally filtered by
// status, newest first.
func (s *OrderService) ListAll(ctx context.Context, status string, page, limit int) ([]models.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		canonical, ok := models.NormalizeStatus(status)
		if !ok {
			return nil, 0, validation("unknown status %q", status)
		}
		query = query.Where("status = ?", canonical)
	}
	return s.list(ctx, query, page, limit)
}

func (s *OrderService) list(ctx context.Context, query *gorm.DB, page, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dependency("count orders", err)
	}
	var orders []models.Order
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, dependency("list orders", err)
	}
	return orders, total, nil
}

// SetStatus applies an operator-chosen status. Any known status is accepted
// from any other; the admin console is trusted to drive the lifecycle.
func (s *OrderService) SetStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	canonical, ok := models.NormalizeStatus(status)
	if !ok {
		return nil, validation("unknown status %q", status)
	}
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Status = canonical
	if err := s.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, dependency("update status", err)
	}
	return order, nil
}

// AttachDocument records the stored receipt location. Called by the document
// cache after a successful render+upload; last write wins.
func (s *OrderService) AttachDocument(ctx context.Context, orderID, path string, generatedAt time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"document_path":         path,
			"document_generated_at": generatedAt,
		})
	if res.Error != nil {
		return dependency("attach document", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an order. The cached receipt object is deleted first on a
// best-effort basis; a storage failure never blocks deleting the row.
func (s *OrderService) Delete(ctx context.Context, orderID string) error {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if order.DocumentPath != nil && s.storage != nil {
		if err := s.storage.Delete(ctx, s.receiptsBucket, []string{*order.DocumentPath}); err != nil {
			utils.LogError(err, "delete receipt object for order "+orderID)
		}
	}
	if err := s.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", orderID).Error; err != nil {
		return dependency("delete order", err)
	}
	return nil
}

// Bundle assembles the ephemeral order/customer/product join used by the
// document renderer.
func (s *OrderService) Bundle(ctx context.Context, orderID string) (*OrderBundle, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var customer models.User
	if err := s.db.WithContext(ctx).First(&customer, "id = ?", order.CustomerID).Error; err != nil {
		return nil, asLookupError("load customer", err)
	}

	bundle := OrderBundle{Order: *order, Customer: customer}
	if order.PCID != nil {
		var pc models.PC
		if err := s.db.WithContext(ctx).First(&pc, "id = ?", *order.PCID).Error; err != nil {
			return nil, asLookupError("load pc", err)
		}
		bundle.ProductName = pc.Name
		bundle.ProductKind = models.ProductKindPC
		bundle.Specs = []SpecLine{
			{Label: "Örgjörvi", Value: pc.CPU},
			{Label: "Skjákort", Value: pc.GPU},
			{Label: "Vinnsluminni", Value: pc.RAM},
			{Label: "Geymslupláss", Value: pc.Storage},
		}
	} else if order.ConsoleID != nil {
		var console models.Console
		if err := s.db.WithContext(ctx).First(&console, "id = ?", *order.ConsoleID).Error; err != nil {
			return nil, asLookupError("load console", err)
		}
		bundle.ProductName = console.Name
		bundle.ProductKind = models.ProductKindConsole
		bundle.Specs = []SpecLine{
			{Label: "Geymslupláss", Value: console.Capacity},
		}
	}
	return &bundle, nil
}

func asLookupError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return dependency(op, err)
}
