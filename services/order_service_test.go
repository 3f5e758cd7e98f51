package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tolvuleiga/models"
)

func TestCreateOrderFromCheckout(t *testing.T) {
	db := newTestDB(t)
	storage := newMemStorage()
	orders := NewOrderService(db, storage, "receipts")

	customer := seedCustomer(t, db)
	pc := seedPC(t, db)

	// Offer a screen with this PC.
	screen := models.Accessory{ID: uuid.NewString(), Type: models.AccessoryTypeScreen, Name: "27\" skjár", PriceISK: 2000}
	require.NoError(t, db.Create(&screen).Error)
	require.NoError(t, db.Create(&models.ProductAccessory{
		ProductID:     pc.ID,
		ProductKind:   models.ProductKindPC,
		AccessoryType: models.AccessoryTypeScreen,
		AccessoryID:   screen.ID,
	}).Error)

	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	order, quote, err := orders.Create(context.Background(), customer.ID, models.CreateOrderRequest{
		ProductKind:    models.ProductKindPC,
		ProductID:      pc.ID,
		DurationMonths: 6,
		RentalStart:    start,
		WithScreen:     true,
		Insured:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPreparing, order.Status)
	assert.Len(t, order.OrderNumber, 8)
	assert.Equal(t, customer.ID, order.CustomerID)
	require.NotNil(t, order.PCID)
	assert.Equal(t, pc.ID, *order.PCID)
	assert.Nil(t, order.ConsoleID)
	assert.True(t, order.RentalEnd.After(order.RentalStart))
	assert.Equal(t, start.AddDate(0, 6, 0), order.RentalEnd)

	// 19990 at 6 months with a 2000 kr screen and insurance.
	assert.Equal(t, int64(22440), order.MonthlyPrice)
	assert.Equal(t, quote.MonthlyPrice, order.MonthlyPrice)

	// The full breakdown is snapshotted on the row.
	var snapshot Quote
	require.NoError(t, json.Unmarshal(order.QuoteSnapshot, &snapshot))
	assert.Equal(t, int64(18391), snapshot.DiscountedBase)
	assert.Equal(t, int64(2000), snapshot.AddOnSubtotal)
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, newMemStorage(), "receipts")
	customer := seedCustomer(t, db)
	pc := seedPC(t, db)

	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	_, _, err := orders.Create(context.Background(), customer.ID, models.CreateOrderRequest{
		ProductKind: models.ProductKindPC, ProductID: pc.ID, DurationMonths: 5, RentalStart: start,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = orders.Create(context.Background(), customer.ID, models.CreateOrderRequest{
		ProductKind: "laptop", ProductID: pc.ID, DurationMonths: 6, RentalStart: start,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = orders.Create(context.Background(), customer.ID, models.CreateOrderRequest{
		ProductKind: models.ProductKindPC, ProductID: uuid.NewString(), DurationMonths: 6, RentalStart: start,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = orders.Create(context.Background(), customer.ID, models.CreateOrderRequest{
		ProductKind: models.ProductKindPC, ProductID: pc.ID, DurationMonths: 6,
	})
	assert.ErrorIs(t, err, ErrValidation, "missing rental start")
}

func TestSetStatusAcceptsLegacyLabels(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, newMemStorage(), "receipts")
	customer := seedCustomer(t, db)
	pc := seedPC(t, db)
	order := seedOrder(t, db, customer.ID, pc.ID)

	updated, err := orders.SetStatus(context.Background(), order.ID, "Í gangi")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)

	// Any known status from any other; the console is trusted.
	updated, err = orders.SetStatus(context.Background(), order.ID, models.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, updated.Status)

	_, err = orders.SetStatus(context.Background(), order.ID, "shipped")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = orders.SetStatus(context.Background(), uuid.NewString(), models.StatusCompleted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteOrderRemovesCachedDocument(t *testing.T) {
	db := newTestDB(t)
	storage := newMemStorage()
	orders := NewOrderService(db, storage, "receipts")
	customer := seedCustomer(t, db)
	pc := seedPC(t, db)
	order := seedOrder(t, db, customer.ID, pc.ID)

	require.NoError(t, storage.Upload(context.Background(), "receipts", "doc.pdf", []byte("pdf"), "application/pdf"))
	require.NoError(t, orders.AttachDocument(context.Background(), order.ID, "doc.pdf", time.Now()))

	require.NoError(t, orders.Delete(context.Background(), order.ID))

	_, err := orders.Get(context.Background(), order.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = storage.Download(context.Background(), "receipts", "doc.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestAttachDocumentLastWriteWins(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, newMemStorage(), "receipts")
	customer := seedCustomer(t, db)
	pc := seedPC(t, db)
	order := seedOrder(t, db, customer.ID, pc.ID)

	require.NoError(t, orders.AttachDocument(context.Background(), order.ID, "first.pdf", time.Now()))
	require.NoError(t, orders.AttachDocument(context.Background(), order.ID, "second.pdf", time.Now()))

	reloaded, err := orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.DocumentPath)
	assert.Equal(t, "second.pdf", *reloaded.DocumentPath)

	err = orders.AttachDocument(context.Background(), uuid.NewString(), "x.pdf", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByCustomer(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, newMemStorage(), "receipts")
	customer := seedCustomer(t, db)
	other := models.User{ID: uuid.NewString(), Email: "other@example.is"}
	require.NoError(t, db.Create(&other).Error)
	pc := seedPC(t, db)

	seedOrder(t, db, customer.ID, pc.ID)
	seedOrder(t, db, customer.ID, pc.ID)
	seedOrder(t, db, other.ID, pc.ID)

	list, total, err := orders.ListByCustomer(context.Background(), customer.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)
}
