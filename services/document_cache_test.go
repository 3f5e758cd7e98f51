package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tolvuleiga/models"
)

func TestGetDocumentColdPathBackfills(t *testing.T) {
	db := newTestDB(t)
	storage := newMemStorage()
	orders := NewOrderService(db, storage, "receipts")
	cache := NewDocumentCache(orders, storage, "receipts")

	customer := seedCustomer(t, db)
	pc := seedPC(t, db)
	order := seedOrder(t, db, customer.ID, pc.ID)

	data, filename, err := cache.GetDocument(context.Background(), order.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, order.OrderNumber+".pdf", filename)
	assert.Equal(t, "%PDF", string(data[:4]))

	// The backfill runs detached from the request; give it a moment.
	var reloaded models.Order
	require.Eventually(t, func() bool {
		if err := db.First(&reloaded, "id = ?", order.ID).Error; err != nil {
			return false
		}
		return reloaded.DocumentPath != nil
	}, 3*time.Second, 20*time.Millisecond, "backfill should attach a document path")

	assert.NotNil(t, reloaded.DocumentGeneratedAt)
	stored, err := storage.Download(context.Background(), "receipts", *reloaded.DocumentPath)
	require.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestGetDocumentServesStoredCopy(t *testing.T) {
	db := newTestDB(t)
	storage := newMemStorage()
	orders := NewOrderService(db, storage, "receipts")
	cache := NewDocumentCache(orders, storage, "receipts")

	customer := seedCustomer(t, db)
	pc := seedPC(t, db)
	order := seedOrder(t, db, customer.ID, pc.ID)

	// Warm the cache synchronously.
	warmed, _, err := cache.Regenerate(context.Background(), order.ID)
	require.NoError(t, err)
	uploadsAfterWarm := storage.uploads

	data, _, err := cache.GetDocument(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, warmed, data)
	assert.Equal(t, uploadsAfterWarm, storage.uploads, "fast path must not re-upload")
}

func TestGetDocumentFallsBackWhenObjectMissing(t *testing.T) {
	db := newTestDB(t)
	storage := newMemStorage()
	orders := NewOrderService(db, storage, "receipts")
	cache := NewDocumentCache(orders, storage, "receipts")

	customer := seedCustomer(t, db)
	pc := seedPC(t, db)
	order := seedOrder(t, db, customer.ID, pc.ID)

	// Attach a path whose object was expired out of the bucket.
	require.NoError(t, orders.AttachDocument(context.Background(), order.ID, "gone.pdf", time.Now()))

	data, _, err := cache.GetDocument(context.Background(), order.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, data, "missing object falls back to a fresh render")
}

func TestRegenerateReturnsSignedURL(t *testing.T) {
	db := newTestDB(t)
	storage := newMemStorage()
	orders := NewOrderService(db, storage, "receipts")
	cache := NewDocumentCache(orders, storage, "receipts")

	customer := seedCustomer(t, db)
	pc := seedPC(t, db)
	order := seedOrder(t, db, customer.ID, pc.ID)

	data, url, err := cache.Regenerate(context.Background(), order.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, url, "https://storage.test/receipts/")

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	require.NotNil(t, reloaded.DocumentPath)
}

func TestGetDocumentUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	storage := newMemStorage()
	orders := NewOrderService(db, storage, "receipts")
	cache := NewDocumentCache(orders, storage, "receipts")

	_, _, err := cache.GetDocument(context.Background(), "3b2f1f6e-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}
