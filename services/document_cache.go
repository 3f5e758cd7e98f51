package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tolvuleiga/utils"
)

const (
	signedURLTTL    = 5 * time.Minute
	backfillTimeout = 30 * time.Second
)

// DocumentCache serves receipt PDFs: a read-through cache over object
// storage with asynchronous write-back. Stored documents are treated as
// immutable; Regenerate replaces, it does not invalidate-then-fetch.
type DocumentCache struct {
	orders  *OrderService
	storage ObjectStorage
	bucket  string
}

func NewDocumentCache(orders *OrderService, storage ObjectStorage, bucket string) *DocumentCache {
	return &DocumentCache{orders: orders, storage: storage, bucket: bucket}
}

// GetDocument returns the receipt PDF for an order. A stored copy is served
// when it can be fetched; otherwise the receipt is rendered fresh, returned
// immediately, and backfilled into storage in the background. Two concurrent
// cold requests may both render; the last AttachDocument write wins, which is
// fine because documents are derived, not authoritative.
func (dc *DocumentCache) GetDocument(ctx context.Context, orderID string) ([]byte, string, error) {
	order, err := dc.orders.Get(ctx, orderID)
	if err != nil {
		return nil, "", err
	}

	if order.DocumentPath != nil {
		data, err := dc.storage.Download(ctx, dc.bucket, *order.DocumentPath)
		if err == nil {
			return data, ReceiptFilename(order), nil
		}
		utils.LogError(err, "cached receipt fetch for order "+orderID)
	}

	bundle, err := dc.orders.Bundle(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	data, filename, err := RenderReceipt(*bundle)
	if err != nil {
		return nil, "", err
	}

	// The caller already has their PDF; warming the cache is best effort and
	// must never block or fail the response.
	go dc.backfill(orderID, data)

	return data, filename, nil
}

func (dc *DocumentCache) backfill(orderID string, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			utils.LogPanic(r, "receipt backfill for order "+orderID)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), backfillTimeout)
	defer cancel()

	path := dc.objectPath(orderID)
	if err := dc.storage.Upload(ctx, dc.bucket, path, data, "application/pdf"); err != nil {
		utils.LogError(err, "receipt backfill upload for order "+orderID)
		return
	}
	if err := dc.orders.AttachDocument(ctx, orderID, path, time.Now()); err != nil {
		utils.LogError(err, "receipt backfill attach for order "+orderID)
	}
}

// Regenerate renders, uploads and attaches a fresh receipt synchronously and
// returns the bytes plus a short-lived signed URL. Used when an admin edit
// invalidates the stored document and the caller needs the new location.
func (dc *DocumentCache) Regenerate(ctx context.Context, orderID string) ([]byte, string, error) {
	bundle, err := dc.orders.Bundle(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	data, _, err := RenderReceipt(*bundle)
	if err != nil {
		return nil, "", err
	}

	path := dc.objectPath(orderID)
	if err := dc.storage.Upload(ctx, dc.bucket, path, data, "application/pdf"); err != nil {
		return nil, "", dependency("upload receipt", err)
	}
	if err := dc.orders.AttachDocument(ctx, orderID, path, time.Now()); err != nil {
		return nil, "", err
	}

	url, err := dc.signedURL(ctx, orderID, path)
	if err != nil {
		return nil, "", dependency("sign receipt url", err)
	}
	return data, url, nil
}

// signedURL memoizes the signed location in redis for the URL's own TTL so
// repeated admin edits within the window reuse one URL.
func (dc *DocumentCache) signedURL(ctx context.Context, orderID, path string) (string, error) {
	rdb := utils.GetRedis()
	key := "receipt_url:" + orderID + ":" + path

	if rdb != nil {
		if cached, err := rdb.Get(ctx, key).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}
	url, err := dc.storage.SignedURL(ctx, dc.bucket, path, signedURLTTL)
	if err != nil {
		return "", err
	}
	if rdb != nil {
		rdb.Set(ctx, key, url, signedURLTTL)
	}
	return url, nil
}

func (dc *DocumentCache) objectPath(orderID string) string {
	return orderID + "/" + uuid.NewString() + ".pdf"
}
