package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tolvuleiga/models"
)

func TestEndingRentalsDigest(t *testing.T) {
	db := newTestDB(t)
	mailer := &memMailer{}
	customer := seedCustomer(t, db)
	pc := seedPC(t, db)

	setEnd := func(order *models.Order, status string, end time.Time) {
		order.Status = status
		order.RentalEnd = end
		require.NoError(t, db.Save(order).Error)
	}

	now := time.Now()
	ending := seedOrder(t, db, customer.ID, pc.ID)
	setEnd(ending, models.StatusInProgress, now.AddDate(0, 0, 3))

	endingToo := seedOrder(t, db, customer.ID, pc.ID)
	setEnd(endingToo, models.StatusPreparing, now.AddDate(0, 0, 6))

	farOff := seedOrder(t, db, customer.ID, pc.ID)
	setEnd(farOff, models.StatusInProgress, now.AddDate(0, 1, 0))

	done := seedOrder(t, db, customer.ID, pc.ID)
	setEnd(done, models.StatusCompleted, now.AddDate(0, 0, 2))

	require.NoError(t, sendEndingRentalsDigest(db, mailer, "admin@tolvuleiga.is"))

	sent := mailer.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "admin@tolvuleiga.is", sent[0].To)
	assert.Contains(t, sent[0].Text, "2")
	assert.Contains(t, sent[0].Text, ending.OrderNumber)
	assert.Contains(t, sent[0].Text, endingToo.OrderNumber)
	assert.NotContains(t, sent[0].Text, farOff.OrderNumber)
	assert.NotContains(t, sent[0].Text, done.OrderNumber)
}

func TestEndingRentalsDigestNothingEnding(t *testing.T) {
	db := newTestDB(t)
	mailer := &memMailer{}

	// An order well in the future only.
	customer := models.User{ID: uuid.NewString(), Email: "c@example.is"}
	require.NoError(t, db.Create(&customer).Error)
	pc := seedPC(t, db)
	order := seedOrder(t, db, customer.ID, pc.ID)
	order.RentalEnd = time.Now().AddDate(0, 2, 0)
	require.NoError(t, db.Save(order).Error)

	require.NoError(t, sendEndingRentalsDigest(db, mailer, "admin@tolvuleiga.is"))
	assert.Empty(t, mailer.all())
}
