package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tolvuleiga/models"
	"tolvuleiga/utils"
)

var testDBCounter int

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBCounter++
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PC{},
		&models.Console{},
		&models.Accessory{},
		&models.ProductAccessory{},
		&models.Order{},
		&models.ContactMessage{},
		&models.ExtensionRequest{},
	))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{
		ID:         uuid.NewString(),
		Email:      "jona@example.is",
		Name:       "Jóna Jónsdóttir",
		NationalID: "0101902989",
		Phone:      "555 1234",
		Address:    "Laugavegur 1",
		City:       "Reykjavík",
		PostalCode: "101",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedPC(t *testing.T, db *gorm.DB) *models.PC {
	t.Helper()
	pc := models.PC{
		ID:       uuid.NewString(),
		Name:     "Leigutölva Pro",
		CPU:      "Ryzen 7 7700X",
		GPU:      "RTX 4070 Super",
		RAM:      "32GB",
		Storage:  "1TB NVMe",
		PriceISK: 19990,
	}
	require.NoError(t, db.Create(&pc).Error)
	return &pc
}

func seedOrder(t *testing.T, db *gorm.DB, customerID, pcID string) *models.Order {
	t.Helper()
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	order := models.Order{
		ID:             uuid.NewString(),
		OrderNumber:    utils.GenerateOrderNumber(),
		CustomerID:     customerID,
		PCID:           &pcID,
		Status:         models.StatusPreparing,
		RentalStart:    start,
		RentalEnd:      utils.AddMonthsClamped(start, 6),
		DurationMonths: 6,
		MonthlyPrice:   22440,
		Insured:        true,
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}

// memStorage is an in-memory ObjectStorage for tests.
type memStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	downloads int
	uploads   int
	failNext  error
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) key(bucket, path string) string { return bucket + "/" + path }

func (m *memStorage) Upload(_ context.Context, bucket, path string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.uploads++
	cp := make([]byte, len(data))
	copy(cp, data)
	m.objects[m.key(bucket, path)] = cp
	return nil
}

func (m *memStorage) Download(_ context.Context, bucket, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloads++
	data, ok := m.objects[m.key(bucket, path)]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return data, nil
}

func (m *memStorage) Delete(_ context.Context, bucket string, paths []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range paths {
		delete(m.objects, m.key(bucket, p))
	}
	return nil
}

func (m *memStorage) SignedURL(_ context.Context, bucket, path string, _ time.Duration) (string, error) {
	return "https://storage.test/" + bucket + "/" + path + "?sig=abc", nil
}

func (m *memStorage) ListFolder(_ context.Context, bucket, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.objects {
		if len(k) > len(bucket)+1 && k[:len(bucket)+1] == bucket+"/" {
			keys = append(keys, k[len(bucket)+1:])
		}
	}
	return keys, nil
}

// sentMail is one captured Send call.
type sentMail struct {
	To          string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// memMailer captures outgoing mail.
type memMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

func (m *memMailer) Send(to, subject, textBody, htmlBody string, attachments ...Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Text: textBody, HTML: htmlBody, Attachments: attachments})
	return nil
}

func (m *memMailer) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentMail, len(m.sent))
	copy(out, m.sent)
	return out
}
