package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tolvuleiga/models"
	"tolvuleiga/utils"
)

// welcomeGuardTTL covers the window between the redis guard and the
// persisted flag; long enough for any burst of first requests.
const welcomeGuardTTL = time.Hour

// Notifier sends the transactional emails of the fulfillment pipeline. Each
// job is independently triggered, never queued and never retried
// automatically.
type Notifier struct {
	db            *gorm.DB
	mailer        Mailer
	cache         *DocumentCache
	orders        *OrderService
	adminEmail    string
	siteBaseURL   string
	contactWindow time.Duration
}

func NewNotifier(db *gorm.DB, mailer Mailer, cache *DocumentCache, orders *OrderService, adminEmail, siteBaseURL string, contactWindow time.Duration) *Notifier {
	return &Notifier{
		db:            db,
		mailer:        mailer,
		cache:         cache,
		orders:        orders,
		adminEmail:    adminEmail,
		siteBaseURL:   siteBaseURL,
		contactWindow: contactWindow,
	}
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!doctype html>
<html lang="is">
<body style="font-family:Arial,sans-serif;color:#1f2933">
  <h2>Takk fyrir pöntunina!</h2>
  <p>Pöntun <strong class="order-number">{{.OrderNumber}}</strong> hefur verið móttekin og er í undirbúningi.</p>
  <table cellpadding="6" style="border-collapse:collapse">
    <tr><td><strong>Vara</strong></td><td class="product">{{.ProductName}}</td></tr>
    <tr><td><strong>Leigutímabil</strong></td><td class="period">{{.PeriodFrom}} til {{.PeriodTo}}</td></tr>
    <tr><td><strong>Mánaðarverð</strong></td><td class="price">{{.MonthlyPrice}}</td></tr>
  </table>
  <p>Kvittun fylgir í viðhengi. Þú getur alltaf skoðað pantanirnar þínar á <a href="{{.OrdersURL}}">{{.OrdersURL}}</a>.</p>
  <p>Kveðja,<br>Tölvuleiga</p>
</body>
</html>`))

type confirmationData struct {
	OrderNumber  string
	ProductName  string
	PeriodFrom   string
	PeriodTo     string
	MonthlyPrice string
	OrdersURL    string
}

// SendOrderConfirmation emails the customer an HTML confirmation and the
// admin a plain-text copy, both with the receipt PDF attached. The checkout
// response never waits on this; the order row is already the source of
// truth.
func (n *Notifier) SendOrderConfirmation(ctx context.Context, orderID string) error {
	bundle, err := n.orders.Bundle(ctx, orderID)
	if err != nil {
		return err
	}
	pdf, filename, err := n.cache.GetDocument(ctx, orderID)
	if err != nil {
		return err
	}

	data := confirmationData{
		OrderNumber:  bundle.Order.OrderNumber,
		ProductName:  bundle.ProductName,
		PeriodFrom:   utils.FormatDateIS(bundle.Order.RentalStart),
		PeriodTo:     utils.FormatDateIS(bundle.Order.RentalEnd),
		MonthlyPrice: utils.FormatISK(bundle.Order.MonthlyPrice),
		OrdersURL:    n.siteBaseURL + "/minar-pantanir",
	}
	var html bytes.Buffer
	if err := confirmationTmpl.Execute(&html, data); err != nil {
		return dependency("render confirmation email", err)
	}

	text := fmt.Sprintf(
		"Takk fyrir pöntunina!\n\nPöntun %s hefur verið móttekin.\nVara: %s\nLeigutímabil: %s til %s\nMánaðarverð: %s\n\nKvittun fylgir í viðhengi.\n",
		data.OrderNumber, data.ProductName, data.PeriodFrom, data.PeriodTo, data.MonthlyPrice)

	attachment := Attachment{Filename: filename, Data: pdf}

	if err := n.mailer.Send(bundle.Customer.Email, "Pöntun "+data.OrderNumber+" móttekin", text, html.String(), attachment); err != nil {
		return dependency("send confirmation to customer", err)
	}

	adminText := fmt.Sprintf(
		"Ný pöntun %s\n\nViðskiptavinur: %s (%s)\nKennitala: %s\nSími: %s\nHeimilisfang: %s, %s %s\n\nVara: %s\nLeigutímabil: %s til %s\nMánaðarverð: %s\nTrygging: %v\n",
		data.OrderNumber,
		bundle.Customer.Name, bundle.Customer.Email,
		bundle.Customer.NationalID, bundle.Customer.Phone,
		bundle.Customer.Address, bundle.Customer.PostalCode, bundle.Customer.City,
		data.ProductName, data.PeriodFrom, data.PeriodTo, data.MonthlyPrice,
		bundle.Order.Insured)
	if err := n.mailer.Send(n.adminEmail, "Ný pöntun "+data.OrderNumber, adminText, "", attachment); err != nil {
		return dependency("send confirmation to admin", err)
	}
	return nil
}

// SendWelcome sends the one-time welcome email. The persisted flag is the
// source of truth; a redis guard narrows the check-then-set race. A
// duplicate under true concurrency is accepted (minor annoyance, not a
// correctness issue).
func (n *Notifier) SendWelcome(ctx context.Context, customerID string) error {
	if rdb := utils.GetRedis(); rdb != nil {
		ok, err := rdb.SetNX(ctx, "welcome:"+customerID, 1, welcomeGuardTTL).Result()
		if err == nil && !ok {
			return nil
		}
	}

	var customer models.User
	if err := n.db.WithContext(ctx).First(&customer, "id = ?", customerID).Error; err != nil {
		return asLookupError("load customer", err)
	}
	if customer.WelcomeSent {
		return nil
	}

	text := fmt.Sprintf(
		"Hæ %s!\n\nVelkomin(n) í Tölvuleigu. Aðgangurinn þinn er tilbúinn og þú getur skoðað pantanirnar þínar hvenær sem er á %s/minar-pantanir.\n\nKveðja,\nTölvuleiga\n",
		customer.Name, n.siteBaseURL)
	if err := n.mailer.Send(customer.Email, "Velkomin(n) í Tölvuleigu", text, ""); err != nil {
		return dependency("send welcome", err)
	}

	if err := n.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", customerID).Update("welcome_sent", true).Error; err != nil {
		return dependency("set welcome flag", err)
	}
	return nil
}

// SendReminder emails a rental-end reminder for one order. Operator
// triggered.
func (n *Notifier) SendReminder(ctx context.Context, orderID string) error {
	order, err := n.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	var customer models.User
	if err := n.db.WithContext(ctx).First(&customer, "id = ?", order.CustomerID).Error; err != nil {
		return asLookupError("load customer", err)
	}

	text := fmt.Sprintf(
		"Hæ %s!\n\nLeigutímabili pöntunar %s lýkur %s.\nHafðu samband ef þú vilt framlengja, eða skoðaðu pantanirnar þínar: %s/minar-pantanir\n\nKveðja,\nTölvuleiga\n",
		customer.Name, order.OrderNumber, utils.FormatDateIS(order.RentalEnd), n.siteBaseURL)
	if err := n.mailer.Send(customer.Email, "Áminning: leigutímabili lýkur "+utils.FormatDateIS(order.RentalEnd), text, ""); err != nil {
		return dependency("send reminder", err)
	}
	return nil
}

// RelayContactMessage persists a contact-form submission and forwards it to
// the admin address. At most one submission per IP per window; the limit is
// checked against the newest stored row for that IP.
func (n *Notifier) RelayContactMessage(ctx context.Context, ip string, req models.ContactRequest) error {
	if ip == "" {
		return validation("source ip is required")
	}

	var last models.ContactMessage
	err := n.db.WithContext(ctx).Where("ip = ?", ip).Order("created_at DESC").First(&last).Error
	if err == nil && time.Since(last.CreatedAt) < n.contactWindow {
		return ErrRateLimited
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dependency("check contact rate limit", err)
	}

	msg := models.ContactMessage{
		IP:      ip,
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := n.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return dependency("store contact message", err)
	}

	text := fmt.Sprintf("Ný fyrirspurn af vefnum\n\nNafn: %s\nNetfang: %s\n\n%s\n", req.Name, req.Email, req.Message)
	if err := n.mailer.Send(n.adminEmail, "Fyrirspurn frá "+req.Name, text, ""); err != nil {
		return dependency("relay contact message", err)
	}
	return nil
}

// RequestExtension records a pending extension request and notifies the
// admin. The order's rental period is untouched; applying the extension
// stays an operator action.
func (n *Notifier) RequestExtension(ctx context.Context, orderID, customerID string, months int) (*models.ExtensionRequest, error) {
	if months < 1 || months > 12 {
		return nil, validation("extension must be between 1 and 12 months, got %d", months)
	}
	order, err := n.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, ErrNotFound
	}

	requestedEnd := utils.AddMonthsClamped(order.RentalEnd, months)
	req := models.ExtensionRequest{
		ID:           uuid.NewString(),
		OrderID:      order.ID,
		CustomerID:   customerID,
		Months:       months,
		CurrentEnd:   order.RentalEnd,
		RequestedEnd: requestedEnd,
		Status:       "pending",
	}
	if err := n.db.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, dependency("store extension request", err)
	}

	text := fmt.Sprintf(
		"Beiðni um framlengingu\n\nPöntun: %s\nNúverandi lok: %s\nÓskað eftir: %d mánuðum, til %s\n",
		order.OrderNumber, utils.FormatDateIS(order.RentalEnd), months, utils.FormatDateIS(requestedEnd))
	if err := n.mailer.Send(n.adminEmail, "Framlenging: pöntun "+order.OrderNumber, text, ""); err != nil {
		return nil, dependency("send extension request", err)
	}
	return &req, nil
}

// NotifyNewOrder runs the post-checkout notifications (confirmation plus the
// one-time welcome) in the calling goroutine. Meant to be launched in the
// background after the order row has committed; failures are logged, never
// surfaced to the browser.
func (n *Notifier) NotifyNewOrder(orderID, customerID string) {
	defer func() {
		if r := recover(); r != nil {
			utils.LogPanic(r, "new order notifications for "+orderID)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := n.SendWelcome(ctx, customerID); err != nil {
		utils.LogError(err, "welcome email for customer "+customerID)
	}
	if err := n.SendOrderConfirmation(ctx, orderID); err != nil {
		utils.LogError(err, "confirmation email for order "+orderID)
	}
}
