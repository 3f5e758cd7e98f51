package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"tolvuleiga/models"
	"tolvuleiga/utils"
)

// StartEndingRentalsCron emails the admin a morning digest of rentals ending
// within the next 7 days. Returns the cron so main can stop it on shutdown.
func StartEndingRentalsCron(db *gorm.DB, mailer Mailer, adminEmail string) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("0 7 * * *", func() {
		if err := sendEndingRentalsDigest(db, mailer, adminEmail); err != nil {
			utils.LogError(err, "ending rentals digest")
		}
	})
	if err != nil {
		log.Printf("failed to schedule ending rentals digest: %v", err)
		return c
	}
	c.Start()
	log.Println("Ending rentals digest scheduled (daily 07:00)")
	return c
}

func sendEndingRentalsDigest(db *gorm.DB, mailer Mailer, adminEmail string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	var orders []models.Order
	err := db.WithContext(ctx).
		Where("status IN ?", []string{models.StatusPreparing, models.StatusInProgress}).
		Where("rental_end BETWEEN ? AND ?", now, now.AddDate(0, 0, 7)).
		Order("rental_end ASC").
		Find(&orders).Error
	if err != nil {
		return dependency("list ending rentals", err)
	}
	if len(orders) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Leigur sem lýkur á næstu 7 dögum: %d\n\n", len(orders))
	for _, o := range orders {
		fmt.Fprintf(&b, "%s  lýkur %s  (%s)\n", o.OrderNumber, utils.FormatDateIS(o.RentalEnd), models.StatusLabelIS(o.Status))
	}
	if err := mailer.Send(adminEmail, "Leigur að renna út", b.String(), ""); err != nil {
		return dependency("send ending rentals digest", err)
	}
	return nil
}
