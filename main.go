package main

import (
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tolvuleiga/config"
	"tolvuleiga/database"
	"tolvuleiga/routes"
	"tolvuleiga/services"
	"tolvuleiga/utils"
)

func main() {
	cfg := config.LoadConfig()

	if err := utils.InitLogger(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	log.Println("Connected to PostgreSQL")
	utils.SetDB(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Println("Migration complete")

	if err := database.Seed(db); err != nil {
		log.Fatalf("failed to seed catalogue: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	utils.SetRedis(rdb)

	storage, err := services.NewS3Storage(cfg)
	if err != nil {
		log.Fatalf("failed to init object storage: %v", err)
	}

	mailer := services.NewSMTPMailer(cfg)
	orders := services.NewOrderService(db, storage, cfg.ReceiptsBucket)
	cache := services.NewDocumentCache(orders, storage, cfg.ReceiptsBucket)
	notifier := services.NewNotifier(db, mailer, cache, orders,
		cfg.AdminEmail, cfg.SiteBaseURL, time.Duration(cfg.ContactWindowMin)*time.Minute)

	digestCron := services.StartEndingRentalsCron(db, mailer, cfg.AdminEmail)
	defer digestCron.Stop()

	r := routes.SetupRouter(cfg, routes.Deps{
		Orders:   orders,
		Cache:    cache,
		Notifier: notifier,
		Storage:  storage,
	})

	log.Printf("Listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
