package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"microjob/controllers/admins"
	"microjob/controllers/auth"
	"microjob/controllers/buyers"
	"microjob/controllers/users"
	"microjob/database"
	"microjob/middleware"
	"microjob/models"
	"microjob/routes"
	"microjob/store"
	"microjob/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	// Load .env if present without overwriting already-set environment
	// variables, so DB_HOST, DB_NAME, etc are available when running locally.
	if envMap, err := godotenv.Read(); err == nil {
		for k, v := range envMap {
			if os.Getenv(k) == "" {
				os.Setenv(k, v)
			}
		}
	}

	if strings.ToLower(os.Getenv("ENV")) == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	requiredEnvVars := []string{"DB_HOST", "DB_USER", "DB_PASS", "DB_NAME", "JWT_SECRET"}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" {
			logrus.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	db, err := database.Connect()
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	// Auto-migrate only in development to avoid accidental production schema
	// changes.
	if strings.ToLower(os.Getenv("ENV")) == "development" {
		logrus.Info("Running in development mode - performing auto-migration")
		if err := db.AutoMigrate(
			&models.Admin{},
			&models.User{},
			&models.Task{},
			&models.Submission{},
			&models.Withdrawal{},
			&models.Notification{},
			&models.Transaction{},
			&models.Payment{},
			&models.Setting{},
		); err != nil {
			logrus.Fatalf("failed to migrate database: %v", err)
		}
		logrus.Info("Auto-migration completed successfully")
	}

	if err := ensureSetting(db); err != nil {
		logrus.Fatalf("failed to ensure settings row: %v", err)
	}
	if err := seedAdmin(db); err != nil {
		logrus.Fatalf("failed to seed admin: %v", err)
	}

	// Wire stores and controllers. The database handle flows in explicitly.
	notifications := store.NewNotificationStore(db)
	accounts := store.NewAccountStore(db)
	tasks := store.NewTaskStore(db)
	submissions := store.NewSubmissionStore(db, notifications)
	withdrawals := store.NewWithdrawalStore(db, notifications)

	rdb := utils.RedisClient

	router := routes.InitRouter(routes.Deps{
		DB:     db,
		Auth:   auth.NewController(db, accounts),
		Users:  users.NewController(accounts, tasks, submissions, withdrawals, notifications, rdb),
		Buyers: buyers.NewController(db, accounts, tasks, submissions, notifications, rdb),
		Admins: admins.NewController(db, accounts, tasks, submissions, withdrawals, rdb),
	})

	// Global middleware, outermost first: logging, security headers, request
	// id, body cap, panic recovery.
	handler := middleware.RequestLogMiddleware(
		middleware.SecurityHeadersMiddleware(
			middleware.RequestIDMiddleware(
				middleware.MaxBodyMiddleware(
					middleware.RecoveryMiddleware(router),
				),
			),
		),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("Server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

// ensureSetting creates the singleton settings row with defaults when the
// table is empty.
func ensureSetting(db *gorm.DB) error {
	var setting models.Setting
	err := db.First(&setting).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(&models.Setting{
		MinWithdrawCoin:   200,
		MaxWithdrawCoin:   100000,
		CoinRate:          20,
		BuyerSignupBonus:  50,
		WorkerSignupBonus: 10,
	}).Error
}

// seedAdmin creates the back-office account from ADMIN_USERNAME,
// ADMIN_PASSWORD and ADMIN_EMAIL. Skipped when unset or already present.
func seedAdmin(db *gorm.DB) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	email := os.Getenv("ADMIN_EMAIL")
	if username == "" || password == "" || email == "" {
		return nil
	}
	var existing models.Admin
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	admin := models.Admin{
		Username: username,
		Password: password,
		Name:     username,
		Email:    email,
		IsActive: true,
	}
	if err := admin.HashPassword(); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logrus.WithField("username", username).Info("seeded admin account")
	return nil
}
