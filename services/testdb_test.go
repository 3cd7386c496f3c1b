package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/reachfood/reachfood-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database. Connections are capped at one
// so every goroutine sees the same in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Product{},
		&models.SubscriptionPlan{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.DeliveryTracking{},
		&models.CheckoutSession{},
		&models.AdminUser{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64) *models.Product {
	t.Helper()
	product := models.Product{
		NameEn:   name,
		NameAr:   name,
		Price:    price,
		IsActive: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return &product
}

func createTestPlan(t *testing.T, db *gorm.DB, name string, monthlyPrice float64) *models.SubscriptionPlan {
	t.Helper()
	plan := models.SubscriptionPlan{
		NameEn:       name,
		NameAr:       name,
		MonthlyPrice: monthlyPrice,
		IsActive:     true,
	}
	if err := db.Create(&plan).Error; err != nil {
		t.Fatalf("failed to create test plan: %v", err)
	}
	return &plan
}
