package initializers

import (
	"log"

	"github.com/reachfood/reachfood-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
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
		return err
	}
	log.Println("Database synced successfully.")
	return nil
}
