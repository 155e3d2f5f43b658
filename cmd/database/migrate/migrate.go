package migration

import (
	"FlashFoodDelivery/entities"
	"fmt"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// Migrate creates the schema. Owners are migrated before the tables that reference them.
func Migrate(db *gorm.DB) error {
	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"category", &entities.Category{}},
		{"menu food item", &entities.MenuFoodItem{}},
		{"cart", &entities.Cart{}},
		{"order", &entities.Order{}},
		{"order detail", &entities.OrderDetail{}},
		{"order status", &entities.OrderStatus{}},
		{"feedback", &entities.FeedBack{}},
		{"transaction", &entities.TransactionBill{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s database: %w", m.name, err)
		}
	}

	log.Info("Database migration complete")
	return nil
}
