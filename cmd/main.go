package main

import (
	"FlashFoodDelivery/cmd/config"
	migration "FlashFoodDelivery/cmd/database/migrate"
	"FlashFoodDelivery/internal/utils"
	"FlashFoodDelivery/pkg/jwt"
	"FlashFoodDelivery/pkg/user"
	"context"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	seeder := user.NewUserService(user.NewUserRepository(db), jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), 0))
	if err := seeder.SeedAdmin(context.Background(), utils.GetConfig("ADMIN_EMAIL"), utils.GetConfig("ADMIN_PASSWORD")); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("create app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(app.Listen(":" + port))
}
