package config

import (
	"FlashFoodDelivery/internal/api/handlers"
	"FlashFoodDelivery/internal/api/routes"
	"FlashFoodDelivery/internal/middleware"
	"FlashFoodDelivery/internal/utils"
	"FlashFoodDelivery/internal/utils/mailing"
	"FlashFoodDelivery/internal/utils/storage"
	"FlashFoodDelivery/pkg/cart"
	"FlashFoodDelivery/pkg/database"
	"FlashFoodDelivery/pkg/jwt"
	"FlashFoodDelivery/pkg/menu"
	"FlashFoodDelivery/pkg/midtrans"
	"FlashFoodDelivery/pkg/order"
	"FlashFoodDelivery/pkg/user"
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3(
		context.Background(),
		utils.GetConfig("AWS_S3_BUCKET"),
		utils.GetConfig("AWS_S3_REGION"),
		utils.GetConfig("AWS_ACCESS_KEY"),
		utils.GetConfig("AWS_SECRET_KEY"),
	)
	if err != nil {
		return nil, err
	}

	var mailer mailing.Mailer
	if mailConfig := mailing.LoadMailConfig(); mailConfig.SMTPHost != "" {
		mailer = mailing.NewMailer(mailConfig)
	} else {
		log.Warn("SMTP_HOST not set, order mails are disabled")
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	cartRepository := cart.NewCartRepository(db)
	orderRepository := order.NewOrderRepository(db)
	transactor := database.NewTransactor(db)

	// Service
	jwtService := jwt.NewJWTService(
		utils.GetConfig("JWT_SECRET"),
		utils.GetDurationConfig("JWT_TTL", 120*time.Minute),
	)
	userService := user.NewUserService(userRepository, jwtService)
	menuService := menu.NewMenuService(menuRepository, s3)
	cartService := cart.NewCartService(cartRepository, menuRepository)
	orderService := order.NewOrderService(
		orderRepository,
		cartRepository,
		menuRepository,
		userRepository,
		transactor,
		order.Schedule{
			RequiredOffset: utils.GetDurationConfig("ORDER_REQUIRED_OFFSET", order.DefaultSchedule().RequiredOffset),
			ShippedOffset:  utils.GetDurationConfig("ORDER_SHIPPED_OFFSET", order.DefaultSchedule().ShippedOffset),
		},
	)
	midtransService := midtrans.NewMidtransService(
		orderRepository,
		userRepository,
		midtrans.NewSnapClient(utils.GetConfig("SERVER_KEY"), utils.GetBoolConfig("IsProd")),
		utils.GetConfig("SERVER_KEY"),
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	foodHandler := handlers.NewFoodHandler(menuService, validator)
	cartHandler := handlers.NewCartHandler(cartService, validator)
	orderHandler := handlers.NewOrderHandler(orderService, userService, mailer, utils.GetConfig("APP_URL"), validator)
	midtransHandler := handlers.NewMidtransHandler(midtransService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		FoodHandler:     foodHandler,
		CartHandler:     cartHandler,
		OrderHandler:    orderHandler,
		MidtransHandler: midtransHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
