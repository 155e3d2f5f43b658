package routes

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/internal/api/handlers"
	"FlashFoodDelivery/internal/middleware"
	"FlashFoodDelivery/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	FoodHandler     handlers.FoodHandler
	CartHandler     handlers.CartHandler
	OrderHandler    handlers.OrderHandler
	MidtransHandler handlers.MidtransHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Menu()
	c.Cart()
	c.Orders()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Post("/shippers",
			c.Middleware.AuthMiddleware(c.JWTService),
			c.Middleware.OnlyAllow(domain.RoleAdmin),
			c.UserHandler.RegisterShipper,
		)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})
	c.App.Post("/webhook/midtrans", c.MidtransHandler.MidtransWebhookHandler)
}

func (c *Config) Menu() {
	onlyAdmin := c.Middleware.OnlyAllow(domain.RoleAdmin)

	categories := c.App.Group("/api/v1/categories")
	categories.Get("", c.FoodHandler.GetCategories)
	categories.Post("", c.Middleware.AuthMiddleware(c.JWTService), onlyAdmin, c.FoodHandler.AddCategory)

	foodItems := c.App.Group("/api/v1/food-items")
	foodItems.Get("", c.FoodHandler.GetFoodItems)
	foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
	foodItems.Post("", c.Middleware.AuthMiddleware(c.JWTService), onlyAdmin, c.FoodHandler.AddFoodItem)
	foodItems.Patch("/:id", c.Middleware.AuthMiddleware(c.JWTService), onlyAdmin, c.FoodHandler.UpdateFoodItem)
	foodItems.Post("/:id/image", c.Middleware.AuthMiddleware(c.JWTService), onlyAdmin, c.FoodHandler.UploadFoodImage)
}

func (c *Config) Cart() {
	cart := c.App.Group("/api/v1/cart", c.Middleware.AuthMiddleware(c.JWTService))
	cart.Get("", c.CartHandler.GetCart)
	cart.Post("", c.CartHandler.AddToCart)
	cart.Patch("/:id", c.CartHandler.UpdateCartItem)
	cart.Delete("/:id", c.CartHandler.RemoveCartItem)
}

func (c *Config) Orders() {
	staff := c.Middleware.OnlyAllow(domain.RoleAdmin, domain.RoleShipper)
	onlyAdmin := c.Middleware.OnlyAllow(domain.RoleAdmin)

	orders := c.App.Group("/api/v1/orders", c.Middleware.AuthMiddleware(c.JWTService))
	orders.Post("", c.OrderHandler.CreateOrder)
	orders.Post("/checkout", c.OrderHandler.Checkout)
	orders.Get("", c.OrderHandler.GetOrders)
	orders.Get("/:id", c.OrderHandler.GetOrder)

	// status ledger
	orders.Get("/:id/statuses", c.OrderHandler.GetStatuses)
	orders.Post("/:id/statuses", staff, c.OrderHandler.AppendStatus)
	orders.Post("/:id/shipper", onlyAdmin, c.OrderHandler.AssignShipper)
	orders.Post("/:id/ship", staff, c.OrderHandler.MarkShipped)
	orders.Post("/:id/deliver", staff, c.OrderHandler.MarkDelivered)
	orders.Post("/:id/cancel", c.OrderHandler.CancelOrder)

	// after delivery
	orders.Get("/:id/feedback", c.OrderHandler.GetFeedbacks)
	orders.Post("/:id/feedback", c.OrderHandler.RecordFeedback)
	orders.Post("/:id/transaction", staff, c.OrderHandler.RecordTransaction)
	orders.Post("/:id/payment", c.MidtransHandler.CreatePayment)
}
