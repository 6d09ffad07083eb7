package routes

import (
	"freshtrack-backend/internal/api/handlers"
	"freshtrack-backend/internal/middleware"
	"freshtrack-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	AppHandler     handlers.AppHandler
	UserHandler    handlers.UserHandler
	GroceryHandler handlers.GroceryHandler
	BarcodeHandler handlers.BarcodeHandler
	RecipeHandler  handlers.RecipeHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()

	api := c.App.Group("/api/v1")
	c.Auth(api)
	c.User(api)
	c.Groceries(api)
	c.Barcode(api)
	c.Recipes(api)
}

func (c *Config) GuestRoute() {
	c.App.Get("/", c.AppHandler.Root)
	c.App.Get("/health", c.AppHandler.Health)
	c.App.Get("/api/ping", c.AppHandler.Ping)
}

func (c *Config) Auth(api fiber.Router) {
	auth := api.Group("/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/apple", c.UserHandler.AppleSignIn)
		auth.Post("/refresh", c.UserHandler.RefreshToken)
		auth.Post("/logout", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Logout)
		auth.Post("/forgot-password", c.UserHandler.ForgotPassword)
		auth.Post("/reset-password", c.UserHandler.ResetPassword)
	}
}

func (c *Config) User(api fiber.Router) {
	user := api.Group("/users", c.Middleware.AuthMiddleware(c.JWTService))
	{
		user.Get("/me", c.UserHandler.Me)
		user.Patch("/me", c.UserHandler.UpdateUser)
	}
}

func (c *Config) Groceries(api fiber.Router) {
	groceries := api.Group("/groceries", c.Middleware.AuthMiddleware(c.JWTService))

	groceries.Post("/sync", c.GroceryHandler.SyncGroceries)

	// Basic CRUD operations
	groceries.Get("", c.GroceryHandler.GetGroceries)
	groceries.Post("", c.GroceryHandler.CreateGrocery)
	groceries.Get("/:id", c.GroceryHandler.GetGrocery)
	groceries.Patch("/:id", c.GroceryHandler.UpdateGrocery)
	groceries.Delete("/:id", c.GroceryHandler.DeleteGrocery)

	groceries.Post("/:id/consume", c.GroceryHandler.ConsumeGrocery)
	groceries.Post("/:id/image", c.GroceryHandler.UploadGroceryImage)
}

func (c *Config) Barcode(api fiber.Router) {
	api.Get("/barcode/:barcode", c.BarcodeHandler.LookupBarcode)
}

func (c *Config) Recipes(api fiber.Router) {
	recipes := api.Group("/recipes")
	recipes.Get("/search", c.RecipeHandler.SearchRecipes)
	recipes.Get("/by-ingredients", c.RecipeHandler.SearchByIngredients)
	recipes.Get("/expiring", c.RecipeHandler.GetExpiringRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
}
