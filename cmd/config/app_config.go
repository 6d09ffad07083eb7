package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"freshtrack-backend/internal/api/handlers"
	"freshtrack-backend/internal/api/routes"
	"freshtrack-backend/internal/middleware"
	"freshtrack-backend/internal/utils"
	"freshtrack-backend/internal/utils/mailing"
	"freshtrack-backend/internal/utils/storage"
	"freshtrack-backend/pkg/barcode"
	"freshtrack-backend/pkg/cache"
	"freshtrack-backend/pkg/grocery"
	"freshtrack-backend/pkg/jwt"
	"freshtrack-backend/pkg/recipe"
	"freshtrack-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB, store cache.Store) (*fiber.App, io.Closer, error) {
	utils.InitValidator()
	log.SetLevel(parseLevel(utils.GetConfig("LOG_LEVEL")))

	app := fiber.New(fiber.Config{
		AppName:           utils.GetConfigDefault("APP_NAME", "FreshTrack API"),
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware(utils.GetConfig("ALLOWED_ORIGINS"))
	validator := utils.Validate

	// setting up logging and limiter
	accessLog, closer, err := openAccessLog(utils.GetConfig("LOG_FILE"))
	if err != nil {
		return nil, nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     accessLog,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT_MAX", 100),
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	// Repository
	userRepository := user.NewUserRepository(db)
	groceryRepository := grocery.NewGroceryRepository(db)

	// Providers
	productProvider := barcode.NewOpenFoodFactsProviderWithURL(
		utils.GetConfig("OPEN_FOOD_FACTS_URL"),
		utils.GetConfigDefault("OPEN_FOOD_FACTS_USER_AGENT", "FreshTrack/1.0"),
	)
	recipeProvider := recipe.NewSpoonacularProviderWithURL(
		utils.GetConfig("SPOONACULAR_URL"),
		utils.GetConfig("SPOONACULAR_API_KEY"),
	)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, mailer, utils.GetConfig("APP_URL"))
	groceryService := grocery.NewGroceryService(groceryRepository, s3)
	barcodeService := barcode.NewBarcodeService(productProvider, store, barcode.DefaultPolicy())
	recipeService := recipe.NewRecipeService(recipeProvider, store, recipe.DefaultPolicies())

	// Handler
	appHandler := handlers.NewAppHandler(
		app.Config().AppName,
		utils.GetConfigDefault("APP_VERSION", "1.0.0"),
		databaseCheck(db),
		store.Ping,
	)
	userHandler := handlers.NewUserHandler(userService, validator)
	groceryHandler := handlers.NewGroceryHandler(groceryService, validator)
	barcodeHandler := handlers.NewBarcodeHandler(barcodeService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		AppHandler:     appHandler,
		UserHandler:    userHandler,
		GroceryHandler: groceryHandler,
		BarcodeHandler: barcodeHandler,
		RecipeHandler:  recipeHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openAccessLog(path string) (io.Writer, io.Closer, error) {
	if path == "" {
		return os.Stdout, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func databaseCheck(db *gorm.DB) handlers.CheckFunc {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
