package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/auth"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/billing"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/catalog"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/crm"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/inventory"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/orders"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/infrastructure/memlock"
	infrapdf "github.com/AgarwalVaibhav-20/dq-backend/internal/infrastructure/pdf"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/infrastructure/postgres"
	infraredis "github.com/AgarwalVaibhav-20/dq-backend/internal/infrastructure/redis"
	httpRouter "github.com/AgarwalVaibhav-20/dq-backend/internal/interfaces/http"
	"github.com/AgarwalVaibhav-20/dq-backend/pkg/config"
	"github.com/AgarwalVaibhav-20/dq-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	// Per-table lock: Redis when configured, otherwise in-process. The
	// in-process lock is only safe with a single API instance.
	var tableLocker orders.TableLocker = memlock.New()
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Redis connection")
		}
		defer client.Close()
		tableLocker = infraredis.NewLocker(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using Redis table lock")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, using in-process table lock")
	}

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	menuRepo := postgres.NewMenuRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, cfg.JWT, log)
	inventoryUC := inventory.NewUseCase(txRunner, log)
	ordersUC := orders.NewUseCase(txRunner, tableLocker, customerRepo, cfg.Inventory, log)
	billingUC := billing.NewUseCase(txRunner, infrapdf.NewReceiptGenerator(), log)
	catalogUC := catalog.NewUseCase(menuRepo, recipeRepo, log)
	customerUC := crm.NewCustomerUseCase(customerRepo)
	supplierUC := crm.NewSupplierUseCase(supplierRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InventoryUC: inventoryUC,
		OrdersUC:    ordersUC,
		BillingUC:   billingUC,
		CatalogUC:   catalogUC,
		CustomerUC:  customerUC,
		SupplierUC:  supplierUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
