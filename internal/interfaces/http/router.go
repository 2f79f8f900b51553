package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/auth"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/billing"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/catalog"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/crm"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/inventory"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/orders"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	InventoryUC *inventory.UseCase
	OrdersUC    *orders.UseCase
	BillingUC   *billing.UseCase
	CatalogUC   *catalog.UseCase
	CustomerUC  *crm.CustomerUseCase
	SupplierUC  *crm.SupplierUseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventory ledger
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Post("/", inventoryHandler.Restock)
	inv.Get("/", inventoryHandler.List)
	inv.Get("/:id", inventoryHandler.Get)
	inv.Post("/:id/deduct", inventoryHandler.Deduct)
	inv.Delete("/:id", inventoryHandler.Delete)

	// Waste tracking
	waste := protected.Group("/waste")
	wasteHandler := NewWasteHandler(deps.InventoryUC)
	waste.Post("/", wasteHandler.Create)
	waste.Get("/", wasteHandler.List)
	waste.Put("/:id", wasteHandler.Update)
	waste.Delete("/:id", wasteHandler.Delete)

	// Orders
	ord := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrdersUC)
	ord.Post("/", orderHandler.Submit)
	ord.Get("/", orderHandler.List)
	ord.Get("/:id", orderHandler.Get)

	// Billing
	txns := protected.Group("/transactions")
	txnHandler := NewTransactionHandler(deps.BillingUC)
	txns.Post("/settle", txnHandler.Settle)
	txns.Get("/", txnHandler.List)
	txns.Get("/:id", txnHandler.Get)
	txns.Get("/:id/receipt", txnHandler.Receipt)

	// Catalog
	menu := protected.Group("/menu")
	menuHandler := NewMenuHandler(deps.CatalogUC)
	menu.Post("/", menuHandler.Create)
	menu.Get("/", menuHandler.List)
	menu.Get("/:id", menuHandler.Get)
	menu.Put("/:id", menuHandler.Update)
	menu.Delete("/:id", menuHandler.Delete)
	menu.Put("/:id/recipe", menuHandler.SetRecipe)
	menu.Get("/:id/recipe", menuHandler.GetRecipe)

	// CRM
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.Get)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)
}
