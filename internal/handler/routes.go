package handler

import (
	"go-pos-backend/internal/middleware"
	"go-pos-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth      *AuthHandler
	Product   *ProductHandler
	Stock     *StockHandler
	Sales     *SalesHandler
	Config    *ConfigHandler
	Report    *ReportHandler
	Dashboard *DashboardHandler
	User      *UserHandler
	Backup    *BackupHandler
}

// RegisterRoutes mounts the REST API under /api/v1.
func RegisterRoutes(app *fiber.App, resolver middleware.SessionResolver, h Handlers) {
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(resolver))
	protected.Post("/auth/logout", h.Auth.Logout)
	protected.Get("/auth/me", h.Auth.Me)
	protected.Post("/auth/change-password", h.Auth.ChangePassword)

	// Catalog
	protected.Get("/products", middleware.RequirePrivilege(model.PrivProductView), h.Product.GetProducts)
	protected.Get("/products/:id", middleware.RequirePrivilege(model.PrivProductView), h.Product.GetProduct)
	protected.Post("/products", middleware.RequirePrivilege(model.PrivProductManage), h.Product.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege(model.PrivProductManage), h.Product.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege(model.PrivProductManage), h.Product.DeleteProduct)
	protected.Get("/categories", middleware.RequirePrivilege(model.PrivProductView), h.Product.GetCategories)

	// Stock ledger
	protected.Post("/stock/receive", middleware.RequirePrivilege(model.PrivStockReceive), h.Stock.Receive)
	protected.Get("/stock/journal", middleware.RequirePrivilege(model.PrivStockView), h.Stock.Journal)

	// Sales
	protected.Post("/sales", middleware.RequirePrivilege(model.PrivSaleCreate), h.Sales.Sell)
	protected.Get("/sales/history", middleware.RequirePrivilege(model.PrivSaleView), h.Sales.History)

	// Cart
	cart := protected.Group("/cart", middleware.RequirePrivilege(model.PrivCartUse))
	cart.Get("", h.Sales.GetCart)
	cart.Post("/items", h.Sales.AddToCart)
	cart.Delete("/items/:id", h.Sales.RemoveFromCart)
	cart.Post("/checkout", middleware.RequirePrivilege(model.PrivSaleCreate), h.Sales.Checkout)

	// Configuration
	protected.Get("/config/rate", middleware.RequireAnyPrivilege(model.PrivProductView, model.PrivReportView), h.Config.GetRate)
	protected.Put("/config/rate", middleware.RequirePrivilege(model.PrivConfigUpdate), h.Config.SetRate)

	// Reports and dashboard
	protected.Get("/reports/sales", middleware.RequirePrivilege(model.PrivReportView), h.Report.Sales)
	protected.Get("/reports/stock", middleware.RequirePrivilege(model.PrivReportView), h.Report.Stock)
	protected.Get("/dashboard/stats", middleware.RequirePrivilege(model.PrivReportView), h.Dashboard.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", middleware.RequirePrivilege(model.PrivReportView), h.Dashboard.GetStockMovement)

	// User management
	users := protected.Group("/users", middleware.RequirePrivilege(model.PrivUserManage))
	users.Get("", h.User.GetUsers)
	users.Get("/:id", h.User.GetUser)
	users.Post("", h.User.CreateUser)
	users.Delete("/:id", h.User.DeleteUser)

	// Backups
	backups := protected.Group("/backups", middleware.RequirePrivilege(model.PrivBackupManage))
	backups.Get("", h.Backup.List)
	backups.Post("", h.Backup.Snapshot)
	backups.Post("/restore", h.Backup.Restore)
}
