package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tradeops/backend/internal/domain/identity"
	applogger "github.com/tradeops/backend/internal/infrastructure/logger"
	"github.com/tradeops/backend/internal/interfaces/http/handler"
	"github.com/tradeops/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Auth      *handler.AuthHandler
	FX        *handler.FXHandler
	Quotation *handler.QuotationHandler
	Expense   *handler.ExpenseHandler
	Workflow  *handler.WorkflowHandler
	Report    *handler.ReportHandler
	Partner   *handler.PartnerHandler
	Menu      *handler.MenuHandler
}

// Config holds router configuration
type Config struct {
	Handlers    Handlers
	JWT         middleware.JWTConfig
	CORS        middleware.CORSConfig
	Logger      *zap.Logger
	ReleaseMode bool
}

// New builds the gin engine with all middleware and routes mounted
func New(cfg Config) *gin.Engine {
	if cfg.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	r := gin.New()
	r.Use(middleware.RequestID())
	if cfg.Logger != nil {
		r.Use(applogger.GinMiddleware(cfg.Logger))
		r.Use(applogger.Recovery(cfg.Logger))
	} else {
		r.Use(gin.Recovery())
	}
	r.Use(middleware.CORSWithConfig(cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Use(middleware.JWTAuthWithConfig(cfg.JWT))

	v1 := r.Group("/api/v1")
	h := cfg.Handlers

	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.GET("/me", h.Auth.Me)
		auth.GET("/check", h.Auth.Check)
		// Onboarding new principals is an admin task.
		auth.POST("/register", middleware.RequireOperation("employee.create"), h.Auth.Register)
	}

	principals := v1.Group("/principals", middleware.RequireOperation("employee.view"))
	{
		principals.GET("", h.Auth.List)
		principals.GET("/:id", h.Auth.Get)
		principals.PUT("/:id/tier", middleware.RequireTier(identity.TierMaster), h.Auth.AssignTier)
		principals.DELETE("/:id", middleware.RequireTier(identity.TierMaster), h.Auth.Deactivate)
	}

	fx := v1.Group("/fx", middleware.RequireOperation("fx.view"))
	{
		fx.GET("/lookup", h.FX.Lookup)
		fx.GET("/history/:target", h.FX.History)
		fx.GET("/stats/:target", h.FX.Stats)
		fx.PUT("/quarterly", middleware.RequireTier(identity.TierAdmin), h.FX.PutQuarterly)
		fx.PUT("/yearly", middleware.RequireTier(identity.TierAdmin), h.FX.PutYearly)
	}

	quotations := v1.Group("/quotations")
	{
		quotations.GET("", middleware.RequireOperation("quotation.view"), h.Quotation.List)
		quotations.GET("/:id", middleware.RequireOperation("quotation.view"), h.Quotation.Get)
		quotations.POST("", middleware.RequireOperation("quotation.create"), h.Quotation.Create)
		quotations.POST("/:id/items", middleware.RequireOperation("quotation.update"), h.Quotation.AddItem)
		quotations.DELETE("/:id/items/:itemId", middleware.RequireOperation("quotation.update"), h.Quotation.RemoveItem)
		quotations.POST("/:id/submit", middleware.RequireOperation("quotation.submit"), h.Quotation.Submit)
		quotations.POST("/:id/approve", middleware.RequireOperation("quotation.approve"), h.Quotation.Approve)
		quotations.POST("/:id/reject", middleware.RequireOperation("quotation.approve"), h.Quotation.Reject)
		quotations.DELETE("/:id", middleware.RequireOperation("quotation.delete"), h.Quotation.Delete)
	}

	// Expense requests are open to every authenticated principal; slot
	// decisions are guarded by the chain itself.
	expenses := v1.Group("/expenses")
	{
		expenses.POST("", h.Expense.Create)
		expenses.GET("/mine", h.Expense.Mine)
		expenses.GET("/pending", h.Expense.Pending)
		expenses.GET("/:id", h.Expense.Get)
		expenses.POST("/:id/complete", h.Expense.Complete)
		expenses.POST("/slots/:slotId/approve", h.Expense.Approve)
		expenses.POST("/slots/:slotId/reject", h.Expense.Reject)
		expenses.POST("/slots/:slotId/skip", h.Expense.Skip)
	}

	workflows := v1.Group("/workflows", middleware.RequireOperation("workflow.view"))
	{
		workflows.GET("", h.Workflow.List)
		workflows.GET("/stats", h.Workflow.Stats)
		workflows.GET("/:id", h.Workflow.Get)
		workflows.POST("", middleware.RequireOperation("workflow.create"), h.Workflow.Seed)
		workflows.POST("/:id/advance", middleware.RequireOperation("workflow.advance"), h.Workflow.Advance)
		workflows.POST("/:id/cancel", middleware.RequireOperation("workflow.cancel"), h.Workflow.Cancel)
	}

	// Report visibility is author/grant based, enforced by the service.
	reports := v1.Group("/reports")
	{
		reports.POST("", h.Report.Create)
		reports.GET("", h.Report.List)
		reports.GET("/:id", h.Report.Get)
		reports.PUT("/:id", h.Report.Update)
		reports.POST("/:id/submit", h.Report.Submit)
		reports.POST("/:id/approve", h.Report.Approve)
		reports.POST("/:id/reject", h.Report.Reject)
		reports.POST("/:id/grants", h.Report.Grant)
		reports.DELETE("/:id/grants", h.Report.Revoke)
	}

	customers := v1.Group("/customers", middleware.RequireOperation("customer.view"))
	{
		customers.GET("", h.Partner.ListCustomers)
		customers.GET("/:id", h.Partner.GetCustomer)
		customers.POST("", middleware.RequireOperation("customer.create"), h.Partner.CreateCustomer)
		customers.PUT("/:id", middleware.RequireOperation("customer.update"), h.Partner.UpdateCustomer)
		customers.PUT("/:id/contact", middleware.RequireOperation("customer.update"), h.Partner.SetCustomerContact)
		customers.DELETE("/:id", middleware.RequireOperation("customer.delete"), h.Partner.DeactivateCustomer)
	}

	suppliers := v1.Group("/suppliers", middleware.RequireOperation("supplier.view"))
	{
		suppliers.GET("", h.Partner.ListSuppliers)
		suppliers.GET("/:id", h.Partner.GetSupplier)
		suppliers.POST("", middleware.RequireOperation("supplier.create"), h.Partner.CreateSupplier)
		suppliers.PUT("/:id", middleware.RequireOperation("supplier.update"), h.Partner.UpdateSupplier)
		suppliers.DELETE("/:id", middleware.RequireOperation("supplier.delete"), h.Partner.DeactivateSupplier)
	}

	v1.GET("/menu", h.Menu.Menu)
	v1.GET("/labels", h.Menu.Labels)

	return r
}
