package handlers

import (
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/middleware"
	"github.com/glowslot/salon_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, services.AuthSvc)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerWalletRoutes(v1, services.WalletSvc)
	registerCommissionRoutes(v1, services.CommissionSvc)
	registerSalonRoutes(v1, services.SalonSvc)

	// Everything else keyed by salon lives under /salons/:salon_id
	salons := v1.Group("/salons/:salon_id")
	registerAccountRoutes(salons, services.AccountSvc)
	registerJournalRoutes(salons, services.JournalSvc)
	registerSaleRoutes(salons, services.SaleSvc)
	registerExpenseRoutes(salons, services.ExpenseSvc)
	registerPayrollRoutes(salons, services.PayrollSvc)
	registerReportingRoutes(salons, services.ReportingSvc)
}
