package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
	"github.com/caixazul/treasury_backend/internal/middleware"
	"github.com/caixazul/treasury_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, cfg *config.AppConfig, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	registerAuthRoutes(r, services)
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the authenticated /api/v1 group.
func setupAPIV1Routes(r *gin.Engine, cfg *config.AppConfig, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerBankAccountRoutes(v1, services.BankAccount)
	registerMovementRoutes(v1, services.Movement)
	registerTreasuryRoutes(v1, services.Treasury)
	registerPayableRoutes(v1, services.Payable)
	registerReceivableRoutes(v1, services.Receivable)
	registerNotificationRoutes(v1, services.Notification)
}
