package api

import (
	"net/http" // HTTP status codes

	"control_gastos/internal/middleware" // Custom package for middleware
	"control_gastos/internal/service"    // Use cases
	"control_gastos/internal/utils"      // Token verification

	"github.com/gin-gonic/gin" // Gin web framework
)

// RouterConfig carries everything the HTTP layer needs
type RouterConfig struct {
	Ledger         *service.LedgerService
	Auth           *service.AuthService
	Tokens         *utils.TokenIssuer
	FrontendOrigin string   // Only origin allowed by CORS
	RequireAuth    bool     // Protect /api with bearer tokens
	TrustedProxies []string // Proxies allowed to set client IP headers
}

// NewRouter builds the gin engine with every route
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	r := gin.Default() // Gin router instance
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(middleware.CORSMiddleware(cfg.FrontendOrigin))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	authGroup := r.Group("/auth")
	authGroup.POST("/register", RegisterHandler(cfg.Auth)) // Registration endpoint
	authGroup.POST("/login", LoginHandler(cfg.Auth))       // Login endpoint

	// Ledger routes, optionally protected by JWT
	apiGroup := r.Group("/api")
	if cfg.RequireAuth {
		apiGroup.Use(middleware.JWTAuthMiddleware(cfg.Tokens))
	}
	apiGroup.GET("/capital", LatestCapitalHandler(cfg.Ledger))            // Current balance
	apiGroup.GET("/capital/historial", CapitalHistoryHandler(cfg.Ledger)) // Balance history
	apiGroup.GET("/ingreso", LatestIncomeHandler(cfg.Ledger))             // Latest income
	apiGroup.POST("/ingreso", CreateIncomeHandler(cfg.Ledger))            // Record income
	apiGroup.GET("/gasto", ListExpensesHandler(cfg.Ledger))               // All expenses
	apiGroup.POST("/gasto", CreateExpenseHandler(cfg.Ledger))             // Record expense
	apiGroup.GET("/resumen", SummaryHandler(cfg.Ledger))                  // Ledger totals

	return r, nil
}
