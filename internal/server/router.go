// Package server wires stores, services, handlers and middleware into the
// HTTP router.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"budgetbuddy/internal/auth"
	"budgetbuddy/internal/config"
	_ "budgetbuddy/internal/docs" // Import swagger docs
	"budgetbuddy/internal/handlers"
	"budgetbuddy/internal/middleware"
	"budgetbuddy/internal/services"
	"budgetbuddy/internal/store"
	"budgetbuddy/internal/validator"
)

// Dependencies are the shared resources the router is built from. They are
// created once at startup and are safe for concurrent use.
type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Health handlers.Pinger
	Tokens *auth.TokenService
	Hasher *auth.PasswordHasher
}

// NewRouter builds the Gin engine with every route registered.
func NewRouter(deps Dependencies) *gin.Engine {
	validator.Register()

	users := store.NewUserStore(deps.DB)
	expenses := store.NewExpenseStore(deps.DB)

	authService := services.NewAuthService(users, deps.Hasher, deps.Tokens)
	expenseService := services.NewExpenseService(expenses)
	auditService := services.NewAuditService(deps.DB)

	authHandler := handlers.NewAuthHandler(authService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	healthHandler := handlers.NewHealthHandler(deps.Health)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(deps.Config.CORSAllowedOrigin))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", healthHandler.Health)

	requireAuth := middleware.Authenticate(deps.Tokens, users)

	authRoutes := router.Group("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/me", requireAuth, authHandler.Me)

	expenseRoutes := router.Group("/expenses", requireAuth)
	expenseRoutes.GET("", expenseHandler.ListExpenses)
	expenseRoutes.POST("", expenseHandler.CreateExpense)
	expenseRoutes.GET("/summary", expenseHandler.GetExpenseSummary)
	expenseRoutes.GET("/:id", expenseHandler.GetExpense)
	expenseRoutes.PUT("/:id", expenseHandler.UpdateExpense)
	expenseRoutes.DELETE("/:id", expenseHandler.DeleteExpense)

	return router
}

// NewHTTPServer wraps handler in an http.Server listening on cfg.Port.
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
