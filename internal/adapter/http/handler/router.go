package handler

import (
	"github.com/medinasp/easypicpaytest/internal/adapter/http/middleware"
	redisStore "github.com/medinasp/easypicpaytest/internal/adapter/storage/redis"
	"github.com/medinasp/easypicpaytest/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WalletSvc      ports.WalletService
	TransferSvc    ports.TransferService
	Finalizer      ports.TransferFinalizer // nil = transfers stay PENDING
	AuthSvc        ports.AuthService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	walletHandler := NewWalletHandler(deps.WalletSvc)
	wallets := v1.Group("/wallets")
	{
		// Signup is public; reads require a token.
		wallets.POST("", rl("wallets_create"), walletHandler.Create)
		wallets.GET("/:id", jwtAuth, rl("reads"), walletHandler.GetWallet)
		wallets.GET("/:id/balance", jwtAuth, rl("reads"), walletHandler.GetBalance)
	}

	// --- JWT-authenticated routes ---
	transactionHandler := NewTransactionHandler(deps.TransferSvc, deps.Finalizer)
	transactions := v1.Group("/transactions", jwtAuth)
	{
		transactions.POST("", rl("transfers"), transactionHandler.CreateTransfer)
		transactions.GET("/:id", rl("reads"), transactionHandler.GetTransaction)
	}

	return r
}
