package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodcourt/internal/domain/model"
	"github.com/polkiloo/foodcourt/internal/server/http/handlers"
	"github.com/polkiloo/foodcourt/internal/server/http/middleware"
	"github.com/polkiloo/foodcourt/internal/server/ws"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.FoodCourtFacade, socket *ws.Handler, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.Trace())
	engine.Use(middleware.RequestLogger(logger))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	ledgerHandler := handlers.NewLedgerHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade, facade)

	requireAuth := middleware.AuthRequired(facade)

	// the websocket upgrade must see the raw connection, so /ws stays outside gzip
	engine.GET("/ws", requireAuth, socket.Serve)

	api := engine.Group("/api")
	api.Use(middleware.DecompressRequest())
	api.Use(gzip.Gzip(gzip.DefaultCompression))

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	orders := api.Group("/orders", requireAuth)
	orders.POST("", middleware.RequireRole(model.RoleCustomer), orderHandler.Place)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id/status", orderHandler.UpdateStatus)

	wallet := api.Group("/wallet", requireAuth, middleware.RequireRole(model.RoleCustomer))
	wallet.POST("/topup", ledgerHandler.TopUp)

	merchant := api.Group("/merchant", requireAuth, middleware.RequireRole(model.RoleMerchant))
	merchant.GET("/balance", ledgerHandler.Balance)
	merchant.POST("/withdrawals", ledgerHandler.Withdraw)
	merchant.GET("/withdrawals", ledgerHandler.Withdrawals)

	admin := api.Group("/admin", requireAuth, middleware.RequireRole(model.RoleAdmin))
	admin.PUT("/withdrawals/:id", adminHandler.ResolveWithdrawal)
	admin.POST("/invoices", adminHandler.GenerateInvoice)
	admin.GET("/invoices", adminHandler.Invoices)
	admin.PUT("/invoices/:period/paid", adminHandler.MarkInvoicePaid)
	admin.GET("/reports/fees", adminHandler.FeeReport)

	return engine
}
