package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-sync/internal/audit"
	"github.com/BruksfildServices01/salon-sync/internal/config"
	domainBooking "github.com/BruksfildServices01/salon-sync/internal/domain/booking"
	domainSalon "github.com/BruksfildServices01/salon-sync/internal/domain/salon"
	"github.com/BruksfildServices01/salon-sync/internal/handlers"
	"github.com/BruksfildServices01/salon-sync/internal/middleware"
	ucBooking "github.com/BruksfildServices01/salon-sync/internal/usecase/booking"
	ucSalon "github.com/BruksfildServices01/salon-sync/internal/usecase/salon"
)

// Deps are the singletons built by main and shared by every route.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger
	Now    func() time.Time

	Bookings   domainBooking.Repository
	Salons     domainSalon.Repository
	AuditStore audit.Store
	Audit      *audit.Dispatcher
	Renderer   ucSalon.Renderer
	Hub        *ucBooking.Hub

	Cleanup *ucSalon.CleanupExpiredSessions
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🧠 USE CASES - BOOKINGS
	// ======================================================
	ingestBookingUC := ucBooking.NewIngestBooking(d.Bookings, d.Audit)

	// ======================================================
	// 🧠 USE CASES - SALONS
	// ======================================================
	salonHandler := handlers.NewSalonHandler(handlers.SalonHandlerDeps{
		Register:    ucSalon.NewRegisterSalon(d.Salons, d.Audit),
		Get:         ucSalon.NewGetSalon(d.Salons),
		List:        ucSalon.NewListSalons(d.Salons),
		IsConnected: ucSalon.NewIsSalonConnected(d.Salons),
		GenerateQR:  ucSalon.NewGenerateQRCode(d.Salons, d.Renderer, d.Audit),
		Connect:     ucSalon.NewMarkSalonConnected(d.Salons, d.Audit),
		Disconnect:  ucSalon.NewDisconnectSalon(d.Salons, d.Audit),
		Heartbeat:   ucSalon.NewUpdateHeartbeat(d.Salons),
		Cleanup:     d.Cleanup,
	})

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Config)
	dashboardHandler := handlers.NewDashboardHandler(d.Hub, d.Now, d.Log)
	ingestHandler := handlers.NewIngestHandler(ingestBookingUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditStore)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🤖 BOT (API KEY)
		// ------------------------------
		botKey := middleware.APIKeyMiddleware(d.Config.BotAPIKey)

		api.POST("/bookings", botKey, ingestHandler.Create)

		bot := api.Group("/bot")
		bot.Use(botKey)
		{
			bot.GET("/salons/:id/status", salonHandler.Status)
			bot.POST("/salons/:id/connect", salonHandler.Connect)
			bot.POST("/salons/:id/heartbeat", salonHandler.Heartbeat)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			// ------------------------------
			// DASHBOARD
			// ------------------------------
			secured.GET("/bookings", dashboardHandler.View)
			secured.GET("/bookings/stream", dashboardHandler.Stream)
			secured.GET("/bookings/export.csv", dashboardHandler.Export)
			secured.POST("/bookings/reload", dashboardHandler.Reload)

			// ------------------------------
			// SALONS
			// ------------------------------
			secured.GET("/salons", salonHandler.List)
			secured.POST("/salons", salonHandler.Create)
			secured.GET("/salons/:id", salonHandler.Get)
			secured.GET("/salons/:id/status", salonHandler.Status)
			secured.POST("/salons/:id/qr", salonHandler.GenerateQR)
			secured.POST("/salons/:id/connect", salonHandler.Connect)
			secured.POST("/salons/:id/disconnect", salonHandler.Disconnect)
			secured.POST("/salons/:id/heartbeat", salonHandler.Heartbeat)
			secured.POST("/salons/cleanup", salonHandler.Cleanup)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
