package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/collabhub-backend/internal/config"
	"github.com/ignatzorin/collabhub-backend/internal/http/handlers"
	"github.com/ignatzorin/collabhub-backend/internal/http/middleware"
)

// Handlers набор HTTP хэндлеров приложения.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Profile      *handlers.ProfileHandler
	Campaign     *handlers.CampaignHandler
	Offer        *handlers.OfferHandler
	Contract     *handlers.ContractHandler
	Payment      *handlers.PaymentHandler
	Report       *handlers.ReportHandler
	Stats        *handlers.StatsHandler
	Notification *handlers.NotificationHandler
	Media        *handlers.MediaHandler
	WS           *handlers.WSHandler
	Health       *handlers.HealthHandler
	Seed         *handlers.SeedHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokens middleware.AccessTokenParser) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	if h.Seed != nil && !cfg.IsProduction() {
		api.POST("/seed", h.Seed.Seed)
	}

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware("auth", cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", h.Auth.Logout)
	}

	// Публичные маршруты
	api.GET("/creators", h.Profile.ListCreators)
	api.GET("/creators/:id", middleware.UUIDValidator("id"), h.Profile.GetCreator)
	api.GET("/ws", middleware.WSAuthMiddleware(tokens), h.WS.Handle)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		protected.GET("/auth/user", h.Auth.Me)
		protected.GET("/auth/sessions", h.Auth.ListSessions)
		protected.DELETE("/auth/sessions/:id", middleware.UUIDValidator("id"), h.Auth.DeleteSession)
		protected.POST("/user/role", h.Auth.AssignRole)
		protected.POST("/setup-brand", h.Auth.SetupBrand)

		protected.PUT("/creators/me", h.Profile.UpdateMyCreator)
		protected.PUT("/brands/me", h.Profile.UpdateMyBrand)

		protected.GET("/campaigns", h.Campaign.ListCampaigns)
		protected.POST("/campaigns", h.Campaign.CreateCampaign)
		protected.GET("/campaigns/:id", middleware.UUIDValidator("id"), h.Campaign.GetCampaign)
		protected.PATCH("/campaigns/:id", middleware.UUIDValidator("id"), h.Campaign.UpdateCampaign)

		protected.GET("/offers", h.Offer.ListOffers)
		protected.POST("/offers", h.Offer.CreateOffer)
		protected.PATCH("/offers/:id", middleware.UUIDValidator("id"), h.Offer.UpdateOffer)

		protected.GET("/contracts", h.Contract.ListContracts)
		protected.POST("/contracts", h.Contract.CreateContract)
		protected.PATCH("/contracts/:id/sign", middleware.UUIDValidator("id"), h.Contract.SignContract)

		protected.GET("/payments", h.Payment.ListPayments)
		protected.PATCH("/payments/:id/mark-paid", middleware.UUIDValidator("id"), h.Payment.MarkPaid)
		protected.POST("/create-payment-intent", h.Payment.CreatePaymentIntent)

		protected.GET("/reports/:contractId", middleware.UUIDValidator("contractId"), h.Report.ListReports)
		protected.GET("/stats", h.Stats.GetStats)

		protected.GET("/notifications", h.Notification.ListNotifications)
		protected.GET("/notifications/unread/count", h.Notification.CountUnread)
		protected.PUT("/notifications/read-all", h.Notification.MarkAllAsRead)
		protected.PUT("/notifications/:id/read", middleware.UUIDValidator("id"), h.Notification.MarkAsRead)
		protected.DELETE("/notifications/:id", middleware.UUIDValidator("id"), h.Notification.DeleteNotification)

		protected.GET("/media/photos", h.Media.ListMedia)
		protected.POST("/media/photos", h.Media.Upload)
		protected.DELETE("/media/photos/:id", middleware.UUIDValidator("id"), h.Media.DeleteMedia)
	}

	return r
}
