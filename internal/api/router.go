package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shodhsrija/foundation-backend/internal/config"
	"github.com/shodhsrija/foundation-backend/internal/handlers"
	"github.com/shodhsrija/foundation-backend/internal/middleware"
	"github.com/shodhsrija/foundation-backend/internal/service"
	"github.com/shodhsrija/foundation-backend/internal/telemetry"
)

// Deps carries the wired services the router needs.
type Deps struct {
	Payments    *service.PaymentService
	Memberships *service.MembershipService
	Donations   *service.DonationService
	Issues      *service.IssueService
	Site        *service.SiteService
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(telemetry.TracingMiddleware())

	corsConfig := cors.DefaultConfig()
	if cfg.FrontendURL != "" {
		corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "foundation-backend"})
	})

	paymentHandler := handlers.NewPaymentHandler(deps.Payments, deps.Memberships)
	membershipHandler := handlers.NewMembershipHandler(deps.Memberships)
	donationHandler := handlers.NewDonationHandler(deps.Donations)
	issueHandler := handlers.NewIssueHandler(deps.Issues)
	siteHandler := handlers.NewSiteHandler(deps.Site)

	auth := middleware.Auth(cfg.JWTSecretKey)
	optional := middleware.OptionalAuth(cfg.JWTSecretKey)
	staff := middleware.RequireStaff()

	api := r.Group("/api")
	{
		payments := api.Group("/payments", auth)
		{
			payments.POST("/orders", paymentHandler.CreateOrder)
			payments.POST("/verify", paymentHandler.Verify)
			payments.GET("", paymentHandler.ListMine)
		}

		membership := api.Group("/membership")
		{
			membership.GET("/tiers", membershipHandler.ListTiers)
			membership.POST("/applications", auth, membershipHandler.Apply)
			membership.GET("/applications/me", auth, membershipHandler.ListMine)
			membership.GET("/applications/:id", auth, membershipHandler.Get)
			membership.POST("/applications/:id/review", auth, staff, membershipHandler.Review)
		}

		donations := api.Group("/donations")
		{
			donations.POST("", optional, donationHandler.Donate)
			donations.POST("/verify", optional, donationHandler.VerifyPayment)
			donations.GET("/me", auth, donationHandler.ListMine)
			donations.GET("/:id", donationHandler.Get)
			donations.GET("/:id/receipt", donationHandler.Receipt)
		}

		issues := api.Group("/issues")
		{
			issues.GET("/categories", issueHandler.ListCategories)
			issues.POST("", optional, issueHandler.Report)
			issues.GET("", issueHandler.ListPublic)
			issues.GET("/:id", issueHandler.Get)
			issues.POST("/:id/status", auth, staff, issueHandler.UpdateStatus)
		}

		site := api.Group("/site")
		{
			site.GET("/settings", siteHandler.GetSettings)
			site.POST("/settings", auth, staff, siteHandler.CreateSettings)
			site.PUT("/settings", auth, staff, siteHandler.UpdateSettings)
			site.GET("/stats", siteHandler.GetStats)
			site.PUT("/stats", auth, staff, siteHandler.UpdateStats)
		}
	}

	return r
}
