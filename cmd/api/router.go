package main

import (
	"net/http"
	"time"

	"svpportal/internal/config"
	"svpportal/internal/events"
	"svpportal/internal/mailer"
	"svpportal/internal/metrics"
	"svpportal/internal/middleware"
	"svpportal/internal/modules/applicant"
	"svpportal/internal/modules/auth"
	"svpportal/internal/modules/certificate"
	"svpportal/internal/modules/laborresult"
	"svpportal/internal/modules/support"
	"svpportal/internal/modules/upload"
	"svpportal/internal/modules/user"
	jwtsvc "svpportal/internal/pkg/jwt"
	"svpportal/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// signup, OTP, support and upload endpoints get a tighter budget than lookups
const writeLimitDivisor = 3

func newRouter(cfg *config.Config, db *gorm.DB, notifier *mailer.Notifier, hub *events.Hub, limiterStore redis.Cmdable) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	applicantRepo := repository.NewApplicantRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)
	laborRepo := repository.NewLaborResultRepository(db)
	ticketRepo := repository.NewSupportTicketRepository(db)

	tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, tokens))
	userHandler := user.NewHandler(user.NewService(userRepo))
	applicantHandler := applicant.NewHandler(applicant.NewService(
		applicantRepo, otpRepo, certificateRepo, notifier, hub,
		applicant.WithOTPTTL(cfg.OTPTTL),
		applicant.WithMailTimeout(cfg.MailTimeout),
	))
	certificateHandler := certificate.NewHandler(certificate.NewService(certificateRepo))
	laborHandler := laborresult.NewHandler(laborresult.NewService(laborRepo))
	supportHandler := support.NewHandler(support.NewService(ticketRepo))
	uploadHandler := upload.NewHandler(upload.NewService(cfg.UploadDir, cfg.UploadURLBase))
	eventsHandler := events.NewHandler(hub, cfg.CORSAllowedOrigins)

	lookupLimit := cfg.RateLimitPerMinute
	writeLimit := max(lookupLimit/writeLimitDivisor, 1)
	limit := func(scope string, n int) gin.HandlerFunc {
		return middleware.RateLimit(limiterStore, scope, n, time.Minute, middleware.FailOpen)
	}

	authRequired := middleware.JWTAuth(tokens)
	adminOnly := middleware.AdminOnly()

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Static(cfg.UploadURLBase, cfg.UploadDir)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("", index)

		authHandler.RegisterRoutes(api, authRequired)
		userHandler.RegisterRoutes(api, authRequired, adminOnly)
		applicantHandler.RegisterRoutes(api, limit("applicant_otp", writeLimit), authRequired, adminOnly)
		certificateHandler.RegisterRoutes(api, limit("certificate_verify", lookupLimit), authRequired, adminOnly)
		laborHandler.RegisterRoutes(api, limit("labor_check", lookupLimit), authRequired, adminOnly)
		supportHandler.RegisterRoutes(api, limit("support_submit", writeLimit), authRequired, adminOnly)
		uploadHandler.RegisterRoutes(api, limit("upload", writeLimit), authRequired, adminOnly)

		api.GET("/admin/events", middleware.QueryTokenAuth(tokens), adminOnly, eventsHandler.ServeWS)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	return r
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "SVP Backend API is running",
	})
}

func index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "SVP International Backend API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"health":       "/api/health",
			"auth":         "/api/auth",
			"users":        "/api/users",
			"applicants":   "/api/applicants",
			"certificates": "/api/certificates",
			"laborResults": "/api/labor-results",
			"support":      "/api/support",
			"upload":       "/api/upload",
			"adminEvents":  "/api/admin/events",
		},
	})
}
