package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobledger/jobledger-backend/internal/config"
	"github.com/jobledger/jobledger-backend/internal/http/handlers"
	"github.com/jobledger/jobledger-backend/internal/http/middleware"
	"github.com/jobledger/jobledger-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	jobHandler *handlers.JobHandler,
	bidHandler *handlers.BidHandler,
	escrowHandler *handlers.EscrowHandler,
	milestoneHandler *handlers.MilestoneHandler,
	disputeHandler *handlers.DisputeHandler,
	ratingHandler *handlers.RatingHandler,
	profileHandler *handlers.ProfileHandler,
	bankHandler *handlers.BankHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/avatars", http.Dir(cfg.AvatarStoragePath))

	api := r.Group("/api")

	// Публичные маршруты: чтение состояния леджера.
	api.GET("/jobs", jobHandler.ListJobs)
	api.GET("/jobs/:id", middleware.NumericIDValidator("id"), jobHandler.GetJob)
	api.GET("/jobs/:id/events", middleware.NumericIDValidator("id"), jobHandler.ListJobEvents)
	api.GET("/jobs/:id/bids/:freelancerId", middleware.NumericIDValidator("id"), middleware.UUIDValidator("freelancerId"), bidHandler.GetBid)
	api.GET("/jobs/:id/escrow", middleware.NumericIDValidator("id"), escrowHandler.GetEscrow)
	api.GET("/jobs/:id/milestones", middleware.NumericIDValidator("id"), milestoneHandler.ListMilestones)
	api.GET("/jobs/:id/milestones/:milestoneId", middleware.NumericIDValidator("id"), milestoneHandler.GetMilestone)
	api.GET("/disputes/:id", middleware.NumericIDValidator("id"), disputeHandler.GetDispute)
	api.GET("/users/:id/rating", middleware.UUIDValidator("id"), ratingHandler.GetUserRating)
	api.GET("/users/:id/profile", middleware.UUIDValidator("id"), profileHandler.GetProfile)
	api.GET("/ws", wsHandler.Handle)

	// Защищённые маршруты: операции, меняющие состояние.
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	protected.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		protected.POST("/jobs", jobHandler.CreateJob)
		protected.POST("/jobs/:id/cancel", middleware.NumericIDValidator("id"), jobHandler.CancelJob)
		protected.POST("/jobs/:id/bids", middleware.NumericIDValidator("id"), bidHandler.SubmitBid)
		protected.POST("/jobs/:id/accept-bid", middleware.NumericIDValidator("id"), escrowHandler.AcceptBid)
		protected.POST("/jobs/:id/complete", middleware.NumericIDValidator("id"), escrowHandler.CompleteJob)
		protected.POST("/jobs/:id/milestones/:milestoneId/complete", middleware.NumericIDValidator("id"), milestoneHandler.CompleteMilestone)
		protected.POST("/jobs/:id/dispute", middleware.NumericIDValidator("id"), disputeHandler.OpenDispute)
		protected.POST("/jobs/:id/rate", middleware.NumericIDValidator("id"), ratingHandler.RateJob)

		protected.POST("/disputes/:id/assign", middleware.NumericIDValidator("id"), disputeHandler.AssignArbitrator)
		protected.POST("/disputes/:id/resolve", middleware.NumericIDValidator("id"), disputeHandler.ResolveDispute)
		protected.POST("/disputes/:id/close", middleware.NumericIDValidator("id"), disputeHandler.CloseDispute)

		protected.PUT("/profile", profileHandler.UpdateProfile)
		protected.PUT("/profile/skills", profileHandler.UpdateSkills)
		protected.POST("/profile/avatar", profileHandler.UploadAvatar)

		protected.GET("/bank/balance", bankHandler.Balance)
		protected.POST("/bank/deposit", bankHandler.Deposit)
	}

	return r
}
