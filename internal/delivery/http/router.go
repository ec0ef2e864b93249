package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mawadda-app/agency-backend/internal/delivery/http/handler"
	"github.com/mawadda-app/agency-backend/internal/delivery/http/middleware"
	"github.com/mawadda-app/agency-backend/internal/domain"
)

type Router struct {
	authHandler         *handler.AuthHandler
	profileHandler      *handler.ProfileHandler
	matchmakingHandler  *handler.MatchmakingHandler
	propositionHandler  *handler.PropositionHandler
	introRequestHandler *handler.IntroRequestHandler
	transferHandler     *handler.TransferHandler
	authMiddleware      *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	matchmakingHandler *handler.MatchmakingHandler,
	propositionHandler *handler.PropositionHandler,
	introRequestHandler *handler.IntroRequestHandler,
	transferHandler *handler.TransferHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:         authHandler,
		profileHandler:      profileHandler,
		matchmakingHandler:  matchmakingHandler,
		propositionHandler:  propositionHandler,
		introRequestHandler: introRequestHandler,
		transferHandler:     transferHandler,
		authMiddleware:      authMiddleware,
	}
}

// registerValidators installs the custom binding rules used by profile
// payloads.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("income_bracket", func(fl validator.FieldLevel) bool {
			return domain.IncomeLevel(fl.Field().String()) > 0
		})
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidators()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profiles := protected.Group("/profiles")
			{
				profiles.POST("", r.profileHandler.Create)
				profiles.GET("", r.profileHandler.ListMine)
				profiles.GET("/:id", r.profileHandler.Get)
				profiles.PUT("/:id", r.profileHandler.Update)
				profiles.POST("/:id/validate", r.profileHandler.Validate)
				profiles.POST("/:id/archive", r.profileHandler.Archive)
			}

			// Matchmaking routes
			matchmaking := protected.Group("/matchmaking")
			{
				matchmaking.POST("/score", r.matchmakingHandler.Score)
				matchmaking.POST("/suggest-introduction", r.matchmakingHandler.Suggest)
			}

			// Proposition routes
			propositions := protected.Group("/propositions")
			{
				propositions.POST("", r.propositionHandler.Propose)
				propositions.GET("/sent", r.propositionHandler.ListSent)
				propositions.GET("/group", r.propositionHandler.Group)
				propositions.POST("/send-to-other", r.propositionHandler.SendToOther)
				propositions.POST("/:id/respond", r.propositionHandler.Respond)
			}

			// Proposition request routes
			requests := protected.Group("/proposition-requests")
			{
				requests.POST("", r.introRequestHandler.Create)
				requests.GET("/incoming", r.introRequestHandler.ListIncoming)
				requests.GET("/outgoing", r.introRequestHandler.ListOutgoing)
				requests.POST("/:id/respond", r.introRequestHandler.Respond)
			}

			// Transfer routes
			transfers := protected.Group("/transfers")
			{
				transfers.POST("", r.transferHandler.Create)
				transfers.GET("/incoming", r.transferHandler.ListIncoming)
				transfers.GET("/outgoing", r.transferHandler.ListOutgoing)
				transfers.POST("/:id/accept", r.transferHandler.Accept)
				transfers.POST("/:id/reject", r.transferHandler.Reject)
			}
		}
	}

	return router
}
