package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mawadda-app/agency-backend/internal/config"
	"github.com/mawadda-app/agency-backend/internal/delivery/http"
	"github.com/mawadda-app/agency-backend/internal/delivery/http/handler"
	"github.com/mawadda-app/agency-backend/internal/delivery/http/middleware"
	"github.com/mawadda-app/agency-backend/internal/infrastructure/database"
	"github.com/mawadda-app/agency-backend/internal/infrastructure/gemini"
	"github.com/mawadda-app/agency-backend/internal/infrastructure/server"
	"github.com/mawadda-app/agency-backend/internal/matching"
	"github.com/mawadda-app/agency-backend/internal/notifier"
	"github.com/mawadda-app/agency-backend/internal/repository/postgres"
	"github.com/mawadda-app/agency-backend/internal/usecase/auth"
	"github.com/mawadda-app/agency-backend/internal/usecase/introrequest"
	"github.com/mawadda-app/agency-backend/internal/usecase/matchmaking"
	"github.com/mawadda-app/agency-backend/internal/usecase/profile"
	"github.com/mawadda-app/agency-backend/internal/usecase/proposition"
	"github.com/mawadda-app/agency-backend/internal/usecase/transfer"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize Gemini client. AI suggestions are optional; failure only
	// disables that endpoint.
	geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey)
	if err != nil {
		logger.Warn("gemini client unavailable, introduction suggestions disabled", zap.Error(err))
		geminiClient = nil
	}

	// Initialize repositories
	matchmakerRepo := postgres.NewMatchmakerRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	propositionRepo := postgres.NewPropositionRepository(db)
	requestRepo := postgres.NewPropositionRequestRepository(db)
	transferRepo := postgres.NewTransferRequestRepository(db)

	// Event notifier
	events := notifier.NewRedisNotifier(redisClient, logger)

	// Compatibility scorer
	scorer := matching.NewScorer()
	scorer.DefaultAgeTolerance = cfg.Matchmaking.DefaultAgeTolerance
	scorer.ClampHobbies = cfg.Matchmaking.ClampHobbies

	// Initialize use cases
	authUseCase := auth.NewUseCase(
		matchmakerRepo,
		cfg.JWT.Secret,
		cfg.JWT.ExpiryMin,
	)

	profileUseCase := profile.NewUseCase(profileRepo)

	matchmakingUseCase := matchmaking.NewUseCase(
		profileRepo,
		scorer,
		redisClient,
		geminiClient,
		logger,
		cfg.Matchmaking.ScoreCacheTTL,
	)

	propositionUseCase := proposition.NewUseCase(
		propositionRepo,
		profileRepo,
		events,
		logger,
		cfg.Matchmaking.PropositionTTL,
	)

	introRequestUseCase := introrequest.NewUseCase(
		requestRepo,
		profileRepo,
		events,
		logger,
	)

	transferUseCase := transfer.NewUseCase(
		transferRepo,
		profileRepo,
		matchmakerRepo,
		events,
		logger,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	matchmakingHandler := handler.NewMatchmakingHandler(matchmakingUseCase)
	propositionHandler := handler.NewPropositionHandler(propositionUseCase)
	introRequestHandler := handler.NewIntroRequestHandler(introRequestUseCase)
	transferHandler := handler.NewTransferHandler(transferUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		matchmakingHandler,
		propositionHandler,
		introRequestHandler,
		transferHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, logger)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Gemini: geminiClient,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.Logger.Warn("error closing gemini client", zap.Error(err))
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
