package bootstrap

import (
	"context"
	"time"

	"notehub-be/internal/config"
	"notehub-be/internal/controller"
	"notehub-be/internal/pkg/logger"
	"notehub-be/internal/pkg/serverutils"
	"notehub-be/internal/repository/memory"
	"notehub-be/internal/repository/unitofwork"
	"notehub-be/internal/service"
	"notehub-be/pkg/events"
	"notehub-be/pkg/llm"
	"notehub-be/pkg/llm/factory"
	pktNats "notehub-be/pkg/nats"

	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	RecommendationController controller.IRecommendationController
	NoteController           controller.INoteController
	ProfileController        controller.IProfileController

	// Background Services (Exposed for main.go to run)
	ActivityRelayService service.IActivityRelayService

	localBus      *events.LocalBus
	natsPublisher *pktNats.Publisher
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	auth := serverutils.NewAuthenticator(cfg.Auth.JwtSecret)

	// 2. Event Bus
	localBus := events.NewLocalBus(events.NewGoChannel(), events.ActivityTopic)

	var natsPublisher *pktNats.Publisher
	var activitySink events.Publisher
	if cfg.App.NatsURL != "" {
		p, err := pktNats.NewPublisher(ctx, cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "NATS unavailable, activity events will only be logged", map[string]interface{}{
				"url":   cfg.App.NatsURL,
				"error": err.Error(),
			})
		} else {
			natsPublisher = p
			activitySink = p
		}
	}

	// 3. Completion provider
	llmProvider := newLLMProvider(cfg, sysLogger)

	// 4. Services
	recommendationService := service.NewRecommendationService(
		uowFactory,
		llmProvider,
		service.RecommendationConfig{
			Provider:    cfg.Ai.LLMProvider,
			Model:       cfg.Ai.LLMModel,
			Temperature: cfg.Ai.Temperature,
		},
		sysLogger,
	)
	noteService := service.NewNoteService(uowFactory, localBus, sysLogger)
	profileService := service.NewProfileService(uowFactory, memory.NewSchoolRepository(service.SchoolCacheTTL))
	activityRelay := service.NewActivityRelayService(localBus, activitySink, sysLogger)

	// 5. Controllers
	return &Container{
		Logger: sysLogger,

		RecommendationController: controller.NewRecommendationController(recommendationService, auth, sysLogger),
		NoteController:           controller.NewNoteController(noteService, auth),
		ProfileController:        controller.NewProfileController(profileService, noteService, auth),

		ActivityRelayService: activityRelay,

		localBus:      localBus,
		natsPublisher: natsPublisher,
	}
}

// newLLMProvider returns nil when the provider cannot be built; the
// recommendation endpoint then answers 500 instead of the process exiting.
func newLLMProvider(cfg *config.Config, sysLogger logger.ILogger) llm.LLMProvider {
	baseURL := cfg.Ai.GatewayBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}

	provider, err := factory.NewLLMProvider(factory.Params{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  baseURL,
		APIKey:   cfg.Ai.GatewayAPIKey,
		Timeout:  time.Duration(cfg.Ai.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		sysLogger.Error("BOOTSTRAP", "Completion provider not configured", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"error":    err,
		})
		return nil
	}
	return provider
}

// Close stops the event bus and the broker connection.
func (c *Container) Close() {
	if c.localBus != nil {
		if err := c.localBus.Close(); err != nil {
			c.Logger.Warn("BOOTSTRAP", "Failed to close activity bus", map[string]interface{}{"error": err.Error()})
		}
	}
	if c.natsPublisher != nil {
		c.natsPublisher.Close()
	}
}
