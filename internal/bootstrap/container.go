package bootstrap

import (
	"log"
	"time"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/controller"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/internal/service"
	"ai-chat-be/pkg/events"
	"ai-chat-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const chatActivityTopic = "CHAT_ACTIVITY"

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	ChatController controller.IChatController
	LLMController  controller.ILLMController

	// Background services (exposed for main.go to run)
	ActivityService service.IActivityService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	eventPublisher := events.NewPublisher(pubSub, chatActivityTopic)

	// 3. LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.LLMTimeout,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. In-memory stores
	activityRepo := memory.NewActivityRepository()
	modelCache := memory.NewModelCache(time.Minute)

	// 5. Services
	authService := service.NewAuthService(uowFactory, cfg.Auth)
	chatService := service.NewChatService(uowFactory, eventPublisher, sysLogger)
	llmService := service.NewLLMService(llmProvider, modelCache, sysLogger)
	activityService := service.NewActivityService(pubSub, chatActivityTopic, activityRepo, sysLogger)

	return &Container{
		AuthController:  controller.NewAuthController(authService),
		ChatController:  controller.NewChatController(chatService, activityService),
		LLMController:   controller.NewLLMController(llmService),
		ActivityService: activityService,
		Logger:          sysLogger,
	}
}
