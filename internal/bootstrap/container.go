package bootstrap

import (
	baseLog "log"
	"os"
	"time"

	"idea-passport-be/internal/config"
	"idea-passport-be/internal/controller"
	"idea-passport-be/internal/pkg/logger"
	"idea-passport-be/internal/repository/memory"
	"idea-passport-be/internal/repository/unitofwork"
	"idea-passport-be/internal/service"
	"idea-passport-be/pkg/llm/factory"
	pktNats "idea-passport-be/pkg/nats"
	"idea-passport-be/pkg/passport/executor"
	"idea-passport-be/pkg/passport/memorytrack"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const fieldCompletedTopic = "FIELD_COMPLETED"

type Container struct {
	// Controllers
	SessionController  controller.ISessionController
	ChatController     controller.IChatController
	PassportController controller.IPassportController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Infrastructure handles for shutdown
	NatsPublisher *pktNats.Publisher
	Logger        logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	toolLogger := baseLog.New(os.Stdout, "", baseLog.LstdFlags)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		baseLog.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	baseLog.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-Memory Conversation State Storage
	stateRepo := memory.NewStateRepository(time.Duration(cfg.Session.StateCacheTTLMin) * time.Minute)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		baseLog.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Domain Components
	toolExecutor := executor.New(toolLogger)
	tracker := memorytrack.NewTracker(llmProvider, toolLogger)

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, fieldCompletedTopic)
	memoryService := service.NewMemoryService(uowFactory)
	consumerService := service.NewConsumerService(pubSub, fieldCompletedTopic, memoryService, sysLogger)

	sessionService := service.NewSessionService(uowFactory, natsPub, sysLogger, cfg.Session.MinCompletedFields)
	passportService := service.NewPassportService(uowFactory, cfg.Session.MinCompletedFields)
	chatService := service.NewChatService(
		uowFactory,
		stateRepo,
		llmProvider,
		toolExecutor,
		tracker,
		publisherService,
		natsPub,
		sysLogger,
		cfg.Session.MinCompletedFields,
	)

	// 4. Controllers
	return &Container{
		SessionController:  controller.NewSessionController(sessionService, memoryService),
		ChatController:     controller.NewChatController(chatService),
		PassportController: controller.NewPassportController(passportService),
		ConsumerService:    consumerService,
		NatsPublisher:      natsPub,
		Logger:             sysLogger,
	}
}
