package bootstrap

import (
	"log"
	"time"

	"ask-backend/internal/config"
	"ask-backend/internal/controller"
	"ask-backend/internal/pkg/logger"
	"ask-backend/internal/service"
	"ask-backend/pkg/embedding"
	"ask-backend/pkg/llm/factory"
	"ask-backend/pkg/rag/session"
	"ask-backend/pkg/splitter"
	"ask-backend/pkg/vectorstore/memory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for graceful shutdown
	SessionStore *session.Store
	Logger       logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Storage
	vectors := memory.NewStore(embeddingProvider)
	sessionStore := session.NewStore(time.Duration(cfg.Rag.SessionTTLMinutes) * time.Minute)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.SessionTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.SessionTopic, sysLogger)

	analysisService := service.NewAnalysisService(llmProvider, sysLogger)
	documentService := service.NewDocumentService(
		sessionStore,
		vectors,
		analysisService,
		publisherService,
		sysLogger,
		splitter.Options{
			ChunkSize:    cfg.Rag.ChunkSize,
			ChunkOverlap: cfg.Rag.ChunkOverlap,
		},
		cfg.App.DataDir,
		cfg.Rag.HistoryLimit,
	)
	chatService := service.NewChatService(sessionStore, llmProvider, sysLogger, cfg.Rag.TopK, cfg.Rag.FlashcardCount)

	// 6. Controllers
	return &Container{
		DocumentController: controller.NewDocumentController(documentService, chatService),

		ConsumerService: consumerService,
		SessionStore:    sessionStore,
		Logger:          sysLogger,
	}
}
