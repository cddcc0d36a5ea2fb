package bootstrap

import (
	"log"

	"docchat-be/internal/config"
	"docchat-be/internal/controller"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/memory"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/internal/service"
	"docchat-be/pkg/conversation"
	"docchat-be/pkg/llm/factory"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController

	SysLogger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Dedicated file-only trail of every gateway call, kept out of the
	// main log.
	llmLog := logger.NewIsolatedLogger(cfg.App.LlmLogFilePath)

	// 2. LLM Provider
	llmModel := cfg.Ai.GroqModel
	if cfg.Ai.LLMProvider == "ollama" {
		llmModel = cfg.Ai.OllamaModel
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		llmModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GroqAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, llmModel)

	// 3. In-Memory Session State
	documentCache := memory.NewDocumentCache()

	// 4. Domain Components
	reconciler := conversation.NewReconciler(uowFactory)

	// 5. Services
	authService := service.NewAuthService(uowFactory)
	chatService := service.NewChatService(uowFactory, documentCache, llmProvider, reconciler, llmLog)
	documentService := service.NewDocumentService(uowFactory, documentCache, llmProvider, reconciler, llmLog)

	// 6. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		ChatController:     controller.NewChatController(chatService),
		DocumentController: controller.NewDocumentController(documentService),
		SysLogger:          sysLogger,
	}
}
