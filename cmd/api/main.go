package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"upcyclehub/internal/adapter/api"
	"upcyclehub/internal/adapter/api/handler"
	apimiddleware "upcyclehub/internal/adapter/api/middleware"
	"upcyclehub/internal/adapter/api/router"
	"upcyclehub/internal/adapter/repository"
	domainrepo "upcyclehub/internal/domain/repository"
	"upcyclehub/internal/infrastructure/ratelimit"
	"upcyclehub/internal/infrastructure/websocket"
	"upcyclehub/internal/usecase"
	"upcyclehub/pkg/config"
	"upcyclehub/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var (
		userRepo         domainrepo.UserRepository
		productRepo      domainrepo.ProductRepository
		conversationRepo domainrepo.ConversationRepository
		messageRepo      domainrepo.MessageRepository
	)

	if cfg.DatabaseURL != "" {
		db, err := repository.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		userRepo = repository.NewPostgresUserRepository(db)
		productRepo = repository.NewPostgresProductRepository(db)
		conversationRepo = repository.NewPostgresConversationRepository(db)
		messageRepo = repository.NewPostgresMessageRepository(db)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage (data is lost on restart)")
		store := repository.NewMemoryStore()
		userRepo = store.Users()
		productRepo = store.Products()
		conversationRepo = store.Conversations()
		messageRepo = store.Messages()
	}

	authUseCase := usecase.NewAuthUseCase(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	productUseCase := usecase.NewProductUseCase(productRepo)
	chatUseCase := usecase.NewChatUseCase(conversationRepo, messageRepo, productRepo)

	registry := websocket.NewRegistry()
	limiter := ratelimit.NewLimiter()
	chatRouter := websocket.NewChatRouter(registry, chatUseCase, limiter)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(cfg.JWTSecret)

	router.Setup(e, router.Handlers{
		Auth:         handler.NewAuthHandler(authUseCase),
		Product:      handler.NewProductHandler(productUseCase),
		Conversation: handler.NewConversationHandler(chatUseCase),
		WebSocket:    handler.NewWebSocketHandler(chatRouter),
		Health:       handler.NewHealthHandler(registry),
	}, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
