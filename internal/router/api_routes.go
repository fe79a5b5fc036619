package router

import (
	"github.com/Ativos-Tecnologia/radar-sub000/internal/config"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/handler"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/middleware"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/repository"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/service"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func SetupAPIRoutes(
	router fiber.Router,
	db *sqlx.DB,
	rdb *redis.Client,
	hub *ws.Hub,
	cfg *config.Config,
) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	entidadeRepo := repository.NewEntidadeRepository(db)
	tribunalRepo := repository.NewTribunalRepository(db)
	precatorioRepo := repository.NewPrecatorioRepository(db)
	sessionRepo := repository.NewImportSessionRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg)
	templateService := service.NewTemplateService()
	importService := service.NewImportService(precatorioRepo, entidadeRepo, tribunalRepo, progressPublisher(rdb, hub), rdb)

	// Initialize Asynq client (optional - only if Redis is available)
	var asynqClient *asynq.Client
	if rdb != nil {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.AsynqRedisAddr,
			Password: cfg.AsynqRedisPassword,
			DB:       cfg.AsynqRedisDB,
		})
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	entidadeHandler := handler.NewEntidadeHandler(entidadeRepo)
	tribunalHandler := handler.NewTribunalHandler(tribunalRepo)
	precatorioHandler := handler.NewPrecatorioHandler(precatorioRepo)
	importHandler := handler.NewImportHandler(importService, templateService, sessionRepo, asynqClient, rdb, cfg)

	// Public routes
	auth := router.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/logout", authHandler.Logout)

	// Protected routes
	protected := router.Group("", middleware.AuthMiddleware(cfg))

	// Auth routes
	protected.Get("/auth/me", authHandler.Me)

	// Entidade routes
	entidades := protected.Group("/entidades")
	entidades.Get("/", entidadeHandler.GetEntidades)
	entidades.Get("/:id", entidadeHandler.GetEntidade)
	entidades.Post("/", entidadeHandler.CreateEntidade)
	entidades.Put("/:id", entidadeHandler.UpdateEntidade)

	// Tribunal routes
	tribunais := protected.Group("/tribunais")
	tribunais.Get("/", tribunalHandler.GetTribunais)
	tribunais.Get("/:id", tribunalHandler.GetTribunal)
	tribunais.Post("/", tribunalHandler.CreateTribunal)

	// Precatorio routes
	precatorios := protected.Group("/precatorios")
	precatorios.Get("/", precatorioHandler.GetPrecatorios)
	precatorios.Get("/:id", precatorioHandler.GetPrecatorio)

	// Import routes
	imports := protected.Group("/imports")
	imports.Post("/", importHandler.Import)
	imports.Post("/async", importHandler.ImportAsync)
	imports.Get("/template", importHandler.DownloadTemplate)
	imports.Get("/sessions", importHandler.GetSessions)
	imports.Get("/sessions/:id", importHandler.GetSessionDetail)
	imports.Get("/progress/:client_id", importHandler.GetProgress)
}

// progressPublisher picks the event path for synchronous imports: through the
// Redis bridge when Redis is up (so worker and web emit identically), straight
// to the local hub when it is not.
func progressPublisher(rdb *redis.Client, hub *ws.Hub) service.Publisher {
	if rdb != nil {
		return ws.NewRedisPublisher(rdb)
	}
	return hub
}
