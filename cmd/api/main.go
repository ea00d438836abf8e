package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/inventory-tracker/internal/application/auth"
	"github.com/jhoicas/inventory-tracker/internal/application/usecase"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/cache"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventory-tracker/internal/interfaces/http"
	"github.com/jhoicas/inventory-tracker/pkg/config"
	"github.com/jhoicas/inventory-tracker/pkg/jwt"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
	"github.com/jhoicas/inventory-tracker/pkg/password"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, postgres.NewTxRunner(pool)); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	hasher, err := password.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar hasher")
	}
	tokens, err := jwt.NewService(cfg.JWT.Secret, cfg.JWT.TTL(), jwt.WithIssuer(cfg.JWT.Issuer))
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar servicio JWT")
	}

	// Caché de principales opcional; sin REDIS_ADDR el gate consulta siempre la base.
	var principals auth.PrincipalCache
	if cfg.Redis.Enabled() {
		rdb := cache.NewRedisClient(cfg.Redis)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no responde; la caché fallará como miss")
		}
		principals = cache.NewPrincipalCache(rdb, cfg.Redis.CacheTTL)
	}

	authUC := auth.NewAuthUseCase(userRepo, hasher, tokens)
	authorizer := auth.NewAuthorizer(tokens, userRepo, principals)
	productUC := usecase.NewProductUseCase(productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.Middleware(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventory Tracker API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("documentación no encontrada; /docs deshabilitado")
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": cfg.App.Name + " en ejecución", "docs": "/docs"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			log.Error().Err(err).Msg("health: base de datos no disponible")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		Authorizer: authorizer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
