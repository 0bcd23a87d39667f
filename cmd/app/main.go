package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/samiul132/anginar-bazar/internal/account"
	"github.com/samiul132/anginar-bazar/internal/address"
	"github.com/samiul132/anginar-bazar/internal/cart"
	"github.com/samiul132/anginar-bazar/internal/catalog"
	"github.com/samiul132/anginar-bazar/internal/checkout"
	"github.com/samiul132/anginar-bazar/internal/config"
	"github.com/samiul132/anginar-bazar/internal/contact"
	"github.com/samiul132/anginar-bazar/internal/session"
	"github.com/samiul132/anginar-bazar/internal/store"
	"github.com/samiul132/anginar-bazar/internal/upstream"
)

// main wires dependencies and starts the HTTP server.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logrus.New()
	log.SetOutput(os.Stdout)
	if cfg.IsProd() {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	st := openStore(cfg, log)

	api := upstream.NewClient(cfg.APIBaseURL, cfg.AssetBaseURL, log)
	sessions := session.NewManager(st, log)
	carts := cart.NewManager(st, log, cfg.CartDebounce)

	catalogService := catalog.NewService(api, log)
	accountService := account.NewService(api, sessions, log)
	addressService := address.NewService(api, sessions, log)
	checkoutService := checkout.NewService(api, carts, sessions, addressService, log)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: cfg.CORSOrigin != "*",
	}))
	app.Use(requestLogger(log))
	app.Use(session.Middleware(cfg.SessionSecret))

	catalog.NewHandler(catalogService).RegisterRoutes(app)
	cart.NewHandler(carts).RegisterRoutes(app)
	account.NewHandler(accountService).RegisterRoutes(app)
	address.NewHandler(addressService).RegisterRoutes(app)
	checkout.NewHandler(checkoutService).RegisterRoutes(app)
	contact.NewHandler(api).RegisterRoutes(app)

	go func() {
		log.Infof("starting server on %s", cfg.Addr)
		if err := app.Listen(cfg.Addr); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdown
	log.Infof("shutting down: signal %s", sig)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("could not stop server gracefully")
	}

	// flush any pending cart writes before exit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	carts.Flush(ctx)

	log.Info("shutdown complete")
}

// openStore connects to redis when configured, else falls back to the
// in-memory store (dev only; carts vanish on restart).
func openStore(cfg config.Config, log *logrus.Logger) store.Store {
	if cfg.RedisAddr == "" {
		log.Warn("BAZAR_REDIS_ADDR not set, using in-memory store")
		return store.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("redis unreachable")
	}
	return store.NewRedisStore(client)
}

func requestLogger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Method(),
			"path":     c.OriginalURL(),
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start).String(),
		}).Info("request")
		return err
	}
}
