package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arzan03/StoreFront/internal/config"
	"github.com/arzan03/StoreFront/internal/db"
	"github.com/arzan03/StoreFront/internal/handlers"
	"github.com/arzan03/StoreFront/internal/logger"
	"github.com/arzan03/StoreFront/internal/realtime"
	"github.com/arzan03/StoreFront/internal/services"
	"github.com/arzan03/StoreFront/internal/storage"
	"github.com/arzan03/StoreFront/internal/store"
	"github.com/arzan03/StoreFront/internal/store/mongostore"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const socketQueueLen = 16

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "json").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := db.ConnectMongoDB(ctx, cfg.Mongo.URI, log)
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	database := client.Database(cfg.Mongo.Database)
	if err := mongostore.EnsureIndexes(ctx, database); err != nil {
		return err
	}
	stores := mongostore.New(database)

	var tx store.TxRunner = store.NoTx{}
	if cfg.Mongo.Transactions {
		tx = db.NewTransactor(client)
	} else {
		log.Warn("multi-document transactions disabled")
	}

	images, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	hub := realtime.NewHub(socketQueueLen, log)

	auth := services.NewAuthService(stores.Users, cfg.Auth, log)
	products := services.NewProductService(stores.Products, stores.Users, images, log)

	routes := &handlers.Routes{
		JWTSecret: []byte(cfg.Auth.JWTSecret),
		Socket:    hub.Handler(),
		Auth:      handlers.NewAuthHandler(auth),
		Admin:     handlers.NewAdminHandler(auth, products),
		Products:  handlers.NewProductHandler(products),
		Carts:     handlers.NewCartHandler(services.NewCartService(stores.Carts, stores.Products, log)),
		Orders:    handlers.NewOrderHandler(services.NewOrderService(stores.Carts, stores.Orders, stores.Products, tx, cfg.Checkout, log)),
		Wishlists: handlers.NewWishlistHandler(services.NewWishlistService(stores.Wishlists, stores.Products, log)),
		Contacts:  handlers.NewContactHandler(services.NewContactService(stores.Contacts, hub, log)),
		Reviews:   handlers.NewReviewHandler(services.NewTestimonialService(stores.Testimonials, log)),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(log.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.FrontendURL,
		AllowCredentials: cfg.Server.FrontendURL != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	if cfg.Storage.Driver == "local" {
		app.Static(cfg.Storage.URLPrefix, cfg.Storage.UploadDir)
	}
	routes.Mount(app)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Server.Port)
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(sctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
