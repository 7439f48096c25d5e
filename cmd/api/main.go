package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/config"
	catalogHandler "github.com/veloura/boutique-service/internal/catalog/handler"
	catalogRepository "github.com/veloura/boutique-service/internal/catalog/repository"
	catalogUseCase "github.com/veloura/boutique-service/internal/catalog/usecase"
	categoryHandler "github.com/veloura/boutique-service/internal/category/handler"
	categoryRepository "github.com/veloura/boutique-service/internal/category/repository"
	categoryUseCase "github.com/veloura/boutique-service/internal/category/usecase"
	checkoutHandler "github.com/veloura/boutique-service/internal/checkout/handler"
	checkoutStripe "github.com/veloura/boutique-service/internal/checkout/stripe"
	checkoutUseCase "github.com/veloura/boutique-service/internal/checkout/usecase"
	"github.com/veloura/boutique-service/internal/content"
	contentHandler "github.com/veloura/boutique-service/internal/content/handler"
	customerHandler "github.com/veloura/boutique-service/internal/customer/handler"
	customerRepository "github.com/veloura/boutique-service/internal/customer/repository"
	customerUseCase "github.com/veloura/boutique-service/internal/customer/usecase"
	inventoryHandler "github.com/veloura/boutique-service/internal/inventory/handler"
	"github.com/veloura/boutique-service/internal/inventory/listener"
	inventoryRepository "github.com/veloura/boutique-service/internal/inventory/repository"
	inventoryUseCase "github.com/veloura/boutique-service/internal/inventory/usecase"
	"github.com/veloura/boutique-service/internal/mailer"
	"github.com/veloura/boutique-service/internal/media"
	mediaHandler "github.com/veloura/boutique-service/internal/media/handler"
	newsletterHandler "github.com/veloura/boutique-service/internal/newsletter/handler"
	newsletterRepository "github.com/veloura/boutique-service/internal/newsletter/repository"
	newsletterUseCase "github.com/veloura/boutique-service/internal/newsletter/usecase"
	orderHandler "github.com/veloura/boutique-service/internal/order/handler"
	orderRepository "github.com/veloura/boutique-service/internal/order/repository"
	orderUseCase "github.com/veloura/boutique-service/internal/order/usecase"
	"github.com/veloura/boutique-service/internal/platform/broker"
	"github.com/veloura/boutique-service/internal/platform/cache"
	"github.com/veloura/boutique-service/internal/platform/database"
	"github.com/veloura/boutique-service/internal/platform/logger"
	"github.com/veloura/boutique-service/internal/platform/search"
	socialHandler "github.com/veloura/boutique-service/internal/social/handler"
	socialRepository "github.com/veloura/boutique-service/internal/social/repository"
	socialUseCase "github.com/veloura/boutique-service/internal/social/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.LoadEnv()

	log := logger.New(&logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer log.Sync()

	log.Info("starting boutique service", zap.String("env", cfg.Server.AppEnv))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbCfg := &database.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	}
	db, err := database.NewPostgres(dbCfg)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(cfg.Postgres.MigrationsPath, dbCfg); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Search is optional: when the cluster is down the catalog serves from
	// postgres and sync resumes on the next write.
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		log.Warn("elasticsearch unavailable, search disabled", zap.Error(err))
		esClient = nil
	} else if err := esClient.CreateIndex(ctx, "products", productsMapping); err != nil {
		log.Warn("failed to ensure products index", zap.Error(err))
	}

	sender := mailer.NewSendGridSender(&mailer.Config{
		APIKey:    cfg.SendGrid.APIKey,
		FromEmail: cfg.SendGrid.FromEmail,
		FromName:  cfg.SendGrid.FromName,
	})

	brokerCfg := &broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	}
	consumer := broker.NewConsumer(brokerCfg)
	defer consumer.Close()
	producer := broker.NewProducer(brokerCfg)
	defer producer.Close()

	var mediaService *media.Service
	if cfg.Storage.Bucket != "" {
		mediaService, err = media.NewService(ctx, &media.Config{
			Bucket:       cfg.Storage.Bucket,
			UploadURLTTL: time.Duration(cfg.Storage.UploadURLTTL) * time.Second,
		})
		if err != nil {
			log.Warn("storage unavailable, image uploads disabled", zap.Error(err))
		} else {
			defer mediaService.Close()
		}
	}

	catalogRepo := catalogRepository.NewPGRepository(db)
	categoryRepo := categoryRepository.NewPGRepository(db)
	inventoryRepo := inventoryRepository.NewPGRepository(db)
	orderRepo := orderRepository.NewPGRepository(db)
	customerRepo := customerRepository.NewPGRepository(db)
	newsletterRepo := newsletterRepository.NewPGRepository(db)
	socialRepo := socialRepository.NewPGRepository(db)

	catalogUC := catalogUseCase.NewCatalogUseCase(catalogRepo, redisClient, esClient, log)
	categoryUC := categoryUseCase.NewCategoryUseCase(categoryRepo, log)
	inventoryUC := inventoryUseCase.NewInventoryUseCase(inventoryRepo, redisClient, log)
	orderUC := orderUseCase.NewOrderUseCase(orderRepo, catalogRepo, producer, sender, cfg.Stripe.Currency, log)
	customerUC := customerUseCase.NewCustomerUseCase(customerRepo, log)
	newsletterUC := newsletterUseCase.NewNewsletterUseCase(newsletterRepo, sender, cfg.Newsletter.UnsubscribeBaseURL, log)
	socialUC := socialUseCase.NewSocialUseCase(socialRepo, log)

	gateway := checkoutStripe.NewGateway(&checkoutStripe.Config{
		SecretKey:  cfg.Stripe.SecretKey,
		SuccessURL: cfg.Stripe.SuccessURL,
		CancelURL:  cfg.Stripe.CancelURL,
	})
	checkoutUC := checkoutUseCase.NewCheckoutUseCase(orderUC, orderRepo, gateway, customerUC, newsletterUC, log)

	cmsClient := content.NewClient(&content.Config{
		BaseURL:  cfg.CMS.BaseURL,
		Token:    cfg.CMS.Token,
		CacheTTL: time.Duration(cfg.CMS.CacheTTL) * time.Second,
	}, redisClient, log)

	orderListener := listener.NewOrderListener(consumer, inventoryUC, log)
	go orderListener.Start(ctx)

	validate := validator.New()

	catalogH := catalogHandler.NewCatalogHandler(catalogUC, validate, log)
	categoryH := categoryHandler.NewCategoryHandler(categoryUC, validate, log)
	inventoryH := inventoryHandler.NewInventoryHandler(inventoryUC, validate, log)
	orderH := orderHandler.NewOrderHandler(orderUC, validate, log)
	customerH := customerHandler.NewCustomerHandler(customerUC, validate, log)
	newsletterH := newsletterHandler.NewNewsletterHandler(newsletterUC, validate, log)
	socialH := socialHandler.NewSocialHandler(socialUC, validate, log)
	checkoutH := checkoutHandler.NewCheckoutHandler(checkoutUC, validate, log)
	contentH := contentHandler.NewContentHandler(cmsClient, log)

	app := fiber.New(fiber.Config{
		AppName: "boutique-service",
	})
	app.Use(requestid.New())
	app.Use(recoverer.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
	}))

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Storefront.
	app.Get("/products", catalogH.ListProducts)
	app.Get("/products/:slug", catalogH.ProductDetail)
	app.Get("/categories", categoryH.ListCategories(true))
	app.Get("/categories/:slug", categoryH.GetCategoryBySlug)
	app.Get("/pages/:slug", contentH.GetPage)
	app.Post("/orders", orderH.CreateOrder)
	app.Post("/checkout/sessions", checkoutH.StartCheckout)
	app.Get("/checkout/complete", checkoutH.CompleteCheckout)
	app.Post("/notify-me", checkoutH.NotifyMe)
	app.Post("/customers", customerH.RegisterCustomer)
	app.Post("/newsletter/subscribe", newsletterH.Subscribe)
	app.Get("/newsletter/unsubscribe", newsletterH.Unsubscribe)

	// Back office.
	admin := app.Group("/admin")
	admin.Get("/products", catalogH.ListAllProducts)
	admin.Post("/products", catalogH.CreateProduct)
	admin.Get("/products/:id", catalogH.GetProduct)
	admin.Put("/products/:id", catalogH.UpdateProduct)
	admin.Delete("/products/:id", catalogH.DeleteProduct)

	admin.Post("/products/:id/variants", inventoryH.CreateVariant)
	admin.Delete("/variants/:id", inventoryH.DeleteVariant)
	admin.Post("/variants/:id/adjustments", inventoryH.AdjustStock)
	admin.Post("/products/:id/stock/recompute", inventoryH.Recompute)
	admin.Get("/products/:id/movements", inventoryH.ListMovements)

	admin.Get("/categories", categoryH.ListCategories(false))
	admin.Post("/categories", categoryH.CreateCategory)
	admin.Put("/categories/:id", categoryH.UpdateCategory)
	admin.Delete("/categories/:id", categoryH.DeleteCategory)

	admin.Get("/orders", orderH.ListOrders)
	admin.Get("/orders/:id", orderH.GetOrder)
	admin.Patch("/orders/:id/status", orderH.UpdateStatus)

	admin.Get("/customers", customerH.ListCustomers)
	admin.Get("/customers/:id", customerH.GetCustomer)
	admin.Put("/customers/:id", customerH.UpdateCustomer)
	admin.Delete("/customers/:id", customerH.DeleteCustomer)

	admin.Get("/newsletter/campaigns", newsletterH.ListCampaigns)
	admin.Post("/newsletter/campaigns", newsletterH.CreateCampaign)
	admin.Post("/newsletter/campaigns/:id/send", newsletterH.SendCampaign)

	admin.Get("/social/posts", socialH.ListPosts)
	admin.Post("/social/posts", socialH.CreatePost)
	admin.Put("/social/posts/:id", socialH.UpdatePost)
	admin.Delete("/social/posts/:id", socialH.DeletePost)
	admin.Get("/social/performance", socialH.CampaignPerformance)

	if mediaService != nil {
		mediaH := mediaHandler.NewMediaHandler(mediaService, validate, log)
		admin.Post("/products/:id/images/upload-url", mediaH.SignedUploadURL)
	}

	go func() {
		if err := app.Listen(cfg.Server.HTTPPort); err != nil {
			log.Fatal("http server stopped", zap.Error(err))
		}
	}()
	log.Info("http server listening", zap.String("addr", cfg.Server.HTTPPort))

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}

const productsMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "category_id": {"type": "keyword"},
      "sku":         {"type": "keyword"},
      "slug":        {"type": "keyword"},
      "name":        {"type": "text"},
      "description": {"type": "text"},
      "price":       {"type": "double"},
      "sale_price":  {"type": "double"},
      "is_featured": {"type": "boolean"},
      "is_active":   {"type": "boolean"},
      "created_at":  {"type": "date"}
    }
  }
}`
