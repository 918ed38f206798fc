package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AryanYadav09/Ecommerce/controllers"
	"github.com/AryanYadav09/Ecommerce/database"
	"github.com/AryanYadav09/Ecommerce/logger"
	"github.com/AryanYadav09/Ecommerce/middleware"
	aws_pkg "github.com/AryanYadav09/Ecommerce/pkg/aws"
	"github.com/AryanYadav09/Ecommerce/repository"
	"github.com/AryanYadav09/Ecommerce/routes"
	"github.com/AryanYadav09/Ecommerce/sender"
	"github.com/AryanYadav09/Ecommerce/services"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic("config load failed: " + err.Error())
	}

	logger.Initialize(cfg.Env)
	log := logger.Log
	defer log.Sync()

	// --- Database ---
	if err := database.Connect(
		cfg.PostgresHost, cfg.PostgresPort,
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB,
		cfg.PostgresSSLMode, cfg.PostgresTimeZone,
	); err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatal("Redis connection failed", zap.Error(err))
	}

	// --- AWS setup (optional) ---
	var snsClient aws_pkg.SNSPublisher
	if cfg.AWSEnabled {
		awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
		if err != nil {
			log.Warn("Failed to load AWS config, order events disabled", zap.Error(err))
		} else {
			snsClient = aws_pkg.NewSNSClient(awsCfg)
		}
	}

	// --- Email ---
	var mail sender.EmailSender
	smtpSender, err := sender.NewSMTPSender(sender.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	})
	if err != nil {
		log.Warn("SMTP not configured, signup emails disabled", zap.Error(err))
	} else {
		mail = smtpSender
	}

	// --- Repositories ---
	orderRepo := repository.NewGormOrderRepository(database.DB)
	productRepo := repository.NewGormProductRepository(database.DB)
	userRepo := repository.NewGormUserRepository(database.DB)
	cartRepo := repository.NewRedisCartRepository(redisClient)
	signupRepo := repository.NewRedisPendingSignupRepository(redisClient)

	// --- Services ---
	tokenService := services.NewTokenService(cfg.JWTSecret)
	stripeService := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookKey)
	razorpayService := services.NewRazorpayService(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	orderService := services.NewOrderService(
		orderRepo, productRepo, cartRepo,
		stripeService, razorpayService,
		snsClient, cfg.OrderSNSTopicARN,
		cfg.DeliveryFee, cfg.Currency,
		log,
	)
	cartService := services.NewCartService(cartRepo, log)
	productService := services.NewProductService(productRepo, log)
	userService := services.NewUserService(
		userRepo, signupRepo, tokenService, mail,
		cfg.AdminEmail, cfg.AdminPassword,
		log,
	)

	// --- Controllers ---
	orderController := controllers.NewOrderController(orderService, stripeService, log)
	cartController := controllers.NewCartController(cartService, log)
	productController := controllers.NewProductController(productService, userService, log)
	userController := controllers.NewUserController(userService, log)

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	authLimiter := middleware.NewRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst)

	routes.RegisterOrderRoutes(r, orderController, tokenService)
	routes.RegisterCartRoutes(r, cartController, tokenService)
	routes.RegisterProductRoutes(r, productController, tokenService)
	routes.RegisterUserRoutes(r, userController, tokenService, authLimiter)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("Server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Redis close error", zap.Error(err))
	}
}
