// Package main provides the main entry point for the Shiftwave shift fill engine
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/shiftwave/shiftwave/app/handlers"
	"github.com/shiftwave/shiftwave/app/middleware"
	"github.com/shiftwave/shiftwave/app/router"
	"github.com/shiftwave/shiftwave/app/scheduler"
	"github.com/shiftwave/shiftwave/app/services"
	businessflow "github.com/shiftwave/shiftwave/business_flow"
	"github.com/shiftwave/shiftwave/config"
	_ "github.com/shiftwave/shiftwave/docs"
	"github.com/shiftwave/shiftwave/models"
	"github.com/shiftwave/shiftwave/repository"
	"github.com/shiftwave/shiftwave/utils"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting Shiftwave application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger per the logging configuration
func setupLogging(cfg config.LoggingConfig) {
	if cfg.Output == "stdout" || cfg.FilePath == "" {
		return
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	switch cfg.Output {
	case "file":
		log.SetOutput(fileWriter)
	case "both":
		log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey,
	// which the code allocation retry in the shift flow depends on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established (db=%d)", cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeSMSService selects the SMS provider client based on configuration
func initializeSMSService(cfg *config.ProductionConfig) services.SMSService {
	switch cfg.SMS.ProviderDomain {
	case "mock", "":
		return services.NewMockSMSService()
	default:
		return services.NewSMSService(&cfg.SMS)
	}
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	if rc != nil {
		cancel := startCacheHealthMonitor(context.Background(), rc, 30*time.Second)
		stopFuncs = append(stopFuncs, cancel)
	}

	// Initialize repositories
	shiftRepo := repository.NewShiftRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	areaRepo := repository.NewAreaRepository(db)
	interestRepo := repository.NewShiftInterestRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	templateRepo := repository.NewMessageTemplateRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Seed roles and message templates every deployment needs
	if err := ensureDefaultRoles(roleRepo); err != nil {
		return nil, err
	}
	if err := ensureDefaultTemplates(templateRepo); err != nil {
		return nil, err
	}

	// Initialize services
	smsService := initializeSMSService(cfg)
	log.Printf("SMS provider initialized: %s", smsService.Name())

	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	shiftLocation, err := time.LoadLocation(cfg.Shifts.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid shift timezone %q: %w", cfg.Shifts.Timezone, err)
	}

	// Initialize flows
	eligibilityFlow := businessflow.NewEligibilityFlow(employeeRepo)

	notificationFlow := businessflow.NewNotificationFlow(
		shiftRepo,
		employeeRepo,
		templateRepo,
		messageRepo,
		auditRepo,
		eligibilityFlow,
		smsService,
		businessflow.NotificationConfig{
			PublicBaseURL: cfg.Shifts.PublicBaseURL,
			SourceNumber:  cfg.SMS.SourceNumber,
			RetryCount:    cfg.SMS.RetryCount,
			RetryBackoff:  cfg.SMS.RetryBackoff,
		},
	)

	shiftFlow := businessflow.NewShiftFlow(
		shiftRepo,
		positionRepo,
		areaRepo,
		messageRepo,
		auditRepo,
		notificationFlow,
		businessflow.ShiftFlowConfig{
			Location:     shiftLocation,
			UrgentWindow: cfg.Shifts.UrgentWindow,
			ExpiryGrace:  cfg.Shifts.ExpiryGrace,
		},
	)

	assignmentFlow := businessflow.NewAssignmentFlow(
		shiftRepo,
		employeeRepo,
		auditRepo,
		notificationFlow,
	)

	interestFlow := businessflow.NewInterestFlow(
		db,
		shiftRepo,
		employeeRepo,
		interestRepo,
		auditRepo,
		eligibilityFlow,
	)

	deliveryFlow := businessflow.NewDeliveryFlow(messageRepo, employeeRepo)

	// Initialize handlers
	shiftHandler := handlers.NewShiftHandler(shiftFlow, assignmentFlow, notificationFlow, interestFlow)
	publicHandler := handlers.NewPublicHandler(interestFlow)
	webhookHandler := handlers.NewWebhookHandler(deliveryFlow, cfg.Security.WebhookToken)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo, roleRepo)

	// Initialize router
	appRouter := router.NewFiberRouter(
		cfg,
		shiftHandler,
		publicHandler,
		webhookHandler,
		authMiddleware,
	)

	// Start the expiry sweeper
	sweeper := scheduler.NewExpirySweeper(
		shiftFlow,
		rc,
		cfg.Cache.RedisPrefix,
		cfg.Shifts.SweepInterval,
		cfg.Logging.FilePath,
	)
	stopSweeper := sweeper.Start(context.Background())
	stopFuncs = append(stopFuncs, stopSweeper)

	// Create application struct from FiberRouter
	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}

// ensureDefaultRoles seeds the system roles when they are missing. Existing
// roles are never overwritten, so operators can tune permission sets.
func ensureDefaultRoles(roleRepo repository.RoleRepository) error {
	defaults := []models.Role{
		{
			Name:        "admin",
			Permissions: models.AllPermissions,
			IsSystem:    utils.ToPtr(true),
		},
		{
			Name: "supervisor",
			Permissions: []string{
				models.PermissionCreateShifts,
				models.PermissionAssignShifts,
				models.PermissionCancelShifts,
				models.PermissionNotifyShifts,
				models.PermissionViewInterest,
				models.PermissionViewMessages,
			},
			IsSystem: utils.ToPtr(true),
		},
		{
			Name: "viewer",
			Permissions: []string{
				models.PermissionViewInterest,
				models.PermissionViewMessages,
			},
			IsSystem: utils.ToPtr(true),
		},
	}

	for i := range defaults {
		existing, err := roleRepo.ByName(context.Background(), defaults[i].Name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		defaults[i].CreatedAt = utils.UTCNow()
		defaults[i].UpdatedAt = utils.UTCNow()
		if err := roleRepo.Save(context.Background(), &defaults[i]); err != nil {
			return err
		}
	}
	return nil
}

// ensureDefaultTemplates seeds one default template per dispatchable message
// type so dispatch works out of the box. Operators can add named variants
// later.
func ensureDefaultTemplates(templateRepo repository.MessageTemplateRepository) error {
	defaults := []models.MessageTemplate{
		{
			Name:        "default_shift_notification",
			MessageType: models.MessageTypeShiftNotification,
			Content:     "Open shift: {position} at {location} on {date}, {start_time}-{end_time}.{bonus} Interested? {link}",
		},
		{
			Name:        "default_shift_reminder",
			MessageType: models.MessageTypeShiftReminder,
			Content:     "Still open: {position} at {location} on {date}, {start_time}-{end_time}. Reply via {link}",
		},
		{
			Name:        "default_shift_confirmation",
			MessageType: models.MessageTypeShiftConfirmation,
			Content:     "You are confirmed for {position} at {location} on {date}, {start_time}-{end_time}.",
		},
		{
			Name:        "default_shift_rejection",
			MessageType: models.MessageTypeShiftRejection,
			Content:     "The {position} shift on {date} has been filled. Thanks for volunteering.",
		},
		{
			Name:        "default_bulk",
			MessageType: models.MessageTypeBulk,
			Content:     "Still available: {position} at {location} on {date}, {start_time}-{end_time}.{bonus} Claim: {link}",
		},
	}

	for i := range defaults {
		existing, err := templateRepo.ByName(context.Background(), defaults[i].Name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		defaults[i].IsDefault = utils.ToPtr(true)
		defaults[i].IsActive = utils.ToPtr(true)
		defaults[i].CreatedAt = utils.UTCNow()
		defaults[i].UpdatedAt = utils.UTCNow()
		if err := templateRepo.Save(context.Background(), &defaults[i]); err != nil {
			return err
		}
	}
	return nil
}
