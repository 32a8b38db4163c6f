package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	flog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	jobboard "github.com/goliatone/go-jobboard"
	"github.com/goliatone/go-jobboard/admin"
	"github.com/goliatone/go-jobboard/jobs"
	"github.com/goliatone/go-jobboard/notify"
	"github.com/goliatone/go-jobboard/onboarding"
)

func main() {
	cfg := jobboard.LoadConfig()
	logger := jobboard.NewDefaultLogger()

	activity := jobboard.ActivitySinkFunc(func(ctx context.Context, event jobboard.ActivityEvent) error {
		logger.Info("activity %s user=%s actor=%s", event.EventType, event.UserID, event.Actor.ID)
		return nil
	})

	users := jobboard.NewUserStore(
		jobboard.WithUsersStateMachineOptions(
			jobboard.WithStateMachineActivitySink(activity),
			jobboard.WithStateMachineLogger(logger),
		),
	)

	provider := jobboard.NewUserProvider(users).
		WithLogger(logger).
		WithAdminCredentials(cfg.AdminUsername, cfg.AdminPassword)
	auther := jobboard.NewAuthenticator(provider, cfg).
		WithLogger(logger).
		WithActivitySink(activity)

	codes := jobboard.NewVerificationCodes()
	resetTokens := jobboard.NewResetTokens()
	mailer := notify.Console{}

	jobStore := jobs.NewJobStore()
	applicationStore := jobs.NewApplicationStore()

	authController := jobboard.NewAuthController(
		jobboard.WithAuthUsers(users),
		jobboard.WithAuthAuther(auther),
		jobboard.WithAuthLedgers(codes, resetTokens),
		jobboard.WithAuthNotifier(mailer),
		jobboard.WithAuthLogger(logger),
		jobboard.WithAuthActivitySink(activity),
		jobboard.WithAuthClientURL(cfg.ClientURL),
	)

	profileController := jobboard.NewProfileController(users, cfg.UploadsDir, logger)

	jobsController := jobs.NewController(
		jobs.WithStores(jobStore, applicationStore),
		jobs.WithUsers(users),
		jobs.WithNotifier(mailer),
		jobs.WithLogger(logger),
	)

	onboardingController := onboarding.NewController(
		onboarding.WithUsers(users),
		onboarding.WithLogger(logger),
	)

	adminController := admin.NewController(
		admin.WithUsers(users),
		admin.WithApplications(applicationStore),
		admin.WithLogger(logger),
		admin.WithActivitySink(activity),
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: jobboard.NewErrorHandler(jobboard.ErrorHandlerConfig{
			Logger: logger,
		}),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(flog.New())
	app.Use(cors.New())

	validator := auther.TokenService()

	jobboard.RegisterAuthRoutes(app, authController)
	jobboard.RegisterProfileRoutes(app, profileController, validator)
	jobs.RegisterRoutes(app, jobsController, validator)
	onboarding.RegisterRoutes(app, onboardingController, validator)
	admin.RegisterRoutes(app, adminController, validator)

	app.Static("/uploads", cfg.UploadsDir)
	app.Static("/", cfg.StaticDir)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown: %v", err)
		}
	}()

	logger.Info("listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
