package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mkadlec/fakturace-api/internal/application/billing"
	"github.com/mkadlec/fakturace-api/internal/application/timesheet"
	"github.com/mkadlec/fakturace-api/internal/infrastructure/postgres"
	httpRouter "github.com/mkadlec/fakturace-api/internal/interfaces/http"
	"github.com/mkadlec/fakturace-api/pkg/config"
	"github.com/mkadlec/fakturace-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("načtení konfigurace: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("spouštím aplikaci")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("připojení k PostgreSQL")
	}
	defer pool.Close()

	entryRepo := postgres.NewEntryRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	phaseRepo := postgres.NewPhaseRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	invoiceUC := billing.NewInvoiceUseCase(txRunner, entryRepo, invoiceRepo, clientRepo, settingsRepo, log)
	entryUC := timesheet.NewEntryUseCase(entryRepo, clientRepo, phaseRepo, settingsRepo)
	clientUC := timesheet.NewClientUseCase(clientRepo, phaseRepo)
	settingsUC := timesheet.NewSettingsUseCase(settingsRepo, timesheet.SettingsDefaults{
		HourlyRate: cfg.Billing.DefaultHourlyRate,
		Currency:   cfg.Billing.Currency,
		DueDays:    cfg.Billing.DefaultDueDays,
		TaxRate:    cfg.Billing.DefaultTaxRate,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InvoiceUC:  invoiceUC,
		EntryUC:    entryUC,
		ClientUC:   clientUC,
		SettingsUC: settingsUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server skončil")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("přijat signál k ukončení, zavírám server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("ukončení serveru")
	}

	log.Info().Msg("aplikace zastavena")
}
