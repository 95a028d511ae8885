package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"coinbot/config"
	"coinbot/database"
	"coinbot/events"
	"coinbot/panel"
	"coinbot/provider"
	"coinbot/repository"
	"coinbot/service"
)

// RunPanel initializes and starts the administrative HTTP service. It is a
// second independent client of the same database; it never shares in-process
// state with the bot.
func RunPanel(ctx context.Context) error {
	log.Println("Starting admin panel...")

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := cfg.ValidatePanel(); err != nil {
		return err
	}

	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL, cfg.LockTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	userService := service.NewUserService(uowFactory, provider.PlaceholderProvider{})
	ledgerService := service.NewLedgerService(uowFactory)
	restrictionService := service.NewRestrictionService(uowFactory)

	e := panel.NewServer(cfg.PanelAPIKey, userService, ledgerService, restrictionService)

	errChan := make(chan error, 1)
	go func() {
		if err := e.Start(cfg.PanelAddr); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	log.Printf("Admin panel listening on %s", cfg.PanelAddr)

	select {
	case err := <-errChan:
		return fmt.Errorf("panel server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down admin panel...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down panel server: %w", err)
	}

	log.Println("Shutdown completed")
	return nil
}
