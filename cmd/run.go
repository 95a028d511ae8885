package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"coinbot/bot"
	"coinbot/config"
	"coinbot/database"
	"coinbot/events"
	"coinbot/provider"
	"coinbot/repository"
	"coinbot/service"
)

// Run initializes and starts the Discord frontend
func Run(ctx context.Context) error {
	log.Println("Starting coinbot...")

	// Load configuration
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := cfg.ValidateBot(); err != nil {
		return err
	}

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL, cfg.LockTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Println("Initializing services...")
	ledgerService := service.NewLedgerService(uowFactory)
	economyService := service.NewEconomyService(uowFactory, cfg.DailyReward, cfg.DailyCooldown)
	gameService := service.NewGameService(uowFactory)
	restrictionService := service.NewRestrictionService(uowFactory)
	userService := service.NewUserService(uowFactory, provider.PlaceholderProvider{})
	log.Println("Services initialized successfully")

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,
	}
	discordBot, err := bot.New(botConfig, ledgerService, economyService, gameService, restrictionService, userService)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
