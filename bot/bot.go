package bot

import (
	"fmt"

	"coinbot/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

type Bot struct {
	config             Config
	session            *discordgo.Session
	ledgerService      service.LedgerService
	economyService     service.EconomyService
	gameService        service.GameService
	restrictionService service.RestrictionService
	userService        service.UserService
}

func New(config Config, ledgerService service.LedgerService, economyService service.EconomyService, gameService service.GameService, restrictionService service.RestrictionService, userService service.UserService) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		config:             config,
		session:            dg,
		ledgerService:      ledgerService,
		economyService:     economyService,
		gameService:        gameService,
		restrictionService: restrictionService,
		userService:        userService,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	// Commands are guild-registered; an interaction without member data
	// (e.g. from a DM) has no user to act on.
	if i.Member == nil || i.Member.User == nil {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "rules":
		b.handleRules(s, i)
	case "balance":
		b.handleBalance(s, i)
	case "daily":
		b.handleDaily(s, i)
	case "coinflip":
		b.handleCoinflip(s, i)
	case "link_profile":
		b.handleLinkProfile(s, i)
	case "mod_ban_games":
		b.handleModBanGames(s, i)
	}
}
