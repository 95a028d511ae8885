package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"coinbot/bot/common"
	"coinbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const rulesText = "**Game rules:**\n" +
	"1) No cheating with stakes or results.\n" +
	"2) No spamming challenges or games.\n" +
	"3) Every stake is recorded by the bot. Disputes go to the moderators.\n" +
	"4) Violations earn a game ban, temporary or permanent.\n"

func (b *Bot) handleRules(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.RespondWithMessage(s, i, rulesText, true); err != nil {
		log.Errorf("Error responding to rules command: %v", err)
	}
}

func (b *Bot) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	target := i.Member.User
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}

	userID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", target.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	balance, err := b.ledgerService.GetBalance(ctx, userID)
	if err != nil {
		log.Errorf("Error getting balance for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to retrieve balance. Please try again.")
		return
	}

	message := fmt.Sprintf("Balance of %s: **%s coins**", target.Mention(), common.FormatBalance(balance))
	if err := common.RespondWithMessage(s, i, message, false); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

func (b *Bot) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := b.economyService.ClaimDaily(ctx, userID)
	if err != nil {
		log.Errorf("Error claiming daily for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to claim the daily reward. Please try again.")
		return
	}

	var message string
	ephemeral := true
	switch {
	case result.Claimed:
		message = fmt.Sprintf("Daily reward: **+%s coins**. Current balance: **%s coins**",
			common.FormatBalance(result.Reward), common.FormatBalance(result.NewBalance))
		ephemeral = false
	case result.Rejection == models.RejectionRestricted:
		message = fmt.Sprintf("You are banned from games. Reason: %s", reasonOrDash(result.BanReason))
	default:
		message = fmt.Sprintf("Too soon. Try again in %s.", common.FormatRemaining(result.Remaining))
	}

	if err := common.RespondWithMessage(s, i, message, ephemeral); err != nil {
		log.Errorf("Error responding to daily command: %v", err)
	}
}

func (b *Bot) handleCoinflip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var stake int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "amount" {
			stake = opt.IntValue()
		}
	}

	result, err := b.gameService.Coinflip(ctx, userID, stake)
	if err != nil {
		log.Errorf("Error playing coinflip for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to play right now. Please try again.")
		return
	}

	var message string
	ephemeral := true
	switch {
	case result.Played && result.Won:
		message = fmt.Sprintf("Coinflip: **you won +%s coins**. Balance: **%s coins**",
			common.FormatBalance(result.Stake), common.FormatBalance(result.NewBalance))
		ephemeral = false
	case result.Played:
		message = fmt.Sprintf("Coinflip: **you lost -%s coins**. Balance: **%s coins**",
			common.FormatBalance(result.Stake), common.FormatBalance(result.NewBalance))
		ephemeral = false
	case result.Rejection == models.RejectionRestricted:
		message = fmt.Sprintf("You are banned from games. Reason: %s", reasonOrDash(result.BanReason))
	case result.Rejection == models.RejectionInvalidStake:
		message = "The stake must be greater than 0."
	default:
		message = fmt.Sprintf("Insufficient funds: you have **%s coins**.", common.FormatBalance(result.NewBalance))
	}

	if err := common.RespondWithMessage(s, i, message, ephemeral); err != nil {
		log.Errorf("Error responding to coinflip command: %v", err)
	}
}

func (b *Bot) handleLinkProfile(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var profileURL string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "url" {
			profileURL = opt.StringValue()
		}
	}

	if err := b.userService.LinkProfile(ctx, userID, profileURL); err != nil {
		log.Errorf("Error linking profile for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to save the profile. Please try again.")
		return
	}

	message := "Profile saved. Card verification will run once the catalog format is settled."
	if err := common.RespondWithMessage(s, i, message, true); err != nil {
		log.Errorf("Error responding to link_profile command: %v", err)
	}
}

func (b *Bot) handleModBanGames(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if !hasModeration(i) {
		common.RespondWithError(s, i, "Insufficient permissions.")
		return
	}

	var target *discordgo.User
	days := int64(7)
	var reason *string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			target = opt.UserValue(s)
		case "days":
			days = opt.IntValue()
		case "reason":
			r := opt.StringValue()
			reason = &r
		}
	}
	if target == nil {
		common.RespondWithError(s, i, "Unable to resolve the target user.")
		return
	}

	userID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", target.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// days 0 means permanent: no expiry stored
	var activeUntil *time.Time
	if days > 0 {
		until := time.Now().UTC().Add(time.Duration(days) * 24 * time.Hour).Truncate(time.Second)
		activeUntil = &until
	}

	if err := b.restrictionService.SetRestriction(ctx, userID, activeUntil, reason); err != nil {
		log.Errorf("Error banning user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to set the ban. Please try again.")
		return
	}

	length := "permanently"
	if days > 0 {
		length = fmt.Sprintf("for %d days", days)
	}
	message := fmt.Sprintf("%s is banned from games %s. Reason: %s", target.Mention(), length, reasonOrDash(reason))
	if err := common.RespondWithMessage(s, i, message, false); err != nil {
		log.Errorf("Error responding to mod_ban_games command: %v", err)
	}
}

// hasModeration reports whether the caller holds any moderation permission
func hasModeration(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	perms := i.Member.Permissions
	return perms&(discordgo.PermissionAdministrator|
		discordgo.PermissionManageGuild|
		discordgo.PermissionManageMessages|
		discordgo.PermissionModerateMembers) != 0
}

func reasonOrDash(reason *string) string {
	if reason == nil || *reason == "" {
		return "(none)"
	}
	return *reason
}
