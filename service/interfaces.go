package service

import (
	"context"
	"time"

	"coinbot/events"
	"coinbot/models"
)

// UserRepository defines the account registry and user data access.
type UserRepository interface {
	// EnsureUser inserts the user and zero-balance rows if absent; idempotent.
	EnsureUser(ctx context.Context, userID int64) error

	// GetByID retrieves a user by ID, or nil if unknown
	GetByID(ctx context.Context, userID int64) (*models.User, error)

	// SetProfileURL stores the external catalog profile URL
	SetProfileURL(ctx context.Context, userID int64, profileURL *string) error

	// ListAccounts returns users joined with balances, newest first
	ListAccounts(ctx context.Context, limit int) ([]*models.UserAccount, error)
}

// BalanceRepository defines balance data access.
type BalanceRepository interface {
	// Get returns the current balance (0 for a missing row)
	Get(ctx context.Context, userID int64) (int64, error)

	// GetForUpdate returns the balance with a row lock held until the
	// transaction ends; gate checks that guard a write read under it
	GetForUpdate(ctx context.Context, userID int64) (int64, error)

	// ApplyDelta applies a signed delta and returns the resulting balance
	ApplyDelta(ctx context.Context, userID int64, delta int64) (int64, error)
}

// GameBanRepository defines game ban data access.
type GameBanRepository interface {
	// Get retrieves the ban row, or nil if none was ever set
	Get(ctx context.Context, userID int64) (*models.GameBan, error)

	// Upsert writes the single ban row, overwriting both fields
	Upsert(ctx context.Context, ban *models.GameBan) error
}

// EconomyLogRepository defines access to the append-only audit trail.
type EconomyLogRepository interface {
	// Append inserts a new audit entry
	Append(ctx context.Context, entry *models.EconomyLog) error

	// LatestByUserAction returns the most recent entry for (user, action)
	LatestByUserAction(ctx context.Context, userID int64, action models.ActionTag) (*models.EconomyLog, error)

	// SumAmounts returns the sum of all non-null amounts for a user
	SumAmounts(ctx context.Context, userID int64) (int64, error)

	// ListByUser returns the newest entries for a user
	ListByUser(ctx context.Context, userID int64, limit int) ([]*models.EconomyLog, error)
}

// CardRepository defines card data access.
type CardRepository interface {
	// Create inserts a new card
	Create(ctx context.Context, card *models.Card) error

	// GetByOwner returns all cards owned by a user
	GetByOwner(ctx context.Context, ownerUserID int64) ([]*models.Card, error)
}

// EventPublisher buffers events until the surrounding transaction commits.
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork scopes repository access to one transaction. A gate check and
// the write it guards must run on the same unit of work; splitting them
// across transactions reintroduces the race the serialized writer prevents.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() UserRepository
	BalanceRepository() BalanceRepository
	GameBanRepository() GameBanRepository
	EconomyLogRepository() EconomyLogRepository
	CardRepository() CardRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// LedgerService is the single source of truth for balances.
type LedgerService interface {
	// GetBalance ensures the account exists and returns its balance
	GetBalance(ctx context.Context, userID int64) (int64, error)

	// AdjustBalance applies a delta, appends the matching audit entry, and
	// returns the resulting balance. The only sanctioned mutation path.
	AdjustBalance(ctx context.Context, userID int64, delta int64, action models.ActionTag, metadata map[string]any) (int64, error)

	// GetHistory returns the newest audit entries for a user
	GetHistory(ctx context.Context, userID int64, limit int) ([]*models.EconomyLog, error)
}

// EconomyService owns the time-boxed reward claims.
type EconomyService interface {
	// CanClaim reports whether the action may fire again and, if not, how
	// long until it may. Read-only.
	CanClaim(ctx context.Context, userID int64, action models.ActionTag, window time.Duration) (bool, time.Duration, error)

	// ClaimDaily checks the restriction gate and the cooldown, then pays the
	// daily reward, all in one transaction.
	ClaimDaily(ctx context.Context, userID int64) (*models.DailyClaimResult, error)
}

// RestrictionService owns game ban evaluation and mutation.
type RestrictionService interface {
	// IsRestricted reports whether the user is under an active ban at the
	// moment of the call. The reason is returned even for expired bans.
	IsRestricted(ctx context.Context, userID int64) (bool, *string, error)

	// SetRestriction upserts the ban, overwriting both fields. Pass nil for
	// both to lift.
	SetRestriction(ctx context.Context, userID int64, activeUntil *time.Time, reason *string) error
}

// GameService composes gate, validation and ledger mutation for games.
type GameService interface {
	// Coinflip plays an even-odds wager of stake against the house
	Coinflip(ctx context.Context, userID int64, stake int64) (*models.CoinflipResult, error)
}

// UserService covers profile linking and the panel's read paths.
type UserService interface {
	// LinkProfile stores the external catalog profile URL for a user
	LinkProfile(ctx context.Context, userID int64, profileURL string) error

	// ListAccounts returns users joined with balances, newest first
	ListAccounts(ctx context.Context, limit int) ([]*models.UserAccount, error)

	// GetCards returns the cards owned by a user
	GetCards(ctx context.Context, userID int64) ([]*models.Card, error)
}
