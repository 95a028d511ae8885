package service

import (
	"context"

	"coinbot/events"
	"coinbot/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetProfileURL(ctx context.Context, userID int64, profileURL *string) error {
	args := m.Called(ctx, userID, profileURL)
	return args.Error(0)
}

func (m *MockUserRepository) ListAccounts(ctx context.Context, limit int) ([]*models.UserAccount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserAccount), args.Error(1)
}

// MockBalanceRepository is a mock implementation of BalanceRepository
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) Get(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBalanceRepository) GetForUpdate(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBalanceRepository) ApplyDelta(ctx context.Context, userID int64, delta int64) (int64, error) {
	args := m.Called(ctx, userID, delta)
	return args.Get(0).(int64), args.Error(1)
}

// MockGameBanRepository is a mock implementation of GameBanRepository
type MockGameBanRepository struct {
	mock.Mock
}

func (m *MockGameBanRepository) Get(ctx context.Context, userID int64) (*models.GameBan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameBan), args.Error(1)
}

func (m *MockGameBanRepository) Upsert(ctx context.Context, ban *models.GameBan) error {
	args := m.Called(ctx, ban)
	return args.Error(0)
}

// MockEconomyLogRepository is a mock implementation of EconomyLogRepository
type MockEconomyLogRepository struct {
	mock.Mock
}

func (m *MockEconomyLogRepository) Append(ctx context.Context, entry *models.EconomyLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEconomyLogRepository) LatestByUserAction(ctx context.Context, userID int64, action models.ActionTag) (*models.EconomyLog, error) {
	args := m.Called(ctx, userID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EconomyLog), args.Error(1)
}

func (m *MockEconomyLogRepository) SumAmounts(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEconomyLogRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.EconomyLog, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.EconomyLog), args.Error(1)
}

// MockCardRepository is a mock implementation of CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *models.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) GetByOwner(ctx context.Context, ownerUserID int64) ([]*models.Card, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Card), args.Error(1)
}

// MockEventPublisher records published events without forwarding them
type MockEventPublisher struct {
	Published []events.Event
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Published = append(m.Published, event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	userRepo       UserRepository
	balanceRepo    BalanceRepository
	gameBanRepo    GameBanRepository
	economyLogRepo EconomyLogRepository
	cardRepo       CardRepository
	eventPublisher *MockEventPublisher
}

// SetRepositories wires the mock repositories this unit of work hands out
func (m *MockUnitOfWork) SetRepositories(userRepo UserRepository, balanceRepo BalanceRepository, gameBanRepo GameBanRepository, economyLogRepo EconomyLogRepository, cardRepo CardRepository) {
	m.userRepo = userRepo
	m.balanceRepo = balanceRepo
	m.gameBanRepo = gameBanRepo
	m.economyLogRepo = economyLogRepo
	m.cardRepo = cardRepo
	m.eventPublisher = &MockEventPublisher{}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) BalanceRepository() BalanceRepository {
	return m.balanceRepo
}

func (m *MockUnitOfWork) GameBanRepository() GameBanRepository {
	return m.gameBanRepo
}

func (m *MockUnitOfWork) EconomyLogRepository() EconomyLogRepository {
	return m.economyLogRepo
}

func (m *MockUnitOfWork) CardRepository() CardRepository {
	return m.cardRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventPublisher
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
