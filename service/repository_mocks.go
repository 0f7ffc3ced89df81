package service

import (
	"context"

	"levelbot/events"
	"levelbot/models"

	"github.com/stretchr/testify/mock"
)

// MockLevelRecordRepository is a mock implementation of LevelRecordRepository
type MockLevelRecordRepository struct {
	mock.Mock
}

func (m *MockLevelRecordRepository) GetByUser(ctx context.Context, guildID, userID int64) (*models.LevelRecord, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LevelRecord), args.Error(1)
}

func (m *MockLevelRecordRepository) GetOrCreate(ctx context.Context, guildID, userID int64) (*models.LevelRecord, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LevelRecord), args.Error(1)
}

func (m *MockLevelRecordRepository) Update(ctx context.Context, record *models.LevelRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockLevelRecordRepository) GetLeaderboard(ctx context.Context, guildID int64, limit, offset int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, guildID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

func (m *MockLevelRecordRepository) GetRank(ctx context.Context, guildID, userID int64) (int, error) {
	args := m.Called(ctx, guildID, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockLevelRecordRepository) Count(ctx context.Context, guildID int64) (int, error) {
	args := m.Called(ctx, guildID)
	return args.Int(0), args.Error(1)
}

// MockLevelingConfigRepository is a mock implementation of LevelingConfigRepository
type MockLevelingConfigRepository struct {
	mock.Mock
}

func (m *MockLevelingConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*models.LevelingConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LevelingConfig), args.Error(1)
}

func (m *MockLevelingConfigRepository) Update(ctx context.Context, config *models.LevelingConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

// MockLevelRoleRepository is a mock implementation of LevelRoleRepository
type MockLevelRoleRepository struct {
	mock.Mock
}

func (m *MockLevelRoleRepository) Set(ctx context.Context, guildID, level, roleID int64) error {
	args := m.Called(ctx, guildID, level, roleID)
	return args.Error(0)
}

func (m *MockLevelRoleRepository) Remove(ctx context.Context, guildID, level int64) (bool, error) {
	args := m.Called(ctx, guildID, level)
	return args.Bool(0), args.Error(1)
}

func (m *MockLevelRoleRepository) GetByLevel(ctx context.Context, guildID, level int64) (*models.LevelRole, error) {
	args := m.Called(ctx, guildID, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LevelRole), args.Error(1)
}

func (m *MockLevelRoleRepository) GetByGuild(ctx context.Context, guildID int64) ([]*models.LevelRole, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LevelRole), args.Error(1)
}

// CapturingEventPublisher records published events for assertions
type CapturingEventPublisher struct {
	Events []events.Event
}

func (p *CapturingEventPublisher) Publish(e events.Event) {
	p.Events = append(p.Events, e)
}

// LevelUpEvents returns only the level-up events published so far
func (p *CapturingEventPublisher) LevelUpEvents() []events.LevelUpEvent {
	var out []events.LevelUpEvent
	for _, e := range p.Events {
		if lu, ok := e.(events.LevelUpEvent); ok {
			out = append(out, lu)
		}
	}
	return out
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	levelRecordRepo LevelRecordRepository
	configRepo      LevelingConfigRepository
	levelRoleRepo   LevelRoleRepository
	eventBus        EventPublisher
}

// SetRepositories wires the repositories and event publisher the mock hands out
func (m *MockUnitOfWork) SetRepositories(records LevelRecordRepository, configs LevelingConfigRepository, roles LevelRoleRepository, bus EventPublisher) {
	m.levelRecordRepo = records
	m.configRepo = configs
	m.levelRoleRepo = roles
	m.eventBus = bus
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

func (m *MockUnitOfWork) LevelRecordRepository() LevelRecordRepository {
	return m.levelRecordRepo
}

func (m *MockUnitOfWork) LevelingConfigRepository() LevelingConfigRepository {
	return m.configRepo
}

func (m *MockUnitOfWork) LevelRoleRepository() LevelRoleRepository {
	return m.levelRoleRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
