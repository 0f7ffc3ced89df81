package service

import (
	"context"
	"testing"

	"levelbot/models"

	"github.com/stretchr/testify/assert"
)

func setupConfigServiceMocks(t *testing.T) (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockLevelingConfigRepository, *MockLevelRoleRepository) {
	t.Helper()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockConfigRepo := new(MockLevelingConfigRepository)
	mockRoleRepo := new(MockLevelRoleRepository)

	mockUoW.SetRepositories(nil, mockConfigRepo, mockRoleRepo, nil)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", context.Background()).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	return mockFactory, mockUoW, mockConfigRepo, mockRoleRepo
}

func TestLevelingConfigService_UpdateConfig_PartialUpdate(t *testing.T) {
	ctx := context.Background()

	mockFactory, _, mockConfigRepo, _ := setupConfigServiceMocks(t)

	existing := &models.LevelingConfig{GuildID: 1, Enabled: false, XPMultiplier: 1.0}
	mockConfigRepo.On("GetOrCreate", ctx, int64(1)).Return(existing, nil)
	mockConfigRepo.On("Update", ctx, existing).Return(nil)

	service := NewLevelingConfigService(mockFactory)

	enabled := true
	config, err := service.UpdateConfig(ctx, 1, &enabled, nil, nil)

	assert.NoError(t, err)
	assert.True(t, config.Enabled)
	// Untouched fields keep their values
	assert.Equal(t, 1.0, config.XPMultiplier)
	assert.Nil(t, config.LevelChannelID)

	mockConfigRepo.AssertExpectations(t)
}

func TestLevelingConfigService_UpdateConfig_MultiplierClamped(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"below minimum", 0.01, MinXPMultiplier},
		{"above maximum", 12.0, MaxXPMultiplier},
		{"within range", 2.5, 2.5},
		{"at minimum", 0.1, 0.1},
		{"at maximum", 5.0, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFactory, _, mockConfigRepo, _ := setupConfigServiceMocks(t)

			existing := &models.LevelingConfig{GuildID: 1, XPMultiplier: 1.0}
			mockConfigRepo.On("GetOrCreate", ctx, int64(1)).Return(existing, nil)
			mockConfigRepo.On("Update", ctx, existing).Return(nil)

			service := NewLevelingConfigService(mockFactory)

			config, err := service.UpdateConfig(ctx, 1, nil, nil, &tt.input)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, config.XPMultiplier)
		})
	}
}

func TestLevelingConfigService_ClearLevelChannel(t *testing.T) {
	ctx := context.Background()

	mockFactory, _, mockConfigRepo, _ := setupConfigServiceMocks(t)

	levelChannel := int64(555)
	existing := &models.LevelingConfig{GuildID: 1, XPMultiplier: 1.0, LevelChannelID: &levelChannel}
	mockConfigRepo.On("GetOrCreate", ctx, int64(1)).Return(existing, nil)
	mockConfigRepo.On("Update", ctx, existing).Return(nil)

	service := NewLevelingConfigService(mockFactory)

	err := service.ClearLevelChannel(ctx, 1)

	assert.NoError(t, err)
	assert.Nil(t, existing.LevelChannelID)
	mockConfigRepo.AssertExpectations(t)
}

func TestLevelingConfigService_SetLevelRole_ValidatesLevel(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewLevelingConfigService(mockFactory)

	err := service.SetLevelRole(ctx, 1, 0, 777)
	assert.Error(t, err)

	err = service.SetLevelRole(ctx, 1, 101, 777)
	assert.Error(t, err)

	// Invalid levels never open a transaction
	mockFactory.AssertNotCalled(t, "Create")
}

func TestLevelingConfigService_SetLevelRole_Success(t *testing.T) {
	ctx := context.Background()

	mockFactory, _, _, mockRoleRepo := setupConfigServiceMocks(t)
	mockRoleRepo.On("Set", ctx, int64(1), int64(10), int64(777)).Return(nil)

	service := NewLevelingConfigService(mockFactory)

	err := service.SetLevelRole(ctx, 1, 10, 777)

	assert.NoError(t, err)
	mockRoleRepo.AssertExpectations(t)
}

func TestLevelingConfigService_RemoveLevelRole_NotConfigured(t *testing.T) {
	ctx := context.Background()

	mockFactory, _, _, mockRoleRepo := setupConfigServiceMocks(t)
	mockRoleRepo.On("Remove", ctx, int64(1), int64(10)).Return(false, nil)

	service := NewLevelingConfigService(mockFactory)

	removed, err := service.RemoveLevelRole(ctx, 1, 10)

	assert.NoError(t, err)
	assert.False(t, removed)
}

func TestLevelingConfigService_ListLevelRoles(t *testing.T) {
	ctx := context.Background()

	mockFactory, _, _, mockRoleRepo := setupConfigServiceMocks(t)

	roles := []*models.LevelRole{
		{GuildID: 1, Level: 5, RoleID: 501},
		{GuildID: 1, Level: 10, RoleID: 510},
	}
	mockRoleRepo.On("GetByGuild", ctx, int64(1)).Return(roles, nil)

	service := NewLevelingConfigService(mockFactory)

	got, err := service.ListLevelRoles(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, roles, got)
}
