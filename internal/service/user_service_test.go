package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mersinbot/masters-backend/internal/cache"
	"github.com/mersinbot/masters-backend/internal/models"
	"github.com/mersinbot/masters-backend/internal/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetRecordByTelegramID(ctx context.Context, telegramID int64) (*models.UserRecord, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRecord), args.Error(1)
}

func (m *mockUserRepo) GetTelegramID(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, telegramID int64, username *string, language string) (int64, error) {
	args := m.Called(ctx, telegramID, username, language)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) SetMasterFlag(ctx context.Context, userID int64, isMaster bool) error {
	args := m.Called(ctx, userID, isMaster)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateStatus(ctx context.Context, userID int64, status string) error {
	args := m.Called(ctx, userID, status)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateLanguage(ctx context.Context, userID int64, language string) error {
	args := m.Called(ctx, userID, language)
	return args.Error(0)
}

func newUserService(repo *mockUserRepo) (*UserService, *cache.UserCache) {
	userCache := cache.NewUserCache(5*time.Minute, 100)
	return NewUserService(repo, userCache, "ru", []string{"ru", "tr", "en"}), userCache
}

func TestUserService_ResolveUser_CacheHitSkipsDB(t *testing.T) {
	repo := new(mockUserRepo)
	svc, userCache := newUserService(repo)
	ctx := context.Background()

	userCache.Set(100, &models.UserRecord{UserID: 1, TelegramID: 100, Language: "ru"})

	record, err := svc.ResolveUser(ctx, 100, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), record.UserID)
	repo.AssertNotCalled(t, "GetRecordByTelegramID", mock.Anything, mock.Anything)
}

func TestUserService_ResolveUser_MissLoadsAndCaches(t *testing.T) {
	repo := new(mockUserRepo)
	svc, userCache := newUserService(repo)
	ctx := context.Background()

	record := &models.UserRecord{UserID: 1, TelegramID: 100, Language: "tr"}
	repo.On("GetRecordByTelegramID", ctx, int64(100)).Return(record, nil)

	got, err := svc.ResolveUser(ctx, 100, nil)

	assert.NoError(t, err)
	assert.Equal(t, record, got)

	cached, ok := userCache.Get(100)
	assert.True(t, ok)
	assert.Equal(t, int64(1), cached.UserID)
}

func TestUserService_ResolveUser_CreatesOnFirstContact(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newUserService(repo)
	ctx := context.Background()

	username := "ali"
	created := &models.UserRecord{UserID: 2, TelegramID: 200, Language: "ru"}

	repo.On("GetRecordByTelegramID", ctx, int64(200)).Return(nil, repository.ErrUserNotFound).Once()
	repo.On("Create", ctx, int64(200), &username, "ru").Return(int64(2), nil)
	repo.On("GetRecordByTelegramID", ctx, int64(200)).Return(created, nil)

	record, err := svc.ResolveUser(ctx, 200, &username)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), record.UserID)
	repo.AssertCalled(t, "Create", ctx, int64(200), &username, "ru")
}

func TestUserService_SetLanguage_InvalidatesCache(t *testing.T) {
	repo := new(mockUserRepo)
	svc, userCache := newUserService(repo)
	ctx := context.Background()

	userCache.Set(100, &models.UserRecord{UserID: 1, TelegramID: 100, Language: "ru"})
	repo.On("UpdateLanguage", ctx, int64(1), "tr").Return(nil)

	err := svc.SetLanguage(ctx, 1, "tr")

	assert.NoError(t, err)
	_, ok := userCache.Get(100)
	assert.False(t, ok)
}

func TestUserService_SetLanguage_Unsupported(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newUserService(repo)

	err := svc.SetLanguage(context.Background(), 1, "de")

	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpdateLanguage", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_SetBlocked(t *testing.T) {
	repo := new(mockUserRepo)
	svc, userCache := newUserService(repo)
	ctx := context.Background()

	userCache.Set(100, &models.UserRecord{UserID: 1, TelegramID: 100})
	repo.On("UpdateStatus", ctx, int64(1), models.UserStatusBlocked).Return(nil)

	err := svc.SetBlocked(ctx, 1, true)

	assert.NoError(t, err)
	_, ok := userCache.Get(100)
	assert.False(t, ok)
}
