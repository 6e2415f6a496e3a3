package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"restaurant-service/internal/domain"
	"restaurant-service/internal/mocks"
	"restaurant-service/internal/notify"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newMenuService() (*MenuService, *mocks.MockMenuRepository, *mocks.MockCategoryRepository, *mocks.MockNotifier) {
	repo := new(mocks.MockMenuRepository)
	cats := new(mocks.MockCategoryRepository)
	notifier := new(mocks.MockNotifier)
	return NewMenuService(repo, cats, notifier), repo, cats, notifier
}

func TestMenuService_ListMenuItems_CacheHit(t *testing.T) {
	service, repo, _, _ := newMenuService()
	cache := new(mocks.MockMenuCache)
	service.SetRedisClient(cache)

	cached := []domain.MenuItem{*CreateMockMenuItem(1, "Tom Yum", 180, domain.CategorySoups)}
	data, _ := json.Marshal(cached)
	cache.On("Get", mock.Anything, menuCacheKey).Return(redis.NewStringResult(string(data), nil))

	items, err := service.ListMenuItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Tom Yum", items[0].Name)
	repo.AssertNotCalled(t, "FindAll", mock.Anything)
}

func TestMenuService_ListMenuItems_CacheMiss(t *testing.T) {
	service, repo, _, _ := newMenuService()
	cache := new(mocks.MockMenuCache)
	service.SetRedisClient(cache)

	stored := []domain.MenuItem{
		*CreateMockMenuItem(1, "Tom Yum", 180, domain.CategorySoups),
		*CreateMockMenuItem(2, "Iced Tea", 60, domain.CategoryDrinks),
	}
	cache.On("Get", mock.Anything, menuCacheKey).Return(redis.NewStringResult("", redis.Nil))
	cache.On("Set", mock.Anything, menuCacheKey, mock.Anything, menuCacheTTL).Return(redis.NewStatusResult("OK", nil))
	repo.On("FindAll", mock.Anything).Return(stored, nil)

	items, err := service.ListMenuItems(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	cache.AssertExpectations(t)
}

func TestMenuService_ListMenuItems_CacheDownFallsBackToStore(t *testing.T) {
	service, repo, _, _ := newMenuService()
	cache := new(mocks.MockMenuCache)
	service.SetRedisClient(cache)

	cache.On("Get", mock.Anything, menuCacheKey).Return(redis.NewStringResult("", errors.New("connection refused")))
	cache.On("Set", mock.Anything, menuCacheKey, mock.Anything, menuCacheTTL).Return(redis.NewStatusResult("", errors.New("connection refused")))
	repo.On("FindAll", mock.Anything).Return([]domain.MenuItem{}, nil)

	items, err := service.ListMenuItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMenuService_CreateMenuItem(t *testing.T) {
	tests := []struct {
		name    string
		input   MenuItemInput
		setup   func(*mocks.MockMenuRepository, *mocks.MockCategoryRepository, *mocks.MockNotifier)
		wantErr error
		wantID  uint64
	}{
		{
			name:  "success",
			input: MenuItemInput{Name: " Grilled Squid ", Price: 320, Category: domain.CategorySeafood},
			setup: func(r *mocks.MockMenuRepository, c *mocks.MockCategoryRepository, n *mocks.MockNotifier) {
				c.On("Exists", mock.Anything, domain.CategorySeafood).Return(true, nil)
				r.On("Save", mock.Anything, mock.MatchedBy(func(m *domain.MenuItem) bool {
					return m.Name == "Grilled Squid" && m.Price == 320
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.MenuItem).ID = 11
				}).Return(nil)
				n.On("Notify", mock.Anything, changeOf(notify.TableMenuItems, notify.OpInsert)).Return()
			},
			wantID: 11,
		},
		{
			name:    "missing name",
			input:   MenuItemInput{Name: "  ", Price: 10, Category: domain.CategoryDrinks},
			setup:   func(*mocks.MockMenuRepository, *mocks.MockCategoryRepository, *mocks.MockNotifier) {},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "negative price",
			input:   MenuItemInput{Name: "Water", Price: -1, Category: domain.CategoryDrinks},
			setup:   func(*mocks.MockMenuRepository, *mocks.MockCategoryRepository, *mocks.MockNotifier) {},
			wantErr: domain.ErrValidation,
		},
		{
			name:  "unknown category",
			input: MenuItemInput{Name: "Pizza", Price: 200, Category: "pizza"},
			setup: func(r *mocks.MockMenuRepository, c *mocks.MockCategoryRepository, n *mocks.MockNotifier) {
				c.On("Exists", mock.Anything, domain.Category("pizza")).Return(false, nil)
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:  "store failure",
			input: MenuItemInput{Name: "Satay", Price: 120, Category: domain.CategoryAppetizers},
			setup: func(r *mocks.MockMenuRepository, c *mocks.MockCategoryRepository, n *mocks.MockNotifier) {
				c.On("Exists", mock.Anything, domain.CategoryAppetizers).Return(true, nil)
				r.On("Save", mock.Anything, mock.Anything).Return(domain.Store("menu.save", errors.New("disk full")))
			},
			wantErr: domain.ErrStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, cats, notifier := newMenuService()
			tt.setup(repo, cats, notifier)

			item, err := service.CreateMenuItem(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, item)
				repo.AssertExpectations(t)
				notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, item.ID)
			repo.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestMenuService_UpdateMenuItem_InvalidatesCache(t *testing.T) {
	service, repo, cats, notifier := newMenuService()
	cache := new(mocks.MockMenuCache)
	service.SetRedisClient(cache)

	cats.On("Exists", mock.Anything, domain.CategorySoups).Return(true, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(m *domain.MenuItem) bool { return m.ID == 3 })).Return(true, nil)
	cache.On("Del", mock.Anything, []string{menuCacheKey}).Return(redis.NewIntResult(1, nil))
	notifier.On("Notify", mock.Anything, changeOf(notify.TableMenuItems, notify.OpUpdate)).Return()

	item, err := service.UpdateMenuItem(context.Background(), 3, MenuItemInput{Name: "Khao Soi", Price: 150, Category: domain.CategorySoups})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), item.ID)
	cache.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestMenuService_UpdateMenuItem_NotFound(t *testing.T) {
	service, repo, cats, notifier := newMenuService()
	cats.On("Exists", mock.Anything, domain.CategorySoups).Return(true, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(false, nil)

	item, err := service.UpdateMenuItem(context.Background(), 99, MenuItemInput{Name: "Ghost", Price: 1, Category: domain.CategorySoups})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrMenuItemNotFound)
	assert.Nil(t, item)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestMenuService_DeleteMenuItem(t *testing.T) {
	service, repo, _, notifier := newMenuService()
	repo.On("Delete", mock.Anything, uint64(4)).Return(true, nil)
	repo.On("Delete", mock.Anything, uint64(5)).Return(false, nil)
	notifier.On("Notify", mock.Anything, changeOf(notify.TableMenuItems, notify.OpDelete)).Return().Once()

	ok, err := service.DeleteMenuItem(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.DeleteMenuItem(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, ok)
	notifier.AssertExpectations(t)
}

func TestMenuService_GetMenuItem_NotFound(t *testing.T) {
	service, repo, _, _ := newMenuService()
	repo.On("FindByID", mock.Anything, uint64(8)).Return(nil, nil)

	item, err := service.GetMenuItem(context.Background(), 8)
	assert.ErrorIs(t, err, domain.ErrMenuItemNotFound)
	assert.Nil(t, item)
}

func TestMenuService_AddCategory(t *testing.T) {
	service, _, cats, _ := newMenuService()
	cats.On("Save", mock.Anything, domain.Category("desserts")).Return(nil)

	c, err := service.AddCategory(context.Background(), " desserts ")
	require.NoError(t, err)
	assert.Equal(t, domain.Category("desserts"), c)

	_, err = service.AddCategory(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMenuService_UploadImage(t *testing.T) {
	fixed := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

	t.Run("png is stored under the prefix", func(t *testing.T) {
		service, _, _, _ := newMenuService()
		service.now = func() time.Time { return fixed }
		uploader := new(mocks.MockImageUploader)
		service.SetImageUploader(uploader, "/menu-images/")

		uploader.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "menu-images/1791968400000-") && strings.HasSuffix(key, ".png")
		}), "image/png", mock.Anything).Return("https://cdn.example.com/menu-images/x.png", nil)

		url, err := service.UploadImage(context.Background(), "squid.PNG", bytes.NewReader(pngHeader))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/menu-images/x.png", url)
		uploader.AssertExpectations(t)
	})

	t.Run("oversize", func(t *testing.T) {
		service, _, _, _ := newMenuService()
		uploader := new(mocks.MockImageUploader)
		service.SetImageUploader(uploader, "")

		big := append(append([]byte{}, pngHeader...), make([]byte, MaxImageBytes)...)
		_, err := service.UploadImage(context.Background(), "big.png", bytes.NewReader(big))
		assert.ErrorIs(t, err, domain.ErrImageTooLarge)
		assert.ErrorIs(t, err, domain.ErrUpload)
		uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not an image", func(t *testing.T) {
		service, _, _, _ := newMenuService()
		uploader := new(mocks.MockImageUploader)
		service.SetImageUploader(uploader, "")

		_, err := service.UploadImage(context.Background(), "notes.png", strings.NewReader("just some text"))
		assert.ErrorIs(t, err, domain.ErrUpload)
		assert.NotErrorIs(t, err, domain.ErrImageTooLarge)
	})

	t.Run("empty", func(t *testing.T) {
		service, _, _, _ := newMenuService()
		_, err := service.UploadImage(context.Background(), "a.png", bytes.NewReader(nil))
		assert.ErrorIs(t, err, domain.ErrUpload)
	})

	t.Run("storage failure", func(t *testing.T) {
		service, _, _, _ := newMenuService()
		uploader := new(mocks.MockImageUploader)
		service.SetImageUploader(uploader, "")
		uploader.On("Upload", mock.Anything, mock.Anything, "image/png", mock.Anything).Return("", errors.New("access denied"))

		_, err := service.UploadImage(context.Background(), "a.png", bytes.NewReader(pngHeader))
		assert.ErrorIs(t, err, domain.ErrStore)
	})

	t.Run("no storage configured", func(t *testing.T) {
		service, _, _, _ := newMenuService()
		_, err := service.UploadImage(context.Background(), "a.png", bytes.NewReader(pngHeader))
		assert.ErrorIs(t, err, domain.ErrStore)
	})
}
