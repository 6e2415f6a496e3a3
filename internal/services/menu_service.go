package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"restaurant-service/internal/domain"
	"restaurant-service/internal/notify"
	"restaurant-service/internal/repository"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	menuCacheKey  = "menu:items"
	menuCacheTTL  = time.Minute
	MaxImageBytes = 5 << 20
)

// MenuCache is the subset of *redis.Client used for menu listings.
type MenuCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type ImageUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type MenuItemInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       int64           `json:"price"`
	Category    domain.Category `json:"category"`
	Image       string          `json:"image"`
}

type MenuService struct {
	repo        repository.MenuRepository
	categories  repository.CategoryRepository
	notifier    notify.Notifier
	redisClient MenuCache
	images      ImageUploader
	imagePrefix string
	now         func() time.Time
}

func NewMenuService(r repository.MenuRepository, c repository.CategoryRepository, n notify.Notifier) *MenuService {
	if n == nil {
		n = notify.Nop{}
	}
	return &MenuService{
		repo:        r,
		categories:  c,
		notifier:    n,
		imagePrefix: "menu-images",
		now:         time.Now,
	}
}

func (s *MenuService) SetRedisClient(client MenuCache) {
	s.redisClient = client
}

func (s *MenuService) SetImageUploader(u ImageUploader, prefix string) {
	s.images = u
	if prefix != "" {
		s.imagePrefix = strings.Trim(prefix, "/")
	}
}

func (s *MenuService) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, menuCacheKey).Result()
		if err == nil {
			var items []domain.MenuItem
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		} else if err != redis.Nil {
			zap.L().Warn("menu cache read failed", zap.Error(err))
		}
	}

	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(items); err == nil {
			if err := s.redisClient.Set(ctx, menuCacheKey, data, menuCacheTTL).Err(); err != nil {
				zap.L().Warn("menu cache write failed", zap.Error(err))
			}
		}
	}
	return items, nil
}

func (s *MenuService) ListMenuItemsByCategory(ctx context.Context, category domain.Category) ([]domain.MenuItem, error) {
	return s.repo.FindByCategory(ctx, category)
}

func (s *MenuService) GetMenuItem(ctx context.Context, id uint64) (*domain.MenuItem, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMenuItemNotFound
	}
	return m, nil
}

func (s *MenuService) CreateMenuItem(ctx context.Context, in MenuItemInput) (*domain.MenuItem, error) {
	item, err := s.validateInput(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.changed(ctx, notify.OpInsert, item.ID)
	return item, nil
}

func (s *MenuService) UpdateMenuItem(ctx context.Context, id uint64, in MenuItemInput) (*domain.MenuItem, error) {
	item, err := s.validateInput(ctx, in)
	if err != nil {
		return nil, err
	}
	item.ID = id

	ok, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrMenuItemNotFound
	}

	s.changed(ctx, notify.OpUpdate, id)
	return item, nil
}

// DeleteMenuItem hard-deletes the item. Past order items keep their
// snapshot of name and price.
func (s *MenuService) DeleteMenuItem(ctx context.Context, id uint64) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, domain.ErrMenuItemNotFound
	}

	s.changed(ctx, notify.OpDelete, id)
	return true, nil
}

func (s *MenuService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.FindAll(ctx)
}

// AddCategory registers a category; an existing one is returned unchanged.
func (s *MenuService) AddCategory(ctx context.Context, name string) (domain.Category, error) {
	c := domain.Category(strings.TrimSpace(name))
	if c == "" {
		return "", domain.Invalid("category name is required")
	}
	if err := s.categories.Save(ctx, c); err != nil {
		return "", err
	}
	return c, nil
}

// UploadImage validates and stores a menu image, returning its public URL.
func (s *MenuService) UploadImage(ctx context.Context, filename string, body io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxImageBytes+1))
	if err != nil {
		return "", errors.Wrap(domain.ErrUpload, err.Error())
	}
	if len(data) > MaxImageBytes {
		return "", domain.ErrImageTooLarge
	}
	if len(data) == 0 {
		return "", errors.Wrap(domain.ErrUpload, "empty file")
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", errors.Wrapf(domain.ErrUpload, "unsupported content type %s", mime.String())
	}

	if s.images == nil {
		return "", domain.Store("images.upload", errors.New("image storage is not configured"))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = mime.Extension()
	}
	key := fmt.Sprintf("%s/%d-%s%s", s.imagePrefix, s.now().UnixMilli(), uuid.NewString(), ext)

	url, err := s.images.Upload(ctx, key, mime.String(), bytes.NewReader(data))
	if err != nil {
		zap.L().Error("image upload failed", zap.String("key", key), zap.Error(err))
		return "", domain.Store("images.upload", err)
	}

	zap.L().Info("image uploaded", zap.String("key", key), zap.Int("bytes", len(data)))
	return url, nil
}

func (s *MenuService) validateInput(ctx context.Context, in MenuItemInput) (*domain.MenuItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name is required")
	}
	if in.Price < 0 {
		return nil, domain.Invalid("price must not be negative")
	}
	ok, err := s.categories.Exists(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Invalid("unknown category %q", in.Category)
	}
	return &domain.MenuItem{
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.Image,
	}, nil
}

func (s *MenuService) changed(ctx context.Context, op notify.Op, id uint64) {
	if s.redisClient != nil {
		if err := s.redisClient.Del(ctx, menuCacheKey).Err(); err != nil {
			zap.L().Warn("menu cache invalidation failed", zap.Error(err))
		}
	}
	s.notifier.Notify(ctx, notify.Change{Table: notify.TableMenuItems, Op: op, ID: id, At: s.now()})
}
