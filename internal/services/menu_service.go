package services

import (
	"context"
	"errors"
	"strings"

	"menuboard/internal/caching"
	"menuboard/internal/common"
	"menuboard/internal/models"
	"menuboard/internal/repositories"

	"github.com/google/uuid"
)

// MenuService is the single point of access for category and item data. It
// composes the data store with the single-slot list cache and computes the
// auto-incrementing order values.
type MenuService interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, data *models.CategoryData) (uuid.UUID, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, update *models.CategoryUpdate) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	GetItem(ctx context.Context, categoryID, itemID uuid.UUID) (*models.MenuItem, error)
	CreateItem(ctx context.Context, categoryID uuid.UUID, data *models.MenuItemData) (uuid.UUID, error)
	UpdateItem(ctx context.Context, categoryID, itemID uuid.UUID, update *models.MenuItemUpdate) error
	DeleteItem(ctx context.Context, categoryID, itemID uuid.UUID) error
	NextCategoryOrder(ctx context.Context) (int, error)
	NextItemOrder(ctx context.Context, categoryID uuid.UUID) (int, error)
}

type menuService struct {
	categoryRepo repositories.CategoryRepository
	itemRepo     repositories.ItemRepository
	cache        *caching.MenuCache
}

func NewMenuService(categoryRepo repositories.CategoryRepository, itemRepo repositories.ItemRepository, cache *caching.MenuCache) MenuService {
	return &menuService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		cache:        cache,
	}
}

// ListCategories returns the full menu, cache-aside. On a miss it fetches
// every category ordered by "order", then each category's items, caches the
// assembled list wholesale and returns it.
func (s *menuService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	if cached, ok := s.cache.Get(); ok {
		return cached, nil
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, common.RemoteErr("list categories", err)
	}
	for _, category := range categories {
		items, err := s.itemRepo.ListByCategory(ctx, category.ID)
		if err != nil {
			return nil, common.RemoteErr("list category items", err)
		}
		category.Items = items
	}

	s.cache.Set(categories)
	return categories, nil
}

// GetCategory always bypasses the list cache: edit flows need the freshest
// state after a possible concurrent edit. It neither consults nor populates
// the cache.
func (s *menuService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, common.RemoteErr("get category", err)
	}
	items, err := s.itemRepo.ListByCategory(ctx, id)
	if err != nil {
		return nil, common.RemoteErr("list category items", err)
	}
	category.Items = items
	return category, nil
}

func (s *menuService) CreateCategory(ctx context.Context, data *models.CategoryData) (uuid.UUID, error) {
	if err := validateCategoryData(data); err != nil {
		return uuid.Nil, err
	}
	category := &models.Category{
		ID:          uuid.New(),
		Order:       data.Order,
		MainImage:   data.MainImage,
		Title:       data.Title,
		Description: data.Description,
		Tagline:     data.Tagline,
		Extras:      data.Extras,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return uuid.Nil, common.RemoteErr("create category", err)
	}
	s.cache.Invalidate()
	return category.ID, nil
}

func (s *menuService) UpdateCategory(ctx context.Context, id uuid.UUID, update *models.CategoryUpdate) error {
	if err := validateCategoryUpdate(update); err != nil {
		return err
	}
	if err := s.categoryRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return err
		}
		return common.RemoteErr("update category", err)
	}
	s.cache.Invalidate()
	return nil
}

// DeleteCategory deletes every item in the category one by one, then the
// category row. The item deletions are independent writes: a failure midway
// leaves the category in place with some items already gone. The cache is
// invalidated even on that partial failure, since state may have changed.
func (s *menuService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	defer s.cache.Invalidate()

	items, err := s.itemRepo.ListByCategory(ctx, id)
	if err != nil {
		return common.RemoteErr("list category items", err)
	}
	for _, item := range items {
		if err := s.itemRepo.Delete(ctx, id, item.ID); err != nil {
			return common.RemoteErr("delete category item", err)
		}
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return err
		}
		return common.RemoteErr("delete category", err)
	}
	return nil
}

func (s *menuService) GetItem(ctx context.Context, categoryID, itemID uuid.UUID) (*models.MenuItem, error) {
	item, err := s.itemRepo.GetByID(ctx, categoryID, itemID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, common.RemoteErr("get item", err)
	}
	return item, nil
}

func (s *menuService) CreateItem(ctx context.Context, categoryID uuid.UUID, data *models.MenuItemData) (uuid.UUID, error) {
	if err := validateItemData(data); err != nil {
		return uuid.Nil, err
	}
	item := &models.MenuItem{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Order:      data.Order,
		Name:       data.Name,
		Image:      data.Image,
		Price:      data.Price,
		PriceM:     data.PriceM,
		PriceL:     data.PriceL,
		PriceLiter: data.PriceLiter,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return uuid.Nil, common.RemoteErr("create item", err)
	}
	s.cache.Invalidate()
	return item.ID, nil
}

func (s *menuService) UpdateItem(ctx context.Context, categoryID, itemID uuid.UUID, update *models.MenuItemUpdate) error {
	if err := validateItemUpdate(update); err != nil {
		return err
	}
	if err := s.itemRepo.Update(ctx, categoryID, itemID, update); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return err
		}
		return common.RemoteErr("update item", err)
	}
	s.cache.Invalidate()
	return nil
}

func (s *menuService) DeleteItem(ctx context.Context, categoryID, itemID uuid.UUID) error {
	if err := s.itemRepo.Delete(ctx, categoryID, itemID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return err
		}
		return common.RemoteErr("delete item", err)
	}
	s.cache.Invalidate()
	return nil
}

// NextCategoryOrder returns 1 + the highest existing order, or 1 when no
// categories exist. Not transactional: two concurrent calls can receive the
// same value, producing duplicate order numbers.
func (s *menuService) NextCategoryOrder(ctx context.Context) (int, error) {
	max, err := s.categoryRepo.MaxOrder(ctx)
	if err != nil {
		return 0, common.RemoteErr("next category order", err)
	}
	return max + 1, nil
}

func (s *menuService) NextItemOrder(ctx context.Context, categoryID uuid.UUID) (int, error) {
	max, err := s.itemRepo.MaxOrder(ctx, categoryID)
	if err != nil {
		return 0, common.RemoteErr("next item order", err)
	}
	return max + 1, nil
}

func validateCategoryData(data *models.CategoryData) error {
	if err := requireLocalized("title", data.Title, common.MaxTitleLen); err != nil {
		return err
	}
	if err := requireLocalized("description", data.Description, common.MaxDescriptionLen); err != nil {
		return err
	}
	if err := limitLocalized("tagline", data.Tagline, common.MaxTaglineLen); err != nil {
		return err
	}
	if err := limitLocalized("extras", data.Extras, common.MaxExtrasLen); err != nil {
		return err
	}
	if data.Order < 1 {
		return &common.ValidationError{Field: "order", Message: "order must be at least 1"}
	}
	return nil
}

func validateCategoryUpdate(update *models.CategoryUpdate) error {
	if update.Title != nil {
		if err := requireLocalized("title", *update.Title, common.MaxTitleLen); err != nil {
			return err
		}
	}
	if update.Description != nil {
		if err := requireLocalized("description", *update.Description, common.MaxDescriptionLen); err != nil {
			return err
		}
	}
	if err := limitLocalized("tagline", update.Tagline, common.MaxTaglineLen); err != nil {
		return err
	}
	if err := limitLocalized("extras", update.Extras, common.MaxExtrasLen); err != nil {
		return err
	}
	if update.Order != nil && *update.Order < 1 {
		return &common.ValidationError{Field: "order", Message: "order must be at least 1"}
	}
	return nil
}

func validateItemData(data *models.MenuItemData) error {
	if err := requireLocalized("name", data.Name, common.MaxItemNameLen); err != nil {
		return err
	}
	if data.Order < 1 {
		return &common.ValidationError{Field: "order", Message: "order must be at least 1"}
	}
	return validatePrices(data.Price, data.PriceM, data.PriceL, data.PriceLiter)
}

func validateItemUpdate(update *models.MenuItemUpdate) error {
	if update.Name != nil {
		if err := requireLocalized("name", *update.Name, common.MaxItemNameLen); err != nil {
			return err
		}
	}
	if update.Order != nil && *update.Order < 1 {
		return &common.ValidationError{Field: "order", Message: "order must be at least 1"}
	}
	return validatePrices(update.Price, update.PriceM, update.PriceL, update.PriceLiter)
}

func validatePrices(prices ...*float64) error {
	fields := []string{"price", "priceM", "priceL", "priceLiter"}
	for i, price := range prices {
		if price != nil && *price < 0 {
			return &common.ValidationError{Field: fields[i], Message: "price cannot be negative"}
		}
	}
	return nil
}

func requireLocalized(field string, text models.LocalizedText, limit int) error {
	if strings.TrimSpace(text.En) == "" {
		return &common.ValidationError{Field: field + ".en", Message: "English " + field + " is required"}
	}
	if strings.TrimSpace(text.Ar) == "" {
		return &common.ValidationError{Field: field + ".ar", Message: "Arabic " + field + " is required"}
	}
	return limitLocalized(field, &text, limit)
}

func limitLocalized(field string, text *models.LocalizedText, limit int) error {
	if text == nil {
		return nil
	}
	if len([]rune(text.En)) > limit {
		return &common.ValidationError{Field: field + ".en", Message: "too long"}
	}
	if len([]rune(text.Ar)) > limit {
		return &common.ValidationError{Field: field + ".ar", Message: "too long"}
	}
	return nil
}
