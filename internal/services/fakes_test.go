package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"menuboard/internal/common"
	"menuboard/internal/models"

	"github.com/google/uuid"
)

// In-memory stand-ins for the data store and object store, shared by the
// menu service and workflow tests.

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*models.Category
	listCalls  int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*models.Category)}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *models.Category) error {
	stored := *category
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.categories[category.ID] = &stored
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	stored, ok := f.categories[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *stored
	clone.Items = nil
	return &clone, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, id uuid.UUID, update *models.CategoryUpdate) error {
	stored, ok := f.categories[id]
	if !ok {
		return common.ErrNotFound
	}
	if update.Order != nil {
		stored.Order = *update.Order
	}
	if update.MainImage != nil {
		stored.MainImage = *update.MainImage
	}
	if update.Title != nil {
		stored.Title = *update.Title
	}
	if update.Description != nil {
		stored.Description = *update.Description
	}
	if update.Tagline != nil {
		stored.Tagline = update.Tagline
	}
	if update.Extras != nil {
		stored.Extras = update.Extras
	}
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.categories[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]*models.Category, error) {
	f.listCalls++
	var categories []*models.Category
	for _, stored := range f.categories {
		clone := *stored
		clone.Items = nil
		categories = append(categories, &clone)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Order < categories[j].Order })
	return categories, nil
}

func (f *fakeCategoryRepo) MaxOrder(_ context.Context) (int, error) {
	max := 0
	for _, category := range f.categories {
		if category.Order > max {
			max = category.Order
		}
	}
	return max, nil
}

type fakeItemRepo struct {
	items     map[uuid.UUID]*models.MenuItem
	deleteErr map[uuid.UUID]error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		items:     make(map[uuid.UUID]*models.MenuItem),
		deleteErr: make(map[uuid.UUID]error),
	}
}

func (f *fakeItemRepo) Create(_ context.Context, item *models.MenuItem) error {
	stored := *item
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.items[item.ID] = &stored
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, categoryID, id uuid.UUID) (*models.MenuItem, error) {
	stored, ok := f.items[id]
	if !ok || stored.CategoryID != categoryID {
		return nil, common.ErrNotFound
	}
	clone := *stored
	return &clone, nil
}

func (f *fakeItemRepo) Update(_ context.Context, categoryID, id uuid.UUID, update *models.MenuItemUpdate) error {
	stored, ok := f.items[id]
	if !ok || stored.CategoryID != categoryID {
		return common.ErrNotFound
	}
	if update.Order != nil {
		stored.Order = *update.Order
	}
	if update.Name != nil {
		stored.Name = *update.Name
	}
	if update.Image != nil {
		stored.Image = *update.Image
	}
	if update.Price != nil {
		stored.Price = update.Price
	}
	if update.PriceM != nil {
		stored.PriceM = update.PriceM
	}
	if update.PriceL != nil {
		stored.PriceL = update.PriceL
	}
	if update.PriceLiter != nil {
		stored.PriceLiter = update.PriceLiter
	}
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeItemRepo) Delete(_ context.Context, categoryID, id uuid.UUID) error {
	if err, ok := f.deleteErr[id]; ok {
		return err
	}
	stored, ok := f.items[id]
	if !ok || stored.CategoryID != categoryID {
		return common.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]*models.MenuItem, error) {
	items := []*models.MenuItem{}
	for _, stored := range f.items {
		if stored.CategoryID == categoryID {
			clone := *stored
			items = append(items, &clone)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	return items, nil
}

func (f *fakeItemRepo) MaxOrder(_ context.Context, categoryID uuid.UUID) (int, error) {
	max := 0
	for _, item := range f.items {
		if item.CategoryID == categoryID && item.Order > max {
			max = item.Order
		}
	}
	return max, nil
}

const fakeBucket = "menu-images"

type fakeStorage struct {
	objects   map[string][]byte
	deleted   []string
	uploadErr error
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) UploadImage(_ context.Context, objectKey string, reader io.Reader, _ int64, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.objects[objectKey] = data
	return fmt.Sprintf("http://storage.local/%s/%s", fakeBucket, objectKey), nil
}

func (f *fakeStorage) DeleteImageByURL(_ context.Context, imageURL string) error {
	objectKey, err := ObjectKeyFromURL(imageURL, fakeBucket)
	if err != nil {
		return err
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, objectKey)
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeStorage) ListImageKeys(_ context.Context) ([]string, error) {
	var keys []string
	for key := range f.objects {
		keys = append(keys, key)
	}
	return keys, nil
}

func (f *fakeStorage) EnsureBucket(_ context.Context) error { return nil }
