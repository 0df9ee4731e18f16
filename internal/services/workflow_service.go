package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"menuboard/internal/models"

	"github.com/google/uuid"
)

// WorkflowStep names one step of a multi-step write workflow. Workflow
// errors carry the step that failed so an operator can see exactly how far
// a non-atomic sequence got before reconciling by hand.
type WorkflowStep string

const (
	StepDocumentCreated   WorkflowStep = "document_created"
	StepImageUploaded     WorkflowStep = "image_uploaded"
	StepDocumentFinalized WorkflowStep = "document_finalized"
	StepItemCopied        WorkflowStep = "item_copied"
	StepSourceItemDeleted WorkflowStep = "source_item_deleted"
	StepDocumentDeleted   WorkflowStep = "document_deleted"
)

// WorkflowError wraps a step failure. Steps before it have already taken
// effect; there is no automatic rollback.
type WorkflowError struct {
	Step WorkflowStep
	Err  error
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("workflow step %s failed: %v", e.Step, e.Err)
}

func (e *WorkflowError) Unwrap() error { return e.Err }

// ImageUpload is an image file attached to an admin form submission.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// WorkflowService sequences document writes with their image uploads. The
// storage key for an image depends on the document id, which only exists
// after the document is first created, so create-with-image is always
// create, upload, finalize.
type WorkflowService interface {
	CreateCategory(ctx context.Context, data *models.CategoryData, image *ImageUpload) (uuid.UUID, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, update *models.CategoryUpdate, image *ImageUpload) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CreateItem(ctx context.Context, categoryID uuid.UUID, data *models.MenuItemData, image *ImageUpload) (uuid.UUID, error)
	UpdateItem(ctx context.Context, categoryID, itemID, destCategoryID uuid.UUID, update *models.MenuItemUpdate, image *ImageUpload) error
	DeleteItem(ctx context.Context, categoryID, itemID uuid.UUID) error
}

type workflowService struct {
	menu    MenuService
	storage StorageService
}

func NewWorkflowService(menu MenuService, storage StorageService) WorkflowService {
	return &workflowService{menu: menu, storage: storage}
}

// CreateCategory creates the category document with an empty image field,
// then uploads the image and finalizes the document with its URL. A failure
// after the first step leaves the document in place without an image.
func (w *workflowService) CreateCategory(ctx context.Context, data *models.CategoryData, image *ImageUpload) (uuid.UUID, error) {
	data.MainImage = ""
	id, err := w.menu.CreateCategory(ctx, data)
	if err != nil {
		return uuid.Nil, stepErr(StepDocumentCreated, err)
	}
	if image == nil {
		return id, nil
	}

	objectKey := CategoryImageKey(id, image.Filename, time.Now())
	imageURL, err := w.storage.UploadImage(ctx, objectKey, image.Reader, image.Size, image.ContentType)
	if err != nil {
		return id, stepErr(StepImageUploaded, err)
	}
	if err := w.menu.UpdateCategory(ctx, id, &models.CategoryUpdate{MainImage: &imageURL}); err != nil {
		return id, stepErr(StepDocumentFinalized, err)
	}
	return id, nil
}

// UpdateCategory applies an edit, replacing the image first when a new file
// is supplied. The old blob is deleted best-effort: an orphaned blob must
// never block the edit.
func (w *workflowService) UpdateCategory(ctx context.Context, id uuid.UUID, update *models.CategoryUpdate, image *ImageUpload) error {
	if image != nil {
		existing, err := w.menu.GetCategory(ctx, id)
		if err != nil {
			return err
		}
		w.deleteImageBestEffort(ctx, existing.MainImage)

		objectKey := CategoryImageKey(id, image.Filename, time.Now())
		imageURL, err := w.storage.UploadImage(ctx, objectKey, image.Reader, image.Size, image.ContentType)
		if err != nil {
			return stepErr(StepImageUploaded, err)
		}
		update.MainImage = &imageURL
	}
	if err := w.menu.UpdateCategory(ctx, id, update); err != nil {
		return stepErr(StepDocumentFinalized, err)
	}
	return nil
}

// DeleteCategory removes the category's blobs best-effort, then its item
// documents and the category document.
func (w *workflowService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := w.menu.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	w.deleteImageBestEffort(ctx, category.MainImage)
	for _, item := range category.Items {
		w.deleteImageBestEffort(ctx, item.Image)
	}
	if err := w.menu.DeleteCategory(ctx, id); err != nil {
		return stepErr(StepDocumentDeleted, err)
	}
	return nil
}

func (w *workflowService) CreateItem(ctx context.Context, categoryID uuid.UUID, data *models.MenuItemData, image *ImageUpload) (uuid.UUID, error) {
	data.Image = ""
	id, err := w.menu.CreateItem(ctx, categoryID, data)
	if err != nil {
		return uuid.Nil, stepErr(StepDocumentCreated, err)
	}
	if image == nil {
		return id, nil
	}

	objectKey := ItemImageKey(id, image.Filename, time.Now())
	imageURL, err := w.storage.UploadImage(ctx, objectKey, image.Reader, image.Size, image.ContentType)
	if err != nil {
		return id, stepErr(StepImageUploaded, err)
	}
	if err := w.menu.UpdateItem(ctx, categoryID, id, &models.MenuItemUpdate{Image: &imageURL}); err != nil {
		return id, stepErr(StepDocumentFinalized, err)
	}
	return id, nil
}

// UpdateItem applies an item edit. When destCategoryID differs from the
// owning category, the item is moved: a copy is created in the destination
// with that category's next order, then the original is deleted. The two
// writes are independent; if the delete fails the item exists in both
// categories until an operator reconciles.
func (w *workflowService) UpdateItem(ctx context.Context, categoryID, itemID, destCategoryID uuid.UUID, update *models.MenuItemUpdate, image *ImageUpload) error {
	existing, err := w.menu.GetItem(ctx, categoryID, itemID)
	if err != nil {
		return err
	}

	if image != nil {
		w.deleteImageBestEffort(ctx, existing.Image)

		objectKey := ItemImageKey(itemID, image.Filename, time.Now())
		imageURL, err := w.storage.UploadImage(ctx, objectKey, image.Reader, image.Size, image.ContentType)
		if err != nil {
			return stepErr(StepImageUploaded, err)
		}
		update.Image = &imageURL
	}

	if destCategoryID != categoryID {
		order, err := w.menu.NextItemOrder(ctx, destCategoryID)
		if err != nil {
			return err
		}
		moved := mergeItem(existing, update)
		moved.Order = order
		if _, err := w.menu.CreateItem(ctx, destCategoryID, moved); err != nil {
			return stepErr(StepItemCopied, err)
		}
		if err := w.menu.DeleteItem(ctx, categoryID, itemID); err != nil {
			return stepErr(StepSourceItemDeleted, err)
		}
		return nil
	}

	if err := w.menu.UpdateItem(ctx, categoryID, itemID, update); err != nil {
		return stepErr(StepDocumentFinalized, err)
	}
	return nil
}

func (w *workflowService) DeleteItem(ctx context.Context, categoryID, itemID uuid.UUID) error {
	item, err := w.menu.GetItem(ctx, categoryID, itemID)
	if err != nil {
		return err
	}
	w.deleteImageBestEffort(ctx, item.Image)
	if err := w.menu.DeleteItem(ctx, categoryID, itemID); err != nil {
		return stepErr(StepDocumentDeleted, err)
	}
	return nil
}

// deleteImageBestEffort is fire-and-log: cleanup of an old blob never
// propagates a failure into the primary operation.
func (w *workflowService) deleteImageBestEffort(ctx context.Context, imageURL string) {
	if imageURL == "" {
		return
	}
	if err := w.storage.DeleteImageByURL(ctx, imageURL); err != nil {
		log.Printf("WARN: best-effort image delete failed for %s: %v", imageURL, err)
	}
}

func stepErr(step WorkflowStep, err error) error {
	return &WorkflowError{Step: step, Err: err}
}

// mergeItem folds a partial update over an existing item, producing the
// full data used to recreate it in another category.
func mergeItem(existing *models.MenuItem, update *models.MenuItemUpdate) *models.MenuItemData {
	data := &models.MenuItemData{
		Order:      existing.Order,
		Name:       existing.Name,
		Image:      existing.Image,
		Price:      existing.Price,
		PriceM:     existing.PriceM,
		PriceL:     existing.PriceL,
		PriceLiter: existing.PriceLiter,
	}
	if update.Order != nil {
		data.Order = *update.Order
	}
	if update.Name != nil {
		data.Name = *update.Name
	}
	if update.Image != nil {
		data.Image = *update.Image
	}
	if update.Price != nil {
		data.Price = update.Price
	}
	if update.PriceM != nil {
		data.PriceM = update.PriceM
	}
	if update.PriceL != nil {
		data.PriceL = update.PriceL
	}
	if update.PriceLiter != nil {
		data.PriceLiter = update.PriceLiter
	}
	return data
}
