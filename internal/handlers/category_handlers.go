package handlers

import (
	"net/http"

	"menuboard/internal/models"
	"menuboard/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles the admin category endpoints. Creates and edits
// arrive as multipart forms with an optional image file, matching the admin
// UI's submission shape.
type CategoryHandlers struct {
	menuSvc     services.MenuService
	workflowSvc services.WorkflowService
}

func NewCategoryHandlers(menuSvc services.MenuService, workflowSvc services.WorkflowService) *CategoryHandlers {
	return &CategoryHandlers{menuSvc: menuSvc, workflowSvc: workflowSvc}
}

func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	categories, err := h.menuSvc.ListCategories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"categories": categories})
}

func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.menuSvc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := formInt(c, "order")
	if err != nil {
		return err
	}
	if order == nil {
		next, err := h.menuSvc.NextCategoryOrder(ctx)
		if err != nil {
			return httpError(err)
		}
		order = &next
	}

	data := &models.CategoryData{
		Order: *order,
		Title: models.LocalizedText{
			En: c.FormValue("title_en"),
			Ar: c.FormValue("title_ar"),
		},
		Description: models.LocalizedText{
			En: c.FormValue("description_en"),
			Ar: c.FormValue("description_ar"),
		},
		Tagline: formLocalized(c, "tagline"),
		Extras:  formLocalized(c, "extras"),
	}

	image, closer, err := imageUploadFromForm(c)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	id, err := h.workflowSvc.CreateCategory(ctx, data, image)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	order, err := formInt(c, "order")
	if err != nil {
		return err
	}
	update := &models.CategoryUpdate{
		Order:       order,
		Title:       formLocalized(c, "title"),
		Description: formLocalized(c, "description"),
		Tagline:     formLocalized(c, "tagline"),
		Extras:      formLocalized(c, "extras"),
	}

	image, closer, err := imageUploadFromForm(c)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	if err := h.workflowSvc.UpdateCategory(c.Request().Context(), id, update, image); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.workflowSvc.DeleteCategory(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandlers) NextCategoryOrder(c echo.Context) error {
	order, err := h.menuSvc.NextCategoryOrder(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int{"order": order})
}
