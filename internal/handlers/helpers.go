package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"menuboard/internal/common"
	"menuboard/internal/models"
	"menuboard/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// httpError maps service errors onto HTTP statuses. Workflow errors keep
// their failed-step detail in the log, not the response.
func httpError(err error) error {
	var validationErr *common.ValidationError
	var workflowErr *services.WorkflowError
	if errors.As(err, &workflowErr) {
		log.Printf("WARN: %v", workflowErr)
	}
	switch {
	case errors.As(err, &validationErr):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{
			"field":   validationErr.Field,
			"message": validationErr.Message,
		})
	case errors.Is(err, common.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many submissions")
	case errors.Is(err, common.ErrRemoteUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "backend unavailable")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func parseID(c echo.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// imageUploadFromForm extracts the optional "image" multipart file. A
// missing file is not an error; the caller must close the returned closer
// when one is present.
func imageUploadFromForm(c echo.Context) (*services.ImageUpload, io.Closer, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, nil, nil
	}
	src, err := fileHeader.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "cannot read image file")
	}
	return &services.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      src,
	}, src, nil
}

func formInt(c echo.Context, name string) (*int, error) {
	raw := c.FormValue(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return &value, nil
}

func formFloat(c echo.Context, name string) (*float64, error) {
	raw := c.FormValue(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return &value, nil
}

// formLocalized assembles an optional {en, ar} pair from two form fields,
// returning nil when both are empty.
func formLocalized(c echo.Context, prefix string) *models.LocalizedText {
	en := c.FormValue(prefix + "_en")
	ar := c.FormValue(prefix + "_ar")
	if en == "" && ar == "" {
		return nil
	}
	return &models.LocalizedText{En: en, Ar: ar}
}
