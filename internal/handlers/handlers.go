package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"cinehub/internal/services"
	"cinehub/pkg/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// newValidator builds the validator shared by the handlers, registering the
// plainname rule applied to user and routine names.
func newValidator() *validator.Validate {
	v := validator.New()
	// Names are re-displayed in forms, so markup and control characters
	// are rejected up front.
	_ = v.RegisterValidation("plainname", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if r < 0x20 || strings.ContainsRune(`<>&"\`, r) {
				return false
			}
		}
		return true
	})
	return v
}

// fieldErrors flattens validator errors into a field->message map.
func fieldErrors(err error) map[string]string {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}

// validationFailed reports field validation errors along with the submitted
// values so a form can re-display them.
func validationFailed(c *fiber.Ctx, err error, values map[string]interface{}) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  fieldErrors(err),
		"values":  values,
	})
}

// serviceError maps the service error taxonomy onto HTTP status codes.
func serviceError(c *fiber.Ctx, err error) error {
	var vErr *services.ValidationError
	var upErr *services.UpstreamError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  map[string]string{vErr.Field: vErr.Message},
			"values":  map[string]string{vErr.Field: vErr.Value},
		})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Conflict",
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not found",
			"error":   err.Error(),
		})
	case errors.As(err, &upErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Upstream failure",
			"error":   err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal error",
			"error":   err.Error(),
		})
	}
}

// parseID reads the :id route parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, &services.ValidationError{
			Field:   "id",
			Value:   c.Params("id"),
			Message: "id must be a positive integer",
		}
	}
	return uint(id), nil
}

// parseDate parses a YYYY-MM-DD form value.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(services.DateLayout, value)
	if err != nil {
		return time.Time{}, &services.ValidationError{
			Field:   field,
			Value:   value,
			Message: "date must be in YYYY-MM-DD format",
		}
	}
	return t, nil
}

// decodeParam URL-decodes a raw route parameter. A malformed escape
// sequence is reported as a validation error on the parameter.
func decodeParam(name, raw string) (string, error) {
	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", &services.ValidationError{
			Field:   name,
			Value:   raw,
			Message: "malformed percent-encoding",
		}
	}
	return value, nil
}

// formImage reads the optional "img" multipart file. A missing file is not
// an error; the entity is simply created without an image.
func formImage(c *fiber.Ctx) (*storage.File, error) {
	fh, err := c.FormFile("img")
	if err != nil || fh == nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, &services.UpstreamError{Op: "image upload", Err: err}
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, &services.UpstreamError{Op: "image upload", Err: err}
	}
	return &storage.File{Name: fh.Filename, Content: content}, nil
}
