// Package api exposes the catalog services over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierr "github.com/mantonx/filmadmin/internal/api"
	catalogerrors "github.com/mantonx/filmadmin/internal/modules/catalogmodule/errors"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/service"
	"github.com/mantonx/filmadmin/internal/validation"
)

const (
	msgBadID        = "Must be a positive integer."
	msgIDMismatch   = "Does not match the route id."
	msgMalformed    = "Must be a valid JSON document."
	msgMissingLink  = "Is required."
	fieldBody       = "body"
	fieldIDMismatch = "ID"
)

// crudService is the method set every entity service shares through
// service.CRUD.
type crudService[In any, Out any] interface {
	Name() string
	Create(ctx context.Context, in In) (Out, error)
	Read(ctx context.Context, id uint) (Out, error)
	ReadAll(ctx context.Context) ([]Out, error)
	Update(ctx context.Context, id uint, in In) (Out, bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// entityHandler serves the five CRUD routes of one entity.
type entityHandler[In any, Out any] struct {
	path    string // route segment, e.g. "movie"
	service crudService[In, Out]
	bodyID  func(In) uint
	key     func(Out) uint
}

// Create handles POST /api/{entity}
func (h entityHandler[In, Out]) Create(c *gin.Context) {
	var in In
	if !bindJSON(c, &in) {
		return
	}

	out, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/%s/%d", h.path, h.key(out)))
	c.JSON(http.StatusCreated, out)
}

// Read handles GET /api/{entity}/:id
func (h entityHandler[In, Out]) Read(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	out, err := h.service.Read(c.Request.Context(), id)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ReadAll handles GET /api/{entity}
func (h entityHandler[In, Out]) ReadAll(c *gin.Context) {
	out, err := h.service.ReadAll(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	respondWithList(c, out)
}

// Update handles PUT /api/{entity}/:id
func (h entityHandler[In, Out]) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var in In
	if !bindJSON(c, &in) {
		return
	}
	if bodyID := h.bodyID(in); bodyID != 0 && bodyID != id {
		apierr.RespondWithFieldError(c, http.StatusBadRequest, fieldIDMismatch, msgIDMismatch)
		return
	}

	out, _, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /api/{entity}/:id
func (h entityHandler[In, Out]) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	if !deleted {
		apierr.RespondWithNotFound(c, h.service.Name(), strconv.FormatUint(uint64(id), 10))
		return
	}
	c.Status(http.StatusOK)
}

// parseID reads a positive integer route parameter. On failure it writes a
// 400 and reports false.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		apierr.RespondWithFieldError(c, http.StatusBadRequest, param, msgBadID)
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the request body into dst. Type mismatches are reported
// against the offending JSON field.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			apierr.RespondWithFieldError(c, http.StatusBadRequest, typeErr.Field, validation.MsgInvalidValue)
			return false
		}
		apierr.RespondWithFieldError(c, http.StatusBadRequest, fieldBody, msgMalformed)
		return false
	}
	return true
}

func respondWithList[T any](c *gin.Context, items []T) {
	if len(items) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, items)
}

// respondWithServiceError maps a service failure to its HTTP response:
// invalid input 400, missing nested references 404 with a field map, and
// everything else through the structured error response.
func respondWithServiceError(c *gin.Context, err error) {
	if errs, ok := validation.AsErrors(err); ok {
		apierr.RespondWithFieldErrors(c, http.StatusBadRequest, errs)
		return
	}

	var refErr *service.ReferenceError
	if errors.As(err, &refErr) {
		apierr.RespondWithFieldErrors(c, http.StatusNotFound, refErr.Fields)
		return
	}

	apierr.RespondWithError(c, catalogerrors.ToAppError(err))
}
