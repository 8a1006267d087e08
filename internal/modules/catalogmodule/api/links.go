package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	apierr "github.com/mantonx/filmadmin/internal/api"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/service"
	"github.com/mantonx/filmadmin/internal/validation"
)

// linkFields names the error keys of one link kind, e.g. GenreID, MovieID
// and GenreMovieID.
type linkFields struct {
	parent string
	movie  string
	join   string
}

var (
	genreMovieFields   = linkFields{parent: "GenreID", movie: "MovieID", join: "GenreMovieID"}
	companyMovieFields = linkFields{parent: "CompanyID", movie: "MovieID", join: "CompanyMovieID"}
)

// linkBody is the structured form of a connect request. The raw form is a
// bare JSON integer.
type linkBody struct {
	ID      *uint `json:"id"`
	GenreID *uint `json:"genreID"`
	MovieID *uint `json:"movieID"`
}

// bindLinkTarget reads the id of the row to link from the request body. key
// selects the structured field ("genreID" or "movieID"); "id" is accepted
// as a fallback.
func bindLinkTarget(c *gin.Context, key string) (uint, bool) {
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		apierr.RespondWithFieldError(c, http.StatusBadRequest, key, msgMissingLink)
		return 0, false
	}

	var bare uint
	if err := json.Unmarshal(raw, &bare); err == nil {
		return positiveTarget(c, key, bare)
	}

	var body linkBody
	if err := json.Unmarshal(raw, &body); err != nil {
		apierr.RespondWithFieldError(c, http.StatusBadRequest, fieldBody, msgMalformed)
		return 0, false
	}

	target := body.ID
	switch key {
	case "genreID":
		if body.GenreID != nil {
			target = body.GenreID
		}
	case "movieID":
		if body.MovieID != nil {
			target = body.MovieID
		}
	}
	if target == nil {
		apierr.RespondWithFieldError(c, http.StatusBadRequest, key, msgMissingLink)
		return 0, false
	}
	return positiveTarget(c, key, *target)
}

func positiveTarget(c *gin.Context, key string, id uint) (uint, bool) {
	if id == 0 {
		apierr.RespondWithFieldError(c, http.StatusBadRequest, key, msgBadID)
		return 0, false
	}
	return id, true
}

// respondWithLink maps a link outcome to 200 with the fresh projection, or to
// a 404 naming the missing side.
func respondWithLink[O any](c *gin.Context, result service.LinkResult[O], err error, fields linkFields) {
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	errs := validation.Errors{}
	switch result.Status {
	case service.Linked, service.Unlinked:
		c.JSON(http.StatusOK, result.Model)
		return
	case service.ParentNotFound:
		errs.Add(fields.parent, validation.MsgDoesNotExist)
	case service.MovieNotFound:
		errs.Add(fields.movie, validation.MsgDoesNotExist)
	case service.BothNotFound:
		errs.Add(fields.parent, validation.MsgDoesNotExist)
		errs.Add(fields.movie, validation.MsgDoesNotExist)
	case service.AlreadyLinked:
		errs.Add(fields.join, validation.MsgAlreadyExists)
	case service.NotLinked:
		errs.Add(fields.join, validation.MsgDoesNotExist)
	}
	apierr.RespondWithFieldErrors(c, http.StatusNotFound, errs)
}

// ConnectGenre handles POST /api/movie/:id/genres
func (h *Handler) ConnectGenre(c *gin.Context) {
	movieID, ok := parseID(c, "id")
	if !ok {
		return
	}
	genreID, ok := bindLinkTarget(c, "genreID")
	if !ok {
		return
	}

	result, err := h.services.Movies.ConnectGenre(c.Request.Context(), movieID, genreID)
	respondWithLink(c, result, err, genreMovieFields)
}

// DisconnectGenre handles POST|DELETE /api/movie/:id/genres/:genreID
func (h *Handler) DisconnectGenre(c *gin.Context) {
	movieID, ok := parseID(c, "id")
	if !ok {
		return
	}
	genreID, ok := parseID(c, "genreID")
	if !ok {
		return
	}

	result, err := h.services.Movies.DisconnectGenre(c.Request.Context(), movieID, genreID)
	respondWithLink(c, result, err, genreMovieFields)
}

// ConnectMovie handles POST /api/company/:id/movies
func (h *Handler) ConnectMovie(c *gin.Context) {
	companyID, ok := parseID(c, "id")
	if !ok {
		return
	}
	movieID, ok := bindLinkTarget(c, "movieID")
	if !ok {
		return
	}

	result, err := h.services.Companies.ConnectMovie(c.Request.Context(), companyID, movieID)
	respondWithLink(c, result, err, companyMovieFields)
}

// DisconnectMovie handles POST|DELETE /api/company/:id/movies/:movieID
func (h *Handler) DisconnectMovie(c *gin.Context) {
	companyID, ok := parseID(c, "id")
	if !ok {
		return
	}
	movieID, ok := parseID(c, "movieID")
	if !ok {
		return
	}

	result, err := h.services.Companies.DisconnectMovie(c.Request.Context(), companyID, movieID)
	respondWithLink(c, result, err, companyMovieFields)
}
