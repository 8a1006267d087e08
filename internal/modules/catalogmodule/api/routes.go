package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/filmadmin/internal/apiroutes"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/models"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/service"
)

// Handler provides HTTP handlers for catalog operations
type Handler struct {
	services *service.Services

	movies      entityHandler[models.AdminMovie, models.MovieModel]
	people      entityHandler[models.AdminPerson, models.PersonModel]
	genres      entityHandler[models.AdminGenre, models.GenreModel]
	languages   entityHandler[models.AdminLanguage, models.LanguageModel]
	companies   entityHandler[models.AdminCompany, models.CompanyModel]
	crewMembers entityHandler[models.AdminCrewMember, models.CrewMemberModel]
}

// NewHandler creates a new API handler
func NewHandler(services *service.Services) *Handler {
	return &Handler{
		services: services,
		movies: entityHandler[models.AdminMovie, models.MovieModel]{
			path:    "movie",
			service: services.Movies,
			bodyID:  func(in models.AdminMovie) uint { return in.ID },
			key:     func(out models.MovieModel) uint { return out.ID },
		},
		people: entityHandler[models.AdminPerson, models.PersonModel]{
			path:    "person",
			service: services.People,
			bodyID:  func(in models.AdminPerson) uint { return in.ID },
			key:     func(out models.PersonModel) uint { return out.ID },
		},
		genres: entityHandler[models.AdminGenre, models.GenreModel]{
			path:    "genre",
			service: services.Genres,
			bodyID:  func(in models.AdminGenre) uint { return in.ID },
			key:     func(out models.GenreModel) uint { return out.ID },
		},
		languages: entityHandler[models.AdminLanguage, models.LanguageModel]{
			path:    "language",
			service: services.Languages,
			bodyID:  func(in models.AdminLanguage) uint { return in.ID },
			key:     func(out models.LanguageModel) uint { return out.ID },
		},
		companies: entityHandler[models.AdminCompany, models.CompanyModel]{
			path:    "company",
			service: services.Companies,
			bodyID:  func(in models.AdminCompany) uint { return in.ID },
			key:     func(out models.CompanyModel) uint { return out.ID },
		},
		crewMembers: entityHandler[models.AdminCrewMember, models.CrewMemberModel]{
			path:    "crewmember",
			service: services.CrewMembers,
			bodyID:  func(in models.AdminCrewMember) uint { return in.ID },
			key:     func(out models.CrewMemberModel) uint { return out.ID },
		},
	}
}

// crudRoutes is the route table entry for one entity
type crudRoutes struct {
	path    string
	label   string
	create  gin.HandlerFunc
	readAll gin.HandlerFunc
	read    gin.HandlerFunc
	update  gin.HandlerFunc
	remove  gin.HandlerFunc
}

func routesFor[In any, Out any](label string, h entityHandler[In, Out]) crudRoutes {
	return crudRoutes{
		path:    h.path,
		label:   label,
		create:  h.Create,
		readAll: h.ReadAll,
		read:    h.Read,
		update:  h.Update,
		remove:  h.Delete,
	}
}

// RegisterRoutes registers all catalog routes under /api and records them
// in registry.
func RegisterRoutes(router *gin.Engine, handler *Handler, registry *apiroutes.Registry) {
	apiGroup := router.Group("/api")

	for _, r := range []crudRoutes{
		routesFor("movie", handler.movies),
		routesFor("person", handler.people),
		routesFor("genre", handler.genres),
		routesFor("language", handler.languages),
		routesFor("company", handler.companies),
		routesFor("crew member", handler.crewMembers),
	} {
		base := "/" + r.path
		registry.Handle(apiGroup, http.MethodPost, base, "Create a "+r.label, r.create)
		registry.Handle(apiGroup, http.MethodGet, base, "List every "+r.label, r.readAll)
		registry.Handle(apiGroup, http.MethodGet, base+"/:id", "Read a "+r.label, r.read)
		registry.Handle(apiGroup, http.MethodPut, base+"/:id", "Update a "+r.label, r.update)
		registry.Handle(apiGroup, http.MethodDelete, base+"/:id", "Delete a "+r.label, r.remove)
	}

	// Links
	registry.Handle(apiGroup, http.MethodPost, "/movie/:id/genres", "Connect a genre to a movie", handler.ConnectGenre)
	registry.Handle(apiGroup, http.MethodPost, "/movie/:id/genres/:genreID", "Disconnect a genre from a movie", handler.DisconnectGenre)
	registry.Handle(apiGroup, http.MethodDelete, "/movie/:id/genres/:genreID", "Disconnect a genre from a movie", handler.DisconnectGenre)
	registry.Handle(apiGroup, http.MethodPost, "/company/:id/movies", "Connect a movie to a company", handler.ConnectMovie)
	registry.Handle(apiGroup, http.MethodPost, "/company/:id/movies/:movieID", "Disconnect a movie from a company", handler.DisconnectMovie)
	registry.Handle(apiGroup, http.MethodDelete, "/company/:id/movies/:movieID", "Disconnect a movie from a company", handler.DisconnectMovie)

	// Related lists
	registry.Handle(apiGroup, http.MethodGet, "/genre/:id/movies", "List the movies of a genre", handler.GenreMovies)
	registry.Handle(apiGroup, http.MethodGet, "/language/:id/movies", "List the movies in a language", handler.LanguageMovies)
	registry.Handle(apiGroup, http.MethodGet, "/person/:id/roles", "List the crew credits of a person", handler.PersonRoles)
}

// GenreMovies handles GET /api/genre/:id/movies
func (h *Handler) GenreMovies(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	movies, err := h.services.Genres.Movies(c.Request.Context(), id)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	respondWithList(c, movies)
}

// LanguageMovies handles GET /api/language/:id/movies
func (h *Handler) LanguageMovies(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	movies, err := h.services.Languages.Movies(c.Request.Context(), id)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	respondWithList(c, movies)
}

// PersonRoles handles GET /api/person/:id/roles
func (h *Handler) PersonRoles(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	roles, err := h.services.People.Roles(c.Request.Context(), id)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	respondWithList(c, roles)
}
