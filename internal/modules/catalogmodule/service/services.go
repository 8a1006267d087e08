package service

import (
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/core/repository"
	"github.com/mantonx/filmadmin/internal/validation"
)

// Services bundles the catalog's entity services
type Services struct {
	Movies      *MovieService
	People      *PersonService
	Genres      *GenreService
	Languages   *LanguageService
	Companies   *CompanyService
	CrewMembers *CrewMemberService
}

// NewServices creates every entity service over one gateway
func NewServices(gw *repository.Gateway, v *validation.Validator) *Services {
	return &Services{
		Movies:      NewMovieService(gw, v),
		People:      NewPersonService(gw, v),
		Genres:      NewGenreService(gw, v),
		Languages:   NewLanguageService(gw, v),
		Companies:   NewCompanyService(gw, v),
		CrewMembers: NewCrewMemberService(gw, v),
	}
}
