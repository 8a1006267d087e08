package service

import (
	"context"

	"github.com/mantonx/filmadmin/internal/database"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/core/repository"
	catalogerrors "github.com/mantonx/filmadmin/internal/modules/catalogmodule/errors"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/models"
	"github.com/mantonx/filmadmin/internal/validation"
)

// =============================================================================
// GENRES
// =============================================================================

// GenreService manages genres
type GenreService struct {
	*CRUD[database.Genre, models.AdminGenre, models.GenreModel]
}

// NewGenreService creates the genre service
func NewGenreService(gw *repository.Gateway, v *validation.Validator) *GenreService {
	return &GenreService{NewCRUD(gw, v, Definition[database.Genre, models.AdminGenre, models.GenreModel]{
		Name:       "genre",
		Collection: (*repository.Gateway).Genres,
		Apply:      models.AdminGenre.Apply,
		Differs:    models.AdminGenre.Differs,
		Project:    models.NewGenreModel,
		Key:        func(g *database.Genre) uint { return g.ID },
		BeforeDelete: func(ctx context.Context, tx *repository.Gateway, g *database.Genre) error {
			_, err := tx.GenreMovies().RemoveWhere(ctx, "genre_id = ?", g.ID)
			return err
		},
	})}
}

// Movies lists the movies linked to a genre
func (s *GenreService) Movies(ctx context.Context, id uint) ([]models.MovieModel, error) {
	ok, err := s.gw.Genres().Exists(ctx, id)
	if err != nil {
		return nil, catalogerrors.DatabaseError("genre.movies", err)
	}
	if !ok {
		return nil, catalogerrors.NotFound("genre.movies", "genre", id)
	}

	linked := s.gw.DB(ctx).Model(&database.GenreMovie{}).Select("movie_id").Where("genre_id = ?", id)
	movies, err := s.gw.Movies().Preload(moviePreloads...).Where(ctx, "id IN (?)", linked)
	if err != nil {
		return nil, catalogerrors.DatabaseError("genre.movies", err)
	}
	return projectAll(movies, models.NewMovieModel), nil
}

// =============================================================================
// LANGUAGES
// =============================================================================

// LanguageService manages languages
type LanguageService struct {
	*CRUD[database.Language, models.AdminLanguage, models.LanguageModel]
}

// NewLanguageService creates the language service. A language that is still
// spoken in a movie cannot be deleted.
func NewLanguageService(gw *repository.Gateway, v *validation.Validator) *LanguageService {
	return &LanguageService{NewCRUD(gw, v, Definition[database.Language, models.AdminLanguage, models.LanguageModel]{
		Name:       "language",
		Collection: (*repository.Gateway).Languages,
		Apply:      models.AdminLanguage.Apply,
		Differs:    models.AdminLanguage.Differs,
		Project:    models.NewLanguageModel,
		Key:        func(l *database.Language) uint { return l.ID },
		BeforeDelete: func(ctx context.Context, tx *repository.Gateway, l *database.Language) error {
			used, err := tx.Movies().ExistsWhere(ctx, "language_id = ?", l.ID)
			if err != nil {
				return err
			}
			if used {
				return catalogerrors.InUse("language.delete", "language", l.ID)
			}
			return nil
		},
	})}
}

// Movies lists the movies spoken in a language
func (s *LanguageService) Movies(ctx context.Context, id uint) ([]models.MovieModel, error) {
	ok, err := s.gw.Languages().Exists(ctx, id)
	if err != nil {
		return nil, catalogerrors.DatabaseError("language.movies", err)
	}
	if !ok {
		return nil, catalogerrors.NotFound("language.movies", "language", id)
	}

	movies, err := s.gw.Movies().Preload(moviePreloads...).Where(ctx, "language_id = ?", id)
	if err != nil {
		return nil, catalogerrors.DatabaseError("language.movies", err)
	}
	return projectAll(movies, models.NewMovieModel), nil
}

// =============================================================================
// PEOPLE
// =============================================================================

// PersonService manages people
type PersonService struct {
	*CRUD[database.Person, models.AdminPerson, models.PersonModel]
}

// NewPersonService creates the person service. Deleting a person removes
// their crew credits.
func NewPersonService(gw *repository.Gateway, v *validation.Validator) *PersonService {
	return &PersonService{NewCRUD(gw, v, Definition[database.Person, models.AdminPerson, models.PersonModel]{
		Name:       "person",
		Collection: (*repository.Gateway).People,
		Preloads:   []string{"Roles"},
		Apply:      models.AdminPerson.Apply,
		Differs:    models.AdminPerson.Differs,
		Project:    models.NewPersonModel,
		Key:        func(p *database.Person) uint { return p.ID },
		BeforeDelete: func(ctx context.Context, tx *repository.Gateway, p *database.Person) error {
			_, err := tx.CrewMembers().RemoveWhere(ctx, "person_id = ?", p.ID)
			return err
		},
	})}
}

// Roles lists the crew credits of a person
func (s *PersonService) Roles(ctx context.Context, id uint) ([]models.CrewMemberModel, error) {
	ok, err := s.gw.People().Exists(ctx, id)
	if err != nil {
		return nil, catalogerrors.DatabaseError("person.roles", err)
	}
	if !ok {
		return nil, catalogerrors.NotFound("person.roles", "person", id)
	}

	roles, err := s.gw.CrewMembers().Where(ctx, "person_id = ?", id)
	if err != nil {
		return nil, catalogerrors.DatabaseError("person.roles", err)
	}
	return projectAll(roles, models.NewCrewMemberModel), nil
}

// =============================================================================
// CREW MEMBERS
// =============================================================================

// CrewMemberService manages crew credits
type CrewMemberService struct {
	*CRUD[database.CrewMember, models.AdminCrewMember, models.CrewMemberModel]
}

// NewCrewMemberService creates the crew member service
func NewCrewMemberService(gw *repository.Gateway, v *validation.Validator) *CrewMemberService {
	return &CrewMemberService{NewCRUD(gw, v, Definition[database.CrewMember, models.AdminCrewMember, models.CrewMemberModel]{
		Name:       "crew member",
		Collection: (*repository.Gateway).CrewMembers,
		References: func(in models.AdminCrewMember) []Reference {
			return []Reference{
				{Field: "MovieID", ID: in.MovieID, Exists: exists((*repository.Gateway).Movies)},
				{Field: "PersonID", ID: in.PersonID, Exists: exists((*repository.Gateway).People)},
			}
		},
		Apply:   models.AdminCrewMember.Apply,
		Differs: models.AdminCrewMember.Differs,
		Project: models.NewCrewMemberModel,
		Key:     func(c *database.CrewMember) uint { return c.ID },
	})}
}

func projectAll[E any, Out any](entities []E, project func(*E) Out) []Out {
	out := make([]Out, 0, len(entities))
	for i := range entities {
		out = append(out, project(&entities[i]))
	}
	return out
}
