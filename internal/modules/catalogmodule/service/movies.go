package service

import (
	"context"

	"github.com/mantonx/filmadmin/internal/database"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/core/repository"
	catalogerrors "github.com/mantonx/filmadmin/internal/modules/catalogmodule/errors"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/models"
	"github.com/mantonx/filmadmin/internal/validation"
)

var moviePreloads = []string{"Language", "Genres", "Companies", "CrewMembers"}

// MovieService manages movies and their genre links
type MovieService struct {
	*CRUD[database.Movie, models.AdminMovie, models.MovieModel]
	genres linker[database.GenreMovie]
}

// NewMovieService creates the movie service
func NewMovieService(gw *repository.Gateway, v *validation.Validator) *MovieService {
	crud := NewCRUD(gw, v, Definition[database.Movie, models.AdminMovie, models.MovieModel]{
		Name:       "movie",
		Collection: (*repository.Gateway).Movies,
		Preloads:   moviePreloads,
		References: func(in models.AdminMovie) []Reference {
			return []Reference{
				{Field: "LanguageID", ID: in.LanguageID, Exists: exists((*repository.Gateway).Languages)},
			}
		},
		Apply:   models.AdminMovie.Apply,
		Differs: models.AdminMovie.Differs,
		Project: models.NewMovieModel,
		Key:     func(m *database.Movie) uint { return m.ID },
		BeforeDelete: func(ctx context.Context, tx *repository.Gateway, m *database.Movie) error {
			if _, err := tx.GenreMovies().RemoveWhere(ctx, "movie_id = ?", m.ID); err != nil {
				return err
			}
			if _, err := tx.CompanyMovies().RemoveWhere(ctx, "movie_id = ?", m.ID); err != nil {
				return err
			}
			_, err := tx.CrewMembers().RemoveWhere(ctx, "movie_id = ?", m.ID)
			return err
		},
	})

	return &MovieService{
		CRUD:   crud,
		genres: genreMovieLinker(),
	}
}

func genreMovieLinker() linker[database.GenreMovie] {
	return linker[database.GenreMovie]{
		parentExists: exists((*repository.Gateway).Genres),
		movieExists:  exists((*repository.Gateway).Movies),
		joins:        (*repository.Gateway).GenreMovies,
		row: func(genreID, movieID uint) *database.GenreMovie {
			return &database.GenreMovie{GenreID: genreID, MovieID: movieID}
		},
		match: "genre_id = ? AND movie_id = ?",
	}
}

// ConnectGenre links a genre to a movie. The result carries the movie
// projection when the link was written.
func (s *MovieService) ConnectGenre(ctx context.Context, movieID, genreID uint) (LinkResult[models.MovieModel], error) {
	status, err := s.genres.connect(ctx, s.gw, genreID, movieID)
	if err != nil {
		return LinkResult[models.MovieModel]{}, catalogerrors.Wrap(err, "movie.connect_genre")
	}
	if status.OK() {
		s.log.Info("genre connected", "movie_id", movieID, "genre_id", genreID)
	}
	return linkResult(ctx, status, s.Read, movieID)
}

// DisconnectGenre removes the link between a genre and a movie. A link that
// does not exist yields NotLinked, however many times it is requested.
func (s *MovieService) DisconnectGenre(ctx context.Context, movieID, genreID uint) (LinkResult[models.MovieModel], error) {
	status, err := s.genres.disconnect(ctx, s.gw, genreID, movieID)
	if err != nil {
		return LinkResult[models.MovieModel]{}, catalogerrors.Wrap(err, "movie.disconnect_genre")
	}
	if status.OK() {
		s.log.Info("genre disconnected", "movie_id", movieID, "genre_id", genreID)
	}
	return linkResult(ctx, status, s.Read, movieID)
}
