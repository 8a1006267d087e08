package service

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mantonx/filmadmin/internal/config"
	"github.com/mantonx/filmadmin/internal/database"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/core/repository"
	catalogerrors "github.com/mantonx/filmadmin/internal/modules/catalogmodule/errors"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/models"
	"github.com/mantonx/filmadmin/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServices(t *testing.T) (*Services, *repository.Gateway) {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Type:         "sqlite",
		DatabasePath: ":memory:",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gw := repository.NewGateway(db, 0)
	v := validation.New(config.DefaultDateLayouts()...)
	return NewServices(gw, v), gw
}

type fixture struct {
	language models.LanguageModel
	genre    models.GenreModel
	movie    models.MovieModel
	person   models.PersonModel
	company  models.CompanyModel
}

func seed(t *testing.T, svc *Services) fixture {
	t.Helper()
	ctx := context.Background()

	var f fixture
	var err error

	f.language, err = svc.Languages.Create(ctx, models.AdminLanguage{Name: "English"})
	require.NoError(t, err)
	f.genre, err = svc.Genres.Create(ctx, models.AdminGenre{Name: "Crime"})
	require.NoError(t, err)
	f.movie, err = svc.Movies.Create(ctx, models.AdminMovie{
		Title:       "Heat",
		Description: "A group of professional bank robbers",
		Length:      170,
		ReleaseDate: "1995-12-15",
		LanguageID:  f.language.ID,
	})
	require.NoError(t, err)
	f.person, err = svc.People.Create(ctx, models.AdminPerson{
		BirthDate:   "1940-04-25",
		BirthPlace:  "New York",
		Description: "Actor",
		FirstName:   "Al",
		LastName:    "Pacino",
	})
	require.NoError(t, err)
	f.company, err = svc.Companies.Create(ctx, models.AdminCompany{Name: "Warner Bros.", Type: database.CompanyTypeDistributor})
	require.NoError(t, err)

	return f
}

func strPtr(s string) *string { return &s }

func TestCreateMovieReturnsInput(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	language, err := svc.Languages.Create(ctx, models.AdminLanguage{Name: "French"})
	require.NoError(t, err)

	in := models.AdminMovie{
		Title:       "Amélie",
		Description: "A shy waitress",
		Length:      122,
		ReleaseDate: "25-04-2001",
		LanguageID:  language.ID,
	}

	created, err := svc.Movies.Create(ctx, in)
	require.NoError(t, err)

	assert.Positive(t, created.ID)
	assert.Equal(t, in.Title, created.Title)
	assert.Equal(t, in.Description, created.Description)
	assert.Equal(t, in.Length, created.Length)
	assert.Equal(t, "2001-04-25", created.ReleaseDate.String())
	assert.Equal(t, in.LanguageID, created.LanguageID)
	require.NotNil(t, created.Language)
	assert.Equal(t, "French", created.Language.Name)
	assert.Empty(t, created.Genres)

	read, err := svc.Movies.Read(ctx, created.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(created, read); diff != "" {
		t.Errorf("round trip mismatch (-created +read):\n%s", diff)
	}
}

func TestCreateInvalidMovieStoresNothing(t *testing.T) {
	svc, gw := setupServices(t)
	ctx := context.Background()
	language, err := svc.Languages.Create(ctx, models.AdminLanguage{Name: "English"})
	require.NoError(t, err)

	valid := models.AdminMovie{Title: "Heat", Description: "Crime", Length: 170, ReleaseDate: "1995-12-15", LanguageID: language.ID}

	tests := []struct {
		name   string
		mutate func(*models.AdminMovie)
		field  string
	}{
		{"empty title", func(m *models.AdminMovie) { m.Title = "" }, "Title"},
		{"empty description", func(m *models.AdminMovie) { m.Description = "" }, "Description"},
		{"zero length", func(m *models.AdminMovie) { m.Length = 0 }, "Length"},
		{"zero date", func(m *models.AdminMovie) { m.ReleaseDate = "0001-01-01" }, "ReleaseDate"},
		{"no language", func(m *models.AdminMovie) { m.LanguageID = 0 }, "LanguageID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			_, err := svc.Movies.Create(ctx, in)
			errs, ok := validation.AsErrors(err)
			require.True(t, ok, "expected validation errors, got %v", err)
			assert.Contains(t, errs, tt.field)

			count, err := gw.Movies().Count(ctx, "1 = 1")
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	}
}

func TestCreateMovieWithUnknownLanguage(t *testing.T) {
	svc, _ := setupServices(t)

	_, err := svc.Movies.Create(context.Background(), models.AdminMovie{
		Title: "Heat", Description: "Crime", Length: 170, ReleaseDate: "1995-12-15", LanguageID: 42,
	})

	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, validation.Errors{"LanguageID": {validation.MsgDoesNotExist}}, refErr.Fields)
}

func TestReadMissing(t *testing.T) {
	svc, _ := setupServices(t)

	_, err := svc.Genres.Read(context.Background(), 99)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, catalogerrors.ErrorTypeNotFound, catalogerrors.GetType(err))
}

func TestReadAll(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	genres, err := svc.Genres.ReadAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, genres)
	assert.Empty(t, genres)

	for _, name := range []string{"Comedy", "Drama", "Horror"} {
		_, err := svc.Genres.Create(ctx, models.AdminGenre{Name: name})
		require.NoError(t, err)
	}

	genres, err = svc.Genres.ReadAll(ctx)
	require.NoError(t, err)
	want := []models.GenreModel{{ID: 1, Name: "Comedy"}, {ID: 2, Name: "Drama"}, {ID: 3, Name: "Horror"}}
	if diff := cmp.Diff(want, genres); diff != "" {
		t.Errorf("genres mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	f := seed(t, svc)

	t.Run("changes row", func(t *testing.T) {
		out, changed, err := svc.Genres.Update(ctx, f.genre.ID, models.AdminGenre{ID: f.genre.ID, Name: "Thriller"})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "Thriller", out.Name)
	})

	t.Run("unchanged input", func(t *testing.T) {
		out, changed, err := svc.Genres.Update(ctx, f.genre.ID, models.AdminGenre{Name: "Thriller"})
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, models.GenreModel{ID: f.genre.ID, Name: "Thriller"}, out)
	})

	t.Run("validation before existence", func(t *testing.T) {
		_, _, err := svc.Languages.Update(ctx, 999, models.AdminLanguage{Name: ""})
		errs, ok := validation.AsErrors(err)
		require.True(t, ok)
		assert.Equal(t, validation.Errors{"Name": {validation.MsgRequiredText}}, errs)
	})

	t.Run("missing row", func(t *testing.T) {
		_, _, err := svc.Languages.Update(ctx, 999, models.AdminLanguage{Name: "German"})
		assert.True(t, IsNotFound(err))
	})

	t.Run("missing reference", func(t *testing.T) {
		_, _, err := svc.Movies.Update(ctx, f.movie.ID, models.AdminMovie{
			Title: "Heat", Description: "Crime", Length: 170, ReleaseDate: "1995-12-15", LanguageID: 404,
		})
		var refErr *ReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Contains(t, refErr.Fields, "LanguageID")
	})

	t.Run("movie date in another layout is not a change", func(t *testing.T) {
		_, changed, err := svc.Movies.Update(ctx, f.movie.ID, models.AdminMovie{
			Title:       f.movie.Title,
			Description: f.movie.Description,
			Length:      f.movie.Length,
			ReleaseDate: "15-12-1995",
			LanguageID:  f.movie.LanguageID,
		})
		require.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestDelete(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	f := seed(t, svc)

	deleted, err := svc.Genres.Delete(ctx, 12345)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = svc.Genres.Delete(ctx, f.genre.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svc.Genres.Read(ctx, f.genre.ID)
	assert.True(t, IsNotFound(err))

	deleted, err = svc.Genres.Delete(ctx, f.genre.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteMovieRemovesDependents(t *testing.T) {
	svc, gw := setupServices(t)
	ctx := context.Background()
	f := seed(t, svc)

	_, err := svc.Movies.ConnectGenre(ctx, f.movie.ID, f.genre.ID)
	require.NoError(t, err)
	_, err = svc.Companies.ConnectMovie(ctx, f.company.ID, f.movie.ID)
	require.NoError(t, err)
	_, err = svc.CrewMembers.Create(ctx, models.AdminCrewMember{
		CharacterName: strPtr("Vincent Hanna"), Role: database.CrewRoleActor, MovieID: f.movie.ID, PersonID: f.person.ID,
	})
	require.NoError(t, err)

	deleted, err := svc.Movies.Delete(ctx, f.movie.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	for name, count := range map[string]func() (int64, error){
		"genre links":   func() (int64, error) { return gw.GenreMovies().Count(ctx, "movie_id = ?", f.movie.ID) },
		"company links": func() (int64, error) { return gw.CompanyMovies().Count(ctx, "movie_id = ?", f.movie.ID) },
		"crew":          func() (int64, error) { return gw.CrewMembers().Count(ctx, "movie_id = ?", f.movie.ID) },
	} {
		n, err := count()
		require.NoError(t, err, name)
		assert.Zero(t, n, name)
	}

	genre, err := svc.Genres.Read(ctx, f.genre.ID)
	require.NoError(t, err)
	assert.Equal(t, f.genre, genre)
}

func TestDeleteLanguageInUse(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	f := seed(t, svc)

	deleted, err := svc.Languages.Delete(ctx, f.language.ID)
	assert.False(t, deleted)
	assert.ErrorIs(t, err, catalogerrors.ErrInUse)
	assert.Equal(t, catalogerrors.ErrorTypeConflict, catalogerrors.GetType(err))

	_, err = svc.Languages.Read(ctx, f.language.ID)
	assert.NoError(t, err)
}

func TestConnectGenre(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	f := seed(t, svc)

	result, err := svc.Movies.ConnectGenre(ctx, f.movie.ID, f.genre.ID)
	require.NoError(t, err)
	assert.Equal(t, Linked, result.Status)
	assert.Equal(t, []models.GenreModel{f.genre}, result.Model.Genres)

	result, err = svc.Movies.ConnectGenre(ctx, f.movie.ID, f.genre.ID)
	require.NoError(t, err)
	assert.Equal(t, AlreadyLinked, result.Status)
	assert.Zero(t, result.Model.ID)

	genreMovies, err := svc.Genres.Movies(ctx, f.genre.ID)
	require.NoError(t, err)
	require.Len(t, genreMovies, 1)
	assert.Equal(t, f.movie.ID, genreMovies[0].ID)
}

func TestConnectMissingSides(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	f := seed(t, svc)

	tests := []struct {
		name    string
		movieID uint
		genreID uint
		want    LinkStatus
	}{
		{"genre missing", f.movie.ID, 404, ParentNotFound},
		{"movie missing", 404, f.genre.ID, MovieNotFound},
		{"both missing", 404, 405, BothNotFound},
		{"both zero", 0, 0, BothNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			connected, err := svc.Movies.ConnectGenre(ctx, tt.movieID, tt.genreID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, connected.Status)

			disconnected, err := svc.Movies.DisconnectGenre(ctx, tt.movieID, tt.genreID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, disconnected.Status)
		})
	}
}

func TestDisconnectIsIdempotent(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	f := seed(t, svc)

	never, err := svc.Movies.DisconnectGenre(ctx, f.movie.ID, f.genre.ID)
	require.NoError(t, err)

	_, err = svc.Movies.ConnectGenre(ctx, f.movie.ID, f.genre.ID)
	require.NoError(t, err)

	removed, err := svc.Movies.DisconnectGenre(ctx, f.movie.ID, f.genre.ID)
	require.NoError(t, err)
	assert.Equal(t, Unlinked, removed.Status)
	assert.Empty(t, removed.Model.Genres)

	again, err := svc.Movies.DisconnectGenre(ctx, f.movie.ID, f.genre.ID)
	require.NoError(t, err)

	assert.Equal(t, NotLinked, never.Status)
	assert.Equal(t, never, again)
}

func TestCompanyMovieLinks(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	f := seed(t, svc)

	result, err := svc.Companies.ConnectMovie(ctx, f.company.ID, f.movie.ID)
	require.NoError(t, err)
	require.Equal(t, Linked, result.Status)
	require.Len(t, result.Model.Movies, 1)
	assert.Equal(t, "Heat", result.Model.Movies[0].Title)

	movie, err := svc.Movies.Read(ctx, f.movie.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.CompanySummary{{ID: f.company.ID, Name: "Warner Bros.", Type: database.CompanyTypeDistributor}}, movie.Companies)

	result, err = svc.Companies.ConnectMovie(ctx, f.company.ID, f.movie.ID)
	require.NoError(t, err)
	assert.Equal(t, AlreadyLinked, result.Status)

	result, err = svc.Companies.DisconnectMovie(ctx, f.company.ID, f.movie.ID)
	require.NoError(t, err)
	assert.Equal(t, Unlinked, result.Status)
	assert.Empty(t, result.Model.Movies)

	result, err = svc.Companies.DisconnectMovie(ctx, 77, f.movie.ID)
	require.NoError(t, err)
	assert.Equal(t, ParentNotFound, result.Status)
}

func TestCrewMembers(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	f := seed(t, svc)

	actor, err := svc.CrewMembers.Create(ctx, models.AdminCrewMember{
		CharacterName: strPtr("Vincent Hanna"), Role: database.CrewRoleActor, MovieID: f.movie.ID, PersonID: f.person.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Vincent Hanna", *actor.CharacterName)

	_, err = svc.CrewMembers.Create(ctx, models.AdminCrewMember{
		CharacterName: strPtr("Vincent Hanna"), Role: database.CrewRoleDirector, MovieID: f.movie.ID, PersonID: f.person.ID,
	})
	errs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{models.MsgCharacterNameNotAllowed}, errs["CharacterName"])

	_, err = svc.CrewMembers.Create(ctx, models.AdminCrewMember{Role: database.CrewRoleWriter, MovieID: 900, PersonID: 901})
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, validation.Errors{
		"MovieID":  {validation.MsgDoesNotExist},
		"PersonID": {validation.MsgDoesNotExist},
	}, refErr.Fields)

	roles, err := svc.People.Roles(ctx, f.person.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.CrewMemberModel{actor}, roles)

	person, err := svc.People.Read(ctx, f.person.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.CrewMemberModel{actor}, person.Roles)

	movie, err := svc.Movies.Read(ctx, f.movie.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.CrewMemberModel{actor}, movie.CrewMembers)

	deleted, err := svc.People.Delete(ctx, f.person.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = svc.CrewMembers.Read(ctx, actor.ID)
	assert.True(t, IsNotFound(err))
}

func TestRelatedListsForMissingParents(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	_, err := svc.Genres.Movies(ctx, 1)
	assert.True(t, IsNotFound(err))
	_, err = svc.Languages.Movies(ctx, 1)
	assert.True(t, IsNotFound(err))
	_, err = svc.People.Roles(ctx, 1)
	assert.True(t, IsNotFound(err))
}

func TestLanguageMovies(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	f := seed(t, svc)

	movies, err := svc.Languages.Movies(ctx, f.language.ID)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	if diff := cmp.Diff(f.movie, movies[0]); diff != "" {
		t.Errorf("movie mismatch (-want +got):\n%s", diff)
	}
}

func TestLinkStatus(t *testing.T) {
	assert.True(t, Linked.OK())
	assert.True(t, Unlinked.OK())
	for _, s := range []LinkStatus{ParentNotFound, MovieNotFound, BothNotFound, AlreadyLinked, NotLinked} {
		assert.False(t, s.OK(), s.String())
	}
	assert.Equal(t, "both_not_found", BothNotFound.String())
}
