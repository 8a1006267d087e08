package service

import (
	"context"

	"github.com/mantonx/filmadmin/internal/database"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/core/repository"
	catalogerrors "github.com/mantonx/filmadmin/internal/modules/catalogmodule/errors"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/models"
	"github.com/mantonx/filmadmin/internal/validation"
)

// CompanyService manages companies and their movie links
type CompanyService struct {
	*CRUD[database.Company, models.AdminCompany, models.CompanyModel]
	movies linker[database.CompanyMovie]
}

// NewCompanyService creates the company service
func NewCompanyService(gw *repository.Gateway, v *validation.Validator) *CompanyService {
	crud := NewCRUD(gw, v, Definition[database.Company, models.AdminCompany, models.CompanyModel]{
		Name:       "company",
		Collection: (*repository.Gateway).Companies,
		Preloads:   []string{"Movies"},
		Apply:      models.AdminCompany.Apply,
		Differs:    models.AdminCompany.Differs,
		Project:    models.NewCompanyModel,
		Key:        func(c *database.Company) uint { return c.ID },
		BeforeDelete: func(ctx context.Context, tx *repository.Gateway, c *database.Company) error {
			_, err := tx.CompanyMovies().RemoveWhere(ctx, "company_id = ?", c.ID)
			return err
		},
	})

	return &CompanyService{
		CRUD: crud,
		movies: linker[database.CompanyMovie]{
			parentExists: exists((*repository.Gateway).Companies),
			movieExists:  exists((*repository.Gateway).Movies),
			joins:        (*repository.Gateway).CompanyMovies,
			row: func(companyID, movieID uint) *database.CompanyMovie {
				return &database.CompanyMovie{CompanyID: companyID, MovieID: movieID}
			},
			match: "company_id = ? AND movie_id = ?",
		},
	}
}

// ConnectMovie links a movie to a company. The result carries the company
// projection when the link was written.
func (s *CompanyService) ConnectMovie(ctx context.Context, companyID, movieID uint) (LinkResult[models.CompanyModel], error) {
	status, err := s.movies.connect(ctx, s.gw, companyID, movieID)
	if err != nil {
		return LinkResult[models.CompanyModel]{}, catalogerrors.Wrap(err, "company.connect_movie")
	}
	if status.OK() {
		s.log.Info("movie connected", "company_id", companyID, "movie_id", movieID)
	}
	return linkResult(ctx, status, s.Read, companyID)
}

// DisconnectMovie removes the link between a company and a movie
func (s *CompanyService) DisconnectMovie(ctx context.Context, companyID, movieID uint) (LinkResult[models.CompanyModel], error) {
	status, err := s.movies.disconnect(ctx, s.gw, companyID, movieID)
	if err != nil {
		return LinkResult[models.CompanyModel]{}, catalogerrors.Wrap(err, "company.disconnect_movie")
	}
	if status.OK() {
		s.log.Info("movie disconnected", "company_id", companyID, "movie_id", movieID)
	}
	return linkResult(ctx, status, s.Read, companyID)
}
