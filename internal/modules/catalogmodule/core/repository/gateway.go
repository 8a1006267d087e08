package repository

import (
	"context"
	"time"

	"github.com/mantonx/filmadmin/internal/database"
	"github.com/mantonx/filmadmin/internal/modules/databasemodule"
	"gorm.io/gorm"
)

// Gateway exposes one collection per catalog table and the transaction
// boundary that commits changes made through them.
type Gateway struct {
	db   *gorm.DB
	tm   *databasemodule.TransactionManager
	inTx bool
}

// NewGateway creates a gateway over db. Every transaction it opens is
// bounded by txTimeout when it is positive.
func NewGateway(db *gorm.DB, txTimeout time.Duration) *Gateway {
	return &Gateway{
		db: db,
		tm: databasemodule.NewTransactionManager(db, databasemodule.TransactionOptions{Timeout: txTimeout}),
	}
}

// Transaction runs fn against a gateway bound to a single transaction. The
// changes are committed when fn returns nil and rolled back otherwise. A
// gateway that is already transactional runs fn in place.
func (g *Gateway) Transaction(ctx context.Context, fn func(tx *Gateway) error) error {
	if g.inTx {
		return fn(g)
	}
	return g.tm.WithTransaction(ctx, func(tx *gorm.DB) error {
		return fn(&Gateway{db: tx, tm: g.tm, inTx: true})
	})
}

// TransactionStats reports commit and rollback counts
func (g *Gateway) TransactionStats() map[string]interface{} {
	return g.tm.GetStats()
}

// DB returns the underlying connection bound to ctx, for building subqueries
func (g *Gateway) DB(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx)
}

func (g *Gateway) Movies() *Collection[database.Movie] {
	return newCollection[database.Movie](g.db, "movie", "id")
}

func (g *Gateway) People() *Collection[database.Person] {
	return newCollection[database.Person](g.db, "person", "id")
}

func (g *Gateway) Genres() *Collection[database.Genre] {
	return newCollection[database.Genre](g.db, "genre", "id")
}

func (g *Gateway) Languages() *Collection[database.Language] {
	return newCollection[database.Language](g.db, "language", "id")
}

func (g *Gateway) Companies() *Collection[database.Company] {
	return newCollection[database.Company](g.db, "company", "id")
}

func (g *Gateway) CrewMembers() *Collection[database.CrewMember] {
	return newCollection[database.CrewMember](g.db, "crew member", "id")
}

func (g *Gateway) GenreMovies() *Collection[database.GenreMovie] {
	return newCollection[database.GenreMovie](g.db, "genre movie", "")
}

func (g *Gateway) CompanyMovies() *Collection[database.CompanyMovie] {
	return newCollection[database.CompanyMovie](g.db, "company movie", "")
}
