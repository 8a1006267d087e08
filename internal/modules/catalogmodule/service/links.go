package service

import (
	"context"
	"errors"

	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/core/repository"
	"gorm.io/gorm"
)

// LinkStatus is the outcome of connecting or disconnecting a movie and one
// of its many-to-many parents (a genre or a company).
type LinkStatus int

const (
	// Linked means a new join row was written
	Linked LinkStatus = iota
	// Unlinked means an existing join row was removed
	Unlinked
	// ParentNotFound means the genre or company does not exist
	ParentNotFound
	// MovieNotFound means the movie does not exist
	MovieNotFound
	// BothNotFound means neither side exists
	BothNotFound
	// AlreadyLinked means connect found an existing join row
	AlreadyLinked
	// NotLinked means disconnect found no join row
	NotLinked
)

func (s LinkStatus) String() string {
	switch s {
	case Linked:
		return "linked"
	case Unlinked:
		return "unlinked"
	case ParentNotFound:
		return "parent_not_found"
	case MovieNotFound:
		return "movie_not_found"
	case BothNotFound:
		return "both_not_found"
	case AlreadyLinked:
		return "already_linked"
	case NotLinked:
		return "not_linked"
	default:
		return "unknown"
	}
}

// OK reports whether the link operation changed the join table
func (s LinkStatus) OK() bool {
	return s == Linked || s == Unlinked
}

// LinkResult carries the status and, on success, the fresh projection of
// the affected entity.
type LinkResult[O any] struct {
	Status LinkStatus
	Model  O
}

// linker connects movies to one kind of parent through join rows of type J.
type linker[J any] struct {
	parentExists func(context.Context, *repository.Gateway, uint) (bool, error)
	movieExists  func(context.Context, *repository.Gateway, uint) (bool, error)
	joins        func(*repository.Gateway) *repository.Collection[J]
	row          func(parentID, movieID uint) *J
	match        string // WHERE clause selecting one join row by (parent, movie)
}

// resolve checks both sides before deciding, so a pair where both are
// missing always yields BothNotFound.
func (l linker[J]) resolve(ctx context.Context, tx *repository.Gateway, parentID, movieID uint) (LinkStatus, bool, error) {
	parentOK, err := l.parentExists(ctx, tx, parentID)
	if err != nil {
		return 0, false, err
	}
	movieOK, err := l.movieExists(ctx, tx, movieID)
	if err != nil {
		return 0, false, err
	}

	switch {
	case !parentOK && !movieOK:
		return BothNotFound, false, nil
	case !parentOK:
		return ParentNotFound, false, nil
	case !movieOK:
		return MovieNotFound, false, nil
	}
	return 0, true, nil
}

func (l linker[J]) connect(ctx context.Context, gw *repository.Gateway, parentID, movieID uint) (LinkStatus, error) {
	var status LinkStatus

	err := gw.Transaction(ctx, func(tx *repository.Gateway) error {
		s, ok, err := l.resolve(ctx, tx, parentID, movieID)
		if err != nil || !ok {
			status = s
			return err
		}

		linked, err := l.joins(tx).ExistsWhere(ctx, l.match, parentID, movieID)
		if err != nil {
			return err
		}
		if linked {
			status = AlreadyLinked
			return nil
		}

		if err := l.joins(tx).Add(ctx, l.row(parentID, movieID)); err != nil {
			return err
		}
		status = Linked
		return nil
	})

	// A concurrent connect may win the race between the check and the insert.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return AlreadyLinked, nil
	}
	return status, err
}

func (l linker[J]) disconnect(ctx context.Context, gw *repository.Gateway, parentID, movieID uint) (LinkStatus, error) {
	var status LinkStatus

	err := gw.Transaction(ctx, func(tx *repository.Gateway) error {
		s, ok, err := l.resolve(ctx, tx, parentID, movieID)
		if err != nil || !ok {
			status = s
			return err
		}

		n, err := l.joins(tx).RemoveWhere(ctx, l.match, parentID, movieID)
		if err != nil {
			return err
		}
		if n == 0 {
			status = NotLinked
			return nil
		}
		status = Unlinked
		return nil
	})
	return status, err
}

// linkResult reads the projection for a successful link operation.
func linkResult[O any](ctx context.Context, status LinkStatus, read func(context.Context, uint) (O, error), id uint) (LinkResult[O], error) {
	result := LinkResult[O]{Status: status}
	if !status.OK() {
		return result, nil
	}
	model, err := read(ctx, id)
	if err != nil {
		return result, err
	}
	result.Model = model
	return result, nil
}
