// Package repository provides the data access layer for the catalog
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrRecordNotFound is returned by Get when no row has the given id
var ErrRecordNotFound = gorm.ErrRecordNotFound

// Collection is the typed table for one entity or join model
type Collection[T any] struct {
	db       *gorm.DB
	name     string
	orderBy  string
	preloads []string
}

func newCollection[T any](db *gorm.DB, name, orderBy string) *Collection[T] {
	return &Collection[T]{db: db, name: name, orderBy: orderBy}
}

// Preload returns a copy of the collection that loads the named associations
// on every read. Associations are loaded in id order.
func (c *Collection[T]) Preload(associations ...string) *Collection[T] {
	cp := *c
	cp.preloads = append(append([]string(nil), c.preloads...), associations...)
	return &cp
}

func (c *Collection[T]) query(ctx context.Context) *gorm.DB {
	q := c.db.WithContext(ctx)
	for _, association := range c.preloads {
		q = q.Preload(association, func(db *gorm.DB) *gorm.DB {
			return db.Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}})
		})
	}
	if c.orderBy != "" {
		q = q.Order(c.orderBy)
	}
	return q
}

// Add inserts entity and fills in its generated key
func (c *Collection[T]) Add(ctx context.Context, entity *T) error {
	if err := c.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to insert %s: %w", c.name, err)
	}
	return nil
}

// Save writes every column of entity, leaving associations untouched
func (c *Collection[T]) Save(ctx context.Context, entity *T) (int64, error) {
	result := c.db.WithContext(ctx).Omit(clause.Associations).Save(entity)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update %s: %w", c.name, result.Error)
	}
	return result.RowsAffected, nil
}

// Remove deletes entity by primary key
func (c *Collection[T]) Remove(ctx context.Context, entity *T) (int64, error) {
	result := c.db.WithContext(ctx).Delete(entity)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", c.name, result.Error)
	}
	return result.RowsAffected, nil
}

// RemoveWhere deletes every row matching the condition
func (c *Collection[T]) RemoveWhere(ctx context.Context, query interface{}, args ...interface{}) (int64, error) {
	result := c.db.WithContext(ctx).Where(query, args...).Delete(new(T))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete %s rows: %w", c.name, result.Error)
	}
	return result.RowsAffected, nil
}

// Get retrieves the row with the given id, or ErrRecordNotFound
func (c *Collection[T]) Get(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := c.query(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get %s %d: %w", c.name, id, err)
	}
	return &entity, nil
}

// Exists reports whether a row with the given id exists
func (c *Collection[T]) Exists(ctx context.Context, id uint) (bool, error) {
	return c.ExistsWhere(ctx, "id = ?", id)
}

// ExistsWhere reports whether any row matches the condition
func (c *Collection[T]) ExistsWhere(ctx context.Context, query interface{}, args ...interface{}) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(new(T)).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", c.name, err)
	}
	return count > 0, nil
}

// Count returns the number of rows matching the condition
func (c *Collection[T]) Count(ctx context.Context, query interface{}, args ...interface{}) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(new(T)).Where(query, args...).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s rows: %w", c.name, err)
	}
	return count, nil
}

// List retrieves every row
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	var entities []T
	if err := c.query(ctx).Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s rows: %w", c.name, err)
	}
	return entities, nil
}

// Where retrieves every row matching the condition
func (c *Collection[T]) Where(ctx context.Context, query interface{}, args ...interface{}) ([]T, error) {
	var entities []T
	if err := c.query(ctx).Where(query, args...).Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to query %s rows: %w", c.name, err)
	}
	return entities, nil
}
