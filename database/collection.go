package database

import (
	"context"
	"errors"

	"gst-billing/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Query selects rows of a collection. Where is a SQL condition with ?
// placeholders bound from Args.
type Query struct {
	Where  string
	Args   []any
	Order  string
	Limit  int
	Offset int
}

// Collection is a typed table. T must be a gorm model with a uint ID.
type Collection[T any] struct {
	store   *Store
	name    string
	preload []string
}

func newCollection[T any](s *Store, name string, preload ...string) *Collection[T] {
	return &Collection[T]{store: s, name: name, preload: preload}
}

func (c *Collection[T]) session(ctx context.Context) *gorm.DB {
	q := c.store.db.WithContext(ctx)
	for _, assoc := range c.preload {
		q = q.Preload(assoc, func(db *gorm.DB) *gorm.DB { return db.Order("id") })
	}
	return q
}

func (c *Collection[T]) Get(ctx context.Context, id uint) (*T, error) {
	return c.first(c.session(ctx), id)
}

// GetForUpdate reads a row and locks it until the surrounding transaction
// ends. On sqlite the whole database is already write-locked by the
// transaction, so no row lock is issued.
func (c *Collection[T]) GetForUpdate(ctx context.Context, id uint) (*T, error) {
	q := c.session(ctx)
	if supportsRowLocks(c.store.db) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return c.first(q, id)
}

func (c *Collection[T]) first(q *gorm.DB, id uint) (*T, error) {
	var out T
	if err := q.First(&out, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Add inserts rec and fills in its generated fields.
func (c *Collection[T]) Add(ctx context.Context, rec *T) error {
	if err := c.store.db.WithContext(ctx).Create(rec).Error; err != nil {
		return err
	}
	c.store.touched(c.name)
	return nil
}

// AddBatch inserts recs in groups of size rows.
func (c *Collection[T]) AddBatch(ctx context.Context, recs []T, size int) error {
	if len(recs) == 0 {
		return nil
	}
	if err := c.store.db.WithContext(ctx).CreateInBatches(recs, size).Error; err != nil {
		return err
	}
	c.store.touched(c.name)
	return nil
}

// Update writes the given columns of one row. Values may be gorm
// expressions, e.g. gorm.Expr("stock - ?", n).
func (c *Collection[T]) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := c.store.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	c.store.touched(c.name)
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id uint) error {
	res := c.store.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	c.store.touched(c.name)
	return nil
}

func (c *Collection[T]) Query(ctx context.Context, q Query) ([]T, error) {
	tx := c.session(ctx)
	if q.Where != "" {
		tx = tx.Where(q.Where, q.Args...)
	}
	if q.Order != "" {
		tx = tx.Order(q.Order)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	out := make([]T, 0)
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Collection[T]) Count(ctx context.Context, q Query) (int64, error) {
	tx := c.store.db.WithContext(ctx).Model(new(T))
	if q.Where != "" {
		tx = tx.Where(q.Where, q.Args...)
	}
	var n int64
	err := tx.Count(&n).Error
	return n, err
}

// Watch emits the result of q now and again after every committed write to
// this collection, until ctx is done. The channel is closed on exit.
// Call it on the root store, not inside a transaction.
func (c *Collection[T]) Watch(ctx context.Context, q Query) (<-chan []T, error) {
	signal, cancel := c.store.hub.subscribe(c.name)
	first, err := c.Query(ctx, q)
	if err != nil {
		cancel()
		return nil, err
	}
	out := make(chan []T, 1)
	out <- first

	go func() {
		defer close(out)
		defer cancel()
		log := logger.WithComponent("database")
		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				rows, err := c.Query(ctx, q)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Warn().Err(err).Str("collection", c.name).Msg("watch query failed")
					continue
				}
				select {
				case out <- rows:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
