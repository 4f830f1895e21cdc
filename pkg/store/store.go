// Package store provides the generic persistence operations shared by every
// entity: retrieve, paginated list, count, create, sparse update, and remove.
package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// Record is satisfied by a pointer to any model the store manages.
type Record[T any] interface {
	*T
	Resource() string
	Stamp(now time.Time)
}

// QueryFunc customizes a select query, e.g. to add filters or relations.
type QueryFunc func(q *bun.SelectQuery) *bun.SelectQuery

type ListOptions struct {
	Limit  *int
	Offset *int
}

// Store runs queries against either the database or an open transaction.
type Store[T any, P Record[T]] struct {
	idb bun.IDB
}

func New[T any, P Record[T]](idb bun.IDB) *Store[T, P] {
	return &Store[T, P]{idb}
}

// WithTx returns a copy of the store whose queries run inside tx.
func (s *Store[T, P]) WithTx(tx bun.Tx) *Store[T, P] {
	return &Store[T, P]{tx}
}

func resource[T any, P Record[T]]() string {
	return P(new(T)).Resource()
}

// Retrieve returns the entity with the given primary key, or a NotFound error.
func (s *Store[T, P]) Retrieve(ctx context.Context, id any, apply ...QueryFunc) (P, error) {
	entity := P(new(T))
	q := s.idb.NewSelect().Model(entity).Where("?TableAlias.id = ?", id)
	for _, fn := range apply {
		q = fn(q)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, mapError(err, entity.Resource())
	}
	return entity, nil
}

// List returns one page of entities ordered by id along with the total number
// of entities that match. Pages never hold more than MaxLimit entities.
func (s *Store[T, P]) List(ctx context.Context, opts ListOptions, apply ...QueryFunc) ([]P, int, error) {
	entities := []P{}
	q := s.idb.NewSelect().Model(&entities).OrderExpr("?TableAlias.id ASC")
	for _, fn := range apply {
		q = fn(q)
	}

	limit := DefaultLimit
	if opts.Limit != nil {
		limit = min(*opts.Limit, MaxLimit)
	}
	q = q.Limit(limit)
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, mapError(err, resource[T, P]())
	}
	return entities, total, nil
}

// Count returns the number of stored entities.
func (s *Store[T, P]) Count(ctx context.Context, apply ...QueryFunc) (int, error) {
	q := s.idb.NewSelect().Model(P(nil))
	for _, fn := range apply {
		q = fn(q)
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return count, nil
}

// Exists reports whether any entity matches the query.
func (s *Store[T, P]) Exists(ctx context.Context, apply ...QueryFunc) (bool, error) {
	q := s.idb.NewSelect().Model(P(nil))
	for _, fn := range apply {
		q = fn(q)
	}
	exists, err := q.Exists(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}
	return exists, nil
}

// Create inserts entity. A uniqueness violation is reported as a Conflict.
func (s *Store[T, P]) Create(ctx context.Context, entity P) error {
	entity.Stamp(time.Now())
	_, err := s.idb.NewInsert().Model(entity).Returning("*").Exec(ctx)
	return mapError(err, entity.Resource())
}

// Update writes only the given columns of entity, plus updated_at. Calling it
// without columns is a no-op.
func (s *Store[T, P]) Update(ctx context.Context, entity P, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	entity.Stamp(time.Now())
	columns = append(columns, "updated_at")

	res, err := s.idb.NewUpdate().Model(entity).Column(columns...).WherePK().Exec(ctx)
	if err != nil {
		return mapError(err, entity.Resource())
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errcodes.NotFound(entity.Resource())
	}
	return nil
}

// Remove deletes the entity with the given primary key and returns it as it
// was before deletion. A foreign key violation is reported as InUse.
func (s *Store[T, P]) Remove(ctx context.Context, id any) (P, error) {
	entity, err := s.Retrieve(ctx, id)
	if err != nil {
		return nil, err
	}
	_, err = s.idb.NewDelete().Model(entity).WherePK().Exec(ctx)
	if err != nil {
		if isForeignKeyError(err) {
			return nil, errcodes.InUse(entity.Resource())
		}
		return nil, mapError(err, entity.Resource())
	}
	return entity, nil
}

func mapError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errcodes.NotFound(resource)
	}
	if IsUniqueError(err) {
		return errcodes.Conflict(resource)
	}
	if isForeignKeyError(err) {
		return errcodes.NotFound("Referenced resource")
	}
	return errors.WithStack(err)
}

// IsUniqueError reports whether err is a SQLite uniqueness violation. Works
// with both mattn/go-sqlite3 and modernc.org/sqlite drivers.
func IsUniqueError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
