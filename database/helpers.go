package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

// Transaction runs fn inside a database transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
func (d *DB) Transaction(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return d.RunInTx(ctx, &sql.TxOptions{}, fn)
}

// ListMeta describes the pagination envelope returned alongside list results
type ListMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// Paginate executes the query as a paginated list. Page and perPage are
// clamped to sane values before applying limit and offset.
func (q *QueryBuilder[T]) Paginate(ctx context.Context, page, perPage, maxPerPage int) ([]T, ListMeta, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}

	total, err := q.Count(ctx)
	if err != nil {
		return nil, ListMeta{}, fmt.Errorf("failed to count paginated query: %w", err)
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	if page > lastPage {
		page = lastPage
	}

	data, err := q.Limit(perPage).Offset((page - 1) * perPage).All(ctx)
	if err != nil {
		return nil, ListMeta{}, err
	}

	return data, ListMeta{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}, nil
}

// FindByID fetches a single record by primary key. Returns nil, nil when
// no record exists.
func FindByID[T any](ctx context.Context, db *DB, id int64) (*T, error) {
	return Query[T](db).WhereOp("id", "=", id).First(ctx)
}

// DeleteByID removes a single record by primary key and reports whether a
// row was actually deleted.
func DeleteByID[T any](ctx context.Context, db *DB, id int64) (bool, error) {
	affected, err := Query[T](db).WhereOp("id", "=", id).Delete(ctx)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
