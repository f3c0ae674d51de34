package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ketabino/bookshop/internal/domain/book"
)

const (
	listCategoriesSQL = `SELECT id, name, icon, slug FROM categories ORDER BY name`

	upsertCategorySQL = `INSERT INTO categories (id, name, icon, slug)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, icon = EXCLUDED.icon, slug = EXCLUDED.slug`
)

var _ book.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository implements book.CategoryRepository backed by PostgreSQL.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository returns a CategoryRepository that uses the given pool.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// List returns all browse categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]book.Category, error) {
	rows, err := r.pool.Query(ctx, listCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (book.Category, error) {
		var c book.Category
		err := row.Scan(&c.ID, &c.Name, &c.Icon, &c.Slug)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

// Upsert inserts or replaces a category.
func (r *CategoryRepository) Upsert(ctx context.Context, c *book.Category) error {
	_, err := r.pool.Exec(ctx, upsertCategorySQL, c.ID, c.Name, c.Icon, c.Slug)
	if err != nil {
		return fmt.Errorf("upserting category %q: %w", c.ID, err)
	}
	return nil
}
