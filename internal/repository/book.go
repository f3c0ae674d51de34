package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ketabino/bookshop/internal/domain/book"
)

const (
	bookColumns = `id, title, author, translator, publisher, isbn, publish_date,
		price, discount_percent, stock, category, description, image,
		pages, language, rating, slug, featured`

	listBooksSQL = `SELECT ` + bookColumns + ` FROM books ORDER BY title`

	getBookByIDSQL = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	getBookBySlugSQL = `SELECT ` + bookColumns + ` FROM books WHERE slug = $1`

	upsertBookSQL = `INSERT INTO books (` + bookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, author = EXCLUDED.author,
			translator = EXCLUDED.translator, publisher = EXCLUDED.publisher,
			isbn = EXCLUDED.isbn, publish_date = EXCLUDED.publish_date,
			price = EXCLUDED.price, discount_percent = EXCLUDED.discount_percent,
			stock = EXCLUDED.stock, category = EXCLUDED.category,
			description = EXCLUDED.description, image = EXCLUDED.image,
			pages = EXCLUDED.pages, language = EXCLUDED.language,
			rating = EXCLUDED.rating, slug = EXCLUDED.slug,
			featured = EXCLUDED.featured`

	deleteBookSQL = `DELETE FROM books WHERE id = $1`
)

var _ book.Repository = (*BookRepository)(nil)

// BookRepository implements book.Repository backed by PostgreSQL.
type BookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository returns a BookRepository that uses the given pool.
func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

// List returns the whole catalog ordered by title.
func (r *BookRepository) List(ctx context.Context) ([]book.Book, error) {
	rows, err := r.pool.Query(ctx, listBooksSQL)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}

	books, err := pgx.CollectRows(rows, scanBook)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	return books, nil
}

// GetByID fetches one book by its identifier.
func (r *BookRepository) GetByID(ctx context.Context, id string) (*book.Book, error) {
	return r.getOne(ctx, getBookByIDSQL, id)
}

// GetBySlug fetches one book by its URL slug.
func (r *BookRepository) GetBySlug(ctx context.Context, slug string) (*book.Book, error) {
	return r.getOne(ctx, getBookBySlugSQL, slug)
}

func (r *BookRepository) getOne(ctx context.Context, sql, arg string) (*book.Book, error) {
	rows, err := r.pool.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("finding book %q: %w", arg, err)
	}

	b, err := pgx.CollectExactlyOneRow(rows, scanBook)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrNotFound
		}
		return nil, fmt.Errorf("finding book %q: %w", arg, err)
	}
	return &b, nil
}

// Upsert inserts or fully replaces a catalog record.
func (r *BookRepository) Upsert(ctx context.Context, b *book.Book) error {
	_, err := r.pool.Exec(ctx, upsertBookSQL,
		b.ID, b.Title, b.Author, b.Translator, b.Publisher, b.ISBN, b.PublishDate,
		b.Price, b.DiscountPercent, b.Stock, b.Category, b.Description, b.Image,
		b.Pages, b.Language, b.Rating, b.Slug, b.Featured,
	)
	if err != nil {
		return fmt.Errorf("upserting book %q: %w", b.ID, err)
	}
	return nil
}

// Delete removes a book from the catalog.
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, deleteBookSQL, id)
	if err != nil {
		return fmt.Errorf("deleting book %q: %w", id, err)
	}
	return nil
}

func scanBook(row pgx.CollectableRow) (book.Book, error) {
	var b book.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Translator, &b.Publisher, &b.ISBN, &b.PublishDate,
		&b.Price, &b.DiscountPercent, &b.Stock, &b.Category, &b.Description, &b.Image,
		&b.Pages, &b.Language, &b.Rating, &b.Slug, &b.Featured,
	)
	return b, err
}
