package book

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested book does not exist.
var ErrNotFound = errors.New("book not found")

// Book represents a catalog item. Price is expressed in whole currency
// units; DiscountPercent is the per-item catalog discount (0-100) applied
// to every checkout line containing this book.
type Book struct {
	ID              string
	Title           string
	Author          string
	Translator      string
	Publisher       string
	ISBN            string
	PublishDate     string
	Price           decimal.Decimal
	DiscountPercent int
	Stock           int
	Category        string
	Description     string
	Image           string
	Pages           int
	Language        string
	Rating          float64
	Slug            string
	Featured        bool
}

// Category groups books for browsing.
type Category struct {
	ID   string
	Name string
	Icon string
	Slug string
}

// Repository defines catalog operations. Writes are admin-only; the
// storefront reads by listing or by URL slug.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id string) (*Book, error)
	GetBySlug(ctx context.Context, slug string) (*Book, error)
	Upsert(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines read/write access to browse categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	Upsert(ctx context.Context, c *Category) error
}
