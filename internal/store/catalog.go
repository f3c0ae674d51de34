package store

import (
	"context"

	"github.com/ketabino/bookshop/internal/domain/book"
)

// ListBooks returns the catalog from memory.
func (s *Store) ListBooks(ctx context.Context) ([]book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]book.Book(nil), s.books...), nil
}

// GetBookByID returns one book from memory.
func (s *Store) GetBookByID(ctx context.Context, id string) (*book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.books {
		if s.books[i].ID == id {
			b := s.books[i]
			return &b, nil
		}
	}
	return nil, book.ErrNotFound
}

// GetBookBySlug returns one book from memory by URL slug.
func (s *Store) GetBookBySlug(ctx context.Context, slug string) (*book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.books {
		if s.books[i].Slug == slug {
			b := s.books[i]
			return &b, nil
		}
	}
	return nil, book.ErrNotFound
}

// UpsertBook adds or replaces a catalog record, snapshots locally, and
// queues the remote write.
func (s *Store) UpsertBook(ctx context.Context, b *book.Book) error {
	s.mu.Lock()
	replaced := false
	next := make([]book.Book, len(s.books))
	copy(next, s.books)
	for i := range next {
		if next[i].ID == b.ID {
			next[i] = *b
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, *b)
	}
	s.books = next
	err := s.snapshot(keyBooks, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	record := *b
	s.enqueueSync(keyBooks, func(ctx context.Context) error {
		return s.remote.Books.Upsert(ctx, &record)
	})
	s.changed(keyBooks)
	return nil
}

// DeleteBook removes a book from the catalog.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	s.mu.Lock()
	next := make([]book.Book, 0, len(s.books))
	for _, b := range s.books {
		if b.ID != id {
			next = append(next, b)
		}
	}
	s.books = next
	err := s.snapshot(keyBooks, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.enqueueSync(keyBooks, func(ctx context.Context) error {
		return s.remote.Books.Delete(ctx, id)
	})
	s.changed(keyBooks)
	return nil
}

// ListCategories returns the browse categories from memory.
func (s *Store) ListCategories(ctx context.Context) ([]book.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]book.Category(nil), s.categories...), nil
}

// UpsertCategory adds or replaces a browse category.
func (s *Store) UpsertCategory(ctx context.Context, c *book.Category) error {
	s.mu.Lock()
	replaced := false
	next := make([]book.Category, len(s.categories))
	copy(next, s.categories)
	for i := range next {
		if next[i].ID == c.ID {
			next[i] = *c
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, *c)
	}
	s.categories = next
	err := s.snapshot(keyCategories, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	record := *c
	s.enqueueSync(keyCategories, func(ctx context.Context) error {
		return s.remote.Categories.Upsert(ctx, &record)
	})
	s.changed(keyCategories)
	return nil
}

// bookView adapts the store to book.Repository.
type bookView struct{ s *Store }

func (v bookView) List(ctx context.Context) ([]book.Book, error) { return v.s.ListBooks(ctx) }
func (v bookView) GetByID(ctx context.Context, id string) (*book.Book, error) {
	return v.s.GetBookByID(ctx, id)
}
func (v bookView) GetBySlug(ctx context.Context, slug string) (*book.Book, error) {
	return v.s.GetBookBySlug(ctx, slug)
}
func (v bookView) Upsert(ctx context.Context, b *book.Book) error { return v.s.UpsertBook(ctx, b) }
func (v bookView) Delete(ctx context.Context, id string) error    { return v.s.DeleteBook(ctx, id) }

// BookCatalog exposes the store as a book.Repository.
func (s *Store) BookCatalog() book.Repository { return bookView{s} }

// categoryView adapts the store to book.CategoryRepository.
type categoryView struct{ s *Store }

func (v categoryView) List(ctx context.Context) ([]book.Category, error) {
	return v.s.ListCategories(ctx)
}
func (v categoryView) Upsert(ctx context.Context, c *book.Category) error {
	return v.s.UpsertCategory(ctx, c)
}

// CategoryCatalog exposes the store as a book.CategoryRepository.
func (s *Store) CategoryCatalog() book.CategoryRepository { return categoryView{s} }
