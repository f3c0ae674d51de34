//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestListBooks(t *testing.T) {
	resp := doGet(t, "/api/books", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	books := decodeJSON[[]bookResponse](t, resp)
	if len(books) != 5 {
		t.Fatalf("expected 5 books, got %d", len(books))
	}
}

func TestGetBookBySlug(t *testing.T) {
	resp := doGet(t, "/api/books/the-little-prince", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	b := decodeJSON[bookResponse](t, resp)
	if b.Title != "The Little Prince" {
		t.Errorf("title: got %q, want %q", b.Title, "The Little Prince")
	}
	if b.Slug != "the-little-prince" {
		t.Errorf("slug: got %q, want %q", b.Slug, "the-little-prince")
	}
	if b.Price != "85000" {
		t.Errorf("price: got %q, want 85000", b.Price)
	}
}

func TestGetBook_NotFound(t *testing.T) {
	resp := doGet(t, "/api/books/no-such-book", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	body := decodeJSON[errorResponse](t, resp)
	if body.Error == "" {
		t.Error("error message is empty")
	}
}

func TestListCategories(t *testing.T) {
	resp := doGet(t, "/api/categories", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	categories := decodeJSON[[]map[string]any](t, resp)
	if len(categories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(categories))
	}
}
