package cart

import (
	"github.com/shopspring/decimal"

	"github.com/ketabino/bookshop/internal/domain/book"
)

// Item is a snapshot of a book in the cart together with a quantity.
// The snapshot is taken at add time so that later catalog edits do not
// change what the customer sees priced in their cart.
type Item struct {
	BookID          string          `json:"bookId"`
	Title           string          `json:"title"`
	Image           string          `json:"image"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent int             `json:"discountPercent"`
	Quantity        int             `json:"quantity"`
}

// snapshot builds a cart item from a catalog book with quantity 1.
func snapshot(b *book.Book) Item {
	return Item{
		BookID:          b.ID,
		Title:           b.Title,
		Image:           b.Image,
		Price:           b.Price,
		DiscountPercent: b.DiscountPercent,
		Quantity:        1,
	}
}

// Add returns the cart with one more copy of the given book. An existing
// line has its quantity incremented; otherwise a new line is appended.
func Add(items []Item, b *book.Book) []Item {
	for i, item := range items {
		if item.BookID == b.ID {
			next := make([]Item, len(items))
			copy(next, items)
			next[i].Quantity++
			return next
		}
	}
	return append(append([]Item(nil), items...), snapshot(b))
}

// UpdateQuantity applies a quantity delta to the matching line, flooring
// the result at 1. Lines are removed explicitly via Remove, never by
// decrementing to zero.
func UpdateQuantity(items []Item, bookID string, delta int) []Item {
	next := make([]Item, len(items))
	copy(next, items)
	for i := range next {
		if next[i].BookID == bookID {
			q := next[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			next[i].Quantity = q
		}
	}
	return next
}

// Remove drops the line for the given book from the cart.
func Remove(items []Item, bookID string) []Item {
	next := make([]Item, 0, len(items))
	for _, item := range items {
		if item.BookID != bookID {
			next = append(next, item)
		}
	}
	return next
}

// TotalQuantity returns the number of copies across all lines.
func TotalQuantity(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
