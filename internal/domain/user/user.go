package user

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

var (
	// ErrNotFound is returned when a requested user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned on signup with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
)

// Address is a saved delivery address owned by exactly one user.
type Address struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	FullName    string `json:"fullName"`
	Mobile      string `json:"mobile"`
	City        string `json:"city"`
	FullAddress string `json:"fullAddress"`
}

// Notification is an in-app message delivered to one user. Created by the
// notification emitter on order status changes; only the read flag mutates
// afterwards.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"` // info | success | warning | error
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is a storefront account. PasswordHash is a bcrypt hash; the
// plaintext never leaves the signup/login handlers.
type User struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Mobile        string
	IsAdmin       bool
	Addresses     []Address
	Favorites     []string // book IDs
	Notifications []Notification
}

// Repository defines persistence operations for user accounts.
type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}

// ToggleFavorite adds the book to the favorites list, or removes it when
// already present, returning the updated list.
func ToggleFavorite(favorites []string, bookID string) []string {
	for i, id := range favorites {
		if id == bookID {
			return append(append([]string(nil), favorites[:i]...), favorites[i+1:]...)
		}
	}
	return append(append([]string(nil), favorites...), bookID)
}

// MarkNotificationRead flips the read flag on the matching notification,
// returning the rebuilt list.
func MarkNotificationRead(notifications []Notification, id string) []Notification {
	next := make([]Notification, len(notifications))
	copy(next, notifications)
	for i := range next {
		if next[i].ID == id {
			next[i].IsRead = true
		}
	}
	return next
}
