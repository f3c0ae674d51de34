package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ketabino/bookshop/internal/domain/user"
)

// GetUserByID returns one account from memory.
func (s *Store) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}

// GetUserByEmail returns one account from memory.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}

// ListUsers returns all accounts.
func (s *Store) ListUsers(ctx context.Context) ([]user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]user.User(nil), s.users...), nil
}

// CreateUser appends a new account after checking email uniqueness.
func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	record := *u

	s.mu.Lock()
	for i := range s.users {
		if s.users[i].Email == record.Email {
			s.mu.Unlock()
			return user.ErrEmailTaken
		}
	}
	next := append(append([]user.User(nil), s.users...), record)
	s.users = next
	err := s.snapshot(keyUsers, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.enqueueSync(keyUsers, func(ctx context.Context) error {
		return s.remote.Users.Create(ctx, &record)
	})
	s.changed(keyUsers)
	return nil
}

// UpdateUser replaces an account record by rebuilding the collection.
func (s *Store) UpdateUser(ctx context.Context, u *user.User) error {
	record := *u

	s.mu.Lock()
	found := false
	next := make([]user.User, len(s.users))
	for i := range s.users {
		if s.users[i].ID == record.ID {
			next[i] = record
			found = true
			continue
		}
		next[i] = s.users[i]
	}
	if !found {
		s.mu.Unlock()
		return user.ErrNotFound
	}
	s.users = next
	err := s.snapshot(keyUsers, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.enqueueSync(keyUsers, func(ctx context.Context) error {
		return s.remote.Users.Update(ctx, &record)
	})
	s.changed(keyUsers)
	return nil
}

// DeleteUser removes an account. Admin action only.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	next := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		if u.ID != id {
			next = append(next, u)
		}
	}
	s.users = next
	err := s.snapshot(keyUsers, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.enqueueSync(keyUsers, func(ctx context.Context) error {
		return s.remote.Users.Delete(ctx, id)
	})
	s.changed(keyUsers)
	return nil
}

// Notify implements the order notification emitter: it appends an unread
// notification to the target user and persists the updated record.
func (s *Store) Notify(ctx context.Context, userID, title, message, typ string) error {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	n := user.Notification{
		ID:        uuid.New().String(),
		Title:     title,
		Message:   message,
		Type:      typ,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	u.Notifications = append(append([]user.Notification(nil), u.Notifications...), n)

	return s.UpdateUser(ctx, u)
}

// userView adapts the store to user.Repository.
type userView struct{ s *Store }

func (v userView) GetByID(ctx context.Context, id string) (*user.User, error) {
	return v.s.GetUserByID(ctx, id)
}
func (v userView) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return v.s.GetUserByEmail(ctx, email)
}
func (v userView) List(ctx context.Context) ([]user.User, error)  { return v.s.ListUsers(ctx) }
func (v userView) Create(ctx context.Context, u *user.User) error { return v.s.CreateUser(ctx, u) }
func (v userView) Update(ctx context.Context, u *user.User) error { return v.s.UpdateUser(ctx, u) }
func (v userView) Delete(ctx context.Context, id string) error    { return v.s.DeleteUser(ctx, id) }

// UserStore exposes the store as a user.Repository.
func (s *Store) UserStore() user.Repository { return userView{s} }
