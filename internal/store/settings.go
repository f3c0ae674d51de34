package store

import (
	"context"

	"github.com/ketabino/bookshop/internal/domain/cart"
	"github.com/ketabino/bookshop/internal/domain/payment"
)

// GetSettings returns the payment settings singleton.
func (s *Store) GetSettings(ctx context.Context) (*payment.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings := s.settings
	return &settings, nil
}

// SaveSettings replaces the payment settings singleton. Admin only.
func (s *Store) SaveSettings(ctx context.Context, p *payment.Settings) error {
	record := *p

	s.mu.Lock()
	s.settings = record
	err := s.snapshot(keySettings, record)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.enqueueSync(keySettings, func(ctx context.Context) error {
		return s.remote.Settings.Save(ctx, &record)
	})
	s.changed(keySettings)
	return nil
}

// settingsView adapts the store to payment.Repository.
type settingsView struct{ s *Store }

func (v settingsView) Get(ctx context.Context) (*payment.Settings, error) {
	return v.s.GetSettings(ctx)
}
func (v settingsView) Save(ctx context.Context, p *payment.Settings) error {
	return v.s.SaveSettings(ctx, p)
}

// SettingsStore exposes the store as a payment.Repository.
func (s *Store) SettingsStore() payment.Repository { return settingsView{s} }

// Cart returns the persisted cart for a user, empty when none exists.
// Carts are local-only state kept for continuity across restarts.
func (s *Store) Cart(userID string) []cart.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]cart.Item(nil), s.carts[userID]...)
}

// SaveCart replaces a user's cart and snapshots it locally.
func (s *Store) SaveCart(userID string, items []cart.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(items) == 0 {
		delete(s.carts, userID)
	} else {
		s.carts[userID] = append([]cart.Item(nil), items...)
	}
	return s.snapshot(keyCarts, s.carts)
}

// ClearCart drops a user's cart. Called right after order placement; the
// store lock makes place-then-clear appear atomic to readers.
func (s *Store) ClearCart(userID string) error {
	return s.SaveCart(userID, nil)
}
