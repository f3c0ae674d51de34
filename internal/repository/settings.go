package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ketabino/bookshop/internal/domain/payment"
)

const (
	getSettingsSQL = `SELECT card_number, account_holder, bank_name
		FROM settings WHERE id = 1`

	saveSettingsSQL = `INSERT INTO settings (id, card_number, account_holder, bank_name)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			card_number = EXCLUDED.card_number,
			account_holder = EXCLUDED.account_holder,
			bank_name = EXCLUDED.bank_name`
)

var _ payment.Repository = (*SettingsRepository)(nil)

// SettingsRepository implements payment.Repository backed by PostgreSQL.
// The settings table holds a single row pinned to id 1.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository returns a SettingsRepository that uses the given pool.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get returns the stored settings, or zero-valued defaults when the row
// has never been written.
func (r *SettingsRepository) Get(ctx context.Context) (*payment.Settings, error) {
	var s payment.Settings
	err := r.pool.QueryRow(ctx, getSettingsSQL).Scan(&s.CardNumber, &s.AccountHolder, &s.BankName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &payment.Settings{}, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return &s, nil
}

// Save upserts the singleton settings row.
func (r *SettingsRepository) Save(ctx context.Context, s *payment.Settings) error {
	_, err := r.pool.Exec(ctx, saveSettingsSQL, s.CardNumber, s.AccountHolder, s.BankName)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
