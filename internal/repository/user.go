package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ketabino/bookshop/internal/domain/user"
)

const (
	profileColumns = `id, name, email, password_hash, mobile, is_admin,
		addresses, favorites, notifications`

	getProfileByIDSQL = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	getProfileByEmailSQL = `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`

	listProfilesSQL = `SELECT ` + profileColumns + ` FROM profiles ORDER BY name`

	createProfileSQL = `INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	updateProfileSQL = `UPDATE profiles SET
		name = $2, email = $3, password_hash = $4, mobile = $5, is_admin = $6,
		addresses = $7, favorites = $8, notifications = $9
		WHERE id = $1`

	deleteProfileSQL = `DELETE FROM profiles WHERE id = $1`
)

var _ user.Repository = (*UserRepository)(nil)

// UserRepository implements user.Repository backed by PostgreSQL. The
// owned collections (addresses, favorites, notifications) live in JSONB
// columns since they are always read and written with their owner.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a UserRepository that uses the given pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID fetches one account by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.getOne(ctx, getProfileByIDSQL, id)
}

// GetByEmail fetches one account by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, getProfileByEmailSQL, email)
}

func (r *UserRepository) getOne(ctx context.Context, sql, arg string) (*user.User, error) {
	rows, err := r.pool.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("finding user %q: %w", arg, err)
	}

	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("finding user %q: %w", arg, err)
	}
	return &u, nil
}

// List returns all accounts for the admin back-office.
func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.pool.Query(ctx, listProfilesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Create persists a new account.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return r.write(ctx, createProfileSQL, u, "creating")
}

// Update replaces an account record, owned collections included.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	return r.write(ctx, updateProfileSQL, u, "updating")
}

func (r *UserRepository) write(ctx context.Context, sql string, u *user.User, verb string) error {
	addresses, err := json.Marshal(u.Addresses)
	if err != nil {
		return fmt.Errorf("marshaling addresses: %w", err)
	}
	favorites, err := json.Marshal(u.Favorites)
	if err != nil {
		return fmt.Errorf("marshaling favorites: %w", err)
	}
	notifications, err := json.Marshal(u.Notifications)
	if err != nil {
		return fmt.Errorf("marshaling notifications: %w", err)
	}

	_, err = r.pool.Exec(ctx, sql,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Mobile, u.IsAdmin,
		addresses, favorites, notifications,
	)
	if err != nil {
		return fmt.Errorf("%s user %q: %w", verb, u.ID, err)
	}
	return nil
}

// Delete removes an account. Admin action only.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, deleteProfileSQL, id)
	if err != nil {
		return fmt.Errorf("deleting user %q: %w", id, err)
	}
	return nil
}

func scanUser(row pgx.CollectableRow) (user.User, error) {
	var (
		u             user.User
		addresses     []byte
		favorites     []byte
		notifications []byte
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Mobile, &u.IsAdmin,
		&addresses, &favorites, &notifications,
	)
	if err != nil {
		return user.User{}, err
	}

	if err := json.Unmarshal(addresses, &u.Addresses); err != nil {
		return user.User{}, fmt.Errorf("unmarshaling addresses: %w", err)
	}
	if err := json.Unmarshal(favorites, &u.Favorites); err != nil {
		return user.User{}, fmt.Errorf("unmarshaling favorites: %w", err)
	}
	if err := json.Unmarshal(notifications, &u.Notifications); err != nil {
		return user.User{}, fmt.Errorf("unmarshaling notifications: %w", err)
	}
	return u, nil
}
