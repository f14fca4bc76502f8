package repository

import (
	"context"
	"fmt"
	"time"

	"eliteshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const adminColumns = "id, username, email, password_hash, is_active, last_login, created_at"

// adminRepository implements the AdminRepository interface using PostgreSQL.
type adminRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAdminRepository creates a new PostgreSQL-backed admin repository.
func NewAdminRepository(pool *pgxpool.Pool, logger zerolog.Logger) AdminRepository {
	return &adminRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "admin").Logger(),
	}
}

// GetByID retrieves an admin by ID.
func (r *adminRepository) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	query := fmt.Sprintf("SELECT %s FROM admins WHERE id = $1", adminColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByUsername retrieves an admin by username.
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	query := fmt.Sprintf("SELECT %s FROM admins WHERE username = $1", adminColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, username))
}

func (r *adminRepository) scanOne(row pgx.Row) (*model.Admin, error) {
	var a model.Admin
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.IsActive, &a.LastLogin, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query admin")
		return nil, fmt.Errorf("failed to query admin: %w", err)
	}
	return &a, nil
}

// Count returns the number of admin accounts.
func (r *adminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count admins")
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

// Create inserts a new admin.
func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	query := `
		INSERT INTO admins (username, email, password_hash, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, admin.Username, admin.Email, admin.PasswordHash, admin.IsActive).
		Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("username", admin.Username).Msg("failed to create admin")
		return fmt.Errorf("failed to create admin: %w", err)
	}

	r.logger.Info().Str("username", admin.Username).Msg("admin created")
	return nil
}

// UpdateLastLogin stamps the admin's last successful login.
func (r *adminRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE admins SET last_login = $1 WHERE id = $2`, at, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("admin_id", id).Msg("failed to update last login")
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}
