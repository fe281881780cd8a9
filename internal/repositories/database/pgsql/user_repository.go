package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	"github.com/fieldforce/sfm_backend/internal/models"
	"github.com/fieldforce/sfm_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, password_hash, name, role, line, area, district, region, manager_id,
		created_at, created_by, last_updated_at, last_updated_by, deactivated_at,
		refresh_token_hash, refresh_token_expiry_time`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Name,
		&m.Role,
		&m.Line,
		&m.Area,
		&m.District,
		&m.Region,
		&m.ManagerID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeactivatedAt,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (user_id, username, password_hash, name, role, line, area, district, region, manager_id,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.PasswordHash,
		m.Name,
		m.Role,
		m.Line,
		m.Area,
		m.District,
		m.Region,
		m.ManagerID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("username %s is already taken: %w", user.Username, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	u := mapping.ToDomainUser(*m)
	return &u, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	u := mapping.ToDomainUser(*m)
	return &u, nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE deactivated_at IS NULL
        ORDER BY created_at DESC, user_id
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	modelUsers := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		modelUsers = append(modelUsers, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}

	return mapping.ToDomainUserSlice(modelUsers), nil
}

// FindSubordinateIDs walks the manager references downwards with a recursive
// CTE. Only active users are returned; a deactivated manager in the middle of
// a chain cuts their subtree off, which matches the fail-closed visibility
// rule.
func (r *PgxUserRepository) FindSubordinateIDs(ctx context.Context, managerID string) ([]string, error) {
	query := `
        WITH RECURSIVE subordinates AS (
            SELECT user_id
            FROM users
            WHERE manager_id = $1 AND deactivated_at IS NULL
            UNION
            SELECT u.user_id
            FROM users u
            INNER JOIN subordinates s ON u.manager_id = s.user_id
            WHERE u.deactivated_at IS NULL
        )
        SELECT user_id FROM subordinates;
    `
	rows, err := r.Pool.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subordinates of %s: %w", managerID, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subordinate ID: %w", err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating subordinate rows: %w", rows.Err())
	}
	return ids, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        UPDATE users
        SET name = $1, role = $2, line = $3, area = $4, district = $5, region = $6, manager_id = $7,
            last_updated_at = $8, last_updated_by = $9
        WHERE user_id = $10 AND deactivated_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Role,
		m.Line,
		m.Area,
		m.District,
		m.Region,
		m.ManagerID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or deactivated: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	query := `
        UPDATE users
        SET refresh_token_hash = $1, refresh_token_expiry_time = $2, last_updated_at = NOW()
        WHERE user_id = $3 AND deactivated_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, refreshTokenHash, refreshTokenExpiryTime, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or deactivated: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
        UPDATE users
        SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL, last_updated_at = NOW()
        WHERE user_id = $1;
    `
	if _, err := r.Pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) MarkUserDeactivated(ctx context.Context, userID string, deactivatedAt time.Time, deactivatedBy string) error {
	query := `
        UPDATE users
        SET deactivated_at = $1, refresh_token_hash = NULL, refresh_token_expiry_time = NULL,
            last_updated_at = $1, last_updated_by = $2
        WHERE user_id = $3 AND deactivated_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, deactivatedAt, deactivatedBy, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user as deactivated: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deactivated: %w", apperrors.ErrNotFound)
	}
	return nil
}
