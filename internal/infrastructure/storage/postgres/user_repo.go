package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hingmart/internal/core/apperror"
	"hingmart/internal/core/id"
	"hingmart/internal/domain/auth"
)

// UserRepo implements auth.UserRepository and auth.TokenRepository.
type UserRepo struct {
	txm *TxManager
}

var (
	_ auth.UserRepository  = (*UserRepo)(nil)
	_ auth.TokenRepository = (*UserRepo)(nil)
)

func NewUserRepo(txm *TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	query := `
		INSERT INTO users (
			id, email, name, password_hash, is_active,
			failed_login_attempts, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.txm.GetQuerier(ctx).Exec(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.IsActive,
		user.FailedLoginAttempts, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	query := `
		SELECT id, email, name, password_hash, is_active,
			   last_login_at, failed_login_attempts, locked_until,
			   created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(ctx, query, userID)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `
		SELECT id, email, name, password_hash, is_active,
			   last_login_at, failed_login_attempts, locked_until,
			   created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)
	`
	return r.scanUser(ctx, query, email)
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*auth.User, error) {
	var user auth.User
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.IsActive,
		&user.LastLoginAt, &user.FailedLoginAttempts, &user.LockedUntil,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("user", fmt.Sprint(arg))
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	query := `
		UPDATE users SET
			email = $2, name = $3, password_hash = $4, is_active = $5,
			last_login_at = $6, failed_login_attempts = $7, locked_until = $8,
			updated_at = now()
		WHERE id = $1
	`
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.IsActive,
		user.LastLoginAt, user.FailedLoginAttempts, user.LockedUntil,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", user.ID.String())
	}
	return nil
}

func (r *UserRepo) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.txm.GetQuerier(ctx).
		QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))", email).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepo) SaveRefreshToken(ctx context.Context, token *auth.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.txm.GetQuerier(ctx).Exec(ctx, query,
		token.ID, token.UserID, token.TokenHash, token.ExpiresAt, token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (r *UserRepo) GetRefreshToken(ctx context.Context, tokenHash string) (*auth.RefreshToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`
	var token auth.RefreshToken
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, query, tokenHash).Scan(
		&token.ID, &token.UserID, &token.TokenHash,
		&token.ExpiresAt, &token.RevokedAt, &token.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("refresh token", "")
	}
	if err != nil {
		return nil, fmt.Errorf("query refresh token: %w", err)
	}
	return &token, nil
}

func (r *UserRepo) RevokeRefreshToken(ctx context.Context, tokenID id.ID, reason string) error {
	query := `UPDATE refresh_tokens SET revoked_at = now(), revoked_reason = $2 WHERE id = $1`
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, query, tokenID, reason); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (r *UserRepo) RevokeAllUserTokens(ctx context.Context, userID id.ID, reason string) error {
	query := `
		UPDATE refresh_tokens SET revoked_at = now(), revoked_reason = $2
		WHERE user_id = $1 AND revoked_at IS NULL
	`
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, query, userID, reason); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}
