package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/snipstash-backend/internal/models"
)

// ErrUserNotFound возвращается, когда запись пользователя не найдена.
var ErrUserNotFound = errors.New("user not found")

// UserRepository отвечает за работу с таблицей users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create создаёт нового пользователя по email.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email)
		VALUES ($1)
		RETURNING id, is_verified, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(ctx, query, user.Email).
		Scan(&user.ID, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return fmt.Errorf("user repository: create: %w", err)
	}

	return nil
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, is_verified, otp_code_hash, otp_expires_at, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by email: %w", err)
	}

	return &user, nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, is_verified, otp_code_hash, otp_expires_at, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by id: %w", err)
	}

	return &user, nil
}

// SetOTP записывает хэш одноразового кода и срок его действия,
// заменяя любой ранее выданный код.
func (r *UserRepository) SetOTP(ctx context.Context, userID uuid.UUID, codeHash string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET otp_code_hash = $2, otp_expires_at = $3, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, userID, codeHash, expiresAt)
	if err != nil {
		return fmt.Errorf("user repository: set otp: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ClearOTPAndVerify сбрасывает ожидающий код и помечает пользователя подтверждённым.
func (r *UserRepository) ClearOTPAndVerify(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE users
		SET otp_code_hash = NULL, otp_expires_at = NULL, is_verified = TRUE, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("user repository: clear otp: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}

	return nil
}
