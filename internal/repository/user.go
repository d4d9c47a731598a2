package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_dispatch_system/internal/apperr"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
)

// UserRepository разрешает идентичности пользователей. Регистрация и
// аутентификация выполняются внешним провайдером, здесь только чтение.
type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) service.UserRepository {
	return &UserRepository{
		db: db,
	}
}

// ResolveUser возвращает пользователя по id
func (r *UserRepository) ResolveUser(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, document_id, full_name, email, phone, emergency_contact, role, credential_hash, address, registered_at, active
		FROM users
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.DocumentID,
		&user.FullName,
		&user.Email,
		&user.Phone,
		&user.EmergencyContact,
		&user.Role,
		&user.CredentialHash,
		&user.Address,
		&user.RegisteredAt,
		&user.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to resolve user by id: %w", err)
	}
	return user, nil
}
