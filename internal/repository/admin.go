package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/silentvoice/anonymous_reporting_system/internal/models"
	"github.com/silentvoice/anonymous_reporting_system/internal/service"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) service.AdminRepository {
	return &AdminRepository{db: db}
}

// GetByEmail возвращает администратора по email (уже нормализованному)
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if r.db == nil {
		return nil, service.ErrStoreUnavailable
	}

	admin := &models.Admin{}
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM admins
		WHERE email = $1;
	`
	err := r.db.QueryRow(ctx, query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("admin with email %s: %w", email, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}
	return admin, nil
}

// Create добавляет администратора. Повторная вставка того же email не создаёт
// дубликата: ON CONFLICT DO NOTHING делает посев идемпотентным.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if r.db == nil {
		return service.ErrStoreUnavailable
	}

	query := `
		INSERT INTO admins (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING;
	`
	if _, err := r.db.Exec(ctx, query, admin.Email, admin.PasswordHash); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}
