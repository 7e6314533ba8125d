package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/silentvoice/anonymous_reporting_system/internal/models"
	"github.com/silentvoice/anonymous_reporting_system/internal/service"
)

const reportCacheTTL = 5 * time.Minute

type ReportRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewReportRepository(db *pgxpool.Pool, redisClient *redis.Client) service.ReportRepository {
	return &ReportRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create сохраняет новую жалобу в бд
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	if r.db == nil {
		return service.ErrStoreUnavailable
	}

	query := `
		INSERT INTO reports (category, description, location, photo_url, status, priority, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		report.Category,
		report.Description,
		report.Location,
		report.PhotoURL,
		report.Status,
		report.Priority,
		report.Coordinates.Lat,
		report.Coordinates.Lng,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetByID возвращает жалобу по её UUID
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	if r.db == nil {
		return nil, service.ErrStoreUnavailable
	}

	report := &models.Report{}
	query := `
		SELECT id, category, description, location, photo_url, status, priority, lat, lng, created_at, updated_at
		FROM reports
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.Category,
		&report.Description,
		&report.Location,
		&report.PhotoURL,
		&report.Status,
		&report.Priority,
		&report.Coordinates.Lat,
		&report.Coordinates.Lng,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get report by id: %w", err)
	}
	return report, nil
}

// ListAll возвращает все жалобы, новые первыми
func (r *ReportRepository) ListAll(ctx context.Context) ([]*models.Report, error) {
	if r.db == nil {
		return nil, service.ErrStoreUnavailable
	}

	query := `
		SELECT id, category, description, location, photo_url, status, priority, lat, lng, created_at, updated_at
		FROM reports
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	return scanReports(rows, true)
}

// ListRecent возвращает последние жалобы для публичной карты.
// Описание и фото намеренно не выбираются: это публичная проекция.
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]*models.Report, error) {
	if r.db == nil {
		return nil, service.ErrStoreUnavailable
	}

	query := `
		SELECT id, category, location, status, priority, lat, lng, created_at, updated_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent reports: %w", err)
	}
	defer rows.Close()

	return scanReports(rows, false)
}

func scanReports(rows pgx.Rows, full bool) ([]*models.Report, error) {
	reports := make([]*models.Report, 0)
	for rows.Next() {
		report := &models.Report{}
		var err error
		if full {
			err = rows.Scan(
				&report.ID,
				&report.Category,
				&report.Description,
				&report.Location,
				&report.PhotoURL,
				&report.Status,
				&report.Priority,
				&report.Coordinates.Lat,
				&report.Coordinates.Lng,
				&report.CreatedAt,
				&report.UpdatedAt,
			)
		} else {
			err = rows.Scan(
				&report.ID,
				&report.Category,
				&report.Location,
				&report.Status,
				&report.Priority,
				&report.Coordinates.Lat,
				&report.Coordinates.Lng,
				&report.CreatedAt,
				&report.UpdatedAt,
			)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return reports, nil
}

// UpdateStatus устанавливает новый статус и возвращает обновлённую запись
func (r *ReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.Report, error) {
	if r.db == nil {
		return nil, service.ErrStoreUnavailable
	}

	report := &models.Report{}
	query := `
		UPDATE reports SET
			status = $1,
			updated_at = NOW()
		WHERE id = $2
		RETURNING id, category, description, location, photo_url, status, priority, lat, lng, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query, status, id).Scan(
		&report.ID,
		&report.Category,
		&report.Description,
		&report.Location,
		&report.PhotoURL,
		&report.Status,
		&report.Priority,
		&report.Coordinates.Lat,
		&report.Coordinates.Lng,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report with id %s not found for update: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update report status: %w", err)
	}
	return report, nil
}

// Delete навсегда удаляет жалобу из бд
func (r *ReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return service.ErrStoreUnavailable
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM reports WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	// Если RowsAffected() == 0, значит жалобы с таким id не существует
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("report with id %s not found for delete: %w", id, service.ErrNotFound)
	}
	return nil
}

// CountAll возвращает общее количество жалоб
func (r *ReportRepository) CountAll(ctx context.Context) (int, error) {
	if r.db == nil {
		return 0, service.ErrStoreUnavailable
	}

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reports;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}

// CountByStatus возвращает количество жалоб с заданным статусом
func (r *ReportRepository) CountByStatus(ctx context.Context, status models.Status) (int, error) {
	if r.db == nil {
		return 0, service.ErrStoreUnavailable
	}

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reports WHERE status = $1;`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reports by status: %w", err)
	}
	return count, nil
}

// CountByPriority возвращает количество жалоб с заданным приоритетом
func (r *ReportRepository) CountByPriority(ctx context.Context, priority models.Priority) (int, error) {
	if r.db == nil {
		return 0, service.ErrStoreUnavailable
	}

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reports WHERE priority = $1;`, priority).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reports by priority: %w", err)
	}
	return count, nil
}

// GetReportFromCache пытается получить жалобу из Redis
func (r *ReportRepository) GetReportFromCache(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	if r.redisClient == nil {
		return nil, nil
	}

	key := reportCacheKey(id)
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report from cache: %w", err)
	}

	report := &models.Report{}
	if err := json.Unmarshal(val, report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report from cache: %w", err)
	}
	return report, nil
}

// SetReportCache сохраняет жалобу в Redis
func (r *ReportRepository) SetReportCache(ctx context.Context, report *models.Report) error {
	if r.redisClient == nil {
		return nil
	}

	val, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, reportCacheKey(report.ID), val, reportCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set report in cache: %w", err)
	}
	return nil
}

// InvalidateReportCache удаляет жалобу из Redis кэша
func (r *ReportRepository) InvalidateReportCache(ctx context.Context, id uuid.UUID) error {
	if r.redisClient == nil {
		return nil
	}

	if err := r.redisClient.Del(ctx, reportCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate report cache: %w", err)
	}
	return nil
}

func reportCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("report:%s", id.String())
}
