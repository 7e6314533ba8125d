package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/silentvoice/anonymous_reporting_system/internal/geocoder"
	"github.com/silentvoice/anonymous_reporting_system/internal/models"
	"github.com/silentvoice/anonymous_reporting_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 100
)

// ReportRepository определяет контракт для работы с хранилищем жалоб
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ListAll(ctx context.Context) ([]*models.Report, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Report, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.Status) (int, error)
	CountByPriority(ctx context.Context, priority models.Priority) (int, error)
	GetReportFromCache(ctx context.Context, id uuid.UUID) (*models.Report, error)
	SetReportCache(ctx context.Context, report *models.Report) error
	InvalidateReportCache(ctx context.Context, id uuid.UUID) error
}

// ReportService определяет контракт для бизнес-логики управления жалобами
type ReportService interface {
	CreateReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ListReports(ctx context.Context) ([]*models.Report, error)
	ListRecentPublic(ctx context.Context, limit int) ([]*models.Report, error)
	UpdateReportStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.Report, error)
	DeleteReport(ctx context.Context, id uuid.UUID) error
	GetStatsSummary(ctx context.Context) (*models.StatsSummary, error)
}

type reportService struct {
	repo      ReportRepository
	logger    *logrus.Logger
	geocoder  geocoder.Geocoder
	publisher webhook.AlertPublisher
}

func NewReportService(repo ReportRepository, logger *logrus.Logger, geo geocoder.Geocoder, publisher webhook.AlertPublisher) ReportService {
	return &reportService{
		repo:      repo,
		logger:    logger,
		geocoder:  geo,
		publisher: publisher,
	}
}

// CreateReport валидирует анонимную жалобу, вычисляет приоритет и координаты
// и сохраняет её. Жалобы с высоким приоритетом публикуются в очередь алертов.
func (s *reportService) CreateReport(ctx context.Context, report *models.Report) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "report",
		"method":   "CreateReport",
		"category": report.Category,
	})
	log.Info("Attempting to create a new report")

	report.Description = strings.TrimSpace(report.Description)
	report.Location = strings.TrimSpace(report.Location)

	if !report.Category.Valid() {
		return fmt.Errorf("service: unknown category %q: %w", report.Category, ErrValidation)
	}
	if report.Description == "" {
		return fmt.Errorf("service: description is required: %w", ErrValidation)
	}
	if report.Location == "" {
		return fmt.Errorf("service: location is required: %w", ErrValidation)
	}

	report.Status = models.StatusPending
	report.Priority = models.PriorityForCategory(report.Category)

	// Координаты заполняются не более одного раза
	if report.Coordinates.Zero() {
		if coords, ok := s.geocoder.Geocode(report.Location); ok {
			report.Coordinates = coords
		}
	}

	if err := s.repo.Create(ctx, report); err != nil {
		log.WithError(err).Error("Failed to create report in repository")
		return fmt.Errorf("service: could not create report: %w", err)
	}

	if report.Priority == models.PriorityHigh {
		event := webhook.AlertEvent{
			ReportID:    report.ID,
			Category:    report.Category,
			Priority:    report.Priority,
			Location:    report.Location,
			Coordinates: report.Coordinates,
			CreatedAt:   report.CreatedAt,
		}
		// Доставка алертов best-effort: сбой публикации не ломает приём жалобы
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.WithError(err).Warn("Failed to publish high priority alert")
		}
	}

	log.WithField("report_id", report.ID).Info("Report created successfully")
	return nil
}

// GetReport получает жалобу по ID. Знание идентификатора само по себе даёт
// право на чтение: так работает анонимное отслеживание статуса.
func (s *reportService) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "GetReport",
		"report_id": id,
	})
	log.Info("Fetching report by ID")

	cached, err := s.repo.GetReportFromCache(ctx, id)
	if err != nil {
		// Промах в кеш не фатален, читаем из БД
		log.WithError(err).Warn("Failed to read report from cache")
	}
	if cached != nil {
		log.Info("Report fetched from cache")
		return cached, nil
	}

	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get report from repository")
		return nil, fmt.Errorf("service: could not get report: %w", err)
	}

	if err := s.repo.SetReportCache(ctx, report); err != nil {
		log.WithError(err).Warn("Failed to cache report")
	}

	log.Info("Report fetched successfully")
	return report, nil
}

// ListReports возвращает все жалобы, новые первыми. Только для администратора.
func (s *reportService) ListReports(ctx context.Context) ([]*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "ListReports",
	})
	log.Info("Listing all reports")

	reports, err := s.repo.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list reports from repository")
		return nil, fmt.Errorf("service: could not list reports: %w", err)
	}

	log.WithField("count", len(reports)).Info("Reports listed successfully")
	return reports, nil
}

// ListRecentPublic возвращает последние жалобы для публичной карты.
// Описание и фото обрезаются на уровне хранилища.
func (s *reportService) ListRecentPublic(ctx context.Context, limit int) ([]*models.Report, error) {
	if limit < 1 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "ListRecentPublic",
		"limit":   limit,
	})
	log.Info("Listing recent public reports")

	reports, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		log.WithError(err).Error("Failed to list recent reports from repository")
		return nil, fmt.Errorf("service: could not list recent reports: %w", err)
	}

	return reports, nil
}

// UpdateReportStatus устанавливает новый статус жалобы. Категория и приоритет
// на этом пути не пересчитываются.
func (s *reportService) UpdateReportStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "UpdateReportStatus",
		"report_id": id,
		"status":    status,
	})
	log.Info("Attempting to update report status")

	if !status.Valid() {
		return nil, fmt.Errorf("service: unknown status %q: %w", status, ErrValidation)
	}

	report, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		log.WithError(err).Warn("Failed to update report status in repository")
		return nil, fmt.Errorf("service: could not update report status: %w", err)
	}

	if err := s.repo.InvalidateReportCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate report cache")
	}

	log.Info("Report status updated successfully")
	return report, nil
}

// DeleteReport навсегда удаляет жалобу. Мягкого удаления и аудита нет.
func (s *reportService) DeleteReport(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "DeleteReport",
		"report_id": id,
	})
	log.Info("Attempting to delete report")

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to delete report in repository")
		return fmt.Errorf("service: could not delete report: %w", err)
	}

	if err := s.repo.InvalidateReportCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate report cache")
	}

	log.Info("Report deleted successfully")
	return nil
}

// GetStatsSummary собирает счётчики независимыми запросами по предикатам
func (s *reportService) GetStatsSummary(ctx context.Context) (*models.StatsSummary, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "GetStatsSummary",
	})
	log.Info("Computing stats summary")

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count reports")
		return nil, fmt.Errorf("service: could not count reports: %w", err)
	}

	pending, err := s.repo.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		log.WithError(err).Error("Failed to count pending reports")
		return nil, fmt.Errorf("service: could not count pending reports: %w", err)
	}

	resolved, err := s.repo.CountByStatus(ctx, models.StatusResolved)
	if err != nil {
		log.WithError(err).Error("Failed to count resolved reports")
		return nil, fmt.Errorf("service: could not count resolved reports: %w", err)
	}

	highPriority, err := s.repo.CountByPriority(ctx, models.PriorityHigh)
	if err != nil {
		log.WithError(err).Error("Failed to count high priority reports")
		return nil, fmt.Errorf("service: could not count high priority reports: %w", err)
	}

	return &models.StatsSummary{
		Total:        total,
		Pending:      pending,
		Resolved:     resolved,
		HighPriority: highPriority,
	}, nil
}
