package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/silentvoice/anonymous_reporting_system/internal/config"
	"github.com/silentvoice/anonymous_reporting_system/internal/models"
	"github.com/silentvoice/anonymous_reporting_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	reportService service.ReportService
	authService   service.AuthService
	logger        *logrus.Logger
	validate      *validator.Validate
	cfg           *config.Config
}

func NewHandler(reportService service.ReportService, authService service.AuthService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		reportService: reportService,
		authService:   authService,
		logger:        logger,
		validate:      validator.New(),
		cfg:           cfg,
	}
}

// adminLog дополняет лог админского хэндлера личностью действующего администратора
func (h *Handler) adminLog(c *gin.Context, method string) *logrus.Entry {
	log := h.logger.WithField("method", method)
	if admin, ok := AdminFromContext(c); ok {
		log = log.WithField("admin_id", admin.ID)
	}
	return log
}

// respondError отображает ошибку бизнес-слоя в HTTP-статус
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Admin login
// @Description Authenticate the administrator and issue a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Admin credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string "Missing email or password"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, admin, err := h.authService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		log.WithError(err).Warn("Login failed")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		Admin: AdminResponse{ID: admin.ID, Email: admin.Email},
	})
}

// @Summary Submit an anonymous report
// @Description Create a new incident report. No authentication, no identifying fields stored.
// @Tags Reports
// @Accept json
// @Produce json
// @Param report body CreateReportRequest true "Report submission"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [post]
func (h *Handler) createReport(c *gin.Context) {
	var input CreateReportRequest
	log := h.logger.WithField("method", "createReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToReportModel(input)
	if err := h.reportService.CreateReport(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to create report in service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToReportResponse(model))
}

// @Summary Recent reports for the safety map
// @Description Get the most recent reports with a reduced field set. Description and photo are excluded.
// @Tags Reports
// @Accept json
// @Produce json
// @Param limit query int false "Maximum number of reports (<= 100)" default(50)
// @Success 200 {array} PublicReportResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/public/recent/list [get]
func (h *Handler) listRecentPublic(c *gin.Context) {
	log := h.logger.WithField("method", "listRecentPublic")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	reports, err := h.reportService.ListRecentPublic(c.Request.Context(), limit)
	if err != nil {
		log.WithError(err).Error("Failed to list recent reports from service")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToPublicReportResponses(reports))
}

// @Summary Track a report by ID
// @Description Get a single report by its ID. Knowing the ID grants read access: this is how anonymous tracking works.
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id} [get]
func (h *Handler) getReport(c *gin.Context) {
	// Некорректный идентификатор неотличим от несуществующего
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	log := h.logger.WithField("method", "getReport").WithField("id", id)

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get report from service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary List all reports
// @Description Get all reports, newest first. Requires admin bearer token.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [get]
func (h *Handler) listReports(c *gin.Context) {
	log := h.adminLog(c, "listReports")

	reports, err := h.reportService.ListReports(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list reports from service")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToReportResponses(reports))
}

// @Summary Report statistics
// @Description Get aggregate report counts. Requires admin bearer token.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/stats/summary [get]
func (h *Handler) getStatsSummary(c *gin.Context) {
	log := h.adminLog(c, "getStatsSummary")

	stats, err := h.reportService.GetStatsSummary(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ModelToStatsResponse(stats))
}

// @Summary Update report status
// @Description Set a new lifecycle status on a report. Requires admin bearer token.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id} [put]
func (h *Handler) updateReportStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	log := h.adminLog(c, "updateReportStatus").WithField("id", id)

	var input UpdateStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportService.UpdateReportStatus(c.Request.Context(), id, models.Status(input.Status))
	if err != nil {
		log.WithError(err).Warn("Failed to update report status in service")
		respondError(c, err)
		return
	}
	log.WithField("status", report.Status).Info("Report status updated by admin")
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary Delete a report
// @Description Permanently delete a report. No soft delete, no audit trail. Requires admin bearer token.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} DeleteResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id} [delete]
func (h *Handler) deleteReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	log := h.adminLog(c, "deleteReport").WithField("id", id)

	if err := h.reportService.DeleteReport(c.Request.Context(), id); err != nil {
		log.WithError(err).Warn("Failed to delete report in service")
		respondError(c, err)
		return
	}

	log.Info("Report deleted by admin")
	c.JSON(http.StatusOK, DeleteResponse{Success: true})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
