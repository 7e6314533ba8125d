package v1

import "github.com/silentvoice/anonymous_reporting_system/internal/models"

// DTOToReportModel преобразует DTO отправки жалобы в доменную модель
func DTOToReportModel(dto CreateReportRequest) *models.Report {
	return &models.Report{
		Category:    models.Category(dto.Category),
		Description: dto.Description,
		Location:    dto.Location,
		PhotoURL:    dto.PhotoURL,
	}
}

// ModelToReportResponse преобразует доменную модель в полный DTO для ответа
func ModelToReportResponse(model *models.Report) *ReportResponse {
	return &ReportResponse{
		ID:          model.ID,
		Category:    string(model.Category),
		Description: model.Description,
		Location:    model.Location,
		PhotoURL:    model.PhotoURL,
		Status:      string(model.Status),
		Priority:    string(model.Priority),
		Coordinates: CoordinatesResponse{Lat: model.Coordinates.Lat, Lng: model.Coordinates.Lng},
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// ModelsToReportResponses преобразует слайс моделей в слайс полных DTO
func ModelsToReportResponses(reports []*models.Report) []*ReportResponse {
	responses := make([]*ReportResponse, len(reports))
	for i, model := range reports {
		responses[i] = ModelToReportResponse(model)
	}
	return responses
}

// ModelToPublicReportResponse преобразует модель в урезанный публичный DTO
func ModelToPublicReportResponse(model *models.Report) *PublicReportResponse {
	return &PublicReportResponse{
		ID:          model.ID,
		Category:    string(model.Category),
		Location:    model.Location,
		Status:      string(model.Status),
		Priority:    string(model.Priority),
		Coordinates: CoordinatesResponse{Lat: model.Coordinates.Lat, Lng: model.Coordinates.Lng},
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// ModelsToPublicReportResponses преобразует слайс моделей в слайс публичных DTO
func ModelsToPublicReportResponses(reports []*models.Report) []*PublicReportResponse {
	responses := make([]*PublicReportResponse, len(reports))
	for i, model := range reports {
		responses[i] = ModelToPublicReportResponse(model)
	}
	return responses
}

// ModelToStatsResponse преобразует сводную статистику в DTO
func ModelToStatsResponse(model *models.StatsSummary) *StatsResponse {
	return &StatsResponse{
		Total:        model.Total,
		Pending:      model.Pending,
		Resolved:     model.Resolved,
		HighPriority: model.HighPriority,
	}
}
