package v1

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest DTO для входа администратора
// @Description DTO для входа администратора
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminResponse DTO с публичными полями администратора
// @Description DTO с публичными полями администратора
type AdminResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// LoginResponse DTO для ответа на успешный вход
// @Description DTO для ответа на успешный вход
type LoginResponse struct {
	Token string        `json:"token"`
	Admin AdminResponse `json:"admin"`
}

// CreateReportRequest DTO для анонимной отправки жалобы
// @Description DTO для анонимной отправки жалобы
type CreateReportRequest struct {
	Category    string `json:"category" validate:"required,oneof=Harassment Theft Bullying Vandalism Assault Other"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}

// UpdateStatusRequest DTO для смены статуса жалобы администратором
// @Description DTO для смены статуса жалобы администратором
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_review resolved"`
}

// CoordinatesResponse DTO с координатами точки на карте
type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ReportResponse DTO для полного ответа с информацией о жалобе
// @Description DTO для полного ответа с информацией о жалобе
type ReportResponse struct {
	ID          uuid.UUID           `json:"id"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	Location    string              `json:"location"`
	PhotoURL    string              `json:"photoUrl,omitempty"`
	Status      string              `json:"status"`
	Priority    string              `json:"priority"`
	Coordinates CoordinatesResponse `json:"coordinates"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// PublicReportResponse DTO с урезанным набором полей для публичной карты:
// описание и фото не отдаются
// @Description DTO с урезанным набором полей для публичной карты
type PublicReportResponse struct {
	ID          uuid.UUID           `json:"id"`
	Category    string              `json:"category"`
	Location    string              `json:"location"`
	Status      string              `json:"status"`
	Priority    string              `json:"priority"`
	Coordinates CoordinatesResponse `json:"coordinates"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// StatsResponse DTO для ответа со сводной статистикой
// @Description DTO для ответа со сводной статистикой
type StatsResponse struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Resolved     int `json:"resolved"`
	HighPriority int `json:"highPriority"`
}

// DeleteResponse DTO для ответа на удаление жалобы
// @Description DTO для ответа на удаление жалобы
type DeleteResponse struct {
	Success bool `json:"success"`
}
