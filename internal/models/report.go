package models

import (
	"time"

	"github.com/google/uuid"
)

// Category - категория инцидента, задаётся студентом при отправке жалобы
type Category string

const (
	CategoryHarassment Category = "Harassment"
	CategoryTheft      Category = "Theft"
	CategoryBullying   Category = "Bullying"
	CategoryVandalism  Category = "Vandalism"
	CategoryAssault    Category = "Assault"
	CategoryOther      Category = "Other"
)

// Valid проверяет, что категория входит в фиксированный набор
func (c Category) Valid() bool {
	switch c {
	case CategoryHarassment, CategoryTheft, CategoryBullying,
		CategoryVandalism, CategoryAssault, CategoryOther:
		return true
	}
	return false
}

// Status - статус жизненного цикла жалобы
type Status string

const (
	StatusPending  Status = "pending"
	StatusInReview Status = "in_review"
	StatusResolved Status = "resolved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusResolved:
		return true
	}
	return false
}

// Priority - производная срочность жалобы
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// PriorityForCategory вычисляет приоритет по категории.
// Пересчитывается каждый раз при установке категории.
func PriorityForCategory(c Category) Priority {
	if c == CategoryHarassment {
		return PriorityHigh
	}
	return PriorityNormal
}

// Coordinates - точка для публичной карты безопасности
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Zero сообщает, что координаты ещё не были заполнены
func (c Coordinates) Zero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// Report - анонимная жалоба об инциденте. Поля, позволяющие связать
// запись с отправителем, не хранятся.
type Report struct {
	ID          uuid.UUID   `json:"id"`
	Category    Category    `json:"category"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	PhotoURL    string      `json:"photoUrl,omitempty"`
	Status      Status      `json:"status"`
	Priority    Priority    `json:"priority"`
	Coordinates Coordinates `json:"coordinates"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// StatsSummary - агрегированные счётчики для панели администратора
type StatsSummary struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Resolved     int `json:"resolved"`
	HighPriority int `json:"highPriority"`
}
