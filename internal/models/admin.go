package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin - единственная привилегированная учётная запись.
// Пароль хранится только в виде bcrypt-хэша.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
