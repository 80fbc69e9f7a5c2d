package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser da acceso al backoffice. PasswordHash queda vacío en cuentas
// que solo ingresan con Google.
type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:140;uniqueIndex" json:"email"`
	Name         string    `gorm:"size:140" json:"name"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}
