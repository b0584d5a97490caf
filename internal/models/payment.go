package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Payment is append-only. Date is assigned by the server at insert time.
type Payment struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	Email         string         `gorm:"not null;size:255;index" json:"email"`
	Price         float64        `gorm:"not null" json:"price"`
	TransactionID string         `gorm:"size:255;index" json:"transactionId"`
	PlanName      string         `gorm:"size:100" json:"planName,omitempty"`
	Details       datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"details,omitempty"`
	Date          time.Time      `gorm:"not null;index" json:"date"`
}

func (Payment) TableName() string {
	return "payments"
}
