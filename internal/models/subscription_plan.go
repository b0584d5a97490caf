package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SubscriptionPlan is a read-only catalog entry.
type SubscriptionPlan struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	Name      string         `gorm:"not null;size:100" json:"name"`
	Price     float64        `gorm:"not null" json:"price"`
	Features  datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"features"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}
