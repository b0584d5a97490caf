package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"

	SubscriptionUnpaid = "unpaid"
	SubscriptionPaid   = "paid"
)

// User is keyed by a generated id; email is the business key.
type User struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	Email              string     `gorm:"not null;size:255;index" json:"email"`
	Name               string     `gorm:"size:255" json:"name"`
	Address            string     `gorm:"type:text" json:"address"`
	Gender             string     `gorm:"size:50" json:"gender"`
	Phone              string     `gorm:"size:50" json:"phone"`
	Photo              string     `gorm:"type:text" json:"photo"`
	Role               string     `gorm:"size:20;not null;default:'member'" json:"role"`
	SubscriptionStatus string     `gorm:"size:20;not null;default:'unpaid'" json:"subscriptionStatus"`
	SubscriptionDate   *time.Time `json:"subscriptionDate,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
