package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/pkg/enums"
)

// User represents a marketplace actor. A user owns zero or more orders.
type User struct {
	ID          uuid.UUID         `gorm:"column:id;type:text;primaryKey"`
	Name        string            `gorm:"column:name;not null"`
	Email       string            `gorm:"column:email;not null;uniqueIndex"`
	Phone       *string           `gorm:"column:phone"`
	Address     *string           `gorm:"column:address"`
	Role        enums.UserRole    `gorm:"column:role;not null;default:'customer'"`
	Preferences map[string]string `gorm:"column:preferences;serializer:json"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
