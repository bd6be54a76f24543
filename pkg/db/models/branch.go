package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch represents a pickup location. Rows are seeded at process start
// and read-only thereafter.
type Branch struct {
	ID        uuid.UUID `gorm:"column:id;type:text;primaryKey"`
	City      string    `gorm:"column:city;not null"`
	Name      string    `gorm:"column:name;not null"`
	Address   string    `gorm:"column:address;not null"`
	Phone     *string   `gorm:"column:phone"`
	Hours     *string   `gorm:"column:hours"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (b *Branch) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
