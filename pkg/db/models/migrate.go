package models

import "gorm.io/gorm"

// AutoMigrate creates the full schema. The store is recreated on every
// boot, so this is the entire migration lifecycle.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Branch{},
		&Product{},
		&Order{},
		&OrderLineItem{},
	)
}
