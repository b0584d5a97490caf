package services

import "gorm.io/gorm"

// ownedBy returns a GORM scope that filters by owner email.
func ownedBy(email string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("email = ?", email)
	}
}

// newestFirst orders append-only records by their server-assigned date.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("date DESC")
}
