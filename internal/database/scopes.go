package database

import "gorm.io/gorm"

// ReportsInCity returns a GORM scope that filters reports by their frozen
// city snapshot. The column is qualified so the scope stays usable on
// queries that join users, which carry a city column of their own.
func ReportsInCity(city string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("reports.city = ?", city)
	}
}
