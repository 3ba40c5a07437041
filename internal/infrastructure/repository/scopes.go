package repository

import (
	"strings"

	"gorm.io/gorm"
)

// DateScope returns a GORM scope that filters transactions to one business
// day. An empty date leaves the query unfiltered.
func DateScope(date string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if date == "" {
			return db
		}
		return db.Where("transaction_date = ?", date)
	}
}

// CustomerSearchScope matches customer names case-insensitively. LOWER/LIKE
// is used instead of ILIKE so the same query runs on SQLite and PostgreSQL.
func CustomerSearchScope(search string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		search = strings.TrimSpace(search)
		if search == "" {
			return db
		}
		return db.Where("LOWER(customer_name) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(search))+"%")
	}
}

// NewestFirst orders by creation time, then id for rows created in the same instant.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
