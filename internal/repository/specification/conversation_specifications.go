package specification

import "gorm.io/gorm"

// ByDate filters history entries by their calendar date string.
type ByDate struct {
	Date string
}

func (s ByDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("date = ?", s.Date)
}
