package model

import (
	"time"

	"github.com/google/uuid"
)

type HistoryEntry struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	Date         string    `gorm:"type:varchar(10);not null"`
	Summary      string    `gorm:"type:text;not null"`
	MessageCount int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (HistoryEntry) TableName() string {
	return "history_entries"
}
