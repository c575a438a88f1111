package contract

import (
	"context"

	"telemedicine-assistant-be/internal/entity"
	"telemedicine-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type HistoryEntryRepository interface {
	Create(ctx context.Context, entry *entity.HistoryEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HistoryEntry, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.HistoryEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
