package implementation

import (
	"context"
	"errors"

	"telemedicine-assistant-be/internal/entity"
	"telemedicine-assistant-be/internal/mapper"
	"telemedicine-assistant-be/internal/model"
	"telemedicine-assistant-be/internal/repository/contract"
	"telemedicine-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HistoryEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewHistoryEntryRepository(db *gorm.DB) contract.HistoryEntryRepository {
	return &HistoryEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *HistoryEntryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *HistoryEntryRepositoryImpl) Create(ctx context.Context, entry *entity.HistoryEntry) error {
	m := r.mapper.HistoryEntryToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.HistoryEntryToEntity(m)
	return nil
}

func (r *HistoryEntryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.HistoryEntry{}, id).Error
}

func (r *HistoryEntryRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.HistoryEntry{}).Error
}

func (r *HistoryEntryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HistoryEntry, error) {
	var models []*model.HistoryEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.HistoryEntry, len(models))
	for i, m := range models {
		entities[i] = r.mapper.HistoryEntryToEntity(m)
	}
	return entities, nil
}

func (r *HistoryEntryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.HistoryEntry, error) {
	var m model.HistoryEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.HistoryEntryToEntity(&m), nil
}

func (r *HistoryEntryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.HistoryEntry{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
