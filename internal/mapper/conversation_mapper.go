package mapper

import (
	"telemedicine-assistant-be/internal/entity"
	"telemedicine-assistant-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) MessageToEntity(msg *model.ConversationMessage) *entity.ConversationMessage {
	if msg == nil {
		return nil
	}
	return &entity.ConversationMessage{
		Id:        msg.Id,
		UserId:    msg.UserId,
		Seq:       msg.Seq,
		Content:   msg.Content,
		IsUser:    msg.IsUser,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessageToModel(msg *entity.ConversationMessage) *model.ConversationMessage {
	if msg == nil {
		return nil
	}
	return &model.ConversationMessage{
		Id:        msg.Id,
		UserId:    msg.UserId,
		Seq:       msg.Seq,
		Content:   msg.Content,
		IsUser:    msg.IsUser,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ConversationMapper) HistoryEntryToEntity(e *model.HistoryEntry) *entity.HistoryEntry {
	if e == nil {
		return nil
	}
	return &entity.HistoryEntry{
		Id:           e.Id,
		UserId:       e.UserId,
		Date:         e.Date,
		Summary:      e.Summary,
		MessageCount: e.MessageCount,
		CreatedAt:    e.CreatedAt,
	}
}

func (m *ConversationMapper) HistoryEntryToModel(e *entity.HistoryEntry) *model.HistoryEntry {
	if e == nil {
		return nil
	}
	return &model.HistoryEntry{
		Id:           e.Id,
		UserId:       e.UserId,
		Date:         e.Date,
		Summary:      e.Summary,
		MessageCount: e.MessageCount,
		CreatedAt:    e.CreatedAt,
	}
}
