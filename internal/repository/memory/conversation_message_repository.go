package memory

import (
	"context"
	"sort"
	"sync"

	"telemedicine-assistant-be/internal/entity"
	"telemedicine-assistant-be/internal/repository/contract"
	"telemedicine-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ConversationMessageRepository keeps messages in process memory. It backs
// the session-only deployment mode and the service tests.
type ConversationMessageRepository struct {
	mu       sync.RWMutex
	messages []*entity.ConversationMessage
	lastSeq  int64
}

func NewConversationMessageRepository() *ConversationMessageRepository {
	return &ConversationMessageRepository{}
}

func (r *ConversationMessageRepository) Create(ctx context.Context, message *entity.ConversationMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	if message.Seq == 0 {
		r.lastSeq++
		message.Seq = r.lastSeq
	}
	clone := *message
	r.messages = append(r.messages, &clone)
	return nil
}

func (r *ConversationMessageRepository) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.UserId != userId {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *ConversationMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.ConversationMessage
	for _, m := range r.messages {
		if matchMessage(m, specs) {
			clone := *m
			out = append(out, &clone)
		}
	}
	applyMessageOrdering(out, specs)
	return applyMessagePagination(out, specs), nil
}

func (r *ConversationMessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, m := range r.messages {
		if matchMessage(m, specs) {
			count++
		}
	}
	return count, nil
}

func matchMessage(m *entity.ConversationMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if m.Id != s.ID {
				return false
			}
		case specification.ByUserID:
			if m.UserId != s.UserID {
				return false
			}
		}
	}
	return true
}

func applyMessageOrdering(msgs []*entity.ConversationMessage, specs []specification.Specification) {
	for _, spec := range specs {
		s, ok := spec.(specification.OrderBy)
		if !ok {
			continue
		}
		switch s.Field {
		case "seq":
			sort.SliceStable(msgs, func(i, j int) bool {
				if s.Desc {
					return msgs[i].Seq > msgs[j].Seq
				}
				return msgs[i].Seq < msgs[j].Seq
			})
		case "created_at":
			sort.SliceStable(msgs, func(i, j int) bool {
				if s.Desc {
					return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
				}
				return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
			})
		}
	}
}

func applyMessagePagination(msgs []*entity.ConversationMessage, specs []specification.Specification) []*entity.ConversationMessage {
	for _, spec := range specs {
		if s, ok := spec.(specification.Pagination); ok {
			if s.Offset >= len(msgs) {
				return nil
			}
			msgs = msgs[s.Offset:]
			if s.Limit > 0 && s.Limit < len(msgs) {
				msgs = msgs[:s.Limit]
			}
		}
	}
	return msgs
}

var _ contract.ConversationMessageRepository = (*ConversationMessageRepository)(nil)
