package memory

import (
	"time"

	"telemedicine-assistant-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// ContextRepository holds the per-user conversation context in memory. An
// idle conversation expires after an hour, matching the lifetime users
// expect from an unsaved chat tab.
type ContextRepository struct {
	cache *cache.Cache
}

func NewContextRepository() *ContextRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ContextRepository{cache: c}
}

func (r *ContextRepository) Save(userId string, ctx *store.ConversationContext) {
	r.cache.Set(userId, ctx, cache.DefaultExpiration)
}

func (r *ContextRepository) Get(userId string) (*store.ConversationContext, bool) {
	if x, found := r.cache.Get(userId); found {
		return x.(*store.ConversationContext), true
	}
	return nil, false
}

func (r *ContextRepository) Delete(userId string) {
	r.cache.Delete(userId)
}
