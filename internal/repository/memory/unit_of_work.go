package memory

import (
	"context"

	"telemedicine-assistant-be/internal/repository/contract"
	"telemedicine-assistant-be/internal/repository/unitofwork"
)

// UnitOfWork satisfies the transactional contract over the in-memory
// repositories. There is no real transaction; repository writes apply
// immediately and Begin/Commit/Rollback are no-ops.
type UnitOfWork struct {
	messages *ConversationMessageRepository
	history  *HistoryEntryRepository
}

func (u *UnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *UnitOfWork) Commit() error                   { return nil }
func (u *UnitOfWork) Rollback() error                 { return nil }

func (u *UnitOfWork) ConversationMessageRepository() contract.ConversationMessageRepository {
	return u.messages
}

func (u *UnitOfWork) HistoryEntryRepository() contract.HistoryEntryRepository {
	return u.history
}

// RepositoryFactory hands out units of work sharing the same in-memory
// stores, so state survives across requests within a process.
type RepositoryFactory struct {
	messages *ConversationMessageRepository
	history  *HistoryEntryRepository
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{
		messages: NewConversationMessageRepository(),
		history:  NewHistoryEntryRepository(),
	}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &UnitOfWork{
		messages: f.messages,
		history:  f.history,
	}
}

var _ unitofwork.RepositoryFactory = (*RepositoryFactory)(nil)
