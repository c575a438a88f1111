package unitofwork

import (
	"context"

	"telemedicine-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationMessageRepository() contract.ConversationMessageRepository
	HistoryEntryRepository() contract.HistoryEntryRepository
}
