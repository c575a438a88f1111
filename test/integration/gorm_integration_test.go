package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"telemedicine-assistant-be/internal/constant"
	"telemedicine-assistant-be/internal/entity"
	"telemedicine-assistant-be/internal/repository/specification"
	"telemedicine-assistant-be/internal/repository/unitofwork"
	"telemedicine-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ConversationMessageRepository())
	assert.NotNil(t, uow.HistoryEntryRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("message roundtrip", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		uow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		msg := &entity.ConversationMessage{
			Id:        uuid.New(),
			UserId:    userId,
			Content:   "intégration: j'ai de la fièvre",
			IsUser:    true,
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.ConversationMessageRepository().Create(ctx, msg))
		// The database assigns the insertion sequence on insert.
		assert.NotZero(t, msg.Seq)

		found, err := uow.ConversationMessageRepository().FindAll(ctx,
			specification.ByUserID{UserID: userId},
			specification.OrderBy{Field: "seq", Desc: false},
		)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, msg.Content, found[0].Content)
		assert.Equal(t, msg.Seq, found[0].Seq)
	})

	t.Run("history entry by date", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()
		date := time.Now().Format(constant.HistoryDateLayout)

		uow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		entry := &entity.HistoryEntry{
			Id:           uuid.New(),
			UserId:       userId,
			Date:         date,
			Summary:      "conversation de test",
			MessageCount: 2,
			CreatedAt:    time.Now(),
		}
		require.NoError(t, uow.HistoryEntryRepository().Create(ctx, entry))

		found, err := uow.HistoryEntryRepository().FindOne(ctx,
			specification.ByUserID{UserID: userId},
			specification.ByDate{Date: date},
		)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, entry.Summary, found.Summary)
	})
}
