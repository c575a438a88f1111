package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"telemedicine-assistant-be/internal/constant"
	"telemedicine-assistant-be/internal/dto"
	"telemedicine-assistant-be/internal/repository/memory"
	"telemedicine-assistant-be/internal/repository/specification"
	"telemedicine-assistant-be/pkg/knowledge"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func testKnowledgeBase() *knowledge.Base {
	return &knowledge.Base{
		Specialties: map[string]knowledge.Specialty{
			"generaliste": {
				Name: "Médecine Générale",
				Diseases: []knowledge.Disease{
					{
						Id:          "grippe",
						Name:        "Grippe saisonnière",
						Description: "Infection virale respiratoire",
						Symptoms:    []string{"fièvre", "toux sèche", "courbatures"},
						Treatments:  []string{"Repos"},
						Severity:    knowledge.SeverityModerate,
						Duration:    "5 à 7 jours",
					},
				},
			},
		},
		EmergencyKeywords: map[string][]string{},
		FollowUpQuestions: map[string]string{},
	}
}

func newTestService(loaded bool) (*assistantService, *memory.RepositoryFactory) {
	factory := memory.NewRepositoryFactory()
	provider := knowledge.NewProvider()
	if loaded {
		provider.Set(testKnowledgeBase())
	}
	svc := NewAssistantService(
		factory,
		provider,
		knowledge.DefaultTables(),
		memory.NewContextRepository(),
		nopLogger{},
	).(*assistantService)
	return svc, factory
}

func TestSendMessageRepliesAndPersists(t *testing.T) {
	svc, _ := newTestService(true)
	userId := uuid.New()

	res, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Content: "J'ai de la fièvre"})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.Dropped)
	require.NotNil(t, res.Sent)
	require.NotNil(t, res.Reply)
	assert.True(t, res.Sent.IsUser)
	assert.False(t, res.Reply.IsUser)
	assert.Contains(t, res.Reply.Content, "Grippe saisonnière")

	messages, err := svc.GetMessages(context.Background(), userId)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.True(t, messages[0].IsUser)
	assert.False(t, messages[1].IsUser)
}

func TestSendMessageBeforeKnowledgeLoaded(t *testing.T) {
	svc, _ := newTestService(false)
	userId := uuid.New()

	res, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Content: "J'ai de la fièvre"})
	require.NoError(t, err)
	assert.Equal(t, constant.ErrMessageDataNotReady, res.Reply.Content)

	// The exchange is still recorded.
	messages, err := svc.GetMessages(context.Background(), userId)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestSendMessageDropsWhileBusy(t *testing.T) {
	svc, _ := newTestService(true)
	userId := uuid.New()
	other := uuid.New()

	svc.busy.Store(userId, struct{}{})

	res, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Content: "fièvre"})
	require.NoError(t, err)
	assert.True(t, res.Dropped)
	assert.Nil(t, res.Sent)
	assert.Nil(t, res.Reply)

	// No messages recorded for the dropped call.
	messages, err := svc.GetMessages(context.Background(), userId)
	require.NoError(t, err)
	assert.Empty(t, messages)

	// Another user is not affected.
	res, err = svc.SendMessage(context.Background(), other, &dto.SendMessageRequest{Content: "fièvre"})
	require.NoError(t, err)
	assert.False(t, res.Dropped)

	// The flag releases after the in-flight call would finish.
	svc.busy.Delete(userId)
	res, err = svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Content: "fièvre"})
	require.NoError(t, err)
	assert.False(t, res.Dropped)
}

func TestHistoryOneEntryPerDay(t *testing.T) {
	svc, _ := newTestService(true)
	userId := uuid.New()

	_, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Content: "J'ai de la fièvre"})
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Content: "Et je tousse aussi"})
	require.NoError(t, err)

	entries, err := svc.GetChatHistory(context.Background(), userId)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, time.Now().Format(constant.HistoryDateLayout), entries[0].Date)
	assert.Equal(t, "J'ai de la fièvre", entries[0].Summary)
	assert.Equal(t, 2, entries[0].MessageCount)
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	svc, factory := newTestService(true)
	userId := uuid.New()
	ctx := context.Background()

	day := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < constant.HistoryMaxEntries+2; i++ {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, svc.maintainHistory(ctx, uow, userId, "conversation", day.AddDate(0, 0, i)))
	}

	entries, err := svc.GetChatHistory(ctx, userId)
	require.NoError(t, err)
	require.Len(t, entries, constant.HistoryMaxEntries)

	// The two oldest days are gone, the most recent survives.
	dates := make(map[string]bool, len(entries))
	for _, e := range entries {
		dates[e.Date] = true
	}
	assert.False(t, dates[day.Format(constant.HistoryDateLayout)])
	assert.False(t, dates[day.AddDate(0, 0, 1).Format(constant.HistoryDateLayout)])
	assert.True(t, dates[day.AddDate(0, 0, constant.HistoryMaxEntries+1).Format(constant.HistoryDateLayout)])
}

func TestClearMessagesAlsoClearsContext(t *testing.T) {
	svc, _ := newTestService(true)
	userId := uuid.New()
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, userId, &dto.SendMessageRequest{Content: "J'ai de la fièvre"})
	require.NoError(t, err)

	convCtx, err := svc.GetConversationContext(ctx, userId)
	require.NoError(t, err)
	assert.NotEmpty(t, convCtx.PossibleDiseases)

	require.NoError(t, svc.ClearMessages(ctx, userId))

	messages, err := svc.GetMessages(ctx, userId)
	require.NoError(t, err)
	assert.Empty(t, messages)

	convCtx, err = svc.GetConversationContext(ctx, userId)
	require.NoError(t, err)
	assert.Empty(t, convCtx.PossibleDiseases)
}

func TestClearChatHistory(t *testing.T) {
	svc, _ := newTestService(true)
	userId := uuid.New()
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, userId, &dto.SendMessageRequest{Content: "J'ai de la fièvre"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearChatHistory(ctx, userId))

	entries, err := svc.GetChatHistory(ctx, userId)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetSuggestedQuestions(t *testing.T) {
	svc, _ := newTestService(true)

	res := svc.GetSuggestedQuestions(context.Background())
	require.NotNil(t, res)
	assert.Equal(t, []string{
		"J'ai mal à la tête et de la fièvre",
		"Je ressens des douleurs abdominales",
		"J'ai des démangeaisons et des rougeurs sur la peau",
		"Je me sens très fatigué depuis plusieurs jours",
		"J'ai mal à la gorge et j'ai du mal à avaler",
	}, res.Questions)
}

func TestClassifyGenerationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"network", errors.New("network unreachable"), constant.ErrMessageNetwork},
		{"connection", errors.New("connection refused"), constant.ErrMessageNetwork},
		{"timeout", errors.New("operation timeout"), constant.ErrMessageTimeout},
		{"deadline", errors.New("context deadline exceeded"), constant.ErrMessageTimeout},
		{"memory", errors.New("out of memory"), constant.ErrMessageMemory},
		{"generic", errors.New("something broke"), constant.ErrMessageGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyGenerationError(tt.err))
		})
	}
}

func TestSummarize(t *testing.T) {
	long := strings.Repeat("a", constant.HistorySummaryMaxLen+10)

	assert.Equal(t, constant.HistoryDefaultSummary, summarize("   "))
	assert.Equal(t, "court", summarize("court"))
	got := summarize(long)
	assert.Len(t, []rune(got), constant.HistorySummaryMaxLen+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestGetMessagesKeepsExchangeOrder(t *testing.T) {
	svc, factory := newTestService(true)
	userId := uuid.New()
	ctx := context.Background()

	// Back-to-back sends complete within the same clock tick; ordering must
	// come from the insertion sequence, not from timestamps.
	_, err := svc.SendMessage(ctx, userId, &dto.SendMessageRequest{Content: "premier message"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, userId, &dto.SendMessageRequest{Content: "deuxième message"})
	require.NoError(t, err)

	uow := factory.NewUnitOfWork(ctx)
	count, err := uow.ConversationMessageRepository().Count(ctx, specification.ByUserID{UserID: userId})
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)

	messages, err := svc.GetMessages(ctx, userId)
	require.NoError(t, err)
	require.Len(t, messages, 4)
	assert.Equal(t, "premier message", messages[0].Content)
	assert.True(t, messages[0].IsUser)
	assert.False(t, messages[1].IsUser)
	assert.Equal(t, "deuxième message", messages[2].Content)
	assert.True(t, messages[2].IsUser)
	assert.False(t, messages[3].IsUser)
}
