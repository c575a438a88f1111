package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"telemedicine-assistant-be/internal/constant"
	"telemedicine-assistant-be/internal/dto"
	"telemedicine-assistant-be/internal/entity"
	"telemedicine-assistant-be/internal/pkg/logger"
	"telemedicine-assistant-be/internal/repository/memory"
	"telemedicine-assistant-be/internal/repository/specification"
	"telemedicine-assistant-be/internal/repository/unitofwork"
	"telemedicine-assistant-be/pkg/assistant/emergency"
	"telemedicine-assistant-be/pkg/assistant/matcher"
	"telemedicine-assistant-be/pkg/assistant/medication"
	"telemedicine-assistant-be/pkg/assistant/patientctx"
	"telemedicine-assistant-be/pkg/assistant/response"
	"telemedicine-assistant-be/pkg/knowledge"
	"telemedicine-assistant-be/pkg/lexical"
	"telemedicine-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// IAssistantService defines the medical assistant service interface
type IAssistantService interface {
	SendMessage(ctx context.Context, userId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetMessages(ctx context.Context, userId uuid.UUID) ([]*dto.MessageResponse, error)
	ClearMessages(ctx context.Context, userId uuid.UUID) error
	GetChatHistory(ctx context.Context, userId uuid.UUID) ([]*dto.HistoryEntryResponse, error)
	ClearChatHistory(ctx context.Context, userId uuid.UUID) error
	GetConversationContext(ctx context.Context, userId uuid.UUID) (*dto.ConversationContextResponse, error)
	GetSuggestedQuestions(ctx context.Context) *dto.SuggestedQuestionsResponse
}

// suggestedQuestions seeds an empty conversation on the client side.
var suggestedQuestions = []string{
	"J'ai mal à la tête et de la fièvre",
	"Je ressens des douleurs abdominales",
	"J'ai des démangeaisons et des rougeurs sur la peau",
	"Je me sens très fatigué depuis plusieurs jours",
	"J'ai mal à la gorge et j'ai du mal à avaler",
}

// assistantEngine bundles the matching pipeline built from a loaded
// knowledge base.
type assistantEngine struct {
	matcher   *matcher.Matcher
	emergency *emergency.Detector
	composer  *response.Composer
}

// assistantService coordinates the matching pipeline and conversation state
type assistantService struct {
	uowFactory  unitofwork.RepositoryFactory
	knowledge   *knowledge.Provider
	tables      knowledge.Tables
	contextRepo *memory.ContextRepository
	log         logger.ILogger

	ctxDetector *patientctx.Detector

	// eng caches the pipeline built from the knowledge base once loaded.
	eng atomic.Pointer[assistantEngine]

	// busy tracks users with an in-flight message; keyed by user id.
	busy sync.Map
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	provider *knowledge.Provider,
	tables knowledge.Tables,
	contextRepo *memory.ContextRepository,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		uowFactory:  uowFactory,
		knowledge:   provider,
		tables:      tables,
		contextRepo: contextRepo,
		log:         log,
		ctxDetector: patientctx.NewDetector(tables),
	}
}

// engine returns the matching pipeline, building it on first use after the
// knowledge base becomes available. Returns nil while loading.
func (s *assistantService) engine() *assistantEngine {
	if e := s.eng.Load(); e != nil {
		return e
	}
	base, ok := s.knowledge.Get()
	if !ok {
		return nil
	}
	scorer := lexical.NewScorer(s.tables)
	e := &assistantEngine{
		matcher:   matcher.New(base, s.tables, scorer, s.ctxDetector, s.log),
		emergency: emergency.NewDetector(base),
		composer:  response.NewComposer(base, s.tables, medication.NewFinder(base), s.log),
	}
	s.eng.CompareAndSwap(nil, e)
	return s.eng.Load()
}

func (s *assistantService) SendMessage(ctx context.Context, userId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if _, loaded := s.busy.LoadOrStore(userId, struct{}{}); loaded {
		s.log.Warn("assistant_service", "message dropped, previous one still processing", map[string]interface{}{"user_id": userId.String()})
		return &dto.SendMessageResponse{Dropped: true}, nil
	}
	defer s.busy.Delete(userId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	userMessage := &entity.ConversationMessage{
		Id:        uuid.New(),
		UserId:    userId,
		Content:   request.Content,
		IsUser:    true,
		CreatedAt: now,
	}
	if err := uow.ConversationMessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}

	botContent := s.reply(request.Content, userId)
	botMessage := &entity.ConversationMessage{
		Id:        uuid.New(),
		UserId:    userId,
		Content:   botContent,
		IsUser:    false,
		CreatedAt: now,
	}
	if err := uow.ConversationMessageRepository().Create(ctx, botMessage); err != nil {
		return nil, err
	}

	if err := s.maintainHistory(ctx, uow, userId, request.Content, now); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.SendMessageResponse{
		Sent:  messageToResponse(userMessage),
		Reply: messageToResponse(botMessage),
	}, nil
}

// reply produces the bot answer for one user message. It never fails: a
// missing knowledge base or a generation error degrades to a canned
// message in the conversation.
func (s *assistantService) reply(content string, userId uuid.UUID) string {
	eng := s.engine()
	if eng == nil {
		s.log.Warn("assistant_service", "query received before knowledge base finished loading", map[string]interface{}{"user_id": userId.String()})
		return constant.ErrMessageDataNotReady
	}

	answer, err := s.generate(eng, content, userId)
	if err != nil {
		s.log.Error("assistant_service", "response generation failed", map[string]interface{}{"user_id": userId.String(), "error": err.Error()})
		return classifyGenerationError(err)
	}
	return answer
}

func (s *assistantService) generate(eng *assistantEngine, content string, userId uuid.UUID) (answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("response generation panicked: %v", r)
		}
	}()

	candidates := eng.matcher.Match(content)
	emerg := eng.emergency.Detect(content)
	patientCtx := s.ctxDetector.Detect(content)

	s.updateConversationContext(userId, candidates)

	return eng.composer.Compose(content, candidates, emerg, patientCtx), nil
}

// classifyGenerationError maps a failure to the user-facing message by a
// coarse substring inspection.
func classifyGenerationError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "network") || strings.Contains(msg, "connection"):
		return constant.ErrMessageNetwork
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return constant.ErrMessageTimeout
	case strings.Contains(msg, "memory"):
		return constant.ErrMessageMemory
	default:
		return constant.ErrMessageGeneric
	}
}

func (s *assistantService) updateConversationContext(userId uuid.UUID, candidates []matcher.Candidate) {
	key := userId.String()
	convCtx, found := s.contextRepo.Get(key)
	if !found {
		convCtx = &store.ConversationContext{}
	}

	diseases := make([]string, 0, len(candidates))
	for _, c := range candidates {
		diseases = append(diseases, c.Disease.Name)
		for _, symptom := range c.MatchedSymptoms {
			if !containsString(convCtx.LastSymptoms, symptom) {
				convCtx.LastSymptoms = append(convCtx.LastSymptoms, symptom)
			}
		}
	}
	convCtx.PossibleDiseases = diseases
	s.contextRepo.Save(key, convCtx)
}

// maintainHistory records at most one history entry per calendar day, on
// the first exchange of that day, and evicts the oldest entries beyond the
// retention cap.
func (s *assistantService) maintainHistory(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, userContent string, now time.Time) error {
	historyRepo := uow.HistoryEntryRepository()
	date := now.Format(constant.HistoryDateLayout)

	existing, err := historyRepo.FindOne(ctx, specification.ByUserID{UserID: userId}, specification.ByDate{Date: date})
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	entry := &entity.HistoryEntry{
		Id:           uuid.New(),
		UserId:       userId,
		Date:         date,
		Summary:      summarize(userContent),
		MessageCount: 2,
		CreatedAt:    now,
	}
	if err := historyRepo.Create(ctx, entry); err != nil {
		return err
	}

	entries, err := historyRepo.FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return err
	}
	for i := constant.HistoryMaxEntries; i < len(entries); i++ {
		if err := historyRepo.Delete(ctx, entries[i].Id); err != nil {
			return err
		}
	}
	return nil
}

// summarize derives the history entry title from the opening user message.
func summarize(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return constant.HistoryDefaultSummary
	}
	runes := []rune(trimmed)
	if len(runes) <= constant.HistorySummaryMaxLen {
		return trimmed
	}
	return string(runes[:constant.HistorySummaryMaxLen]) + "..."
}

func (s *assistantService) GetMessages(ctx context.Context, userId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ConversationMessageRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "seq", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = messageToResponse(m)
	}
	return out, nil
}

func (s *assistantService) ClearMessages(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ConversationMessageRepository().DeleteAllByUserId(ctx, userId); err != nil {
		return err
	}
	s.contextRepo.Delete(userId.String())
	return uow.Commit()
}

func (s *assistantService) GetChatHistory(ctx context.Context, userId uuid.UUID) ([]*dto.HistoryEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.HistoryEntryRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.HistoryEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = &dto.HistoryEntryResponse{
			Id:           e.Id,
			Date:         e.Date,
			Summary:      e.Summary,
			MessageCount: e.MessageCount,
			CreatedAt:    e.CreatedAt,
		}
	}
	return out, nil
}

func (s *assistantService) ClearChatHistory(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.HistoryEntryRepository().DeleteAllByUserId(ctx, userId); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *assistantService) GetConversationContext(ctx context.Context, userId uuid.UUID) (*dto.ConversationContextResponse, error) {
	convCtx, found := s.contextRepo.Get(userId.String())
	if !found {
		convCtx = &store.ConversationContext{}
	}
	return &dto.ConversationContextResponse{
		LastSymptoms:     append([]string{}, convCtx.LastSymptoms...),
		PossibleDiseases: append([]string{}, convCtx.PossibleDiseases...),
		AskedQuestions:   append([]string{}, convCtx.AskedQuestions...),
	}, nil
}

func (s *assistantService) GetSuggestedQuestions(ctx context.Context) *dto.SuggestedQuestionsResponse {
	return &dto.SuggestedQuestionsResponse{
		Questions: append([]string{}, suggestedQuestions...),
	}
}

func messageToResponse(m *entity.ConversationMessage) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        m.Id,
		Content:   m.Content,
		IsUser:    m.IsUser,
		CreatedAt: m.CreatedAt,
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
