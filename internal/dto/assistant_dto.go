package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"is_user"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageResponse struct {
	// Dropped is set when the message was rejected because a previous
	// message for the same user is still being processed.
	Dropped bool             `json:"dropped"`
	Sent    *MessageResponse `json:"sent,omitempty"`
	Reply   *MessageResponse `json:"reply,omitempty"`
}

type HistoryEntryResponse struct {
	Id           uuid.UUID `json:"id"`
	Date         string    `json:"date"`
	Summary      string    `json:"summary"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type ConversationContextResponse struct {
	LastSymptoms     []string `json:"last_symptoms"`
	PossibleDiseases []string `json:"possible_diseases"`
	AskedQuestions   []string `json:"asked_questions"`
}

type SuggestedQuestionsResponse struct {
	Questions []string `json:"questions"`
}
