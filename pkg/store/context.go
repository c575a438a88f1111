package store

// ConversationContext is the ephemeral per-user matching state kept between
// exchanges: what the user reported so far and which diseases are currently
// plausible. It lives in the in-memory store, not the database.
type ConversationContext struct {
	LastSymptoms     []string `json:"last_symptoms"`
	PossibleDiseases []string `json:"possible_diseases"`
	AskedQuestions   []string `json:"asked_questions"`
}
