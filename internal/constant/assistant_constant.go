package constant

// Bot error messages appended when response generation fails, keyed by a
// coarse substring classification of the underlying error.
const (
	ErrMessageGeneric = "❌ Une erreur s'est produite. Veuillez réessayer."
	ErrMessageNetwork = "🌐 Problème de connexion. Vérifiez votre réseau et réessayez."
	ErrMessageTimeout = "⏱️ Délai d'attente dépassé. Veuillez réessayer."
	ErrMessageMemory  = "💾 Mémoire insuffisante. Essayez de rafraîchir la page."

	// Shown when a query arrives before the knowledge base finished loading.
	ErrMessageDataNotReady = "⚠️ Chargement des données médicales en cours... Veuillez patienter et réessayer dans quelques secondes."
)

// History entry construction.
const (
	HistorySummaryMaxLen  = 50
	HistoryMaxEntries     = 10
	HistoryDateLayout     = "02/01/2006"
	HistoryDefaultSummary = "Conversation médicale"
)
