package knowledge

// Base is the immutable medical knowledge base, loaded once at startup and
// shared read-only by the matching components.
type Base struct {
	Specialties       map[string]Specialty `json:"specialties"`
	EmergencyKeywords map[string][]string  `json:"emergency_keywords"`
	FollowUpQuestions map[string]string    `json:"follow_up_questions"`
	Medications       []Medication         `json:"medications"`
}

type Specialty struct {
	Name     string    `json:"name"`
	Diseases []Disease `json:"diseases"`
}

type Disease struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Symptoms    []string `json:"symptoms"`
	Treatments  []string `json:"treatments"`
	Severity    string   `json:"severity"`
	Duration    string   `json:"duration"`
	Prevention  []string `json:"prevention"`
}

type Medication struct {
	Id                string   `json:"id"`
	Name              string   `json:"name"`
	Type              string   `json:"type"`
	Indications       []string `json:"indications"`
	Dosage            string   `json:"dosage"`
	Contraindications []string `json:"contraindications"`
}

// Severity levels used by Disease.Severity.
const (
	SeverityMild     = "léger"
	SeverityModerate = "modéré"
	SeveritySevere   = "grave"
)

// EmergencyTiers lists the emergency keyword tiers in decreasing severity.
// Detection walks them in this order so the highest tier always wins.
var EmergencyTiers = []string{
	TierImmediate,
	TierElevated,
}

const (
	TierImmediate = "urgence_immediate"
	TierElevated  = "urgence_elevee"
	TierNone      = "none"
)

// Follow-up question attribute keys.
const (
	FollowUpDuration  = "duration"
	FollowUpIntensity = "intensity"
)

// FindDisease returns the disease with the given id and its specialty key,
// or nil when absent.
func (b *Base) FindDisease(id string) (*Disease, string) {
	for key, sp := range b.Specialties {
		for i := range sp.Diseases {
			if sp.Diseases[i].Id == id {
				return &sp.Diseases[i], key
			}
		}
	}
	return nil, ""
}
