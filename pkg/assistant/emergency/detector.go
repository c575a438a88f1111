package emergency

import (
	"strings"

	"telemedicine-assistant-be/pkg/knowledge"
	"telemedicine-assistant-be/pkg/textnorm"
)

// Result reports the highest emergency tier whose keywords matched the
// input, along with the keyword that fired.
type Result struct {
	Level    string
	Detected bool
	Keyword  string
}

// Detector matches input against the knowledge base emergency keyword table.
type Detector struct {
	base *knowledge.Base
}

func NewDetector(base *knowledge.Base) *Detector {
	return &Detector{base: base}
}

// Detect walks the tiers in decreasing severity; the first tier with a
// matching keyword wins, so an immediate emergency is never downgraded by a
// later match.
func (d *Detector) Detect(rawInput string) Result {
	normalized := textnorm.Normalize(rawInput)

	for _, tier := range knowledge.EmergencyTiers {
		for _, keyword := range d.base.EmergencyKeywords[tier] {
			if strings.Contains(normalized, textnorm.Normalize(keyword)) {
				return Result{Level: tier, Detected: true, Keyword: keyword}
			}
		}
	}
	return Result{Level: knowledge.TierNone}
}
