package matcher

import (
	"math"
	"sort"
	"strings"

	"telemedicine-assistant-be/internal/pkg/logger"
	"telemedicine-assistant-be/pkg/assistant/patientctx"
	"telemedicine-assistant-be/pkg/knowledge"
	"telemedicine-assistant-be/pkg/lexical"
	"telemedicine-assistant-be/pkg/textnorm"
)

// Scoring constants. The cutoffs (0.5, 0.4, 0.6) and the unbounded additive
// scale were tuned together; changing one without the others silently shifts
// the ranking, so they live here as named values.
const (
	intentionScore = 10.0

	pediatricContextBonus = 1.0
	adultPediatricPenalty = 0.5

	directKeywordScore = 3.0

	symptomThreshold    = 0.4
	symptomWeight       = 2.0
	nameThreshold       = 0.6
	nameWeight          = 3.0
	descThreshold       = 0.6
	descWeight          = 1.5
	multiSymptomWeight  = 0.5
	candidateCutoff     = 0.5
	tieBreakDelta       = 0.5
	maxCandidates       = 3
)

// Details records which scoring passes contributed to a candidate.
type Details struct {
	SymptomMatches     int
	NameMatch          bool
	DescriptionMatch   bool
	DirectKeywordMatch bool
	ContextBonus       bool
	IntentionMatch     bool
}

// Candidate is one ranked disease hypothesis for a query.
type Candidate struct {
	Disease         knowledge.Disease
	SpecialtyKey    string
	SpecialtyName   string
	ConfidenceScore float64
	MatchedSymptoms []string
	Details         Details
}

// Matcher scores every disease of the knowledge base against a free-text
// query and returns the ranked top candidates.
type Matcher struct {
	base        *knowledge.Base
	tables      knowledge.Tables
	scorer      *lexical.Scorer
	ctxDetector *patientctx.Detector
	log         logger.ILogger
}

func New(base *knowledge.Base, tables knowledge.Tables, scorer *lexical.Scorer, ctxDetector *patientctx.Detector, log logger.ILogger) *Matcher {
	return &Matcher{
		base:        base,
		tables:      tables,
		scorer:      scorer,
		ctxDetector: ctxDetector,
		log:         log,
	}
}

// Match returns 0 to 3 candidates in descending confidence order. Confidence
// scores are raw additive values and can exceed 1.0 freely; direct keyword
// hits alone contribute 3.0 each.
func (m *Matcher) Match(rawInput string) []Candidate {
	normalized := textnorm.Normalize(rawInput)

	if single := m.weightIntentShortcut(normalized); single != nil {
		return []Candidate{*single}
	}

	patientCtx := m.ctxDetector.Detect(rawInput)
	candidates := m.scoreAll(normalized, patientCtx)
	return m.rank(candidates, patientCtx)
}

// weightIntentShortcut handles the nutrition use case where "perdre du
// poids" and "prendre du poids" share nearly all surface vocabulary: when
// exactly one intent direction matches, the corresponding disease is returned
// alone at a fixed maximum confidence, bypassing scoring entirely.
func (m *Matcher) weightIntentShortcut(normalized string) *Candidate {
	if !strings.Contains(normalized, "poids") {
		return nil
	}

	gain := containsAny(normalized, m.tables.WeightGainKeywords)
	lose := containsAny(normalized, m.tables.WeightLossKeywords)
	if gain == lose {
		return nil
	}

	targetId := m.tables.WeightLossDiseaseId
	if gain {
		targetId = m.tables.WeightGainDiseaseId
	}

	disease, specialtyKey := m.base.FindDisease(targetId)
	if disease == nil {
		return nil
	}

	m.log.Debug("matcher", "weight intent shortcut fired", map[string]interface{}{
		"disease_id": targetId,
		"gain":       gain,
	})

	return &Candidate{
		Disease:         *disease,
		SpecialtyKey:    specialtyKey,
		SpecialtyName:   m.base.Specialties[specialtyKey].Name,
		ConfidenceScore: intentionScore,
		Details:         Details{IntentionMatch: true},
	}
}

func (m *Matcher) scoreAll(normalized string, patientCtx patientctx.Context) []Candidate {
	var candidates []Candidate

	for specialtyKey, specialty := range m.base.Specialties {
		for _, disease := range specialty.Diseases {
			c := m.scoreDisease(normalized, patientCtx, specialtyKey, specialty, disease)
			if c.ConfidenceScore > candidateCutoff {
				m.log.Debug("matcher", "candidate kept", map[string]interface{}{
					"disease":  disease.Name,
					"score":    c.ConfidenceScore,
					"symptoms": c.MatchedSymptoms,
				})
				candidates = append(candidates, c)
			}
		}
	}
	return candidates
}

func (m *Matcher) scoreDisease(normalized string, patientCtx patientctx.Context, specialtyKey string, specialty knowledge.Specialty, disease knowledge.Disease) Candidate {
	c := Candidate{
		Disease:       disease,
		SpecialtyKey:  specialtyKey,
		SpecialtyName: specialty.Name,
	}

	pediatric := specialtyKey == m.tables.PediatricSpecialtyKey
	if patientCtx.Age == patientctx.AgeChild && pediatric {
		c.ConfidenceScore += pediatricContextBonus
		c.Details.ContextBonus = true
	}
	if patientCtx.Age == patientctx.AgeAdult && pediatric {
		c.ConfidenceScore -= adultPediatricPenalty
	}

	// Direct keyword pass. A hit is treated as stronger evidence than any
	// fuzzy score, so the fuzzy pass is skipped entirely once one fires.
	for _, symptom := range disease.Symptoms {
		if m.directKeywordHit(normalized, textnorm.Normalize(symptom)) {
			c.ConfidenceScore += directKeywordScore
			c.MatchedSymptoms = append(c.MatchedSymptoms, symptom)
			c.Details.DirectKeywordMatch = true
		}
	}

	if !c.Details.DirectKeywordMatch {
		for _, symptom := range disease.Symptoms {
			sim := m.scorer.Similarity(normalized, symptom)
			if sim > symptomThreshold {
				c.ConfidenceScore += sim * symptomWeight
				c.MatchedSymptoms = append(c.MatchedSymptoms, symptom)
				c.Details.SymptomMatches++
			}
		}
	}

	if sim := m.scorer.Similarity(normalized, disease.Name); sim > nameThreshold {
		c.ConfidenceScore += sim * nameWeight
		c.Details.NameMatch = true
	}

	// Description text is noisier than symptom lists; the higher threshold
	// keeps incidental vocabulary overlap from promoting a disease.
	if sim := m.scorer.Similarity(normalized, disease.Description); sim > descThreshold {
		c.ConfidenceScore += sim * descWeight
		c.Details.DescriptionMatch = true
	}

	if len(c.MatchedSymptoms) > 1 {
		c.ConfidenceScore += float64(len(c.MatchedSymptoms)) * multiSymptomWeight
	}

	return c
}

func (m *Matcher) directKeywordHit(normalizedInput, normalizedSymptom string) bool {
	for _, rule := range m.tables.DirectKeywordRules {
		if !containsAll(normalizedInput, rule.Input) {
			continue
		}
		for _, fragment := range rule.Symptom {
			if strings.Contains(normalizedSymptom, fragment) {
				return true
			}
		}
	}
	return false
}

// rank applies the adult hard filter, then orders candidates by score with a
// context-aware tie rule: scores within 0.5 of each other count as a tie and
// a non-pediatric specialty wins it for a non-pediatric patient.
func (m *Matcher) rank(candidates []Candidate, patientCtx patientctx.Context) []Candidate {
	adultContext := patientCtx.Age == patientctx.AgeAdult || len(patientCtx.Keywords) == 0

	kept := candidates[:0]
	for _, c := range candidates {
		if adultContext && c.SpecialtyKey == m.tables.PediatricSpecialtyKey {
			m.log.Debug("matcher", "pediatric candidate filtered for adult context", map[string]interface{}{
				"disease": c.Disease.Name,
			})
			continue
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if math.Abs(a.ConfidenceScore-b.ConfidenceScore) > tieBreakDelta {
			return a.ConfidenceScore > b.ConfidenceScore
		}
		// Redundant with the hard filter above, which already removed
		// pediatric candidates for an adult context. Kept so the tie rule
		// stays correct on its own if the filter ever loosens.
		if adultContext {
			aPed := a.SpecialtyKey == m.tables.PediatricSpecialtyKey
			bPed := b.SpecialtyKey == m.tables.PediatricSpecialtyKey
			if aPed != bPed {
				return bPed
			}
		}
		if a.ConfidenceScore != b.ConfidenceScore {
			return a.ConfidenceScore > b.ConfidenceScore
		}
		return a.Disease.Id < b.Disease.Id
	})

	if len(kept) > maxCandidates {
		kept = kept[:maxCandidates]
	}
	return kept
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func containsAll(s string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(s, kw) {
			return false
		}
	}
	return true
}
