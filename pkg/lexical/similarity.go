package lexical

import (
	"strings"

	"telemedicine-assistant-be/pkg/knowledge"
	"telemedicine-assistant-be/pkg/textnorm"
)

// Pairwise contribution weights of the bag-of-words comparison.
const (
	exactWeight     = 1.0
	substringWeight = 0.7
	synonymWeight   = 0.8
	boostWeight     = 0.1

	advancedMinTokenLen = 3
	baselineMinTokenLen = 2
)

// Scorer computes a crude bag-of-words similarity between two strings using
// a fixed synonym dictionary. This is an intentional lexical heuristic, not
// semantic similarity: it over-rewards shared surface forms and knows nothing
// outside its synonym groups. The thresholds downstream were tuned against
// exactly this behaviour, so it should not be "improved" in isolation.
type Scorer struct {
	synonyms map[string][]string
	boost    []string
}

// NewScorer builds a scorer from the knowledge vocabulary tables.
func NewScorer(tables knowledge.Tables) *Scorer {
	return &Scorer{
		synonyms: tables.Synonyms,
		boost:    tables.BoostKeywords,
	}
}

// Similarity returns a score in [0,1]. Containment of one normalized string
// in the other short-circuits to 1.0. Otherwise tokens of length <= 3 are
// dropped and every cross pair contributes by exact match, substring
// containment or shared synonym group, normalized by the larger token count.
func (s *Scorer) Similarity(a, b string) float64 {
	na := textnorm.Normalize(a)
	nb := textnorm.Normalize(b)

	if na == "" || nb == "" {
		return 0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 1.0
	}

	tokensA := textnorm.Tokenize(na, advancedMinTokenLen)
	tokensB := textnorm.Tokenize(nb, advancedMinTokenLen)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	var score float64
	for _, wa := range tokensA {
		for _, wb := range tokensB {
			switch {
			case wa == wb:
				score += exactWeight
			case strings.Contains(wa, wb) || strings.Contains(wb, wa):
				score += substringWeight
			case s.areSynonyms(wa, wb):
				score += synonymWeight
			}
		}
	}

	for _, kw := range s.boost {
		if strings.Contains(na, kw) && strings.Contains(nb, kw) {
			score += boostWeight
		}
	}

	total := len(tokensA)
	if len(tokensB) > total {
		total = len(tokensB)
	}

	score /= float64(total)
	if score > 1.0 {
		return 1.0
	}
	return score
}

func (s *Scorer) areSynonyms(a, b string) bool {
	for head, group := range s.synonyms {
		if (head == a || contains(group, a)) && (head == b || contains(group, b)) {
			return true
		}
	}
	return false
}

func contains(list []string, word string) bool {
	for _, w := range list {
		if w == word {
			return true
		}
	}
	return false
}

// BaselineScorer is the simpler variant used by the medication lookup path:
// shared-token count over the larger word count, ignoring tokens of length
// <= 2 and without synonym or substring credit.
type BaselineScorer struct{}

// Similarity returns the fraction of tokens common to both strings.
func (BaselineScorer) Similarity(a, b string) float64 {
	wordsA := strings.Fields(textnorm.Normalize(a))
	wordsB := strings.Fields(textnorm.Normalize(b))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setB := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		setB[w] = true
	}

	var common int
	for _, w := range wordsA {
		if len([]rune(w)) > baselineMinTokenLen && setB[w] {
			common++
		}
	}

	total := len(wordsA)
	if len(wordsB) > total {
		total = len(wordsB)
	}
	return float64(common) / float64(total)
}
