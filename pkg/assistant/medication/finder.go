package medication

import (
	"sort"

	"telemedicine-assistant-be/pkg/knowledge"
	"telemedicine-assistant-be/pkg/lexical"
)

const (
	indicationThreshold = 0.3
	nameThreshold       = 0.4
	nameWeight          = 2.0
	scoreCutoff         = 0.3
	maxResults          = 2
)

// Match is a medication scored against a query.
type Match struct {
	Medication knowledge.Medication
	Score      float64
}

// Finder looks up medications whose indications or name resemble the query.
// It uses the baseline token-overlap scorer, which is deliberately stricter
// than the disease matcher's fuzzy scorer.
type Finder struct {
	base   *knowledge.Base
	scorer lexical.BaselineScorer
}

func NewFinder(base *knowledge.Base) *Finder {
	return &Finder{base: base}
}

// Find returns at most two medications in descending score order.
func (f *Finder) Find(rawInput string) []Match {
	var matches []Match

	for _, med := range f.base.Medications {
		var score float64

		for _, indication := range med.Indications {
			if sim := f.scorer.Similarity(rawInput, indication); sim > indicationThreshold {
				score += sim
			}
		}
		if sim := f.scorer.Similarity(rawInput, med.Name); sim > nameThreshold {
			score += sim * nameWeight
		}

		if score > scoreCutoff {
			matches = append(matches, Match{Medication: med, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Medication.Id < matches[j].Medication.Id
	})

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}
