package patientctx

import (
	"fmt"
	"regexp"
	"strings"

	"telemedicine-assistant-be/pkg/knowledge"
	"telemedicine-assistant-be/pkg/textnorm"
)

// Age groups inferred from the message text.
const (
	AgeChild  = "enfant"
	AgeAdult  = "adulte"
	AgeSenior = "senior"
)

// Context captures the patient cues detected in a message. Keywords holds the
// literal cues that triggered the classification; an empty list means no cue
// fired and Age is the adult default.
type Context struct {
	Age      string
	Keywords []string
}

// Detector scans normalized input for pediatric and senior cues.
type Detector struct {
	tables          knowledge.Tables
	possessivePairs map[string]*regexp.Regexp
}

func NewDetector(tables knowledge.Tables) *Detector {
	// Ambiguous cues ("petit", "petite") are only accepted next to a
	// possessive pronoun, so "petit appétit" does not flag a child.
	pairs := make(map[string]*regexp.Regexp, len(tables.AmbiguousPediatricCues))
	for _, cue := range tables.AmbiguousPediatricCues {
		pairs[cue] = regexp.MustCompile(fmt.Sprintf(`(?i)\b(mon|ma)\s+%s\b`, regexp.QuoteMeta(cue)))
	}
	return &Detector{tables: tables, possessivePairs: pairs}
}

// Detect classifies the patient age group. Pediatric cues are evaluated
// first; senior cues are evaluated after and overwrite the age when both
// appear in the same input. That precedence mirrors the behaviour the
// response phrasing was tuned against.
func (d *Detector) Detect(rawInput string) Context {
	normalized := textnorm.Normalize(rawInput)
	ctx := Context{Age: AgeAdult}

	for _, cue := range d.tables.PediatricCues {
		if strings.Contains(normalized, cue) {
			ctx.Age = AgeChild
			ctx.Keywords = append(ctx.Keywords, cue)
		}
	}
	for cue, pattern := range d.possessivePairs {
		if strings.Contains(normalized, cue) && pattern.MatchString(normalized) {
			ctx.Age = AgeChild
			ctx.Keywords = append(ctx.Keywords, cue)
		}
	}

	for _, cue := range d.tables.SeniorCues {
		if strings.Contains(normalized, cue) {
			ctx.Age = AgeSenior
			ctx.Keywords = append(ctx.Keywords, cue)
		}
	}

	return ctx
}
