package response

import (
	"strings"
	"testing"

	"telemedicine-assistant-be/pkg/assistant/emergency"
	"telemedicine-assistant-be/pkg/assistant/matcher"
	"telemedicine-assistant-be/pkg/assistant/medication"
	"telemedicine-assistant-be/pkg/assistant/patientctx"
	"telemedicine-assistant-be/pkg/knowledge"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func testBase() *knowledge.Base {
	return &knowledge.Base{
		Specialties: map[string]knowledge.Specialty{
			"generaliste": {
				Name: "Médecine Générale",
				Diseases: []knowledge.Disease{
					{
						Id:          "grippe",
						Name:        "Grippe saisonnière",
						Description: "Infection virale respiratoire",
						Symptoms:    []string{"fièvre", "toux sèche"},
						Treatments:  []string{"Repos", "Paracétamol"},
						Severity:    knowledge.SeverityModerate,
						Duration:    "5 à 7 jours",
						Prevention:  []string{"Vaccination annuelle"},
					},
				},
			},
		},
		EmergencyKeywords: map[string][]string{},
		FollowUpQuestions: map[string]string{
			knowledge.FollowUpDuration:  "Depuis combien de temps ressentez-vous ces symptômes ?",
			knowledge.FollowUpIntensity: "Sur une échelle de 1 à 10, quelle est l'intensité ?",
		},
		Medications: []knowledge.Medication{
			{
				Id:          "paracetamol",
				Name:        "Paracétamol",
				Type:        "Antalgique",
				Indications: []string{"douleur", "fièvre"},
				Dosage:      "500mg toutes les 6h",
			},
		},
	}
}

func newTestComposer() *Composer {
	base := testBase()
	return NewComposer(base, knowledge.DefaultTables(), medication.NewFinder(base), nopLogger{})
}

func grippeCandidate(score float64) matcher.Candidate {
	base := testBase()
	return matcher.Candidate{
		Disease:         base.Specialties["generaliste"].Diseases[0],
		SpecialtyKey:    "generaliste",
		SpecialtyName:   "Médecine Générale",
		ConfidenceScore: score,
		MatchedSymptoms: []string{"fièvre"},
	}
}

func adultCtx() patientctx.Context {
	return patientctx.Context{Age: patientctx.AgeAdult}
}

func noEmergency() emergency.Result {
	return emergency.Result{Level: knowledge.TierNone}
}

func TestComposeTopMatch(t *testing.T) {
	c := newTestComposer()

	got := c.Compose("J'ai de la fièvre depuis 3 jours", []matcher.Candidate{grippeCandidate(0.9)}, noEmergency(), adultCtx())

	assert.Contains(t, got, "Analyse de vos symptômes")
	assert.Contains(t, got, "Grippe saisonnière")
	assert.Contains(t, got, "Correspondance : 90%")
	assert.Contains(t, got, "🎯")
	assert.Contains(t, got, "fièvre")
	assert.Contains(t, got, "Repos, Paracétamol")
	assert.Contains(t, got, "Consultez un professionnel en **Médecine Générale**")
	assert.Contains(t, got, "Consultation dans les prochains jours")
	assert.Contains(t, got, "Avertissement médical")
	assert.Contains(t, got, "194 (SAMU)")
}

func TestComposeConfidenceAboveHundred(t *testing.T) {
	c := newTestComposer()

	// Direct keyword scores push the raw value past 1.0; the shown
	// percentage follows without clamping.
	got := c.Compose("toux", []matcher.Candidate{grippeCandidate(3.0)}, noEmergency(), adultCtx())
	assert.Contains(t, got, "Correspondance : 300%")
}

func TestComposeEmergencyBannerFirst(t *testing.T) {
	c := newTestComposer()

	got := c.Compose("il ne respire plus", []matcher.Candidate{grippeCandidate(0.9)},
		emergency.Result{Level: knowledge.TierImmediate, Detected: true, Keyword: "ne respire plus"},
		adultCtx())

	assert.True(t, strings.HasPrefix(got, "🚨 **URGENCE MÉDICALE** 🚨"))
	assert.Contains(t, got, "Appelez le 194 (SAMU)")
	bannerIdx := strings.Index(got, "URGENCE MÉDICALE")
	analysisIdx := strings.Index(got, "Analyse de vos symptômes")
	assert.Less(t, bannerIdx, analysisIdx)
}

func TestComposeElevatedBanner(t *testing.T) {
	c := newTestComposer()

	got := c.Compose("fièvre très élevée", nil,
		emergency.Result{Level: knowledge.TierElevated, Detected: true, Keyword: "fièvre très élevée"},
		adultCtx())

	assert.Contains(t, got, "SYMPTÔMES PRÉOCCUPANTS")
	assert.Contains(t, got, "consultation médicale rapide")
}

func TestComposeNoMatch(t *testing.T) {
	c := newTestComposer()

	got := c.Compose("blablabla", nil, noEmergency(), adultCtx())

	assert.Contains(t, got, "Aucun diagnostic évident")
	assert.Contains(t, got, "Localisation exacte des symptômes")
	assert.Contains(t, got, "médecin généraliste")
	assert.Contains(t, got, "Avertissement médical")
}

func TestComposePediatricPhrasing(t *testing.T) {
	c := newTestComposer()

	childCtx := patientctx.Context{Age: patientctx.AgeChild, Keywords: []string{"enfant"}}
	got := c.Compose("mon enfant a de la fièvre", []matcher.Candidate{grippeCandidate(0.9)}, noEmergency(), childCtx)

	assert.Contains(t, got, "Consultez un **pédiatre** ou médecin généraliste")
}

func TestComposeMedicationsOnCue(t *testing.T) {
	c := newTestComposer()

	got := c.Compose("médicament pour fièvre", []matcher.Candidate{grippeCandidate(0.9)}, noEmergency(), adultCtx())
	assert.Contains(t, got, "Médicaments pouvant être pertinents")
	assert.Contains(t, got, "Paracétamol")

	// Without the cue and with a disease match, no medication block.
	got = c.Compose("j'ai de la fièvre", []matcher.Candidate{grippeCandidate(0.9)}, noEmergency(), adultCtx())
	assert.NotContains(t, got, "Médicaments pouvant être pertinents")
}

func TestComposeFollowUpQuestions(t *testing.T) {
	c := newTestComposer()

	// No duration wording in the input: the duration question is asked.
	got := c.Compose("j'ai de la fièvre", []matcher.Candidate{grippeCandidate(0.9)}, noEmergency(), adultCtx())
	assert.Contains(t, got, "Questions importantes")
	assert.Contains(t, got, "Depuis combien de temps")

	// Duration already given: the duration question is skipped.
	got = c.Compose("j'ai de la fièvre depuis 3 jours", []matcher.Candidate{grippeCandidate(0.9)}, noEmergency(), adultCtx())
	assert.NotContains(t, got, "Depuis combien de temps")
}

func TestComposeDisclaimerAlwaysLast(t *testing.T) {
	c := newTestComposer()

	for _, input := range []string{"fièvre", "blablabla"} {
		var candidates []matcher.Candidate
		if input == "fièvre" {
			candidates = []matcher.Candidate{grippeCandidate(0.9)}
		}
		got := c.Compose(input, candidates, noEmergency(), adultCtx())
		assert.True(t, strings.HasSuffix(got, "📞 Urgences : 194 (SAMU) | 190 (Police) | 198 (Pompiers)"))
	}
}
