package response

import (
	"fmt"
	"math"
	"strings"

	"telemedicine-assistant-be/internal/pkg/logger"
	"telemedicine-assistant-be/pkg/assistant/emergency"
	"telemedicine-assistant-be/pkg/assistant/matcher"
	"telemedicine-assistant-be/pkg/assistant/medication"
	"telemedicine-assistant-be/pkg/assistant/patientctx"
	"telemedicine-assistant-be/pkg/knowledge"
	"telemedicine-assistant-be/pkg/textnorm"
)

const maxFollowUpQuestions = 2

// Composer renders the matcher output into the structured French response
// shown to the patient: emergency banner, top-match analysis, follow-up
// questions, medication hints and the fixed medical disclaimer.
type Composer struct {
	base      *knowledge.Base
	tables    knowledge.Tables
	medFinder *medication.Finder
	log       logger.ILogger
}

func NewComposer(base *knowledge.Base, tables knowledge.Tables, medFinder *medication.Finder, log logger.ILogger) *Composer {
	return &Composer{
		base:      base,
		tables:    tables,
		medFinder: medFinder,
		log:       log,
	}
}

// Compose builds the complete response text. Only the top candidate is
// rendered; secondary candidates feed the conversation context but are never
// shown, to keep the answer readable.
func (c *Composer) Compose(rawInput string, candidates []matcher.Candidate, emerg emergency.Result, patientCtx patientctx.Context) string {
	var sb strings.Builder

	c.writeEmergencyBanner(&sb, emerg)

	if len(candidates) > 0 {
		c.writeTopMatch(&sb, rawInput, candidates, patientCtx)
	} else {
		c.writeNoMatch(&sb)
	}

	c.writeMedications(&sb, rawInput, len(candidates) == 0)
	c.writeDisclaimer(&sb)

	return sb.String()
}

func (c *Composer) writeEmergencyBanner(sb *strings.Builder, emerg emergency.Result) {
	if !emerg.Detected {
		return
	}
	switch emerg.Level {
	case knowledge.TierImmediate:
		sb.WriteString("🚨 **URGENCE MÉDICALE** 🚨\n\n")
		sb.WriteString("Ces symptômes nécessitent une **intervention médicale immédiate**.\n")
		sb.WriteString("**Appelez le 194 (SAMU) ou rendez-vous aux urgences MAINTENANT.**\n\n")
		sb.WriteString("Ne retardez pas les soins !\n\n---\n\n")
	case knowledge.TierElevated:
		sb.WriteString("⚠️ **ATTENTION - SYMPTÔMES PRÉOCCUPANTS** ⚠️\n\n")
		sb.WriteString("Ces symptômes nécessitent une **consultation médicale rapide**.\n")
		sb.WriteString("Contactez votre médecin dans les plus brefs délais ou consultez un service d'urgence.\n\n---\n\n")
	}
}

func (c *Composer) writeTopMatch(sb *strings.Builder, rawInput string, candidates []matcher.Candidate, patientCtx patientctx.Context) {
	top := candidates[0]

	// Raw additive scores are unbounded, so this percentage can exceed 100
	// for direct keyword matches. That is a property of the scoring scale,
	// kept visible rather than clamped away.
	percentage := int(math.Round(top.ConfidenceScore * 100))
	icon := "💡"
	if percentage > 80 {
		icon = "🎯"
	} else if percentage > 60 {
		icon = "📊"
	}

	sb.WriteString("🔍 **Analyse de vos symptômes :**\n\n")
	fmt.Fprintf(sb, "%s **%s** (%s)\n", icon, top.Disease.Name, top.SpecialtyName)
	fmt.Fprintf(sb, "📋 Correspondance : %d%%\n", percentage)
	fmt.Fprintf(sb, "📝 Description : %s\n", top.Disease.Description)

	if len(top.MatchedSymptoms) > 0 {
		fmt.Fprintf(sb, "✅ Symptômes correspondants : %s\n", strings.Join(top.MatchedSymptoms, ", "))
	}

	fmt.Fprintf(sb, "💊 **Traitements possibles :** %s\n", strings.Join(top.Disease.Treatments, ", "))
	fmt.Fprintf(sb, "⏱️ Durée habituelle : %s\n", top.Disease.Duration)
	fmt.Fprintf(sb, "🎚️ Gravité : %s\n", top.Disease.Severity)

	if len(top.Disease.Prevention) > 0 {
		fmt.Fprintf(sb, "🛡️ Prévention : %s\n", strings.Join(top.Disease.Prevention, ", "))
	}

	sb.WriteString("\n👨‍⚕️ **Recommandations :**\n\n")
	c.writeSpecialtyRecommendation(sb, top, patientCtx)
	c.writeUrgencyLine(sb, top.Disease.Severity)

	questions := c.followUpQuestions(rawInput, candidates)
	if len(questions) > 0 {
		sb.WriteString("\n❓ **Questions importantes :**\n")
		for i, q := range questions {
			fmt.Fprintf(sb, "%d. %s\n", i+1, q)
		}
	}
}

// writeSpecialtyRecommendation prefers pediatric phrasing only when the
// pediatric context was explicitly detected (nonempty trigger keywords), not
// for the adult default.
func (c *Composer) writeSpecialtyRecommendation(sb *strings.Builder, top matcher.Candidate, patientCtx patientctx.Context) {
	if patientCtx.Age == patientctx.AgeChild && len(patientCtx.Keywords) > 0 {
		if top.SpecialtyKey == c.tables.PediatricSpecialtyKey {
			sb.WriteString("Consultez un **pédiatre**\n\n")
		} else {
			sb.WriteString("Consultez un **pédiatre** ou médecin généraliste\n\n")
		}
		return
	}
	fmt.Fprintf(sb, "Consultez un professionnel en **%s**\n\n", top.SpecialtyName)
}

func (c *Composer) writeUrgencyLine(sb *strings.Builder, severity string) {
	switch severity {
	case knowledge.SeveritySevere:
		sb.WriteString("**Consultation urgente recommandée**\n")
	case knowledge.SeverityModerate:
		sb.WriteString("Consultation dans les prochains jours\n")
	default:
		sb.WriteString("Surveillance, consultation si aggravation\n")
	}
}

func (c *Composer) writeNoMatch(sb *strings.Builder) {
	sb.WriteString("🤔 **Aucun diagnostic évident**\n\n")
	sb.WriteString("📝 **Précisez :**\n")
	sb.WriteString("• Localisation exacte des symptômes\n")
	sb.WriteString("• Durée (depuis quand ?)\n")
	sb.WriteString("• Intensité (1-10)\n\n")
	sb.WriteString("🏥 Consultez votre **médecin généraliste** pour un examen.\n")
}

// writeMedications appends medication hints when the query asks about
// treatments or when no disease matched at all.
func (c *Composer) writeMedications(sb *strings.Builder, rawInput string, noDiseaseMatch bool) {
	normalized := textnorm.Normalize(rawInput)

	asked := false
	for _, cue := range c.tables.MedicationCues {
		if strings.Contains(normalized, cue) {
			asked = true
			break
		}
	}
	if !asked && !noDiseaseMatch {
		return
	}

	matches := c.medFinder.Find(rawInput)
	if len(matches) == 0 {
		return
	}

	sb.WriteString("\n💊 **Médicaments pouvant être pertinents :**\n\n")
	for i, m := range matches {
		fmt.Fprintf(sb, "%d. **%s** (%s)\n", i+1, m.Medication.Name, m.Medication.Type)
		fmt.Fprintf(sb, "   • Indications : %s\n", strings.Join(m.Medication.Indications, ", "))
		fmt.Fprintf(sb, "   • Posologie : %s\n", m.Medication.Dosage)
		if len(m.Medication.Contraindications) > 0 {
			fmt.Fprintf(sb, "   • Contre-indications : %s\n", strings.Join(m.Medication.Contraindications, ", "))
		}
		sb.WriteString("\n")
	}
}

func (c *Composer) writeDisclaimer(sb *strings.Builder) {
	sb.WriteString("\n" + strings.Repeat("═", 50) + "\n")
	sb.WriteString("⚠️ **IMPORTANT - Avertissement médical**\n\n")
	sb.WriteString("Cette analyse est **purement informative** et ne remplace en aucun cas :\n")
	sb.WriteString("• Un diagnostic médical professionnel\n")
	sb.WriteString("• Une consultation avec un médecin\n")
	sb.WriteString("• Un traitement médical approprié\n")
	sb.WriteString("**En cas de doute ou d'aggravation, consultez rapidement un professionnel de santé.**\n")
	sb.WriteString("📞 Urgences : 194 (SAMU) | 190 (Police) | 198 (Pompiers)")
}

// followUpQuestions picks at most two questions, using health-goal framing
// for nutrition-objective diseases and symptom framing otherwise.
func (c *Composer) followUpQuestions(rawInput string, candidates []matcher.Candidate) []string {
	if len(candidates) == 0 {
		return []string{
			"Pouvez-vous décrire plus précisément vos symptômes ?",
			"Y a-t-il des facteurs qui soulagent ou aggravent vos symptômes ?",
		}
	}

	normalized := textnorm.Normalize(rawInput)
	top := candidates[0]
	var questions []string

	if c.isHealthGoal(top, normalized) {
		switch top.Disease.Id {
		case c.tables.WeightLossDiseaseId:
			questions = append(questions,
				"Quel est votre objectif de perte de poids ?",
				"Avez-vous des contraintes alimentaires ou préférences particulières ?")
		case c.tables.WeightGainDiseaseId:
			questions = append(questions,
				"Quel poids souhaitez-vous atteindre ?",
				"Avez-vous des difficultés particulières pour prendre du poids ?")
		default:
			questions = append(questions,
				"Souhaitez-vous améliorer un aspect particulier de votre alimentation ?",
				"Avez-vous des objectifs spécifiques (énergie, digestion, poids) ?")
		}
	} else {
		if !strings.Contains(normalized, "depuis") && !strings.Contains(normalized, "jour") && !strings.Contains(normalized, "semaine") {
			if q, ok := c.base.FollowUpQuestions[knowledge.FollowUpDuration]; ok {
				questions = append(questions, q)
			}
		}
		if strings.Contains(normalized, "douleur") || strings.Contains(normalized, "mal") {
			if q, ok := c.base.FollowUpQuestions[knowledge.FollowUpIntensity]; ok {
				questions = append(questions, q)
			}
		}
		if top.Disease.Id == "migraine" || top.Disease.Id == "mal_de_tete" {
			questions = append(questions, "La douleur est-elle pulsatile ? S'accompagne-t-elle de nausées ?")
		}
		if top.SpecialtyKey == "dermatologie" {
			questions = append(questions, "Où sont localisées les lésions ? Depuis quand sont-elles apparues ?")
		}
	}

	if len(questions) > maxFollowUpQuestions {
		questions = questions[:maxFollowUpQuestions]
	}
	return questions
}

func (c *Composer) isHealthGoal(top matcher.Candidate, normalizedInput string) bool {
	switch top.Disease.Id {
	case c.tables.WeightLossDiseaseId, c.tables.WeightGainDiseaseId, "conseil_nutritionnel":
		return true
	}
	return top.SpecialtyKey == c.tables.NutritionSpecialtyKey && !strings.Contains(normalizedInput, "fatigue")
}
