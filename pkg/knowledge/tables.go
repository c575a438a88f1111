package knowledge

// Tables groups the handcrafted matching vocabularies that drive scoring.
// They are configuration data owned by the knowledge component and injected
// into the matcher at construction, so alternate locales or test fixtures can
// substitute their own sets.
type Tables struct {
	Version string

	// Synonyms maps a headword to its synonym group. Membership is
	// symmetric: two words are synonyms when both belong to a common group.
	Synonyms map[string][]string

	// BoostKeywords add a small similarity bonus when present in both
	// compared strings.
	BoostKeywords []string

	// DirectKeywordRules award a flat high-confidence score when the input
	// and a symptom string coincide on anatomical/symptom keywords.
	DirectKeywordRules []DirectKeywordRule

	// Weight-intent shortcut vocabularies and their target disease ids.
	WeightGainKeywords  []string
	WeightLossKeywords  []string
	WeightGainDiseaseId string
	WeightLossDiseaseId string

	// Patient-context cue lists. Ambiguous cues only count when preceded by
	// a possessive pronoun.
	PediatricCues          []string
	AmbiguousPediatricCues []string
	SeniorCues             []string

	// MedicationCues trigger the medication lookup in the composer.
	MedicationCues []string

	// Specialty keys with special matching semantics.
	PediatricSpecialtyKey string
	NutritionSpecialtyKey string
}

// DirectKeywordRule fires when every Input keyword occurs in the normalized
// user input and any Symptom fragment occurs in the normalized symptom text.
type DirectKeywordRule struct {
	Input   []string
	Symptom []string
}

// DefaultTables returns the French vocabulary set the shipped knowledge base
// was tuned against.
func DefaultTables() Tables {
	return Tables{
		Version: "fr-v1",

		Synonyms: map[string][]string{
			"douleur":     {"mal", "souffrance", "gene", "inconfort"},
			"fievre":      {"temperature", "hyperthermie", "febricule"},
			"fatigue":     {"epuisement", "lassitude", "asthenie"},
			"nausee":      {"envie_vomir", "mal_coeur", "haut_le_coeur"},
			"toux":        {"tousser", "expectoration", "expectorations"},
			"gorge":       {"pharynx", "larynx", "amygdales"},
			"ventre":      {"abdomen", "estomac", "intestin"},
			"tete":        {"crane", "cerveau", "cephalee"},
			"poumon":      {"poumons", "thorax", "poitrine", "bronches", "respiratoire"},
			"mal":         {"douleur", "souffrance", "gene", "inconfort"},
			"respiration": {"respiratoire", "souffle", "essoufflement"},
			"thoracique":  {"thorax", "poitrine", "poumon", "poumons"},
		},

		BoostKeywords: []string{"mal", "douleur", "toux", "poumon", "thoracique", "respiratoire"},

		DirectKeywordRules: []DirectKeywordRule{
			{Input: []string{"toux"}, Symptom: []string{"toux"}},
			{Input: []string{"mal", "poumon"}, Symptom: []string{"mal au poumon", "douleur thoracique", "poumon"}},
			{Input: []string{"poumon"}, Symptom: []string{"poumon"}},
		},

		WeightGainKeywords:  []string{"gagne", "gagner", "prendre", "grossir", "augmenter", "prise de poids"},
		WeightLossKeywords:  []string{"perdre", "perte", "maigrir", "mincir", "regime"},
		WeightGainDiseaseId: "prise_poids",
		WeightLossDiseaseId: "perte_poids",

		PediatricCues: []string{
			"enfant", "bebe", "nourrisson", "fils", "fille", "bambin", "gamin",
			"gosse", "mome", "gamine", "fillette", "garcon", "nouveau ne",
			"pediatre", "pediatrie",
		},
		AmbiguousPediatricCues: []string{"petit", "petite"},
		SeniorCues: []string{
			"senior", "grand mere", "grand pere", "retraite", "vieux", "vieille",
			"personne agee",
		},

		MedicationCues: []string{"medicament", "traitement", "remede", "pilule", "comprime"},

		PediatricSpecialtyKey: "pediatrie",
		NutritionSpecialtyKey: "nutrition",
	}
}
