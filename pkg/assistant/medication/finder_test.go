package medication

import (
	"testing"

	"telemedicine-assistant-be/pkg/knowledge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBase() *knowledge.Base {
	return &knowledge.Base{
		Medications: []knowledge.Medication{
			{
				Id:          "paracetamol",
				Name:        "Paracétamol",
				Type:        "Antalgique",
				Indications: []string{"douleur", "fièvre", "maux de tête"},
				Dosage:      "500mg toutes les 6h",
			},
			{
				Id:          "ibuprofene",
				Name:        "Ibuprofène",
				Type:        "Anti-inflammatoire",
				Indications: []string{"douleur", "inflammation"},
				Dosage:      "200mg toutes les 8h",
			},
			{
				Id:          "smecta",
				Name:        "Diosmectite",
				Type:        "Pansement digestif",
				Indications: []string{"diarrhée"},
				Dosage:      "1 sachet 3 fois par jour",
			},
		},
	}
}

func TestFindByIndication(t *testing.T) {
	f := NewFinder(testBase())

	got := f.Find("fièvre")
	require.Len(t, got, 1)
	assert.Equal(t, "paracetamol", got[0].Medication.Id)
	assert.Greater(t, got[0].Score, scoreCutoff)
}

func TestFindByName(t *testing.T) {
	f := NewFinder(testBase())

	got := f.Find("paracétamol")
	require.NotEmpty(t, got)
	assert.Equal(t, "paracetamol", got[0].Medication.Id)
	assert.GreaterOrEqual(t, got[0].Score, nameWeight)
}

func TestFindRanksAndCaps(t *testing.T) {
	f := NewFinder(testBase())

	got := f.Find("douleur fièvre")
	require.Len(t, got, 2)
	assert.Equal(t, "paracetamol", got[0].Medication.Id)
	assert.Equal(t, "ibuprofene", got[1].Medication.Id)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestFindNoMatch(t *testing.T) {
	f := NewFinder(testBase())

	assert.Empty(t, f.Find("insomnie"))
	assert.Empty(t, f.Find(""))
}
