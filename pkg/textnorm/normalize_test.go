package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases",
			input: "J'ai MAL à la Tête",
			want:  "j ai mal a la tete",
		},
		{
			name:  "strips accents",
			input: "fièvre élevée chez le bébé",
			want:  "fievre elevee chez le bebe",
		},
		{
			name:  "punctuation becomes spaces",
			input: "toux, fièvre... et frissons!",
			want:  "toux fievre et frissons",
		},
		{
			name:  "collapses whitespace",
			input: "  mal   de \t gorge \n ",
			want:  "mal de gorge",
		},
		{
			name:  "keeps digits and underscore",
			input: "douleur 8_sur_10",
			want:  "douleur 8_sur_10",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "only punctuation",
			input: "?!...",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"J'ai de la fièvre",
		"Mon enfant a mal au ventre",
		"ça gratte très fort",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		minLen int
		want   []string
	}{
		{
			name:   "drops short tokens",
			input:  "j ai mal au poumon",
			minLen: 3,
			want:   []string{"poumon"},
		},
		{
			name:   "baseline threshold keeps three letter words",
			input:  "mal de tete",
			minLen: 2,
			want:   []string{"mal", "tete"},
		},
		{
			name:   "empty string",
			input:  "",
			minLen: 3,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input, tt.minLen)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
