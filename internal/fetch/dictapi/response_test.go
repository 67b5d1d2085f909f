package dictapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseToExtract(t *testing.T) {
	tests := []struct {
		name     string
		response Response
		want     Extract
	}{
		{
			name:     "empty response",
			response: Response{},
			want:     Extract{},
		},
		{
			name: "reduces the first entry",
			response: Response{
				{
					Word:     "claim",
					Phonetic: "/kleɪm/",
					Meanings: []Meaning{
						{
							PartOfSpeech: "Verb",
							Definitions: []Definition{
								{Definition: "to state something is true", Example: "He claimed victory.", Synonyms: []string{"Assert!"}},
								{Definition: "to demand as a right"},
							},
							Synonyms: []string{"maintain"},
						},
						{
							PartOfSpeech: "noun",
							Definitions: []Definition{
								{Definition: "a statement of something as fact"},
							},
						},
					},
				},
				{
					Word:     "claim",
					Phonetic: "/other/",
				},
			},
			want: Extract{
				Phonetic: "/kleɪm/",
				Definitions: []string{
					"to state something is true",
					"to demand as a right",
					"a statement of something as fact",
				},
				Synonyms:      []string{"assert", "maintain"},
				Example:       "He claimed victory.",
				PartsOfSpeech: []string{"verb", "noun"},
			},
		},
		{
			name: "falls back to the phonetics list",
			response: Response{
				{
					Word:      "lucid",
					Phonetics: []Phonetic{{Text: ""}, {Text: "/ˈluːsɪd/"}},
				},
			},
			want: Extract{
				Phonetic:      "/ˈluːsɪd/",
				Definitions:   []string{},
				Synonyms:      []string{},
				PartsOfSpeech: []string{},
			},
		},
		{
			name: "caps definitions and synonyms",
			response: Response{
				{
					Meanings: []Meaning{
						{
							PartOfSpeech: "verb",
							Definitions: []Definition{
								{Definition: "d1"}, {Definition: "d2"}, {Definition: "d3"}, {Definition: "d4"},
							},
							Synonyms: []string{
								"one", "two", "three", "four", "five", "six",
								"seven", "eight", "nine", "ten", "eleven", "one",
							},
						},
					},
				},
			},
			want: Extract{
				Definitions: []string{"d1", "d2", "d3"},
				Synonyms: []string{
					"one", "two", "three", "four", "five",
					"six", "seven", "eight", "nine", "ten",
				},
				PartsOfSpeech: []string{"verb"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.response.ToExtract())
		})
	}
}

func TestResponseUnmarshal(t *testing.T) {
	payload := `[
		{
			"word": "claim",
			"phonetic": "/kleɪm/",
			"meanings": [
				{
					"partOfSpeech": "verb",
					"definitions": [
						{"definition": "to state something is true", "example": "He claimed victory.", "synonyms": ["assert"]}
					],
					"synonyms": ["maintain"]
				}
			]
		}
	]`

	var response Response
	require.NoError(t, json.Unmarshal([]byte(payload), &response))

	extract := response.ToExtract()
	assert.Equal(t, "to state something is true", extract.DefText())
	assert.Equal(t, "assert, maintain", extract.SynText())
	assert.Equal(t, "He claimed victory.", extract.Example)
}
