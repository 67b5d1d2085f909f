// https://dictionaryapi.dev/ (free dictionary API)
package dictapi

import (
	"strings"

	"github.com/samber/lo"

	"github.com/at-ishikawa/tango/internal/word"
)

// Response is the top-level payload: one entry per sense group.
type Response []Entry

type Entry struct {
	Word      string     `json:"word"`
	Phonetic  string     `json:"phonetic"`
	Phonetics []Phonetic `json:"phonetics"`
	Meanings  []Meaning  `json:"meanings"`
}

type Phonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio,omitempty"`
}

type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms"`
	Antonyms     []string     `json:"antonyms,omitempty"`
}

type Definition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example,omitempty"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms,omitempty"`
}

const (
	maxDefinitions   = 3
	maxSynonyms      = 10
	maxPartsOfSpeech = 3
)

// Extract is the slice of a dictionary response the enrichment fields use.
type Extract struct {
	Phonetic      string
	Definitions   []string
	Synonyms      []string
	Example       string
	PartsOfSpeech []string
}

// DefText joins the extracted definitions into the stored payload form.
func (e Extract) DefText() string {
	return strings.Join(e.Definitions, " / ")
}

// SynText joins the extracted synonyms into the stored payload form.
func (e Extract) SynText() string {
	return strings.Join(e.Synonyms, ", ")
}

// ToExtract reduces the first entry of a response to the capped field
// payloads: up to 3 definitions, up to 10 deduplicated normalized synonyms,
// the first example sentence, and up to 3 part-of-speech tags.
func (r Response) ToExtract() Extract {
	var extract Extract
	if len(r) == 0 {
		return extract
	}
	entry := r[0]

	extract.Phonetic = entry.Phonetic
	if extract.Phonetic == "" {
		for _, phonetic := range entry.Phonetics {
			if phonetic.Text != "" {
				extract.Phonetic = phonetic.Text
				break
			}
		}
	}

	definitions := make([]string, 0)
	synonyms := make([]string, 0)
	partsOfSpeech := make([]string, 0)
	for _, meaning := range entry.Meanings {
		if pos := strings.ToLower(meaning.PartOfSpeech); pos != "" {
			partsOfSpeech = append(partsOfSpeech, pos)
		}
		for _, definition := range meaning.Definitions {
			if definition.Definition != "" {
				definitions = append(definitions, definition.Definition)
			}
			if extract.Example == "" && definition.Example != "" {
				extract.Example = definition.Example
			}
			synonyms = append(synonyms, definition.Synonyms...)
		}
		synonyms = append(synonyms, meaning.Synonyms...)
	}

	if len(definitions) > maxDefinitions {
		definitions = definitions[:maxDefinitions]
	}
	extract.Definitions = definitions

	normalized := lo.FilterMap(synonyms, func(s string, _ int) (string, bool) {
		n := word.Normalize(s)
		return n, n != ""
	})
	normalized = lo.Uniq(normalized)
	if len(normalized) > maxSynonyms {
		normalized = normalized[:maxSynonyms]
	}
	extract.Synonyms = normalized

	partsOfSpeech = lo.Uniq(partsOfSpeech)
	if len(partsOfSpeech) > maxPartsOfSpeech {
		partsOfSpeech = partsOfSpeech[:maxPartsOfSpeech]
	}
	extract.PartsOfSpeech = partsOfSpeech

	return extract
}
