package dictionary

import "errors"

var (
	ErrWordNotFound = errors.New("word not found")
	ErrLookupFailed = errors.New("lookup failed")
	ErrNoSynonyms   = errors.New("no synonyms found")
	ErrNoAntonyms   = errors.New("no antonyms found")
)

const (
	maxDefinitions = 10
	maxRelated     = 5
)

// Entry is a dictionary entry reduced to what the bot displays.
type Entry struct {
	Word        string
	Phonetic    string
	Definitions []Definition
	Synonyms    []string
	Antonyms    []string
	SourceURLs  []string
}

type Definition struct {
	PartOfSpeech string
	Text         string
	Example      string
}

// apiEntry mirrors one element of the dictionaryapi.dev response.
type apiEntry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text string `json:"text"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string   `json:"partOfSpeech"`
		Synonyms     []string `json:"synonyms"`
		Antonyms     []string `json:"antonyms"`
		Definitions  []struct {
			Definition string   `json:"definition"`
			Example    string   `json:"example"`
			Synonyms   []string `json:"synonyms"`
			Antonyms   []string `json:"antonyms"`
		} `json:"definitions"`
	} `json:"meanings"`
	SourceURLs []string `json:"sourceUrls"`
}

func (e *apiEntry) phonetic() string {
	if e.Phonetic != "" {
		return e.Phonetic
	}
	for _, p := range e.Phonetics {
		if p.Text != "" {
			return p.Text
		}
	}
	return ""
}

func (e *apiEntry) definitions() []Definition {
	var defs []Definition
	for _, m := range e.Meanings {
		for _, d := range m.Definitions {
			if d.Definition == "" {
				continue
			}
			defs = append(defs, Definition{
				PartOfSpeech: m.PartOfSpeech,
				Text:         d.Definition,
				Example:      d.Example,
			})
		}
	}
	if len(defs) > maxDefinitions {
		defs = defs[:maxDefinitions]
	}
	return defs
}

// synonyms collects meaning- and definition-level synonyms, de-duplicated in
// order of appearance.
func (e *apiEntry) synonyms() []string {
	var all []string
	for _, m := range e.Meanings {
		all = append(all, m.Synonyms...)
		for _, d := range m.Definitions {
			all = append(all, d.Synonyms...)
		}
	}
	return unique(all)
}

func (e *apiEntry) antonyms() []string {
	var all []string
	for _, m := range e.Meanings {
		all = append(all, m.Antonyms...)
		for _, d := range m.Definitions {
			all = append(all, d.Antonyms...)
		}
	}
	return unique(all)
}

func unique(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok || w == "" {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func limit(words []string, n int) []string {
	if len(words) > n {
		return words[:n]
	}
	return words
}
