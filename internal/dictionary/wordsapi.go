package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	DefaultWordsAPIURL = "https://wordsapiv1.p.rapidapi.com/words/"
	wordsAPIHost       = "wordsapiv1.p.rapidapi.com"
)

// WordsAPI is the key-gated synonym and antonym provider.
type WordsAPI struct {
	key     string
	baseURL string
	http    *http.Client
}

func NewWordsAPI(key, baseURL string, h *http.Client) *WordsAPI {
	if baseURL == "" {
		baseURL = DefaultWordsAPIURL
	}
	if h == nil {
		h = &http.Client{Timeout: DefaultTimeout}
	}
	return &WordsAPI{key: key, baseURL: baseURL, http: h}
}

func (w *WordsAPI) Synonyms(ctx context.Context, word string) ([]string, error) {
	var resp struct {
		Synonyms []string `json:"synonyms"`
	}
	if err := w.get(ctx, word, "synonyms", &resp); err != nil {
		return nil, err
	}
	return unique(resp.Synonyms), nil
}

func (w *WordsAPI) Antonyms(ctx context.Context, word string) ([]string, error) {
	var resp struct {
		Antonyms []string `json:"antonyms"`
	}
	if err := w.get(ctx, word, "antonyms", &resp); err != nil {
		return nil, err
	}
	return unique(resp.Antonyms), nil
}

func (w *WordsAPI) get(ctx context.Context, word, relation string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+url.PathEscape(word)+"/"+relation, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	req.Header.Set("X-RapidAPI-Key", w.key)
	req.Header.Set("X-RapidAPI-Host", wordsAPIHost)

	resp, err := w.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %q", ErrWordNotFound, word)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: words api returned status %d", ErrLookupFailed, resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s for %q: %w", ErrLookupFailed, relation, word, err)
	}
	return nil
}
