package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en/"
	DefaultTimeout = 5 * time.Second

	maxBodySize = 1 << 20
)

// Client looks words up in the free dictionary API. Synonyms and antonyms
// come from WordsAPI when it is configured, and from the definition data
// otherwise.
type Client struct {
	log     logrus.FieldLogger
	baseURL string
	http    *http.Client
	related RelatedProvider
	cache   Cache
}

// RelatedProvider is a richer source of synonyms and antonyms.
type RelatedProvider interface {
	Synonyms(ctx context.Context, word string) ([]string, error)
	Antonyms(ctx context.Context, word string) ([]string, error)
}

type Option func(c *Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		c.baseURL = baseURL
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithRelatedProvider(p RelatedProvider) Option {
	return func(c *Client) { c.related = p }
}

func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

func New(log logrus.FieldLogger, opts ...Option) *Client {
	c := &Client{
		log:     log,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Define returns the word's definitions and pronunciation.
func (c *Client) Define(ctx context.Context, word string) (*Entry, error) {
	e, err := c.fetch(ctx, word)
	if err != nil {
		return nil, err
	}

	defs := e.definitions()
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no definitions for %q", ErrWordNotFound, word)
	}

	return &Entry{
		Word:        e.Word,
		Phonetic:    e.phonetic(),
		Definitions: defs,
		SourceURLs:  e.SourceURLs,
	}, nil
}

// Info is Define plus a few synonyms and antonyms.
func (c *Client) Info(ctx context.Context, word string) (*Entry, error) {
	e, err := c.fetch(ctx, word)
	if err != nil {
		return nil, err
	}

	return &Entry{
		Word:        e.Word,
		Phonetic:    e.phonetic(),
		Definitions: e.definitions(),
		Synonyms:    limit(e.synonyms(), maxRelated),
		Antonyms:    limit(e.antonyms(), maxRelated),
		SourceURLs:  e.SourceURLs,
	}, nil
}

// Exists reports whether the dictionary knows word. Only failures to reach
// the dictionary are returned as errors.
func (c *Client) Exists(ctx context.Context, word string) (bool, error) {
	_, err := c.fetch(ctx, word)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrWordNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (c *Client) Synonyms(ctx context.Context, word string) ([]string, error) {
	if c.related != nil {
		words, err := c.related.Synonyms(ctx, normalize(word))
		if err == nil && len(words) > 0 {
			return words, nil
		}
		if err != nil {
			c.log.WithError(err).WithField("word", word).Warnln("Synonym provider failed, using definitions")
		}
	}

	e, err := c.fetch(ctx, word)
	if err != nil {
		return nil, err
	}

	words := e.synonyms()
	if len(words) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoSynonyms, word)
	}
	return words, nil
}

func (c *Client) Antonyms(ctx context.Context, word string) ([]string, error) {
	if c.related != nil {
		words, err := c.related.Antonyms(ctx, normalize(word))
		if err == nil && len(words) > 0 {
			return words, nil
		}
		if err != nil {
			c.log.WithError(err).WithField("word", word).Warnln("Antonym provider failed, using definitions")
		}
	}

	e, err := c.fetch(ctx, word)
	if err != nil {
		return nil, err
	}

	words := e.antonyms()
	if len(words) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoAntonyms, word)
	}
	return words, nil
}

func (c *Client) fetch(ctx context.Context, word string) (*apiEntry, error) {
	word = normalize(word)
	if word == "" {
		return nil, fmt.Errorf("%w: empty word", ErrWordNotFound)
	}

	body := c.cached(ctx, word)
	if body == nil {
		var err error
		if body, err = c.get(ctx, word); err != nil {
			return nil, err
		}
		c.store(ctx, word, body)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("%w: could not decode entry for %q: %w", ErrLookupFailed, word, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrWordNotFound, word)
	}

	return &entries[0], nil
}

func (c *Client) get(ctx context.Context, word string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+url.PathEscape(word), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %q", ErrWordNotFound, word)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: dictionary returned status %d", ErrLookupFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrLookupFailed, err)
	}
	return body, nil
}

func (c *Client) cached(ctx context.Context, word string) []byte {
	if c.cache == nil {
		return nil
	}

	body, err := c.cache.Get(ctx, word)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.log.WithError(err).WithField("word", word).Warnln("Dictionary cache read failed")
		}
		return nil
	}
	return body
}

func (c *Client) store(ctx context.Context, word string, body []byte) {
	if c.cache == nil {
		return
	}

	if err := c.cache.Set(ctx, word, body); err != nil {
		c.log.WithError(err).WithField("word", word).Warnln("Dictionary cache write failed")
	}
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
