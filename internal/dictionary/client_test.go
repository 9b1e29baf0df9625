package dictionary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nicholasngai/dicky/testing/suite"
)

const happyEntry = `[{
	"word": "happy",
	"phonetics": [{"text": ""}, {"text": "/ˈhæpi/"}],
	"meanings": [
		{
			"partOfSpeech": "adjective",
			"synonyms": ["cheerful", "glad"],
			"antonyms": ["sad"],
			"definitions": [
				{"definition": "Having a feeling arising from a consciousness of well-being.", "example": "Happy is the man who is content.", "synonyms": ["glad", "joyful"]},
				{"definition": "Experiencing the effect of favourable fortune.", "antonyms": ["unhappy", "sad"]}
			]
		},
		{
			"partOfSpeech": "noun",
			"definitions": [{"definition": "A happy event, thing, or person."}]
		}
	],
	"sourceUrls": ["https://en.wiktionary.org/wiki/happy"]
}]`

var errProviderDown = errors.New("provider down")

// dictionaryServer serves entries by word and counts the requests it sees.
func dictionaryServer(t *testing.T, entries map[string]string) (*httptest.Server, *int32) {
	t.Helper()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)

		word := strings.TrimPrefix(r.URL.Path, "/")
		switch body, ok := entries[word]; {
		case word == "teapot":
			w.WriteHeader(http.StatusInternalServerError)
		case !ok:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"title":"No Definitions Found"}`))
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}
	}))
	t.Cleanup(srv.Close)

	return srv, &hits
}

type memoryCache struct {
	lock    sync.Mutex
	entries map[string][]byte
}

func (c *memoryCache) Get(_ context.Context, word string) ([]byte, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	body, ok := c.entries[word]
	if !ok {
		return nil, ErrCacheMiss
	}
	return body, nil
}

func (c *memoryCache) Set(_ context.Context, word string, body []byte) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.entries == nil {
		c.entries = make(map[string][]byte)
	}
	c.entries[word] = body
	return nil
}

type mockRelated struct {
	mock.Mock
}

func (m *mockRelated) Synonyms(ctx context.Context, word string) ([]string, error) {
	args := m.Called(ctx, word)
	words, _ := args.Get(0).([]string)
	return words, args.Error(1)
}

func (m *mockRelated) Antonyms(ctx context.Context, word string) ([]string, error) {
	args := m.Called(ctx, word)
	words, _ := args.Get(0).([]string)
	return words, args.Error(1)
}

func newTestClient(t *testing.T, opts ...Option) (*Client, *int32) {
	t.Helper()

	srv, hits := dictionaryServer(t, map[string]string{
		"happy": happyEntry,
		"blank": `[{"word": "blank", "meanings": []}]`,
	})
	return New(suite.Logger(), append([]Option{WithBaseURL(srv.URL)}, opts...)...), hits
}

func TestClient_Define(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns definitions and pronunciation", func(t *testing.T) {
		c, _ := newTestClient(t)

		e, err := c.Define(ctx, "  Happy ")

		require.NoError(t, err)
		assert.Equal(t, "happy", e.Word)
		assert.Equal(t, "/ˈhæpi/", e.Phonetic)
		require.Len(t, e.Definitions, 3)
		assert.Equal(t, "adjective", e.Definitions[0].PartOfSpeech)
		assert.Equal(t, "Happy is the man who is content.", e.Definitions[0].Example)
		assert.Equal(t, "noun", e.Definitions[2].PartOfSpeech)
		assert.Equal(t, []string{"https://en.wiktionary.org/wiki/happy"}, e.SourceURLs)
		assert.Empty(t, e.Synonyms)
	})

	t.Run("Unknown words are not found", func(t *testing.T) {
		c, _ := newTestClient(t)

		_, err := c.Define(ctx, "eqzzt")
		assert.ErrorIs(t, err, ErrWordNotFound)
		assert.NotErrorIs(t, err, ErrLookupFailed)
	})

	t.Run("Entries without definitions are not found", func(t *testing.T) {
		c, _ := newTestClient(t)

		_, err := c.Define(ctx, "blank")
		assert.ErrorIs(t, err, ErrWordNotFound)
	})

	t.Run("Server errors are lookup failures", func(t *testing.T) {
		c, _ := newTestClient(t)

		_, err := c.Define(ctx, "teapot")
		assert.ErrorIs(t, err, ErrLookupFailed)
		assert.NotErrorIs(t, err, ErrWordNotFound)
	})

	t.Run("Unreachable dictionary is a lookup failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c := New(suite.Logger(), WithBaseURL(srv.URL))

		_, err := c.Define(ctx, "happy")
		assert.ErrorIs(t, err, ErrLookupFailed)
	})

	t.Run("Empty input is not looked up", func(t *testing.T) {
		c, hits := newTestClient(t)

		_, err := c.Define(ctx, "   ")
		assert.ErrorIs(t, err, ErrWordNotFound)
		assert.Zero(t, atomic.LoadInt32(hits))
	})
}

func TestClient_Info(t *testing.T) {
	c, _ := newTestClient(t)

	e, err := c.Info(context.Background(), "happy")

	require.NoError(t, err)
	assert.Equal(t, []string{"cheerful", "glad", "joyful"}, e.Synonyms)
	assert.Equal(t, []string{"sad", "unhappy"}, e.Antonyms)
	assert.Len(t, e.Definitions, 3)
}

func TestClient_Exists(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	ok, err := c.Exists(ctx, "happy")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Exists(ctx, "eqzzt")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.Exists(ctx, "teapot")
	assert.ErrorIs(t, err, ErrLookupFailed)
	assert.False(t, ok)
}

func TestClient_Related(t *testing.T) {
	ctx := context.Background()

	t.Run("Falls back to definition data", func(t *testing.T) {
		c, _ := newTestClient(t)

		synonyms, err := c.Synonyms(ctx, "happy")
		require.NoError(t, err)
		assert.Equal(t, []string{"cheerful", "glad", "joyful"}, synonyms)

		antonyms, err := c.Antonyms(ctx, "happy")
		require.NoError(t, err)
		assert.Equal(t, []string{"sad", "unhappy"}, antonyms)
	})

	t.Run("Reports empty results", func(t *testing.T) {
		srv, _ := dictionaryServer(t, map[string]string{
			"stone": `[{"word": "stone", "meanings": [{"partOfSpeech": "noun", "definitions": [{"definition": "A hard earthen substance."}]}]}]`,
		})
		c := New(suite.Logger(), WithBaseURL(srv.URL))

		_, err := c.Synonyms(ctx, "stone")
		assert.ErrorIs(t, err, ErrNoSynonyms)
		_, err = c.Antonyms(ctx, "stone")
		assert.ErrorIs(t, err, ErrNoAntonyms)
	})

	t.Run("Prefers the related provider", func(t *testing.T) {
		// Given
		related := &mockRelated{}
		related.On("Synonyms", mock.Anything, "happy").Return([]string{"content", "merry"}, nil).Once()
		c, hits := newTestClient(t, WithRelatedProvider(related))

		// When
		synonyms, err := c.Synonyms(ctx, " Happy")

		// Then
		require.NoError(t, err)
		assert.Equal(t, []string{"content", "merry"}, synonyms)
		assert.Zero(t, atomic.LoadInt32(hits))
		related.AssertExpectations(t)
	})

	t.Run("Falls back when the provider fails", func(t *testing.T) {
		related := &mockRelated{}
		related.On("Antonyms", mock.Anything, "happy").Return(nil, errProviderDown).Once()
		c, _ := newTestClient(t, WithRelatedProvider(related))

		antonyms, err := c.Antonyms(ctx, "happy")

		require.NoError(t, err)
		assert.Equal(t, []string{"sad", "unhappy"}, antonyms)
		related.AssertExpectations(t)
	})

	t.Run("Falls back when the provider has nothing", func(t *testing.T) {
		related := &mockRelated{}
		related.On("Synonyms", mock.Anything, "happy").Return([]string{}, nil).Once()
		c, _ := newTestClient(t, WithRelatedProvider(related))

		synonyms, err := c.Synonyms(ctx, "happy")

		require.NoError(t, err)
		assert.Equal(t, []string{"cheerful", "glad", "joyful"}, synonyms)
	})
}

func TestClient_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("Serves repeated lookups from the cache", func(t *testing.T) {
		// Given
		cache := &memoryCache{}
		c, hits := newTestClient(t, WithCache(cache))

		// When
		_, err := c.Define(ctx, "happy")
		require.NoError(t, err)
		ok, err := c.Exists(ctx, "HAPPY")
		require.NoError(t, err)

		// Then
		assert.True(t, ok)
		assert.EqualValues(t, 1, atomic.LoadInt32(hits))
		assert.Contains(t, cache.entries, "happy")
	})

	t.Run("Misses are not cached", func(t *testing.T) {
		cache := &memoryCache{}
		c, hits := newTestClient(t, WithCache(cache))

		for i := 0; i < 2; i++ {
			ok, err := c.Exists(ctx, "eqzzt")
			require.NoError(t, err)
			assert.False(t, ok)
		}

		assert.EqualValues(t, 2, atomic.LoadInt32(hits))
		assert.Empty(t, cache.entries)
	})
}

func TestWordsAPI(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-RapidAPI-Key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/happy/synonyms":
			_, _ = w.Write([]byte(`{"word": "happy", "synonyms": ["felicitous", "glad", "glad"]}`))
		case "/happy/antonyms":
			_, _ = w.Write([]byte(`{"word": "happy", "antonyms": ["unhappy"]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	t.Run("Fetches related words", func(t *testing.T) {
		api := NewWordsAPI("secret", srv.URL+"/", srv.Client())

		synonyms, err := api.Synonyms(ctx, "happy")
		require.NoError(t, err)
		assert.Equal(t, []string{"felicitous", "glad"}, synonyms)

		antonyms, err := api.Antonyms(ctx, "happy")
		require.NoError(t, err)
		assert.Equal(t, []string{"unhappy"}, antonyms)
	})

	t.Run("Maps status codes", func(t *testing.T) {
		api := NewWordsAPI("secret", srv.URL+"/", srv.Client())
		_, err := api.Synonyms(ctx, "eqzzt")
		assert.ErrorIs(t, err, ErrWordNotFound)

		api = NewWordsAPI("wrong", srv.URL+"/", srv.Client())
		_, err = api.Synonyms(ctx, "happy")
		assert.ErrorIs(t, err, ErrLookupFailed)
	})
}
