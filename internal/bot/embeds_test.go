package bot

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicholasngai/dicky/internal/dictionary"
	"github.com/nicholasngai/dicky/internal/wordchain"
)

func TestClock(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 0, want: "0:00"},
		{in: 9 * time.Second, want: "0:09"},
		{in: 90 * time.Second, want: "1:30"},
		{in: 2 * time.Minute, want: "2:00"},
		{in: 1500 * time.Millisecond, want: "0:01"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, clock(tt.in))
		})
	}
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "40 seconds", humanDuration(40*time.Second))
	assert.Equal(t, "1 second", humanDuration(time.Second))
	assert.Equal(t, "1 minute", humanDuration(time.Minute))
	assert.Equal(t, "2 minutes", humanDuration(2*time.Minute))
	assert.Equal(t, "90 seconds", humanDuration(90*time.Second))
}

func TestDefinitionEmbed(t *testing.T) {
	t.Run("Groups definitions by part of speech", func(t *testing.T) {
		e := definitionEmbed(&dictionary.Entry{
			Word:     "run",
			Phonetic: "/ɹʌn/",
			Definitions: []dictionary.Definition{
				{PartOfSpeech: "verb", Text: "To move swiftly.", Example: "Run away!"},
				{PartOfSpeech: "noun", Text: "An act of running."},
				{PartOfSpeech: "verb", Text: "To manage."},
			},
			Synonyms: []string{"sprint", "dash"},
		})

		assert.Equal(t, "📖 Run", e.Title)
		assert.Equal(t, "🗣️ **Pronunciation:** `/ɹʌn/`", e.Description)
		require.Len(t, e.Fields, 3)
		assert.Equal(t, "⚡ Verb", e.Fields[0].Name)
		assert.Equal(t, "**1.** To move swiftly.\n💭 *\"Run away!\"*\n\n**2.** To manage.", e.Fields[0].Value)
		assert.Equal(t, "📄 Noun", e.Fields[1].Name)
		assert.Equal(t, "🔗 Synonyms", e.Fields[2].Name)
		assert.Equal(t, "sprint • dash", e.Fields[2].Value)
		assert.Equal(t, footerText, e.Footer.Text)
	})

	t.Run("Keeps fields within the length limit", func(t *testing.T) {
		long := strings.Repeat("x", 600)
		field := definitionField([]dictionary.Definition{
			{Text: long},
			{Text: long},
			{Text: "short"},
		})

		assert.LessOrEqual(t, len(field), maxFieldLength)
		assert.Contains(t, field, "**3.** short")
		assert.NotContains(t, field, "**2.**")
	})
}

func TestRelatedEmbed(t *testing.T) {
	t.Run("Truncates long lists", func(t *testing.T) {
		words := make([]string, 25)
		for i := range words {
			words[i] = fmt.Sprintf("w%d", i)
		}

		e := relatedEmbed(antonymsKind, "big", words)

		assert.Equal(t, "🔀 Antonyms for: Big", e.Title)
		assert.Equal(t, colorRed, e.Color)
		assert.Equal(t, 20, strings.Count(e.Description, "w"))
		require.Len(t, e.Fields, 1)
		assert.Equal(t, "Showing 20 out of 25 antonyms found.", e.Fields[0].Value)
	})

	t.Run("Reports empty lists", func(t *testing.T) {
		e := relatedEmbed(synonymsKind, "big", nil)

		assert.Equal(t, "❌ No synonyms found for this word.", e.Description)
	})
}

func TestGameEmbed(t *testing.T) {
	t.Run("Lobby lists players", func(t *testing.T) {
		e := gameEmbed(lobby("alice", "bob"))

		assert.Contains(t, e.Description, "You have 40 seconds per turn")
		assert.Contains(t, e.Description, "Game lasts 2 minutes")
		require.Len(t, e.Fields, 1)
		assert.Equal(t, "• alice\n• bob", e.Fields[0].Value)
	})

	t.Run("Progress shows word, timers and scores", func(t *testing.T) {
		s := inPlay("alice", "bob")
		s.Turn = 1
		s.Players[0].Score = 13
		s.GameElapsed = 30 * time.Second
		s.TurnElapsed = 15 * time.Second

		e := gameEmbed(s)

		assert.Equal(t, "**Current Word:** `APPLE`\n**Next word must start with: `E`**", e.Description)
		require.Len(t, e.Fields, 3)
		assert.Equal(t, "Game: 1:30\nTurn: 25s", e.Fields[0].Value)
		assert.Equal(t, "bob", e.Fields[1].Value)
		assert.Equal(t, "alice: 13 pts\nbob: 0 pts", e.Fields[2].Value)
	})

	t.Run("Results rank players with medals", func(t *testing.T) {
		s := inPlay("alice", "bob", "carol")
		s.State = wordchain.StateEnded
		s.Players[1].Score = 20
		s.Players[1].Words = []string{"eagle", "eel"}
		s.Players[0].Score = 5

		e := gameEmbed(s)

		require.Len(t, e.Fields, 2)
		assert.Equal(t, "🥇 bob: 20 points (2 words)\n🥈 alice: 5 points (0 words)\n🥉 carol: 0 points (0 words)", e.Fields[0].Value)
		assert.Equal(t, "eagle, eel", e.Fields[1].Value)
	})

	t.Run("Queue marks the current player", func(t *testing.T) {
		s := inPlay("alice", "bob")

		e := queueEmbed(s)

		assert.Equal(t, "▶️ alice (0 pts)\n⏸️ bob (0 pts)", e.Description)
		assert.Equal(t, "Game is not currently active", queueEmbed(lobby("alice")).Description)
	})
}

func TestHelpEmbed(t *testing.T) {
	e := helpEmbed(wordchain.DefaultSettings())

	require.Len(t, e.Fields, 5)
	assert.Contains(t, e.Fields[2].Value, "(20 seconds to join)")
	assert.Contains(t, e.Fields[2].Value, "Game lasts 2 minutes")
	assert.Contains(t, e.Fields[1].Value, "/play <word>")
}
