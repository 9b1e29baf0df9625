package wordchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{word: "hello", want: 8},
		{word: "elephant", want: 13},
		{word: "tree", want: 4},
		{word: "quiz", want: 22},
		{word: "HELLO", want: 8},
		{word: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.word))
		})
	}

	t.Run("Characters outside the table score one point", func(t *testing.T) {
		// Given: a word with a character that has no letter value
		word := "a1"

		// When: scoring it
		points := Score(word)

		// Then: the unknown character is worth 1
		assert.Equal(t, 2, points)
	})
}
