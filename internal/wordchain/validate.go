package wordchain

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Reason classifies why a submission was refused.
type Reason int

const (
	ReasonNotPlaying Reason = iota + 1
	ReasonNotYourTurn
	ReasonWrongLetter
	ReasonDuplicate
	ReasonInvalidCharacters
	ReasonTooShort
	ReasonNotAWord
	ReasonUnverified
)

func (r Reason) String() string {
	switch r {
	case ReasonNotPlaying:
		return "not-playing"
	case ReasonNotYourTurn:
		return "not-your-turn"
	case ReasonWrongLetter:
		return "wrong-letter"
	case ReasonDuplicate:
		return "duplicate"
	case ReasonInvalidCharacters:
		return "invalid-characters"
	case ReasonTooShort:
		return "too-short"
	case ReasonNotAWord:
		return "not-a-word"
	case ReasonUnverified:
		return "unverified"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Rejection is the user-facing outcome of a refused submission.
type Rejection struct {
	Reason  Reason
	Message string
}

func reject(reason Reason, format string, args ...interface{}) *Rejection {
	return &Rejection{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Checker reports whether a word exists in the dictionary.
type Checker interface {
	Exists(ctx context.Context, word string) (bool, error)
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, word string) (bool, error)

func (f CheckerFunc) Exists(ctx context.Context, word string) (bool, error) {
	return f(ctx, word)
}

var lettersOnly = regexp.MustCompile(`^[a-zA-Z]+$`)

const minWordLength = 2

// Normalize lower-cases and trims a candidate word.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// RequiredLetter is the letter the next word must start with.
func RequiredLetter(currentWord string) string {
	w := Normalize(currentWord)
	if w == "" {
		return ""
	}
	return w[len(w)-1:]
}

// CheckRules runs the local checks of the pipeline in order and returns the
// normalized word. used reports whether a normalized word was already played.
func CheckRules(currentWord string, used func(string) bool, word string) (string, *Rejection) {
	w := Normalize(word)

	required := RequiredLetter(currentWord)
	if !strings.HasPrefix(w, required) || w == "" {
		return w, reject(ReasonWrongLetter, "Word must start with %q", strings.ToUpper(required))
	}
	if used(w) {
		return w, reject(ReasonDuplicate, "This word has already been used!")
	}
	if !lettersOnly.MatchString(w) {
		return w, reject(ReasonInvalidCharacters, "Word must contain only letters!")
	}
	if len(w) < minWordLength {
		return w, reject(ReasonTooShort, "Word must be at least %d characters long!", minWordLength)
	}

	return w, nil
}

// Validate runs the full pipeline, including the dictionary check. A checker
// error rejects the word and is also returned so callers can report the outage.
func Validate(ctx context.Context, currentWord string, used func(string) bool, word string, checker Checker) (string, *Rejection, error) {
	w, rejection := CheckRules(currentWord, used, word)
	if rejection != nil {
		return w, rejection, nil
	}

	rejection, err := checkDictionary(ctx, checker, w)
	return w, rejection, err
}

func checkDictionary(ctx context.Context, checker Checker, word string) (*Rejection, error) {
	if checker == nil {
		return nil, nil
	}

	ok, err := checker.Exists(ctx, word)
	if err != nil {
		return reject(ReasonUnverified, "Could not verify %q, so it does not count as a valid word.", word),
			fmt.Errorf("dictionary check for %q: %w", word, err)
	}
	if !ok {
		return reject(ReasonNotAWord, "%q is not a real word!", word), nil
	}

	return nil, nil
}
