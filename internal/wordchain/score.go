package wordchain

// LetterPoints maps each letter to its value. Rare letters are worth more.
var LetterPoints = map[rune]int{
	'a': 1, 'b': 3, 'c': 3, 'd': 2, 'e': 1, 'f': 4, 'g': 2, 'h': 4, 'i': 1, 'j': 8,
	'k': 5, 'l': 1, 'm': 3, 'n': 1, 'o': 1, 'p': 3, 'q': 10, 'r': 1, 's': 1, 't': 1,
	'u': 1, 'v': 4, 'w': 4, 'x': 8, 'y': 4, 'z': 10,
}

// Score returns the sum of the letter values of word. Characters without an
// entry in LetterPoints are worth 1.
func Score(word string) int {
	points := 0
	for _, c := range Normalize(word) {
		if v, ok := LetterPoints[c]; ok {
			points += v
		} else {
			points++
		}
	}
	return points
}
