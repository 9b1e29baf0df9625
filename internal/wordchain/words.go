package wordchain

// StartingWords seeds the chain when a game begins.
var StartingWords = []string{
	"apple", "elephant", "tiger", "rabbit", "orange", "unicorn", "dragon", "phoenix",
	"butterfly", "mountain", "ocean", "forest", "castle", "garden", "rainbow", "thunder",
	"whisper", "crystal", "mystery", "adventure", "treasure", "journey", "sunset", "melody",
}
