package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/nicholasngai/dicky/internal/dictionary"
	"github.com/nicholasngai/dicky/internal/wordchain"
)

const (
	colorBrand = 0x5865F2
	colorGreen = 0x57F287
	colorRed   = 0xED4245
	colorQueue = 0x00FF00

	footerText = "📚 Dicky : Dictionary key ✨"

	maxFieldLength  = 1024
	maxRelatedShown = 20
	maxWordsShown   = 10
)

var partOfSpeechEmoji = map[string]string{
	"noun":         "📄",
	"verb":         "⚡",
	"adjective":    "🎨",
	"adverb":       "🔄",
	"pronoun":      "👤",
	"preposition":  "🔗",
	"conjunction":  "➕",
	"interjection": "❗",
}

func newEmbed(color int, title string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:     color,
		Title:     title,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func withFooter(e *discordgo.MessageEmbed) *discordgo.MessageEmbed {
	e.Footer = &discordgo.MessageEmbedFooter{Text: footerText}
	return e
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func definitionEmbed(entry *dictionary.Entry) *discordgo.MessageEmbed {
	e := newEmbed(colorBrand, "📖 "+capitalize(entry.Word))
	if entry.Phonetic != "" {
		e.Description = fmt.Sprintf("🗣️ **Pronunciation:** `%s`", entry.Phonetic)
	}

	// Group by part of speech, in order of first appearance.
	var order []string
	grouped := make(map[string][]dictionary.Definition)
	for _, d := range entry.Definitions {
		if _, ok := grouped[d.PartOfSpeech]; !ok {
			order = append(order, d.PartOfSpeech)
		}
		grouped[d.PartOfSpeech] = append(grouped[d.PartOfSpeech], d)
	}

	for _, pos := range order {
		value := definitionField(grouped[pos])
		if value == "" {
			continue
		}
		emoji, ok := partOfSpeechEmoji[pos]
		if !ok {
			emoji = "📝"
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  emoji + " " + capitalize(pos),
			Value: value,
		})
	}

	if len(entry.Synonyms) > 0 {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   "🔗 Synonyms",
			Value:  strings.Join(entry.Synonyms, " • "),
			Inline: true,
		})
	}
	if len(entry.Antonyms) > 0 {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   "🔀 Antonyms",
			Value:  strings.Join(entry.Antonyms, " • "),
			Inline: true,
		})
	}

	return withFooter(e)
}

// definitionField numbers the definitions, dropping any that would push the
// field past Discord's length limit.
func definitionField(defs []dictionary.Definition) string {
	var parts []string
	length := 0
	for i, d := range defs {
		part := fmt.Sprintf("**%d.** %s", i+1, d.Text)
		if d.Example != "" {
			part += fmt.Sprintf("\n💭 *\"%s\"*", d.Example)
		}
		if length+len(part)+2 > maxFieldLength {
			continue
		}
		parts = append(parts, part)
		length += len(part) + 2
	}
	return strings.Join(parts, "\n\n")
}

type relatedKind int

const (
	synonymsKind relatedKind = iota
	antonymsKind
)

func relatedEmbed(kind relatedKind, word string, words []string) *discordgo.MessageEmbed {
	var e *discordgo.MessageEmbed
	var icon, noun string
	switch kind {
	case synonymsKind:
		e, icon, noun = newEmbed(colorGreen, "🔗 Synonyms for: "+capitalize(word)), "✨", "synonyms"
	case antonymsKind:
		e, icon, noun = newEmbed(colorRed, "🔀 Antonyms for: "+capitalize(word)), "⚡", "antonyms"
	}

	if len(words) == 0 {
		e.Description = fmt.Sprintf("❌ No %s found for this word.", noun)
		return withFooter(e)
	}

	shown := words
	if len(shown) > maxRelatedShown {
		shown = shown[:maxRelatedShown]
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "📝 Note",
			Value: fmt.Sprintf("Showing %d out of %d %s found.", maxRelatedShown, len(words), noun),
		})
	}
	e.Description = icon + " " + strings.Join(shown, " • ")

	return withFooter(e)
}

func errorEmbed(msg string) *discordgo.MessageEmbed {
	e := newEmbed(colorRed, "❌ Oops! Something went wrong")
	e.Description = "🔍 " + msg
	return withFooter(e)
}

func helpEmbed(settings wordchain.Settings) *discordgo.MessageEmbed {
	e := newEmbed(colorBrand, "📚 Dicky : Dictionary key ✨ - Command Guide")
	e.Description = "🌟 **Welcome!** Here are all the slash commands you can use:"
	e.Fields = []*discordgo.MessageEmbedField{
		{
			Name: "📖 Dictionary Commands",
			Value: "• `/define <word>` - Get a comprehensive definition\n" +
				"• `/synonyms <word>` - Find similar words\n" +
				"• `/antonyms <word>` - Find opposite words\n" +
				"• `/word <word>` - Get complete word info",
		},
		{
			Name: "🔤 Word Chain Game Commands",
			Value: "• `/start-wordchain` - Start a new word chain game\n" +
				"• `/join-game` - Join the current game\n" +
				"• `/leave-game` - Leave the game (before it starts)\n" +
				"• `/game-status` - Check current game status\n" +
				"• `/play <word>` - Submit a word during the game\n" +
				"• `/stop-wordchain` - Stop the game in this channel",
		},
		{
			Name: "🎮 How to Play Word Chain",
			Value: fmt.Sprintf("1️⃣ Someone starts a game with `/start-wordchain`\n"+
				"2️⃣ Players join with `/join-game` (%s to join)\n"+
				"3️⃣ Make words starting with the last letter of previous word\n"+
				"4️⃣ Each letter has points (Z=10, Q=10, A=1, etc.)\n"+
				"5️⃣ Game lasts %s, highest score wins!",
				humanDuration(settings.JoinWindow), humanDuration(settings.GameDuration)),
		},
		{
			Name:  "❓ Other Commands",
			Value: "• `/help` - Show this help guide",
		},
		{
			Name: "💡 Pro Tips",
			Value: "🚀 Use **slash commands** (`/`) for the best experience!\n" +
				"🎯 While a game is running you can also just type your word\n" +
				"✨ Simply type `/` to see all available commands",
		},
	}
	e.Footer = &discordgo.MessageEmbedFooter{Text: footerText + " • Made with ❤️"}
	return e
}

// gameEmbed renders a game in whatever state it is in.
func gameEmbed(s wordchain.Snapshot) *discordgo.MessageEmbed {
	switch s.State {
	case wordchain.StateWaiting:
		return lobbyEmbed(s)
	case wordchain.StatePlaying:
		return progressEmbed(s)
	case wordchain.StateEnded:
		return resultsEmbed(s)
	}
	return newEmbed(colorBrand, "🔤 Word Chain Game")
}

func lobbyEmbed(s wordchain.Snapshot) *discordgo.MessageEmbed {
	e := newEmbed(colorBrand, "🔤 Word Chain Game - Waiting for Players")
	e.Description = fmt.Sprintf("Use `/join-game` to join the game!\n\n**How to play:**\n"+
		"• Make a word that starts with the last letter of the previous word\n"+
		"• You have %s per turn\n"+
		"• Each letter has points based on rarity (Z=10, Q=10, A=1, etc.)\n"+
		"• Game lasts %s",
		humanDuration(s.TurnDuration), humanDuration(s.GameDuration))

	value := "No players yet"
	if len(s.Players) > 0 {
		names := make([]string, len(s.Players))
		for i, p := range s.Players {
			names[i] = "• " + p.Username
		}
		value = strings.Join(names, "\n")
	}
	e.Fields = []*discordgo.MessageEmbedField{{Name: "👥 Players", Value: value}}
	return e
}

func progressEmbed(s wordchain.Snapshot) *discordgo.MessageEmbed {
	e := newEmbed(colorBrand, "🔤 Word Chain Game - In Progress")
	e.Description = fmt.Sprintf("**Current Word:** `%s`\n**Next word must start with: `%s`**",
		strings.ToUpper(s.CurrentWord), strings.ToUpper(s.RequiredLetter))

	current := "Unknown"
	if p, ok := s.Current(); ok {
		current = p.Username
	}

	scores := make([]string, 0, len(s.Players))
	for _, p := range s.Ranking() {
		scores = append(scores, fmt.Sprintf("%s: %d pts", p.Username, p.Score))
	}
	scoreText := strings.Join(scores, "\n")
	if scoreText == "" {
		scoreText = "No scores yet"
	}

	e.Fields = []*discordgo.MessageEmbedField{
		{
			Name: "⏰ Time Remaining",
			Value: fmt.Sprintf("Game: %s\nTurn: %ds",
				clock(s.GameRemaining()), int(s.TurnRemaining()/time.Second)),
			Inline: true,
		},
		{Name: "🎯 Current Turn", Value: current, Inline: true},
		{Name: "📊 Scores", Value: scoreText},
	}
	return e
}

var medals = []string{"🥇", "🥈", "🥉"}

func resultsEmbed(s wordchain.Snapshot) *discordgo.MessageEmbed {
	e := newEmbed(colorBrand, "🏆 Word Chain Game - Results")
	e.Description = "Game finished!"

	ranking := s.Ranking()
	lines := make([]string, len(ranking))
	for i, p := range ranking {
		medal := "🏅"
		if i < len(medals) {
			medal = medals[i]
		}
		lines[i] = fmt.Sprintf("%s %s: %d points (%d words)", medal, p.Username, p.Score, len(p.Words))
	}
	value := strings.Join(lines, "\n")
	if value == "" {
		value = "No players"
	}
	e.Fields = []*discordgo.MessageEmbedField{{Name: "🥇 Final Scores", Value: value}}

	if len(ranking) > 0 && len(ranking[0].Words) > 0 {
		words := ranking[0].Words
		more := ""
		if len(words) > maxWordsShown {
			words, more = words[:maxWordsShown], "..."
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "📝 Words Used",
			Value: strings.Join(words, ", ") + more,
		})
	}
	return e
}

func queueEmbed(s wordchain.Snapshot) *discordgo.MessageEmbed {
	e := newEmbed(colorQueue, "📋 Turn Queue")
	if s.State != wordchain.StatePlaying {
		e.Description = "Game is not currently active"
		return e
	}

	lines := make([]string, len(s.Players))
	for i, p := range s.Players {
		indicator := "⏸️"
		if i == s.Turn {
			indicator = "▶️"
		}
		lines[i] = fmt.Sprintf("%s %s (%d pts)", indicator, p.Username, p.Score)
	}
	e.Description = strings.Join(lines, "\n")
	if e.Description == "" {
		e.Description = "No players in queue"
	}
	return e
}

// clock formats d as m:ss.
func clock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// humanDuration formats d as "40 seconds" or "2 minutes".
func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Minute && d%time.Minute == 0:
		if d == time.Minute {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", d/time.Minute)
	case d == time.Second:
		return "1 second"
	default:
		return fmt.Sprintf("%d seconds", d/time.Second)
	}
}
