package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/nicholasngai/dicky/internal/dictionary"
	"github.com/nicholasngai/dicky/internal/wordchain"
)

const (
	wordOption  = "word"
	playCommand = "play"
)

type command struct {
	def  *discordgo.ApplicationCommand
	slow bool
	// check, when set, may answer a slow command before it is deferred.
	// Deferred replies cannot be made private afterwards.
	check func(b *Bot, req request) (response, bool)
	run   func(b *Bot, ctx context.Context, req request) response
}

func wordCommand(name, description, optionDescription string) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        name,
		Description: description,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        wordOption,
				Description: optionDescription,
				Required:    true,
			},
		},
	}
}

var commandTable = []*command{
	{
		def:  wordCommand("define", "Get the definition of a word", "The word to define"),
		slow: true,
		run:  (*Bot).define,
	},
	{
		def:  wordCommand("synonyms", "Get synonyms for a word", "The word to find synonyms for"),
		slow: true,
		run:  (*Bot).synonyms,
	},
	{
		def:  wordCommand("antonyms", "Get antonyms for a word", "The word to find antonyms for"),
		slow: true,
		run:  (*Bot).antonyms,
	},
	{
		def: wordCommand("word", "Get complete information about a word (definition, synonyms, antonyms)",
			"The word to get complete information about"),
		slow: true,
		run:  (*Bot).wordInfo,
	},
	{
		def: &discordgo.ApplicationCommand{Name: "start-wordchain", Description: "Start a new word chain game"},
		run: (*Bot).startGame,
	},
	{
		def: &discordgo.ApplicationCommand{Name: "join-game", Description: "Join the current word chain game"},
		run: (*Bot).joinGame,
	},
	{
		def: &discordgo.ApplicationCommand{
			Name:        "leave-game",
			Description: "Leave the current word chain game (only works before game starts)",
		},
		run: (*Bot).leaveGame,
	},
	{
		def: &discordgo.ApplicationCommand{Name: "game-status", Description: "Show the current word chain game status"},
		run: (*Bot).gameStatus,
	},
	{
		def:  wordCommand(playCommand, "Play a word in the current word chain game", "The word to play"),
		slow:  true,
		check: (*Bot).checkPlay,
		run:   (*Bot).play,
	},
	{
		def: &discordgo.ApplicationCommand{Name: "stop-wordchain", Description: "Stop the word chain game in this channel"},
		run: (*Bot).stopGame,
	},
	{
		def: &discordgo.ApplicationCommand{Name: "help", Description: "Show all available commands"},
		run: (*Bot).help,
	},
}

// Definitions returns the slash commands to register with Discord.
func Definitions() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, len(commandTable))
	for i, c := range commandTable {
		defs[i] = c.def
	}
	return defs
}

func usage(action, name string) response {
	return response{Embeds: []*discordgo.MessageEmbed{
		errorEmbed(fmt.Sprintf("Please provide a word to %s!\nUsage: `/%s <word>`", action, name)),
	}}
}

func lookupError(err error, word, what string) response {
	var msg string
	switch {
	case errors.Is(err, dictionary.ErrWordNotFound):
		msg = fmt.Sprintf("The word %q was not found. Please check the spelling and try again.", word)
	case errors.Is(err, dictionary.ErrNoSynonyms), errors.Is(err, dictionary.ErrNoAntonyms):
		msg = fmt.Sprintf("No %s found for %q. Try a different word or check the spelling.", what, word)
	default:
		msg = fmt.Sprintf("Could not find %s for %q. Please try again later.", what, word)
	}
	return response{Embeds: []*discordgo.MessageEmbed{errorEmbed(msg)}}
}

func (b *Bot) define(ctx context.Context, req request) response {
	word := strings.ToLower(strings.TrimSpace(req.Word))
	if word == "" {
		return usage("define", "define")
	}

	entry, err := b.dict.Define(ctx, word)
	if err != nil {
		b.logLookup(err, "define", word)
		return lookupError(err, word, "a definition")
	}
	return response{Embeds: []*discordgo.MessageEmbed{definitionEmbed(entry)}}
}

func (b *Bot) wordInfo(ctx context.Context, req request) response {
	word := strings.ToLower(strings.TrimSpace(req.Word))
	if word == "" {
		return usage("get information about", "word")
	}

	entry, err := b.dict.Info(ctx, word)
	if err != nil {
		b.logLookup(err, "word", word)
		return lookupError(err, word, "information")
	}
	return response{Embeds: []*discordgo.MessageEmbed{definitionEmbed(entry)}}
}

func (b *Bot) synonyms(ctx context.Context, req request) response {
	word := strings.ToLower(strings.TrimSpace(req.Word))
	if word == "" {
		return usage("find synonyms for", "synonyms")
	}

	words, err := b.dict.Synonyms(ctx, word)
	if err != nil {
		b.logLookup(err, "synonyms", word)
		return lookupError(err, word, "synonyms")
	}
	return response{Embeds: []*discordgo.MessageEmbed{relatedEmbed(synonymsKind, word, words)}}
}

func (b *Bot) antonyms(ctx context.Context, req request) response {
	word := strings.ToLower(strings.TrimSpace(req.Word))
	if word == "" {
		return usage("find antonyms for", "antonyms")
	}

	words, err := b.dict.Antonyms(ctx, word)
	if err != nil {
		b.logLookup(err, "antonyms", word)
		return lookupError(err, word, "antonyms")
	}
	return response{Embeds: []*discordgo.MessageEmbed{relatedEmbed(antonymsKind, word, words)}}
}

func (b *Bot) logLookup(err error, command, word string) {
	if errors.Is(err, dictionary.ErrLookupFailed) {
		b.log.WithError(err).WithField("command", command).WithField("word", word).Warnln("Dictionary lookup failed")
	}
}

func ephemeral(content string) response {
	return response{Content: content, Ephemeral: true}
}

func (b *Bot) startGame(_ context.Context, req request) response {
	s, err := b.games.Open(req.ChannelID, req.UserID, req.Username)
	if errors.Is(err, wordchain.ErrGameExists) {
		if s.State == wordchain.StatePlaying {
			return ephemeral("❌ There is already a word chain game in progress in this channel!")
		}
		return ephemeral("❌ There is already a word chain game waiting for players in this channel!")
	}
	if err != nil {
		return ephemeral("❌ Could not start a game right now.")
	}

	return response{
		Content: fmt.Sprintf("🎮 **Word Chain Game Starting!**\n\n"+
			"⏰ Players have **%s** to join using `/join-game` or the buttons below\n"+
			"🎯 Game will start automatically when enough players join!",
			humanDuration(b.games.Settings().JoinWindow)),
		Embeds:     []*discordgo.MessageEmbed{gameEmbed(s)},
		Components: lobbyComponents(),
	}
}

func (b *Bot) joinGame(_ context.Context, req request) response {
	s, err := b.games.Join(req.ChannelID, req.UserID, req.Username)
	switch {
	case err == nil:
		return response{Content: fmt.Sprintf("✅ **%s** joined the game! (%d players)", req.Username, len(s.Players))}
	case errors.Is(err, wordchain.ErrNoGame):
		return ephemeral("❌ No word chain game is currently active in this channel! Use `/start-wordchain` to start one.")
	case errors.Is(err, wordchain.ErrGameStarted):
		return ephemeral("❌ The game has already started! Wait for the next game.")
	case errors.Is(err, wordchain.ErrAlreadyJoined):
		return ephemeral("❌ You are already in the game!")
	default:
		return ephemeral("❌ Cannot join game at this time.")
	}
}

func (b *Bot) leaveGame(_ context.Context, req request) response {
	s, cancelled, err := b.games.Leave(req.ChannelID, req.UserID)
	switch {
	case err == nil:
	case errors.Is(err, wordchain.ErrNoGame):
		return ephemeral("❌ No word chain game is active in this channel!")
	case errors.Is(err, wordchain.ErrNotJoined):
		return ephemeral("❌ You are not in the game!")
	default:
		return ephemeral("❌ Cannot leave game once it has started!")
	}

	resp := response{Content: fmt.Sprintf("👋 **%s** left the game! (%d players remaining)", req.Username, len(s.Players))}
	if !cancelled {
		resp.Embeds = []*discordgo.MessageEmbed{gameEmbed(s)}
	}
	return resp
}

func (b *Bot) gameStatus(_ context.Context, req request) response {
	s, err := b.games.Status(req.ChannelID)
	if err != nil {
		return ephemeral("❌ No word chain game is active in this channel!")
	}

	embeds := []*discordgo.MessageEmbed{gameEmbed(s)}
	if s.State == wordchain.StatePlaying {
		embeds = append(embeds, queueEmbed(s))
	}
	return response{Embeds: embeds}
}

// checkPlay turns away plays that cannot succeed, so their replies stay
// private to the player.
func (b *Bot) checkPlay(req request) (response, bool) {
	if strings.TrimSpace(req.Word) == "" {
		return ephemeral("❌ Please provide a word to play!"), true
	}

	s, err := b.games.Status(req.ChannelID)
	if err != nil {
		return ephemeral("❌ No word chain game is active in this channel!"), true
	}

	switch s.State {
	case wordchain.StateWaiting:
		return ephemeral("❌ The game has not started yet!"), true
	case wordchain.StateEnded:
		return ephemeral("❌ The game is over!"), true
	}
	if current, ok := s.Current(); !ok || current.ID != req.UserID {
		return ephemeral("❌ Not your turn!"), true
	}
	return response{}, false
}

func (b *Bot) play(ctx context.Context, req request) response {
	if strings.TrimSpace(req.Word) == "" {
		return ephemeral("❌ Please provide a word to play!")
	}

	res, err := b.games.Submit(ctx, req.ChannelID, req.UserID, req.Word)
	if errors.Is(err, wordchain.ErrNoGame) {
		return ephemeral("❌ No word chain game is active in this channel!")
	}

	if !res.Accepted() {
		if r := res.Rejection.Reason; r == wordchain.ReasonNotPlaying || r == wordchain.ReasonNotYourTurn {
			return ephemeral("❌ " + res.Rejection.Message)
		}
		return response{Content: fmt.Sprintf("❌ **%s**: %s", strings.ToUpper(res.Word), res.Rejection.Message)}
	}

	return response{Content: fmt.Sprintf(
		"✅ **%s** played **%s** for **%d** points!\n🎯 Next up: **%s**, your word must start with **%s**",
		res.Player.Username, strings.ToUpper(res.Word), res.Points,
		res.Next.Username, strings.ToUpper(wordchain.RequiredLetter(res.Word)),
	)}
}

func (b *Bot) stopGame(_ context.Context, req request) response {
	s, err := b.games.Stop(req.ChannelID)
	if err != nil {
		return ephemeral("❌ No word chain game is active in this channel!")
	}

	if s.CurrentWord == "" {
		return response{Content: "🛑 **Word chain lobby closed.**"}
	}
	return response{
		Content: "🛑 **Word chain game stopped.**",
		Embeds:  []*discordgo.MessageEmbed{gameEmbed(s)},
	}
}

func (b *Bot) help(_ context.Context, _ request) response {
	return response{Embeds: []*discordgo.MessageEmbed{helpEmbed(b.games.Settings())}}
}
