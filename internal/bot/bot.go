package bot

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/nicholasngai/dicky/internal/dictionary"
	"github.com/nicholasngai/dicky/internal/wordchain"
)

const commandTimeout = 15 * time.Second

type lookup interface {
	Define(ctx context.Context, word string) (*dictionary.Entry, error)
	Info(ctx context.Context, word string) (*dictionary.Entry, error)
	Synonyms(ctx context.Context, word string) ([]string, error)
	Antonyms(ctx context.Context, word string) ([]string, error)
}

type games interface {
	Open(channelID, userID, username string) (wordchain.Snapshot, error)
	Join(channelID, userID, username string) (wordchain.Snapshot, error)
	Leave(channelID, userID string) (wordchain.Snapshot, bool, error)
	Submit(ctx context.Context, channelID, userID, word string) (wordchain.Result, error)
	Status(channelID string) (wordchain.Snapshot, error)
	Stop(channelID string) (wordchain.Snapshot, error)
	Settings() wordchain.Settings
}

// request is an inbound command, from either a slash command or a message.
type request struct {
	ChannelID string
	UserID    string
	Username  string
	Word      string
}

type response struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

// Bot routes Discord events to the dictionary and the word-chain games.
type Bot struct {
	log      logrus.FieldLogger
	dict     lookup
	games    games
	prefix   string
	commands map[string]*command
}

func New(log logrus.FieldLogger, dict lookup, games games, prefix string) *Bot {
	b := &Bot{
		log:      log,
		dict:     dict,
		games:    games,
		prefix:   prefix,
		commands: make(map[string]*command),
	}
	for _, c := range commandTable {
		b.commands[c.def.Name] = c
	}
	return b
}

// Handlers returns the discordgo event handlers of the bot.
func (b *Bot) Handlers() []interface{} {
	return []interface{}{
		b.handleInteraction,
		b.handleComponent,
		b.handleMessage,
	}
}

func (b *Bot) dispatch(ctx context.Context, name string, req request) (response, bool) {
	c, ok := b.commands[name]
	if !ok {
		return response{}, false
	}
	return c.run(b, ctx, req), true
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var err error

	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	c, ok := b.commands[data.Name]
	if !ok {
		b.log.WithField("command", data.Name).Warnln("No command matching interaction")
		return
	}

	req := request{ChannelID: i.ChannelID}
	if user := interactionUser(i); user != nil {
		req.UserID = user.ID
		req.Username = user.Username
	}
	for _, opt := range data.Options {
		if opt.Name == wordOption && opt.Type == discordgo.ApplicationCommandOptionString {
			req.Word = opt.StringValue()
		}
	}

	log := b.log.WithFields(logrus.Fields{
		"command": data.Name,
		"channel": req.ChannelID,
		"user":    req.UserID,
	})

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if c.check != nil {
		if resp, done := c.check(b, req); done {
			b.respond(s, i, log, resp)
			return
		}
	}

	// Lookups may outlive the interaction deadline, so answer them later.
	if c.slow {
		err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		})
		if err != nil {
			log.Errorln("Error deferring interaction:", err)
			return
		}
	}

	resp := c.run(b, ctx, req)

	if !c.slow {
		b.respond(s, i, log, resp)
		return
	}

	_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content:    resp.Content,
		Embeds:     resp.Embeds,
		Components: resp.Components,
		Flags:      messageFlags(resp),
	})
	if err != nil {
		log.Errorln("Error responding to interaction:", err)
		return
	}

	log.Debugln("Handled slash command")
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, log logrus.FieldLogger, resp response) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    resp.Content,
			Embeds:     resp.Embeds,
			Components: resp.Components,
			Flags:      messageFlags(resp),
		},
	})
	if err != nil {
		log.Errorln("Error responding to interaction:", err)
		return
	}

	log.Debugln("Handled slash command")
}

func messageFlags(resp response) discordgo.MessageFlags {
	if resp.Ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	name, word, ok := b.route(m.ChannelID, m.Content)
	if !ok {
		return
	}

	req := request{
		ChannelID: m.ChannelID,
		UserID:    m.Author.ID,
		Username:  m.Author.Username,
		Word:      word,
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	resp, _ := b.dispatch(ctx, name, req)

	_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Content:    resp.Content,
		Embeds:     resp.Embeds,
		Components: resp.Components,
		Reference:  m.Reference(),
	})
	if err != nil {
		b.log.WithFields(logrus.Fields{
			"command": name,
			"channel": m.ChannelID,
			"user":    m.Author.ID,
		}).Errorln("Error replying to message:", err)
	}
}

var singleWord = regexp.MustCompile(`^[a-zA-Z]+$`)

// route maps message text to a command. Prefixed text names a command; a bare
// single word in a channel with a game in play is a submission.
func (b *Bot) route(channelID, content string) (name, word string, ok bool) {
	content = strings.TrimSpace(content)

	if rest, found := strings.CutPrefix(content, b.prefix); found && b.prefix != "" {
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return "", "", false
		}
		name = strings.ToLower(fields[0])
		if _, known := b.commands[name]; !known {
			return "", "", false
		}
		return name, strings.Join(fields[1:], " "), true
	}

	if !singleWord.MatchString(content) {
		return "", "", false
	}
	if s, err := b.games.Status(channelID); err != nil || s.State != wordchain.StatePlaying {
		return "", "", false
	}
	return playCommand, content, true
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
