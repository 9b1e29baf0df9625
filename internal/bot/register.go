package bot

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var ErrNoApplicationID = errors.New("application id is empty")

type commandOverwriter interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// RegisterCommands replaces every registered slash command of the
// application with the bot's commands. An empty guildID registers them
// globally.
func RegisterCommands(s commandOverwriter, appID, guildID string) ([]*discordgo.ApplicationCommand, error) {
	if appID == "" {
		return nil, ErrNoApplicationID
	}

	registered, err := s.ApplicationCommandBulkOverwrite(appID, guildID, Definitions())
	if err != nil {
		return nil, fmt.Errorf("registering commands: %w", err)
	}
	return registered, nil
}
