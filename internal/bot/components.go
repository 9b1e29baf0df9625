package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/nicholasngai/dicky/internal/wordchain"
)

const (
	componentPrefix = "wordchain"
	joinButtonID    = componentPrefix + "-join"
	leaveButtonID   = componentPrefix + "-leave"
)

// componentCommands maps lobby buttons to the commands they stand for.
var componentCommands = map[string]string{
	joinButtonID:  "join-game",
	leaveButtonID: "leave-game",
}

func lobbyComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Join",
					Style:    discordgo.PrimaryButton,
					CustomID: joinButtonID,
				},
				discordgo.Button{
					Label:    "Leave",
					Style:    discordgo.SecondaryButton,
					CustomID: leaveButtonID,
				},
			},
		},
	}
}

// lobbyUpdate runs a button's command. A successful press re-renders the
// lobby message; buttons are dropped once the lobby has closed.
func (b *Bot) lobbyUpdate(ctx context.Context, customID string, req request) (response, bool) {
	name, ok := componentCommands[customID]
	if !ok {
		return response{}, false
	}

	resp, _ := b.dispatch(ctx, name, req)
	if resp.Ephemeral {
		return resp, true
	}

	resp.Embeds = nil
	if s, err := b.games.Status(req.ChannelID); err == nil {
		resp.Embeds = []*discordgo.MessageEmbed{gameEmbed(s)}
		if s.State == wordchain.StateWaiting {
			resp.Components = lobbyComponents()
		}
	}
	if resp.Components == nil {
		// An empty list clears the buttons.
		resp.Components = []discordgo.MessageComponent{}
	}
	return resp, true
}

func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var err error

	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	req := request{ChannelID: i.ChannelID}
	if user := interactionUser(i); user != nil {
		req.UserID = user.ID
		req.Username = user.Username
	}

	customID := i.MessageComponentData().CustomID
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	resp, ok := b.lobbyUpdate(ctx, customID, req)
	if !ok {
		return
	}

	log := b.log.WithFields(logrus.Fields{
		"component": customID,
		"channel":   req.ChannelID,
		"user":      req.UserID,
	})

	if resp.Ephemeral {
		err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: resp.Content,
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
	} else {
		err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    resp.Content,
				Embeds:     resp.Embeds,
				Components: resp.Components,
			},
		})
	}
	if err != nil {
		log.Errorln("Error responding to button:", err)
		return
	}

	log.Debugln("Handled lobby button")
}
