package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/nicholasngai/dicky/internal/wordchain"
)

type channelSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier broadcasts timer-driven game events to the game's channel.
type Notifier struct {
	log    logrus.FieldLogger
	sender channelSender
}

func NewNotifier(log logrus.FieldLogger, sender channelSender) *Notifier {
	return &Notifier{log: log, sender: sender}
}

func (n *Notifier) GameStarted(s wordchain.Snapshot) {
	n.send(s.ChannelID, "🚀 **Game Started!** Let the word chain begin!", gameEmbed(s), queueEmbed(s))
}

func (n *Notifier) GameCancelled(channelID, reason string) {
	n.send(channelID, "❌ **Game Cancelled** - "+reason)
}

func (n *Notifier) TurnSkipped(skipped wordchain.Player, s wordchain.Snapshot) {
	content := fmt.Sprintf("⏰ **Time's up!** %s was skipped for taking too long.", skipped.Username)
	if s.State != wordchain.StatePlaying {
		n.send(s.ChannelID, content)
		return
	}
	n.send(s.ChannelID, content+"\n🔄 **Next turn!**", gameEmbed(s), queueEmbed(s))
}

func (n *Notifier) GameEnded(s wordchain.Snapshot) {
	n.send(s.ChannelID, "⏰ **Time's Up!** The word chain game has ended!", gameEmbed(s))
}

// send logs failures; a lost notification does not affect the game.
func (n *Notifier) send(channelID, content string, embeds ...*discordgo.MessageEmbed) {
	_, err := n.sender.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  embeds,
	})
	if err != nil {
		n.log.WithField("channel", channelID).Errorln("Error sending game notification:", err)
	}
}
