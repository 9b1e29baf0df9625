package wordchain

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultJoinWindow   = 20 * time.Second
	DefaultCleanupDelay = 30 * time.Second
)

// Settings holds the timing of a game's lifecycle.
type Settings struct {
	JoinWindow   time.Duration
	GameDuration time.Duration
	TurnDuration time.Duration
	CleanupDelay time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		JoinWindow:   DefaultJoinWindow,
		GameDuration: DefaultGameDuration,
		TurnDuration: DefaultTurnDuration,
		CleanupDelay: DefaultCleanupDelay,
	}
}

// Notifier receives events that have no originating command, such as
// timer-driven skips and game ends.
type Notifier interface {
	GameStarted(s Snapshot)
	GameCancelled(channelID, reason string)
	TurnSkipped(skipped Player, s Snapshot)
	GameEnded(s Snapshot)
}

type noopNotifier struct{}

func (noopNotifier) GameStarted(Snapshot) {}
func (noopNotifier) GameCancelled(string, string) {}
func (noopNotifier) TurnSkipped(Player, Snapshot) {}
func (noopNotifier) GameEnded(Snapshot) {}

// Manager drives games through their lifecycle: lobby, play and cleanup.
type Manager struct {
	log      logrus.FieldLogger
	registry *Registry
	checker  Checker
	notifier Notifier
	settings Settings
	options  []Option
}

func NewManager(log logrus.FieldLogger, registry *Registry, checker Checker, settings Settings, opts ...Option) *Manager {
	return &Manager{
		log:      log,
		registry: registry,
		checker:  checker,
		notifier: noopNotifier{},
		settings: settings,
		options:  opts,
	}
}

// SetNotifier must be called before the first game is opened.
func (m *Manager) SetNotifier(n Notifier) {
	if n == nil {
		n = noopNotifier{}
	}
	m.notifier = n
}

func (m *Manager) Settings() Settings {
	return m.settings
}

// Open creates a lobby in channelID with the host as its first player.
func (m *Manager) Open(channelID, userID, username string) (Snapshot, error) {
	// The host is seated before the game is published, so nobody can join
	// ahead of them.
	g, err := m.registry.Create(channelID, func() *Game {
		game := m.newGame(channelID)
		game.AddPlayer(userID, username)
		return game
	})
	if err != nil {
		return g.Snapshot(), err
	}

	g.armLobby(m.settings.JoinWindow, func() {
		m.closeLobby(g)
	})

	m.gameLog(g).WithField("user", userID).Infoln("Lobby opened")
	return g.Snapshot(), nil
}

func (m *Manager) Join(channelID, userID, username string) (Snapshot, error) {
	g, ok := m.registry.Get(channelID)
	if !ok {
		return Snapshot{}, ErrNoGame
	}

	if !g.AddPlayer(userID, username) {
		return g.Snapshot(), m.rosterError(g, ErrAlreadyJoined)
	}

	m.gameLog(g).WithField("user", userID).Debugln("User joined game")
	return g.Snapshot(), nil
}

// Leave removes a player from a lobby. When the lobby empties the game is
// cancelled and cancelled is true.
func (m *Manager) Leave(channelID, userID string) (s Snapshot, cancelled bool, err error) {
	g, ok := m.registry.Get(channelID)
	if !ok {
		return Snapshot{}, false, ErrNoGame
	}

	removed, closed := g.leave(userID)
	if !removed {
		return g.Snapshot(), false, m.rosterError(g, ErrNotJoined)
	}

	m.gameLog(g).WithField("user", userID).Debugln("User left game")

	if closed {
		m.registry.Remove(channelID, g.ID)
		m.gameLog(g).Infoln("Lobby cancelled, no players remaining")
		m.notifier.GameCancelled(channelID, "No players remaining.")
		return g.Snapshot(), true, nil
	}

	return g.Snapshot(), false, nil
}

// Submit plays a word in the channel's game. See Game.SubmitWord for the
// meaning of the error.
func (m *Manager) Submit(ctx context.Context, channelID, userID, word string) (Result, error) {
	g, ok := m.registry.Get(channelID)
	if !ok {
		return Result{}, ErrNoGame
	}

	res, err := g.SubmitWord(ctx, userID, word)
	log := m.gameLog(g).WithFields(logrus.Fields{"user": userID, "word": res.Word})
	if err != nil {
		log.WithError(err).Warnln("Word could not be verified")
	}
	if res.Accepted() {
		log.WithField("points", res.Points).Debugln("Word accepted")
	} else {
		log.WithField("reason", res.Rejection.Reason).Debugln("Word rejected")
	}

	return res, err
}

func (m *Manager) Status(channelID string) (Snapshot, error) {
	g, ok := m.registry.Get(channelID)
	if !ok {
		return Snapshot{}, ErrNoGame
	}
	return g.Snapshot(), nil
}

// Stop ends the channel's game on request.
func (m *Manager) Stop(channelID string) (Snapshot, error) {
	g, ok := m.registry.Get(channelID)
	if !ok {
		return Snapshot{}, ErrNoGame
	}

	from, ok := g.endFrom()
	if !ok {
		return g.Snapshot(), ErrNoGame
	}

	if from == StateWaiting {
		m.registry.Remove(channelID, g.ID)
		m.gameLog(g).Infoln("Lobby stopped")
	} else {
		m.gameLog(g).Infoln("Game stopped")
		m.scheduleCleanup(g)
	}
	return g.Snapshot(), nil
}

// Shutdown ends every game and stops their timers.
func (m *Manager) Shutdown() {
	for _, g := range m.registry.All() {
		g.End()
		m.registry.Remove(g.ChannelID, g.ID)
	}
}

func (m *Manager) newGame(channelID string) *Game {
	opts := []Option{
		WithDurations(m.settings.GameDuration, m.settings.TurnDuration),
		WithChecker(m.checker),
		WithHooks(Hooks{
			TurnExpired: m.turnExpired,
			GameExpired: m.gameExpired,
		}),
	}
	return NewGame(channelID, append(opts, m.options...)...)
}

func (m *Manager) closeLobby(g *Game) {
	if current, ok := m.registry.Get(g.ChannelID); !ok || current != g {
		return
	}

	started, ended := g.startOrEnd()
	if started {
		m.gameLog(g).Infoln("Game started")
		m.notifier.GameStarted(g.Snapshot())
		return
	}

	if ended {
		m.registry.Remove(g.ChannelID, g.ID)
		m.gameLog(g).Infoln("Lobby cancelled, not enough players")
		m.notifier.GameCancelled(g.ChannelID, "Not enough players joined! (Need at least 2 players)")
	}
}

func (m *Manager) turnExpired(g *Game, skipped Player) {
	m.gameLog(g).WithField("user", skipped.ID).Debugln("Turn timed out")
	m.notifier.TurnSkipped(skipped, g.Snapshot())
}

func (m *Manager) gameExpired(g *Game) {
	m.gameLog(g).Infoln("Game time is up")
	m.notifier.GameEnded(g.Snapshot())
	m.scheduleCleanup(g)
}

func (m *Manager) scheduleCleanup(g *Game) {
	time.AfterFunc(m.settings.CleanupDelay, func() {
		if m.registry.Remove(g.ChannelID, g.ID) {
			m.gameLog(g).Debugln("Game removed")
		}
	})
}

func (m *Manager) rosterError(g *Game, fallback error) error {
	switch g.State() {
	case StateWaiting:
		return fallback
	case StatePlaying:
		return ErrGameStarted
	case StateEnded:
		return ErrNotWaiting
	}
	return fallback
}

func (m *Manager) gameLog(g *Game) logrus.FieldLogger {
	return m.log.WithFields(logrus.Fields{
		"channel": g.ChannelID,
		"gameId":  g.ID,
	})
}
