package wordchain

import (
	"errors"
	"sync"
)

var (
	ErrGameExists    = errors.New("a game is already running in this channel")
	ErrNoGame        = errors.New("no game in this channel")
	ErrGameStarted   = errors.New("game has already started")
	ErrNotWaiting    = errors.New("game is not accepting players")
	ErrAlreadyJoined = errors.New("player already joined")
	ErrNotJoined     = errors.New("player is not in the game")
)

// Registry maps channels to their live game.
type Registry struct {
	games map[string]*Game
	lock  sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{games: make(map[string]*Game)}
}

// Create registers the game returned by build unless a game that has not
// ended already occupies the channel.
func (r *Registry) Create(channelID string, build func() *Game) (*Game, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if existing, ok := r.games[channelID]; ok && existing.State() != StateEnded {
		return existing, ErrGameExists
	}

	g := build()
	r.games[channelID] = g
	return g, nil
}

func (r *Registry) Get(channelID string) (*Game, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	g, ok := r.games[channelID]
	return g, ok
}

// Remove deletes the channel's entry only if it still holds gameID.
func (r *Registry) Remove(channelID, gameID string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	g, ok := r.games[channelID]
	if !ok || g.ID != gameID {
		return false
	}

	delete(r.games, channelID)
	return true
}

func (r *Registry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.games)
}

func (r *Registry) All() []*Game {
	r.lock.RLock()
	defer r.lock.RUnlock()

	games := make([]*Game, 0, len(r.games))
	for _, g := range r.games {
		games = append(games, g)
	}
	return games
}
