package wordchain

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultGameDuration = 2 * time.Minute
	DefaultTurnDuration = 40 * time.Second

	minPlayers = 2
)

type State int

const (
	StateWaiting State = iota
	StatePlaying
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Player is a read-only copy of a participant.
type Player struct {
	ID       string
	Username string
	Score    int
	Words    []string
}

func (p *Player) snapshot() Player {
	return Player{
		ID:       p.ID,
		Username: p.Username,
		Score:    p.Score,
		Words:    append([]string(nil), p.Words...),
	}
}

// Hooks are invoked from timer goroutines, never with the game lock held.
type Hooks struct {
	TurnExpired func(g *Game, skipped Player)
	GameExpired func(g *Game)
}

// Result describes the outcome of SubmitWord.
type Result struct {
	Word      string
	Points    int
	Rejection *Rejection
	Player    Player
	Next      Player
}

func (r Result) Accepted() bool {
	return r.Rejection == nil
}

// Game is a single word-chain match in one channel.
type Game struct {
	ID        string
	ChannelID string

	lock          sync.Mutex
	state         State
	players       []*Player
	turn          int
	currentWord   string
	usedWords     map[string]struct{}
	startedAt     time.Time
	turnStartedAt time.Time
	endedAt       time.Time

	// generation changes on Start and End, turnSeq on every turn change.
	// Timer callbacks compare both before acting.
	generation uint64
	turnSeq    uint64
	lobbyTimer *time.Timer
	turnTimer  *time.Timer
	gameTimer  *time.Timer

	now           func() time.Time
	rng           *rand.Rand
	startingWords []string
	gameDuration  time.Duration
	turnDuration  time.Duration
	checker       Checker
	hooks         Hooks
}

type Option func(g *Game)

func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

func WithStartingWords(words []string) Option {
	return func(g *Game) { g.startingWords = words }
}

// WithDurations sets the game and turn limits. A zero duration disables
// the corresponding deadline.
func WithDurations(game, turn time.Duration) Option {
	return func(g *Game) {
		g.gameDuration = game
		g.turnDuration = turn
	}
}

func WithChecker(checker Checker) Option {
	return func(g *Game) { g.checker = checker }
}

func WithHooks(hooks Hooks) Option {
	return func(g *Game) { g.hooks = hooks }
}

func NewGame(channelID string, opts ...Option) *Game {
	g := &Game{
		ID:            uuid.NewString(),
		ChannelID:     channelID,
		state:         StateWaiting,
		usedWords:     make(map[string]struct{}),
		now:           time.Now,
		startingWords: StartingWords,
		gameDuration:  DefaultGameDuration,
		turnDuration:  DefaultTurnDuration,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(g.now().UnixNano())) //nolint:gosec // word choice only
	}
	return g
}

func (g *Game) AddPlayer(userID, username string) bool {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.state != StateWaiting || g.indexOf(userID) >= 0 {
		return false
	}

	g.players = append(g.players, &Player{ID: userID, Username: username})
	return true
}

func (g *Game) RemovePlayer(userID string) bool {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.removePlayer(userID)
}

// leave removes a waiting player and ends the lobby if nobody is left, as one
// step so that no join can slip in between.
func (g *Game) leave(userID string) (removed, closed bool) {
	g.lock.Lock()
	defer g.lock.Unlock()

	if !g.removePlayer(userID) {
		return false, false
	}
	if len(g.players) == 0 {
		return true, g.end()
	}
	return true, false
}

func (g *Game) removePlayer(userID string) bool {
	if g.state != StateWaiting {
		return false
	}

	i := g.indexOf(userID)
	if i < 0 {
		return false
	}

	g.players = append(g.players[:i], g.players[i+1:]...)
	return true
}

// Start moves a waiting game with enough players into play and arms the
// game and turn deadlines.
func (g *Game) Start() bool {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.start()
}

// startOrEnd closes the lobby: it starts the game when it can and ends it
// otherwise. A game that is no longer waiting is left alone.
func (g *Game) startOrEnd() (started, ended bool) {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.state != StateWaiting {
		return false, false
	}
	if g.start() {
		return true, false
	}
	return false, g.end()
}

func (g *Game) start() bool {
	if g.state != StateWaiting || len(g.players) < minPlayers || len(g.startingWords) == 0 {
		return false
	}

	stopTimer(&g.lobbyTimer)

	g.currentWord = Normalize(g.startingWords[g.rng.Intn(len(g.startingWords))])
	g.usedWords[g.currentWord] = struct{}{}
	g.turn = 0
	g.startedAt = g.now()
	g.turnStartedAt = g.startedAt
	g.state = StatePlaying
	g.generation++
	g.turnSeq++

	g.armGameTimer()
	g.armTurnTimer()

	return true
}

// SubmitWord plays word for userID. Validation failures are reported through
// Result.Rejection; a non-nil error means the dictionary could not be reached
// and the word was rejected without being checked.
func (g *Game) SubmitWord(ctx context.Context, userID, word string) (Result, error) {
	g.lock.Lock()
	if rejection := g.checkTurn(userID); rejection != nil {
		g.lock.Unlock()
		return Result{Word: Normalize(word), Rejection: rejection}, nil
	}
	seq := g.turnSeq
	w, rejection := CheckRules(g.currentWord, g.isUsed, word)
	g.lock.Unlock()

	if rejection != nil {
		return Result{Word: w, Rejection: rejection}, nil
	}

	// The lookup may be slow; the turn is re-checked once it returns.
	rejection, err := checkDictionary(ctx, g.checker, w)
	if rejection != nil {
		return Result{Word: w, Rejection: rejection}, err
	}

	g.lock.Lock()
	defer g.lock.Unlock()

	if rejection = g.checkTurn(userID); rejection != nil {
		return Result{Word: w, Rejection: rejection}, nil
	}
	if seq != g.turnSeq {
		return Result{Word: w, Rejection: reject(ReasonNotYourTurn, "Your turn is over!")}, nil
	}
	if g.isUsed(w) {
		return Result{Word: w, Rejection: reject(ReasonDuplicate, "This word has already been used!")}, nil
	}

	points := Score(w)
	p := g.players[g.turn]
	p.Score += points
	p.Words = append(p.Words, w)

	g.currentWord = w
	g.usedWords[w] = struct{}{}
	g.advance()

	return Result{
		Word:   w,
		Points: points,
		Player: p.snapshot(),
		Next:   g.players[g.turn].snapshot(),
	}, nil
}

// SkipCurrentPlayer passes the turn without scoring. It reports the skipped
// player, or false when the game is not in play.
func (g *Game) SkipCurrentPlayer() (Player, bool) {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.state != StatePlaying {
		return Player{}, false
	}

	skipped := g.players[g.turn].snapshot()
	g.advance()
	return skipped, true
}

// End finishes the game and cancels its timers. It reports whether this call
// performed the transition.
func (g *Game) End() bool {
	_, ok := g.endFrom()
	return ok
}

// endFrom is End that also reports the state the game was in.
func (g *Game) endFrom() (State, bool) {
	g.lock.Lock()
	defer g.lock.Unlock()

	from := g.state
	return from, g.end()
}

func (g *Game) State() State {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.state
}

func (g *Game) CurrentPlayer() (Player, bool) {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.state != StatePlaying {
		return Player{}, false
	}
	return g.players[g.turn].snapshot(), true
}

func (g *Game) PlayerCount() int {
	g.lock.Lock()
	defer g.lock.Unlock()

	return len(g.players)
}

// Players returns the roster in join order.
func (g *Game) Players() []Player {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.roster()
}

// Snapshot is an immutable view of a game for rendering.
type Snapshot struct {
	GameID         string
	ChannelID      string
	State          State
	Players        []Player
	Turn           int
	CurrentWord    string
	RequiredLetter string
	UsedWords      int
	GameDuration   time.Duration
	TurnDuration   time.Duration
	GameElapsed    time.Duration
	TurnElapsed    time.Duration
}

func (g *Game) Snapshot() Snapshot {
	g.lock.Lock()
	defer g.lock.Unlock()

	s := Snapshot{
		GameID:         g.ID,
		ChannelID:      g.ChannelID,
		State:          g.state,
		Players:        g.roster(),
		Turn:           g.turn,
		CurrentWord:    g.currentWord,
		RequiredLetter: RequiredLetter(g.currentWord),
		UsedWords:      len(g.usedWords),
		GameDuration:   g.gameDuration,
		TurnDuration:   g.turnDuration,
	}

	switch g.state {
	case StateWaiting:
	case StatePlaying:
		now := g.now()
		s.GameElapsed = now.Sub(g.startedAt)
		s.TurnElapsed = now.Sub(g.turnStartedAt)
	case StateEnded:
		if !g.startedAt.IsZero() {
			s.GameElapsed = g.endedAt.Sub(g.startedAt)
		}
	}

	return s
}

// Current returns the player whose turn it is.
func (s Snapshot) Current() (Player, bool) {
	if s.State != StatePlaying || s.Turn >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.Turn], true
}

func (s Snapshot) GameRemaining() time.Duration {
	return remaining(s.GameDuration, s.GameElapsed)
}

func (s Snapshot) TurnRemaining() time.Duration {
	return remaining(s.TurnDuration, s.TurnElapsed)
}

// Ranking orders players by score, highest first. Ties keep join order.
func (s Snapshot) Ranking() []Player {
	ranked := append([]Player(nil), s.Players...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func remaining(total, elapsed time.Duration) time.Duration {
	if elapsed >= total {
		return 0
	}
	return total - elapsed
}

// checkTurn must be called with the lock held.
func (g *Game) checkTurn(userID string) *Rejection {
	switch g.state {
	case StatePlaying:
	case StateWaiting:
		return reject(ReasonNotPlaying, "The game has not started yet!")
	case StateEnded:
		return reject(ReasonNotPlaying, "The game is over!")
	}
	if g.players[g.turn].ID != userID {
		return reject(ReasonNotYourTurn, "Not your turn!")
	}
	return nil
}

func (g *Game) isUsed(word string) bool {
	_, ok := g.usedWords[word]
	return ok
}

func (g *Game) indexOf(userID string) int {
	for i, p := range g.players {
		if p.ID == userID {
			return i
		}
	}
	return -1
}

func (g *Game) roster() []Player {
	players := make([]Player, len(g.players))
	for i, p := range g.players {
		players[i] = p.snapshot()
	}
	return players
}

// advance must be called with the lock held while playing.
func (g *Game) advance() {
	g.turn = (g.turn + 1) % len(g.players)
	g.turnStartedAt = g.now()
	g.turnSeq++
	g.armTurnTimer()
}

func (g *Game) end() bool {
	if g.state == StateEnded {
		return false
	}

	g.state = StateEnded
	g.endedAt = g.now()
	g.generation++
	stopTimer(&g.lobbyTimer)
	stopTimer(&g.turnTimer)
	stopTimer(&g.gameTimer)
	return true
}
