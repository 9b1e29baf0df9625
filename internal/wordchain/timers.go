package wordchain

import "time"

// Timers are created with time.AfterFunc and never trusted on their own:
// every callback re-checks the generation and turn it was armed for.

func stopTimer(t **time.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

// armLobby schedules fn once the join window closes, unless the game has
// moved on by then.
func (g *Game) armLobby(d time.Duration, fn func()) {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.state != StateWaiting {
		return
	}

	stopTimer(&g.lobbyTimer)
	gen := g.generation
	g.lobbyTimer = time.AfterFunc(d, func() {
		g.lock.Lock()
		live := g.state == StateWaiting && g.generation == gen
		g.lock.Unlock()

		if live {
			fn()
		}
	})
}

func (g *Game) armGameTimer() {
	stopTimer(&g.gameTimer)
	if g.gameDuration <= 0 {
		return
	}

	gen := g.generation
	g.gameTimer = time.AfterFunc(g.gameDuration, func() {
		g.expireGame(gen)
	})
}

func (g *Game) armTurnTimer() {
	stopTimer(&g.turnTimer)
	if g.turnDuration <= 0 {
		return
	}

	gen, seq := g.generation, g.turnSeq
	g.turnTimer = time.AfterFunc(g.turnDuration, func() {
		g.expireTurn(gen, seq)
	})
}

func (g *Game) expireTurn(gen, seq uint64) {
	g.lock.Lock()
	if g.state != StatePlaying || g.generation != gen || g.turnSeq != seq {
		g.lock.Unlock()
		return
	}

	skipped := g.players[g.turn].snapshot()
	g.advance()
	hook := g.hooks.TurnExpired
	g.lock.Unlock()

	if hook != nil {
		hook(g, skipped)
	}
}

func (g *Game) expireGame(gen uint64) {
	g.lock.Lock()
	if g.state != StatePlaying || g.generation != gen {
		g.lock.Unlock()
		return
	}

	g.end()
	hook := g.hooks.GameExpired
	g.lock.Unlock()

	if hook != nil {
		hook(g)
	}
}
