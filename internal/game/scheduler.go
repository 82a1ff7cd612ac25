package game

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/MayoCodes/Robbery/internal"
)

// =============================================================================
// TURN SCHEDULER - COUNTDOWN & TURN/ROUND ADVANCEMENT
// =============================================================================

// StartGame resets all party state and enters the playing phase. Host only,
// at least two players. The reset broadcast goes out before the first arm
// so clients render the reset before the clock visibly starts.
func (g *Service) StartGame(player *internal.Player) {
	party := player.Party
	if party == nil {
		return
	}

	party.Mu.Lock()
	if party.HostId != player.Id || len(party.Players) < internal.MinPlayersToStart {
		party.Mu.Unlock()
		log.Printf("[StartGame] party=%s: start from %s rejected", party.Code, player.Id)
		return
	}
	g.cancelTurnTimerLocked(party)

	party.Phase = internal.PhasePlaying
	party.Target = NextTarget()
	party.CurrentIndex = 0
	party.UsedWords = party.UsedWords[:0]
	party.Round = 1
	party.TurnsThisRound = 0
	party.TimeLeft = party.MaxTime
	for _, p := range party.Players {
		p.Lives = internal.StartingLives
		p.Score = 0
		p.CurrentlyTyping = ""
	}
	party.AliveAtRoundStart = len(party.Players)

	current := party.Players[0]
	state := party.Snapshot()
	party.Mu.Unlock()

	log.Printf("[StartGame] party=%s: started with %d players, target=%s", party.Code, len(state.Players), state.Target)
	g.broadcast.ToParty(party, stateMessage(state))

	if current.IsBot {
		g.RunBotTurn(party)
	} else {
		g.startTurnTimer(party)
	}
}

// startTurnTimer arms the one-second countdown for the current turn. The
// previous handle is always cancelled first, so two tickers can never
// decrement the same clock. Not armed for bot turns or finished games.
func (g *Service) startTurnTimer(party *internal.Party) {
	party.Mu.Lock()
	g.cancelTurnTimerLocked(party)

	if party.Phase != internal.PhasePlaying || party.CountAlive() <= 1 {
		party.Mu.Unlock()
		log.Printf("[startTurnTimer] party=%s: not armed", party.Code)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	party.Timer = &internal.TurnTimer{IsActive: true, Context: ctx, Cancel: cancel}
	party.Mu.Unlock()

	go g.runCountdown(party, ctx)
}

// cancelTurnTimerLocked releases the live countdown handle, if any. Callers
// must hold party.Mu.
func (g *Service) cancelTurnTimerLocked(party *internal.Party) {
	if party.Timer == nil || !party.Timer.IsActive {
		return
	}
	party.Timer.IsActive = false
	if party.Timer.Cancel != nil {
		party.Timer.Cancel()
	}
}

func (g *Service) runCountdown(party *internal.Party, ctx context.Context) {
	ticker := time.NewTicker(g.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			party.Mu.Lock()
			// A newer handle may have been armed since this tick fired;
			// only the handle that owns ctx may touch the clock.
			if party.Timer == nil || party.Timer.Context != ctx || !party.Timer.IsActive {
				party.Mu.Unlock()
				return
			}

			party.TimeLeft--
			if party.TimeLeft > 0 {
				timeLeft := party.TimeLeft
				party.Mu.Unlock()
				g.broadcast.ToParty(party, timerMessage(timeLeft))
				continue
			}

			// Expired: the current player pays a life.
			g.cancelTurnTimerLocked(party)
			current := party.CurrentPlayer()
			var eliminatedId string
			if current != nil {
				current.Lives--
				current.CurrentlyTyping = ""
				eliminatedId = current.Id
			}
			party.Mu.Unlock()

			if eliminatedId != "" {
				log.Printf("[runCountdown] party=%s: time expired, %s loses a life", party.Code, eliminatedId)
				g.broadcast.ToParty(party, typingMessage(eliminatedId, ""))
				g.broadcast.ToParty(party, eliminatedMessage(eliminatedId))
			}
			time.AfterFunc(g.cfg.EliminationGrace, func() { g.AdvanceTurn(party) })
			return
		}
	}
}

// AdvanceTurn resolves the turn that just ended and hands the floor to the
// next alive player. Runs after every accepted word, rejection, forfeit,
// and timeout.
func (g *Service) AdvanceTurn(party *internal.Party) {
	party.Mu.Lock()
	if party.Phase != internal.PhasePlaying {
		party.Mu.Unlock()
		return
	}
	g.cancelTurnTimerLocked(party)

	party.TurnsThisRound++

	if party.CountAlive() <= 1 {
		party.Phase = internal.PhaseFinished
		state := party.Snapshot()
		party.Mu.Unlock()
		log.Printf("[AdvanceTurn] party=%s: not enough alive players, game over", party.Code)
		g.broadcast.ToParty(party, stateMessage(state))
		return
	}

	roundOver := party.TurnsThisRound >= party.AliveAtRoundStart
	party.Mu.Unlock()

	if roundOver {
		g.settleRound(party)
		return
	}
	g.advanceToNextPlayer(party, false)
}

// settleRound applies the end-of-round penalty: every alive player tied at
// the minimum score loses one life, not just one of them.
func (g *Service) settleRound(party *internal.Party) {
	party.Mu.Lock()
	if party.Phase != internal.PhasePlaying {
		party.Mu.Unlock()
		return
	}

	alive := party.AlivePlayers()
	lowest := alive[0].Score
	for _, p := range alive[1:] {
		if p.Score < lowest {
			lowest = p.Score
		}
	}

	loserIds := make([]string, 0, len(alive))
	loserNames := make([]string, 0, len(alive))
	for _, p := range alive {
		if p.Score == lowest {
			p.Lives--
			p.CurrentlyTyping = ""
			loserIds = append(loserIds, p.Id)
			loserNames = append(loserNames, p.Name)
		}
	}

	remaining := party.CountAlive()
	round := party.Round
	state := party.Snapshot()
	party.Mu.Unlock()

	log.Printf("[settleRound] party=%s: round %d settled, lowest=%d, penalized=%v, remaining=%d",
		party.Code, round, lowest, loserNames, remaining)

	for _, id := range loserIds {
		g.broadcast.ToParty(party, eliminatedMessage(id))
		g.broadcast.ToParty(party, typingMessage(id, ""))
	}
	g.broadcast.ToParty(party, stateMessage(state))

	if len(loserNames) == 1 {
		g.systemChat(party, fmt.Sprintf("Round %d complete! %s had the lowest score (%d) and loses a life!",
			round, loserNames[0], lowest))
	} else {
		g.systemChat(party, fmt.Sprintf("Round %d complete! %s tied for lowest score (%d) and each lose a life!",
			round, strings.Join(loserNames, ", "), lowest))
	}

	if remaining <= 1 {
		time.AfterFunc(g.cfg.GameOverDelay, func() { g.finishGame(party) })
		return
	}

	time.AfterFunc(g.cfg.RoundSettleDelay, func() { g.beginNextRound(party) })
}

func (g *Service) finishGame(party *internal.Party) {
	party.Mu.Lock()
	if party.Phase != internal.PhasePlaying {
		party.Mu.Unlock()
		return
	}
	g.cancelTurnTimerLocked(party)
	party.Phase = internal.PhaseFinished
	state := party.Snapshot()
	party.Mu.Unlock()

	log.Printf("[finishGame] party=%s: game over", party.Code)
	g.broadcast.ToParty(party, stateMessage(state))
}

func (g *Service) beginNextRound(party *internal.Party) {
	party.Mu.Lock()
	if party.Phase != internal.PhasePlaying {
		party.Mu.Unlock()
		return
	}
	party.Round++
	party.TurnsThisRound = 0
	party.AliveAtRoundStart = party.CountAlive()
	party.Target = NextTarget()
	round := party.Round
	target := party.Target
	state := party.Snapshot()
	party.Mu.Unlock()

	log.Printf("[beginNextRound] party=%s: round %d begins with %d players, target=%s",
		party.Code, round, state.PlayersAliveAtRoundStart, target)
	g.broadcast.ToParty(party, stateMessage(state))
	g.chat(party, "success", fmt.Sprintf("Round %d begins! Target: %s", round, target), "")

	g.advanceToNextPlayer(party, true)
}

// advanceToNextPlayer scans forward circularly for the next player still
// holding lives and gives them the floor. freshRound keeps the target just
// drawn by round settlement; mid-round turns draw a new one.
func (g *Service) advanceToNextPlayer(party *internal.Party, freshRound bool) {
	party.Mu.Lock()
	if party.Phase != internal.PhasePlaying {
		party.Mu.Unlock()
		return
	}

	next := party.NextAliveFrom(party.CurrentIndex + 1)
	if next < 0 {
		// Structurally unreachable behind AdvanceTurn's alive guard, but
		// the bounded scan means this path exists instead of a spin.
		party.Phase = internal.PhaseFinished
		state := party.Snapshot()
		party.Mu.Unlock()
		log.Printf("[advanceToNextPlayer] party=%s: no alive player found, finishing", party.Code)
		g.broadcast.ToParty(party, stateMessage(state))
		return
	}

	party.CurrentIndex = next
	if !freshRound {
		party.Target = NextTarget()
	}
	party.TimeLeft = party.MaxTime
	party.ClearTyping()

	current := party.Players[next]
	state := party.Snapshot()
	party.Mu.Unlock()

	log.Printf("[advanceToNextPlayer] party=%s: %s (%s) is up, round=%d turn=%d/%d target=%s",
		party.Code, current.Id, current.Name, state.Round, state.TurnsThisRound,
		state.PlayersAliveAtRoundStart, state.Target)
	g.broadcast.ToParty(party, stateMessage(state))

	if current.IsBot {
		g.RunBotTurn(party)
	} else {
		g.startTurnTimer(party)
	}
}
