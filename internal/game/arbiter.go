package game

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/MayoCodes/Robbery/internal"
)

// =============================================================================
// WORD ARBITER - SUBMISSION JUDGMENT
// =============================================================================

// SubmitWord judges the current player's submission. A valid word scores its
// length and passes the turn; an invalid one costs a life immediately, then
// the turn passes after a short grace so clients can show the result.
// Submissions from anyone but the current player are dropped silently.
func (g *Service) SubmitWord(player *internal.Player, rawWord string) {
	party := player.Party
	if party == nil {
		return
	}

	party.Mu.Lock()
	if party.Phase != internal.PhasePlaying {
		party.Mu.Unlock()
		return
	}
	current := party.CurrentPlayer()
	if current == nil || current.Id != player.Id {
		party.Mu.Unlock()
		log.Printf("[SubmitWord] party=%s: out-of-turn submission from %s ignored", party.Code, player.Id)
		return
	}

	// A submission ends the turn either way; the clock must stop before
	// judgment so an expiry during the grace window cannot charge a second
	// life or advance the turn twice.
	g.cancelTurnTimerLocked(party)

	player.CurrentlyTyping = ""

	word := strings.ToLower(strings.TrimSpace(rawWord))
	target := strings.ToLower(party.Target)
	valid := len(word) >= 3 && strings.Contains(word, target) && !party.HasUsedWord(word)

	if valid {
		party.UsedWords = append(party.UsedWords, word)
		points := len(word)
		player.Score += points
		party.Mu.Unlock()

		log.Printf("[SubmitWord] party=%s: %s scored %d with %q", party.Code, player.Id, points, word)
		g.broadcast.ToParty(party, typingMessage(player.Id, ""))
		g.chat(party, "success", fmt.Sprintf("%q earned %d points!", word, points), player.Name)
		g.AdvanceTurn(party)
		return
	}

	player.Lives--
	party.Mu.Unlock()

	log.Printf("[SubmitWord] party=%s: %s rejected %q, lives left %d", party.Code, player.Id, word, player.Lives)
	g.broadcast.ToParty(party, typingMessage(player.Id, ""))
	g.broadcast.ToParty(party, eliminatedMessage(player.Id))
	time.AfterFunc(g.cfg.EliminationGrace, func() { g.AdvanceTurn(party) })
}

// ForfeitTurn is the client telling us it exhausted its local attempt
// budget. Costs a life unconditionally, same guards and pacing as a
// rejected submission.
func (g *Service) ForfeitTurn(player *internal.Player) {
	party := player.Party
	if party == nil {
		return
	}

	party.Mu.Lock()
	if party.Phase != internal.PhasePlaying {
		party.Mu.Unlock()
		return
	}
	current := party.CurrentPlayer()
	if current == nil || current.Id != player.Id {
		party.Mu.Unlock()
		return
	}

	g.cancelTurnTimerLocked(party)

	player.Lives--
	player.CurrentlyTyping = ""
	party.Mu.Unlock()

	log.Printf("[ForfeitTurn] party=%s: %s forfeited, lives left %d", party.Code, player.Id, player.Lives)
	g.broadcast.ToParty(party, typingMessage(player.Id, ""))
	g.chat(party, "error", fmt.Sprintf("%s ran out of attempts!", player.Name), "")
	g.broadcast.ToParty(party, eliminatedMessage(player.Id))
	time.AfterFunc(g.cfg.EliminationGrace, func() { g.AdvanceTurn(party) })
}
