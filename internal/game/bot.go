package game

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/MayoCodes/Robbery/internal"
)

// =============================================================================
// BOT AGENT
// =============================================================================

// Small western-flavored lexicon the bots draw from. Deliberately thin so
// bots miss targets the table can't cover and lose like anyone else.
var botLexicon = []string{
	"horse", "trail", "dust", "silver", "sheriff",
	"the", "and", "water", "ranger", "bullet",
	"outlaw", "canyon", "desert", "saloon",
}

// RunBotTurn plays the current turn for a bot: a fixed think delay, a
// lexicon scan for a usable word, a coin flip for a fumble, then a short
// wrap-up before the turn passes. No countdown runs during bot turns.
func (g *Service) RunBotTurn(party *internal.Party) {
	party.Mu.RLock()
	current := party.CurrentPlayer()
	if current == nil || !current.IsBot || party.Phase != internal.PhasePlaying {
		party.Mu.RUnlock()
		return
	}
	botId := current.Id
	party.Mu.RUnlock()

	time.AfterFunc(g.cfg.BotThinkDelay, func() {
		party.Mu.Lock()
		current := party.CurrentPlayer()
		// The turn may have moved on while the bot was thinking.
		if party.Phase != internal.PhasePlaying || current == nil || current.Id != botId {
			party.Mu.Unlock()
			return
		}

		target := strings.ToLower(party.Target)
		var word string
		for _, candidate := range botLexicon {
			if len(candidate) >= 3 && strings.Contains(candidate, target) && !party.HasUsedWord(candidate) {
				word = candidate
				break
			}
		}

		success := word != "" && rand.Float64() >= g.cfg.BotFailureRate
		var points int
		if success {
			party.UsedWords = append(party.UsedWords, word)
			points = len(word)
			current.Score += points
		} else {
			current.Lives--
		}
		name := current.Name
		party.Mu.Unlock()

		if success {
			log.Printf("[RunBotTurn] party=%s: bot %s scored %d with %q", party.Code, botId, points, word)
			g.chat(party, "success", fmt.Sprintf("%q earned %d points!", word, points), name)
		} else {
			log.Printf("[RunBotTurn] party=%s: bot %s failed target %q", party.Code, botId, target)
			g.broadcast.ToParty(party, eliminatedMessage(botId))
		}

		time.AfterFunc(g.cfg.BotWrapUpDelay, func() { g.AdvanceTurn(party) })
	})
}
