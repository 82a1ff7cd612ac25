package game

import (
	"fmt"
	"log"

	"github.com/MayoCodes/Robbery/internal"
	"github.com/MayoCodes/Robbery/internal/utils"
)

// =============================================================================
// PARTY LIFECYCLE - CREATE / JOIN / BOTS / SETTINGS / DISCONNECT
// =============================================================================

var botNames = []string{"MAVERICK", "DAKOTA", "PHOENIX", "STERLING"}

// CreateParty registers a fresh party with the connecting player as host
// and reports the new state back to them only.
func (g *Service) CreateParty(player *internal.Player, playerName string) {
	player.Name = playerName
	party := g.registry.CreateParty(player)

	party.Mu.RLock()
	state := party.Snapshot()
	party.Mu.RUnlock()

	if err := g.broadcast.ToPlayer(player, internal.Message[any]{
		Type: "partyCreated",
		Data: internal.PartyCreatedData{PartyCode: party.Code, GameState: state},
	}); err != nil {
		log.Printf("[CreateParty] party=%s: failed to notify host %s: %v", party.Code, player.Id, err)
	}
}

// JoinParty adds the player to an existing party in any phase. Unknown
// codes surface on the error channel; everything else broadcasts the new
// roster.
func (g *Service) JoinParty(player *internal.Player, playerName, code string) {
	player.Name = playerName
	party, err := g.registry.JoinParty(code, player)
	if err != nil {
		_ = g.broadcast.ToPlayer(player, errorMessage("Party not found"))
		return
	}

	party.Mu.RLock()
	state := party.Snapshot()
	party.Mu.RUnlock()

	g.broadcast.ToParty(party, stateMessage(state))
	g.systemChat(party, fmt.Sprintf("%s joined the game", playerName))
}

// AddBot appends an automated player. Host only; each bot name appears at
// most once per party.
func (g *Service) AddBot(player *internal.Player) {
	party := player.Party
	if party == nil {
		return
	}

	party.Mu.Lock()
	if party.HostId != player.Id {
		party.Mu.Unlock()
		log.Printf("[AddBot] party=%s: non-host %s ignored", party.Code, player.Id)
		return
	}

	var name string
	for _, candidate := range botNames {
		if party.FindPlayerByName(candidate) == nil {
			name = candidate
			break
		}
	}
	if name == "" {
		party.Mu.Unlock()
		log.Printf("[AddBot] party=%s: bot roster full", party.Code)
		return
	}

	bot := &internal.Player{
		Id:    "bot-" + utils.GenerateID(8),
		Name:  name,
		Lives: internal.StartingLives,
		IsBot: true,
		Party: party,
	}
	party.Players = append(party.Players, bot)
	state := party.Snapshot()
	party.Mu.Unlock()

	log.Printf("[AddBot] party=%s: added bot %s (%s)", party.Code, bot.Id, name)
	g.broadcast.ToParty(party, stateMessage(state))
}

// RemoveBot drops a bot from the roster. Host only, lobby only, so round
// accounting never sees a roster shrink it did not cause.
func (g *Service) RemoveBot(player *internal.Player, botId string) {
	party := player.Party
	if party == nil {
		return
	}

	party.Mu.Lock()
	if party.HostId != player.Id || party.Phase != internal.PhaseLobby {
		party.Mu.Unlock()
		return
	}
	idx := party.IndexOf(botId)
	if idx < 0 || !party.Players[idx].IsBot {
		party.Mu.Unlock()
		log.Printf("[RemoveBot] party=%s: %s is not a bot in this party", party.Code, botId)
		return
	}
	name := party.Players[idx].Name
	party.Players = append(party.Players[:idx], party.Players[idx+1:]...)
	state := party.Snapshot()
	party.Mu.Unlock()

	log.Printf("[RemoveBot] party=%s: removed bot %s (%s)", party.Code, botId, name)
	g.broadcast.ToParty(party, stateMessage(state))
}

// UpdateTimerDuration sets the per-turn countdown length. Host only, lobby
// only, clamped to the supported range.
func (g *Service) UpdateTimerDuration(player *internal.Player, seconds int) {
	party := player.Party
	if party == nil {
		return
	}

	if seconds < internal.MinTurnSeconds {
		seconds = internal.MinTurnSeconds
	}
	if seconds > internal.MaxTurnSeconds {
		seconds = internal.MaxTurnSeconds
	}

	party.Mu.Lock()
	if party.HostId != player.Id || party.Phase != internal.PhaseLobby {
		party.Mu.Unlock()
		return
	}
	party.MaxTime = seconds
	party.TimeLeft = seconds
	party.Mu.Unlock()

	log.Printf("[UpdateTimerDuration] party=%s: turn duration set to %ds", party.Code, seconds)
	g.broadcast.ToParty(party, internal.Message[any]{Type: "timerDurationUpdate", Data: seconds})
}

// TypingUpdate mirrors in-progress input to the whole party. Rate-limited
// per connection so a held-down key cannot flood the room.
func (g *Service) TypingUpdate(player *internal.Player, word string) {
	party := player.Party
	if party == nil {
		return
	}
	if player.Limiter != nil && !player.Limiter.Allow() {
		return
	}

	party.Mu.Lock()
	player.CurrentlyTyping = word
	party.Mu.Unlock()

	g.broadcast.ToParty(party, typingMessage(player.Id, word))
}

// ChatMessage relays a player chat line. Pure broadcast, no state.
func (g *Service) ChatMessage(player *internal.Player, text string) {
	party := player.Party
	if party == nil {
		return
	}
	if player.Limiter != nil && !player.Limiter.Allow() {
		return
	}
	g.chat(party, "player", text, player.Name)
}

// HandleDisconnect removes a connection from its party and repairs turn
// state. Disconnecting is not an elimination: no playerEliminated event is
// emitted for the leaver, and the party is destroyed once no human remains.
func (g *Service) HandleDisconnect(player *internal.Player) {
	party := g.registry.DetachConn(player.Id)
	if party == nil {
		return
	}

	party.Mu.Lock()
	idx := party.IndexOf(player.Id)
	if idx < 0 {
		party.Mu.Unlock()
		return
	}

	wasCurrent := party.Phase == internal.PhasePlaying && idx == party.CurrentIndex
	party.Players = append(party.Players[:idx], party.Players[idx+1:]...)
	if idx < party.CurrentIndex {
		// Keep the index pointing at the same player after the shift.
		party.CurrentIndex--
	}

	if party.HostId == player.Id {
		for _, p := range party.Players {
			if !p.IsBot {
				party.HostId = p.Id
				p.IsHost = true
				log.Printf("[HandleDisconnect] party=%s: host transferred to %s (%s)", party.Code, p.Id, p.Name)
				break
			}
		}
	}

	if party.CountHumans() == 0 {
		g.cancelTurnTimerLocked(party)
		party.Phase = internal.PhaseFinished
		party.Mu.Unlock()
		g.registry.DeleteParty(party.Code)
		log.Printf("[HandleDisconnect] party=%s: last human left, party destroyed", party.Code)
		return
	}

	if party.Phase == internal.PhasePlaying {
		party.AliveAtRoundStart = party.CountAlive()

		if party.CountAlive() <= 1 {
			g.cancelTurnTimerLocked(party)
			party.Phase = internal.PhaseFinished
			state := party.Snapshot()
			party.Mu.Unlock()
			log.Printf("[HandleDisconnect] party=%s: not enough players after disconnect, finishing", party.Code)
			g.broadcast.ToParty(party, stateMessage(state))
			g.systemChat(party, fmt.Sprintf("%s left the game", player.Name))
			return
		}
	}

	if wasCurrent {
		g.cancelTurnTimerLocked(party)
		if party.CurrentIndex >= len(party.Players) {
			party.CurrentIndex = 0
		}

		next := party.NextAliveFrom(party.CurrentIndex)
		if next < 0 {
			party.Phase = internal.PhaseFinished
			state := party.Snapshot()
			party.Mu.Unlock()
			g.broadcast.ToParty(party, stateMessage(state))
			return
		}
		party.CurrentIndex = next
		party.Target = NextTarget()
		party.TimeLeft = party.MaxTime
		current := party.Players[next]
		state := party.Snapshot()
		party.Mu.Unlock()

		log.Printf("[HandleDisconnect] party=%s: current player %s left, turn passes to %s", party.Code, player.Id, current.Id)
		g.broadcast.ToParty(party, stateMessage(state))
		g.systemChat(party, fmt.Sprintf("%s disconnected. %s's turn!", player.Name, current.Name))
		g.systemChat(party, fmt.Sprintf("%s left the game", player.Name))

		if current.IsBot {
			g.RunBotTurn(party)
		} else {
			g.startTurnTimer(party)
		}
		return
	}

	state := party.Snapshot()
	party.Mu.Unlock()

	log.Printf("[HandleDisconnect] party=%s: %s (%s) left", party.Code, player.Id, player.Name)
	g.broadcast.ToParty(party, stateMessage(state))
	g.systemChat(party, fmt.Sprintf("%s left the game", player.Name))
}
