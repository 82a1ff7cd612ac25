package game

import (
	"log"
	"time"

	"github.com/MayoCodes/Robbery/internal"
)

// =============================================================================
// OUTBOUND EVENTS
// =============================================================================

// Broadcaster delivers outbound events to a party's connected clients. The
// engine only ever emits through this interface, which keeps event ordering
// observable in tests.
type Broadcaster interface {
	ToParty(party *internal.Party, msg internal.Message[any])
	ToPlayer(player *internal.Player, msg internal.Message[any]) error
}

type wsBroadcaster struct{}

// NewWSBroadcaster returns the production broadcaster that fans out over
// each player's websocket connection.
func NewWSBroadcaster() Broadcaster {
	return wsBroadcaster{}
}

// ToParty snapshots the player list under the read lock and writes outside
// it, so a slow client can never stall the engine while holding party state.
func (wsBroadcaster) ToParty(party *internal.Party, msg internal.Message[any]) {
	party.Mu.RLock()
	players := append([]*internal.Player(nil), party.Players...)
	party.Mu.RUnlock()

	for _, p := range players {
		if err := p.SafeWriteJSON(msg); err != nil {
			log.Printf("[ToParty] party=%s: write to %s failed: %v", party.Code, p.Id, err)
		}
	}
}

func (wsBroadcaster) ToPlayer(player *internal.Player, msg internal.Message[any]) error {
	return player.SafeWriteJSON(msg)
}

func stateMessage(state internal.PartyState) internal.Message[any] {
	return internal.Message[any]{Type: "gameStateUpdate", Data: state}
}

func timerMessage(secondsLeft int) internal.Message[any] {
	return internal.Message[any]{Type: "timerUpdate", Data: secondsLeft}
}

func typingMessage(playerId, word string) internal.Message[any] {
	return internal.Message[any]{
		Type: "playerTypingUpdate",
		Data: internal.TypingUpdateData{PlayerId: playerId, Word: word},
	}
}

func eliminatedMessage(playerId string) internal.Message[any] {
	return internal.Message[any]{Type: "playerEliminated", Data: playerId}
}

func errorMessage(text string) internal.Message[any] {
	return internal.Message[any]{Type: "error", Data: text}
}

// chat broadcasts a chat-channel event. kind is one of player, system,
// success, or error.
func (g *Service) chat(party *internal.Party, kind, text, playerName string) {
	g.broadcast.ToParty(party, internal.Message[any]{
		Type: "chatMessage",
		Data: internal.ChatMessageData{
			Type:       kind,
			Message:    text,
			PlayerName: playerName,
			Timestamp:  time.Now().UnixMilli(),
		},
	})
}

func (g *Service) systemChat(party *internal.Party, text string) {
	g.chat(party, "system", text, "")
}
