package game

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/MayoCodes/Robbery/internal"
	"github.com/MayoCodes/Robbery/internal/utils"
)

// =============================================================================
// WEBSOCKET CONNECTION HANDLING
// =============================================================================

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the HTTP connection and hands the socket to the
// per-connection read loop. The player has no name or party yet; both arrive
// with the first createParty/joinParty message.
func (g *Service) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade failed: ", err)
		return
	}

	player := &internal.Player{
		Id:      utils.GenerateID(8),
		Conn:    conn,
		Lives:   internal.StartingLives,
		Limiter: rate.NewLimiter(rate.Every(50*time.Millisecond), 10),
	}
	log.Printf("[HandleWebSocket] connection %s established", player.Id)

	go g.handleMessages(player)
}

// handleMessages is the per-connection read loop. It owns the connection's
// lifetime; when the loop exits the player is detached from their party.
func (g *Service) handleMessages(player *internal.Player) {
	defer func() {
		player.Conn.Close()
		g.HandleDisconnect(player)
	}()

	for {
		_, rawMessage, err := player.Conn.ReadMessage()
		if err != nil {
			log.Printf("[handleMessages] read error for %s: %v", player.Id, err)
			break
		}

		var baseMsg internal.Message[json.RawMessage]
		if err := json.Unmarshal(rawMessage, &baseMsg); err != nil {
			log.Printf("[handleMessages] failed to parse message from %s: %v", player.Id, err)
			continue
		}

		switch baseMsg.Type {
		case "createParty":
			var playerName string
			if err := json.Unmarshal(baseMsg.Data, &playerName); err != nil {
				log.Println("Error parsing data, wrong json", err)
				continue
			}
			g.CreateParty(player, playerName)
		case "joinParty":
			var data internal.JoinPartyData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				log.Println("Error parsing data, wrong json", err)
				continue
			}
			g.JoinParty(player, data.PlayerName, data.PartyCode)
		case "startGame":
			g.StartGame(player)
		case "submitWord":
			var word string
			if err := json.Unmarshal(baseMsg.Data, &word); err != nil {
				log.Println("Error parsing data, wrong json", err)
				continue
			}
			g.SubmitWord(player, word)
		case "typingUpdate":
			var word string
			if err := json.Unmarshal(baseMsg.Data, &word); err != nil {
				log.Println("Error parsing data, wrong json", err)
				continue
			}
			g.TypingUpdate(player, word)
		case "outOfAttempts":
			g.ForfeitTurn(player)
		case "addBot":
			g.AddBot(player)
		case "removeBot":
			var botId string
			if err := json.Unmarshal(baseMsg.Data, &botId); err != nil {
				log.Println("Error parsing data, wrong json", err)
				continue
			}
			g.RemoveBot(player, botId)
		case "updateTimerDuration":
			var seconds int
			if err := json.Unmarshal(baseMsg.Data, &seconds); err != nil {
				log.Println("Error parsing data, wrong json", err)
				continue
			}
			g.UpdateTimerDuration(player, seconds)
		case "chatMessage":
			var text string
			if err := json.Unmarshal(baseMsg.Data, &text); err != nil {
				log.Println("Error parsing data, wrong json", err)
				continue
			}
			g.ChatMessage(player, text)
		default:
			log.Printf("[handleMessages] unknown message type %q from %s", baseMsg.Type, player.Id)
		}
	}
}
