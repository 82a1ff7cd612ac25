package internal

import (
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

type Player struct {
	Id    string          `json:"id"`
	Conn  *websocket.Conn `json:"-"`
	Party *Party          `json:"-"` // Avoid circular reference in JSON
	Name  string          `json:"name"`

	Score int `json:"score"`
	Lives int `json:"lives"`

	IsHost bool `json:"isHost"`
	IsBot  bool `json:"isBot"`

	// CurrentlyTyping mirrors the player's in-progress input for the
	// live-typing display. Cleared on submit, turn change, and elimination.
	CurrentlyTyping string `json:"currentlyTyping"`

	// Limiter throttles typing/chat traffic from this connection. Nil for
	// bots.
	Limiter *rate.Limiter `json:"-"`

	mu sync.Mutex
}

func (p *Player) Alive() bool {
	return p.Lives > 0
}

// SafeWriteJSON serializes writes to the underlying connection so
// concurrent broadcasts never interleave frames. Bots carry no connection
// and are skipped.
func (p *Player) SafeWriteJSON(v any) error {
	if p.Conn == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Conn.WriteJSON(v)
}

// ToPublicPlayer returns a copy safe to embed in broadcasts, without the
// connection or party back-reference.
func (p *Player) ToPublicPlayer() *Player {
	return &Player{
		Id:              p.Id,
		Name:            p.Name,
		Score:           p.Score,
		Lives:           p.Lives,
		IsHost:          p.IsHost,
		IsBot:           p.IsBot,
		CurrentlyTyping: p.CurrentlyTyping,
	}
}
