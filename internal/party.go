package internal

import "strings"

// Helper methods on Party. All of them read or mutate party state and must
// be called with Mu held.

// CurrentPlayer returns the player whose turn it is, or nil when the index
// is out of range (possible transiently after a disconnect).
func (p *Party) CurrentPlayer() *Player {
	if p.CurrentIndex < 0 || p.CurrentIndex >= len(p.Players) {
		return nil
	}
	return p.Players[p.CurrentIndex]
}

func (p *Party) AlivePlayers() []*Player {
	alive := make([]*Player, 0, len(p.Players))
	for _, pl := range p.Players {
		if pl.Alive() {
			alive = append(alive, pl)
		}
	}
	return alive
}

func (p *Party) CountAlive() int {
	count := 0
	for _, pl := range p.Players {
		if pl.Alive() {
			count++
		}
	}
	return count
}

func (p *Party) CountHumans() int {
	count := 0
	for _, pl := range p.Players {
		if !pl.IsBot {
			count++
		}
	}
	return count
}

func (p *Party) FindPlayer(id string) *Player {
	for _, pl := range p.Players {
		if pl.Id == id {
			return pl
		}
	}
	return nil
}

func (p *Party) FindPlayerByName(name string) *Player {
	for _, pl := range p.Players {
		if pl.Name == name {
			return pl
		}
	}
	return nil
}

func (p *Party) IndexOf(id string) int {
	for i, pl := range p.Players {
		if pl.Id == id {
			return i
		}
	}
	return -1
}

// HasUsedWord reports whether word was already accepted this game.
// Comparison is case-insensitive; accepted words are stored lowercased.
func (p *Party) HasUsedWord(word string) bool {
	word = strings.ToLower(word)
	for _, used := range p.UsedWords {
		if used == word {
			return true
		}
	}
	return false
}

func (p *Party) ClearTyping() {
	for _, pl := range p.Players {
		pl.CurrentlyTyping = ""
	}
}

// NextAliveFrom returns the index of the first player with lives left at or
// after start, scanning circularly with at most len(Players) probes so the
// scan terminates even if no alive player exists. Returns -1 in that case.
func (p *Party) NextAliveFrom(start int) int {
	n := len(p.Players)
	if n == 0 {
		return -1
	}
	idx := ((start % n) + n) % n
	for probes := 0; probes < n; probes++ {
		if p.Players[idx].Alive() {
			return idx
		}
		idx = (idx + 1) % n
	}
	return -1
}

// Snapshot builds the canonical full-state broadcast payload from public
// player copies, so the caller can release Mu before any I/O.
func (p *Party) Snapshot() PartyState {
	players := make([]*Player, 0, len(p.Players))
	for _, pl := range p.Players {
		players = append(players, pl.ToPublicPlayer())
	}
	return PartyState{
		Code:                     p.Code,
		Host:                     p.HostId,
		Players:                  players,
		Phase:                    p.Phase,
		CurrentPlayerIndex:       p.CurrentIndex,
		Target:                   p.Target,
		TimeLeft:                 p.TimeLeft,
		MaxTime:                  p.MaxTime,
		Round:                    p.Round,
		UsedWords:                append([]string(nil), p.UsedWords...),
		TurnsThisRound:           p.TurnsThisRound,
		PlayersAliveAtRoundStart: p.AliveAtRoundStart,
	}
}
