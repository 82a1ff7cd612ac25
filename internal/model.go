package internal

import (
	"context"
	"sync"
	"time"
)

const (
	StartingLives     = 3
	MinPlayersToStart = 2

	DefaultTurnSeconds = 15
	MinTurnSeconds     = 8
	MaxTurnSeconds     = 20

	// Pacing delays exist purely so clients can play their animations;
	// correctness never depends on them.
	EliminationGrace = 1 * time.Second
	RoundSettleDelay = 2500 * time.Millisecond
	GameOverDelay    = 2 * time.Second
	BotThinkDelay    = 2 * time.Second
	BotWrapUpDelay   = 1 * time.Second
)

type GamePhase string

const (
	PhaseLobby    GamePhase = "lobby"
	PhasePlaying  GamePhase = "playing"
	PhaseFinished GamePhase = "finished"
)

// TurnTimer is a party's exclusively owned countdown handle. At most one
// live handle exists per party: every arm cancels the previous one first,
// and the ticker goroutine compares Context identity before touching any
// state, so a stale timer can never double-decrement the clock.
type TurnTimer struct {
	IsActive bool
	Context  context.Context
	Cancel   context.CancelFunc
}

type Party struct {
	Code   string
	HostId string

	// Players is the turn order: join/bot-add order, shrunk only by
	// disconnect. Eliminated players stay in the list and spectate.
	Players []*Player

	Phase        GamePhase
	CurrentIndex int
	Target       string
	TimeLeft     int
	MaxTime      int

	Round             int
	TurnsThisRound    int
	AliveAtRoundStart int

	// UsedWords holds every accepted word, lowercased, for the whole game.
	// Cleared only when a new game starts.
	UsedWords []string

	Timer *TurnTimer

	// Mu serializes every mutation of this party. Socket handlers, timer
	// callbacks, bot continuations, and disconnects all take it before
	// touching state; different parties never share it.
	Mu sync.RWMutex
}

// PartyState is the canonical full-state snapshot broadcast after every
// mutation. Field names match the wire protocol the client expects.
type PartyState struct {
	Code                     string    `json:"code"`
	Host                     string    `json:"host"`
	Players                  []*Player `json:"players"`
	Phase                    GamePhase `json:"phase"`
	CurrentPlayerIndex       int       `json:"currentPlayerIndex"`
	Target                   string    `json:"target"`
	TimeLeft                 int       `json:"timeLeft"`
	MaxTime                  int       `json:"maxTime"`
	Round                    int       `json:"round"`
	UsedWords                []string  `json:"usedWords"`
	TurnsThisRound           int       `json:"turnsThisRound"`
	PlayersAliveAtRoundStart int       `json:"playersAliveAtRoundStart"`
}
