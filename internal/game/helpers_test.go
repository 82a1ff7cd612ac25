package game

import (
	"sync"
	"time"

	"github.com/MayoCodes/Robbery/internal"
)

// recordingBroadcaster captures emitted events in order so tests can assert
// both state transitions and the sequence clients would observe.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []internal.Message[any]
}

func (r *recordingBroadcaster) ToParty(party *internal.Party, msg internal.Message[any]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, msg)
}

func (r *recordingBroadcaster) ToPlayer(player *internal.Player, msg internal.Message[any]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, msg)
	return nil
}

func (r *recordingBroadcaster) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *recordingBroadcaster) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// newTestService builds an engine with pacing compressed to milliseconds so
// timer driven paths complete quickly under test.
func newTestService(botFailureRate float64) (*Service, *recordingBroadcaster) {
	rb := &recordingBroadcaster{}
	cfg := Config{
		TickInterval:     10 * time.Millisecond,
		EliminationGrace: 5 * time.Millisecond,
		RoundSettleDelay: 5 * time.Millisecond,
		GameOverDelay:    5 * time.Millisecond,
		BotThinkDelay:    5 * time.Millisecond,
		BotWrapUpDelay:   5 * time.Millisecond,
		BotFailureRate:   botFailureRate,
	}
	return NewService(NewRegistry(), rb, cfg), rb
}

// newFrozenClockService keeps the countdown ticker effectively stopped so
// submission driven sequences run deterministically; grace and settle
// delays stay compressed.
func newFrozenClockService(botFailureRate float64) (*Service, *recordingBroadcaster) {
	rb := &recordingBroadcaster{}
	cfg := Config{
		TickInterval:     time.Hour,
		EliminationGrace: 5 * time.Millisecond,
		RoundSettleDelay: 5 * time.Millisecond,
		GameOverDelay:    5 * time.Millisecond,
		BotThinkDelay:    5 * time.Millisecond,
		BotWrapUpDelay:   5 * time.Millisecond,
		BotFailureRate:   botFailureRate,
	}
	return NewService(NewRegistry(), rb, cfg), rb
}

func newTestPlayer(id, name string) *internal.Player {
	return &internal.Player{Id: id, Name: name, Lives: internal.StartingLives}
}

// snap reads a consistent state snapshot under the party lock.
func snap(party *internal.Party) internal.PartyState {
	party.Mu.RLock()
	defer party.Mu.RUnlock()
	return party.Snapshot()
}

// setTarget pins the next submission's target so word judgment is
// deterministic despite the random draw on turn change.
func setTarget(party *internal.Party, target string) {
	party.Mu.Lock()
	party.Target = target
	party.Mu.Unlock()
}
