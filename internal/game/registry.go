package game

import (
	"errors"
	"log"
	"sync"

	"github.com/MayoCodes/Robbery/internal"
	"github.com/MayoCodes/Robbery/internal/utils"
)

// =============================================================================
// PARTY REGISTRY
// =============================================================================

var ErrPartyNotFound = errors.New("party not found")

// Registry owns the process-wide code->Party and connection->code indexes.
// It is constructed once at startup and injected wherever party lookup is
// needed; party state itself is guarded by each Party's own mutex, the
// registry mutex only covers the two maps.
type Registry struct {
	mu      sync.RWMutex
	parties map[string]*internal.Party
	conns   map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		parties: make(map[string]*internal.Party),
		conns:   make(map[string]string),
	}
}

// CreateParty allocates a fresh unique code, registers a lobby party with
// the given player as host, and returns it.
func (r *Registry) CreateParty(host *internal.Player) *internal.Party {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := utils.GeneratePartyCode()
	for _, taken := r.parties[code]; taken; _, taken = r.parties[code] {
		code = utils.GeneratePartyCode()
	}

	host.IsHost = true
	host.Lives = internal.StartingLives
	host.Score = 0

	party := &internal.Party{
		Code:     code,
		HostId:   host.Id,
		Players:  []*internal.Player{host},
		Phase:    internal.PhaseLobby,
		TimeLeft: internal.DefaultTurnSeconds,
		MaxTime:  internal.DefaultTurnSeconds,
		Round:    1,
	}
	host.Party = party

	r.parties[code] = party
	r.conns[host.Id] = code

	log.Printf("[CreateParty] party=%s created by %s (%s)", code, host.Id, host.Name)
	return party
}

// JoinParty appends a non-host player to an existing party. Joins are
// accepted in any phase; a mid-game joiner enters the rotation when the
// next-player scan reaches them.
func (r *Registry) JoinParty(code string, p *internal.Player) (*internal.Party, error) {
	r.mu.Lock()
	party, ok := r.parties[code]
	if !ok {
		r.mu.Unlock()
		log.Printf("[JoinParty] party=%s not found for %s", code, p.Id)
		return nil, ErrPartyNotFound
	}
	r.conns[p.Id] = code
	r.mu.Unlock()

	p.IsHost = false
	p.Lives = internal.StartingLives
	p.Score = 0

	party.Mu.Lock()
	p.Party = party
	party.Players = append(party.Players, p)
	total := len(party.Players)
	party.Mu.Unlock()

	log.Printf("[JoinParty] party=%s: %s (%s) joined, %d players total", code, p.Id, p.Name, total)
	return party, nil
}

func (r *Registry) Lookup(code string) (*internal.Party, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	party, ok := r.parties[code]
	return party, ok
}

// PartyFor resolves a connection identity to its party, if any.
func (r *Registry) PartyFor(connId string) (*internal.Party, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	code, ok := r.conns[connId]
	if !ok {
		return nil, false
	}
	party, ok := r.parties[code]
	return party, ok
}

// DetachConn drops the connection->code mapping and returns the party it
// pointed at. Idempotent: a second call for the same connection returns nil.
func (r *Registry) DetachConn(connId string) *internal.Party {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.conns[connId]
	if !ok {
		return nil
	}
	delete(r.conns, connId)
	return r.parties[code]
}

func (r *Registry) DeleteParty(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.parties[code]; ok {
		delete(r.parties, code)
		log.Printf("[DeleteParty] party=%s removed from registry", code)
	}
}

// Counts reports registry occupancy for the health endpoint.
func (r *Registry) Counts() (parties int, connections int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.parties), len(r.conns)
}
