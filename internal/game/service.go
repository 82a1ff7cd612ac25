package game

import (
	"time"

	"github.com/MayoCodes/Robbery/internal"
)

// Config carries the engine's pacing knobs. Defaults match the pacing the
// client animations were built around; tests compress them.
type Config struct {
	TickInterval     time.Duration
	EliminationGrace time.Duration
	RoundSettleDelay time.Duration
	GameOverDelay    time.Duration
	BotThinkDelay    time.Duration
	BotWrapUpDelay   time.Duration
	BotFailureRate   float64
}

func DefaultConfig() Config {
	return Config{
		TickInterval:     time.Second,
		EliminationGrace: internal.EliminationGrace,
		RoundSettleDelay: internal.RoundSettleDelay,
		GameOverDelay:    internal.GameOverDelay,
		BotThinkDelay:    internal.BotThinkDelay,
		BotWrapUpDelay:   internal.BotWrapUpDelay,
		BotFailureRate:   0.1,
	}
}

// Service is the authoritative party engine: lobby lifecycle, turn
// scheduling, word judgment, and bot turns all hang off it. It owns no
// party state directly; everything lives in the injected registry.
type Service struct {
	registry  *Registry
	broadcast Broadcaster
	cfg       Config
}

func NewService(registry *Registry, broadcast Broadcaster, cfg Config) *Service {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	return &Service{
		registry:  registry,
		broadcast: broadcast,
		cfg:       cfg,
	}
}

func (g *Service) Registry() *Registry {
	return g.registry
}
