package gateway

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Ticker delivers one engine tick per second. The engine never owns a wall
// clock; this driver is the only source of spontaneous operations, and the
// clockwork abstraction lets tests drive it with a fake clock.
type Ticker struct {
	clock clockwork.Clock
	tick  func()
}

func NewTicker(clk clockwork.Clock, tick func()) *Ticker {
	return &Ticker{clock: clk, tick: tick}
}

// Run fires ticks until the context is done.
func (t *Ticker) Run(ctx context.Context) {
	ticker := t.clock.NewTicker(time.Second)
	defer ticker.Stop()

	log.Info().Msg("tick driver started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("tick driver stopped")
			return
		case <-ticker.Chan():
			t.tick()
		}
	}
}
