package rules

import (
	"context"
	"log"
	"time"
)

// Poller sweeps the active rules on a fixed interval.
type Poller struct {
	engine   *Engine
	interval time.Duration
}

func NewPoller(engine *Engine, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Poller{engine: engine, interval: interval}
}

func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := p.engine.EvaluateAll(ctx, time.Now())
			if err != nil {
				log.Printf("rule poller: evaluation failed: %v", err)
				continue
			}
			if result.Result.Succeeded > 0 || len(result.Result.Failed) > 0 {
				log.Printf("rule poller: spawned %d work orders, %d failures",
					result.Result.Succeeded, len(result.Result.Failed))
			}
		}
	}
}
