package pm

import (
	"context"
	"log"
	"time"
)

// Poller periodically flips past-due schedules to Overdue.
type Poller struct {
	service  *Service
	interval time.Duration
}

func NewPoller(service *Service, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Poller{service: service, interval: interval}
}

func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.service.SweepOverdue(ctx, time.Now())
			if err != nil {
				log.Printf("pm poller: sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("pm poller: marked %d schedules overdue", n)
			}
		}
	}
}
