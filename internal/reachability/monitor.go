package reachability

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Prober interface {
	Reachable(ctx context.Context) bool
}

type Sink interface {
	SetConnected(connected bool) error
}

// Monitor turns periodic probes into connectivity transitions.
type Monitor struct {
	prober Prober
	sink   Sink

	mu    sync.Mutex
	known bool
	last  bool
}

// Check probes once and forwards the result when it differs from the last
// reported one. The first probe is always forwarded.
func (m *Monitor) Check(ctx context.Context) {
	execID := uuid.NewString()
	reachable := m.prober.Reachable(ctx)
	if ctx.Err() != nil {
		// shutting down; a cancelled probe says nothing about the network
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.known && m.last == reachable {
		return
	}

	log := logrus.WithFields(logrus.Fields{"exec_id": execID, "reachable": reachable})
	if err := m.sink.SetConnected(reachable); err != nil {
		log.WithError(err).Error("Failed to report connectivity change")
		return
	}
	m.known = true
	m.last = reachable
	log.Info("Reachability changed")
}

func NewMonitor(prober Prober, sink Sink) *Monitor {
	return &Monitor{prober: prober, sink: sink}
}
