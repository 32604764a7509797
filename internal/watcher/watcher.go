package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/tarest/internal/logger"
	"github.com/example/tarest/internal/restaurants"
	"github.com/example/tarest/internal/status"
)

// Change is emitted when a restaurant's phrase differs from the previous tick.
type Change struct {
	Index int           `json:"index"`
	Name  string        `json:"name"`
	From  status.Phrase `json:"from"`
	To    status.Phrase `json:"to"`
	At    time.Time     `json:"at"`
}

const DefaultInterval = 30 * time.Second

// Watcher periodically re-evaluates every restaurant in Store.
type Watcher struct {
	Store    *restaurants.Store
	Interval time.Duration
	// Clock defaults to time.Now.
	Clock    func() time.Time
	OnChange func(Change)

	mu       sync.Mutex
	baseline []status.Phrase
	// snapshot the baseline was evaluated against
	baseID uuid.UUID
}

func (w *Watcher) Run(ctx context.Context) error {
	log := logger.Named("watcher")
	events := w.Store.Subscribe()
	defer w.Store.Unsubscribe(events)

	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	// kick immediately
	w.Tick()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Kind == restaurants.EventReplaced {
				log.Info().Str("snapshot", ev.SnapshotID.String()).Int("count", ev.Count).Msg("restaurants replaced, baseline reset")
				w.Reset()
			}
		case <-t.C:
			w.Tick()
		}
	}
}

// Reset re-evaluates the store without emitting changes.
func (w *Watcher) Reset() {
	snap, _ := w.Store.Snapshot()
	current := phrases(snap.Restaurants, w.now())
	w.mu.Lock()
	w.baseline = current
	w.baseID = snap.ID
	w.mu.Unlock()
}

// Tick evaluates the store, reports differences to the previous tick and
// returns them. The first tick, and the first tick after the store switched
// to another snapshot, only record the baseline.
func (w *Watcher) Tick() []Change {
	now := w.now()
	snap, _ := w.Store.Snapshot()
	current := phrases(snap.Restaurants, now)

	w.mu.Lock()
	prev, prevID := w.baseline, w.baseID
	w.baseline, w.baseID = current, snap.ID
	w.mu.Unlock()

	if prev == nil || prevID != snap.ID || len(prev) != len(current) {
		return nil
	}

	var changes []Change
	for i, p := range current {
		if prev[i] == p {
			continue
		}
		changes = append(changes, Change{
			Index: i,
			Name:  snap.Restaurants[i].Name,
			From:  prev[i],
			To:    p,
			At:    now,
		})
	}

	log := logger.Named("watcher")
	for _, c := range changes {
		log.Info().Int("index", c.Index).Str("name", c.Name).
			Stringer("from", c.From).Stringer("to", c.To).Msg("status changed")
		if w.OnChange != nil {
			w.OnChange(c)
		}
	}
	return changes
}

func phrases(list []restaurants.Restaurant, now time.Time) []status.Phrase {
	out := make([]status.Phrase, len(list))
	for i, r := range list {
		out[i] = status.At(r.Hours, now)
	}
	return out
}

func (w *Watcher) now() time.Time {
	if w.Clock != nil {
		return w.Clock()
	}
	return time.Now()
}
