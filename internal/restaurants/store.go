package restaurants

import (
	"sync"

	"github.com/google/uuid"

	"github.com/example/tarest/internal/logger"
)

type EventKind int

const (
	EventReplaced EventKind = iota + 1
)

type Event struct {
	Kind       EventKind
	SnapshotID uuid.UUID
	Count      int
}

const subscriberBuffer = 8

// Store owns the current snapshot. Replace is the only writer; readers get
// copies of the slice header and must not mutate restaurants in place.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
	has  bool

	subMu sync.Mutex
	subs  map[<-chan Event]chan Event
}

func NewStore() *Store {
	return &Store{subs: map[<-chan Event]chan Event{}}
}

// Replace swaps in snap and notifies subscribers. Restaurants without
// image names get the placeholders.
func (s *Store) Replace(snap Snapshot) {
	list := make([]Restaurant, len(snap.Restaurants))
	for i, r := range snap.Restaurants {
		list[i] = r.WithDefaults()
	}
	snap.Restaurants = list

	s.mu.Lock()
	s.snap = snap
	s.has = true
	s.mu.Unlock()

	s.publish(Event{Kind: EventReplaced, SnapshotID: snap.ID, Count: len(list)})
}

// Snapshot returns the current snapshot and whether one was ever loaded.
func (s *Store) Snapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.has
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snap.Restaurants)
}

// Get returns the restaurant at feed index i.
func (s *Store) Get(i int) (Restaurant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.snap.Restaurants) {
		return Restaurant{}, false
	}
	return s.snap.Restaurants[i], true
}

// Subscribe returns a channel receiving future events. Events are dropped
// for a subscriber whose buffer is full.
func (s *Store) Subscribe() <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	s.subMu.Lock()
	if s.subs == nil {
		s.subs = map[<-chan Event]chan Event{}
	}
	s.subs[ch] = ch
	s.subMu.Unlock()
	return ch
}

// Unsubscribe stops delivery to ch and closes it.
func (s *Store) Unsubscribe(ch <-chan Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if c, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(c)
	}
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, c := range s.subs {
		select {
		case c <- ev:
		default:
			logger.Named("store").Warn().Int("kind", int(ev.Kind)).Msg("subscriber full, event dropped")
		}
	}
}
