package repository

import "sync"

// hub fans per-patient snapshots out to subscribers. Streams are conflated:
// every subscriber always receives the most recent snapshot, intermediate
// ones may be dropped while the consumer is slow.
type hub[T any] struct {
	mu   sync.Mutex
	subs map[string]map[*subscription[T]]struct{}
}

func newHub[T any]() *hub[T] {
	return &hub[T]{subs: make(map[string]map[*subscription[T]]struct{})}
}

type subscription[T any] struct {
	hub       *hub[T]
	patientID string

	mu     sync.Mutex
	closed bool
	ch     chan []T
}

func (h *hub[T]) subscribe(patientID string) *subscription[T] {
	s := &subscription[T]{hub: h, patientID: patientID, ch: make(chan []T, 1)}
	h.mu.Lock()
	set, ok := h.subs[patientID]
	if !ok {
		set = make(map[*subscription[T]]struct{})
		h.subs[patientID] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *hub[T]) publish(patientID string, snapshot []T) {
	h.mu.Lock()
	targets := make([]*subscription[T], 0, len(h.subs[patientID]))
	for s := range h.subs[patientID] {
		targets = append(targets, s)
	}
	h.mu.Unlock()

	for _, s := range targets {
		s.push(snapshot)
	}
}

func (h *hub[T]) remove(s *subscription[T]) {
	h.mu.Lock()
	if set, ok := h.subs[s.patientID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, s.patientID)
		}
	}
	h.mu.Unlock()
}

func (s *subscription[T]) push(snapshot []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- snapshot:
	default:
		// Stale snapshot still buffered; replace it.
		select {
		case <-s.ch:
		default:
		}
		select {
		case s.ch <- snapshot:
		default:
		}
	}
}

func (s *subscription[T]) close() {
	s.hub.remove(s)
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	s.mu.Unlock()
}
