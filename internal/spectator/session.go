package spectator

import "sync"

// SessionID identifies one watcher.
type SessionID string

// SessionHandle is the transport-neutral side of a watcher, so games can
// publish without knowing about Bubble Tea or HTTP.
type SessionHandle interface {
	ID() SessionID

	// Send must not block.
	Send(evt Event)

	Done() <-chan struct{}
}

// ChannelSession delivers events through a buffered channel. When the buffer
// is full the oldest event is dropped; a slow watcher never stalls a game.
type ChannelSession struct {
	id       SessionID
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSession creates a session buffering up to bufferSize events.
func NewChannelSession(id SessionID, bufferSize int) *ChannelSession {
	if bufferSize < 1 {
		bufferSize = 16
	}
	return &ChannelSession{
		id:     id,
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

func (s *ChannelSession) ID() SessionID {
	return s.id
}

// Send queues evt, dropping the oldest queued event if needed.
func (s *ChannelSession) Send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
		return
	default:
	}

	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- evt:
	default:
	}
}

// Events returns the receive side of the session.
func (s *ChannelSession) Events() <-chan Event {
	return s.events
}

func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Close marks the session as finished. Safe to call more than once.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// watchers is the set of sessions attached to one game.
type watchers struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle
}

func newWatchers() *watchers {
	return &watchers{sessions: make(map[SessionID]SessionHandle)}
}

func (w *watchers) add(s SessionHandle) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sessions[s.ID()] = s
}

func (w *watchers) remove(id SessionID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.sessions, id)
}

func (w *watchers) count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.sessions)
}

// broadcast sends evt to every live session and forgets finished ones.
func (w *watchers) broadcast(evt Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, s := range w.sessions {
		select {
		case <-s.Done():
			delete(w.sessions, id)
			continue
		default:
		}
		s.Send(evt)
	}
}

// closeAll sends a final event and detaches every session.
func (w *watchers) closeAll(evt Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, s := range w.sessions {
		s.Send(evt)
		delete(w.sessions, id)
	}
}
