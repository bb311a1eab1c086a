package events

import (
	"sync"

	"github.com/taskward/taskward/models"
)

// Event types published on task mutations.
const (
	TaskCreated = "task_created"
	TaskUpdated = "task_updated"
	TaskDeleted = "task_deleted"
)

// Event is one task mutation as delivered to the owner's stream.
type Event struct {
	Type string      `json:"type"`
	Task models.Task `json:"task"`
}

// Session is one connected stream for one owner.
type Session struct {
	ownerID string
	C       chan Event
}

// Broker fans task mutations out to the owner's connected sessions.
// It is the only shared in-process structure and sits off the request
// path: Publish never blocks a request on a slow client.
type Broker struct {
	mu       sync.Mutex
	sessions map[string][]*Session
}

func NewBroker() *Broker {
	return &Broker{sessions: make(map[string][]*Session)}
}

// Subscribe registers a new session for the owner.
func (b *Broker) Subscribe(ownerID string) *Session {
	s := &Session{ownerID: ownerID, C: make(chan Event, 16)}
	b.mu.Lock()
	b.sessions[ownerID] = append(b.sessions[ownerID], s)
	b.mu.Unlock()
	return s
}

// Unsubscribe removes a session; its channel is left open so a
// concurrent Publish cannot panic on send.
func (b *Broker) Unsubscribe(s *Session) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.sessions[s.ownerID]
	for i, cur := range list {
		if cur == s {
			b.sessions[s.ownerID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(b.sessions[s.ownerID]) == 0 {
		delete(b.sessions, s.ownerID)
	}
}

// Publish delivers an event to every session of the owner. Events for
// sessions with full buffers are dropped.
func (b *Broker) Publish(ownerID string, event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.sessions[ownerID] {
		select {
		case s.C <- event:
		default:
		}
	}
}
