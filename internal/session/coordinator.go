package session

import "sync"

type Kind string

const (
	KindNone     Kind = ""
	KindDrag     Kind = "drag"
	KindWaypoint Kind = "waypoint"
)

// Coordinator holds the single active-session slot shared by every drag and
// waypoint session on a canvas. Beginning a session ends whichever session
// held the slot; the superseded session's token stops being honoured, so a
// stale handle can no longer write to the store.
type Coordinator struct {
	mu        sync.Mutex
	next      uint64
	owner     uint64
	kind      Kind
	interrupt func()
}

func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// acquire takes the slot and returns the new token. The previous owner's
// interrupt runs after the slot has changed hands and outside the lock.
func (c *Coordinator) acquire(kind Kind, interrupt func()) uint64 {
	c.mu.Lock()
	prev := c.interrupt
	c.next++
	tok := c.next
	c.owner, c.kind, c.interrupt = tok, kind, interrupt
	c.mu.Unlock()

	if prev != nil {
		prev()
	}
	return tok
}

func (c *Coordinator) holds(tok uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return tok != 0 && c.owner == tok
}

func (c *Coordinator) release(tok uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tok != 0 && c.owner == tok {
		c.owner, c.kind, c.interrupt = 0, KindNone, nil
	}
}

// Active reports which kind of session currently holds the slot.
func (c *Coordinator) Active() Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

// EndActive ends whatever session holds the slot, as losing pointer focus
// does. Positions already written stay written.
func (c *Coordinator) EndActive() {
	c.mu.Lock()
	prev := c.interrupt
	c.owner, c.kind, c.interrupt = 0, KindNone, nil
	c.mu.Unlock()

	if prev != nil {
		prev()
	}
}
