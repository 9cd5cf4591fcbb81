package session

import (
	"sync"

	"topodraw/internal/geom"
	"topodraw/internal/topology"
)

// DragStore is the symbol surface a drag session writes to.
type DragStore interface {
	Symbol(id string) (topology.Symbol, bool)
	SetPosition(id string, pos geom.Point) bool
}

// connectionIndex is implemented by stores that can report which
// connections a set of symbols touches.
type connectionIndex interface {
	ConnectionsTouching(symbolIDs ...string) []string
}

// Frame is the outcome of one Move: the symbols written this frame and the
// connections whose geometry must be re-derived.
type Frame struct {
	Moved       []string
	Connections []string
}

// DragResult describes a finished gesture.
type DragResult struct {
	DraggedID string
	Final     geom.Point
	Peers     []string
}

// DragSession propagates one symbol's drag to every other selected symbol.
// Peer positions are always snapshot + (current - origin), so the number of
// intermediate moves has no effect on where peers end up.
type DragSession struct {
	store DragStore
	coord *Coordinator

	mu        sync.Mutex
	token     uint64
	draggedID string
	origin    geom.Point
	last      geom.Point
	peerIDs   []string
	snapshot  map[string]geom.Point
}

func NewDragSession(store DragStore, coord *Coordinator) *DragSession {
	if coord == nil {
		coord = NewCoordinator()
	}
	return &DragSession{store: store, coord: coord}
}

// Start snapshots the dragged symbol and, when it is part of a selection of
// more than one symbol, every other selected symbol. Devices and shapes are
// treated alike. It reports false when the dragged symbol does not exist.
func (d *DragSession) Start(draggedID string, selection []string) bool {
	dragged, ok := d.store.Symbol(draggedID)
	if !ok {
		return false
	}

	var peerIDs []string
	snapshot := make(map[string]geom.Point)
	if len(selection) > 1 && contains(selection, draggedID) {
		for _, id := range selection {
			if id == draggedID {
				continue
			}
			if _, dup := snapshot[id]; dup {
				continue
			}
			sym, ok := d.store.Symbol(id)
			if !ok {
				continue
			}
			snapshot[id] = sym.Position
			peerIDs = append(peerIDs, id)
		}
	}

	tok := d.coord.acquire(KindDrag, d.interrupt)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.token = tok
	d.draggedID = draggedID
	d.origin = dragged.Position
	d.last = dragged.Position
	d.peerIDs = peerIDs
	d.snapshot = snapshot
	return true
}

// Move writes the dragged symbol at pos and every peer at its snapshot plus
// the drag delta. Peers that vanished from the store are skipped.
func (d *DragSession) Move(pos geom.Point) (Frame, bool) {
	if !pos.IsFinite() {
		return Frame{}, false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.draggedID == "" || !d.coord.holds(d.token) {
		return Frame{}, false
	}

	var f Frame
	if d.store.SetPosition(d.draggedID, pos) {
		f.Moved = append(f.Moved, d.draggedID)
	}
	d.last = pos

	delta := pos.Sub(d.origin)
	for _, id := range d.peerIDs {
		if d.store.SetPosition(id, d.snapshot[id].Add(delta)) {
			f.Moved = append(f.Moved, id)
		}
	}

	if idx, ok := d.store.(connectionIndex); ok && len(f.Moved) > 0 {
		f.Connections = idx.ConnectionsTouching(f.Moved...)
	}
	return f, true
}

// End discards the session. There is no rollback: whatever Move wrote
// stands.
func (d *DragSession) End() (DragResult, bool) {
	d.mu.Lock()
	if d.draggedID == "" {
		d.mu.Unlock()
		return DragResult{}, false
	}
	res := DragResult{
		DraggedID: d.draggedID,
		Final:     d.last,
		Peers:     append([]string(nil), d.peerIDs...),
	}
	tok := d.token
	d.reset()
	d.mu.Unlock()

	d.coord.release(tok)
	return res, true
}

// Active reports the dragged symbol id while a gesture is in progress.
func (d *DragSession) Active() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draggedID, d.draggedID != ""
}

// Origin returns the snapshotted start position of a symbol in the current
// gesture, dragged or peer.
func (d *DragSession) Origin(id string) (geom.Point, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if id != "" && id == d.draggedID {
		return d.origin, true
	}
	p, ok := d.snapshot[id]
	return p, ok
}

func (d *DragSession) interrupt() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

func (d *DragSession) reset() {
	d.token = 0
	d.draggedID = ""
	d.peerIDs = nil
	d.snapshot = nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
