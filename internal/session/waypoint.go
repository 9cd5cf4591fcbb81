package session

import (
	"sync"

	"topodraw/internal/geom"
	"topodraw/internal/routing"
	"topodraw/internal/topology"
)

// WaypointStore is the connection surface a waypoint session edits.
type WaypointStore interface {
	Connection(id string) (topology.Connection, bool)
	SetWaypoints(id string, wps []geom.Point) bool
}

// WaypointDrag identifies the waypoint handle being dragged.
type WaypointDrag struct {
	ConnectionID string
	Index        int
}

// WaypointSession creates, drags and deletes single waypoints. At most one
// waypoint is dragged at a time across all sessions sharing a Coordinator.
type WaypointSession struct {
	store WaypointStore
	coord *Coordinator

	mu    sync.Mutex
	token uint64
	drag  *WaypointDrag
}

func NewWaypointSession(store WaypointStore, coord *Coordinator) *WaypointSession {
	if coord == nil {
		coord = NewCoordinator()
	}
	return &WaypointSession{store: store, coord: coord}
}

// Start begins dragging waypoint index of connID, ending any active session
// first. It reports false when the connection or index does not exist.
func (s *WaypointSession) Start(connID string, index int) bool {
	c, ok := s.store.Connection(connID)
	if !ok || index < 0 || index >= len(c.Waypoints) {
		return false
	}

	tok := s.coord.acquire(KindWaypoint, s.interrupt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = tok
	s.drag = &WaypointDrag{ConnectionID: connID, Index: index}
	return true
}

// Move places the dragged waypoint at pos, already in canvas coordinates.
// It is ignored unless (connID, index) is the waypoint being dragged.
func (s *WaypointSession) Move(connID string, index int, pos geom.Point) bool {
	if !pos.IsFinite() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag == nil || s.drag.ConnectionID != connID || s.drag.Index != index {
		return false
	}
	if !s.coord.holds(s.token) {
		s.drag = nil
		return false
	}

	c, ok := s.store.Connection(connID)
	if !ok || index >= len(c.Waypoints) {
		return false
	}
	c.Waypoints[index] = pos
	return s.store.SetWaypoints(connID, c.Waypoints)
}

// End finishes the drag. The last applied position stays.
func (s *WaypointSession) End() {
	s.mu.Lock()
	tok := s.token
	s.token, s.drag = 0, nil
	s.mu.Unlock()

	s.coord.release(tok)
}

// Active returns the waypoint being dragged, if any.
func (s *WaypointSession) Active() (WaypointDrag, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag == nil {
		return WaypointDrag{}, false
	}
	return *s.drag, true
}

// Delete removes waypoint index from connID, keeping the order of the rest.
// Deleting the waypoint under drag ends that drag.
func (s *WaypointSession) Delete(connID string, index int) bool {
	c, ok := s.store.Connection(connID)
	if !ok || index < 0 || index >= len(c.Waypoints) {
		return false
	}
	wps := append(c.Waypoints[:index:index], c.Waypoints[index+1:]...)
	if !s.store.SetWaypoints(connID, wps) {
		return false
	}

	s.mu.Lock()
	var endTok uint64
	if d := s.drag; d != nil && d.ConnectionID == connID {
		switch {
		case d.Index == index:
			endTok = s.token
			s.token, s.drag = 0, nil
		case d.Index > index:
			d.Index--
		}
	}
	s.mu.Unlock()

	if endTok != 0 {
		s.coord.release(endTok)
	}
	return true
}

// Insert adds a waypoint at index, clamped to the valid range, and returns
// the index it landed on.
func (s *WaypointSession) Insert(connID string, index int, pos geom.Point) (int, bool) {
	if !pos.IsFinite() {
		return -1, false
	}
	c, ok := s.store.Connection(connID)
	if !ok {
		return -1, false
	}
	index = max(0, min(index, len(c.Waypoints)))

	wps := make([]geom.Point, 0, len(c.Waypoints)+1)
	wps = append(wps, c.Waypoints[:index]...)
	wps = append(wps, pos)
	wps = append(wps, c.Waypoints[index:]...)
	if !s.store.SetWaypoints(connID, wps) {
		return -1, false
	}

	s.mu.Lock()
	if d := s.drag; d != nil && d.ConnectionID == connID && d.Index >= index {
		d.Index++
	}
	s.mu.Unlock()
	return index, true
}

// InsertNearest adds a waypoint at pos on the segment of the rendered path
// closest to it. A connection without waypoints always inserts at 0, since
// its synthesized corners are not stored.
func (s *WaypointSession) InsertNearest(connID string, rendered []float64, pos geom.Point) (int, bool) {
	c, ok := s.store.Connection(connID)
	if !ok {
		return -1, false
	}
	index := 0
	if len(c.Waypoints) > 0 {
		seg, _ := routing.NearestSegment(rendered, pos)
		if seg >= 0 {
			index = seg
		}
	}
	return s.Insert(connID, index, pos)
}

func (s *WaypointSession) interrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.drag = 0, nil
}
