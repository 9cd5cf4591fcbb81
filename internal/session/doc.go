// Package session implements the two pointer-gesture transactions that
// mutate the canvas store: dragging a selection of symbols (DragSession) and
// editing the waypoints of one connection (WaypointSession).
//
// Both kinds share a Coordinator, which admits one active session at a time.
// Starting a new gesture implicitly ends the previous one; no session ever
// rolls back what it already wrote.
package session
