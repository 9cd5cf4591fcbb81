// Package topology holds the canvas data model (symbols, ports and
// connections) and an in-memory store implementing the read/write surface
// the routing engine and the edit sessions depend on.
//
// The store is the only shared mutable resource. It is guarded by a
// readers-writer lock and hands out copies, so callers never alias the
// stored waypoint or port slices.
package topology
