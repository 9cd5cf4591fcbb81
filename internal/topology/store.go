package topology

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"topodraw/internal/geom"
)

var (
	ErrDuplicateID = errors.New("duplicate id")
	ErrEmptyID     = errors.New("empty id")
)

// SymbolStore is the read/write surface the engine needs for symbols.
type SymbolStore interface {
	Symbol(id string) (Symbol, bool)
	SetPosition(id string, pos geom.Point) bool
}

// ConnectionStore is the read/write surface the engine needs for connections.
type ConnectionStore interface {
	Connection(id string) (Connection, bool)
	Connections() []Connection
	SetWaypoints(id string, wps []geom.Point) bool
}

// Store is an in-memory symbol and connection store safe for concurrent use.
// Every mutation bumps Revision so derived geometry can tell when its inputs
// are provably unchanged.
type Store struct {
	mu          sync.RWMutex
	revision    uint64
	symbols     map[string]Symbol
	symbolOrder []string
	conns       map[string]Connection
	connOrder   []string
}

func NewStore() *Store {
	return &Store{
		symbols: make(map[string]Symbol),
		conns:   make(map[string]Connection),
	}
}

// Revision returns the mutation counter.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Store) AddSymbol(sym Symbol) error {
	if sym.ID == "" {
		return fmt.Errorf("add symbol: %w", ErrEmptyID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.symbols[sym.ID]; ok {
		return fmt.Errorf("add symbol %q: %w", sym.ID, ErrDuplicateID)
	}
	s.symbols[sym.ID] = sym.clone()
	s.symbolOrder = append(s.symbolOrder, sym.ID)
	s.revision++
	return nil
}

// RemoveSymbol deletes a symbol. Connections that reference it are kept;
// rendering omits them until the reference resolves again.
func (s *Store) RemoveSymbol(id string) (Symbol, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sym, ok := s.symbols[id]
	if !ok {
		return Symbol{}, false
	}
	delete(s.symbols, id)
	s.symbolOrder = removeID(s.symbolOrder, id)
	s.revision++
	return sym, true
}

func (s *Store) Symbol(id string) (Symbol, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sym, ok := s.symbols[id]
	if !ok {
		return Symbol{}, false
	}
	return sym.clone(), true
}

// Symbols returns every symbol in insertion order.
func (s *Store) Symbols() []Symbol {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Symbol, 0, len(s.symbolOrder))
	for _, id := range s.symbolOrder {
		out = append(out, s.symbols[id].clone())
	}
	return out
}

// SetPosition moves a symbol. It reports false when the symbol is gone.
func (s *Store) SetPosition(id string, pos geom.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sym, ok := s.symbols[id]
	if !ok {
		return false
	}
	if sym.Position == pos {
		return true
	}
	sym.Position = pos
	s.symbols[id] = sym
	s.revision++
	return true
}

func (s *Store) SetPorts(id string, ports []Port) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sym, ok := s.symbols[id]
	if !ok {
		return false
	}
	sym.Ports = append([]Port(nil), ports...)
	s.symbols[id] = sym
	s.revision++
	return true
}

func (s *Store) AddConnection(c Connection) error {
	if c.ID == "" {
		return fmt.Errorf("add connection: %w", ErrEmptyID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conns[c.ID]; ok {
		return fmt.Errorf("add connection %q: %w", c.ID, ErrDuplicateID)
	}
	s.conns[c.ID] = c.clone()
	s.connOrder = append(s.connOrder, c.ID)
	s.revision++
	return nil
}

func (s *Store) RemoveConnection(id string) (Connection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conns[id]
	if !ok {
		return Connection{}, false
	}
	delete(s.conns, id)
	s.connOrder = removeID(s.connOrder, id)
	s.revision++
	return c, true
}

func (s *Store) Connection(id string) (Connection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.conns[id]
	if !ok {
		return Connection{}, false
	}
	return c.clone(), true
}

// Connections returns every connection in insertion order.
func (s *Store) Connections() []Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Connection, 0, len(s.connOrder))
	for _, id := range s.connOrder {
		out = append(out, s.conns[id].clone())
	}
	return out
}

// ConnectionsTouching returns the ids of connections attached to any of the
// given symbols, sorted.
func (s *Store) ConnectionsTouching(symbolIDs ...string) []string {
	want := make(map[string]struct{}, len(symbolIDs))
	for _, id := range symbolIDs {
		want[id] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, id := range s.connOrder {
		c := s.conns[id]
		_, src := want[c.SourceID]
		_, dst := want[c.TargetID]
		if src || dst {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func (s *Store) SetWaypoints(id string, wps []geom.Point) bool {
	return s.updateConnection(id, func(c *Connection) {
		c.Waypoints = cloneWaypoints(wps)
	})
}

func (s *Store) SetStyle(id string, style RoutingStyle) bool {
	return s.updateConnection(id, func(c *Connection) { c.Style = style })
}

func (s *Store) SetLayer(id string, layer Layer) bool {
	return s.updateConnection(id, func(c *Connection) { c.Layer = layer })
}

func (s *Store) SetPortIDs(id, sourcePort, targetPort string) bool {
	return s.updateConnection(id, func(c *Connection) {
		c.SourcePortID = sourcePort
		c.TargetPortID = targetPort
	})
}

func (s *Store) updateConnection(id string, fn func(*Connection)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conns[id]
	if !ok {
		return false
	}
	fn(&c)
	s.conns[id] = c
	s.revision++
	return true
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
