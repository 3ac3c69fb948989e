package runtime

import (
	"fmt"
	"sort"

	"github.com/aretw0/circuit/pkg/domain"
)

// Terminal is one electrical connection point. Its lifetime is that of its
// owning Component; link state lives in the engine's linkTable.
type Terminal struct {
	id    domain.TerminalID
	name  string
	owner *Component
}

// ID returns the terminal address ("R1.a").
func (t *Terminal) ID() domain.TerminalID { return t.id }

// Name returns the terminal name within its component ("a").
func (t *Terminal) Name() string { return t.name }

// Owner returns the component that owns the terminal.
func (t *Terminal) Owner() *Component { return t.owner }

// edge is a single connection, owned by the terminal that initiated it.
type edge struct {
	from *Terminal
	to   *Terminal
}

// linkTable indexes every terminal to the (at most one) edge touching it.
// A terminal is therefore either an initiator or a receiver, never both.
type linkTable struct {
	byTerminal map[*Terminal]*edge
}

func newLinkTable() *linkTable {
	return &linkTable{byTerminal: make(map[*Terminal]*edge)}
}

// outgoing returns the terminal t links to, if t initiated its edge.
func (lt *linkTable) outgoing(t *Terminal) *Terminal {
	if e := lt.byTerminal[t]; e != nil && e.from == t {
		return e.to
	}
	return nil
}

// incoming returns the terminal linking to t, if t received its edge.
func (lt *linkTable) incoming(t *Terminal) *Terminal {
	if e := lt.byTerminal[t]; e != nil && e.to == t {
		return e.from
	}
	return nil
}

// peer returns the other end of t's edge, walking the link in either direction.
func (lt *linkTable) peer(t *Terminal) *Terminal {
	if out := lt.outgoing(t); out != nil {
		return out
	}
	return lt.incoming(t)
}

// link forms from -> to. Both terminals must be free.
func (lt *linkTable) link(from, to *Terminal) {
	if from == to {
		panic(fmt.Sprintf("circuit: self link on %s", from.id))
	}
	if lt.byTerminal[from] != nil || lt.byTerminal[to] != nil {
		panic(fmt.Sprintf("circuit: link %s -> %s over an existing link", from.id, to.id))
	}
	e := &edge{from: from, to: to}
	lt.byTerminal[from] = e
	lt.byTerminal[to] = e
	lt.assertInvariant(from, to)
}

// detach removes the edge touching t, clearing both sides.
// It reports whether an edge was removed.
func (lt *linkTable) detach(t *Terminal) bool {
	e := lt.byTerminal[t]
	if e == nil {
		return false
	}
	delete(lt.byTerminal, e.from)
	delete(lt.byTerminal, e.to)
	lt.assertInvariant(e.from, e.to)
	return true
}

// assertInvariant panics if any of ts is both initiator and receiver, or if
// the index disagrees with the edge it points to.
func (lt *linkTable) assertInvariant(ts ...*Terminal) {
	for _, t := range ts {
		if lt.outgoing(t) != nil && lt.incoming(t) != nil {
			panic(fmt.Sprintf("circuit: terminal %s has both outgoing and incoming links", t.id))
		}
		e := lt.byTerminal[t]
		if e == nil {
			continue
		}
		if e.from == e.to || lt.byTerminal[e.from] != e || lt.byTerminal[e.to] != e {
			panic(fmt.Sprintf("circuit: corrupt link index at %s", t.id))
		}
	}
}

// links returns every edge as a domain.Link, sorted by initiator.
func (lt *linkTable) links() []domain.Link {
	out := make([]domain.Link, 0, len(lt.byTerminal)/2)
	for t, e := range lt.byTerminal {
		if e.from == t {
			out = append(out, domain.Link{From: e.from.id, To: e.to.id})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out
}
