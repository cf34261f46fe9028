package parse

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/corvidae/pika/ast"
	"github.com/corvidae/pika/iter"
)

// MatchAttempt is the per-position record: symbols currently on the call
// stack at this position (calling, a cycle guard), symbols known to fail
// here (fails), and memoized successes mapping a symbol to its resulting
// node.
type MatchAttempt struct {
	calling   *hashset.Set
	fails     *hashset.Set
	successes map[SymbolID]cachedSuccess
}

// cachedSuccess remembers both the produced node and the position the
// iterator must be seeked to in order to replay the match without
// re-running it — that final position may lie past any skip text the
// original match consumed, which the node's own Substring deliberately
// excludes.
type cachedSuccess struct {
	node *ast.Node
	end  iter.Position
}

func newMatchAttempt() *MatchAttempt {
	return &MatchAttempt{
		calling:   hashset.New(),
		fails:     hashset.New(),
		successes: make(map[SymbolID]cachedSuccess),
	}
}

func (m *MatchAttempt) isCalling(id SymbolID) bool { return m.calling.Contains(id) }
func (m *MatchAttempt) startCalling(id SymbolID)    { m.calling.Add(id) }
func (m *MatchAttempt) stopCalling(id SymbolID)     { m.calling.Remove(id) }

func (m *MatchAttempt) hasFailed(id SymbolID) bool { return m.fails.Contains(id) }
func (m *MatchAttempt) recordFail(id SymbolID)     { m.fails.Add(id) }

func (m *MatchAttempt) success(id SymbolID) (cachedSuccess, bool) {
	n, ok := m.successes[id]
	return n, ok
}
func (m *MatchAttempt) recordSuccess(id SymbolID, n *ast.Node, end iter.Position) {
	m.successes[id] = cachedSuccess{node: n, end: end}
}

// pivotMap is the ordered position -> MatchAttempt map backing the match
// engine's memoization, backed by a gods red-black treemap ordered by
// iter.PositionComparator. A cached "last accessed" pivot turns the
// common case — the match engine advancing monotonically — into an O(1)
// lookup, only falling back to a treemap Get (itself O(log n)) on a
// cursor miss; see DESIGN.md's ADR for why a balanced tree stands in for
// a hand-rolled doubly-linked list with a moving cursor.
type pivotMap struct {
	tree    *treemap.Map
	lastPos iter.Position
	lastRec *MatchAttempt
	hasLast bool
}

func newPivotMap() *pivotMap {
	return &pivotMap{tree: treemap.NewWith(iter.PositionComparator)}
}

func (p *pivotMap) findOrInsert(pos iter.Position) *MatchAttempt {
	if p.hasLast && p.lastPos == pos {
		return p.lastRec
	}
	if v, found := p.tree.Get(pos); found {
		rec := v.(*MatchAttempt)
		p.lastPos, p.lastRec, p.hasLast = pos, rec, true
		return rec
	}
	rec := newMatchAttempt()
	p.tree.Put(pos, rec)
	p.lastPos, p.lastRec, p.hasLast = pos, rec, true
	return rec
}

// Size reports how many positions have been visited so far.
func (p *pivotMap) Size() int { return p.tree.Size() }
