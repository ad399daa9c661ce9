// Package tableau implements the sparse dictionary-of-keys matrix that
// backs the Cassowary simplex engine: terms live at (row, column)
// coordinates, each row's constant lives at (row, 0), each column's
// symbol list is threaded through the sentinel at (0, column), and every
// live term is doubly linked along both its row and its column.
//
// Coordinates and links use 16-bit symbol ids (github.com/gridwright/cassowary/solver
// never allocates more than 65535 live symbols at once); term records
// themselves live in an arena.Pool and are located through a packed-coord
// hash index, matching the reference implementation's term table.
package tableau

import (
	"fmt"

	"github.com/gridwright/cassowary/internal/arena"
	"github.com/gridwright/cassowary/internal/hashindex"
)

// Epsilon is the tolerance used throughout the solver for "near zero" and
// approximate-equality comparisons, per the numeric conventions in the
// specification this package implements.
const Epsilon = 1e-6

// Approx reports whether a and b are within Epsilon of each other.
func Approx(a, b float64) bool {
	if a > b {
		return a-b < Epsilon
	}
	return b-a < Epsilon
}

// NearZero reports whether a is within Epsilon of zero.
func NearZero(a float64) bool { return Approx(a, 0) }

// GrowthObserver is invoked whenever the tableau's backing storage grows.
type GrowthObserver = arena.GrowthObserver

// Coord addresses one cell of the tableau.
type Coord struct {
	Row uint16
	Col uint16
}

// Term is a read-only snapshot of one stored entry, returned by RowTerms
// and ColumnRows.
type Term struct {
	Row, Col   uint16
	Multiplier float64
}

type entry struct {
	coord              Coord
	prevRow, nextRow   uint16 // column thread: neighbors sharing coord.Col, in insertion order
	prevCol, nextCol   uint16 // row thread: neighbors sharing coord.Row, in insertion order
	multiplier         float64
}

// Tableau is the sparse matrix of current linear equalities holding
// solver state. The zero value is not usable; construct with New.
type Tableau struct {
	terms *arena.Pool[entry]
	index *hashindex.Table
}

// New creates an empty Tableau sized for pageSize initial terms.
func New(pageSize int, onGrow GrowthObserver) *Tableau {
	return &Tableau{
		terms: arena.New[entry](pageSize, onGrow),
		index: hashindex.New(pageSize, onGrow),
	}
}

// fnv1aSeed and fnv1aPrime are the FNV-1a constants the reference
// implementation mixes the packed (row, col) bytes through.
const (
	fnv1aSeed  = 0x811C9DC5
	fnv1aPrime = 0x01000193
)

func fnv1aByte(b byte, h uint32) uint32 { return (uint32(b) ^ h) * fnv1aPrime }

func hashCoord(row, col uint16) uint32 {
	h := uint32(fnv1aSeed)
	h = fnv1aByte(byte(row), h)
	h = fnv1aByte(byte(row>>8), h)
	h = fnv1aByte(byte(col), h)
	h = fnv1aByte(byte(col>>8), h)
	if h == 0 {
		h = 1
	}
	return h
}

// findSlot locates the hash-index slot and arena id for coord, verifying
// the full key against every hash collision along the probe chain.
func (t *Tableau) findSlot(coord Coord) (slot uint32, id uint32, ok bool) {
	h := hashCoord(coord.Row, coord.Col)
	p := t.index.Find(h)
	for p.Hash == h {
		cand := t.index.Value(p.Index)
		if t.terms.Get(cand).coord == coord {
			return p.Index, cand, true
		}
		p = t.index.FindNext(p)
	}
	return 0, 0, false
}

func (t *Tableau) get(coord Coord) *entry {
	_, id, ok := t.findSlot(coord)
	if !ok {
		panic(fmt.Sprintf("tableau: missing term at (%d,%d)", coord.Row, coord.Col))
	}
	return t.terms.Get(id)
}

// linkTerm splices a freshly allocated body term (row != 0 && col != 0)
// into both the row chain threaded through (coord.Row, 0) and the column
// chain threaded through (0, coord.Col).
func (t *Tableau) linkTerm(coord Coord, id uint32) {
	tm := t.terms.Get(id)

	rowHead := t.get(Coord{coord.Row, 0})
	lastCol := rowHead.prevCol
	rowHead.prevCol = coord.Col
	tail := rowHead
	if lastCol != 0 {
		tail = t.get(Coord{coord.Row, lastCol})
	}
	tail.nextCol = coord.Col
	tm.prevCol, tm.nextCol = lastCol, 0

	colHead := t.get(Coord{0, coord.Col})
	lastRow := colHead.prevRow
	colHead.prevRow = coord.Row
	tail2 := colHead
	if lastRow != 0 {
		tail2 = t.get(Coord{lastRow, coord.Col})
	}
	tail2.nextRow = coord.Row
	tm.prevRow, tm.nextRow = lastRow, 0
}

type unlinkFlags uint8

const (
	unlinkNone unlinkFlags = 0
	unlinkRow  unlinkFlags = 1 << 0 // patch the row chain (prevCol/nextCol neighbors)
	unlinkCol  unlinkFlags = 1 << 1 // patch the column chain (prevRow/nextRow neighbors)
	unlinkBoth             = unlinkRow | unlinkCol
)

func (t *Tableau) unlink(tm *entry, flags unlinkFlags) {
	if flags&unlinkRow != 0 {
		prev := t.get(Coord{tm.coord.Row, tm.prevCol})
		prev.nextCol = tm.nextCol
		next := prev
		if tm.prevCol != tm.nextCol {
			next = t.get(Coord{tm.coord.Row, tm.nextCol})
		}
		next.prevCol = tm.prevCol
	}
	if flags&unlinkCol != 0 {
		prev := t.get(Coord{tm.prevRow, tm.coord.Col})
		prev.nextRow = tm.nextRow
		next := prev
		if tm.prevRow != tm.nextRow {
			next = t.get(Coord{tm.nextRow, tm.coord.Col})
		}
		next.prevRow = tm.prevRow
	}
}

func (t *Tableau) eraseTerm(coord Coord, flags unlinkFlags) {
	slot, id, ok := t.findSlot(coord)
	if !ok {
		return
	}
	tm := t.terms.Get(id)
	t.unlink(tm, flags)
	t.index.Erase(slot)
	t.terms.Free(id)
}

// AddTerm adds delta to the multiplier at (row, col), creating the term
// if absent. A body term (row != 0 && col != 0) whose magnitude decays
// below Epsilon is deleted; row and column heads always persist.
func (t *Tableau) AddTerm(row, col uint16, delta float64) {
	coord := Coord{row, col}
	_, id, ok := t.findSlot(coord)
	if !ok {
		id = t.terms.Alloc(entry{coord: coord})
		if row != 0 && col != 0 {
			t.linkTerm(coord, id)
		}
		t.index.Insert(hashCoord(row, col), id)
	}

	tm := t.terms.Get(id)
	tm.multiplier += delta
	if row != 0 && col != 0 && NearZero(tm.multiplier) {
		t.eraseTerm(coord, unlinkBoth)
	}
}

// AddRow adds k times every term of srcRow into dstRow, constant
// included, creating dstRow's head if it has none yet.
func (t *Tableau) AddRow(dstRow, srcRow uint16, k float64) {
	t.AddTerm(dstRow, 0, t.RowConstant(srcRow)*k)
	for _, term := range t.RowTerms(srcRow) {
		t.AddTerm(dstRow, term.Col, term.Multiplier*k)
	}
}

// MultiplyRow scales every term of row by k, including its constant.
func (t *Tableau) MultiplyRow(row uint16, k float64) {
	for col := t.get(Coord{row, 0}).nextCol; col != 0; {
		tm := t.get(Coord{row, col})
		tm.multiplier *= k
		col = tm.nextCol
	}
	head := t.get(Coord{row, 0})
	head.multiplier *= k
}

// MergeRow adds sym (scaled by k) into row: if sym already labels a
// basic row, that row (constant and body) is inlined; otherwise sym is added as a
// single term.
func (t *Tableau) MergeRow(row, sym uint16, k float64) {
	if t.HasRow(sym) {
		t.AddRow(row, sym, k)
	} else {
		t.AddTerm(row, sym, k)
	}
}

// InitRow creates row's head term with the given constant. row must not
// already have a row.
func (t *Tableau) InitRow(row uint16, constant float64) {
	t.AddTerm(row, 0, constant)
}

// HasRow reports whether row currently has a head term, i.e. is basic.
func (t *Tableau) HasRow(row uint16) bool {
	_, _, ok := t.findSlot(Coord{row, 0})
	return ok
}

// IsConstantRow reports whether row's only term is its constant.
func (t *Tableau) IsConstantRow(row uint16) bool {
	return t.get(Coord{row, 0}).nextCol == 0
}

// RowConstant returns the constant of row, or 0 if row has no head term.
func (t *Tableau) RowConstant(row uint16) float64 {
	_, id, ok := t.findSlot(Coord{row, 0})
	if !ok {
		return 0
	}
	return t.terms.Get(id).multiplier
}

// Coefficient returns the multiplier at (row, col) and whether it exists.
func (t *Tableau) Coefficient(row, col uint16) (float64, bool) {
	_, id, ok := t.findSlot(Coord{row, col})
	if !ok {
		return 0, false
	}
	return t.terms.Get(id).multiplier, true
}

// FreeRow deletes every term of row, including its head. Row bodies are
// unlinked from the columns they touch; row-internal links are left
// stale since the whole row disappears in one pass.
func (t *Tableau) FreeRow(row uint16) {
	_, headID, ok := t.findSlot(Coord{row, 0})
	if !ok {
		return
	}

	col := t.terms.Get(headID).nextCol
	t.eraseTerm(Coord{row, 0}, unlinkNone)

	for col != 0 {
		_, id, ok := t.findSlot(Coord{row, col})
		if !ok {
			break
		}
		next := t.terms.Get(id).nextCol
		t.eraseTerm(Coord{row, col}, unlinkCol)
		col = next
	}
}

// RowTerms snapshots every body term of row (excluding the head), in the
// order the terms were originally added to the row — callers that pick
// the first eligible term (e.g. solver.chooseSubject) rely on this to
// match the order a constraint's own term list was declared in.
func (t *Tableau) RowTerms(row uint16) []Term {
	_, headID, ok := t.findSlot(Coord{row, 0})
	if !ok {
		return nil
	}

	var out []Term
	for col := t.terms.Get(headID).nextCol; col != 0; {
		_, id, ok := t.findSlot(Coord{row, col})
		if !ok {
			break
		}
		tm := t.terms.Get(id)
		out = append(out, Term{Row: row, Col: col, Multiplier: tm.multiplier})
		col = tm.nextCol
	}
	return out
}

// ColumnRows snapshots every row currently containing col (excluding the
// column's own head), in the order those rows first acquired a term in
// this column.
func (t *Tableau) ColumnRows(col uint16) []Term {
	_, headID, ok := t.findSlot(Coord{0, col})
	if !ok {
		return nil
	}

	var out []Term
	for row := t.terms.Get(headID).nextRow; row != 0; {
		_, id, ok := t.findSlot(Coord{row, col})
		if !ok {
			break
		}
		tm := t.terms.Get(id)
		out = append(out, Term{Row: row, Col: col, Multiplier: tm.multiplier})
		row = tm.nextRow
	}
	return out
}

// NewSymbolColumn creates the (0, sym) column-head sentinel for a freshly
// allocated symbol, threading an (initially empty) symbol list.
func (t *Tableau) NewSymbolColumn(sym uint16) {
	t.AddTerm(0, sym, 0)
}

// DeleteColumnHead removes the (0, sym) sentinel outright, with no link
// maintenance. The caller must already know sym's column is empty.
func (t *Tableau) DeleteColumnHead(sym uint16) {
	t.eraseTerm(Coord{0, sym}, unlinkNone)
}

// ColumnEmpty reports whether sym's column has no body terms (or no
// column at all).
func (t *Tableau) ColumnEmpty(sym uint16) bool {
	_, id, ok := t.findSlot(Coord{0, sym})
	if !ok {
		return true
	}
	return t.terms.Get(id).nextRow == 0
}

// DeleteTerm removes the term at (row, col) outright, patching both the
// row chain and the column chain so both of its neighbors stay
// consistent. row and col must both be non-zero.
func (t *Tableau) DeleteTerm(row, col uint16) {
	t.eraseTerm(Coord{row, col}, unlinkBoth)
}

// DeleteRowLink removes the term at (row, col), patching row's own row
// chain so row stays internally consistent, but leaving col's column
// chain stale — for use while col's column is being wholesale discarded
// and will have ResetColumnHead called on it once the walk completes.
func (t *Tableau) DeleteRowLink(row, col uint16) {
	t.eraseTerm(Coord{row, col}, unlinkRow)
}

// ResetColumnHead clears col's column-list sentinel, making its column
// empty again. Used after a pivot has individually deleted every term
// that used to reference col without maintaining the column chain.
func (t *Tableau) ResetColumnHead(col uint16) {
	h := t.get(Coord{0, col})
	h.prevRow, h.nextRow = 0, 0
}

// QueueNext and SetQueueNext expose the otherwise-unused nextRow link of
// a row's head term, overloaded as the infeasibility queue's intrusive
// "next" pointer per the tableau's design: row heads never sit in any
// column's chain, so the field is free for the solver to repurpose.
func (t *Tableau) QueueNext(row uint16) uint16 { return t.get(Coord{row, 0}).nextRow }

func (t *Tableau) SetQueueNext(row, next uint16) { t.get(Coord{row, 0}).nextRow = next }
