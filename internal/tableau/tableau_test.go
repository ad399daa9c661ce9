package tableau

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRowAndConstant(t *testing.T) {
	tb := New(4, nil)
	tb.InitRow(1, 3.5)

	require.True(t, tb.HasRow(1))
	assert.Equal(t, 3.5, tb.RowConstant(1))
	assert.True(t, tb.IsConstantRow(1))
	assert.False(t, tb.HasRow(2))
}

func TestAddTermCreatesAndLinks(t *testing.T) {
	tb := New(4, nil)
	tb.InitRow(1, 0)
	tb.NewSymbolColumn(7)

	tb.AddTerm(1, 7, 2)

	mult, ok := tb.Coefficient(1, 7)
	require.True(t, ok)
	assert.Equal(t, 2.0, mult)
	assert.False(t, tb.IsConstantRow(1))

	rowTerms := tb.RowTerms(1)
	require.Len(t, rowTerms, 1)
	assert.Equal(t, uint16(7), rowTerms[0].Col)

	colRows := tb.ColumnRows(7)
	require.Len(t, colRows, 1)
	assert.Equal(t, uint16(1), colRows[0].Row)
}

func TestAddTermDecayDeletesNearZeroBodyTerm(t *testing.T) {
	tb := New(4, nil)
	tb.InitRow(1, 0)
	tb.NewSymbolColumn(7)

	tb.AddTerm(1, 7, 2)
	tb.AddTerm(1, 7, -2)

	_, ok := tb.Coefficient(1, 7)
	assert.False(t, ok, "near-zero body term must be removed")
	assert.True(t, tb.IsConstantRow(1))
	assert.Empty(t, tb.ColumnRows(7))
}

func TestAddTermHeadsPersistThroughZero(t *testing.T) {
	tb := New(4, nil)
	tb.InitRow(1, 5)
	tb.AddTerm(1, 0, -5)

	require.True(t, tb.HasRow(1), "row head must persist even at a zero constant")
	assert.Equal(t, 0.0, tb.RowConstant(1))
}

func TestMultiplyRow(t *testing.T) {
	tb := New(4, nil)
	tb.InitRow(1, 2)
	tb.NewSymbolColumn(7)
	tb.NewSymbolColumn(9)
	tb.AddTerm(1, 7, 3)
	tb.AddTerm(1, 9, -4)

	tb.MultiplyRow(1, -1)

	assert.Equal(t, -2.0, tb.RowConstant(1))
	c7, _ := tb.Coefficient(1, 7)
	c9, _ := tb.Coefficient(1, 9)
	assert.Equal(t, -3.0, c7)
	assert.Equal(t, 4.0, c9)
}

func TestAddRowInlinesSourceTerms(t *testing.T) {
	tb := New(4, nil)
	tb.InitRow(1, 1) // dst
	tb.InitRow(2, 10) // src, solved row
	tb.NewSymbolColumn(7)
	tb.NewSymbolColumn(9)
	tb.AddTerm(2, 7, 2)
	tb.AddTerm(2, 9, 3)

	tb.AddRow(1, 2, 5)

	assert.Equal(t, 1.0+10*5, tb.RowConstant(1))
	c7, _ := tb.Coefficient(1, 7)
	c9, _ := tb.Coefficient(1, 9)
	assert.Equal(t, 10.0, c7)
	assert.Equal(t, 15.0, c9)
}

func TestMergeRowFallsBackToSingleTermWhenNotBasic(t *testing.T) {
	tb := New(4, nil)
	tb.InitRow(1, 0)
	tb.NewSymbolColumn(7)

	tb.MergeRow(1, 7, 4) // 7 has no row of its own: plain add_term
	c, ok := tb.Coefficient(1, 7)
	require.True(t, ok)
	assert.Equal(t, 4.0, c)
}

func TestMergeRowInlinesWhenBasic(t *testing.T) {
	tb := New(4, nil)
	tb.InitRow(1, 0)
	tb.InitRow(8, 100) // 8 is itself basic
	tb.NewSymbolColumn(7)
	tb.AddTerm(8, 7, 2)

	tb.MergeRow(1, 8, 3)

	assert.Equal(t, 300.0, tb.RowConstant(1))
	c, ok := tb.Coefficient(1, 7)
	require.True(t, ok)
	assert.Equal(t, 6.0, c)
}

func TestFreeRowRemovesHeadAndBodyAndDetachesColumns(t *testing.T) {
	tb := New(4, nil)
	tb.InitRow(1, 2)
	tb.NewSymbolColumn(7)
	tb.AddTerm(1, 7, 5)

	tb.FreeRow(1)

	assert.False(t, tb.HasRow(1))
	assert.Empty(t, tb.ColumnRows(7), "column chain must lose the freed row's term")
}

func TestColumnEmptyAndDeleteColumnHead(t *testing.T) {
	tb := New(4, nil)
	tb.NewSymbolColumn(7)
	assert.True(t, tb.ColumnEmpty(7))

	tb.DeleteColumnHead(7)
	assert.True(t, tb.ColumnEmpty(7), "missing column head reads as empty")

	tb.NewSymbolColumn(7)
	tb.InitRow(1, 0)
	tb.AddTerm(1, 7, 1)
	assert.False(t, tb.ColumnEmpty(7))
}

func TestDeleteRowLinkAndResetColumnHead(t *testing.T) {
	tb := New(4, nil)
	tb.InitRow(1, 0)
	tb.InitRow(2, 0)
	tb.NewSymbolColumn(7)
	tb.AddTerm(1, 7, 1)
	tb.AddTerm(2, 7, 2)

	for _, term := range tb.ColumnRows(7) {
		tb.DeleteRowLink(term.Row, 7)
	}
	tb.ResetColumnHead(7)

	assert.True(t, tb.ColumnEmpty(7))
	assert.Empty(t, tb.RowTerms(1), "row 1 must no longer reference column 7")
	assert.Empty(t, tb.RowTerms(2), "row 2 must no longer reference column 7")
}

func TestDeleteTermPatchesBothChains(t *testing.T) {
	tb := New(4, nil)
	tb.InitRow(1, 0)
	tb.NewSymbolColumn(7)
	tb.NewSymbolColumn(9)
	tb.AddTerm(1, 7, 1)
	tb.AddTerm(1, 9, 2)

	tb.DeleteTerm(1, 7)

	_, ok := tb.Coefficient(1, 7)
	assert.False(t, ok)
	assert.Empty(t, tb.ColumnRows(7))
	require.Len(t, tb.RowTerms(1), 1)
	assert.Equal(t, uint16(9), tb.RowTerms(1)[0].Col)
}

func TestQueueNextOverloadsRowHeadLink(t *testing.T) {
	tb := New(4, nil)
	tb.InitRow(1, -1)
	tb.InitRow(2, -2)

	assert.Equal(t, uint16(0), tb.QueueNext(1))
	tb.SetQueueNext(1, 2)
	assert.Equal(t, uint16(2), tb.QueueNext(1))
}

func TestRowTermsReturnsEveryBodyTerm(t *testing.T) {
	tb := New(4, nil)
	tb.InitRow(1, 0)
	for _, sym := range []uint16{3, 9, 5} {
		tb.NewSymbolColumn(sym)
		tb.AddTerm(1, sym, float64(sym))
	}

	terms := tb.RowTerms(1)
	require.Len(t, terms, 3)
	cols := map[uint16]float64{}
	for _, term := range terms {
		cols[term.Col] = term.Multiplier
	}
	assert.Equal(t, 3.0, cols[3])
	assert.Equal(t, 9.0, cols[9])
	assert.Equal(t, 5.0, cols[5])
}

func TestNearZeroAndApprox(t *testing.T) {
	assert.True(t, NearZero(0))
	assert.True(t, NearZero(Epsilon/2))
	assert.False(t, NearZero(1))
	assert.True(t, Approx(1.0, 1.0+Epsilon/2))
	assert.False(t, Approx(1.0, 2.0))
}
