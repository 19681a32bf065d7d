package table

import (
	"sort"
	"strconv"

	"github.com/mobanhawi/tablekit/errs"
	"github.com/mobanhawi/tablekit/store"
)

// Row is one row exposed by the table facade. Index is the row's position
// in the backing store, a stable original-row index usable as a row id.
type Row struct {
	Index       int
	Depth       int
	ParentIndex int // -1 for a root row
	Children    []int

	tbl *Table
}

// ID returns the row's stable identifier.
func (r *Row) ID() string { return strconv.Itoa(r.Index) }

// GetValue resolves the value of a leaf column for this row, dispatching
// on the column's physical type.
func (r *Row) GetValue(colID string) (any, error) {
	col, ok := r.tbl.leafByID[colID]
	if !ok {
		return nil, errs.New(errs.KindBadInput, "Row.GetValue", "unknown column id "+colID)
	}
	ct, err := r.tbl.src.ColumnType(col.Def.StoreCol)
	if err != nil {
		return nil, err
	}
	if ct == store.TypeStr {
		s, ok, err := r.tbl.src.GetString(col.Def.StoreCol, r.Index)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return s, nil
	}
	return r.tbl.src.GetNumeric(col.Def.StoreCol, r.Index)
}

// GetAllCellValues returns a map of column id to value for every leaf
// column, regardless of visibility.
func (r *Row) GetAllCellValues() (map[string]any, error) {
	out := make(map[string]any, len(r.tbl.leafColumns))
	for _, c := range r.tbl.leafColumns {
		v, err := r.GetValue(c.Def.ID)
		if err != nil {
			return nil, err
		}
		out[c.Def.ID] = v
	}
	return out, nil
}

// GetVisibleCells returns values for only the currently visible leaf
// columns, keyed by column id. The result is a map, so it does not carry
// display order; VisibleLeafColumns gives that order.
func (r *Row) GetVisibleCells() (map[string]any, error) {
	leaves := r.tbl.VisibleLeafColumns()
	out := make(map[string]any, len(leaves))
	for _, c := range leaves {
		v, err := r.GetValue(c.Def.ID)
		if err != nil {
			return nil, err
		}
		out[c.Def.ID] = v
	}
	return out, nil
}

// GetCanExpand reports whether this row has subRows.
func (r *Row) GetCanExpand() bool { return len(r.Children) > 0 }

// GetIsExpanded reads this row's expansion state.
func (r *Row) GetIsExpanded() bool {
	return r.tbl.expanded.Get()[r.ID()]
}

// ToggleExpanded flips this row's expansion state.
func (r *Row) ToggleExpanded() {
	r.tbl.expanded.Apply(Map(func(prev map[string]bool) map[string]bool {
		next := cloneExpanded(prev)
		next[r.ID()] = !next[r.ID()]
		return next
	}))
}

// GetLeafRows returns every descendant of r that itself has no children,
// in DFS order.
func (r *Row) GetLeafRows() []*Row {
	var out []*Row
	var walk func(row *Row)
	walk = func(row *Row) {
		if len(row.Children) == 0 {
			out = append(out, row)
			return
		}
		for _, ci := range row.Children {
			walk(r.tbl.rowsByIndex[ci])
		}
	}
	walk(r)
	return out
}

func cloneExpanded(m map[string]bool) map[string]bool {
	next := make(map[string]bool, len(m))
	for k, v := range m {
		next[k] = v
	}
	return next
}

// buildTreeRows constructs the row tree from an optional parent-index
// array (parentOf[i] = index of i's parent, or -1 for a root). When
// parentOf is nil, every row is a depth-0 root with no children: the flat
// case.
func buildTreeRows(tbl *Table, n int, parentOf []int) (roots []int, byIndex map[int]*Row) {
	byIndex = make(map[int]*Row, n)
	for i := 0; i < n; i++ {
		parent := -1
		if parentOf != nil {
			parent = parentOf[i]
		}
		byIndex[i] = &Row{Index: i, ParentIndex: parent, tbl: tbl}
	}
	for i := 0; i < n; i++ {
		row := byIndex[i]
		if row.ParentIndex < 0 {
			roots = append(roots, i)
			continue
		}
		parent := byIndex[row.ParentIndex]
		parent.Children = append(parent.Children, i)
	}
	sort.Ints(roots)
	for _, row := range byIndex {
		sort.Ints(row.Children)
	}
	var setDepth func(i, depth int)
	setDepth = func(i, depth int) {
		row := byIndex[i]
		row.Depth = depth
		for _, ci := range row.Children {
			setDepth(ci, depth+1)
		}
	}
	for _, r := range roots {
		setDepth(r, 0)
	}
	return roots, byIndex
}

// GetCoreRowModel returns every root row, original order, with subRows
// reachable via Row.Children.
func (t *Table) GetCoreRowModel() []*Row {
	out := make([]*Row, len(t.roots))
	for i, idx := range t.roots {
		out[i] = t.rowsByIndex[idx]
	}
	return out
}

// GetRowModel returns the row model after filter/sort, using the view
// pipeline's index array when present; for tree data (parentOf supplied)
// the view pipeline is not consulted, and the core tree is returned
// unchanged — filter/sort composition with tree data is not defined by
// this engine.
func (t *Table) GetRowModel() ([]*Row, error) {
	if t.parentOf != nil {
		return t.GetCoreRowModel(), nil
	}
	indices, err := t.computeViewIndices()
	if err != nil {
		return nil, err
	}
	out := make([]*Row, len(indices))
	for i, idx := range indices {
		out[i] = t.rowsByIndex[int(idx)]
	}
	return out, nil
}

// GetRow returns the row at position i in the current row model.
func (t *Table) GetRow(i int) (*Row, error) {
	rows, err := t.GetRowModel()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(rows) {
		return nil, errs.New(errs.KindStateMisuse, "Table.GetRow", "row index out of range")
	}
	return rows[i], nil
}

// GetExpandedRowModel flattens the visible subtree in DFS order (spec
// §4.7, §8 scenario 6): a row's children are emitted immediately after it
// only while the row's own expansion flag is set.
func (t *Table) GetExpandedRowModel() []*Row {
	expanded := t.expanded.Get()
	var out []*Row
	var walk func(i int)
	walk = func(i int) {
		row := t.rowsByIndex[i]
		out = append(out, row)
		if expanded[row.ID()] {
			for _, ci := range row.Children {
				walk(ci)
			}
		}
	}
	for _, r := range t.roots {
		walk(r)
	}
	return out
}
