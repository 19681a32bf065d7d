package table

import (
	"github.com/mobanhawi/tablekit/errs"
	"github.com/mobanhawi/tablekit/filterengine"
	"github.com/mobanhawi/tablekit/sortengine"
	"github.com/mobanhawi/tablekit/store"
	"github.com/mobanhawi/tablekit/view"
)

// ColumnFilter is one column predicate addressed by column id rather than
// store index (host-facing state uses ids; filterengine.ColumnPredicate
// uses resolved store indices).
type ColumnFilter struct {
	ID        string
	Kind      filterengine.PredicateKind
	Substring string
	Equals    float64
	Epsilon   float64
	Min, Max  float64
	Op        filterengine.CompareOp
}

// ColumnSizingInfo holds the transient in-progress-resize bookkeeping a
// host UI drags around: which column is being resized, its width when the
// drag started, and whether a drag is currently live.
type ColumnSizingInfo struct {
	ColumnID   string
	StartWidth float64
	IsResizing bool
}

// Callbacks routes state changes for controlled fields. Any entry left
// nil is treated as uncontrolled for that field.
type Callbacks struct {
	OnSortingChange          func(Updater[[]SortKey])
	OnColumnFiltersChange    func(Updater[[]ColumnFilter])
	OnGlobalFilterChange     func(Updater[string])
	OnColumnVisibilityChange func(Updater[map[string]bool])
	OnColumnSizingChange     func(Updater[map[string]float64])
	OnColumnSizingInfoChange func(Updater[ColumnSizingInfo])
	OnColumnPinningChange    func(Updater[map[string]PinSide])
	OnRowPinningChange       func(Updater[map[string]PinSide])
	OnExpandedChange         func(Updater[map[string]bool])
}

// InitialState seeds every uncontrolled field.
type InitialState struct {
	Sorting          []SortKey
	ColumnFilters    []ColumnFilter
	GlobalFilter     string
	ColumnVisibility map[string]bool
	ColumnSizing     map[string]float64
	ColumnSizingInfo ColumnSizingInfo
	ColumnPinning    map[string]PinSide
	RowPinning       map[string]PinSide
	Expanded         map[string]bool
}

// Options constructs a Table from a backing store, column definitions,
// initial state, and callbacks.
type Options struct {
	Store       store.ValueSource
	ColumnDefs  []ColumnDef
	ColumnOrder []string // user-supplied explicit order; not part of the updater-driven state set

	// ParentOf, if non-nil, must have length Store.NumRows(); ParentOf[i]
	// is the row index of i's parent, or -1 for a root row. Enables tree
	// data.
	ParentOf []int

	Initial   InitialState
	Callbacks Callbacks
}

// Table is the public facade: column tree resolution, header groups, row
// model, and the sort/filter view pipeline, all addressed through the
// controlled/uncontrolled state machine.
type Table struct {
	src store.ValueSource

	allColumns  []*Column
	leafColumns []*Column
	leafByID    map[string]*Column
	columnOrder []string

	sorting          *Field[[]SortKey]
	columnFilters    *Field[[]ColumnFilter]
	globalFilter     *Field[string]
	columnVisibility *Field[map[string]bool]
	columnSizing     *Field[map[string]float64]
	columnSizingInfo *Field[ColumnSizingInfo]
	columnPinning    *Field[map[string]PinSide]
	rowPinning       *Field[map[string]PinSide]
	expanded         *Field[map[string]bool]

	parentOf    []int
	roots       []int
	rowsByIndex map[int]*Row

	pipeline *view.Pipeline
}

// New builds a Table from opts.
func New(opts Options) *Table {
	all, leaves := buildColumnTree(opts.ColumnDefs)
	leafByID := make(map[string]*Column, len(leaves))
	for _, c := range leaves {
		leafByID[c.Def.ID] = c
	}

	t := &Table{
		src:         opts.Store,
		allColumns:  all,
		leafColumns: leaves,
		leafByID:    leafByID,
		columnOrder: opts.ColumnOrder,
		parentOf:    opts.ParentOf,
		pipeline:    view.New(opts.Store),
	}
	for _, c := range all {
		c.tbl = t
	}

	t.sorting = newField(opts.Callbacks.OnSortingChange, opts.Initial.Sorting)
	t.columnFilters = newField(opts.Callbacks.OnColumnFiltersChange, opts.Initial.ColumnFilters)
	t.globalFilter = newField(opts.Callbacks.OnGlobalFilterChange, opts.Initial.GlobalFilter)
	t.columnVisibility = newField(opts.Callbacks.OnColumnVisibilityChange, opts.Initial.ColumnVisibility)
	t.columnSizing = newField(opts.Callbacks.OnColumnSizingChange, opts.Initial.ColumnSizing)
	t.columnSizingInfo = newField(opts.Callbacks.OnColumnSizingInfoChange, opts.Initial.ColumnSizingInfo)
	t.columnPinning = newField(opts.Callbacks.OnColumnPinningChange, opts.Initial.ColumnPinning)
	t.rowPinning = newField(opts.Callbacks.OnRowPinningChange, opts.Initial.RowPinning)
	t.expanded = newField(opts.Callbacks.OnExpandedChange, opts.Initial.Expanded)

	n := 0
	if opts.Store != nil {
		n = opts.Store.NumRows()
	}
	t.roots, t.rowsByIndex = buildTreeRows(t, n, opts.ParentOf)

	return t
}

func newField[T any](onChange func(Updater[T]), initial T) *Field[T] {
	if onChange != nil {
		f := NewControlledField(onChange)
		f.Sync(initial)
		return f
	}
	return NewUncontrolledField(initial)
}

// GetAllColumns returns every column (groups and leaves), pre-order,
// declaration order.
func (t *Table) GetAllColumns() []*Column { return t.allColumns }

// GetAllLeafColumns returns every leaf column, pre-order, declaration
// order, regardless of visibility.
func (t *Table) GetAllLeafColumns() []*Column { return t.leafColumns }

// VisibleLeafColumns resolves the final, ordered, visible leaf column
// list.
func (t *Table) VisibleLeafColumns() []*Column {
	return resolveVisibleLeaves(t.leafColumns, t.columnOrder, t.columnPinning.Get(), t.columnVisibility.Get())
}

// GetColumn looks up a column by id, leaf or group.
func (t *Table) GetColumn(id string) *Column {
	for _, c := range t.allColumns {
		if c.Def.ID == id {
			return c
		}
	}
	return nil
}

// GetHeaderGroups derives the header-group grid from the currently
// visible leaf columns.
func (t *Table) GetHeaderGroups() []HeaderGroupRow {
	return BuildHeaderGroups(t.VisibleLeafColumns())
}

// GetState snapshots every state field's current value.
func (t *Table) GetState() InitialState {
	return InitialState{
		Sorting:          t.sorting.Get(),
		ColumnFilters:    t.columnFilters.Get(),
		GlobalFilter:     t.globalFilter.Get(),
		ColumnVisibility: t.columnVisibility.Get(),
		ColumnSizing:     t.columnSizing.Get(),
		ColumnSizingInfo: t.columnSizingInfo.Get(),
		ColumnPinning:    t.columnPinning.Get(),
		RowPinning:       t.rowPinning.Get(),
		Expanded:         t.expanded.Get(),
	}
}

func (t *Table) SetSorting(u Updater[[]SortKey])                   { t.sorting.Apply(u) }
func (t *Table) SetColumnFilters(u Updater[[]ColumnFilter])         { t.columnFilters.Apply(u) }
func (t *Table) SetGlobalFilter(u Updater[string])                 { t.globalFilter.Apply(u) }
func (t *Table) SetColumnVisibility(u Updater[map[string]bool])    { t.columnVisibility.Apply(u) }
func (t *Table) SetColumnSizing(u Updater[map[string]float64])    { t.columnSizing.Apply(u) }
func (t *Table) SetColumnSizingInfo(u Updater[ColumnSizingInfo])  { t.columnSizingInfo.Apply(u) }
func (t *Table) SetColumnPinning(u Updater[map[string]PinSide])   { t.columnPinning.Apply(u) }
func (t *Table) SetRowPinning(u Updater[map[string]PinSide])      { t.rowPinning.Apply(u) }
func (t *Table) SetExpanded(u Updater[map[string]bool])           { t.expanded.Apply(u) }

// ToggleColumnSorting applies the off→asc→desc→off toggle cycle to col,
// then writes the result through SetSorting.
func (t *Table) ToggleColumnSorting(colID string, desc *bool) {
	next := ToggleSort(t.sorting.Get(), colID, desc)
	t.SetSorting(Set(next))
}

// ResetSorting, ResetColumnFilters, etc. restore each field to its given
// reset value.
func (t *Table) ResetSorting(v []SortKey)                      { t.sorting.Reset(v) }
func (t *Table) ResetColumnFilters(v []ColumnFilter)           { t.columnFilters.Reset(v) }
func (t *Table) ResetGlobalFilter(v string)                    { t.globalFilter.Reset(v) }
func (t *Table) ResetColumnVisibility(v map[string]bool)       { t.columnVisibility.Reset(v) }
func (t *Table) ResetColumnSizing(v map[string]float64)        { t.columnSizing.Reset(v) }
func (t *Table) ResetColumnSizingInfo(v ColumnSizingInfo)      { t.columnSizingInfo.Reset(v) }
func (t *Table) ResetColumnPinning(v map[string]PinSide)       { t.columnPinning.Reset(v) }
func (t *Table) ResetRowPinning(v map[string]PinSide)          { t.rowPinning.Reset(v) }
func (t *Table) ResetExpanded(v map[string]bool)               { t.expanded.Reset(v) }

func (t *Table) computeViewIndices() ([]uint32, error) {
	t.pipeline.SetSort(t.buildSortSpec())
	fs, err := t.buildFilterSpec()
	if err != nil {
		return nil, err
	}
	t.pipeline.SetFilter(fs)
	return t.pipeline.ComputeView()
}

func (t *Table) buildSortSpec() sortengine.Spec {
	keys := t.sorting.Get()
	spec := make(sortengine.Spec, 0, len(keys))
	for _, k := range keys {
		col, ok := t.leafByID[k.ID]
		if !ok {
			continue
		}
		spec = append(spec, sortengine.Key{Col: col.Def.StoreCol, Desc: k.Desc})
	}
	return spec
}

func (t *Table) buildFilterSpec() (filterengine.Spec, error) {
	spec := filterengine.Spec{Global: t.globalFilter.Get()}
	for _, f := range t.columnFilters.Get() {
		col, ok := t.leafByID[f.ID]
		if !ok {
			return filterengine.Spec{}, errs.New(errs.KindBadInput, "Table.buildFilterSpec", "unknown column id "+f.ID)
		}
		spec.Columns = append(spec.Columns, filterengine.ColumnPredicate{
			Col:       col.Def.StoreCol,
			Kind:      f.Kind,
			Substring: f.Substring,
			Equals:    f.Equals,
			Epsilon:   f.Epsilon,
			Min:       f.Min,
			Max:       f.Max,
			Op:        f.Op,
		})
	}
	return spec, nil
}
