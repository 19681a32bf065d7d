package table

import "github.com/mobanhawi/tablekit/layout"

// PinSide is a column's pinning assignment.
type PinSide int

const (
	PinNone PinSide = iota
	PinLeft
	PinRight
)

// SortDirection is a column's current sort state.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

// ColumnDef is a declared column or column group. Group columns carry
// Columns (children) and no StoreCol; leaf columns carry StoreCol, the
// index into the backing store this column reads values from.
type ColumnDef struct {
	ID      string
	Header  string
	Columns []ColumnDef // non-empty for a group column

	StoreCol int // valid only for leaf columns

	EnableSorting bool
	DefaultWidth  float64
	MinWidth      float64
	MaxWidth      float64
	Align         layout.AlignCode
	DefaultPin    PinSide
	DefaultHidden bool
}

// Column is a resolved node in the column tree: a group or a leaf, with its
// place in the tree recorded.
type Column struct {
	Def    ColumnDef
	Parent *Column
	Children []*Column
	Depth  int

	tbl *Table
}

// IsLeaf reports whether c has no children.
func (c *Column) IsLeaf() bool { return len(c.Children) == 0 }

// buildColumnTree walks declared definitions pre-order, producing the full
// tree (allColumns) and the leaf set (leafColumns), each in declaration
// order.
func buildColumnTree(defs []ColumnDef) (all []*Column, leaves []*Column) {
	var walk func(defs []ColumnDef, parent *Column, depth int)
	walk = func(defs []ColumnDef, parent *Column, depth int) {
		for _, d := range defs {
			c := &Column{Def: d, Parent: parent, Depth: depth}
			all = append(all, c)
			if parent != nil {
				parent.Children = append(parent.Children, c)
			}
			if len(d.Columns) == 0 {
				leaves = append(leaves, c)
			} else {
				walk(d.Columns, c, depth+1)
			}
		}
	}
	walk(defs, nil, 0)
	return all, leaves
}

// maxLeafDepth returns the deepest leaf depth among cols, or 0 if empty.
func maxLeafDepth(cols []*Column) int {
	max := 0
	for _, c := range cols {
		if c.Depth > max {
			max = c.Depth
		}
	}
	return max
}

// ancestorAtDepth walks up c's parent chain to the node at depth d. It
// returns (ancestor, true) if c.Depth > d, else (c, false) when c is
// already at or above depth d.
func ancestorAtDepth(c *Column, d int) (*Column, bool) {
	if c.Depth <= d {
		return c, false
	}
	cur := c
	for cur.Depth > d {
		cur = cur.Parent
	}
	return cur, true
}

// resolveVisibleLeaves orders leaves by explicit columnOrder first, then
// pinning clusters (left, unpinned, right) preserving relative
// order, with declaration order as the final tiebreak (leaves arrives
// already in declaration order from buildColumnTree).
func resolveVisibleLeaves(leaves []*Column, order []string, pinning map[string]PinSide, visibility map[string]bool) []*Column {
	visible := make([]*Column, 0, len(leaves))
	for _, c := range leaves {
		if v, ok := visibility[c.Def.ID]; ok && !v {
			continue
		}
		if _, ok := visibility[c.Def.ID]; !ok && c.Def.DefaultHidden {
			continue
		}
		visible = append(visible, c)
	}

	if len(order) > 0 {
		byID := make(map[string]*Column, len(visible))
		for _, c := range visible {
			byID[c.Def.ID] = c
		}
		ordered := make([]*Column, 0, len(visible))
		used := make(map[string]bool, len(visible))
		for _, id := range order {
			if c, ok := byID[id]; ok {
				ordered = append(ordered, c)
				used[id] = true
			}
		}
		for _, c := range visible {
			if !used[c.Def.ID] {
				ordered = append(ordered, c)
			}
		}
		visible = ordered
	}

	pinSide := func(c *Column) PinSide {
		if p, ok := pinning[c.Def.ID]; ok {
			return p
		}
		return c.Def.DefaultPin
	}

	var left, center, right []*Column
	for _, c := range visible {
		switch pinSide(c) {
		case PinLeft:
			left = append(left, c)
		case PinRight:
			right = append(right, c)
		default:
			center = append(center, c)
		}
	}

	out := make([]*Column, 0, len(visible))
	out = append(out, left...)
	out = append(out, center...)
	out = append(out, right...)
	return out
}

func clamp(w, min, max float64) float64 {
	if min > 0 && w < min {
		w = min
	}
	if max > 0 && w > max {
		w = max
	}
	return w
}

// Size resolves c's width: a columnSizing override if present, else its
// declared default, clamped to [MinWidth, MaxWidth].
func (c *Column) Size(sizing map[string]float64) float64 {
	w := c.Def.DefaultWidth
	if o, ok := sizing[c.Def.ID]; ok {
		w = o
	}
	return clamp(w, c.Def.MinWidth, c.Def.MaxWidth)
}

// GetIsPinned reads c's current pin side: the table's columnPinning
// override if present, else the column's declared default.
func (c *Column) GetIsPinned() PinSide {
	if c.tbl == nil {
		return c.Def.DefaultPin
	}
	if p, ok := c.tbl.columnPinning.Get()[c.Def.ID]; ok {
		return p
	}
	return c.Def.DefaultPin
}

// Pin assigns c to side, writing through the table's columnPinning state.
// A no-op if c was never attached to a Table (e.g. a tree built directly
// via buildColumnTree in a test).
func (c *Column) Pin(side PinSide) {
	if c.tbl == nil {
		return
	}
	id := c.Def.ID
	c.tbl.SetColumnPinning(Map(func(prev map[string]PinSide) map[string]PinSide {
		next := clonePinning(prev)
		next[id] = side
		return next
	}))
}

// Unpin clears any pin override on c, reverting it to its declared
// default pin side.
func (c *Column) Unpin() {
	if c.tbl == nil {
		return
	}
	id := c.Def.ID
	c.tbl.SetColumnPinning(Map(func(prev map[string]PinSide) map[string]PinSide {
		next := clonePinning(prev)
		delete(next, id)
		return next
	}))
}

// ToggleVisibility flips c's visibility, writing through the table's
// columnVisibility state.
func (c *Column) ToggleVisibility() {
	if c.tbl == nil {
		return
	}
	id := c.Def.ID
	defaultHidden := c.Def.DefaultHidden
	c.tbl.SetColumnVisibility(Map(func(prev map[string]bool) map[string]bool {
		next := cloneExpanded(prev)
		cur, ok := next[id]
		if !ok {
			cur = !defaultHidden
		}
		next[id] = !cur
		return next
	}))
}

func clonePinning(m map[string]PinSide) map[string]PinSide {
	next := make(map[string]PinSide, len(m))
	for k, v := range m {
		next[k] = v
	}
	return next
}

// GetCanSort reports whether c participates in sorting.
func (c *Column) GetCanSort() bool { return c.Def.EnableSorting }

// GetIsSorted reads c's current sort direction out of a sort spec.
func (c *Column) GetIsSorted(sorting []SortKey) SortDirection {
	for _, k := range sorting {
		if k.ID == c.Def.ID {
			if k.Desc {
				return SortDesc
			}
			return SortAsc
		}
	}
	return SortNone
}

// SortKey is one entry of the public sort state: a column id plus
// direction, mirroring sortengine.Key but addressed by column id rather
// than store index (host-facing state uses ids; sortengine.Run uses
// resolved store indices).
type SortKey struct {
	ID   string
	Desc bool
}

// ToggleSort applies the single-key toggle cycle off->asc->desc->off to col
// within the current sort state, or, if desc is non-nil, sets that
// direction explicitly. The result replaces the entire sort spec
// (single-key mode).
func ToggleSort(current []SortKey, colID string, desc *bool) []SortKey {
	if desc != nil {
		return []SortKey{{ID: colID, Desc: *desc}}
	}
	var cur SortDirection
	for _, k := range current {
		if k.ID == colID {
			if k.Desc {
				cur = SortDesc
			} else {
				cur = SortAsc
			}
		}
	}
	switch cur {
	case SortNone:
		return []SortKey{{ID: colID, Desc: false}}
	case SortAsc:
		return []SortKey{{ID: colID, Desc: true}}
	default:
		return nil
	}
}
