package table

// Header is one cell in the header-group grid: either a real group/leaf
// header, or a placeholder that carries
// the original leaf column down through shallower rows so its sort handler
// still targets the right column.
type Header struct {
	Column        *Column
	ColSpan       int
	RowSpan       int
	Depth         int
	IsPlaceholder bool
}

// HeaderGroupRow is one row of the header grid.
type HeaderGroupRow struct {
	Headers []*Header
}

// BuildHeaderGroups derives the maxDepth+1 header rows from the resolved
// visible leaf columns: start with every visible leaf in the bottom
// (maxDepth) row, marked as a placeholder when its own depth is shallower
// than maxDepth, then for each shallower row either coalesce adjacent
// headers sharing a real ancestor, or synthesize a placeholder for a leaf
// that has no ancestor at that depth.
func BuildHeaderGroups(visibleLeaves []*Column) []HeaderGroupRow {
	if len(visibleLeaves) == 0 {
		return nil
	}
	maxDepth := maxLeafDepth(visibleLeaves)

	level := make([]*Header, len(visibleLeaves))
	for i, c := range visibleLeaves {
		level[i] = &Header{Column: c, ColSpan: 1, RowSpan: 1, Depth: maxDepth, IsPlaceholder: c.Depth != maxDepth}
	}

	rows := make([]HeaderGroupRow, maxDepth+1)
	rows[maxDepth] = HeaderGroupRow{Headers: level}

	for d := maxDepth - 1; d >= 0; d-- {
		var next []*Header
		for _, h := range level {
			ancestor, hasAncestor := ancestorAtDepth(h.Column, d)
			if hasAncestor {
				if len(next) > 0 && next[len(next)-1].Column == ancestor && !next[len(next)-1].IsPlaceholder {
					next[len(next)-1].ColSpan += h.ColSpan
					continue
				}
				next = append(next, &Header{Column: ancestor, ColSpan: h.ColSpan, RowSpan: 1, Depth: d})
				continue
			}
			next = append(next, &Header{
				Column:        h.Column,
				ColSpan:       1,
				RowSpan:       maxDepth - d + 1,
				Depth:         d,
				IsPlaceholder: true,
			})
		}
		rows[d] = HeaderGroupRow{Headers: next}
		level = next
	}

	return rows
}
