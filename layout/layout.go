// Engine implements the viewport layout algorithm: given a set of resolved
// visible columns, a view-indices array, and a viewport description, it
// emits one packed Buffer holding header cells followed by the visible
// data-row window, plus the pinned-region partition for that frame.
//
// Grounded on aster's scrollWindow (internal/ui/view.go): "clamp the
// visible slice to the terminal height, plus a small look-ahead" — the row
// windowing here generalizes that clamp-plus-overscan idea to an
// arbitrary row height and header offset.
package layout

import "math"

// Column is one resolved, visible leaf column ready for layout.
type Column struct {
	ID                     string
	Width, MinWidth, MaxWidth float64
	Align                  AlignCode
	PadT, PadR, PadB, PadL float64
	BorderT, BorderR, BorderB, BorderL float64
}

// clampedWidth returns Width clamped to [MinWidth, MaxWidth]. A zero
// bound is treated as "no bound".
func (c Column) clampedWidth() float64 {
	w := c.Width
	if c.MinWidth > 0 && w < c.MinWidth {
		w = c.MinWidth
	}
	if c.MaxWidth > 0 && w > c.MaxWidth {
		w = c.MaxWidth
	}
	return w
}

// Viewport describes one frame's scroll position and visible size.
type Viewport struct {
	ScrollTop, ScrollLeft float64
	Width, Height         float64
	RowHeight             float64
	HeaderHeight          float64
	Overscan              int
}

// Pinning carries the count of leading/trailing columns pinned left/right.
// Columns is assumed pre-ordered left-cluster, center-cluster,
// right-cluster, so LeftCount/RightCount simply index into that order.
type Pinning struct {
	LeftCount, RightCount int
}

// Result is one frame's layout output.
type Result struct {
	Buffer            *Buffer
	CellCount         int
	HeaderCount       int
	Regions           Regions
	TotalContentWidth float64
	LeftWidth         float64
	RightWidth        float64
	RowStart, RowEnd  int // [RowStart, RowEnd) window into viewIndices
	TotalContentHeight float64
}

// Engine computes per-frame layouts into a single reused Buffer.
type Engine struct {
	buf *Buffer
}

// NewEngine returns a layout engine with its own packed buffer.
func NewEngine() *Engine {
	return &Engine{buf: NewBuffer()}
}

// Compute runs the layout algorithm for one frame.
func (e *Engine) Compute(columns []Column, viewIndices []uint32, vp Viewport, pin Pinning) Result {
	widths := make([]float64, len(columns))
	var totalWidth float64
	for i, c := range columns {
		widths[i] = c.clampedWidth()
		totalWidth += widths[i]
	}
	var leftWidth, rightWidth float64
	for i := 0; i < pin.LeftCount && i < len(widths); i++ {
		leftWidth += widths[i]
	}
	for i := len(widths) - pin.RightCount; i < len(widths); i++ {
		if i >= 0 {
			rightWidth += widths[i]
		}
	}

	regions := ComputeRegions(vp.Width, vp.Height, leftWidth, rightWidth, totalWidth, vp.ScrollLeft)

	viewRows := len(viewIndices)
	totalContentHeight := float64(viewRows) * vp.RowHeight

	headerCount := len(columns)

	r0, r1 := 0, 0
	headerOnly := viewRows == 0 || vp.Height < vp.HeaderHeight
	if !headerOnly {
		viewportDataHeight := vp.Height - vp.HeaderHeight
		r0 = int(math.Floor(vp.ScrollTop / vp.RowHeight))
		r0 -= vp.Overscan
		if r0 < 0 {
			r0 = 0
		}
		r1 = int(math.Ceil((vp.ScrollTop+viewportDataHeight)/vp.RowHeight)) + vp.Overscan
		if r1 > viewRows {
			r1 = viewRows
		}
		if r1 < r0 {
			r1 = r0
		}
	}

	dataRows := r1 - r0
	totalCells := headerCount + dataRows*len(columns)
	e.buf.Grow(totalCells)

	originX := make([]float64, len(columns))
	running := 0.0
	for i, w := range widths {
		originX[i] = running
		running += w
	}

	idx := 0
	for j, col := range columns {
		e.buf.Set(idx, CellSpec{
			Row: HeaderRow, Col: j,
			X: originX[j], Y: vp.ScrollTop,
			Width: widths[j], Height: vp.HeaderHeight,
			Align: col.Align,
			PadT: col.PadT, PadR: col.PadR, PadB: col.PadB, PadL: col.PadL,
			BorderT: col.BorderT, BorderR: col.BorderR, BorderB: col.BorderB, BorderL: col.BorderL,
		})
		idx++
	}

	for r := r0; r < r1; r++ {
		y := vp.HeaderHeight + float64(r)*vp.RowHeight
		for j, col := range columns {
			e.buf.Set(idx, CellSpec{
				Row: int(viewIndices[r]), Col: j,
				X: originX[j], Y: y,
				Width: widths[j], Height: vp.RowHeight,
				Align: col.Align,
				PadT: col.PadT, PadR: col.PadR, PadB: col.PadB, PadL: col.PadL,
				BorderT: col.BorderT, BorderR: col.BorderR, BorderB: col.BorderB, BorderL: col.BorderL,
			})
			idx++
		}
	}

	return Result{
		Buffer:             e.buf,
		CellCount:          totalCells,
		HeaderCount:        headerCount,
		Regions:            regions,
		TotalContentWidth:  totalWidth,
		LeftWidth:          leftWidth,
		RightWidth:         rightWidth,
		RowStart:           r0,
		RowEnd:             r1,
		TotalContentHeight: totalContentHeight,
	}
}
