// Package layout implements the viewport layout engine, the packed layout
// buffer and its reader primitives, and region layout for pinned columns.
//
// Grounded on segmentio/parquet-go's fixed-stride packed-page reading style
// (ac80a17d_segmentio-parquet-go__column_buffer.go.go in the retrieval
// pack) adapted to a 16-float cell stride, and on aster's
// capacity-reuse habit (cachedDivider/cachedHints:
// "recomputed only when their inputs change" — the buffer here grows but
// never shrinks between frames for the same reason).
package layout

// Stride is the number of float32 fields per packed cell.
const Stride = 16

// Field offsets within a cell, in buffer order.
const (
	fieldRow = iota
	fieldCol
	fieldX
	fieldY
	fieldWidth
	fieldHeight
	fieldAlign
	fieldPadT
	fieldPadR
	fieldPadB
	fieldPadL
	fieldBorderT
	fieldBorderR
	fieldBorderB
	fieldBorderL
	fieldReserved
)

// AlignCode is the packed alignment code.
type AlignCode int

const (
	AlignLeft AlignCode = iota
	AlignCenter
	AlignRight
)

// HeaderRow is written into a header cell's row field. Header cells have
// no original-row meaning, so this is the packed contract's "absent
// field" value (0.0), not a sentinel index — a reader distinguishes a
// header cell from row 0 of data by its position (index < HeaderCount),
// not by this value.
const HeaderRow = 0

// CellSpec is the unpacked form of one layout buffer cell.
type CellSpec struct {
	Row, Col               int
	X, Y, Width, Height    float64
	Align                  AlignCode
	PadT, PadR, PadB, PadL float64
	BorderT, BorderR, BorderB, BorderL float64
}

// Buffer is the fixed-stride packed float32 array shared zero-copy with the
// host. It grows on demand and is never shrunk between frames, to avoid
// per-frame reallocation.
type Buffer struct {
	data      []float32
	cellCount int
}

// NewBuffer returns an empty layout buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Grow ensures capacity for n cells and sets the active cell count to n.
// Existing capacity is kept (and reused) across calls; only insufficient
// capacity triggers a reallocation.
func (b *Buffer) Grow(n int) {
	need := n * Stride
	if cap(b.data) < need {
		newCap := cap(b.data) * 2
		if newCap < need {
			newCap = need
		}
		nd := make([]float32, need, newCap)
		copy(nd, b.data)
		b.data = nd
	} else {
		b.data = b.data[:need]
	}
	b.cellCount = n
}

// Set writes cell i. i must be < the cell count from the last Grow call.
func (b *Buffer) Set(i int, c CellSpec) {
	off := i * Stride
	b.data[off+fieldRow] = float32(c.Row)
	b.data[off+fieldCol] = float32(c.Col)
	b.data[off+fieldX] = float32(c.X)
	b.data[off+fieldY] = float32(c.Y)
	b.data[off+fieldWidth] = float32(c.Width)
	b.data[off+fieldHeight] = float32(c.Height)
	b.data[off+fieldAlign] = float32(c.Align)
	b.data[off+fieldPadT] = float32(c.PadT)
	b.data[off+fieldPadR] = float32(c.PadR)
	b.data[off+fieldPadB] = float32(c.PadB)
	b.data[off+fieldPadL] = float32(c.PadL)
	b.data[off+fieldBorderT] = float32(c.BorderT)
	b.data[off+fieldBorderR] = float32(c.BorderR)
	b.data[off+fieldBorderB] = float32(c.BorderB)
	b.data[off+fieldBorderL] = float32(c.BorderL)
	b.data[off+fieldReserved] = 0
}

// Slice returns the packed buffer's currently active region: the borrowed
// memory a host reads zero-copy. Valid until the next Grow call that
// reallocates: a fresh pointer is valid until the next Compute call that
// grows the buffer.
func (b *Buffer) Slice() []float32 { return b.data }

// CellCount returns how many cells are currently active.
func (b *Buffer) CellCount() int { return b.cellCount }

func field(buf []float32, i, idx int) float32 {
	off := i*Stride + idx
	if off < 0 || off >= len(buf) {
		return 0
	}
	return buf[off]
}

// Reader primitives: pure accessors over a packed buffer, indexed by
// cell. Out-of-bounds indices return 0, defensively, not an error.
func Row(buf []float32, i int) float32 { return field(buf, i, fieldRow) }
func Col(buf []float32, i int) float32 { return field(buf, i, fieldCol) }
func X(buf []float32, i int) float32 { return field(buf, i, fieldX) }
func Y(buf []float32, i int) float32 { return field(buf, i, fieldY) }
func Width(buf []float32, i int) float32 { return field(buf, i, fieldWidth) }
func Height(buf []float32, i int) float32 { return field(buf, i, fieldHeight) }
func Align(buf []float32, i int) float32 { return field(buf, i, fieldAlign) }
func PadTop(buf []float32, i int) float32 { return field(buf, i, fieldPadT) }
func PadRight(buf []float32, i int) float32 { return field(buf, i, fieldPadR) }
func PadBottom(buf []float32, i int) float32 { return field(buf, i, fieldPadB) }
func PadLeft(buf []float32, i int) float32 { return field(buf, i, fieldPadL) }
func BorderTop(buf []float32, i int) float32 { return field(buf, i, fieldBorderT) }
func BorderRight(buf []float32, i int) float32 { return field(buf, i, fieldBorderR) }
func BorderBottom(buf []float32, i int) float32 { return field(buf, i, fieldBorderB) }
func BorderLeft(buf []float32, i int) float32 { return field(buf, i, fieldBorderL) }

// FindCell hit-tests (px, py) against cells [start, start+count), with
// inclusive top-left and exclusive bottom-right bounds. Ties resolve to
// the first matching index.
func FindCell(buf []float32, start, count int, px, py float64) int {
	for i := start; i < start+count; i++ {
		x := float64(X(buf, i))
		y := float64(Y(buf, i))
		w := float64(Width(buf, i))
		h := float64(Height(buf, i))
		if px >= x && px < x+w && py >= y && py < y+h {
			return i
		}
	}
	return -1
}
