// Package store implements a columnar data store: typed columnar storage
// for up to ~1,000,000 rows and ~10 columns, ingested column-by-column and
// read back by (column, row) without copying the backing arrays.
//
// Grounded on aster's memory-conscious Node layout (internal/scanner.Node):
// plain structs over atomics/pointers, no reflection, sized for millions of
// entries.
package store

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/mobanhawi/tablekit/errs"
)

// PhysicalType is one of the two storage representations a column can hold.
type PhysicalType uint8

const (
	TypeF64 PhysicalType = iota
	TypeStr
)

func (t PhysicalType) String() string {
	if t == TypeStr {
		return "str"
	}
	return "f64"
}

// NullStrID is the reserved dictionary id meaning "null" for STR columns.
const NullStrID = ^uint32(0)

type columnState uint8

const (
	colEmpty columnState = iota
	colF64
	colBool
	colStr
)

type column struct {
	state   columnState
	floats  []float64 // backing for colF64 and colBool
	uniques []string  // backing dictionary for colStr
	ids     []uint32  // backing per-row ids for colStr
}

// ColumnInfo describes a column's backing array for zero-copy host reads:
// a stable memory region exposed as a borrowed slice — the host must not
// retain it across an Init cycle.
type ColumnInfo struct {
	Type        PhysicalType
	Len         int
	ElementSize int
	// Floats is valid when Type == TypeF64 (includes bool-encoded columns).
	Floats []float64
	// IDs and Uniques are valid when Type == TypeStr.
	IDs     []uint32
	Uniques []string
}

// Store is the columnar data store. Zero value is not initialized; call
// Init before any ingestion.
type Store struct {
	cols       []column
	numRows    int
	ready      bool
	generation uint64
}

// New returns an uninitialized Store.
func New() *Store {
	return &Store{}
}

// Init resets the store, allocating C column slots for R rows. Re-calling
// Init discards all prior state.
func (s *Store) Init(c, r int) {
	s.cols = make([]column, c)
	s.numRows = r
	s.ready = false
	s.generation++
}

func (s *Store) requireInit(op string) error {
	if s.cols == nil {
		return errs.New(errs.KindNotInitialized, op, "call Init before use")
	}
	return nil
}

func (s *Store) checkCol(op string, c int) error {
	if c < 0 || c >= len(s.cols) {
		return errs.New(errs.KindOutOfRange, op, fmt.Sprintf("column %d out of range [0,%d)", c, len(s.cols)))
	}
	return nil
}

func (s *Store) checkRow(op string, r int) error {
	if r < 0 || r >= s.numRows {
		return errs.New(errs.KindOutOfRange, op, fmt.Sprintf("row %d out of range [0,%d)", r, s.numRows))
	}
	return nil
}

// IngestF64 moves a dense float64 column into slot c, marking it F64.
func (s *Store) IngestF64(c int, values []float64) error {
	return s.ingestFloats("IngestF64", c, values, colF64)
}

// IngestBool stores the same float64 representation as IngestF64 (true=1,
// false=0, null=NaN) but records the semantic subtype as bool.
func (s *Store) IngestBool(c int, values []float64) error {
	return s.ingestFloats("IngestBool", c, values, colBool)
}

func (s *Store) ingestFloats(op string, c int, values []float64, kind columnState) error {
	if err := s.requireInit(op); err != nil {
		return err
	}
	if err := s.checkCol(op, c); err != nil {
		return err
	}
	if len(values) != s.numRows {
		return errs.New(errs.KindBadInput, op, fmt.Sprintf("expected %d values, got %d", s.numRows, len(values)))
	}
	s.cols[c] = column{state: kind, floats: values}
	s.generation++
	return nil
}

// IngestStr stores a dictionary-encoded string column: uniques is the
// deduplicated string pool, ids[i] indexes into it for row i (NullStrID
// marks a null). Fails with BadInput if any id is out of range.
func (s *Store) IngestStr(c int, uniques []string, ids []uint32) error {
	const op = "IngestStr"
	if err := s.requireInit(op); err != nil {
		return err
	}
	if err := s.checkCol(op, c); err != nil {
		return err
	}
	if len(ids) != s.numRows {
		return errs.New(errs.KindBadInput, op, fmt.Sprintf("expected %d ids, got %d", s.numRows, len(ids)))
	}
	if err := validateIDs(ids, len(uniques)); err != nil {
		return err
	}
	s.cols[c] = column{state: colStr, uniques: uniques, ids: ids}
	s.generation++
	return nil
}

// validateIDs checks every id is either NullStrID or < numUniques. Large id
// arrays are split into one contiguous chunk per CPU, each checked by its
// own goroutine, a bounded fan-out in the spirit of aster's
// scanDir/processBatch that stays synchronous from the caller's perspective
// (all workers join via a WaitGroup before this function returns).
func validateIDs(ids []uint32, numUniques int) error {
	const parallelThreshold = 1 << 16
	if len(ids) < parallelThreshold {
		for i, id := range ids {
			if id != NullStrID && int(id) >= numUniques {
				return errs.New(errs.KindBadInput, "IngestStr", fmt.Sprintf("row %d: id %d >= uniques length %d", i, id, numUniques))
			}
		}
		return nil
	}

	numWorkers := runtime.NumCPU()
	if numWorkers < 1 {
		numWorkers = 1
	}
	chunk := (len(ids) + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	errCh := make(chan error, numWorkers)
	for start := 0; start < len(ids); start += chunk {
		end := start + chunk
		if end > len(ids) {
			end = len(ids)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				id := ids[i]
				if id != NullStrID && int(id) >= numUniques {
					select {
					case errCh <- errs.New(errs.KindBadInput, "IngestStr", fmt.Sprintf("row %d: id %d >= uniques length %d", i, id, numUniques)):
					default:
					}
					return
				}
			}
		}(start, end)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// Finalize marks the store ready for reads. Fails with NotInitialized if any
// column slot was never ingested.
func (s *Store) Finalize() error {
	const op = "Finalize"
	if err := s.requireInit(op); err != nil {
		return err
	}
	for c, col := range s.cols {
		if col.state == colEmpty {
			return errs.New(errs.KindNotInitialized, op, fmt.Sprintf("column %d was never ingested", c))
		}
	}
	s.ready = true
	s.generation++
	return nil
}

// Generation returns the monotone counter, bumped by Init and every ingest.
func (s *Store) Generation() uint64 { return s.generation }

// NumRows returns R, the row count fixed at Init.
func (s *Store) NumRows() int { return s.numRows }

// NumCols returns C, the column count fixed at Init.
func (s *Store) NumCols() int { return len(s.cols) }

// Ready reports whether Finalize has succeeded since the last Init.
func (s *Store) Ready() bool { return s.ready }

// ColumnType reports the physical type backing column c.
func (s *Store) ColumnType(c int) (PhysicalType, error) {
	if err := s.requireInit("ColumnType"); err != nil {
		return 0, err
	}
	if err := s.checkCol("ColumnType", c); err != nil {
		return 0, err
	}
	if s.cols[c].state == colStr {
		return TypeStr, nil
	}
	return TypeF64, nil
}

// ColumnInfo returns the column's backing-array description for zero-copy
// host reads.
func (s *Store) ColumnInfo(c int) (ColumnInfo, error) {
	if err := s.requireInit("ColumnInfo"); err != nil {
		return ColumnInfo{}, err
	}
	if err := s.checkCol("ColumnInfo", c); err != nil {
		return ColumnInfo{}, err
	}
	col := s.cols[c]
	switch col.state {
	case colStr:
		return ColumnInfo{Type: TypeStr, Len: len(col.ids), ElementSize: 4, IDs: col.ids, Uniques: col.uniques}, nil
	default:
		return ColumnInfo{Type: TypeF64, Len: len(col.floats), ElementSize: 8, Floats: col.floats}, nil
	}
}

// GetNumeric reads the float64 at (c, row); NaN encodes null. Used by the
// filter and sort engines.
func (s *Store) GetNumeric(c, row int) (float64, error) {
	const op = "GetNumeric"
	if err := s.requireInit(op); err != nil {
		return 0, err
	}
	if err := s.checkCol(op, c); err != nil {
		return 0, err
	}
	if err := s.checkRow(op, row); err != nil {
		return 0, err
	}
	col := &s.cols[c]
	if col.state == colStr {
		return 0, errs.New(errs.KindBadInput, op, fmt.Sprintf("column %d is a string column", c))
	}
	if col.floats == nil {
		return math.NaN(), nil
	}
	return col.floats[row], nil
}

// GetString reads the string at (c, row); ok is false for null.
func (s *Store) GetString(c, row int) (value string, ok bool, err error) {
	const op = "GetString"
	if err := s.requireInit(op); err != nil {
		return "", false, err
	}
	if err := s.checkCol(op, c); err != nil {
		return "", false, err
	}
	if err := s.checkRow(op, row); err != nil {
		return "", false, err
	}
	col := &s.cols[c]
	if col.state != colStr {
		return "", false, errs.New(errs.KindBadInput, op, fmt.Sprintf("column %d is not a string column", c))
	}
	id := col.ids[row]
	if id == NullStrID {
		return "", false, nil
	}
	return col.uniques[id], true, nil
}

// Stats is a read-only diagnostic snapshot, useful for host telemetry and
// benchmarks — not part of the engine's control-flow surface.
type Stats struct {
	NumCols     int
	NumRows     int
	Generation  uint64
	BytesFloats int64
	BytesStr    int64
}

// Snapshot reports row/column counts and approximate per-kind byte sizes.
func (s *Store) Snapshot() Stats {
	st := Stats{NumCols: len(s.cols), NumRows: s.numRows, Generation: s.generation}
	for _, col := range s.cols {
		switch col.state {
		case colF64, colBool:
			st.BytesFloats += int64(len(col.floats)) * 8
		case colStr:
			st.BytesStr += int64(len(col.ids)) * 4
			for _, u := range col.uniques {
				st.BytesStr += int64(len(u))
			}
		}
	}
	return st
}

// ValueSource is the read surface the filter and sort engines consume;
// *Store is the canonical implementation.
type ValueSource interface {
	NumRows() int
	NumCols() int
	Generation() uint64
	ColumnType(c int) (PhysicalType, error)
	GetNumeric(c, row int) (float64, error)
	GetString(c, row int) (value string, ok bool, err error)
}

var _ ValueSource = (*Store)(nil)
