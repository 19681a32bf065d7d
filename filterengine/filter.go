// Package filterengine implements a predicate-driven filter: a
// case-insensitive global substring predicate ANDed with per-column
// predicates, producing a compacted candidate index array in ascending
// (original) order.
//
// Grounded on aster's lazy, generation-cached traversal style
// (mobanhawi/aster's visibleChildren) and on SnellerInc/sneller's
// selection-vector idiom (vm/sfw.go): a single pass over row indices
// surviving a predicate, with no intermediate allocation beyond the output.
package filterengine

import (
	"hash/fnv"
	"math"
	"strconv"
	"strings"

	"github.com/mobanhawi/tablekit/store"
)

// CompareOp names the numeric comparator for a KindEquals column predicate.
// OpEq is plain equality (within Epsilon); the remaining comparators are
// one-sided numeric comparisons. Half-open range checks are a separate
// predicate kind (KindNumRange), not a CompareOp.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpLt
	OpLte
	OpGt
	OpGte
)

// PredicateKind selects which column predicate shape applies.
type PredicateKind int

const (
	KindSubstring PredicateKind = iota
	KindEquals
	KindNumRange
)

// ColumnPredicate is one per-column filter.
type ColumnPredicate struct {
	Col int
	Kind PredicateKind

	// KindSubstring: case-insensitive substring match against the column's
	// resolved string value.
	Substring string

	// KindEquals: numeric equality within Epsilon (Epsilon<=0 means exact).
	Equals  float64
	Epsilon float64

	// KindNumRange: [Min, Max) half-open range.
	Min, Max float64

	// Op is consulted for KindEquals style one-sided comparators beyond
	// plain equality (Lt/Lte/Gt/Gte against Equals).
	Op CompareOp
}

// Spec is the full filter specification: a global substring query ANDed
// with per-column predicates.
type Spec struct {
	// Global is the case-insensitive substring query; empty means no-op.
	Global string
	// GlobalCols lists the string columns the global query searches. A
	// caller that leaves this empty but sets Global is asking Run to
	// search every string column in src.
	GlobalCols []int
	Columns    []ColumnPredicate
}

// Fingerprint is a cheap, deterministic key for the view pipeline's cache
// triple.
func (s Spec) Fingerprint() uint64 {
	h := fnv.New64a()
	h.Write([]byte(s.Global))
	h.Write([]byte{0})
	for _, c := range s.GlobalCols {
		h.Write([]byte(strconv.Itoa(c)))
		h.Write([]byte{0})
	}
	for _, p := range s.Columns {
		h.Write([]byte(strconv.Itoa(p.Col)))
		h.Write([]byte{',', byte(p.Kind), ','})
		h.Write([]byte(p.Substring))
		h.Write([]byte{0})
		writeFloat(h, p.Equals)
		writeFloat(h, p.Epsilon)
		writeFloat(h, p.Min)
		writeFloat(h, p.Max)
		h.Write([]byte{byte(p.Op), 0})
	}
	return h.Sum64()
}

func writeFloat(h interface{ Write([]byte) (int, error) }, f float64) {
	h.Write([]byte(strconv.FormatFloat(f, 'g', -1, 64)))
	h.Write([]byte{0})
}

// Run evaluates spec against src and returns the surviving row indices in
// ascending order.
func Run(src store.ValueSource, spec Spec) ([]uint32, error) {
	r := src.NumRows()
	out := make([]uint32, 0, r)

	globalQuery := strings.ToLower(spec.Global)
	hasGlobal := globalQuery != ""

	globalCols := spec.GlobalCols
	if hasGlobal && len(globalCols) == 0 {
		cols, err := allStringColumns(src)
		if err != nil {
			return nil, err
		}
		globalCols = cols
	}

	for i := 0; i < r; i++ {
		if hasGlobal {
			matched, err := matchesGlobal(src, globalCols, i, globalQuery)
			if err != nil {
				return nil, err
			}
			if !matched {
				continue
			}
		}
		ok, err := matchesColumns(src, spec.Columns, i)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, uint32(i))
	}
	return out, nil
}

func allStringColumns(src store.ValueSource) ([]int, error) {
	var cols []int
	for c := 0; c < src.NumCols(); c++ {
		ct, err := src.ColumnType(c)
		if err != nil {
			return nil, err
		}
		if ct == store.TypeStr {
			cols = append(cols, c)
		}
	}
	return cols, nil
}

func matchesGlobal(src store.ValueSource, cols []int, row int, query string) (bool, error) {
	for _, c := range cols {
		val, ok, err := src.GetString(c, row)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(val), query) {
			return true, nil
		}
	}
	return false, nil
}

func matchesColumns(src store.ValueSource, preds []ColumnPredicate, row int) (bool, error) {
	for _, p := range preds {
		ok, err := matchesOne(src, p, row)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matchesOne(src store.ValueSource, p ColumnPredicate, row int) (bool, error) {
	switch p.Kind {
	case KindSubstring:
		if p.Substring == "" {
			return true, nil
		}
		val, ok, err := src.GetString(p.Col, row)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		return strings.Contains(strings.ToLower(val), strings.ToLower(p.Substring)), nil
	case KindEquals:
		v, err := src.GetNumeric(p.Col, row)
		if err != nil {
			return false, err
		}
		return matchesCompare(v, p), nil
	case KindNumRange:
		v, err := src.GetNumeric(p.Col, row)
		if err != nil {
			return false, err
		}
		// NaN compares false against both bounds, correctly excluding nulls.
		return v >= p.Min && v < p.Max, nil
	default:
		return true, nil
	}
}

func matchesCompare(v float64, p ColumnPredicate) bool {
	switch p.Op {
	case OpLt:
		return v < p.Equals
	case OpLte:
		return v <= p.Equals
	case OpGt:
		return v > p.Equals
	case OpGte:
		return v >= p.Equals
	default:
		if p.Epsilon > 0 {
			return math.Abs(v-p.Equals) <= p.Epsilon
		}
		return v == p.Equals
	}
}
