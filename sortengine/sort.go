// Package sortengine implements a stable multi-key sort: an ordered list
// of (column, descending) keys applied to a candidate index array,
// producing a freshly allocated, stably-ordered index array.
//
// Grounded on aster's Node.SortBySize/SortByName (slices.SortFunc +
// cmp.Compare) generalized to multi-key comparison, and on SnellerInc/
// sneller's vm/sort.go and wshwsh12/tidb's executor/sort.go row-comparator
// chaining style: compare key by key, short-circuit on the first
// non-zero result.
package sortengine

import (
	"hash/fnv"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/mobanhawi/tablekit/store"
)

// Key is one (column, descending) entry in a sort specification.
type Key struct {
	Col  int
	Desc bool
}

// Spec is an ordered list of sort keys; empty means natural (candidate)
// order.
type Spec []Key

// Fingerprint is a cheap, deterministic key for the view pipeline's cache
// triple.
func (s Spec) Fingerprint() uint64 {
	h := fnv.New64a()
	for _, k := range s {
		h.Write([]byte(strconv.Itoa(k.Col)))
		if k.Desc {
			h.Write([]byte{'d'})
		} else {
			h.Write([]byte{'a'})
		}
	}
	return h.Sum64()
}

// Run stably sorts a copy of candidates according to spec. Candidates are
// never mutated in place; the result is always a fresh allocation.
func Run(src store.ValueSource, spec Spec, candidates []uint32) ([]uint32, error) {
	out := make([]uint32, len(candidates))
	copy(out, candidates)
	if len(spec) == 0 {
		return out, nil
	}

	types := make([]store.PhysicalType, len(spec))
	for i, k := range spec {
		ct, err := src.ColumnType(k.Col)
		if err != nil {
			return nil, err
		}
		types[i] = ct
	}

	var sortErr error
	slices.SortStableFunc(out, func(a, b uint32) int {
		for i, k := range spec {
			c, err := compareKey(src, k, types[i], a, b)
			if err != nil {
				sortErr = err
				return 0
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return out, nil
}

func compareKey(src store.ValueSource, k Key, ct store.PhysicalType, a, b uint32) (int, error) {
	switch ct {
	case store.TypeStr:
		sa, oka, err := src.GetString(k.Col, int(a))
		if err != nil {
			return 0, err
		}
		sb, okb, err := src.GetString(k.Col, int(b))
		if err != nil {
			return 0, err
		}
		return compareStr(sa, oka, sb, okb, k.Desc), nil
	default:
		va, err := src.GetNumeric(k.Col, int(a))
		if err != nil {
			return 0, err
		}
		vb, err := src.GetNumeric(k.Col, int(b))
		if err != nil {
			return 0, err
		}
		return compareF64(va, vb, k.Desc), nil
	}
}

// compareF64 sorts NaN last regardless of desc.
func compareF64(a, b float64, desc bool) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	c := 0
	switch {
	case a < b:
		c = -1
	case a > b:
		c = 1
	}
	if desc {
		c = -c
	}
	return c
}

// compareStr sorts a null sentinel after any string, invertible by desc —
// unlike compareF64's NaN handling, this ordering does invert.
func compareStr(a string, aOK bool, b string, bOK bool, desc bool) int {
	var c int
	switch {
	case !aOK && !bOK:
		c = 0
	case !aOK:
		c = 1
	case !bOK:
		c = -1
	default:
		c = strings.Compare(a, b)
	}
	if desc {
		c = -c
	}
	return c
}
