package filterengine

import (
	"math"
	"reflect"
	"testing"

	"github.com/mobanhawi/tablekit/store"
)

// buildFourRows builds a small fixture: A/30, B/25, C/35, D/28.
func buildFourRows(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	s.Init(2, 4)
	if err := s.IngestStr(0, []string{"A", "B", "C", "D"}, []uint32{0, 1, 2, 3}); err != nil {
		t.Fatalf("IngestStr: %v", err)
	}
	if err := s.IngestF64(1, []float64{30, 25, 35, 28}); err != nil {
		t.Fatalf("IngestF64: %v", err)
	}
	if err := s.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return s
}

func TestEmptyQueryIsNoOp(t *testing.T) {
	s := buildFourRows(t)
	out, err := Run(s, Spec{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []uint32{0, 1, 2, 3}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestColumnFilterGreaterThan(t *testing.T) {
	s := buildFourRows(t)
	spec := Spec{Columns: []ColumnPredicate{{Col: 1, Kind: KindEquals, Op: OpGt, Equals: 26}}}
	out, err := Run(s, spec)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []uint32{0, 2, 3} // ages 30, 35, 28 survive > 26
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestGlobalSubstringCaseInsensitive(t *testing.T) {
	s := store.New()
	s.Init(1, 2)
	if err := s.IngestStr(0, []string{"Alice", "bob"}, []uint32{0, 1}); err != nil {
		t.Fatalf("IngestStr: %v", err)
	}
	if err := s.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	out, err := Run(s, Spec{Global: "ALI"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(out, []uint32{0}) {
		t.Errorf("got %v, want [0]", out)
	}
}

func TestNullStringNeverMatchesSubstring(t *testing.T) {
	s := store.New()
	s.Init(1, 1)
	if err := s.IngestStr(0, []string{"x"}, []uint32{store.NullStrID}); err != nil {
		t.Fatalf("IngestStr: %v", err)
	}
	if err := s.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	out, err := Run(s, Spec{Global: ""})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected row to survive an empty query, got %v", out)
	}

	out, err = Run(s, Spec{Global: "x"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected null row to never match a non-empty substring, got %v", out)
	}
}

func TestNaNNeverEquals(t *testing.T) {
	s := store.New()
	s.Init(1, 1)
	if err := s.IngestF64(0, []float64{math.NaN()}); err != nil {
		t.Fatalf("IngestF64: %v", err)
	}
	if err := s.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	out, err := Run(s, Spec{Columns: []ColumnPredicate{{Col: 0, Kind: KindEquals, Equals: 0, Epsilon: 1}}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected NaN to never equal a finite value, got %v", out)
	}
}

func TestNumRangeHalfOpen(t *testing.T) {
	s := store.New()
	s.Init(1, 3)
	if err := s.IngestF64(0, []float64{1, 2, 3}); err != nil {
		t.Fatalf("IngestF64: %v", err)
	}
	if err := s.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	out, err := Run(s, Spec{Columns: []ColumnPredicate{{Col: 0, Kind: KindNumRange, Min: 1, Max: 3}}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []uint32{0, 1} // [1,3) includes 1 and 2, excludes 3
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestFingerprintStableAndSensitive(t *testing.T) {
	a := Spec{Global: "x", Columns: []ColumnPredicate{{Col: 1, Kind: KindSubstring, Substring: "y"}}}
	b := Spec{Global: "x", Columns: []ColumnPredicate{{Col: 1, Kind: KindSubstring, Substring: "y"}}}
	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("expected identical specs to fingerprint identically")
	}
	c := Spec{Global: "x", Columns: []ColumnPredicate{{Col: 1, Kind: KindSubstring, Substring: "z"}}}
	if a.Fingerprint() == c.Fingerprint() {
		t.Errorf("expected differing specs to fingerprint differently")
	}
}
