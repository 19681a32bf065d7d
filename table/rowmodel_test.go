package table

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mobanhawi/tablekit/errs"
	"github.com/mobanhawi/tablekit/store"
)

// buildTreeStore ingests 5 rows: root A(0) and D(1) are siblings; A's
// children are B(2) and C(3); B's only child is E(4). Row ids are store
// row indices.
func buildTreeStore(t *testing.T) (*store.Store, []int) {
	t.Helper()
	s := store.New()
	s.Init(1, 5)
	if err := s.IngestStr(0, []string{"A", "D", "B", "C", "E"}, []uint32{0, 1, 2, 3, 4}); err != nil {
		t.Fatalf("IngestStr: %v", err)
	}
	if err := s.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	parentOf := []int{-1, -1, 0, 0, 2} // A,D roots; B,C children of A; E child of B
	return s, parentOf
}

func treeTable(t *testing.T) *Table {
	s, parentOf := buildTreeStore(t)
	return New(Options{
		Store:      s,
		ColumnDefs: []ColumnDef{{ID: "name", StoreCol: 0, DefaultWidth: 100}},
		ParentOf:   parentOf,
	})
}

func TestCoreRowModelListsRootsInOrder(t *testing.T) {
	tbl := treeTable(t)
	roots := tbl.GetCoreRowModel()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].Index != 0 || roots[1].Index != 1 {
		t.Errorf("expected roots [0,1] (A,D), got [%d,%d]", roots[0].Index, roots[1].Index)
	}
}

func TestRowChildrenAscendingOrder(t *testing.T) {
	tbl := treeTable(t)
	a := tbl.rowsByIndex[0]
	if !reflect.DeepEqual(a.Children, []int{2, 3}) {
		t.Errorf("A's children = %v, want [2,3] (B,C)", a.Children)
	}
}

// TestExpandedTreeFlatten checks DFS-expanded flattening order against a
// hand-traced expected sequence.
func TestExpandedTreeFlatten(t *testing.T) {
	tbl := treeTable(t)
	tbl.SetExpanded(Set(map[string]bool{"0": true, "2": true})) // A and B expanded

	rows := tbl.GetExpandedRowModel()
	var names []string
	for _, r := range rows {
		v, err := r.GetValue("name")
		if err != nil {
			t.Fatalf("GetValue: %v", err)
		}
		names = append(names, v.(string))
	}
	want := []string{"A", "B", "E", "C", "D"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}

func TestExpandedTreeCollapsedShowsOnlyRoots(t *testing.T) {
	tbl := treeTable(t)
	rows := tbl.GetExpandedRowModel()
	if len(rows) != 2 {
		t.Fatalf("expected 2 visible roots when nothing is expanded, got %d", len(rows))
	}
}

func TestToggleExpandedFlipsState(t *testing.T) {
	tbl := treeTable(t)
	a := tbl.rowsByIndex[0]
	if a.GetIsExpanded() {
		t.Fatal("expected collapsed initially")
	}
	a.ToggleExpanded()
	if !a.GetIsExpanded() {
		t.Error("expected expanded after toggle")
	}
}

func TestGetRowOutOfRangeFails(t *testing.T) {
	tbl := treeTable(t)
	_, err := tbl.GetRow(99)
	if err == nil {
		t.Fatal("expected an out-of-range error")
	}
	if !errors.Is(err, errs.StateMisuse) {
		t.Errorf("expected errs.StateMisuse, got %v", err)
	}
}

func TestGetLeafRows(t *testing.T) {
	tbl := treeTable(t)
	a := tbl.rowsByIndex[0]
	leaves := a.GetLeafRows()
	var names []string
	for _, r := range leaves {
		v, _ := r.GetValue("name")
		names = append(names, v.(string))
	}
	want := []string{"E", "C"} // A's leaf descendants: E (under B) and C
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}
