package table

import (
	"reflect"
	"testing"

	"github.com/mobanhawi/tablekit/filterengine"
	"github.com/mobanhawi/tablekit/store"
)

func flatStore(t *testing.T) *store.Store {
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

func flatTable(t *testing.T) *Table {
	return New(Options{
		Store: flatStore(t),
		ColumnDefs: []ColumnDef{
			{ID: "name", StoreCol: 0, DefaultWidth: 100},
			{ID: "age", StoreCol: 1, DefaultWidth: 60, EnableSorting: true},
		},
	})
}

func TestTableGetRowModelAppliesSortAndFilter(t *testing.T) {
	tbl := flatTable(t)
	tbl.SetColumnFilters(Set([]ColumnFilter{{ID: "age", Kind: filterengine.KindEquals, Op: filterengine.OpGt, Equals: 26}}))
	tbl.SetSorting(Set([]SortKey{{ID: "age", Desc: true}}))

	rows, err := tbl.GetRowModel()
	if err != nil {
		t.Fatalf("GetRowModel: %v", err)
	}
	var names []string
	for _, r := range rows {
		v, err := r.GetValue("name")
		if err != nil {
			t.Fatalf("GetValue: %v", err)
		}
		names = append(names, v.(string))
	}
	want := []string{"C", "A", "D"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}

func TestTableToggleColumnSorting(t *testing.T) {
	tbl := flatTable(t)
	tbl.ToggleColumnSorting("age", nil)
	if got := tbl.GetState().Sorting; len(got) != 1 || got[0].Desc {
		t.Fatalf("expected asc sort after first toggle, got %+v", got)
	}
}

func TestTableVisibleLeafColumnsDefault(t *testing.T) {
	tbl := flatTable(t)
	cols := tbl.VisibleLeafColumns()
	if len(cols) != 2 {
		t.Fatalf("expected 2 visible columns, got %d", len(cols))
	}
}

func TestTableGetColumnLooksUpByID(t *testing.T) {
	tbl := flatTable(t)
	if c := tbl.GetColumn("age"); c == nil || c.Def.ID != "age" {
		t.Errorf("expected to find column 'age'")
	}
	if c := tbl.GetColumn("missing"); c != nil {
		t.Errorf("expected nil for unknown column id")
	}
}

func TestTableSetColumnVisibilityHidesColumn(t *testing.T) {
	tbl := flatTable(t)
	tbl.SetColumnVisibility(Set(map[string]bool{"age": false}))
	cols := tbl.VisibleLeafColumns()
	if len(cols) != 1 || cols[0].Def.ID != "name" {
		t.Errorf("expected only 'name' visible, got %v", cols)
	}
}

func TestColumnPinAndUnpinRoundTrip(t *testing.T) {
	tbl := flatTable(t)
	age := tbl.GetColumn("age")
	if got := age.GetIsPinned(); got != PinNone {
		t.Fatalf("expected unpinned by default, got %v", got)
	}
	age.Pin(PinLeft)
	if got := age.GetIsPinned(); got != PinLeft {
		t.Fatalf("expected PinLeft after Pin, got %v", got)
	}
	age.Unpin()
	if got := age.GetIsPinned(); got != PinNone {
		t.Fatalf("expected unpinned after Unpin, got %v", got)
	}
}

func TestColumnToggleVisibilityHidesAndShows(t *testing.T) {
	tbl := flatTable(t)
	age := tbl.GetColumn("age")
	age.ToggleVisibility()
	if cols := tbl.VisibleLeafColumns(); len(cols) != 1 || cols[0].Def.ID != "name" {
		t.Fatalf("expected 'age' hidden after first toggle, got %v", cols)
	}
	age.ToggleVisibility()
	if cols := tbl.VisibleLeafColumns(); len(cols) != 2 {
		t.Fatalf("expected 'age' visible again after second toggle, got %v", cols)
	}
}

func TestControlledSortingForwardsUpdaterAndSyncsBack(t *testing.T) {
	var forwarded Updater[[]SortKey]
	received := false
	tbl := New(Options{
		Store: flatStore(t),
		ColumnDefs: []ColumnDef{
			{ID: "name", StoreCol: 0},
			{ID: "age", StoreCol: 1, EnableSorting: true},
		},
		Callbacks: Callbacks{
			OnSortingChange: func(u Updater[[]SortKey]) {
				forwarded = u
				received = true
			},
		},
	})
	tbl.ToggleColumnSorting("age", nil)
	if !received {
		t.Fatal("expected controlled callback to fire")
	}
	if got := forwarded.Apply(nil); len(got) != 1 || got[0].ID != "age" {
		t.Errorf("forwarded updater resolved to %+v", got)
	}
}
