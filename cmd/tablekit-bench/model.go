package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	humanize "github.com/dustin/go-humanize"

	"github.com/mobanhawi/tablekit/filterengine"
	"github.com/mobanhawi/tablekit/layout"
	"github.com/mobanhawi/tablekit/sortengine"
	"github.com/mobanhawi/tablekit/store"
	"github.com/mobanhawi/tablekit/view"
)

// appState mirrors aster's AppState split between a scan-in-progress
// screen and the interactive result (ui.AppState in internal/ui/model.go).
type appState int

const (
	stateBuilding appState = iota
	stateRunning
)

var namePool = []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}

// buildDoneMsg is sent once synthetic ingestion completes.
type buildDoneMsg struct {
	store *store.Store
	err   error
}

// tickMsg drives one benchmark frame.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// frameStats holds the last frame's measured costs.
type frameStats struct {
	viewDur, layoutDur time.Duration
	rowsVisible        int
	cellCount          int
	frame              int
}

type model struct {
	rows, cols int

	state appState
	sp    spinner.Model
	err   error

	src      *store.Store
	pipeline *view.Pipeline
	engine   *layout.Engine

	width, height int
	stats         frameStats
	sortDesc      bool
	filterOn      bool
}

func newModel(rows, cols int) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return model{
		rows:  rows,
		cols:  cols,
		state: stateBuilding,
		sp:    sp,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.sp.Tick, buildStore(m.rows, m.cols))
}

// buildStore ingests a synthetic dataset: column 0 is a dictionary-encoded
// string drawn from namePool, the rest are uniformly random floats.
func buildStore(rows, cols int) tea.Cmd {
	return func() tea.Msg {
		s := store.New()
		s.Init(cols, rows)

		ids := make([]uint32, rows)
		for i := range ids {
			ids[i] = uint32(rand.Intn(len(namePool)))
		}
		if err := s.IngestStr(0, namePool, ids); err != nil {
			return buildDoneMsg{err: err}
		}
		for c := 1; c < cols; c++ {
			vals := make([]float64, rows)
			for i := range vals {
				vals[i] = rand.Float64() * 1000
			}
			if err := s.IngestF64(c, vals); err != nil {
				return buildDoneMsg{err: err}
			}
		}
		if err := s.Finalize(); err != nil {
			return buildDoneMsg{err: err}
		}
		return buildDoneMsg{store: s}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd

	case buildDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.src = msg.store
		m.pipeline = view.New(m.src)
		m.engine = layout.NewEngine()
		m.state = stateRunning
		return m, tick()

	case tickMsg:
		m.runFrame()
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s":
			m.sortDesc = !m.sortDesc
		case "f":
			m.filterOn = !m.filterOn
		}
	}
	return m, nil
}

// runFrame exercises setSort/setFilter/computeView/computeLayout once and
// records their cost, mirroring the control-flow order documented for one
// host frame.
func (m *model) runFrame() {
	m.pipeline.SetSort(sortengine.Spec{{Col: 1, Desc: m.sortDesc}})
	if m.filterOn {
		m.pipeline.SetFilter(filterSpecHalf())
	} else {
		m.pipeline.SetFilter(noFilter())
	}

	t0 := time.Now()
	indices, err := m.pipeline.ComputeView()
	viewDur := time.Since(t0)
	if err != nil {
		m.err = err
		return
	}

	cols := make([]layout.Column, m.cols)
	for i := range cols {
		cols[i] = layout.Column{ID: fmt.Sprintf("c%d", i), Width: 120}
	}
	vp := layout.Viewport{Width: 800, Height: float64(m.height - 6), RowHeight: 1, HeaderHeight: 1, Overscan: 5}

	t1 := time.Now()
	res := m.engine.Compute(cols, indices, vp, layout.Pinning{})
	layoutDur := time.Since(t1)

	m.stats = frameStats{
		viewDur:     viewDur,
		layoutDur:   layoutDur,
		rowsVisible: len(indices),
		cellCount:   res.CellCount,
		frame:       m.stats.frame + 1,
	}
}

func noFilter() filterengine.Spec { return filterengine.Spec{} }

func filterSpecHalf() filterengine.Spec {
	return filterengine.Spec{Columns: []filterengine.ColumnPredicate{
		{Col: 1, Kind: filterengine.KindNumRange, Min: 0, Max: 500},
	}}
}

func (m model) View() string {
	if m.err != nil {
		return styleErr.Render(fmt.Sprintf("error: %v\n", m.err))
	}
	if m.state == stateBuilding {
		return fmt.Sprintf("%s building synthetic store (%s rows)...\n", m.sp.View(), humanize.Comma(int64(m.rows)))
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render(fmt.Sprintf(" tablekit-bench — %s rows × %d cols ", humanize.Comma(int64(m.rows)), m.cols)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "frame:        %d\n", m.stats.frame)
	fmt.Fprintf(&b, "visible rows: %s\n", humanize.Comma(int64(m.stats.rowsVisible)))
	fmt.Fprintf(&b, "cell count:   %s\n", humanize.Comma(int64(m.stats.cellCount)))
	fmt.Fprintf(&b, "computeView:  %s\n", m.stats.viewDur)
	fmt.Fprintf(&b, "computeLayout:%s\n", m.stats.layoutDur)
	fmt.Fprintf(&b, "\nsort: %s   filter: %v\n", sortLabel(m.sortDesc), m.filterOn)
	b.WriteString(styleDim.Render("\n[s] toggle sort  [f] toggle filter  [q] quit\n"))
	return b.String()
}

func sortLabel(desc bool) string {
	if desc {
		return "c1 desc"
	}
	return "c1 asc"
}
