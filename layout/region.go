package layout

// Rect is a clip rectangle in viewport coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Region is one of up to three horizontal viewport partitions: an
// optional left/right pinned strip that never scrolls horizontally, and a
// center strip that does.
type Region struct {
	Clip       Rect
	TranslateX float64
}

// Regions holds the 1-3 regions produced for a frame. Left/Right are nil
// when their respective pinned column count is zero.
type Regions struct {
	Left   *Region
	Center Region
	Right  *Region
}

// ComputeRegions partitions a viewport of the given width/height into
// left/center/right regions. leftWidth/rightWidth are the summed widths
// of the pinned columns on each side; totalContentWidth is the sum of all
// visible column widths.
func ComputeRegions(viewportWidth, height, leftWidth, rightWidth, totalContentWidth, scrollLeft float64) Regions {
	var r Regions
	if leftWidth > 0 {
		r.Left = &Region{
			Clip:       Rect{X: 0, Y: 0, Width: leftWidth, Height: height},
			TranslateX: 0,
		}
	}
	centerWidth := viewportWidth - leftWidth - rightWidth
	r.Center = Region{
		Clip:       Rect{X: leftWidth, Y: 0, Width: centerWidth, Height: height},
		TranslateX: -scrollLeft,
	}
	if rightWidth > 0 {
		r.Right = &Region{
			Clip:       Rect{X: viewportWidth - rightWidth, Y: 0, Width: rightWidth, Height: height},
			TranslateX: viewportWidth - totalContentWidth,
		}
	}
	return r
}
