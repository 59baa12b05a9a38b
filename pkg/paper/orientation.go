package paper

// Orientation names a corner of a cell. Half-cells use it to record which
// corner is the hinge of the triangle left by a diagonal fold.
type Orientation int

const (
	TopLeft Orientation = iota
	TopRight
	BottomLeft
	BottomRight
)

// Orientations lists the four corners in slot order.
var Orientations = [...]Orientation{TopLeft, TopRight, BottomLeft, BottomRight}

func (o Orientation) String() string {
	switch o {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	}
	return "unknown"
}

// FlipHorizontal swaps top and bottom, as a horizontal fold does.
func (o Orientation) FlipHorizontal() Orientation {
	switch o {
	case TopLeft:
		return BottomLeft
	case TopRight:
		return BottomRight
	case BottomLeft:
		return TopLeft
	default:
		return TopRight
	}
}

// FlipVertical swaps left and right, as a vertical fold does.
func (o Orientation) FlipVertical() Orientation {
	switch o {
	case TopLeft:
		return TopRight
	case TopRight:
		return TopLeft
	case BottomLeft:
		return BottomRight
	default:
		return BottomLeft
	}
}

// Mirror returns the corner that o lands on when a cell is reflected across f.
// A diagonal with negative slope runs from top-right to bottom-left (y grows
// downward) and exchanges top-left and bottom-right; a positive slope
// exchanges top-right and bottom-left.
func (o Orientation) Mirror(f Fold) Orientation {
	switch f.Kind {
	case Horizontal:
		return o.FlipHorizontal()
	case Vertical:
		return o.FlipVertical()
	}
	if f.Slope < 0 {
		switch o {
		case TopLeft:
			return BottomRight
		case BottomRight:
			return TopLeft
		}
		return o
	}
	switch o {
	case TopRight:
		return BottomLeft
	case BottomLeft:
		return TopRight
	}
	return o
}

// hingeFor picks the corner that stays put when f bisects a cell.
func hingeFor(f Fold) Orientation {
	if f.Slope < 0 {
		if f.Side == Left {
			return TopLeft
		}
		return BottomRight
	}
	if f.Side == Left {
		return BottomLeft
	}
	return TopRight
}
