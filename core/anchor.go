package core

// marginRatio is the edge margin as a fraction of each image dimension,
// applied independently per axis.
const marginRatio = 0.05

// Resolve maps an anchor keyword plus image and text dimensions to the
// top-left pixel coordinate at which to draw the text. Coordinates may be
// fractional; rounding is deferred to the draw step.
//
// Unknown anchors resolve to bottom-right; strict validation of user input
// happens earlier, at the CLI boundary via ParseAnchor.
func Resolve(imageW, imageH int, text TextSize, anchor Anchor) Position {
	var (
		w, h    = float64(imageW), float64(imageH)
		tw, th  = text.Width, text.Height
		marginX = marginRatio * w
		marginY = marginRatio * h
	)

	switch anchor {
	case AnchorTopLeft:
		return Position{X: marginX, Y: marginY}
	case AnchorTopCenter:
		return Position{X: w/2 - tw/2, Y: marginY}
	case AnchorTopRight:
		return Position{X: w - tw - marginX, Y: marginY}
	case AnchorMiddleLeft:
		return Position{X: marginX, Y: h/2 - th/2}
	case AnchorCenter:
		return Position{X: w/2 - tw/2, Y: h/2 - th/2}
	case AnchorMiddleRight:
		return Position{X: w - tw - marginX, Y: h/2 - th/2}
	case AnchorBottomLeft:
		return Position{X: marginX, Y: h - th - marginY}
	case AnchorBottomCenter:
		return Position{X: w/2 - tw/2, Y: h - th - marginY}
	default: // AnchorBottomRight and anything unrecognized
		return Position{X: w - tw - marginX, Y: h - th - marginY}
	}
}
