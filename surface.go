package yuletide

// Surface is the drawing target an engine renders into. Coordinates are in
// pixels with the origin at the top-left. Every call carries its own blend
// mode; BlendAdd is the "lighter" compositing the particle layers rely on.
//
// Implementations may batch. Callers that need the pixels to be final (the
// scheduler, screenshots) call Flush when the surface implements Flusher.
type Surface interface {
	// Size returns the drawable area in pixels.
	Size() (w, h int)
	// Clear resets every pixel to transparent.
	Clear()

	FillCircle(cx, cy, r float64, c Color, blend BlendMode)
	FillEllipse(cx, cy, rx, ry float64, c Color, blend BlendMode)
	FillRect(x, y, w, h float64, c Color, blend BlendMode)
	// FillPolygon fills a polygon that is star-shaped with respect to its
	// vertex centroid (convex shapes, roofs, star glyphs).
	FillPolygon(pts []Vec2, c Color, blend BlendMode)
	StrokePolyline(pts []Vec2, width float64, c Color, blend BlendMode)
	// GradientLine strokes a segment whose color runs from one end to the other.
	GradientLine(x0, y0, x1, y1, width float64, from, to Color, blend BlendMode)
	// Glow paints a radial falloff from c at the center to transparent at
	// the (rx, ry) ellipse rim. It stands in for canvas shadow blur and
	// radial gradients.
	Glow(cx, cy, rx, ry float64, c Color, blend BlendMode)
}

// Flusher is implemented by surfaces that buffer geometry.
type Flusher interface {
	Flush()
}

// flush submits pending geometry when dst buffers it.
func flush(dst Surface) {
	if f, ok := dst.(Flusher); ok {
		f.Flush()
	}
}

// circleSegments picks a tessellation density for a circle of radius r.
func circleSegments(r float64) int {
	n := int(r*0.8) + 8
	if n > 64 {
		n = 64
	}
	return n
}
