// Package camera maps demo world coordinates onto a screen viewport.
package camera

import (
	"math"

	"github.com/pthm-cable/menagerie/geom"
)

// Camera controls the viewport into a demo world.
// Supports pan and zoom, with toroidal wrapping for worlds whose edges meet.
type Camera struct {
	// Center is the camera position in world coordinates
	Center geom.Vec

	// Zoom is screen pixels per world unit
	Zoom float64

	// Viewport rectangle on screen
	OriginX, OriginY     float64
	ViewportW, ViewportH float64

	WorldW, WorldH float64
	Wrap           bool

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera showing the whole world, letterboxed into the viewport.
func New(originX, originY, viewportW, viewportH, worldW, worldH float64, wrap bool) *Camera {
	c := &Camera{
		OriginX:   originX,
		OriginY:   originY,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		Wrap:      wrap,
	}
	c.fit()
	c.Reset()
	return c
}

// fit recomputes zoom limits so the whole world fits at MinZoom.
func (c *Camera) fit() {
	c.MinZoom = math.Min(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
	c.MaxZoom = c.MinZoom * 8
}

// WorldToScreen converts world coordinates to screen coordinates.
// For toroidal worlds, this finds the shortest path to the viewport center.
func (c *Camera) WorldToScreen(p geom.Vec) geom.Vec {
	dx := p.X - c.Center.X
	dy := p.Y - c.Center.Y
	if c.Wrap {
		dx = toroidalDelta(p.X, c.Center.X, c.WorldW)
		dy = toroidalDelta(p.Y, c.Center.Y, c.WorldH)
	}
	return geom.Vec{
		X: c.OriginX + c.ViewportW/2 + dx*c.Zoom,
		Y: c.OriginY + c.ViewportH/2 + dy*c.Zoom,
	}
}

// ScreenToWorld converts screen coordinates to world coordinates. The flag is
// false when the point lies outside the viewport or, for bounded worlds,
// outside the world.
func (c *Camera) ScreenToWorld(s geom.Vec) (geom.Vec, bool) {
	if !c.InViewport(s) {
		return geom.Vec{}, false
	}
	w := geom.Vec{
		X: c.Center.X + (s.X-c.OriginX-c.ViewportW/2)/c.Zoom,
		Y: c.Center.Y + (s.Y-c.OriginY-c.ViewportH/2)/c.Zoom,
	}
	if c.Wrap {
		return geom.Vec{X: geom.Wrap(w.X, c.WorldW), Y: geom.Wrap(w.Y, c.WorldH)}, true
	}
	ok := w.X >= 0 && w.X < c.WorldW && w.Y >= 0 && w.Y < c.WorldH
	return w, ok
}

// InViewport reports whether a screen point lies inside the viewport rectangle.
func (c *Camera) InViewport(s geom.Vec) bool {
	return s.X >= c.OriginX && s.X < c.OriginX+c.ViewportW &&
		s.Y >= c.OriginY && s.Y < c.OriginY+c.ViewportH
}

// IsVisible returns true if a circle at p with the given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(p geom.Vec, radius float64) bool {
	s := c.WorldToScreen(p)
	r := radius * c.Zoom
	return s.X+r >= c.OriginX && s.X-r <= c.OriginX+c.ViewportW &&
		s.Y+r >= c.OriginY && s.Y-r <= c.OriginY+c.ViewportH
}

// GhostPositions returns extra screen positions for a circle straddling a
// world edge, so it appears on both sides. Bounded worlds have none.
func (c *Camera) GhostPositions(p geom.Vec, radius float64) []geom.Vec {
	if !c.Wrap {
		return nil
	}

	primary := c.WorldToScreen(p)
	r := radius * c.Zoom
	spanX := c.WorldW * c.Zoom
	spanY := c.WorldH * c.Zoom

	var xs, ys []float64
	switch {
	case primary.X+r > c.OriginX+c.ViewportW/2+spanX/2:
		xs = append(xs, primary.X-spanX)
	case primary.X-r < c.OriginX+c.ViewportW/2-spanX/2:
		xs = append(xs, primary.X+spanX)
	}
	switch {
	case primary.Y+r > c.OriginY+c.ViewportH/2+spanY/2:
		ys = append(ys, primary.Y-spanY)
	case primary.Y-r < c.OriginY+c.ViewportH/2-spanY/2:
		ys = append(ys, primary.Y+spanY)
	}

	var ghosts []geom.Vec
	for _, x := range xs {
		ghosts = append(ghosts, geom.Vec{X: x, Y: primary.Y})
	}
	for _, y := range ys {
		ghosts = append(ghosts, geom.Vec{X: primary.X, Y: y})
	}
	for _, x := range xs {
		for _, y := range ys {
			ghosts = append(ghosts, geom.Vec{X: x, Y: y})
		}
	}
	return ghosts
}

// Resize updates the viewport and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit()
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.Center.X += dx / c.Zoom
	c.Center.Y += dy / c.Zoom
	if c.Wrap {
		c.Center.X = geom.Wrap(c.Center.X, c.WorldW)
		c.Center.Y = geom.Wrap(c.Center.Y, c.WorldH)
		return
	}
	c.Center.X = geom.Clamp(c.Center.X, 0, c.WorldW)
	c.Center.Y = geom.Clamp(c.Center.Y, 0, c.WorldH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = geom.Clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the world and zooms out to show all of it.
func (c *Camera) Reset() {
	c.Center = geom.Vec{X: c.WorldW / 2, Y: c.WorldH / 2}
	c.Zoom = c.MinZoom
}

// toroidalDelta computes the shortest signed distance from 'from' to 'to'
// in a toroidal space of the given size.
func toroidalDelta(to, from, size float64) float64 {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}
