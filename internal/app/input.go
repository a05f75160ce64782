package app

import (
	"fmt"
	"math"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/OJPARKINSON/squitter1090/internal/adsb"
)

// camera is the scope's view state: a center point and a vertical
// half-extent in nautical miles. Its projection mirrors the
// renderer's, so hit-testing and panning agree with what's drawn.
type camera struct {
	lat      float64
	lon      float64
	radiusNM float64
}

func (c *camera) zoom(factor float64) {
	c.radiusNM *= factor
}

// pan shifts the center by a pixel delta at the current zoom.
func (c *camera) pan(dxPx, dyPx, heightPx int) {
	nmPerPx := c.radiusNM / float64(heightPx/2)
	c.lat += float64(dyPx) * nmPerPx / 60
	c.lon -= float64(dxPx) * nmPerPx / (60 * math.Cos(c.lat*math.Pi/180))
}

// toGeo converts a window position to latitude/longitude.
func (c *camera) toGeo(x, y, widthPx, heightPx int) (float64, float64) {
	nmPerPx := c.radiusNM / float64(heightPx/2)
	dy := float64(y - heightPx/2)
	dx := float64(x - widthPx/2)

	lat := c.lat - dy*nmPerPx/60
	lon := c.lon + dx*nmPerPx/(60*math.Cos(c.lat*math.Pi/180))
	return lat, lon
}

// toScreen converts latitude/longitude to a window position.
func (c *camera) toScreen(lat, lon float64, widthPx, heightPx int) (int, int) {
	pxPerNM := float64(heightPx/2) / c.radiusNM
	dx := (lon - c.lon) * 60 * math.Cos(c.lat*math.Pi/180) * pxPerNM
	dy := -(lat - c.lat) * 60 * pxPerNM
	return widthPx/2 + int(dx), heightPx/2 + int(dy)
}

// pollInput drains the SDL event queue. It returns false when the user
// asked to quit.
func (a *App) pollInput() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return false

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && !a.handleKey(e.Keysym.Sym) {
				return false
			}

		case *sdl.MouseWheelEvent:
			if e.Y > 0 {
				a.cam.zoom(0.8)
			} else if e.Y < 0 {
				a.cam.zoom(1.25)
			}

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN && e.Button == sdl.BUTTON_LEFT {
				a.handleClick(int(e.X), int(e.Y), int(e.Clicks))
			}

		case *sdl.MouseMotionEvent:
			if e.State != 0 {
				a.mu.Lock()
				a.cam.pan(int(e.XRel), int(e.YRel), a.scope.Height())
				a.mu.Unlock()
			}
		}
	}
	return true
}

func (a *App) handleKey(key sdl.Keycode) bool {
	switch key {
	case sdl.K_ESCAPE:
		return false
	case sdl.K_EQUALS, sdl.K_PLUS:
		a.cam.zoom(0.8)
	case sdl.K_MINUS:
		a.cam.zoom(1.25)
	}
	return true
}

func (a *App) handleClick(x, y, clicks int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if clicks == 2 {
		a.cam.lat, a.cam.lon = a.cam.toGeo(x, y, a.scope.Width(), a.scope.Height())
		a.cam.zoom(0.5)
		return
	}
	a.selectAt(x, y)
}

// maxPickDistPx is the selection radius around a click, squared.
const maxPickDistPx = 400.0 // 20px

// selectAt picks the aircraft nearest the click, or clears the
// selection when nothing is close enough.
func (a *App) selectAt(x, y int) {
	a.selected = 0
	best := maxPickDistPx

	a.aircraft.ForEach(func(icao uint32, plane *adsb.Aircraft) {
		if plane.Lat == 0 && plane.Lon == 0 {
			return
		}

		px, py := a.cam.toScreen(plane.Lat, plane.Lon, a.scope.Width(), a.scope.Height())
		dx := float64(px - x)
		dy := float64(py - y)
		if d := dx*dx + dy*dy; d < best {
			best = d
			a.selected = icao
		}
	})

	if a.selected != 0 {
		a.log.WithField("icao", fmt.Sprintf("%06X", a.selected)).Debug("selected aircraft")
	}
}
