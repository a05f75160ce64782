package viz

import (
	"fmt"
	"math"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/OJPARKINSON/squitter1090/internal/adsb"
	"github.com/OJPARKINSON/squitter1090/internal/map_system"
)

// viewport is the equirectangular projection of the current frame: a
// center point and a vertical half-extent in nautical miles mapped
// onto the window.
type viewport struct {
	width     int
	height    int
	centerLat float64
	centerLon float64
	radiusNM  float64
}

// screen projects a geographic point to window pixels.
func (v viewport) screen(lat, lon float64) (int, int) {
	lonFactor := math.Cos(((lat + v.centerLat) / 2) * math.Pi / 180)
	dxNM := (lon - v.centerLon) * 60 * lonFactor
	dyNM := (lat - v.centerLat) * 60

	pxPerNM := float64(v.height) / (v.radiusNM * 2)
	return v.width/2 + int(dxNM*pxPerNM), v.height/2 - int(dyNM*pxPerNM)
}

// bounds returns the geographic box the viewport covers.
func (v viewport) bounds() map_system.Bounds {
	latPerPx := (v.radiusNM * 2) / float64(v.height) / 60
	lonPerPx := latPerPx / math.Cos(v.centerLat*math.Pi/180)

	halfW := float64(v.width) / 2
	halfH := float64(v.height) / 2
	return map_system.Bounds{
		LatMin: v.centerLat - halfH*latPerPx,
		LatMax: v.centerLat + halfH*latPerPx,
		LonMin: v.centerLon - halfW*lonPerPx,
		LonMax: v.centerLon + halfW*lonPerPx,
	}
}

func (v viewport) offscreen(x, y int) bool {
	return x < 0 || x >= v.width || y < 0 || y >= v.height
}

// RenderFrame draws one complete scope frame: basemap, trails,
// aircraft symbols and labels, then HUD chrome.
func (r *Renderer) RenderFrame(aircraft map[uint32]*adsb.Aircraft, centerLat, centerLon, maxDistance float64, selectedICAO uint32) {
	view := viewport{
		width: r.width, height: r.height,
		centerLat: centerLat, centerLon: centerLon,
		radiusNM: maxDistance,
	}

	r.setColor(palette.background)
	r.sdl.Clear()

	r.projectAircraft(aircraft, view)
	r.layout.settle(aircraft)

	if !r.basemapDrawn || time.Since(r.basemapFresh) > basemapMaxAge {
		r.redrawBasemap(view)
	}
	r.sdl.Copy(r.basemap, nil, nil)

	r.drawTrails(aircraft, view)

	visible := 0
	for icao, a := range aircraft {
		if a.Lat == 0 && a.Lon == 0 {
			continue
		}
		visible++
		r.drawAircraft(a, icao == selectedICAO)
	}

	r.drawScaleBar(maxDistance)
	r.drawStatus(len(aircraft), visible, centerLat, centerLon)

	r.sdl.Present()
}

// projectAircraft computes window coordinates for every positioned
// aircraft and seeds label anchors for new arrivals.
func (r *Renderer) projectAircraft(aircraft map[uint32]*adsb.Aircraft, view viewport) {
	for _, a := range aircraft {
		if a.Lat == 0 && a.Lon == 0 {
			continue
		}
		a.X, a.Y = view.screen(a.Lat, a.Lon)

		if a.LabelX == 0 && a.LabelY == 0 {
			a.LabelX = float64(a.X)
			a.LabelY = float64(a.Y) + 20*float64(r.uiScale)
		}
	}
}

// redrawBasemap renders coastline, airport geometry, and map labels
// into the cached basemap texture.
func (r *Renderer) redrawBasemap(view viewport) {
	prev := r.sdl.GetRenderTarget()
	r.sdl.SetRenderTarget(r.basemap)
	defer r.sdl.SetRenderTarget(prev)

	r.setColor(palette.background)
	r.sdl.Clear()

	box := view.bounds()
	coast, airports := r.world.VisibleLines(box)

	if len(coast) == 0 && len(airports) == 0 {
		r.drawFallbackGrid()
	} else {
		r.setColor(palette.landmass)
		r.strokeLines(coast, view)
		r.setColor(palette.airport)
		r.strokeLines(airports, view)
	}

	places, airportNames := r.world.VisibleLabels(box)
	for _, l := range places {
		x, y := view.screen(l.At.Lat, l.At.Lon)
		if !view.offscreen(x, y) {
			r.text(l.Text, x, y, r.font, palette.chrome)
		}
	}
	for _, l := range airportNames {
		x, y := view.screen(l.At.Lat, l.At.Lon)
		if !view.offscreen(x, y) {
			r.text(l.Text, x, y, r.boldFont, palette.chrome)
		}
	}

	r.basemapDrawn = true
	r.basemapFresh = time.Now()
}

func (r *Renderer) strokeLines(lines []*map_system.Line, view viewport) {
	for _, l := range lines {
		x1, y1 := view.screen(l.A.Lat, l.A.Lon)
		x2, y2 := view.screen(l.B.Lat, l.B.Lon)
		if view.offscreen(x1, y1) && view.offscreen(x2, y2) {
			continue
		}
		r.sdl.DrawLine(int32(x1), int32(y1), int32(x2), int32(y2))
	}
}

func (r *Renderer) drawFallbackGrid() {
	r.setColor(palette.landmass)
	for x := 0; x < r.width; x += 50 {
		r.sdl.DrawLine(int32(x), 0, int32(x), int32(r.height))
	}
	for y := 0; y < r.height; y += 50 {
		r.sdl.DrawLine(0, int32(y), int32(r.width), int32(y))
	}
}

// drawTrails strokes each aircraft's position history, fading older
// segments out.
func (r *Renderer) drawTrails(aircraft map[uint32]*adsb.Aircraft, view viewport) {
	for _, a := range aircraft {
		for i := 0; i+1 < len(a.Trail); i++ {
			age := 1 - float64(i)/float64(len(a.Trail))
			r.sdl.SetDrawColor(palette.trail.R, palette.trail.G, palette.trail.B, uint8(128*age))

			x1, y1 := view.screen(a.Trail[i].Lat, a.Trail[i].Lon)
			x2, y2 := view.screen(a.Trail[i+1].Lat, a.Trail[i+1].Lon)
			r.sdl.DrawLine(int32(x1), int32(y1), int32(x2), int32(y2))
		}
	}
}

// fadeStartSec is how long after last contact an aircraft's symbol
// starts greying out; fadeSpanSec is how long the fade takes.
const (
	fadeStartSec = 15.0
	fadeSpanSec  = 15.0
)

func (r *Renderer) drawAircraft(a *adsb.Aircraft, selected bool) {
	color := palette.aircraft
	if selected {
		color = palette.selected
	} else if quiet := time.Since(a.Seen).Seconds(); quiet > fadeStartSec {
		t := math.Min(1, (quiet-fadeStartSec)/fadeSpanSec)
		color = mixColor(palette.aircraft, palette.aircraftFaded, t)
	}

	r.drawSymbol(a.X, a.Y, a.Heading, color)
	r.drawLabel(a, color)
}

// drawSymbol strokes the plane glyph (body, wings, tailplane) rotated
// to the track angle.
func (r *Renderer) drawSymbol(x, y, headingDeg int, color sdl.Color) {
	theta := float64(headingDeg) * math.Pi / 180
	fwdX, fwdY := math.Sin(theta), -math.Cos(theta)
	sideX, sideY := -fwdY, fwdX

	scale := float64(r.uiScale)
	nose := 8 * scale
	tail := 6 * scale
	wing := 6 * scale
	fin := 3 * scale

	at := func(fwd, side float64) (int32, int32) {
		return int32(float64(x) + fwdX*fwd + sideX*side),
			int32(float64(y) + fwdY*fwd + sideY*side)
	}

	cx, cy := int32(x), int32(y)
	noseX, noseY := at(nose, 0)
	tailX, tailY := at(-tail, 0)

	r.setColor(color)
	r.sdl.DrawLine(cx, cy, noseX, noseY)
	r.sdl.DrawLine(cx, cy, tailX, tailY)

	lwX, lwY := at(0, wing)
	rwX, rwY := at(0, -wing)
	r.sdl.DrawLine(cx, cy, lwX, lwY)
	r.sdl.DrawLine(cx, cy, rwX, rwY)

	lfX, lfY := at(-tail, fin)
	rfX, rfY := at(-tail, -fin)
	r.sdl.DrawLine(tailX, tailY, lfX, lfY)
	r.sdl.DrawLine(tailX, tailY, rfX, rfY)
}

func (r *Renderer) drawLabel(a *adsb.Aircraft, color sdl.Color) {
	if a.LabelW == 0 || a.LabelH == 0 {
		a.LabelW = 100
		a.LabelH = 45
		a.LabelOpacity = 0
	}

	if a.LabelOpacity < 1 {
		a.LabelOpacity += 0.05
	}
	if a.LabelOpacity < 0.05 {
		return
	}
	alpha := uint8(255 * a.LabelOpacity)

	bg := palette.labelBg
	bg.A = alpha
	r.fillRect(a.LabelX, a.LabelY, a.LabelW, a.LabelH, bg)

	frame := palette.labelLine
	frame.A = alpha
	r.strokeRect(a.LabelX, a.LabelY, a.LabelW, a.LabelH, frame)

	textX := int(a.LabelX) + 5
	textY := int(a.LabelY) + 5

	name := a.Flight
	if name == "" {
		name = fmt.Sprintf("%06X", a.ICAO)
	}
	headline := palette.label
	headline.A = alpha
	r.text(name, textX, textY, r.boldFont, headline)
	textY += 14

	sub := palette.subLabel
	sub.A = alpha
	r.text(" "+r.formatAltitude(a.Altitude), textX, textY, r.font, sub)
	textY += 14
	r.text(" "+r.formatSpeed(a.Speed), textX, textY, r.font, sub)

	// leader line from the symbol to the nearer label edge
	anchorX := int32(a.LabelX)
	if a.LabelX+a.LabelW/2 <= float64(a.X) {
		anchorX = int32(a.LabelX + a.LabelW)
	}
	r.setColor(color)
	r.sdl.DrawLine(int32(a.X), int32(a.Y), anchorX, int32(a.LabelY+a.LabelH/2))
}

func (r *Renderer) formatAltitude(feet int) string {
	if r.metric {
		return fmt.Sprintf("%dm", int(float64(feet)/3.2808))
	}
	return fmt.Sprintf("%d'", feet)
}

func (r *Renderer) formatSpeed(knots int) string {
	if r.metric {
		return fmt.Sprintf("%dkm/h", int(float64(knots)*1.852))
	}
	return fmt.Sprintf("%dkts", knots)
}

func (r *Renderer) fillRect(x, y, w, h float64, color sdl.Color) {
	r.setColor(color)
	r.sdl.FillRect(&sdl.Rect{X: int32(x), Y: int32(y), W: int32(w), H: int32(h)})
}

func (r *Renderer) strokeRect(x, y, w, h float64, color sdl.Color) {
	r.setColor(color)
	r.sdl.DrawRect(&sdl.Rect{X: int32(x), Y: int32(y), W: int32(w), H: int32(h)})
}

func mixColor(a, b sdl.Color, t float64) sdl.Color {
	t = math.Max(0, math.Min(1, t))
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + t*(float64(y)-float64(x)))
	}
	return sdl.Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}
