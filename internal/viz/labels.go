package viz

import (
	"math"

	"github.com/OJPARKINSON/squitter1090/internal/adsb"
)

// labelLayout nudges aircraft labels apart each frame with a small
// force simulation: labels repel each other, stay clear of the screen
// edge, and are pulled back toward their aircraft. Forces accumulate
// in the aircraft's LabelDX/LabelDY scratch fields and are applied
// with damping, so positions converge over a few frames instead of
// snapping.
type labelLayout struct {
	width   int
	height  int
	uiScale int
}

const (
	layoutPasses    = 4
	labelDamping    = 0.85
	labelMaxStepPx  = 2.0
	edgeMarginScale = 15
)

func newLabelLayout(width, height, uiScale int) *labelLayout {
	return &labelLayout{width: width, height: height, uiScale: uiScale}
}

func (ll *labelLayout) settle(aircraft map[uint32]*adsb.Aircraft) {
	for pass := 0; pass < layoutPasses; pass++ {
		ll.step(aircraft)
	}
}

func (ll *labelLayout) step(aircraft map[uint32]*adsb.Aircraft) {
	for _, a := range aircraft {
		a.LabelDX = 0
		a.LabelDY = 0
	}

	for _, a := range aircraft {
		if a.LabelW == 0 || a.LabelH == 0 {
			continue
		}
		ll.pushFromEdges(a)
		ll.pullToAircraft(a)
		for _, other := range aircraft {
			if other == a || other.LabelW == 0 || other.LabelH == 0 {
				continue
			}
			ll.pushApart(a, other)
		}
	}

	for _, a := range aircraft {
		if a.LabelW == 0 || a.LabelH == 0 {
			continue
		}
		a.LabelDX = clamp(a.LabelDX*labelDamping, labelMaxStepPx)
		a.LabelDY = clamp(a.LabelDY*labelDamping, labelMaxStepPx)
		a.LabelX += a.LabelDX
		a.LabelY += a.LabelDY
	}
}

func (ll *labelLayout) pushFromEdges(a *adsb.Aircraft) {
	margin := float64(edgeMarginScale * ll.uiScale)
	if a.LabelX < margin {
		a.LabelDX += 0.01 * (margin - a.LabelX)
	}
	if right := a.LabelX + a.LabelW; right > float64(ll.width)-margin {
		a.LabelDX -= 0.01 * (right - (float64(ll.width) - margin))
	}
	if a.LabelY < margin {
		a.LabelDY += 0.01 * (margin - a.LabelY)
	}
	if bottom := a.LabelY + a.LabelH; bottom > float64(ll.height)-margin {
		a.LabelDY -= 0.01 * (bottom - (float64(ll.height) - margin))
	}
}

func (ll *labelLayout) pullToAircraft(a *adsb.Aircraft) {
	dx := a.LabelX + a.LabelW/2 - float64(a.X)
	dy := a.LabelY + a.LabelH/2 - float64(a.Y)
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}

	want := 40.0 * float64(ll.uiScale)
	force := 0.0015 * (dist - want)
	a.LabelDX -= force * dx / dist
	a.LabelDY -= force * dy / dist
}

func (ll *labelLayout) pushApart(a, b *adsb.Aircraft) {
	dx := (a.LabelX + a.LabelW/2) - (b.LabelX + b.LabelW/2)
	dy := (a.LabelY + a.LabelH/2) - (b.LabelY + b.LabelH/2)
	dist := math.Hypot(dx, dy)
	if dist < 0.001 {
		return
	}

	want := (a.LabelW + b.LabelW + a.LabelH + b.LabelH) / 4
	if dist >= want {
		return
	}
	force := 0.001 * (want - dist)
	a.LabelDX += force * dx / dist
	a.LabelDY += force * dy / dist
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
