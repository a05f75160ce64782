package viz

import (
	"fmt"
	"math"

	"github.com/veandco/go-sdl2/sdl"
)

// drawScaleBar draws a distance ruler in the top-left corner, sized to
// the smallest power-of-ten distance longer than 100px on screen.
func (r *Renderer) drawScaleBar(radiusNM float64) {
	power := 0
	barPx := 0
	for {
		px := float64(r.height/2) * (math.Pow10(power) / radiusNM)
		if px > 100 {
			barPx = int(px)
			break
		}
		power++
	}

	r.setColor(palette.chrome)
	r.sdl.DrawLine(10, 10, int32(10+barPx), 10)
	r.sdl.DrawLine(10, 10, 10, 20)
	r.sdl.DrawLine(int32(10+barPx), 10, int32(10+barPx), 15)

	unit := "nm"
	if r.metric {
		unit = "km"
	}
	r.text(fmt.Sprintf("%d%s", int(math.Pow10(power)), unit), 15+barPx, 15, r.font, palette.chrome)
}

// drawStatus draws the bottom-of-screen HUD boxes: center location
// (unless suppressed) and visible/total aircraft counts.
func (r *Renderer) drawStatus(total, visible int, centerLat, centerLon float64) {
	x := hudPad
	y := r.height - 30*r.uiScale

	if !r.disableLatLong {
		ew := byte('E')
		if centerLon < 0 {
			ew = 'W'
		}
		loc := fmt.Sprintf("%.4fN %.4f%c", centerLat, math.Abs(centerLon), ew)
		r.drawHUDBox(&x, &y, "loc", loc)
	}
	r.drawHUDBox(&x, &y, "disp", fmt.Sprintf("%d/%d", visible, total))
}

// drawHUDBox draws one label/value chip and advances the cursor,
// wrapping to the line above when the row is full.
func (r *Renderer) drawHUDBox(x, y *int, label, value string) {
	charW := 6 * r.uiScale
	rowH := 12 * r.uiScale

	labelW := (len(label) + 1) * charW
	valueW := (len(value) + 1) * charW

	if *x+labelW+valueW+hudPad > r.width {
		*x = hudPad
		*y -= rowH + hudPad
	}

	r.setColor(palette.chromeBg)
	r.sdl.FillRect(&sdl.Rect{X: int32(*x), Y: int32(*y), W: int32(labelW + valueW), H: int32(rowH)})

	r.setColor(palette.chrome)
	r.sdl.FillRect(&sdl.Rect{X: int32(*x), Y: int32(*y), W: int32(labelW), H: int32(rowH)})
	r.sdl.DrawRect(&sdl.Rect{X: int32(*x), Y: int32(*y), W: int32(labelW + valueW), H: int32(rowH)})

	r.text(label, *x+charW/2, *y, r.boldFont, palette.chromeBg)
	r.text(value, *x+labelW+charW/2, *y, r.font, palette.chrome)

	*x += labelW + valueW + hudPad
}
