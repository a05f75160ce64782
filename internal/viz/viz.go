// Package viz is the SDL2 radar scope: it owns the window, the basemap
// texture, and the per-frame drawing of aircraft symbols, trails,
// labels, and HUD chrome over the basemap.
package viz

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/OJPARKINSON/squitter1090/internal/map_system"
)

const (
	hudPad        = 5
	basemapMaxAge = 2 * time.Second
)

// palette is the scope color scheme.
var palette = struct {
	background    sdl.Color
	aircraft      sdl.Color
	aircraftFaded sdl.Color
	selected      sdl.Color
	trail         sdl.Color
	label         sdl.Color
	subLabel      sdl.Color
	labelLine     sdl.Color
	labelBg       sdl.Color
	landmass      sdl.Color
	airport       sdl.Color
	chrome        sdl.Color
	chromeBg      sdl.Color
}{
	background:    sdl.Color{R: 0, G: 0, B: 0, A: 255},
	aircraft:      sdl.Color{R: 253, G: 250, B: 31, A: 255},
	aircraftFaded: sdl.Color{R: 127, G: 127, B: 127, A: 255},
	selected:      sdl.Color{R: 249, G: 38, B: 114, A: 255},
	trail:         sdl.Color{R: 90, G: 133, B: 50, A: 255},
	label:         sdl.Color{R: 255, G: 255, B: 255, A: 255},
	subLabel:      sdl.Color{R: 127, G: 127, B: 127, A: 255},
	labelLine:     sdl.Color{R: 64, G: 64, B: 64, A: 255},
	labelBg:       sdl.Color{R: 0, G: 0, B: 0, A: 200},
	landmass:      sdl.Color{R: 33, G: 0, B: 122, A: 255},
	airport:       sdl.Color{R: 85, G: 0, B: 255, A: 255},
	chrome:        sdl.Color{R: 196, G: 196, B: 196, A: 255},
	chromeBg:      sdl.Color{R: 0, G: 0, B: 0, A: 255},
}

// Renderer draws the radar scope. All methods must be called from the
// thread that created it, per SDL's threading rules.
type Renderer struct {
	window   *sdl.Window
	sdl      *sdl.Renderer
	font     *ttf.Font
	boldFont *ttf.Font

	basemap      *sdl.Texture
	basemapFresh time.Time
	basemapDrawn bool

	width          int
	height         int
	uiScale        int
	metric         bool
	disableLatLong bool

	world  *map_system.Map
	layout *labelLayout
	log    *logrus.Logger
}

// NewRenderer initializes SDL, opens the window, loads fonts, and
// loads the basemap. width/height of zero auto-detect the display
// size.
func NewRenderer(width, height, uiScale int, metric bool, log *logrus.Logger) (*Renderer, error) {
	if log == nil {
		log = logrus.New()
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("ttf init: %w", err)
	}

	if width == 0 || height == 0 {
		if bounds, err := sdl.GetDisplayBounds(0); err == nil {
			width, height = int(bounds.W), int(bounds.H)
		} else {
			width, height = 1024, 768
		}
	}

	r := &Renderer{
		width:   width,
		height:  height,
		uiScale: uiScale,
		metric:  metric,
		log:     log,
	}

	var err error
	r.window, err = sdl.CreateWindow("squitter1090",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		r.Cleanup()
		return nil, fmt.Errorf("create window: %w", err)
	}

	r.sdl, err = sdl.CreateRenderer(r.window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		r.Cleanup()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	r.basemap, err = r.sdl.CreateTexture(sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_TARGET, int32(width), int32(height))
	if err != nil {
		r.Cleanup()
		return nil, fmt.Errorf("create basemap texture: %w", err)
	}

	r.font, err = ttf.OpenFont("font/TerminusTTF-4.46.0.ttf", 12*uiScale)
	if err != nil {
		r.Cleanup()
		return nil, fmt.Errorf("open font: %w", err)
	}
	r.boldFont, err = ttf.OpenFont("font/TerminusTTF-Bold-4.46.0.ttf", 12*uiScale)
	if err != nil {
		r.Cleanup()
		return nil, fmt.Errorf("open bold font: %w", err)
	}

	r.layout = newLabelLayout(width, height, uiScale)

	r.world = map_system.New(log)
	r.world.Load("mapdata.bin", "airportdata.bin", "mapnames", "airportnames")

	return r, nil
}

// SetDisableLatLong hides the antenna-location HUD box.
func (r *Renderer) SetDisableLatLong(disable bool) {
	r.disableLatLong = disable
}

// AddCityOverlay adds a CLI-supplied named point to the basemap's
// place labels.
func (r *Renderer) AddCityOverlay(name string, lat, lon float64) {
	r.world.AddCityOverlay(name, lat, lon)
	r.basemapDrawn = false
}

// Width returns the window width in pixels.
func (r *Renderer) Width() int { return r.width }

// Height returns the window height in pixels.
func (r *Renderer) Height() int { return r.height }

// Cleanup tears down fonts, textures, and SDL itself. Safe to call on
// a partially-constructed Renderer.
func (r *Renderer) Cleanup() {
	if r.boldFont != nil {
		r.boldFont.Close()
		r.boldFont = nil
	}
	if r.font != nil {
		r.font.Close()
		r.font = nil
	}
	if r.basemap != nil {
		r.basemap.Destroy()
		r.basemap = nil
	}
	if r.sdl != nil {
		r.sdl.Destroy()
		r.sdl = nil
	}
	if r.window != nil {
		r.window.Destroy()
		r.window = nil
	}
	ttf.Quit()
	sdl.Quit()
}

func (r *Renderer) setColor(c sdl.Color) {
	r.sdl.SetDrawColor(c.R, c.G, c.B, c.A)
}

// text draws s at (x, y) and returns the rendered width and height.
func (r *Renderer) text(s string, x, y int, font *ttf.Font, color sdl.Color) (int, int) {
	if s == "" {
		return 0, 0
	}
	surface, err := font.RenderUTF8Solid(s, color)
	if err != nil {
		return 0, 0
	}
	defer surface.Free()

	texture, err := r.sdl.CreateTextureFromSurface(surface)
	if err != nil {
		return 0, 0
	}
	defer texture.Destroy()

	r.sdl.Copy(texture, nil, &sdl.Rect{X: int32(x), Y: int32(y), W: surface.W, H: surface.H})
	return int(surface.W), int(surface.H)
}
