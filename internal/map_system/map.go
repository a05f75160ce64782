// Package map_system holds the basemap: coastline and airport outline
// geometry loaded from the prerendered binary files, plus the named
// points (places, airports, CLI-supplied city overlays) drawn as text
// labels. Geometry is indexed in a quadtree so the renderer can ask
// for just the segments that intersect the current viewport.
package map_system

import (
	"bufio"
	"encoding/binary"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Point is a geographic coordinate in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Bounds is a lat/lon axis-aligned box.
type Bounds struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

func boxAround(a, b Point) Bounds {
	return Bounds{
		LatMin: math.Min(a.Lat, b.Lat),
		LatMax: math.Max(a.Lat, b.Lat),
		LonMin: math.Min(a.Lon, b.Lon),
		LonMax: math.Max(a.Lon, b.Lon),
	}
}

// Overlaps reports whether two boxes share any area.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.LatMax >= o.LatMin && b.LatMin <= o.LatMax &&
		b.LonMax >= o.LonMin && b.LonMin <= o.LonMax
}

// Contains reports whether p falls inside the box.
func (b Bounds) Contains(p Point) bool {
	return p.Lat >= b.LatMin && p.Lat <= b.LatMax &&
		p.Lon >= b.LonMin && p.Lon <= b.LonMax
}

func (b Bounds) covers(o Bounds) bool {
	return o.LatMin >= b.LatMin && o.LatMax <= b.LatMax &&
		o.LonMin >= b.LonMin && o.LonMax <= b.LonMax
}

func (b Bounds) quadrant(i int) Bounds {
	midLat := (b.LatMin + b.LatMax) / 2
	midLon := (b.LonMin + b.LonMax) / 2
	switch i {
	case 0:
		return Bounds{b.LatMin, midLat, b.LonMin, midLon}
	case 1:
		return Bounds{b.LatMin, midLat, midLon, b.LonMax}
	case 2:
		return Bounds{midLat, b.LatMax, b.LonMin, midLon}
	default:
		return Bounds{midLat, b.LatMax, midLon, b.LonMax}
	}
}

// Line is one basemap segment with its precomputed bounding box.
type Line struct {
	A   Point
	B   Point
	box Bounds
}

// Label is a named point rendered as map text.
type Label struct {
	At   Point
	Text string
}

// maxQuadDepth bounds tree depth so degenerate geometry (many tiny
// collinear segments) can't recurse forever.
const maxQuadDepth = 25

type quadNode struct {
	box   Bounds
	lines []*Line
	kids  *[4]quadNode
}

// insert places the segment in the deepest node whose box fully covers
// it; segments spanning a quadrant boundary stay at the current level.
func (n *quadNode) insert(l *Line, depth int) {
	if depth < maxQuadDepth {
		for i := 0; i < 4; i++ {
			q := n.box.quadrant(i)
			if !q.covers(l.box) {
				continue
			}
			if n.kids == nil {
				n.kids = &[4]quadNode{}
				for k := 0; k < 4; k++ {
					n.kids[k].box = n.box.quadrant(k)
				}
			}
			n.kids[i].insert(l, depth+1)
			return
		}
	}
	n.lines = append(n.lines, l)
}

func (n *quadNode) collect(view Bounds, out []*Line) []*Line {
	if !n.box.Overlaps(view) {
		return out
	}
	for _, l := range n.lines {
		if l.box.Overlaps(view) {
			out = append(out, l)
		}
	}
	if n.kids != nil {
		for i := range n.kids {
			out = n.kids[i].collect(view, out)
		}
	}
	return out
}

// Map is the loaded basemap.
type Map struct {
	coast    quadNode
	airports quadNode

	places       []Label
	airportNames []Label

	log *logrus.Logger
}

// New returns an empty basemap. Load populates it; a Map that never
// loads anything is still usable and just yields no features.
func New(log *logrus.Logger) *Map {
	if log == nil {
		log = logrus.New()
	}
	return &Map{log: log}
}

// Load reads the two geometry files and the two label files. Missing
// or unreadable files are logged and skipped: the scope degrades to a
// bare grid rather than refusing to start.
func (m *Map) Load(coastFile, airportFile, placesFile, airportNamesFile string) {
	if lines, err := readGeometry(coastFile); err != nil {
		m.log.WithError(err).WithField("file", coastFile).Warn("basemap geometry unavailable")
	} else {
		m.coast = buildTree(lines)
	}

	if lines, err := readGeometry(airportFile); err != nil {
		m.log.WithError(err).WithField("file", airportFile).Warn("airport geometry unavailable")
	} else {
		m.airports = buildTree(lines)
	}

	if labels, err := readLabels(placesFile); err != nil {
		m.log.WithError(err).WithField("file", placesFile).Warn("place names unavailable")
	} else {
		m.places = append(m.places, labels...)
	}

	if labels, err := readLabels(airportNamesFile); err != nil {
		m.log.WithError(err).WithField("file", airportNamesFile).Warn("airport names unavailable")
	} else {
		m.airportNames = append(m.airportNames, labels...)
	}
}

// AddCityOverlay appends a CLI-supplied named point; it renders the
// same way as a loaded place name.
func (m *Map) AddCityOverlay(name string, lat, lon float64) {
	m.places = append(m.places, Label{At: Point{Lat: lat, Lon: lon}, Text: name})
}

// VisibleLines returns the coastline and airport segments intersecting
// the view box.
func (m *Map) VisibleLines(view Bounds) (coast, airports []*Line) {
	return m.coast.collect(view, nil), m.airports.collect(view, nil)
}

// VisibleLabels returns the place and airport labels inside the view
// box.
func (m *Map) VisibleLabels(view Bounds) (places, airports []Label) {
	for _, l := range m.places {
		if view.Contains(l.At) {
			places = append(places, l)
		}
	}
	for _, l := range m.airportNames {
		if view.Contains(l.At) {
			airports = append(airports, l)
		}
	}
	return places, airports
}

func buildTree(lines []*Line) quadNode {
	root := quadNode{box: Bounds{LatMin: 90, LatMax: -90, LonMin: 180, LonMax: -180}}
	for _, l := range lines {
		root.box.LatMin = math.Min(root.box.LatMin, l.box.LatMin)
		root.box.LatMax = math.Max(root.box.LatMax, l.box.LatMax)
		root.box.LonMin = math.Min(root.box.LonMin, l.box.LonMin)
		root.box.LonMax = math.Max(root.box.LonMax, l.box.LonMax)
	}
	for _, l := range lines {
		root.insert(l, 0)
	}
	return root
}

// readGeometry parses a binary geometry file: a flat stream of
// little-endian float32 (lon, lat) pairs forming polylines, with a
// zero coordinate acting as a break between strokes.
func readGeometry(filename string) ([]*Line, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var lines []*Line
	var stroke []Point
	flush := func() {
		for i := 0; i+1 < len(stroke); i++ {
			l := &Line{A: stroke[i], B: stroke[i+1]}
			l.box = boxAround(l.A, l.B)
			lines = append(lines, l)
		}
		stroke = stroke[:0]
	}

	for off := 0; off+8 <= len(data); off += 8 {
		lon := math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
		lat := math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:]))
		if lon == 0 || lat == 0 {
			flush()
			continue
		}
		stroke = append(stroke, Point{Lat: float64(lat), Lon: float64(lon)})
	}
	flush()

	return lines, nil
}

// readLabels parses a label file of whitespace-separated
// "lon lat name..." rows; malformed rows are skipped.
func readLabels(filename string) ([]Label, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var labels []Label
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		lon, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			continue
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		labels = append(labels, Label{
			At:   Point{Lat: lat, Lon: lon},
			Text: strings.Join(fields[2:], " "),
		})
	}
	return labels, scanner.Err()
}
