package config

import (
	"fmt"
	"strconv"
	"strings"
)

// City is a CLI-supplied overlay point, one per repeated --cities flag
// value ("name,lat,long").
type City struct {
	Name string
	Lat  float64
	Lon  float64
}

// Config stores application configuration settings
type Config struct {
	// Network settings
	ServerAddress string
	ServerPort    int

	// Display settings
	ScreenWidth  int
	ScreenHeight int
	Fullscreen   bool
	UIScale      int
	Metric       bool

	// Initial map settings
	InitialLat  float64
	InitialLon  float64
	InitialZoom float64

	// Antenna location, used to gate implausible CPR-resolved
	// positions and to render the "loc" status box.
	AntennaLat     float64
	AntennaLon     float64
	HaveAntenna    bool
	Cities         []City
	DisableLatLong bool

	// Visualization options
	ShowTrails  bool
	TrailLength int
	LabelDetail int
	DisplayTTL  int

	// Debug options
	Debug bool
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		ServerAddress: "localhost",
		ServerPort:    30005,
		ScreenWidth:   0, // Auto-detect
		ScreenHeight:  0, // Auto-detect
		Fullscreen:    false,
		UIScale:       1,
		Metric:        false,
		InitialLat:    37.6188,
		InitialLon:    -122.3756,
		InitialZoom:   50.0, // NM
		ShowTrails:    true,
		TrailLength:   50,
		LabelDetail:   2,
		DisplayTTL:    30,
		Debug:         false,
	}
}

// ParseCity parses one --cities flag value of the form
// "name,lat,long" into a City overlay point.
func ParseCity(s string) (City, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return City{}, fmt.Errorf("city %q: want name,lat,long", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return City{}, fmt.Errorf("city %q: bad latitude: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return City{}, fmt.Errorf("city %q: bad longitude: %w", s, err)
	}
	return City{Name: strings.TrimSpace(parts[0]), Lat: lat, Lon: lon}, nil
}
