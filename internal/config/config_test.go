package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCity(t *testing.T) {
	city, err := ParseCity("Oakland,37.8044,-122.2712")
	require.NoError(t, err)
	assert.Equal(t, "Oakland", city.Name)
	assert.InDelta(t, 37.8044, city.Lat, 1e-9)
	assert.InDelta(t, -122.2712, city.Lon, 1e-9)
}

func TestParseCityTrimsWhitespace(t *testing.T) {
	city, err := ParseCity(" San Jose , 37.3382 , -121.8863 ")
	require.NoError(t, err)
	assert.Equal(t, "San Jose", city.Name)
	assert.InDelta(t, 37.3382, city.Lat, 1e-9)
}

func TestParseCityRejectsMalformed(t *testing.T) {
	for _, s := range []string{
		"",
		"NoCoords",
		"TooFew,37.0",
		"Extra,37.0,-122.0,9",
		"BadLat,north,-122.0",
		"BadLon,37.0,west",
	} {
		_, err := ParseCity(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 30005, cfg.ServerPort)
	assert.False(t, cfg.HaveAntenna)
	assert.Empty(t, cfg.Cities)
	assert.Positive(t, cfg.DisplayTTL)
}
