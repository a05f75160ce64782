package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/OJPARKINSON/squitter1090/internal/app"
	"github.com/OJPARKINSON/squitter1090/internal/config"
)

func main() {
	cfg := config.DefaultConfig()

	pflag.StringVar(&cfg.ServerAddress, "server", cfg.ServerAddress, "Beast server address")
	pflag.IntVar(&cfg.ServerPort, "port", cfg.ServerPort, "Beast server port")
	pflag.Float64Var(&cfg.InitialLat, "lat", cfg.InitialLat, "Antenna/initial map center latitude")
	pflag.Float64Var(&cfg.InitialLon, "lon", cfg.InitialLon, "Antenna/initial map center longitude")
	pflag.BoolVar(&cfg.Metric, "metric", cfg.Metric, "Use metric units")
	pflag.BoolVar(&cfg.Fullscreen, "fullscreen", cfg.Fullscreen, "Fullscreen mode")
	pflag.IntVar(&cfg.ScreenWidth, "width", cfg.ScreenWidth, "Screen width (0 = auto-detect)")
	pflag.IntVar(&cfg.ScreenHeight, "height", cfg.ScreenHeight, "Screen height (0 = auto-detect)")
	pflag.IntVar(&cfg.UIScale, "uiscale", cfg.UIScale, "UI scaling factor")
	pflag.Float64Var(&cfg.InitialZoom, "zoom", cfg.InitialZoom, "Initial zoom level in NM")
	pflag.BoolVar(&cfg.ShowTrails, "trails", cfg.ShowTrails, "Show aircraft trails")
	pflag.IntVar(&cfg.TrailLength, "traillen", cfg.TrailLength, "Length of aircraft trails")
	pflag.IntVar(&cfg.DisplayTTL, "ttl", cfg.DisplayTTL, "Time to display aircraft after last message (seconds)")
	pflag.BoolVar(&cfg.DisableLatLong, "disable-lat-long", cfg.DisableLatLong, "Hide the lat/long status box")
	pflag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug output")

	var cities []string
	pflag.StringArrayVar(&cities, "cities", nil, "Overlay label \"name,lat,long\" (repeatable)")

	helpFlag := pflag.Bool("help", false, "Show help")

	pflag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}

	for _, c := range cities {
		city, err := config.ParseCity(c)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --cities value: %v\n", err)
			os.Exit(1)
		}
		cfg.Cities = append(cfg.Cities, city)
	}

	cfg.AntennaLat = cfg.InitialLat
	cfg.AntennaLon = cfg.InitialLon
	cfg.HaveAntenna = true

	log := logrus.New()
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	application := app.New(cfg, log)
	if err := application.Initialize(); err != nil {
		log.WithError(err).Fatal("failed to initialize application")
	}
	defer application.Cleanup()

	if err := application.Run(); err != nil {
		log.WithError(err).Fatal("application exited with error")
	}
}

func showHelp() {
	fmt.Println(`
-----------------------------------------------------------------------------
|                      squitter1090 ADS-B Radar Scope                       |
-----------------------------------------------------------------------------
Usage: squitter-radar [options]

Options:
  --server <address>       Beast server address (default: localhost)
  --port <port>            Beast server port (default: 30005)
  --lat <latitude>         Antenna / initial map center latitude
  --lon <longitude>        Antenna / initial map center longitude
  --metric                 Use metric units
  --fullscreen             Start in fullscreen mode
  --width <pixels>         Screen width (0 = auto-detect)
  --height <pixels>        Screen height (0 = auto-detect)
  --uiscale <factor>       UI scaling factor (default: 1)
  --zoom <nm>              Initial zoom level in nautical miles (default: 50)
  --trails                 Show aircraft trails (default: true)
  --traillen <points>      Length of aircraft trails (default: 50)
  --ttl <seconds>          Time to display aircraft after last message (default: 30)
  --cities name,lat,long   Overlay a named point on the map (repeatable)
  --disable-lat-long       Hide the lat/long status box
  --debug                  Enable debug output
  --help                   Show this help

Keyboard Controls:
  ESC                      Exit program
  +/=                      Zoom in
  -                        Zoom out

Mouse Controls:
  Click                    Select aircraft
  Double-click             Zoom in at point
  Drag                     Pan map
  Scroll wheel             Zoom in/out
`)
}
