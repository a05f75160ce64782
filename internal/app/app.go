// Package app wires the transport (internal/beast), the decoder
// (internal/modes), the tracking store (internal/adsb), and the
// renderer (internal/viz) into the runnable radar scope.
package app

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/golang/geo/s2"
	"github.com/sirupsen/logrus"

	"github.com/OJPARKINSON/squitter1090/internal/adsb"
	"github.com/OJPARKINSON/squitter1090/internal/beast"
	"github.com/OJPARKINSON/squitter1090/internal/config"
	"github.com/OJPARKINSON/squitter1090/internal/modes"
	"github.com/OJPARKINSON/squitter1090/internal/viz"
)

const (
	frameInterval = 33 * time.Millisecond // ~30fps
	retryInterval = 5 * time.Second
)

// App is the radar scope: one feed connection, one tracking store, one
// window.
type App struct {
	cfg *config.Config
	log *logrus.Logger

	aircraft    *adsb.AircraftMap
	antenna     s2.LatLng
	haveAntenna bool

	cam      camera
	selected uint32

	scope   *viz.Renderer
	running bool

	feedConn  net.Conn
	connected bool

	mu sync.RWMutex

	// rolling statistics for the HUD and logs
	msgCount       int
	decodeFailures int
	lastFrame      time.Time
}

// New builds an App from config. Initialize must be called before Run.
func New(cfg *config.Config, log *logrus.Logger) *App {
	if log == nil {
		log = logrus.New()
	}

	a := &App{
		cfg: cfg,
		log: log,
		cam: camera{
			lat:      cfg.InitialLat,
			lon:      cfg.InitialLon,
			radiusNM: cfg.InitialZoom,
		},
		lastFrame: time.Now(),
	}

	if cfg.HaveAntenna {
		a.antenna = s2.LatLngFromDegrees(cfg.AntennaLat, cfg.AntennaLon)
		a.haveAntenna = true
	}

	ttl := time.Duration(cfg.DisplayTTL) * time.Second
	a.aircraft = adsb.NewAircraftMap(ttl, ttl/2, log)

	return a
}

// Initialize opens the window and threads the CLI surface (city
// overlays, label options) into the renderer.
func (a *App) Initialize() error {
	scope, err := viz.NewRenderer(a.cfg.ScreenWidth, a.cfg.ScreenHeight,
		a.cfg.UIScale, a.cfg.Metric, a.log)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	a.scope = scope

	scope.SetDisableLatLong(a.cfg.DisableLatLong)
	for _, city := range a.cfg.Cities {
		scope.AddCityOverlay(city.Name, city.Lat, city.Lon)
	}

	return nil
}

// connectFeed dials the Beast server and starts the receive goroutine.
// Failures are logged and retried by Run's ticker.
func (a *App) connectFeed() {
	if a.connected {
		return
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.ServerAddress, a.cfg.ServerPort)
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		a.log.WithError(err).WithField("retry_in", retryInterval).
			Warn("failed to connect to Beast server")
		return
	}

	a.feedConn = conn
	a.connected = true
	a.log.WithField("addr", addr).Info("connected to Beast server")

	go a.receive(conn)
}

// receive drains the feed connection until it errors or the app stops.
func (a *App) receive(conn net.Conn) {
	decoder := beast.NewDecoder(conn, a.log)

	for a.running {
		msg, err := decoder.ReadMessage()
		if err != nil {
			if a.running {
				a.log.WithError(err).Warn("feed transport error, disconnecting")
				a.connected = false
				conn.Close()
			}
			return
		}

		if msg.Type == beast.ModeLong {
			a.ingest(msg.Data, msg.Signal)
		}
		a.msgCount++
	}
}

// ingest decodes one 112-bit frame and folds it into the store. Decode
// failures are routine on a real RF feed, so they're counted, logged
// at Debug, and dropped, never fatal to the pipeline.
func (a *App) ingest(data []byte, signal byte) {
	frame, err := modes.Decode(data)
	if err != nil {
		a.decodeFailures++
		a.log.WithError(err).Debug("dropping undecodable frame")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.aircraft.Ingest(frame, signal, a.antenna, a.haveAntenna)
}

// Run drives the main loop: input, housekeeping, reconnects, and one
// rendered frame per tick, paced to frameInterval.
func (a *App) Run() error {
	a.running = true

	housekeeping := time.NewTicker(time.Second)
	defer housekeeping.Stop()
	reconnect := time.NewTicker(retryInterval)
	defer reconnect.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		a.log.Info("received shutdown signal, exiting")
		a.running = false
	}()

	a.log.Info("starting squitter1090")
	a.connectFeed()

	for a.running {
		if !a.pollInput() {
			a.running = false
			break
		}

		select {
		case <-housekeeping.C:
			ttl := time.Duration(a.cfg.DisplayTTL) * time.Second
			a.aircraft.RemoveStale(ttl)
			a.logStats()
		case <-reconnect.C:
			if !a.connected {
				go a.connectFeed()
			}
		default:
		}

		a.mu.RLock()
		a.scope.RenderFrame(a.aircraft.Copy(), a.cam.lat, a.cam.lon, a.cam.radiusNM, a.selected)
		a.mu.RUnlock()

		if elapsed := time.Since(a.lastFrame); elapsed < frameInterval {
			time.Sleep(frameInterval - elapsed)
		}
		a.lastFrame = time.Now()
	}

	return nil
}

func (a *App) logStats() {
	a.log.WithFields(logrus.Fields{
		"aircraft":        a.aircraft.Len(),
		"msgs":            a.msgCount,
		"decode_failures": a.decodeFailures,
	}).Debug("tick")
	a.msgCount = 0
}

// Cleanup closes the feed connection and tears down the window.
func (a *App) Cleanup() {
	a.running = false

	if a.feedConn != nil {
		a.feedConn.Close()
		a.feedConn = nil
	}
	if a.scope != nil {
		a.scope.Cleanup()
	}

	a.log.Info("cleanup complete")
}
