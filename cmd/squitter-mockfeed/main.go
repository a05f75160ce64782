// squitter-mockfeed is a Beast-protocol feed simulator for driving the
// radar scope without an SDR: it flies a handful of synthetic aircraft
// and broadcasts their identification, airborne position, and velocity
// squitters as DF17 frames to every connected client. The frames it
// emits are real wire-format extended squitters (proper 6-bit callsign
// packing, CPR position encoding, q-bit altitude), so the consuming
// pipeline exercises the same decode paths it would against live
// traffic.
package main

import (
	"math"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/OJPARKINSON/squitter1090/internal/beast"
)

// bitWriter packs MSB-first bit fields into a fixed-size frame, the
// mirror image of the decoder's reader.
type bitWriter struct {
	buf []byte
	pos int
}

func newBitWriter(bytes int) *bitWriter {
	return &bitWriter{buf: make([]byte, bytes)}
}

func (w *bitWriter) put(value uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		if value&(1<<uint(i)) != 0 {
			w.buf[w.pos/8] |= 1 << uint(7-w.pos%8)
		}
		w.pos++
	}
}

// callsignCode maps a character to its 6-bit restricted-alphabet code:
// A-Z at 1-26, space at 32, digits at 48-57. Anything else encodes as
// space.
func callsignCode(c byte) uint64 {
	switch {
	case c >= 'A' && c <= 'Z':
		return uint64(c-'A') + 1
	case c >= '0' && c <= '9':
		return uint64(c-'0') + 48
	default:
		return 32
	}
}

// df17Frame wraps a 56-bit ME block written by fill into a complete
// 14-byte DF17 frame. The trailing parity field is left zero; the
// consumer stores it unverified.
func df17Frame(icao uint32, fill func(w *bitWriter)) []byte {
	w := newBitWriter(14)
	w.put(17, 5) // DF
	w.put(5, 3)  // CA
	w.put(uint64(icao), 24)
	fill(w)
	w.put(0, 24) // PI
	return w.buf
}

func encodeIdent(icao uint32, callsign string) []byte {
	return df17Frame(icao, func(w *bitWriter) {
		w.put(4, 5) // TC: identification, category set A
		w.put(0, 3) // emitter category
		for i := 0; i < 8; i++ {
			c := byte(' ')
			if i < len(callsign) {
				c = callsign[i]
			}
			w.put(callsignCode(c), 6)
		}
	})
}

func encodeAirbornePosition(icao uint32, lat, lon float64, altFt int, odd bool) []byte {
	latCPR, lonCPR := cprEncode(lat, lon, odd)

	// q=1 altitude: 25-ft counts above -1000 ft, split around the
	// q-bit at field bit 4 (LSB-indexed).
	n := (altFt + 1000) / 25
	altField := uint64(n>>4)<<5 | 1<<4 | uint64(n&0xF)

	return df17Frame(icao, func(w *bitWriter) {
		w.put(11, 5) // TC: airborne position, barometric
		w.put(0, 2)  // surveillance status
		w.put(0, 1)  // single antenna
		w.put(altField, 12)
		w.put(0, 1) // time
		if odd {
			w.put(1, 1)
		} else {
			w.put(0, 1)
		}
		w.put(uint64(latCPR), 17)
		w.put(uint64(lonCPR), 17)
	})
}

func encodeVelocity(icao uint32, speedKt, trackDeg, climbFpm int) []byte {
	theta := float64(trackDeg) * math.Pi / 180
	ew := int(math.Round(float64(speedKt) * math.Sin(theta)))
	ns := int(math.Round(float64(speedKt) * math.Cos(theta)))

	ewSign, ewMag := splitSign(ew)
	nsSign, nsMag := splitSign(ns)

	vrSign, vrMag := splitSign(climbFpm)
	vr := vrMag/64 + 1

	return df17Frame(icao, func(w *bitWriter) {
		w.put(19, 5) // TC: airborne velocity
		w.put(1, 3)  // subtype: subsonic ground speed
		w.put(0, 5)  // intent change / IFR / NUC
		w.put(ewSign, 1)
		w.put(uint64(ewMag+1), 10)
		w.put(nsSign, 1)
		w.put(uint64(nsMag+1), 10)
		w.put(1, 1) // vertical rate source: barometric
		w.put(vrSign, 1)
		w.put(uint64(vr), 9)
		w.put(0, 2) // reserved
		w.put(0, 1) // GNSS/baro delta sign
		w.put(0, 7) // GNSS/baro delta: no data
	})
}

func splitSign(v int) (sign uint64, magnitude int) {
	if v < 0 {
		return 1, -v
	}
	return 0, v
}

// cprNL is the closed-form longitude-zone count at a given latitude,
// with the standard endpoint cases pinned.
func cprNL(lat float64) int {
	lat = math.Abs(lat)
	if lat >= 87 {
		return 1
	}
	if lat == 0 {
		return 59
	}
	const nz = 15.0
	a := 1 - math.Cos(math.Pi/(2*nz))
	b := math.Cos(math.Pi / 180 * lat)
	return int(math.Floor(2 * math.Pi / math.Acos(1-a/(b*b))))
}

// cprEncode packs a position into the 17-bit even or odd CPR pair, per
// the airborne encoding in Doc 9871: latitude zones first, then
// longitude zones sized for the latitude band the encoded latitude
// lands in.
func cprEncode(lat, lon float64, odd bool) (latCPR, lonCPR uint32) {
	const nb = 131072.0 // 2^17

	i := 0.0
	if odd {
		i = 1.0
	}

	dlat := 360.0 / (60.0 - i)
	yz := math.Floor(nb*posMod(lat, dlat)/dlat + 0.5)
	rlat := dlat * (yz/nb + math.Floor(lat/dlat))

	dlon := 360.0
	if n := cprNL(rlat) - int(i); n > 0 {
		dlon = 360.0 / float64(n)
	}
	xz := math.Floor(nb*posMod(lon, dlon)/dlon + 0.5)

	return uint32(yz) & 0x1FFFF, uint32(xz) & 0x1FFFF
}

func posMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

// beastFrame wraps payload bytes in Beast framing: sync + type byte,
// 6-byte timestamp, signal level, data, everything after the type
// byte 0x1A-escaped.
func beastFrame(msgType byte, data []byte, ts uint64, signal byte) []byte {
	out := make([]byte, 0, 2+(7+len(data))*2)
	out = append(out, beast.SyncByte, msgType)

	esc := func(b byte) {
		out = append(out, b)
		if b == beast.SyncByte {
			out = append(out, b)
		}
	}

	for i := 5; i >= 0; i-- {
		esc(byte(ts >> (8 * i)))
	}
	esc(signal)
	for _, b := range data {
		esc(b)
	}
	return out
}

// simAircraft is one synthetic flight. step advances it along its
// track; squitters renders its current state as wire frames.
type simAircraft struct {
	icao     uint32
	callsign string
	lat      float64
	lon      float64
	altFt    int
	speedKt  int
	trackDeg int
	climbFpm int
	oddFlag  bool
	updated  time.Time
}

func (a *simAircraft) step(now time.Time) {
	dt := now.Sub(a.updated).Seconds()
	a.updated = now

	nm := float64(a.speedKt) * dt / 3600
	theta := float64(a.trackDeg) * math.Pi / 180
	a.lat += nm * math.Cos(theta) / 60
	a.lon += nm * math.Sin(theta) / (60 * math.Cos(a.lat*math.Pi/180))
	a.altFt += int(float64(a.climbFpm) * dt / 60)

	if rand.Float64() < 0.05 {
		a.trackDeg = (a.trackDeg + rand.Intn(3) - 1 + 360) % 360
	}
	if rand.Float64() < 0.02 {
		a.climbFpm = rand.Intn(2000) - 1000
	}
	a.oddFlag = !a.oddFlag
}

func (a *simAircraft) squitters(ts uint64) [][]byte {
	signal := byte(rand.Intn(100) + 100)
	frames := [][]byte{
		beastFrame(beast.ModeLong, encodeAirbornePosition(a.icao, a.lat, a.lon, a.altFt, a.oddFlag), ts, signal),
		beastFrame(beast.ModeLong, encodeVelocity(a.icao, a.speedKt, a.trackDeg, a.climbFpm), ts, signal),
	}
	// identification squitters are rare on the real downlink too
	if rand.Float64() < 0.05 {
		frames = append(frames, beastFrame(beast.ModeLong, encodeIdent(a.icao, a.callsign), ts, signal))
	}
	return frames
}

// feedServer accepts scope connections and broadcasts the simulated
// traffic to all of them.
type feedServer struct {
	mu      sync.Mutex
	fleet   []*simAircraft
	clients map[net.Conn]struct{}
	done    chan struct{}
	log     *logrus.Logger
}

func newFeedServer(log *logrus.Logger) *feedServer {
	return &feedServer{
		clients: make(map[net.Conn]struct{}),
		done:    make(chan struct{}),
		log:     log,
	}
}

func (s *feedServer) add(icao uint32, callsign string, lat, lon float64, altFt, speedKt, trackDeg int) {
	s.fleet = append(s.fleet, &simAircraft{
		icao: icao, callsign: callsign,
		lat: lat, lon: lon,
		altFt: altFt, speedKt: speedKt, trackDeg: trackDeg,
		climbFpm: rand.Intn(1000) - 500,
		updated:  time.Now(),
	})
}

func (s *feedServer) serve(ln net.Listener) {
	go s.broadcastLoop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
			}
			s.log.WithError(err).Warn("accept failed")
			continue
		}

		s.log.WithField("client", conn.RemoteAddr()).Info("scope connected")
		s.mu.Lock()
		s.clients[conn] = struct{}{}
		s.mu.Unlock()

		go s.drain(conn)
	}
}

// drain keeps reading from the client so a close is noticed promptly;
// the feed itself is write-only.
func (s *feedServer) drain(conn net.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
		s.log.WithField("client", conn.RemoteAddr()).Info("scope disconnected")
	}()

	buf := make([]byte, 512)
	for {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		if _, err := conn.Read(buf); err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				select {
				case <-s.done:
					return
				default:
					continue
				}
			}
			return
		}
	}
}

func (s *feedServer) broadcastLoop() {
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-tick.C:
			ts := uint64(now.UnixNano() / int64(time.Millisecond))
			s.mu.Lock()
			for _, a := range s.fleet {
				a.step(now)
				if len(s.clients) == 0 {
					continue
				}
				for _, frame := range a.squitters(ts) {
					for conn := range s.clients {
						conn.Write(frame)
					}
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *feedServer) stop() {
	close(s.done)
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.mu.Unlock()
}

func main() {
	port := pflag.Int("port", 30005, "TCP port to serve Beast frames on")
	pflag.Parse()

	log := logrus.New()

	server := newFeedServer(log)
	server.add(0xABCDEF, "SWA1234", 37.6188, -122.3756, 10000, 450, 45)
	server.add(0x123456, "UAL789", 37.7749, -122.4194, 25000, 500, 270)
	server.add(0x789ABC, "DAL456", 37.8716, -122.2727, 35000, 550, 180)
	server.add(0x456DEF, "AAL100", 38.0100, -122.1000, 15000, 400, 135)
	server.add(0xFEDCBA, "JBU202", 37.5000, -122.5000, 28000, 480, 90)

	ln, err := net.Listen("tcp", net.JoinHostPort("0.0.0.0", strconv.Itoa(*port)))
	if err != nil {
		log.WithError(err).Fatal("listen failed")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		server.stop()
		ln.Close()
		os.Exit(0)
	}()

	log.WithField("port", *port).Info("mock feed running")
	server.serve(ln)
}
