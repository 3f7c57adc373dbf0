package control

import (
	"expvar"
	"sync"
	"time"

	"github.com/ironsheep/robot-goalie/internal/protocol"
)

// fpsWindow is the number of frames the FPS meter averages over.
const fpsWindow = 30

// Metrics counts loop activity and exposes it as an expvar.Map.
//
// The map is not registered globally; call Publish once to make it visible
// under /debug/vars.
type Metrics struct {
	vars       *expvar.Map
	packets    *expvar.Map
	frames     expvar.Int
	sendErrors expvar.Int
	frameErrs  expvar.Int
	fps        expvar.Float

	mu          sync.Mutex
	now         func() time.Time
	windowStart time.Time
	windowCount int
}

// NewMetrics returns zeroed counters.
func NewMetrics() *Metrics {
	m := &Metrics{
		vars:    new(expvar.Map).Init(),
		packets: new(expvar.Map).Init(),
		now:     time.Now,
	}
	m.vars.Set("frames", &m.frames)
	m.vars.Set("packets", m.packets)
	m.vars.Set("send_errors", &m.sendErrors)
	m.vars.Set("frame_errors", &m.frameErrs)
	m.vars.Set("fps", &m.fps)
	return m
}

// Publish registers the counters under name. Like expvar.Publish it panics
// if name is already in use.
func (m *Metrics) Publish(name string) {
	expvar.Publish(name, m.vars)
}

// Frames returns the number of frames processed.
func (m *Metrics) Frames() int64 { return m.frames.Value() }

// SendErrors returns the number of packets that failed to send.
func (m *Metrics) SendErrors() int64 { return m.sendErrors.Value() }

// FrameErrors returns the number of failed frame reads.
func (m *Metrics) FrameErrors() int64 { return m.frameErrs.Value() }

// FPS returns the frame rate over the last completed window.
func (m *Metrics) FPS() float64 { return m.fps.Value() }

// Packets returns how many packets of kind were sent successfully.
func (m *Metrics) Packets(kind protocol.Kind) int64 {
	if v, ok := m.packets.Get(string(kind)).(*expvar.Int); ok {
		return v.Value()
	}
	return 0
}

func (m *Metrics) frame() {
	m.frames.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if m.windowCount == 0 {
		m.windowStart = now
	}
	m.windowCount++
	if m.windowCount > fpsWindow {
		if elapsed := now.Sub(m.windowStart).Seconds(); elapsed > 0 {
			m.fps.Set(float64(m.windowCount-1) / elapsed)
		}
		m.windowStart = now
		m.windowCount = 1
	}
}

func (m *Metrics) sent(kind protocol.Kind) {
	m.packets.Add(string(kind), 1)
}
