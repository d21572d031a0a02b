package player

import (
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

type nopLogger struct{}

func (nopLogger) Print(string)                  {}
func (nopLogger) Printf(string, ...interface{}) {}
func (nopLogger) PrintError(string, error)      {}

// fakeMedia records the commands it receives.
type fakeMedia struct {
	paused    bool
	position  float64
	volume    float64
	muted     bool
	rate      float64
	duration  float64
	buffered  []TimeRange
	playErr   error
	seeks     []float64
	listeners map[int]MediaListener
	nextID    int
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{
		paused:    true,
		volume:    1,
		rate:      1,
		listeners: map[int]MediaListener{},
	}
}

func (m *fakeMedia) Play() error {
	if m.playErr != nil {
		return m.playErr
	}
	m.paused = false
	return nil
}

func (m *fakeMedia) Pause() error {
	m.paused = true
	return nil
}

func (m *fakeMedia) Paused() bool { return m.paused }

func (m *fakeMedia) SetPosition(s float64) error {
	m.position = s
	m.seeks = append(m.seeks, s)
	return nil
}

func (m *fakeMedia) SetVolume(v float64) error       { m.volume = v; return nil }
func (m *fakeMedia) SetMuted(b bool) error           { m.muted = b; return nil }
func (m *fakeMedia) SetPlaybackRate(r float64) error { m.rate = r; return nil }
func (m *fakeMedia) Duration() float64               { return m.duration }
func (m *fakeMedia) Buffered() []TimeRange           { return m.buffered }

func (m *fakeMedia) Subscribe(l MediaListener) func() {
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	return func() { delete(m.listeners, id) }
}

func (m *fakeMedia) lastSeek() (float64, bool) {
	if len(m.seeks) == 0 {
		return 0, false
	}
	return m.seeks[len(m.seeks)-1], true
}

var errAutoplay = errors.New("autoplay denied")

// fakeClock runs callbacks when Advance passes their deadline.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}
