package remote

import (
	"fmt"
	"sync"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/prop"
	"github.com/spezifisch/stpod/player"
	"github.com/spezifisch/stpod/podcast"
	"github.com/stretchr/testify/assert"
)

var _ ControlledPlayer = (*player.Controller)(nil)

func TestTrackObjectPath(t *testing.T) {
	assert.Equal(t, noTrack, trackObjectPath(""))
	assert.Equal(t, dbus.ObjectPath("/org/stpod/episode/ep_1_intro"), trackObjectPath("ep-1.intro"))
	assert.True(t, trackObjectPath("weird id/ä").IsValid())
}

func TestPlaybackStatus(t *testing.T) {
	assert.Equal(t, "Stopped", playbackStatus(player.State{}))
	assert.Equal(t, "Paused", playbackStatus(player.State{Position: 12}))
	assert.Equal(t, "Playing", playbackStatus(player.State{IsPlaying: true}))
}

func TestEpisodeMetadata(t *testing.T) {
	md := episodeMetadata(podcast.Episode{
		ID:           "ep-7",
		Title:        "Seven",
		Number:       7,
		ThumbnailURL: "https://example.com/7.jpg",
	}, "Jane Host", 61.5)

	assert.Equal(t, dbus.ObjectPath("/org/stpod/episode/ep_7"), md["mpris:trackid"].Value())
	assert.Equal(t, int64(61500000), md["mpris:length"].Value())
	assert.Equal(t, "Seven", md["xesam:title"].Value())
	assert.Equal(t, []string{"Jane Host"}, md["xesam:artist"].Value())
	assert.Equal(t, 7, md["xesam:trackNumber"].Value())
	assert.Equal(t, "https://example.com/7.jpg", md["mpris:artUrl"].Value())

	empty := episodeMetadata(podcast.Episode{}, "", 0)
	assert.Equal(t, []string{}, empty["xesam:artist"].Value())
	_, hasArt := empty["mpris:artUrl"]
	assert.False(t, hasArt)
}

type nopLogger struct{}

func (nopLogger) Print(string)                  {}
func (nopLogger) Printf(string, ...interface{}) {}
func (nopLogger) PrintError(string, error)      {}

type fakePlayer struct {
	state player.State
	seeks []float64
	rates []float64
}

func (p *fakePlayer) TogglePlay()              { p.state.IsPlaying = !p.state.IsPlaying }
func (p *fakePlayer) SetPlaying(play bool)     { p.state.IsPlaying = play }
func (p *fakePlayer) Seek(seconds float64)     { p.seeks = append(p.seeks, seconds) }
func (p *fakePlayer) SetVolume(volume float64) { p.state.Volume = volume }
func (p *fakePlayer) State() player.State      { return p.state }

func (p *fakePlayer) SetPlaybackRate(rate float64) float64 {
	p.rates = append(p.rates, rate)
	p.state.Rate = player.NearestRate(rate)
	return p.state.Rate
}

func TestRateChange(t *testing.T) {
	fake := &fakePlayer{state: player.State{Rate: 1}}
	m := &MprisPlayer{player: fake, logger: nopLogger{}}

	assert.Nil(t, m.rateChange(&prop.Change{Name: "Rate", Value: 1.4}))
	assert.Equal(t, []float64{1.4}, fake.rates)
	assert.Equal(t, 1.5, fake.state.Rate)

	assert.Equal(t, prop.ErrInvalidArg, m.rateChange(&prop.Change{Name: "Rate", Value: "fast"}))
	assert.Equal(t, prop.ErrInvalidArg, m.rateChange(&prop.Change{Name: "Rate", Value: 0.0}))
	assert.Len(t, fake.rates, 1)
}

func TestSetPositionIgnoresOtherTrack(t *testing.T) {
	fake := &fakePlayer{state: player.State{Duration: 100}}
	m := &MprisPlayer{player: fake, logger: nopLogger{}, trackId: noTrack}
	m.setTrack(trackObjectPath("ep-2"))

	m.SetPosition(trackObjectPath("ep-1"), 10*usPerSecond)
	assert.Empty(t, fake.seeks)
}

func TestTrackIsSafeForConcurrentUse(t *testing.T) {
	fake := &fakePlayer{}
	m := &MprisPlayer{player: fake, logger: nopLogger{}, trackId: noTrack}
	m.setTrack(trackObjectPath("ep-0-0"))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.setTrack(trackObjectPath(fmt.Sprintf("ep-%d-%d", i, j)))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.SetPosition(trackObjectPath("gone"), 0)
			}
		}()
	}
	wg.Wait()
	assert.True(t, m.currentTrack().IsValid())
	assert.Empty(t, fake.seeks)
}
