// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import (
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
	"github.com/spezifisch/stpod/logger"
	"github.com/spezifisch/stpod/player"
	"github.com/spezifisch/stpod/podcast"
)

const (
	mprisPath        = "/org/mpris/MediaPlayer2"
	mprisRoot        = "org.mpris.MediaPlayer2"
	mprisPlayerIface = "org.mpris.MediaPlayer2.Player"
	busName          = "org.mpris.MediaPlayer2.stpod"

	usPerSecond = 1000000
)

type MprisPlayer struct {
	dbus      *dbus.Conn
	props     *prop.Properties
	player    ControlledPlayer
	navigator Navigator
	logger    logger.LoggerInterface

	// written from the ui loops, read by D-Bus method calls
	trackMu sync.Mutex
	trackId dbus.ObjectPath
}

func RegisterMprisPlayer(controlled ControlledPlayer, navigator Navigator, logger_ logger.LoggerInterface) (mpp *MprisPlayer, err error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return
	}

	mpp = &MprisPlayer{
		dbus:      conn,
		player:    controlled,
		navigator: navigator,
		logger:    logger_,
		trackId:   noTrack,
	}

	err = conn.ExportAll(mpp, mprisPath, mprisPlayerIface)
	if err != nil {
		return
	}

	st := controlled.State()
	var mprisPlayer = map[string]*prop.Prop{
		"CanControl":     {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanGoNext":      {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanGoPrevious":  {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanPause":       {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanPlay":        {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanSeek":        {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Metadata":       {Value: episodeMetadata(podcast.Episode{}, "", 0), Writable: false, Emit: prop.EmitTrue, Callback: nil},
		"Volume":         {Value: st.Volume, Writable: true, Emit: prop.EmitTrue, Callback: mpp.volumeChange},
		"Rate":           {Value: st.Rate, Writable: true, Emit: prop.EmitTrue, Callback: mpp.rateChange},
		"MinimumRate":    {Value: player.PlaybackRates[0], Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"MaximumRate":    {Value: player.PlaybackRates[len(player.PlaybackRates)-1], Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Position":       {Value: int64(0), Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"PlaybackStatus": {Value: playbackStatus(st), Writable: false, Emit: prop.EmitTrue, Callback: nil},
	}

	var mediaPlayer = map[string]*prop.Prop{
		"CanQuit":             {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanRaise":            {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"HasTrackList":        {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Identity":            {Value: "stpod", Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"SupportedUriSchemes": {Value: []string{"file", "http", "https"}, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"SupportedMimeTypes":  {Value: []string{"audio/mpeg", "audio/mp4", "audio/ogg"}, Writable: false, Emit: prop.EmitFalse, Callback: nil},
	}

	mpp.props, err = prop.Export(
		conn,
		mprisPath,
		map[string]map[string]*prop.Prop{
			mprisRoot:        mediaPlayer,
			mprisPlayerIface: mprisPlayer,
		},
	)
	if err != nil {
		return
	}

	n := &introspect.Node{
		Name: mprisPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       mprisPlayerIface,
				Methods:    introspect.Methods(mpp),
				Properties: mpp.props.Introspection(mprisPlayerIface), // we implement the standard interface
			},
		},
	}
	err = conn.Export(introspect.NewIntrospectable(n), mprisPath, "org.freedesktop.DBus.Introspectable")
	if err != nil {
		return
	}

	reply, err := conn.RequestName(busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		err = errors.New("name already owned")
		return
	}
	return
}

func (m *MprisPlayer) Close() {
	if err := m.dbus.Close(); err != nil {
		m.logger.PrintError("mpp Close", err)
	}
}

// Mandatory functions
func (m *MprisPlayer) Stop() {
	m.player.SetPlaying(false)
	m.player.Seek(0)
}

func (m *MprisPlayer) Next() {
	m.navigator.NextEpisode()
}

func (m *MprisPlayer) Previous() {
	m.navigator.PreviousEpisode()
}

// set paused
func (m *MprisPlayer) Pause() {
	m.player.SetPlaying(false)
}

// set playing
func (m *MprisPlayer) Play() {
	m.player.SetPlaying(true)
}

func (m *MprisPlayer) PlayPause() {
	m.player.TogglePlay()
}

func (m *MprisPlayer) OpenUri(string) {
	// only catalog episodes can be played
}

// Seek moves by offset microseconds.
func (m *MprisPlayer) Seek(offset int64) {
	target := m.player.State().Position + float64(offset)/usPerSecond
	m.player.Seek(target)
	m.emitSeeked(target)
}

// SetPosition jumps to position microseconds if trackId is still current.
func (m *MprisPlayer) SetPosition(trackId dbus.ObjectPath, position int64) {
	if trackId != m.currentTrack() {
		return
	}
	st := m.player.State()
	target := float64(position) / usPerSecond
	if target < 0 || (st.Duration > 0 && target > st.Duration) {
		return
	}
	m.player.Seek(target)
	m.emitSeeked(target)
}

func (m *MprisPlayer) emitSeeked(seconds float64) {
	if err := m.dbus.Emit(mprisPath, mprisPlayerIface+".Seeked", int64(seconds*usPerSecond)); err != nil {
		m.logger.PrintError("mpris: Emit Seeked", err)
	}
}

func (m *MprisPlayer) volumeChange(c *prop.Change) *dbus.Error {
	fVol, ok := c.Value.(float64)
	if !ok {
		return prop.ErrInvalidArg
	}
	m.player.SetVolume(fVol)
	m.logger.Printf("mpris: adjust volume %f", fVol)
	return nil
}

// rateChange snaps the requested rate to the nearest supported one.
func (m *MprisPlayer) rateChange(c *prop.Change) *dbus.Error {
	rate, ok := c.Value.(float64)
	if !ok || rate <= 0 {
		return prop.ErrInvalidArg
	}
	rate = m.player.SetPlaybackRate(rate)
	m.logger.Printf("mpris: playback rate %gx", rate)
	return nil
}

func (m *MprisPlayer) setTrack(id dbus.ObjectPath) {
	m.trackMu.Lock()
	defer m.trackMu.Unlock()
	m.trackId = id
}

func (m *MprisPlayer) currentTrack() dbus.ObjectPath {
	m.trackMu.Lock()
	defer m.trackMu.Unlock()
	return m.trackId
}

// OnEpisodeChange publishes metadata for the loaded episode.
func (m *MprisPlayer) OnEpisodeChange(episode podcast.Episode, author string, duration float64) {
	m.setTrack(trackObjectPath(episode.ID))
	m.props.SetMust(mprisPlayerIface, "Metadata", episodeMetadata(episode, author, duration))
}

// OnStateChange mirrors the controller state into the exported properties.
func (m *MprisPlayer) OnStateChange(st player.State) {
	m.setIfChanged("PlaybackStatus", playbackStatus(st))
	m.setIfChanged("Volume", st.Volume)
	m.setIfChanged("Rate", st.Rate)
	m.props.SetMust(mprisPlayerIface, "Position", int64(st.Position*usPerSecond))
}

func (m *MprisPlayer) setIfChanged(name string, value interface{}) {
	if current, err := m.props.Get(mprisPlayerIface, name); err == nil && current.Value() == value {
		return
	}
	m.props.SetMust(mprisPlayerIface, name, value)
}

const noTrack = dbus.ObjectPath("/org/mpris/MediaPlayer2/TrackList/NoTrack")

func trackObjectPath(id string) dbus.ObjectPath {
	if id == "" {
		return noTrack
	}
	var b strings.Builder
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return dbus.ObjectPath("/org/stpod/episode/" + b.String())
}

func playbackStatus(st player.State) string {
	switch {
	case st.IsPlaying:
		return "Playing"
	case st.Position > 0:
		return "Paused"
	default:
		return "Stopped"
	}
}

func episodeMetadata(episode podcast.Episode, author string, duration float64) map[string]dbus.Variant {
	artist := []string{}
	if author != "" {
		artist = []string{author}
	}
	metadata := map[string]dbus.Variant{
		"mpris:trackid":     dbus.MakeVariant(trackObjectPath(episode.ID)),
		"mpris:length":      dbus.MakeVariant(int64(duration * usPerSecond)),
		"xesam:title":       dbus.MakeVariant(episode.Title),
		"xesam:artist":      dbus.MakeVariant(artist),
		"xesam:trackNumber": dbus.MakeVariant(episode.Number),
	}
	if episode.ThumbnailURL != "" {
		metadata["mpris:artUrl"] = dbus.MakeVariant(episode.ThumbnailURL)
	}
	return metadata
}
