// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"image"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/stpod/logger"
	"github.com/spezifisch/stpod/mpvplayer"
	"github.com/spezifisch/stpod/player"
	"github.com/spezifisch/stpod/podcast"
	"github.com/spezifisch/stpod/remote"
)

// struct contains all the updatable elements of the Ui
type Ui struct {
	app   *tview.Application
	pages *tview.Pages

	// top bar
	startStopStatus *tview.TextView
	playerStatus    *tview.TextView

	// bottom bar
	menuWidget *MenuWidget

	playerPage   *PlayerPage
	episodesPage *EpisodesPage
	aboutPage    *AboutPage
	logPage      *LogPage

	// modals
	messageBox *tview.Modal
	helpModal  tview.Primitive
	helpWidget *HelpWidget

	keys     keyBindings
	releases []func()

	eventLoop *eventLoop
	artwork   *Cache[image.Image]

	episodeMu sync.Mutex
	current   podcast.Episode

	skip        time.Duration
	volume      float64
	continuous  bool
	hideArtwork bool

	catalog     *podcast.Catalog
	controller  *player.Controller
	media       *mpvplayer.Player
	mprisPlayer *remote.MprisPlayer
	logger      *logger.Logger
}

const (
	// page identifiers (use these instead of hardcoding page names for showing/hiding)
	PagePlayer   = "player"
	PageEpisodes = "episodes"
	PageAbout    = "about"
	PageLog      = "log"

	PageMessageBox = "messageBox"
	PageHelpBox    = "helpBox"
)

func InitGui(catalog *podcast.Catalog,
	cfg *Config,
	controller *player.Controller,
	media *mpvplayer.Player,
	logger *logger.Logger,
	mprisPlayer *remote.MprisPlayer) (ui *Ui) {
	ui = &Ui{
		eventLoop: nil, // initialized by initEventLoops()

		skip:        cfg.Player.Skip(),
		volume:      cfg.Player.Volume,
		continuous:  cfg.Player.Continuous,
		hideArtwork: cfg.UI.HideArtwork,

		catalog:     catalog,
		controller:  controller,
		media:       media,
		logger:      logger,
		mprisPlayer: mprisPlayer,
	}

	ui.initEventLoops()

	ui.app = tview.NewApplication()
	ui.pages = tview.NewPages()

	ui.artwork = newArtworkCache(cfg.UI.ArtworkCacheSize, func(url string, img image.Image) {
		ui.app.QueueUpdateDraw(func() {
			ui.playerPage.SetArtwork(url, img)
		})
	}, logger)

	// status text at the top
	ui.startStopStatus = tview.NewTextView().SetText(formatStartStopStatus(player.State{}, podcast.Episode{})).
		SetTextAlign(tview.AlignLeft).
		SetDynamicColors(true).
		SetScrollable(false)
	ui.startStopStatus.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		return action, nil
	})

	ui.playerStatus = tview.NewTextView().SetText(formatPlayerStatus(controller.State())).
		SetTextAlign(tview.AlignRight).
		SetDynamicColors(true).
		SetScrollable(false)

	ui.menuWidget = ui.createMenuWidget()
	ui.helpWidget = ui.createHelpWidget()

	// message box for small notes
	ui.messageBox = tview.NewModal().
		SetText("hi there").
		SetBackgroundColor(tcell.ColorBlack)
	ui.messageBox.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		ui.pages.HidePage(PageMessageBox)
		return event
	})

	// help box modal
	ui.helpModal = makeModal(ui.helpWidget.Root, 80, 22)
	ui.helpWidget.Root.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Belts and suspenders. After the dialog is shown, this function will
		// _always_ be called. Therefore, check to ensure it's actually visible
		// before triggering on events. Also, don't close on every key, but only
		// ESC, like the help text says.
		if ui.helpWidget.visible && (event.Key() == tcell.KeyEscape) {
			ui.CloseHelp()
		}
		return event
	})

	// top bar: status text
	topBarFlex := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(ui.startStopStatus, 0, 1, false).
		AddItem(ui.playerStatus, 22, 0, false)

	ui.playerPage = ui.createPlayerPage()
	ui.episodesPage = ui.createEpisodesPage()
	ui.aboutPage = ui.createAboutPage()
	ui.logPage = ui.createLogPage()

	ui.pages.AddPage(PagePlayer, ui.playerPage.Root, true, true).
		AddPage(PageEpisodes, ui.episodesPage.Root, true, false).
		AddPage(PageAbout, ui.aboutPage.Root, true, false).
		AddPage(PageLog, ui.logPage.Root, true, false).
		AddPage(PageMessageBox, ui.messageBox, true, false).
		AddPage(PageHelpBox, ui.helpModal, true, false)

	rootFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(topBarFlex, 1, 0, false).
		AddItem(ui.pages, 0, 1, true).
		AddItem(ui.menuWidget.Root, 1, 0, false)

	// main input handler; the newest binding sees events first
	rootFlex.SetInputCapture(ui.keys.Handle)
	ui.releases = append(ui.releases,
		ui.keys.Bind(ui.handlePageInput),
		ui.keys.Bind(ui.handlePlayerInput),
	)

	ui.app.SetRoot(rootFlex, true).
		SetFocus(rootFlex).
		EnableMouse(true).
		SetMouseCapture(ui.handleMouse)

	return ui
}

func (ui *Ui) Run() error {
	ui.releases = append(ui.releases,
		ui.controller.Attach(ui.media),
		ui.controller.Subscribe(ui.eventLoop.pushState),
		ui.media.Subscribe(episodeEndWatcher{ended: ui.eventLoop.ended}),
	)
	ui.controller.SetVolume(ui.volume)
	ui.controller.Controls().OnChange(ui.eventLoop.pushControlsVisible)

	// run gui/background event handler
	ui.runEventLoops()

	// run mpv event handler
	go ui.media.EventLoop()

	if len(ui.catalog.Episodes) > 0 {
		ui.PlayEpisode(ui.catalog.Episodes[0].ID, false)
	}

	// gui main loop (blocking)
	return ui.app.Run()
}

func (ui *Ui) ShowHelp() {
	activePage := ui.menuWidget.GetActivePage()
	ui.helpWidget.RenderHelp(activePage)

	ui.pages.ShowPage(PageHelpBox)
	ui.pages.SendToFront(PageHelpBox)
	ui.app.SetFocus(ui.helpModal)
	ui.helpWidget.visible = true
}

func (ui *Ui) CloseHelp() {
	ui.helpWidget.visible = false
	ui.pages.HidePage(PageHelpBox)
}

func (ui *Ui) showMessageBox(text string) {
	ui.pages.ShowPage(PageMessageBox)
	ui.messageBox.SetText(text)
	ui.app.SetFocus(ui.messageBox)
}

func (ui *Ui) currentEpisode() podcast.Episode {
	ui.episodeMu.Lock()
	defer ui.episodeMu.Unlock()
	return ui.current
}

func (ui *Ui) setCurrentEpisode(episode podcast.Episode) {
	ui.episodeMu.Lock()
	defer ui.episodeMu.Unlock()
	ui.current = episode
}

// renderState draws a controller snapshot; call on the ui goroutine.
func (ui *Ui) renderState(st player.State) {
	chapter, ok := ui.controller.CurrentChapter()
	if !ok {
		chapter = -1
	}
	ui.playerStatus.SetText(formatPlayerStatus(st))
	ui.startStopStatus.SetText(formatStartStopStatus(st, ui.currentEpisode()))
	ui.playerPage.Update(st, ui.controller.Chapters(), chapter)
}
