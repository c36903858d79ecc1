// =================================================================================
//
//			fox-ambience - https://www.foxhollow.cc/projects/fox-ambience/
//
//		 Fox Ambience is a terminal relaxation player that mixes tones, colored
//	  noise and looping soundscapes across independent mixer channels
//
//		 Copyright (c) 2025 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package display

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fox-ambience/audio"
	"fox-ambience/display/custom"
	"fox-ambience/display/theme"
	"fox-ambience/model"
	"fox-ambience/reaper"
	"fox-ambience/util"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

//
// constants
//

const (
	layoutMeterWidth            = 6
	layoutStatusItemHeaderWidth = 12
	layoutStatusColumnIndex     = 0
	layoutMeterColumnIndex      = 1
	layoutStatusGridLeftWidth   = 46
	layoutStatusGridRightWidth  = 50

	layoutStripWidth       = 14
	layoutTimerStateWidth  = 12
	layoutTimerPresetWidth = 16

	statusRowCount = 6
)

//
// variables
//

var (
	meterSteps = []int{
		0, -1, -2, -3, -4, -6, -8,
		-10, -12, -15, -18, -21, -24, -27,
		-30, -36, -42, -48, -54, -60}

	levelColors = map[int]tcell.Color{
		0:    theme.Red,
		-2:   theme.Pink,
		-6:   theme.Yellow,
		-18:  theme.Green,
		-150: theme.SoftGreen,
	}
)

//
// types
//

type Tui struct {
	app             *cview.Application
	shutdownChannel chan bool

	commandHandler func(command model.UiCommand)

	lock            sync.RWMutex
	started         bool
	viewMode        ViewMode
	selectedChannel int

	errorCount int

	gridPlayerRoot *cview.Grid
	gridMixerRoot  *cview.Grid

	playerMeter   *custom.LevelMeter
	timerField    *custom.TimerField
	elementStrips []*custom.ChannelStrip

	tvLogs           *cview.TextView
	tvEngineStatus   *custom.StatusText
	tvViewMode       *custom.StatusText
	tvPresetName     *custom.StatusText
	tvSound          *custom.StatusText
	tvDetail         *custom.StatusText
	tvVolume         *custom.StatusText
	tvBackend        *custom.StatusText
	tvFormat         *custom.StatusText
	tvSessionTime    *custom.StatusText
	tvErrorCount     *custom.StatusText
	statusMeterAudio *custom.StatusMeter
}

//
// constructor
//

func NewTui() *Tui {
	tui := &Tui{
		shutdownChannel: make(chan bool, 1),
		errorCount:      0,
		selectedChannel: 1,
		elementStrips:   make([]*custom.ChannelStrip, 0),
	}

	return tui
}

//
// lifecycle managment
//

func (tui *Tui) Initalize() {
	tui.app = cview.NewApplication()
	defer tui.app.HandlePanic()

	tui.app.EnableMouse(true)

	gridStatus := tui.buildStatusGrid()

	//
	// shared log output view
	tui.tvLogs = cview.NewTextView()
	tui.tvLogs.SetPadding(0, 0, 0, 0)
	tui.tvLogs.SetDynamicColors(true)

	meterRowHeight := len(meterSteps) + 2

	//
	// player view root grid
	tui.gridPlayerRoot = cview.NewGrid()
	tui.gridPlayerRoot.SetPadding(0, 0, 0, 0)
	tui.gridPlayerRoot.SetColumns(-1)
	tui.gridPlayerRoot.SetBorders(true)
	tui.gridPlayerRoot.SetBordersColor(theme.BorderColor)
	tui.gridPlayerRoot.SetRows(statusRowCount, meterRowHeight, -1)
	tui.gridPlayerRoot.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	tui.gridPlayerRoot.AddItem(gridStatus, 0, 0, 1, 1, 0, 0, false)
	tui.gridPlayerRoot.AddItem(tui.buildPlayerView(), 1, 0, 1, 1, 0, 0, false)
	tui.gridPlayerRoot.AddItem(tui.tvLogs, 2, 0, 1, 1, 0, 0, true)

	//
	// mixer view root grid
	tui.gridMixerRoot = cview.NewGrid()
	tui.gridMixerRoot.SetPadding(0, 0, 0, 0)
	tui.gridMixerRoot.SetColumns(-1)
	tui.gridMixerRoot.SetBorders(true)
	tui.gridMixerRoot.SetBordersColor(theme.BorderColor)
	tui.gridMixerRoot.SetRows(statusRowCount, meterRowHeight, -1)
	tui.gridMixerRoot.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	tui.gridMixerRoot.AddItem(gridStatus, 0, 0, 1, 1, 0, 0, false)
	tui.gridMixerRoot.AddItem(tui.buildMixerView(), 1, 0, 1, 1, 0, 0, false)
	tui.gridMixerRoot.AddItem(tui.tvLogs, 2, 0, 1, 1, 0, 0, true)

	tui.app.SetRoot(tui.gridPlayerRoot, true)
}

func (tui *Tui) Start() {
	reaper.Register("tui")

	tui.lock.Lock()
	tui.started = true
	tui.lock.Unlock()

	go func() {
		defer tui.app.HandlePanic()

		// Capture user input
		tui.app.SetInputCapture(tui.eventHandler)

		if err := tui.app.Run(); err != nil {
			panic(err)
		}

		tui.shutdownChannel <- true
		reaper.Done("tui")
	}()

	go tui.excecuteLoop()
}

func (tui *Tui) Shutdown() {
	slog.Debug("Shutting down TUI")
	tui.app.Stop()

	slog.Debug("Waiting for TUI to shut down")
	tui.WaitForShutdown()
}

func (tui *Tui) IsShutdown() bool {
	return len(tui.shutdownChannel) > 0
}

func (tui *Tui) WaitForShutdown() {
	<-tui.shutdownChannel
}

func (tui *Tui) SetCommandHandler(handler func(command model.UiCommand)) {
	tui.commandHandler = handler
}

//
// private functions
//

func (tui *Tui) buildStatusGrid() *cview.Grid {
	statusRows := make([]int, statusRowCount)
	for i := range statusRowCount {
		statusRows[i] = 1
	}

	gridStatus := cview.NewGrid()
	gridStatus.SetPadding(0, 0, 1, 1)
	gridStatus.SetColumns(layoutStatusGridLeftWidth, layoutStatusGridRightWidth, -1)
	gridStatus.SetRows(statusRows...)
	gridStatus.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	// text status fields
	tui.tvEngineStatus = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Status", string(theme.RuneClock)+" Starting")
	tui.tvEngineStatus.SetColor(theme.Yellow)
	tui.tvViewMode = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "View", viewNames[ViewPlayer])
	tui.tvPresetName = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Preset", "")
	tui.tvSound = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Sound", "(none)")
	tui.tvDetail = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Detail", "")
	tui.tvVolume = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Volume", "+0 dB")

	gridStatus.AddItem(tui.tvEngineStatus.GetGrid(), 0, layoutStatusColumnIndex, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvViewMode.GetGrid(), 1, layoutStatusColumnIndex, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvPresetName.GetGrid(), 2, layoutStatusColumnIndex, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvSound.GetGrid(), 3, layoutStatusColumnIndex, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvDetail.GetGrid(), 4, layoutStatusColumnIndex, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvVolume.GetGrid(), 5, layoutStatusColumnIndex, 1, 1, 0, 0, false)

	tui.tvBackend = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Backend", "")
	tui.tvFormat = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Format", "Unknown")
	tui.tvSessionTime = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Session", "00:00:00.000")
	tui.tvErrorCount = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Errors", "0")
	tui.statusMeterAudio = custom.NewStatusMeter(layoutStatusItemHeaderWidth, "Audio Load", 0, "%")

	gridStatus.AddItem(tui.tvBackend.GetGrid(), 0, layoutMeterColumnIndex, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvFormat.GetGrid(), 1, layoutMeterColumnIndex, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvSessionTime.GetGrid(), 2, layoutMeterColumnIndex, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvErrorCount.GetGrid(), 3, layoutMeterColumnIndex, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.statusMeterAudio.GetGrid(), 4, layoutMeterColumnIndex, 1, 1, 0, 0, false)

	return gridStatus
}

func (tui *Tui) buildPlayerView() *cview.Grid {
	grid := cview.NewGrid()
	grid.SetPadding(0, 0, 0, 0)
	grid.SetColumns(5, layoutMeterWidth, -1)
	grid.SetRows(-1)
	grid.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	// meter step labels down the left edge
	meterStepLabel := cview.NewTextView()
	meterStepLabel.SetPadding(0, 0, 0, 0)

	meterStepLabel.Write([]byte(fmt.Sprintln()))
	for step := 0; step < len(meterSteps); step++ {
		meterStepLabel.Write([]byte(fmt.Sprintf("%3v\n", fmt.Sprintf("%d", meterSteps[step]))))
	}
	grid.AddItem(meterStepLabel, 0, 0, 1, 1, 0, 0, false)

	tui.playerMeter = custom.NewLevelMeter(meterSteps, levelColors)
	tui.playerMeter.SetBorder(false)
	tui.playerMeter.SetPadding(0, 0, 1, 1)
	tui.playerMeter.SetMinLevel(-150)
	tui.playerMeter.SetLevel(-99)
	tui.playerMeter.SetChannelLabel(string(theme.RuneNote))
	tui.playerMeter.SetActive(false)

	grid.AddItem(tui.playerMeter, 0, 1, 1, 1, 0, 0, false)

	// timer plus key help on the right
	rightGrid := cview.NewGrid()
	rightGrid.SetPadding(0, 0, 2, 1)
	rightGrid.SetColumns(-1)
	rightGrid.SetRows(1, 1, -1)
	rightGrid.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	tui.timerField = custom.NewTimerField(layoutTimerStateWidth, layoutTimerPresetWidth)
	rightGrid.AddItem(tui.timerField.GetGrid(), 0, 0, 1, 1, 0, 0, false)

	helpView := cview.NewTextView()
	helpView.SetPadding(0, 0, 0, 0)
	helpView.SetTextColor(theme.Gray)
	helpView.Write([]byte("space play/stop   n/p sound   up/down volume\n"))
	helpView.Write([]byte("m mute   t timer preset   tab mixer   q quit"))
	rightGrid.AddItem(helpView, 2, 0, 1, 1, 0, 0, false)

	grid.AddItem(rightGrid, 0, 2, 1, 1, 0, 0, false)

	return grid
}

func (tui *Tui) buildMixerView() *cview.Grid {
	grid := cview.NewGrid()
	grid.SetPadding(0, 0, 0, 0)
	grid.SetRows(-1, 1)
	grid.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	stripColumns := make([]int, audio.MixerChannelCount+2)
	stripColumns[0] = -1
	for i := range audio.MixerChannelCount {
		stripColumns[i+1] = layoutStripWidth
	}
	stripColumns[audio.MixerChannelCount+1] = -1

	grid.SetColumns(stripColumns...)

	tui.elementStrips = make([]*custom.ChannelStrip, audio.MixerChannelCount)

	for i := range audio.MixerChannelCount {
		channelIndex := i + 1

		strip := custom.NewChannelStrip(fmt.Sprintf("CH %d", channelIndex), audio.MinVolumeDb, audio.MaxVolumeDb)
		strip.SetPadding(0, 0, 1, 1)

		if i%2 == 1 {
			strip.SetBackgroundColor(theme.StripAlternateBackgroundColor)
		}

		strip.SetSelectedFunc(func() {
			tui.selectStrip(channelIndex)
		})
		strip.SetToggleFunc(func() {
			tui.emit(model.UiCommand{Type: model.CmdTogglePlay, Channel: channelIndex})
		})
		strip.SetVolumeFunc(func(volumeDb float64) {
			tui.emit(model.UiCommand{Type: model.CmdSetVolume, Channel: channelIndex, Value: volumeDb})
		})
		strip.SetAdjustFunc(func(deltaDb float64) {
			commandType := model.CmdVolumeUp
			if deltaDb < 0 {
				commandType = model.CmdVolumeDown
			}

			tui.emit(model.UiCommand{Type: commandType, Channel: channelIndex})
		})

		tui.elementStrips[i] = strip
		grid.AddItem(strip, 0, i+1, 1, 1, 0, 0, false)
	}

	tui.elementStrips[0].SetSelected(true)

	helpView := cview.NewTextView()
	helpView.SetPadding(0, 0, 1, 1)
	helpView.SetTextColor(theme.Gray)
	helpView.Write([]byte("1-4/left/right select   space play/stop   n/p sound   up/down volume   m mute   x remove   tab player"))
	grid.AddItem(helpView, 1, 0, 1, audio.MixerChannelCount+2, 0, 0, false)

	return grid
}

func (tui *Tui) eventHandler(event *tcell.EventKey) *tcell.EventKey {
	// Anything handled here will be executed on the main thread
	switch event.Key() {
	case tcell.KeyCtrlC:
		go reaper.Reap()
		return nil

	case tcell.KeyTAB:
		tui.emit(model.UiCommand{Type: model.CmdToggleView})
		return nil

	case tcell.KeyUp:
		tui.emit(model.UiCommand{Type: model.CmdVolumeUp, Channel: tui.targetChannel()})
		return nil

	case tcell.KeyDown:
		tui.emit(model.UiCommand{Type: model.CmdVolumeDown, Channel: tui.targetChannel()})
		return nil

	case tcell.KeyLeft:
		if tui.currentView() == ViewMixer {
			tui.moveSelection(-1)
		} else {
			tui.emit(model.UiCommand{Type: model.CmdPrevSound, Channel: tui.targetChannel()})
		}
		return nil

	case tcell.KeyRight:
		if tui.currentView() == ViewMixer {
			tui.moveSelection(1)
		} else {
			tui.emit(model.UiCommand{Type: model.CmdNextSound, Channel: tui.targetChannel()})
		}
		return nil

	case tcell.KeyDelete:
		if tui.currentView() == ViewMixer {
			tui.emit(model.UiCommand{Type: model.CmdRemove, Channel: tui.targetChannel()})
		}
		return nil
	}

	switch event.Rune() {
	case ' ':
		tui.emit(model.UiCommand{Type: model.CmdTogglePlay, Channel: tui.targetChannel()})
		return nil

	case 'n':
		tui.emit(model.UiCommand{Type: model.CmdNextSound, Channel: tui.targetChannel()})
		return nil

	case 'p':
		tui.emit(model.UiCommand{Type: model.CmdPrevSound, Channel: tui.targetChannel()})
		return nil

	case '+', '=':
		tui.emit(model.UiCommand{Type: model.CmdVolumeUp, Channel: tui.targetChannel()})
		return nil

	case '-':
		tui.emit(model.UiCommand{Type: model.CmdVolumeDown, Channel: tui.targetChannel()})
		return nil

	case 'm':
		tui.emit(model.UiCommand{Type: model.CmdToggleMute, Channel: tui.targetChannel()})
		return nil

	case 't':
		if tui.currentView() == ViewPlayer {
			tui.emit(model.UiCommand{Type: model.CmdCycleTimer})
		}
		return nil

	case 'x':
		if tui.currentView() == ViewMixer {
			tui.emit(model.UiCommand{Type: model.CmdRemove, Channel: tui.targetChannel()})
		}
		return nil

	case '1', '2', '3', '4':
		if tui.currentView() == ViewMixer {
			tui.selectStrip(int(event.Rune() - '0'))
		}
		return nil

	case 'q':
		tui.emit(model.UiCommand{Type: model.CmdQuit})
		return nil
	}

	return event
}

func (tui *Tui) excecuteLoop() {
	defer tui.app.HandlePanic()

	slog.Debug("TUI loop started")

	for {
		if len(tui.shutdownChannel) > 0 {
			slog.Info("TUI shutting down")
			tui.app.QueueUpdateDraw(func() {})
			break
		}

		tui.app.QueueUpdateDraw(func() {})
		time.Sleep(50 * time.Millisecond)
	}
}

func (tui *Tui) emit(command model.UiCommand) {
	if tui.commandHandler != nil {
		tui.commandHandler(command)
	}
}

func (tui *Tui) currentView() ViewMode {
	tui.lock.RLock()
	defer tui.lock.RUnlock()

	return tui.viewMode
}

// targetChannel is the channel commands apply to: the player slot in player
// view, the selected strip in mixer view.
func (tui *Tui) targetChannel() int {
	tui.lock.RLock()
	defer tui.lock.RUnlock()

	if tui.viewMode == ViewPlayer {
		return audio.PlayerChannel
	}

	return tui.selectedChannel
}

func (tui *Tui) selectStrip(channelIndex int) {
	if channelIndex < 1 || channelIndex > audio.MixerChannelCount {
		return
	}

	tui.lock.Lock()
	tui.selectedChannel = channelIndex
	tui.lock.Unlock()

	for i, strip := range tui.elementStrips {
		strip.SetSelected(i+1 == channelIndex)
	}
}

func (tui *Tui) moveSelection(delta int) {
	tui.lock.RLock()
	next := tui.selectedChannel + delta
	tui.lock.RUnlock()

	if next < 1 {
		next = audio.MixerChannelCount
	} else if next > audio.MixerChannelCount {
		next = 1
	}

	tui.selectStrip(next)
}

func (tui *Tui) updateMeter(meter *custom.StatusMeter, value, warnPct, cautionPct int) {
	color := tcell.ColorDefault

	if value <= warnPct {
		color = theme.Green
	} else if value <= cautionPct {
		color = theme.Yellow
	} else {
		color = theme.Red
	}

	meter.SetCurrentValue(value)
	meter.SetColor(color)
}

//
// status update functions
//

func (tui *Tui) SetEngineStatus(status Status) {
	var icon rune
	var color tcell.Color

	switch status {
	case StatusStarting:
		icon = theme.RuneClock
		color = theme.Yellow
	case StatusStopped:
		icon = theme.RuneStop
		color = theme.Gray
	case StatusPlaying:
		icon = theme.RunePlay
		color = theme.Green
	case StatusLoading:
		icon = theme.RuneClock
		color = theme.Yellow
	case StatusShuttingDown:
		icon = theme.RuneClock
		color = theme.Yellow
	case StatusFailed:
		icon = theme.RuneFailed
		color = theme.Red
	default:
		icon = theme.RuneFailed
		color = theme.Red
	}

	tui.tvEngineStatus.SetCurrentValue(string(icon) + " " + statusNames[status])
	tui.tvEngineStatus.SetColor(color)
}

func (tui *Tui) SetViewMode(mode ViewMode) {
	tui.lock.Lock()
	tui.viewMode = mode
	started := tui.started
	tui.lock.Unlock()

	tui.tvViewMode.SetCurrentValue(viewNames[mode])

	root := tui.gridPlayerRoot
	if mode == ViewMixer {
		root = tui.gridMixerRoot
	}

	if !started {
		tui.app.SetRoot(root, true)
		return
	}

	tui.app.QueueUpdateDraw(func() {
		tui.app.SetRoot(root, true)
	})
}

func (tui *Tui) SetAudioFormat(format string) {
	tui.tvFormat.SetCurrentValue(format)
}

func (tui *Tui) SetBackendName(value string) {
	tui.tvBackend.SetCurrentValue(value)
}

func (tui *Tui) SetPresetName(value string) {
	tui.tvPresetName.SetCurrentValue(value)
}

func (tui *Tui) SetSessionTime(seconds float64) {
	tui.tvSessionTime.SetCurrentValue(util.FormatDuration(seconds))
}

func (tui *Tui) SetTimerStatus(status model.TimerStatus) {
	tui.timerField.SetStatus(status)
}

func (tui *Tui) IncrementErrorCount() {
	tui.errorCount++
	tui.tvErrorCount.SetCurrentValue(fmt.Sprintf("%d", tui.errorCount))

	if tui.errorCount > 0 {
		tui.tvErrorCount.SetColor(theme.Red)
	}
}

//
// channel updates
//

func (tui *Tui) UpdateChannels(channels []model.ChannelStatus) {
	target := tui.targetChannel()

	if target >= 0 && target < len(channels) {
		status := channels[target]

		soundLabel := status.Label
		if soundLabel == "" {
			soundLabel = "(none)"
		}

		tui.tvSound.SetCurrentValue(soundLabel)
		tui.tvDetail.SetCurrentValue(status.Detail)

		volumeText := fmt.Sprintf("%+.0f dB", status.VolumeDb)
		if status.Muted {
			volumeText += " " + string(theme.RuneMuted)
			tui.tvVolume.SetColor(theme.Red)
		} else {
			tui.tvVolume.SetColor(tcell.ColorDefault)
		}
		tui.tvVolume.SetCurrentValue(volumeText)
	}

	if len(channels) > audio.PlayerChannel {
		player := channels[audio.PlayerChannel]
		tui.playerMeter.SetActive(player.Playing && !player.Muted)
	}

	for i, strip := range tui.elementStrips {
		channelIndex := i + 1
		if channelIndex < len(channels) {
			strip.Update(channels[channelIndex])
		}
	}
}

func (tui *Tui) UpdateSignalLevels(levels []model.SignalLevel) {
	if len(levels) > audio.PlayerChannel {
		tui.playerMeter.SetLevel(levels[audio.PlayerChannel].Instant)
	}

	for i, strip := range tui.elementStrips {
		channelIndex := i + 1
		if channelIndex < len(levels) {
			strip.SetLevel(levels[channelIndex].Instant, levels[channelIndex].Peak)
		}
	}
}

//
// logging
//

func (tui *Tui) WriteLevelLog(level slog.Level, message string) {
	color := "-"

	if level == slog.LevelWarn {
		color = "#" + theme.YellowRGB
	} else if level == slog.LevelError {
		color = "#" + theme.RedRGB + "::b"
	} else if level == slog.LevelDebug {
		color = "#" + theme.GrayRGB
	}

	tui.tvLogs.Write([]byte(fmt.Sprintf("[%s][%s[] [%s[] %s[-:-:-]\n", color, time.Now().Format("2006-01-02 15:04:05"), level.String(), message)))
}

//
// status meters
//

func (tui *Tui) SetAudioLoad(percent int) {
	tui.updateMeter(tui.statusMeterAudio, percent, 20, 50)
}
