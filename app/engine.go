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
package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"fox-ambience/audio"
	"fox-ambience/display"
	"fox-ambience/model"
	"fox-ambience/power"
	"fox-ambience/reaper"
	"fox-ambience/shared"
	"fox-ambience/util"
)

// volumeStepDb is how far one up/down keypress moves the fader
const volumeStepDb = 2.0

type displayObj struct {
	ui display.UI
}

var (
	displayHandle displayObj
	engineHandle  *audio.Engine
	sleepTimer    *audio.SleepTimer
	wakeLock      *power.WakeLock

	catalogSounds []model.SoundDefinition

	// dispatch loop state, only the command dispatch goroutine touches these
	selectedIndex   [audio.ChannelCount]int
	currentViewMode display.ViewMode

	commandChannel = make(chan model.UiCommand, 32)
)

func ConfigureTextLogger(level slog.Level) {
	// text logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func ConfigureUiLogger(level slog.Level) {
	handler := shared.NewUiLogHandler(displayHandle.ui, level, func(message string) {
		displayHandle.ui.IncrementErrorCount()
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	shared.HijackLogging()
	shared.EnableSlogLogging()
}

func runEngine(config *model.Config) {
	catalog, err := util.LoadCatalog(config)
	if err != nil {
		slog.Error("Failed to load sound catalog: " + err.Error())
		os.Exit(1)
	}
	catalogSounds = catalog

	if config.OutputType == model.OutputJSON {
		displayHandle.ui = display.NewJsonUI(os.Stdout)
	} else {
		displayHandle.ui = display.NewTui()
	}

	displayHandle.ui.Initalize()
	displayHandle.ui.SetEngineStatus(display.StatusStarting)
	displayHandle.ui.SetCommandHandler(queueUiCommand)
	displayHandle.ui.Start()
	reaper.Callback("ui", displayHandle.ui.Shutdown)

	ConfigureUiLogger(slog.Level(config.LogLevel))

	shared.CatchSigint(func() {
		slog.Info("Caught sigint, calling reaper")
		reaper.Reap()
	})

	// simulation animates the meters without opening an audio device
	if config.SimulationOptions.EnableSimulation {
		config.Backend = "none"
	}

	engineHandle = audio.NewEngine(config)
	reaper.Callback("engine", engineHandle.Close)

	wakeLock = power.NewWakeLock()
	reaper.Callback("wake lock", wakeLock.Release)

	sleepTimer = audio.NewSleepTimer(func() {
		slog.Info("Sleep timer elapsed, stopping playback")
		engineHandle.Stop(audio.PlayerChannel)
	})

	if config.TimerSeconds > 0 {
		if err := sleepTimer.SetPreset(config.TimerSeconds); err != nil {
			slog.Error("Invalid timer duration: " + err.Error())
		}
	}

	sampleRateStr := fmt.Sprintf("%g", float64(config.SampleRate)/1000.0)
	displayHandle.ui.SetAudioFormat(fmt.Sprintf("32bit float / %sKHz", sampleRateStr))
	displayHandle.ui.SetBackendName(config.Backend)
	displayHandle.ui.SetViewMode(currentViewMode)

	if config.PresetName != "" {
		applyPresetByName(config.PresetName)
	}

	if config.SoundLabel != "" {
		autoplaySound(config.SoundLabel)
	}

	statsShutdownChan := initStatistics(config)
	reaper.Callback("stats", func() { statsShutdownChan <- true })

	startCommandDispatch()
	startTimerTick(statsShutdownChan)

	if config.SimulationOptions.EnableSimulation {
		startSimulation(config.SimulationOptions)
	}

	reaper.Callback("shutdown status", func() {
		displayHandle.ui.SetEngineStatus(display.StatusShuttingDown)
	})
	reaper.Wait()
}

//
// command dispatch
//

// queueUiCommand is called from the display's input goroutine, commands are
// handed to the dispatch loop so input handling never blocks on the engine.
func queueUiCommand(command model.UiCommand) {
	commandChannel <- command
}

func startCommandDispatch() {
	reaper.Register("command dispatch")

	go func() {
		for {
			select {
			case command := <-commandChannel:
				dispatchCommand(command)

			case <-time.After(100 * time.Millisecond):
				if reaper.Reaped() {
					reaper.Done("command dispatch")
					return
				}
			}
		}
	}()
}

// startTimerTick drives the sleep timer from a single one second loop, the
// timer itself owns no clock. A countdown that loses its sound, for example
// after a failed file load, is returned to idle here.
func startTimerTick(shutdownChan chan bool) {
	processOnInterval("timer tick", shutdownChan, 1000, func() {
		playerStatus := engineHandle.ChannelStatus(audio.PlayerChannel)
		timerStatus := sleepTimer.Status()

		if timerStatus.State != model.TimerIdle && !playerStatus.Playing && !playerStatus.Loading {
			sleepTimer.End()
			return
		}

		if playerStatus.Playing || playerStatus.Loading {
			sleepTimer.Tick()
		}
	})
}

func dispatchCommand(command model.UiCommand) {
	switch command.Type {
	case model.CmdTogglePlay:
		togglePlay(command.Channel)

	case model.CmdNextSound:
		cycleSound(command.Channel, 1)

	case model.CmdPrevSound:
		cycleSound(command.Channel, -1)

	case model.CmdVolumeUp:
		logCommandError(engineHandle.AdjustVolume(command.Channel, volumeStepDb))

	case model.CmdVolumeDown:
		logCommandError(engineHandle.AdjustVolume(command.Channel, -volumeStepDb))

	case model.CmdSetVolume:
		logCommandError(engineHandle.SetVolume(command.Channel, command.Value))

	case model.CmdToggleMute:
		logCommandError(engineHandle.ToggleMute(command.Channel))

	case model.CmdRemove:
		logCommandError(engineHandle.Remove(command.Channel))

		if command.Channel == audio.PlayerChannel {
			sleepTimer.End()
		}

	case model.CmdCycleTimer:
		preset := sleepTimer.CyclePreset()

		if preset == 0 {
			slog.Info("Sleep timer disabled, playback will count up")
		} else {
			slog.Info("Sleep timer set to " + util.FormatTimer(preset))
		}

	case model.CmdToggleView:
		toggleView()

	case model.CmdQuit:
		go reaper.Reap()
	}
}

func togglePlay(channelIndex int) {
	status := engineHandle.ChannelStatus(channelIndex)

	if status.Playing || status.Loading {
		logCommandError(engineHandle.Stop(channelIndex))

		if channelIndex == audio.PlayerChannel {
			sleepTimer.End()
		}
		return
	}

	// nothing picked yet, start from the current catalog position
	if status.Label == "" {
		if err := engineHandle.Select(channelIndex, catalogSounds[selectedIndex[channelIndex]]); err != nil {
			slog.Error(err.Error())
			return
		}
	}

	if err := engineHandle.TogglePlay(channelIndex); err != nil {
		slog.Error(err.Error())
		return
	}

	if channelIndex == audio.PlayerChannel {
		sleepTimer.Start()
	}
}

func cycleSound(channelIndex int, step int) {
	if channelIndex < 0 || channelIndex >= audio.ChannelCount || len(catalogSounds) == 0 {
		return
	}

	count := len(catalogSounds)
	selectedIndex[channelIndex] = ((selectedIndex[channelIndex] + step) + count) % count

	logCommandError(engineHandle.Select(channelIndex, catalogSounds[selectedIndex[channelIndex]]))
}

func toggleView() {
	if currentViewMode == display.ViewPlayer {
		currentViewMode = display.ViewMixer
	} else {
		currentViewMode = display.ViewPlayer
	}

	displayHandle.ui.SetViewMode(currentViewMode)
}

func logCommandError(err error) {
	if err != nil {
		slog.Error(err.Error())
	}
}

//
// startup actions
//

// applyPresetByName loads a saved mixer scene and starts its channels. The app
// opens in mixer view so the user sees what the preset did.
func applyPresetByName(presetName string) {
	preset, err := util.ReadPreset(presetName)
	if err != nil {
		slog.Error(err.Error())
		return
	}

	for i, presetChannel := range preset.Channels {
		if i >= audio.MixerChannelCount {
			slog.Warn(fmt.Sprintf("Preset '%s' has more than %d channels, ignoring the rest", preset.Name, audio.MixerChannelCount))
			break
		}

		channelIndex := i + 1

		soundIndex := findSoundIndex(catalogSounds, presetChannel.Sound)
		if soundIndex < 0 {
			slog.Error(fmt.Sprintf("Preset '%s' references unknown sound '%s'", preset.Name, presetChannel.Sound))
			continue
		}

		selectedIndex[channelIndex] = soundIndex

		logCommandError(engineHandle.SetVolume(channelIndex, presetChannel.VolumeDb))
		logCommandError(engineHandle.SetMute(channelIndex, presetChannel.Muted))
		logCommandError(engineHandle.Load(channelIndex, catalogSounds[soundIndex]))
	}

	currentViewMode = display.ViewMixer
	displayHandle.ui.SetViewMode(currentViewMode)
	displayHandle.ui.SetPresetName(preset.Name)

	slog.Info(fmt.Sprintf("Applied preset '%s'", preset.Name))
}

func autoplaySound(soundLabel string) {
	soundIndex := findSoundIndex(catalogSounds, soundLabel)
	if soundIndex < 0 {
		slog.Error(fmt.Sprintf("Unknown sound '%s', see 'fox-ambience sounds' for the catalog", soundLabel))
		return
	}

	selectedIndex[audio.PlayerChannel] = soundIndex

	if err := engineHandle.Load(audio.PlayerChannel, catalogSounds[soundIndex]); err != nil {
		slog.Error(err.Error())
		return
	}

	sleepTimer.Start()
}

func findSoundIndex(catalog []model.SoundDefinition, label string) int {
	for i, definition := range catalog {
		if strings.EqualFold(definition.Label, label) {
			return i
		}
	}

	return -1
}
