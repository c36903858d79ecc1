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
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"fox-ambience/model"
)

//
// types
//

// JsonUI writes one JSON object per line to the provided handle, intended for
// wrapping by another process. Input commands are not read back in this mode,
// so the command handler is stored but never fired.
type JsonUI struct {
	shutdownChannel chan struct{}
	shutdownOnce    sync.Once

	output *os.File

	commandHandler func(command model.UiCommand)

	lock sync.Mutex

	statusEngine Status
	statusView   ViewMode

	statusBackend     string
	statusFormat      string
	statusPresetName  string
	statusSessionTime float64
	statusErrorCount  int

	metricAudioLoadPct int

	channels     []model.ChannelStatus
	signalLevels []model.SignalLevel
	timerStatus  model.TimerStatus
}

//
// constructor
//

func NewJsonUI(output *os.File) *JsonUI {
	jsonUi := &JsonUI{
		shutdownChannel: make(chan struct{}),

		output: output,

		statusEngine: StatusStarting,
		statusView:   ViewPlayer,

		statusBackend:     "",
		statusFormat:      "",
		statusPresetName:  "",
		statusSessionTime: 0.0,
		statusErrorCount:  0,

		metricAudioLoadPct: 0,

		channels:     make([]model.ChannelStatus, 0),
		signalLevels: make([]model.SignalLevel, 0),
	}

	return jsonUi
}

//
// lifecycle managment
//

func (j *JsonUI) Initalize() {
	// nothing to do here
}

func (j *JsonUI) Start() {
	go j.excecuteLoop()
}

func (j *JsonUI) excecuteLoop() {
	slog.Debug("JSON loop started")

	for {
		if j.IsShutdown() {
			slog.Info("JSON UI shutting down")
			break
		}

		j.printJson(j.getStatus())
		j.printJson(j.getChannels())
		j.printJson(j.getTimer())
		j.printJson(j.getLevels())

		time.Sleep(1 * time.Second)
	}
}

// Shutdown closes the shutdown channel so every waiter and the print loop
// observe it, a consumed token would only reach one of them. Safe to call
// more than once.
func (j *JsonUI) Shutdown() {
	slog.Debug("Shutting down JSON UI")

	j.shutdownOnce.Do(func() {
		close(j.shutdownChannel)
	})
}

func (j *JsonUI) IsShutdown() bool {
	select {
	case <-j.shutdownChannel:
		return true
	default:
		return false
	}
}

func (j *JsonUI) WaitForShutdown() {
	<-j.shutdownChannel
}

func (j *JsonUI) SetCommandHandler(handler func(command model.UiCommand)) {
	j.commandHandler = handler
}

//
// status update functions
//

func (j *JsonUI) SetEngineStatus(status Status) {
	j.lock.Lock()
	defer j.lock.Unlock()

	j.statusEngine = status
}

func (j *JsonUI) SetViewMode(mode ViewMode) {
	j.lock.Lock()
	defer j.lock.Unlock()

	j.statusView = mode
}

func (j *JsonUI) SetAudioFormat(format string) {
	j.lock.Lock()
	defer j.lock.Unlock()

	j.statusFormat = format
}

func (j *JsonUI) SetBackendName(value string) {
	j.lock.Lock()
	defer j.lock.Unlock()

	j.statusBackend = value
}

func (j *JsonUI) SetPresetName(value string) {
	j.lock.Lock()
	defer j.lock.Unlock()

	j.statusPresetName = value
}

func (j *JsonUI) SetSessionTime(seconds float64) {
	j.lock.Lock()
	defer j.lock.Unlock()

	j.statusSessionTime = seconds
}

func (j *JsonUI) SetTimerStatus(status model.TimerStatus) {
	j.lock.Lock()
	defer j.lock.Unlock()

	j.timerStatus = status
}

func (j *JsonUI) IncrementErrorCount() {
	j.lock.Lock()
	defer j.lock.Unlock()

	j.statusErrorCount += 1
}

func (j *JsonUI) UpdateChannels(channels []model.ChannelStatus) {
	j.lock.Lock()
	defer j.lock.Unlock()

	j.channels = make([]model.ChannelStatus, len(channels))
	copy(j.channels, channels)
}

func (j *JsonUI) UpdateSignalLevels(levels []model.SignalLevel) {
	j.lock.Lock()
	defer j.lock.Unlock()

	j.signalLevels = make([]model.SignalLevel, len(levels))
	copy(j.signalLevels, levels)
}

func (j *JsonUI) WriteLevelLog(level slog.Level, message string) {
	logObj := JsonLog{
		MessageType: "log",

		Date:    time.Now().Format(time.RFC3339),
		Level:   level.String(),
		Message: message,
	}

	j.printJson(logObj)
}

func (j *JsonUI) SetAudioLoad(percent int) {
	j.lock.Lock()
	defer j.lock.Unlock()

	j.metricAudioLoadPct = percent
}

//
// private functions
//

func (j *JsonUI) printJson(v any) {
	jsonBytes, err := json.Marshal(v)

	if err != nil {
		slog.Error("Error marshalling to JSON: " + err.Error())
	}

	fmt.Fprintln(j.output, string(jsonBytes))
}

func (j *JsonUI) getStatus() *JsonStatus {
	j.lock.Lock()
	defer j.lock.Unlock()

	jsonStatus := &JsonStatus{
		MessageType: "status",

		Status: statusNames[j.statusEngine],
		View:   viewNames[j.statusView],

		Backend:     j.statusBackend,
		Format:      j.statusFormat,
		PresetName:  j.statusPresetName,
		SessionTime: j.statusSessionTime,
		ErrorCount:  j.statusErrorCount,

		AudioLoadPct: j.metricAudioLoadPct,
	}

	return jsonStatus
}

func (j *JsonUI) getChannels() *JsonChannels {
	j.lock.Lock()
	defer j.lock.Unlock()

	jsonChannels := &JsonChannels{
		MessageType: "channels",

		Channels: make([]JsonChannel, len(j.channels)),
	}

	for i, channel := range j.channels {
		jsonChannels.Channels[i].Index = channel.Index
		jsonChannels.Channels[i].Label = channel.Label
		jsonChannels.Channels[i].Detail = channel.Detail
		jsonChannels.Channels[i].Playing = channel.Playing
		jsonChannels.Channels[i].Loading = channel.Loading
		jsonChannels.Channels[i].Pending = channel.Pending
		jsonChannels.Channels[i].Muted = channel.Muted
		jsonChannels.Channels[i].VolumeDb = channel.VolumeDb
	}

	return jsonChannels
}

func (j *JsonUI) getTimer() *JsonTimer {
	j.lock.Lock()
	defer j.lock.Unlock()

	jsonTimer := &JsonTimer{
		MessageType: "timer",

		State:   j.timerStatus.State.String(),
		Preset:  j.timerStatus.Preset,
		Seconds: j.timerStatus.Seconds,
	}

	return jsonTimer
}

func (j *JsonUI) getLevels() *JsonLevels {
	j.lock.Lock()
	defer j.lock.Unlock()

	jsonLevels := &JsonLevels{
		MessageType: "levels",

		Channels: make([]JsonLevelChannel, len(j.signalLevels)),
	}

	for i, level := range j.signalLevels {
		name := fmt.Sprintf("ch%d", i)
		if i == 0 {
			name = "player"
		}

		jsonLevels.Channels[i].Name = name
		jsonLevels.Channels[i].Level = level.Instant
		jsonLevels.Channels[i].Peak = level.Peak
	}

	return jsonLevels
}
