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
	"log/slog"

	"fox-ambience/model"
)

// UI is the surface the app drives. Displays never touch the audio engine,
// user input comes back out through the command handler and the app decides
// what to do with it.
type UI interface {
	Initalize()
	Start()
	Shutdown()
	IsShutdown() bool
	WaitForShutdown()

	SetCommandHandler(handler func(command model.UiCommand))

	SetEngineStatus(status Status)
	SetViewMode(mode ViewMode)
	SetAudioFormat(format string)
	SetBackendName(value string)
	SetPresetName(value string)
	SetSessionTime(seconds float64)
	SetTimerStatus(status model.TimerStatus)
	UpdateChannels(channels []model.ChannelStatus)
	UpdateSignalLevels(levels []model.SignalLevel)
	IncrementErrorCount()
	WriteLevelLog(level slog.Level, message string)
	SetAudioLoad(percent int)
}
