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
package model

type SignalLevel struct {
	Instant int
	Peak    int
}

// ChannelStatus is the UI facing snapshot of one playback channel. It carries
// only plain values, the live source handles stay inside the audio engine.
type ChannelStatus struct {
	Index  int
	Label  string
	Detail string

	// Pending marks a label that is selected but not loaded on the channel
	Pending bool

	Playing  bool
	Loading  bool
	Muted    bool
	VolumeDb float64
}

type TimerState int

const (
	TimerIdle TimerState = iota
	TimerCountingDown
	TimerCountingUp
)

func (s TimerState) String() string {
	switch s {
	case TimerIdle:
		return "idle"
	case TimerCountingDown:
		return "counting down"
	case TimerCountingUp:
		return "counting up"
	}

	return "unknown"
}

type TimerStatus struct {
	State TimerState

	// Preset is the selected countdown duration in seconds, 0 means none
	Preset int

	// Seconds is the current displayed value
	Seconds int
}

type UiCommandType int

const (
	CmdTogglePlay UiCommandType = iota
	CmdNextSound
	CmdPrevSound
	CmdVolumeUp
	CmdVolumeDown
	CmdSetVolume
	CmdToggleMute
	CmdRemove
	CmdCycleTimer
	CmdToggleView
	CmdQuit
)

// UiCommand is emitted by the display layer in response to user input and
// handled by the app dispatch loop. The display never touches the audio
// engine directly.
type UiCommand struct {
	Type    UiCommandType
	Channel int

	// Value carries the requested volume in dB for CmdSetVolume
	Value float64
}
