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

type Status int

const (
	StatusStarting Status = iota
	StatusStopped
	StatusPlaying
	StatusLoading
	StatusShuttingDown
	StatusFailed
)

var statusNames = map[Status]string{
	StatusStarting:     "Starting",
	StatusStopped:      "Stopped",
	StatusPlaying:      "Playing",
	StatusLoading:      "Loading",
	StatusShuttingDown: "Shutting down",
	StatusFailed:       "Failed",
}

type ViewMode int

const (
	// ViewPlayer is the single sound player with the sleep timer
	ViewPlayer ViewMode = iota

	// ViewMixer shows the four independent mixer channels
	ViewMixer
)

var viewNames = map[ViewMode]string{
	ViewPlayer: "Player",
	ViewMixer:  "Mixer",
}
